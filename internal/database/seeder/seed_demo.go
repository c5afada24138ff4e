package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"skill-radar/internal/domain/skill"
	"skill-radar/internal/domain/user"
)

type demoSkill struct {
	Name        string
	Category    string
	Description string
	Level       float64
}

type demoUser struct {
	Name     string
	Position string
	Email    string
	Password string
	Avatar   string
	Skills   []demoSkill
}

var demoUsers = []demoUser{
	{
		Name: "Juan Pérez", Position: "Senior Developer", Email: "juan.perez@example.com", Password: "password123",
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=juan",
		Skills: []demoSkill{
			{"Python", "Programming", "Advanced Python programming", 9},
			{"SQL", "Database", "Database design and optimization", 8},
			{"JavaScript", "Programming", "Frontend and backend development", 7},
			{"Docker", "DevOps", "Containerization and deployment", 6},
			{"Machine Learning", "Data Science", "ML algorithms and model deployment", 8},
			{"FastAPI", "Framework", "REST API development", 8},
		},
	},
	{
		Name: "María García", Position: "Data Scientist", Email: "maria.garcia@example.com", Password: "password456",
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=maria",
		Skills: []demoSkill{
			{"R", "Programming", "Statistical analysis and visualization", 9},
			{"Python", "Programming", "Data analysis and ML", 8},
			{"Apache Spark", "Big Data", "Large-scale data processing", 7},
			{"Tableau", "Visualization", "Data visualization and dashboards", 8},
			{"Statistics", "Data Science", "Statistical modeling and analysis", 9},
			{"SQL", "Database", "Data querying and analysis", 7},
		},
	},
	{
		Name: "Carlos López", Position: "DevOps Engineer", Email: "carlos.lopez@example.com", Password: "password789",
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=carlos",
		Skills: []demoSkill{
			{"Docker", "DevOps", "Container orchestration", 9},
			{"Kubernetes", "DevOps", "Container orchestration", 8},
			{"AWS", "Cloud", "Cloud infrastructure", 8},
			{"Terraform", "Infrastructure", "Infrastructure as Code", 7},
			{"Python", "Programming", "Automation and scripting", 7},
			{"CI/CD", "DevOps", "Continuous integration and deployment", 8},
		},
	},
}

// DemoSeeder creates three sample users with their skills. Existing users and
// skills are left alone, so it can be run repeatedly.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

func (DemoSeeder) Run(ctx context.Context, deps Deps) error {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	for _, du := range demoUsers {
		u, err := deps.Users.GetByEmail(ctx, du.Email)
		switch {
		case err == nil:
			log.WithField("email", du.Email).Info("user exists, skipping")
		case errors.Is(err, user.ErrNotFound):
			avatar := du.Avatar
			u, err = deps.Users.Create(ctx, user.NewUser{
				Name:      du.Name,
				Position:  du.Position,
				Email:     du.Email,
				Password:  du.Password,
				AvatarURL: &avatar,
			})
			if err != nil {
				return fmt.Errorf("create user %s: %w", du.Email, err)
			}
			log.WithField("email", du.Email).Info("user created")
		default:
			return fmt.Errorf("lookup user %s: %w", du.Email, err)
		}

		for _, ds := range du.Skills {
			exists, err := deps.Skills.ExistsForUser(ctx, u.ID, ds.Name)
			if err != nil {
				return fmt.Errorf("check skill %s: %w", ds.Name, err)
			}
			if exists {
				continue
			}
			desc := ds.Description
			if _, err := deps.Skills.Create(ctx, skill.NewSkill{
				Name:        ds.Name,
				Category:    ds.Category,
				Description: &desc,
				Level:       ds.Level,
				UserID:      u.ID,
			}); err != nil {
				return fmt.Errorf("create skill %s for %s: %w", ds.Name, du.Email, err)
			}
		}
	}
	return nil
}
