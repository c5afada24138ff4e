package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"skill-radar/internal/config"
	"skill-radar/internal/delivery/http/handler"
	"skill-radar/internal/delivery/http/middleware"
	"skill-radar/internal/delivery/http/routes"
)

const metricsNamespace = "skill_radar"

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) (*App, error) {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	if err := registerGlobalMiddleware(f, c); err != nil {
		return nil, err
	}
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}, nil
}

func Bootstrap(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	a, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return a, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) error {
	// cors falls back to "*" for an empty list, which rules out credentials.
	origins := c.Config.CORS.AllowOrigins
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: len(origins) > 0 && !slices.Contains(origins, "*"),
	}))

	app.Use(middleware.NewAccessLogMiddleware(c.Logger.WithField("component", "http")).Middleware())

	metricsMw, err := middleware.NewMetricsMiddleware(metricsNamespace, c.Metrics)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}
	app.Use(metricsMw.Middleware())

	app.Use(middleware.NewErrorMiddleware(c.Logger.WithField("component", "http")).Middleware())
	app.Use(middleware.NewSessionMiddleware(c.Sessions, c.Config.Session).Middleware())
	return nil
}

func registerRoutes(app *fiber.App, c *Container) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(c.Metrics, promhttp.HandlerOpts{})))

	authMw := middleware.NewAuthMiddleware(c.Auth)
	reg := &routes.Registry{
		Health: handler.NewHealthHandler(c.Config.App, c.Pinger(), authMw),
		Auth:   handler.NewAuthHandler(c.Auth, authMw),
		Users:  handler.NewUserHandler(c.Users, c.Access, authMw),
		Skills: handler.NewSkillHandler(c.Access),
		AuthMw: authMw,
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
