package user

import (
	"time"

	"skill-radar/internal/domain/skill"
	"skill-radar/internal/pkg/patch"
	"skill-radar/internal/pkg/validation"
)

const (
	NameMaxLen      = 100
	PositionMaxLen  = 100
	EmailMaxLen     = 100
	PasswordMinLen  = 6
	PasswordMaxLen  = 255
	AvatarURLMaxLen = 500
)

type User struct {
	ID        int64
	Name      string
	Position  string
	Email     string
	Password  string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is a user together with every skill they own.
type Profile struct {
	User
	Skills []skill.Skill
}

type NewUser struct {
	Name      string
	Position  string
	Email     string
	Password  string
	AvatarURL *string
}

func (n NewUser) Validate() error {
	v := validation.New()
	v.Length("name", n.Name, 1, NameMaxLen)
	v.Length("position", n.Position, 1, PositionMaxLen)
	v.Length("email", n.Email, 1, EmailMaxLen)
	v.Length("password", n.Password, PasswordMinLen, PasswordMaxLen)
	if n.AvatarURL != nil {
		v.Length("avatar_url", *n.AvatarURL, 0, AvatarURLMaxLen)
	}
	return v.Err()
}

// Patch carries a partial user update. Password is not patchable.
type Patch struct {
	Name      patch.Field[string] `json:"name"`
	Position  patch.Field[string] `json:"position"`
	Email     patch.Field[string] `json:"email"`
	AvatarURL patch.Field[string] `json:"avatar_url"`
}

func (p Patch) Validate() error {
	v := validation.New()
	if p.Name.IsNull() {
		v.Add("name", "must not be null")
	} else if s, ok := p.Name.Get(); ok {
		v.Length("name", s, 1, NameMaxLen)
	}
	if p.Position.IsNull() {
		v.Add("position", "must not be null")
	} else if s, ok := p.Position.Get(); ok {
		v.Length("position", s, 1, PositionMaxLen)
	}
	if p.Email.IsNull() {
		v.Add("email", "must not be null")
	} else if s, ok := p.Email.Get(); ok {
		v.Length("email", s, 1, EmailMaxLen)
	}
	if s, ok := p.AvatarURL.Get(); ok {
		v.Length("avatar_url", s, 0, AvatarURLMaxLen)
	}
	return v.Err()
}

// ApplyTo merges the supplied fields into u.
func (p Patch) ApplyTo(u *User) {
	patch.Apply(&u.Name, p.Name)
	patch.Apply(&u.Position, p.Position)
	patch.Apply(&u.Email, p.Email)
	patch.ApplyNullable(&u.AvatarURL, p.AvatarURL)
}
