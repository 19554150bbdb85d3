package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email" validate:"required,email,max=255"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name,omitempty" validate:"max=100"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Credentials is the sign-in and sign-up form.
type Credentials struct {
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" form:"full_name" validate:"max=100"`
}

func (c *Credentials) Validate() error {
	c.Email = NormalizeEmail(c.Email)
	c.FullName = CleanText(c.FullName)
	return ValidateStruct(c)
}
