package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already registered")
)

const (
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Account is a staff account: instructors and administrators only.
// Parents and students live in the auth service.
type Account struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidRole(role string) bool {
	return role == RoleInstructor || role == RoleAdmin
}
