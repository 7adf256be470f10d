package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrParentNotFound     = errors.New("parent not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	RoleParent  = "parent"
	RoleStudent = "student"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
