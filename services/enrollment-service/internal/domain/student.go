package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrStudentAlreadyExists = errors.New("student already exists")
)

type Student struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth *time.Time
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
