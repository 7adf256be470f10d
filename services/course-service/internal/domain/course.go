package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseCodeTaken      = errors.New("course code already exists")
	ErrRegistrationNotFound = errors.New("registration not found")
)

const DefaultCapacity = 30

type Course struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Code        string     `json:"code"`
	Capacity    int        `json:"capacity"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
