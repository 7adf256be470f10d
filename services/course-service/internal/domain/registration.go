package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusDropped   = "dropped"
	StatusCompleted = "completed"
)

// Registration ties an externally owned student id to a course. Only
// creation exists here; status transitions have no endpoints.
type Registration struct {
	ID               uuid.UUID
	StudentID        string
	CourseID         uuid.UUID
	Status           string
	RegistrationDate time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StudentRegistration is a registration joined with its course for the
// per-student listing. Course is nil when the course row is gone.
type StudentRegistration struct {
	Registration
	Course *Course
}
