package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudentProfile links a student account to its parent account and
// accumulates school records over time. Nothing in this service mutates
// the embedded records after signup.
type StudentProfile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ParentID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	Attendance []AttendanceRecord
	Marks      []MarkRecord
	PTM        []PTMRecord
}

type AttendanceRecord struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	Date      time.Time
	Status    string // Present | Absent
}

type MarkRecord struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	Subject   string
	Exam      string // e.g. "Mid Term", "Final", "Unit Test 1"
	Score     int
	OutOf     int
}

type PTMRecord struct {
	ID        uuid.UUID
	StudentID uuid.UUID
	Date      time.Time
	Notes     string
	Attended  bool
}
