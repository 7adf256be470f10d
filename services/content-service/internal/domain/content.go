package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrContentNotFound = errors.New("content not found")

const (
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

const (
	TypeText       = "text"
	TypeVideo      = "video"
	TypePDF        = "pdf"
	TypeLink       = "link"
	TypeAssignment = "assignment"
)

// ValidContentTypes in the order they are reported to clients.
var ValidContentTypes = []string{TypeText, TypeVideo, TypePDF, TypeLink, TypeAssignment}

func ValidContentType(t string) bool {
	for _, v := range ValidContentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Content is a single course material. ContentData is an opaque payload
// whose shape is constrained by ContentType only by convention.
type Content struct {
	ID          uuid.UUID       `json:"id"`
	CourseID    string          `json:"course_id"`
	Title       string          `json:"title"`
	ContentType string          `json:"content_type"`
	ContentData json.RawMessage `json:"content_data"`
	AuthorID    string          `json:"author_id"`
	Order       int             `json:"order"`
	IsPublished bool            `json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
