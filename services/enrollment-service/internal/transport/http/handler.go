package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"eduplatform/services/enrollment-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	List(ctx context.Context) ([]domain.Student, error)
}

type StudentHandler struct {
	repo StudentRepository
	log  zerolog.Logger
}

func NewStudentHandler(repo StudentRepository, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{repo: repo, log: log}
}

type enrollReq struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
}

func (h *StudentHandler) Enroll(c *gin.Context) {
	var req enrollReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	required := []struct{ name, value string }{
		{"first_name", req.FirstName},
		{"last_name", req.LastName},
		{"email", req.Email},
		{"date_of_birth", req.DateOfBirth},
	}
	for _, f := range required {
		if f.value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: " + f.name})
			return
		}
	}

	if existing, err := h.repo.GetByEmail(c, req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Student with this email already exists",
			"student_id": existing.ID.String(),
		})
		return
	} else if !errors.Is(err, domain.ErrStudentNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll student", "details": err.Error()})
		return
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	student := &domain.Student{
		ID:          uuid.New(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: &dob,
		Phone:       req.Phone,
	}

	if err := h.repo.Create(c, student); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll student", "details": err.Error()})
		return
	}

	h.log.Info().Str("student_id", student.ID.String()).Msg("Student enrolled")

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Student enrolled successfully",
		"student_id": student.ID.String(),
	})
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	student, err := h.repo.GetByID(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve student", "details": err.Error()})
		return
	}

	var dob interface{}
	if student.DateOfBirth != nil {
		dob = student.DateOfBirth.Format(dateLayout)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            student.ID.String(),
		"first_name":    student.FirstName,
		"last_name":     student.LastName,
		"email":         student.Email,
		"date_of_birth": dob,
		"phone":         student.Phone,
		"created_at":    student.CreatedAt,
	})
}

func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.repo.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve students", "details": err.Error()})
		return
	}

	result := make([]gin.H, 0, len(students))
	for _, s := range students {
		result = append(result, gin.H{
			"id":         s.ID.String(),
			"first_name": s.FirstName,
			"last_name":  s.LastName,
			"email":      s.Email,
		})
	}

	c.JSON(http.StatusOK, gin.H{"students": result})
}

// ValidateStudent is the existence check consumed by sibling services.
func (h *StudentHandler) ValidateStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "Student not found"})
		return
	}

	student, err := h.repo.GetByID(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"student_id": student.ID.String(),
		"name":       student.FullName(),
		"email":      student.Email,
	})
}
