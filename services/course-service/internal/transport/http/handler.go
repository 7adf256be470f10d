package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"eduplatform/services/course-service/internal/client"
	"eduplatform/services/course-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetByCode(ctx context.Context, code string) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	FindByStudentAndCourse(ctx context.Context, studentID string, courseID uuid.UUID) (*domain.Registration, error)
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.StudentRegistration, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Registration, error)
}

type StudentValidator interface {
	ValidateStudent(ctx context.Context, studentID string) client.Result
}

type CourseHandler struct {
	courses       CourseRepository
	registrations RegistrationRepository
	students      StudentValidator
	log           zerolog.Logger
}

func NewCourseHandler(cr CourseRepository, rr RegistrationRepository, sv StudentValidator, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		courses:       cr,
		registrations: rr,
		students:      sv,
		log:           log,
	}
}

type createCourseReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Capacity    int    `json:"capacity"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date")
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req createCourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and course code are required"})
		return
	}

	if existing, err := h.courses.GetByCode(c, req.Code); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Course with this code already exists",
			"course_id": existing.ID.String(),
		})
		return
	} else if !errors.Is(err, domain.ErrCourseNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course", "details": err.Error()})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = domain.DefaultCapacity
	}

	course := &domain.Course{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Capacity:    capacity,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if err := h.courses.Create(c, course); err != nil {
		if errors.Is(err, domain.ErrCourseCodeTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Course with this code already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Course created successfully",
		"course_id": course.ID.String(),
		"course":    course,
	})
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch courses", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	course, err := h.courses.GetByID(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch course", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, course)
}

type registerReq struct {
	StudentID string `json:"student_id"`
	CourseID  string `json:"course_id"`
}

func (h *CourseHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.StudentID == "" || req.CourseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID and Course ID are required"})
		return
	}

	// Student check is fail-closed: an unreachable enrollment service
	// blocks the registration.
	switch res := h.students.ValidateStudent(c, req.StudentID); res.Status {
	case client.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found or invalid"})
		return
	case client.StatusUnreachable:
		h.log.Error().Err(res.Err).Msg("Error validating student")
		c.JSON(http.StatusNotFound, gin.H{"error": "Student validation failed", "details": res.Err.Error()})
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	course, err := h.courses.GetByID(c, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register for course", "details": err.Error()})
		return
	}

	if existing, err := h.registrations.FindByStudentAndCourse(c, req.StudentID, courseID); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":           "Student already registered for this course",
			"registration_id": existing.ID.String(),
		})
		return
	} else if !errors.Is(err, domain.ErrRegistrationNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register for course", "details": err.Error()})
		return
	}

	count, err := h.registrations.CountByCourse(c, courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register for course", "details": err.Error()})
		return
	}
	if course.Capacity > 0 && count >= int64(course.Capacity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course has reached maximum capacity"})
		return
	}

	registration := &domain.Registration{
		ID:               uuid.New(),
		StudentID:        req.StudentID,
		CourseID:         courseID,
		Status:           domain.StatusActive,
		RegistrationDate: time.Now(),
	}

	if err := h.registrations.Create(c, registration); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register for course", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Registration successful",
		"registration_id": registration.ID.String(),
		"student_id":      req.StudentID,
		"course_id":       req.CourseID,
		"course_title":    course.Title,
	})
}

func (h *CourseHandler) ListStudentRegistrations(c *gin.Context) {
	studentID := c.Param("id")

	// Best effort only: a failed validation is logged and the listing
	// proceeds anyway.
	if res := h.students.ValidateStudent(c, studentID); res.Status == client.StatusUnreachable {
		h.log.Warn().Err(res.Err).Str("student_id", studentID).Msg("Error validating student")
	}

	registrations, err := h.registrations.ListByStudent(c, studentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations", "details": err.Error()})
		return
	}

	result := make([]gin.H, 0, len(registrations))
	for _, reg := range registrations {
		var course gin.H
		if reg.Course != nil {
			course = gin.H{"title": reg.Course.Title, "code": reg.Course.Code}
		}
		result = append(result, gin.H{
			"id":                reg.ID.String(),
			"course_id":         reg.CourseID.String(),
			"status":            reg.Status,
			"registration_date": reg.RegistrationDate,
			"course":            course,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"student_id":    studentID,
		"registrations": result,
	})
}

func (h *CourseHandler) ListCourseRegistrations(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	course, err := h.courses.GetByID(c, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations", "details": err.Error()})
		return
	}

	registrations, err := h.registrations.ListByCourse(c, courseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations", "details": err.Error()})
		return
	}

	result := make([]gin.H, 0, len(registrations))
	for _, reg := range registrations {
		result = append(result, gin.H{
			"id":                reg.ID.String(),
			"student_id":        reg.StudentID,
			"status":            reg.Status,
			"registration_date": reg.RegistrationDate,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"course_id":     courseID.String(),
		"course_title":  course.Title,
		"registrations": result,
	})
}
