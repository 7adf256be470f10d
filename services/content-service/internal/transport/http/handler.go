package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"eduplatform/services/content-service/internal/client"
	"eduplatform/services/content-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ContentRepository interface {
	Create(ctx context.Context, content *domain.Content) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error)
	ListByCourse(ctx context.Context, courseID string, publishedOnly bool) ([]domain.Content, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Content, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserValidator interface {
	ValidateUser(ctx context.Context, userID string) client.Result
}

type StudentValidator interface {
	ValidateStudent(ctx context.Context, studentID string) client.Result
}

type CourseChecker interface {
	CourseExists(ctx context.Context, courseID string) client.Result
	StudentRegistrations(ctx context.Context, studentID string) ([]client.RegistrationInfo, error)
}

type ContentHandler struct {
	repo     ContentRepository
	users    UserValidator
	students StudentValidator
	courses  CourseChecker
	log      zerolog.Logger
}

func NewContentHandler(repo ContentRepository, users UserValidator, students StudentValidator, courses CourseChecker, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		repo:     repo,
		users:    users,
		students: students,
		courses:  courses,
		log:      log,
	}
}

type createContentReq struct {
	CourseID    string          `json:"course_id"`
	Title       string          `json:"title"`
	ContentType string          `json:"content_type"`
	ContentData json.RawMessage `json:"content_data"`
	AuthorID    string          `json:"author_id"`
	Order       int             `json:"order"`
	IsPublished *bool           `json:"is_published"`
}

func (h *ContentHandler) CreateContent(c *gin.Context) {
	var req createContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CourseID == "" || req.Title == "" || req.ContentType == "" || len(req.ContentData) == 0 || req.AuthorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: course_id, title, content_type, content_data, and author_id are required",
		})
		return
	}

	if !domain.ValidContentType(req.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid content type. Must be one of: " + strings.Join(domain.ValidContentTypes, ", "),
		})
		return
	}

	if rej := authorizeAuthor(h.users.ValidateUser(c, req.AuthorID), "create"); rej != nil {
		c.JSON(rej.code, rej.body)
		return
	}

	// Course check is best effort: an unreachable course service does
	// not block content creation.
	switch res := h.courses.CourseExists(c, req.CourseID); res.Status {
	case client.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	case client.StatusUnreachable:
		h.log.Warn().Err(res.Err).Str("course_id", req.CourseID).Msg("Error verifying course")
	}

	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	content := &domain.Content{
		ID:          uuid.New(),
		CourseID:    req.CourseID,
		Title:       req.Title,
		ContentType: req.ContentType,
		ContentData: req.ContentData,
		AuthorID:    req.AuthorID,
		Order:       req.Order,
		IsPublished: isPublished,
	}

	if err := h.repo.Create(c, content); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content", "details": err.Error()})
		return
	}

	h.log.Info().Str("content_id", content.ID.String()).Msg("Content created")

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Content created successfully",
		"content_id": content.ID.String(),
		"content":    content,
	})
}

func (h *ContentHandler) GetContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	content, err := h.repo.GetByID(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, content)
}

func (h *ContentHandler) ListCourseContent(c *gin.Context) {
	courseID := c.Param("course_id")

	// Same best-effort course check as creation.
	switch res := h.courses.CourseExists(c, courseID); res.Status {
	case client.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	case client.StatusUnreachable:
		h.log.Warn().Err(res.Err).Str("course_id", courseID).Msg("Error verifying course")
	}

	publishedOnly := c.Query("published") != "false"

	content, err := h.repo.ListByCourse(c, courseID, publishedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch course content", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"course_id":     courseID,
		"content_count": len(content),
		"content":       content,
	})
}

// GetStudentContent serves published materials to a student after
// verifying both the student and an active registration.
func (h *ContentHandler) GetStudentContent(c *gin.Context) {
	studentID := c.Query("student_id")
	courseID := c.Query("course_id")

	if studentID == "" || courseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id and course_id are required query parameters"})
		return
	}

	switch res := h.students.ValidateStudent(c, studentID); res.Status {
	case client.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	case client.StatusUnreachable:
		h.log.Error().Err(res.Err).Str("student_id", studentID).Msg("Error validating student")
		c.JSON(http.StatusNotFound, gin.H{"error": "Student validation failed", "details": res.Err.Error()})
		return
	}

	registrations, err := h.courses.StudentRegistrations(c, studentID)
	if err != nil {
		h.log.Error().Err(err).Str("student_id", studentID).Msg("Error verifying course registration")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify course registration", "details": err.Error()})
		return
	}

	isRegistered := false
	for _, reg := range registrations {
		if reg.CourseID == courseID && reg.Status == "active" {
			isRegistered = true
			break
		}
	}
	if !isRegistered {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Student is not registered for this course or registration is not active",
		})
		return
	}

	content, err := h.repo.ListByCourse(c, courseID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get content", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student_id":    studentID,
		"course_id":     courseID,
		"content_count": len(content),
		"content":       content,
	})
}

type updateContentReq struct {
	Title       *string         `json:"title"`
	ContentType *string         `json:"content_type"`
	ContentData json.RawMessage `json:"content_data"`
	IsPublished *bool           `json:"is_published"`
	Order       *int            `json:"order"`
	AuthorID    *string         `json:"author_id"`
}

func (h *ContentHandler) UpdateContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	var req updateContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.repo.GetByID(c, id); err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content", "details": err.Error()})
		return
	}

	if req.AuthorID != nil && *req.AuthorID != "" {
		if rej := authorizeAuthor(h.users.ValidateUser(c, *req.AuthorID), "update"); rej != nil {
			c.JSON(rej.code, rej.body)
			return
		}
	}

	// Sparse merge: only supplied fields overwrite stored values.
	fields := map[string]interface{}{}
	if req.Title != nil && *req.Title != "" {
		fields["title"] = *req.Title
	}
	if req.ContentType != nil && *req.ContentType != "" {
		if !domain.ValidContentType(*req.ContentType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid content type. Must be one of: " + strings.Join(domain.ValidContentTypes, ", "),
			})
			return
		}
		fields["content_type"] = *req.ContentType
	}
	if len(req.ContentData) > 0 {
		fields["content_data"] = string(req.ContentData)
	}
	if req.IsPublished != nil {
		fields["is_published"] = *req.IsPublished
	}
	if req.Order != nil {
		fields["order"] = *req.Order
	}
	if req.AuthorID != nil && *req.AuthorID != "" {
		fields["author_id"] = *req.AuthorID
	}

	updated, err := h.repo.Update(c, id, fields)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content", "details": err.Error()})
		return
	}

	h.log.Info().Str("content_id", id.String()).Msg("Content updated")

	c.JSON(http.StatusOK, gin.H{
		"message": "Content updated successfully",
		"content": updated,
	})
}

func (h *ContentHandler) DeleteContent(c *gin.Context) {
	authorID := c.Query("author_id")
	if authorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author_id is required as a query parameter"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	content, err := h.repo.GetByID(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content", "details": err.Error()})
		return
	}

	res := h.users.ValidateUser(c, authorID)
	switch res.Status {
	case client.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	case client.StatusUnreachable:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate user", "details": res.Err.Error()})
		return
	}

	// Only the original author or an admin may delete.
	isAuthor := content.AuthorID == authorID
	isAdmin := res.Role == domain.RoleAdmin
	if !isAuthor && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Only the content creator or administrators can delete content",
		})
		return
	}

	if err := h.repo.Delete(c, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content", "details": err.Error()})
		return
	}

	h.log.Info().Str("content_id", id.String()).Msg("Content deleted")

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}
