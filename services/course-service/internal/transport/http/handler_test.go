package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eduplatform/services/course-service/internal/client"
	"eduplatform/services/course-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourses struct {
	items map[uuid.UUID]*domain.Course
}

func newFakeCourses() *fakeCourses {
	return &fakeCourses{items: make(map[uuid.UUID]*domain.Course)}
}

func (f *fakeCourses) Create(_ context.Context, course *domain.Course) error {
	for _, c := range f.items {
		if c.Code == course.Code {
			return domain.ErrCourseCodeTaken
		}
	}
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	f.items[course.ID] = course
	return nil
}

func (f *fakeCourses) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	if c, ok := f.items[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCourseNotFound
}

func (f *fakeCourses) GetByCode(_ context.Context, code string) (*domain.Course, error) {
	for _, c := range f.items {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (f *fakeCourses) List(_ context.Context) ([]domain.Course, error) {
	out := make([]domain.Course, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, *c)
	}
	return out, nil
}

type fakeRegistrations struct {
	items []*domain.Registration
}

func (f *fakeRegistrations) Create(_ context.Context, reg *domain.Registration) error {
	f.items = append(f.items, reg)
	return nil
}

func (f *fakeRegistrations) FindByStudentAndCourse(_ context.Context, studentID string, courseID uuid.UUID) (*domain.Registration, error) {
	for _, reg := range f.items {
		if reg.StudentID == studentID && reg.CourseID == courseID {
			return reg, nil
		}
	}
	return nil, domain.ErrRegistrationNotFound
}

func (f *fakeRegistrations) CountByCourse(_ context.Context, courseID uuid.UUID) (int64, error) {
	var n int64
	for _, reg := range f.items {
		if reg.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRegistrations) ListByStudent(_ context.Context, studentID string) ([]domain.StudentRegistration, error) {
	var out []domain.StudentRegistration
	for _, reg := range f.items {
		if reg.StudentID == studentID {
			out = append(out, domain.StudentRegistration{Registration: *reg})
		}
	}
	return out, nil
}

func (f *fakeRegistrations) ListByCourse(_ context.Context, courseID uuid.UUID) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, reg := range f.items {
		if reg.CourseID == courseID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

type fakeValidator struct {
	result client.Result
	calls  int
}

func (f *fakeValidator) ValidateStudent(_ context.Context, _ string) client.Result {
	f.calls++
	return f.result
}

func setupRouter(courses *fakeCourses, regs *fakeRegistrations, validator *fakeValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCourseHandler(courses, regs, validator, zerolog.Nop())
	return NewRouter(handler)
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestCreateCourse(t *testing.T) {
	courses := newFakeCourses()
	r := setupRouter(courses, &fakeRegistrations{}, &fakeValidator{})

	w, resp := doJSON(t, r, http.MethodPost, "/courses", gin.H{
		"title": "Algebra I",
		"code":  "MATH-101",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Course created successfully", resp["message"])
	require.NotEmpty(t, resp["course_id"])

	id, err := uuid.Parse(resp["course_id"].(string))
	require.NoError(t, err)
	created := courses.items[id]
	require.NotNil(t, created)
	assert.Equal(t, domain.DefaultCapacity, created.Capacity)
}

func TestCreateCourseMissingFields(t *testing.T) {
	r := setupRouter(newFakeCourses(), &fakeRegistrations{}, &fakeValidator{})

	w, resp := doJSON(t, r, http.MethodPost, "/courses", gin.H{"title": "No code"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title and course code are required", resp["error"])
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	courses := newFakeCourses()
	existing := &domain.Course{ID: uuid.New(), Title: "Algebra I", Code: "MATH-101", Capacity: 30}
	courses.items[existing.ID] = existing

	r := setupRouter(courses, &fakeRegistrations{}, &fakeValidator{})

	w, resp := doJSON(t, r, http.MethodPost, "/courses", gin.H{
		"title": "Algebra I again",
		"code":  "MATH-101",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Course with this code already exists", resp["error"])
	assert.Equal(t, existing.ID.String(), resp["course_id"])
	assert.Len(t, courses.items, 1)
}

func TestCreateCourseInvalidDate(t *testing.T) {
	r := setupRouter(newFakeCourses(), &fakeRegistrations{}, &fakeValidator{})

	w, resp := doJSON(t, r, http.MethodPost, "/courses", gin.H{
		"title":      "Algebra I",
		"code":       "MATH-101",
		"start_date": "01/09/2026",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", resp["error"])
}

func TestRegisterHappyPath(t *testing.T) {
	courses := newFakeCourses()
	course := &domain.Course{ID: uuid.New(), Title: "Algebra I", Code: "MATH-101", Capacity: 30}
	courses.items[course.ID] = course
	regs := &fakeRegistrations{}

	r := setupRouter(courses, regs, &fakeValidator{result: client.Result{Status: client.StatusValid}})

	w, resp := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"student_id": "student-1",
		"course_id":  course.ID.String(),
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Registration successful", resp["message"])
	assert.Equal(t, "Algebra I", resp["course_title"])
	require.Len(t, regs.items, 1)
	assert.Equal(t, domain.StatusActive, regs.items[0].Status)
}

func TestRegisterCapacityReached(t *testing.T) {
	courses := newFakeCourses()
	course := &domain.Course{ID: uuid.New(), Title: "Seminar", Code: "SEM-1", Capacity: 1}
	courses.items[course.ID] = course
	regs := &fakeRegistrations{}
	validator := &fakeValidator{result: client.Result{Status: client.StatusValid}}

	r := setupRouter(courses, regs, validator)

	w, _ := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"student_id": "student-1",
		"course_id":  course.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"student_id": "student-2",
		"course_id":  course.ID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Course has reached maximum capacity", resp["error"])
	assert.Len(t, regs.items, 1)
}

func TestRegisterDuplicate(t *testing.T) {
	courses := newFakeCourses()
	course := &domain.Course{ID: uuid.New(), Title: "Seminar", Code: "SEM-1", Capacity: 10}
	courses.items[course.ID] = course
	regs := &fakeRegistrations{}

	r := setupRouter(courses, regs, &fakeValidator{result: client.Result{Status: client.StatusValid}})

	w, first := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"student_id": "student-1",
		"course_id":  course.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"student_id": "student-1",
		"course_id":  course.ID.String(),
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Student already registered for this course", resp["error"])
	assert.Equal(t, first["registration_id"], resp["registration_id"])
	assert.Len(t, regs.items, 1)
}

func TestRegisterStudentNotFound(t *testing.T) {
	courses := newFakeCourses()
	course := &domain.Course{ID: uuid.New(), Title: "Seminar", Code: "SEM-1", Capacity: 10}
	courses.items[course.ID] = course
	regs := &fakeRegistrations{}

	r := setupRouter(courses, regs, &fakeValidator{result: client.Result{Status: client.StatusNotFound}})

	w, resp := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"student_id": "ghost",
		"course_id":  course.ID.String(),
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found or invalid", resp["error"])
	assert.Empty(t, regs.items)
}

func TestRegisterValidatorDown(t *testing.T) {
	courses := newFakeCourses()
	course := &domain.Course{ID: uuid.New(), Title: "Seminar", Code: "SEM-1", Capacity: 10}
	courses.items[course.ID] = course
	regs := &fakeRegistrations{}
	validator := &fakeValidator{result: client.Result{
		Status: client.StatusUnreachable,
		Err:    errors.New("connection refused"),
	}}

	r := setupRouter(courses, regs, validator)

	w, resp := doJSON(t, r, http.MethodPost, "/register", gin.H{
		"student_id": "student-1",
		"course_id":  course.ID.String(),
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student validation failed", resp["error"])
	assert.Empty(t, regs.items)
}

func TestListStudentRegistrationsValidatorDown(t *testing.T) {
	courses := newFakeCourses()
	regs := &fakeRegistrations{items: []*domain.Registration{{
		ID:               uuid.New(),
		StudentID:        "student-1",
		CourseID:         uuid.New(),
		Status:           domain.StatusActive,
		RegistrationDate: time.Now(),
	}}}
	validator := &fakeValidator{result: client.Result{
		Status: client.StatusUnreachable,
		Err:    errors.New("connection refused"),
	}}

	r := setupRouter(courses, regs, validator)

	w, resp := doJSON(t, r, http.MethodGet, "/registrations/student/student-1", nil)

	// The validation failure is logged but does not block the listing.
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "student-1", resp["student_id"])
	assert.Len(t, resp["registrations"], 1)
	assert.Equal(t, 1, validator.calls)
}

func TestListCourseRegistrationsUnknownCourse(t *testing.T) {
	r := setupRouter(newFakeCourses(), &fakeRegistrations{}, &fakeValidator{})

	w, resp := doJSON(t, r, http.MethodGet, "/registrations/course/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Course not found", resp["error"])
}

func TestHealth(t *testing.T) {
	r := setupRouter(newFakeCourses(), &fakeRegistrations{}, &fakeValidator{})

	w, resp := doJSON(t, r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp["status"])
}
