package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUserCarriesRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate/u1", r.URL.Path)
		w.Write([]byte(`{"valid":true,"user_id":"u1","username":"prof","role":"instructor"}`))
	}))
	defer srv.Close()

	res := NewUserClient(srv.URL).ValidateUser(context.Background(), "u1")
	assert.Equal(t, StatusValid, res.Status)
	assert.Equal(t, "instructor", res.Role)
}

func TestValidateUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"valid":false,"error":"User not found"}`))
	}))
	defer srv.Close()

	res := NewUserClient(srv.URL).ValidateUser(context.Background(), "ghost")
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestValidateUserServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	res := NewUserClient(srv.URL).ValidateUser(context.Background(), "u1")
	assert.Equal(t, StatusUnreachable, res.Status)
	require.Error(t, res.Err)
}

func TestValidateUserConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	res := NewUserClient(srv.URL).ValidateUser(context.Background(), "u1")
	assert.Equal(t, StatusUnreachable, res.Status)
	require.Error(t, res.Err)
}

func TestCourseExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/courses/known":
			w.Write([]byte(`{"id":"known","title":"Algebra I"}`))
		case "/courses/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewCourseClient(srv.URL)
	assert.Equal(t, StatusValid, c.CourseExists(context.Background(), "known").Status)
	assert.Equal(t, StatusNotFound, c.CourseExists(context.Background(), "missing").Status)
	assert.Equal(t, StatusUnreachable, c.CourseExists(context.Background(), "broken").Status)
}

func TestStudentRegistrations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/registrations/student/s1", r.URL.Path)
		w.Write([]byte(`{
			"student_id": "s1",
			"registrations": [
				{"id":"r1","course_id":"c1","status":"active","registration_date":"2026-01-15T10:00:00Z"},
				{"id":"r2","course_id":"c2","status":"dropped","registration_date":"2026-02-01T10:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	regs, err := NewCourseClient(srv.URL).StudentRegistrations(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "c1", regs[0].CourseID)
	assert.Equal(t, "active", regs[0].Status)
	assert.Equal(t, "dropped", regs[1].Status)
}

func TestStudentRegistrationsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewCourseClient(srv.URL).StudentRegistrations(context.Background(), "s1")
	require.Error(t, err)
}
