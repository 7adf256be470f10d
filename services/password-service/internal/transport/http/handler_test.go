package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduplatform/services/password-service/internal/domain"
	"eduplatform/services/password-service/internal/infrastructure/security"
	"eduplatform/services/password-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, newPassword string) error {
	for _, u := range f.byEmail {
		if u.ID == userID {
			u.Password = newPassword
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func setupRouter(repo *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPasswordHandler(repo, security.NewPasswordHasher(), zerolog.Nop())
	// Redis at an unroutable address: the limiter fails open in tests.
	limiter := middleware.NewRateLimiter(redis.NewClient(&redis.Options{Addr: "localhost:1"}))
	return NewRouter(handler, limiter)
}

func doJSON(t *testing.T, r http.Handler, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/password/change-password", &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	oldHash, err := security.NewPasswordHasher().Hash("old-password")
	require.NoError(t, err)
	repo.byEmail["pat@example.com"] = &domain.User{
		ID:       uuid.New(),
		Name:     "Pat Parent",
		Email:    "pat@example.com",
		Password: oldHash,
		Role:     "parent",
	}
	r := setupRouter(repo)

	w, resp := doJSON(t, r, gin.H{
		"email":       "pat@example.com",
		"newPassword": "new-password",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Password updated successfully", resp["message"])

	stored := repo.byEmail["pat@example.com"]
	assert.NotEqual(t, oldHash, stored.Password)
	assert.NotEqual(t, "new-password", stored.Password)
	require.NoError(t, security.NewPasswordHasher().Compare(stored.Password, "new-password"))
}

func TestChangePasswordUnknownEmail(t *testing.T) {
	r := setupRouter(newFakeUserRepo())

	w, resp := doJSON(t, r, gin.H{
		"email":       "nobody@example.com",
		"newPassword": "new-password",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", resp["message"])
}

func TestChangePasswordValidation(t *testing.T) {
	repo := newFakeUserRepo()
	r := setupRouter(repo)

	// Short password fails the min=6 binding.
	w, _ := doJSON(t, r, gin.H{"email": "pat@example.com", "newPassword": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, gin.H{"email": "not-an-email", "newPassword": "new-password"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
