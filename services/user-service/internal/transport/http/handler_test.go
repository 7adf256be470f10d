package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eduplatform/services/user-service/internal/domain"
	"eduplatform/services/user-service/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountRepo struct {
	items map[uuid.UUID]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{items: make(map[uuid.UUID]*domain.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.items[account.ID] = account
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	if a, ok := f.items[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range f.items {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range f.items {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountRepo) List(_ context.Context, role string) ([]domain.Account, error) {
	var out []domain.Account
	for _, a := range f.items {
		if role == "" || a.Role == role {
			out = append(out, *a)
		}
	}
	return out, nil
}

func setupRouter(repo *fakeAccountRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewUserHandler(repo, security.NewPasswordHasher(), zerolog.Nop())
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

func registerBody() gin.H {
	return gin.H{
		"username":   "prof",
		"password":   "secret123",
		"email":      "prof@example.com",
		"first_name": "Pat",
		"last_name":  "Professor",
		"role":       "instructor",
	}
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeAccountRepo()
	r := setupRouter(repo)

	w, resp := doJSON(t, r, http.MethodPost, "/register-user", registerBody())

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", resp["message"])
	assert.Equal(t, "prof", resp["username"])
	assert.Equal(t, "instructor", resp["role"])

	id, err := uuid.Parse(resp["user_id"].(string))
	require.NoError(t, err)
	stored := repo.items[id]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
}

func TestRegisterUserMissingFields(t *testing.T) {
	r := setupRouter(newFakeAccountRepo())

	body := registerBody()
	delete(body, "email")
	w, resp := doJSON(t, r, http.MethodPost, "/register-user", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: email", resp["error"])
}

func TestRegisterUserInvalidRole(t *testing.T) {
	r := setupRouter(newFakeAccountRepo())

	body := registerBody()
	body["role"] = "student"
	w, resp := doJSON(t, r, http.MethodPost, "/register-user", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role. Must be one of: instructor, admin", resp["error"])
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	repo := newFakeAccountRepo()
	r := setupRouter(repo)

	w, _ := doJSON(t, r, http.MethodPost, "/register-user", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	body := registerBody()
	body["email"] = "other@example.com"
	w, resp := doJSON(t, r, http.MethodPost, "/register-user", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already exists", resp["error"])
	assert.Len(t, repo.items, 1)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	r := setupRouter(repo)

	w, _ := doJSON(t, r, http.MethodPost, "/register-user", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	body := registerBody()
	body["username"] = "prof2"
	w, resp := doJSON(t, r, http.MethodPost, "/register-user", body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", resp["error"])
}

func TestLogin(t *testing.T) {
	repo := newFakeAccountRepo()
	r := setupRouter(repo)

	w, created := doJSON(t, r, http.MethodPost, "/register-user", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "prof",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", resp["message"])
	assert.Equal(t, created["user_id"], resp["user_id"])
	assert.Equal(t, "instructor", resp["role"])
}

func TestLoginBadCredentials(t *testing.T) {
	r := setupRouter(newFakeAccountRepo())

	w, resp := doJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "nobody",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password", resp["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupRouter(newFakeAccountRepo())

	w, _ := doJSON(t, r, http.MethodPost, "/register-user", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/login", gin.H{
		"username": "prof",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username or password", resp["error"])
}

func TestListUsersRoleFilter(t *testing.T) {
	repo := newFakeAccountRepo()
	r := setupRouter(repo)

	for _, u := range []gin.H{
		{"username": "prof", "password": "secret123", "email": "prof@example.com", "role": "instructor"},
		{"username": "boss", "password": "secret123", "email": "boss@example.com", "role": "admin"},
	} {
		w, _ := doJSON(t, r, http.MethodPost, "/register-user", u)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, resp := doJSON(t, r, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["users"], 2)

	w, resp = doJSON(t, r, http.MethodGet, "/users?role=admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := resp["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "boss", users[0].(map[string]interface{})["username"])
}

func TestValidateUser(t *testing.T) {
	repo := newFakeAccountRepo()
	r := setupRouter(repo)

	w, created := doJSON(t, r, http.MethodPost, "/register-user", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/validate/"+created["user_id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["valid"])
	assert.Equal(t, "instructor", resp["role"])
	assert.Equal(t, "prof", resp["username"])
}

func TestValidateUserNotFound(t *testing.T) {
	r := setupRouter(newFakeAccountRepo())

	w, resp := doJSON(t, r, http.MethodGet, "/validate/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["valid"])
	assert.Equal(t, "User not found", resp["error"])

	// Malformed ids validate the same way as missing ones.
	w, resp = doJSON(t, r, http.MethodGet, "/validate/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, resp["valid"])
}
