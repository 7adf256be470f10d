package handlers

import (
	"context"
	"errors"
	"net/http"

	"eduplatform/services/user-service/internal/domain"
	"eduplatform/services/user-service/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	List(ctx context.Context, role string) ([]domain.Account, error)
}

type UserHandler struct {
	repo   AccountRepository
	hasher *security.PasswordHasher
	log    zerolog.Logger
}

func NewUserHandler(repo AccountRepository, hasher *security.PasswordHasher, log zerolog.Logger) *UserHandler {
	return &UserHandler{repo: repo, hasher: hasher, log: log}
}

type registerUserReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req registerUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	required := []struct{ name, value string }{
		{"username", req.Username},
		{"password", req.Password},
		{"email", req.Email},
		{"role", req.Role},
	}
	for _, f := range required {
		if f.value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: " + f.name})
			return
		}
	}

	if !domain.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be one of: instructor, admin"})
		return
	}

	if _, err := h.repo.GetByUsername(c, req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user", "details": err.Error()})
		return
	}

	if _, err := h.repo.GetByEmail(c, req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user", "details": err.Error()})
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user", "details": err.Error()})
		return
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}

	if err := h.repo.Create(c, account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user", "details": err.Error()})
		return
	}

	h.log.Info().Str("user_id", account.ID.String()).Str("role", account.Role).Msg("User registered")

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User registered successfully",
		"user_id":  account.ID.String(),
		"username": account.Username,
		"role":     account.Role,
	})
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: username"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: password"})
		return
	}

	account, err := h.repo.GetByUsername(c, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed", "details": err.Error()})
		return
	}

	if err := h.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	h.log.Info().Str("user_id", account.ID.String()).Msg("User login successful")

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"user_id":  account.ID.String(),
		"username": account.Username,
		"role":     account.Role,
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	account, err := h.repo.GetByID(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         account.ID.String(),
		"username":   account.Username,
		"email":      account.Email,
		"first_name": account.FirstName,
		"last_name":  account.LastName,
		"role":       account.Role,
		"created_at": account.CreatedAt,
	})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	role := c.Query("role")

	accounts, err := h.repo.List(c, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users", "details": err.Error()})
		return
	}

	users := make([]gin.H, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, gin.H{
			"id":         a.ID.String(),
			"username":   a.Username,
			"email":      a.Email,
			"first_name": a.FirstName,
			"last_name":  a.LastName,
			"role":       a.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ValidateUser is the existence/role check consumed by sibling services.
func (h *UserHandler) ValidateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "User not found"})
		return
	}

	account, err := h.repo.GetByID(c, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"user_id":  account.ID.String(),
		"username": account.Username,
		"role":     account.Role,
	})
}
