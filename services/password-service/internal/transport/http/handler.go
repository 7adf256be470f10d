package handlers

import (
	"context"
	"errors"
	"net/http"

	"eduplatform/services/password-service/internal/domain"
	"eduplatform/services/password-service/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error
}

type PasswordHandler struct {
	repo   UserRepository
	hasher *security.PasswordHasher
	log    zerolog.Logger
}

func NewPasswordHandler(repo UserRepository, hasher *security.PasswordHasher, log zerolog.Logger) *PasswordHandler {
	return &PasswordHandler{repo: repo, hasher: hasher, log: log}
}

type changePasswordReq struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (h *PasswordHandler) ChangePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.repo.GetByEmail(c, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	hash, err := h.hasher.Hash(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	if err := h.repo.UpdatePassword(c, user.ID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	h.log.Info().Str("user_id", user.ID.String()).Msg("Password updated")

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
