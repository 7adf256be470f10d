package usecase

import (
	"context"
	"errors"
	"time"

	"eduplatform/services/auth-service/internal/application"
	"eduplatform/services/auth-service/internal/domain"
	"eduplatform/services/auth-service/internal/infrastructure/security"

	"github.com/google/uuid"
)

type AuthUseCase struct {
	userRepo     application.UserRepository
	studentRepo  application.StudentRepository
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
}

func NewAuthUseCase(
	ur application.UserRepository,
	sr application.StudentRepository,
	h *security.PasswordHasher,
	tm *security.TokenManager,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		studentRepo:  sr,
		hasher:       h,
		tokenManager: tm,
	}
}

func (uc *AuthUseCase) SignupParent(ctx context.Context, name, email, password string) (string, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	parent := &domain.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      domain.RoleParent,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.userRepo.Create(ctx, parent); err != nil {
		return "", err
	}

	return parent.ID.String(), nil
}

// SignupStudent creates the student account and its profile linked to an
// already registered parent. Returns the profile id.
func (uc *AuthUseCase) SignupStudent(ctx context.Context, name, email, password, parentEmail string) (string, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return "", domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	parent, err := uc.userRepo.GetParentByEmail(ctx, parentEmail)
	if err != nil {
		return "", err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	student := &domain.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Role:      domain.RoleStudent,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.userRepo.Create(ctx, student); err != nil {
		return "", err
	}

	profile := &domain.StudentProfile{
		ID:       uuid.New(),
		UserID:   student.ID,
		ParentID: parent.ID,
	}

	if err := uc.studentRepo.Create(ctx, profile); err != nil {
		return "", err
	}

	return profile.ID.String(), nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}

	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokenManager.Generate(user.ID.String(), user.Role)
	if err != nil {
		return "", "", err
	}

	return token, user.Role, nil
}
