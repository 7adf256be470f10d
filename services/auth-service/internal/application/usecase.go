package application

import (
	"context"

	"eduplatform/services/auth-service/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetParentByEmail(ctx context.Context, email string) (*domain.User, error)
}

type StudentRepository interface {
	Create(ctx context.Context, profile *domain.StudentProfile) error
}
