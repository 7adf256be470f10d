package repository

import (
	"context"
	"errors"
	"time"

	"eduplatform/services/auth-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserGorm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null;size:100"`
	Email     string    `gorm:"uniqueIndex;not null;size:100"`
	Password  string    `gorm:"not null"`
	Role      string    `gorm:"not null;size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserGorm) TableName() string {
	return "users"
}

func toGormUser(u *domain.User) *UserGorm {
	return &UserGorm{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDomainUser(u *UserGorm) *domain.User {
	return &domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	gormUser := toGormUser(user)

	result := r.db.WithContext(ctx).Create(gormUser)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return result.Error
	}

	user.ID = gormUser.ID
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var userModel UserGorm

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return toDomainUser(&userModel), nil
}

// GetParentByEmail looks the user up by email and role=parent, used to
// link a student signup to an existing parent account.
func (r *UserRepository) GetParentByEmail(ctx context.Context, email string) (*domain.User, error) {
	var userModel UserGorm

	err := r.db.WithContext(ctx).
		Where("email = ? AND role = ?", email, domain.RoleParent).
		First(&userModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrParentNotFound
		}
		return nil, err
	}

	return toDomainUser(&userModel), nil
}
