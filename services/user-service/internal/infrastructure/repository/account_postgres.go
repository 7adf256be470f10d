package repository

import (
	"context"
	"errors"
	"time"

	"eduplatform/services/user-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountGorm struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null;size:50"`
	Email        string    `gorm:"uniqueIndex;not null;size:120"`
	PasswordHash string    `gorm:"not null"`
	FirstName    string    `gorm:"size:100"`
	LastName     string    `gorm:"size:100"`
	Role         string    `gorm:"not null;size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AccountGorm) TableName() string {
	return "accounts"
}

func toGormAccount(a *domain.Account) *AccountGorm {
	return &AccountGorm{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toDomainAccount(a *AccountGorm) *domain.Account {
	return &domain.Account{
		ID:           a.ID,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	gormAccount := toGormAccount(account)

	result := r.db.WithContext(ctx).Create(gormAccount)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrUsernameTaken
		}
		return result.Error
	}

	account.ID = gormAccount.ID
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var model AccountGorm

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return toDomainAccount(&model), nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var model AccountGorm

	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return toDomainAccount(&model), nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var model AccountGorm

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return toDomainAccount(&model), nil
}

// List returns all accounts, optionally filtered by role.
func (r *AccountRepository) List(ctx context.Context, role string) ([]domain.Account, error) {
	var models []AccountGorm

	query := r.db.WithContext(ctx).Model(&AccountGorm{}).Order("created_at asc")
	if role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, *toDomainAccount(&models[i]))
	}
	return accounts, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&AccountGorm{})
}
