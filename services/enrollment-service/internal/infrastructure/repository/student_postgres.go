package repository

import (
	"context"
	"errors"
	"time"

	"eduplatform/services/enrollment-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentGorm struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName   string    `gorm:"not null;size:100"`
	LastName    string    `gorm:"not null;size:100"`
	Email       string    `gorm:"uniqueIndex;not null;size:120"`
	DateOfBirth *time.Time
	Phone       string `gorm:"size:20"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (StudentGorm) TableName() string {
	return "students"
}

func toGormStudent(s *domain.Student) *StudentGorm {
	return &StudentGorm{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		DateOfBirth: s.DateOfBirth,
		Phone:       s.Phone,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toDomainStudent(s *StudentGorm) *domain.Student {
	return &domain.Student{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Email:       s.Email,
		DateOfBirth: s.DateOfBirth,
		Phone:       s.Phone,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	gormStudent := toGormStudent(student)

	result := r.db.WithContext(ctx).Create(gormStudent)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrStudentAlreadyExists
		}
		return result.Error
	}

	student.ID = gormStudent.ID
	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	var model StudentGorm

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	return toDomainStudent(&model), nil
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	var model StudentGorm

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	return toDomainStudent(&model), nil
}

func (r *StudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	var models []StudentGorm

	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&models).Error; err != nil {
		return nil, err
	}

	students := make([]domain.Student, 0, len(models))
	for i := range models {
		students = append(students, *toDomainStudent(&models[i]))
	}
	return students, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&StudentGorm{})
}
