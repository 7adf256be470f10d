package repository

import (
	"context"
	"errors"
	"time"

	"eduplatform/services/course-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseGorm struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"not null;size:200"`
	Description string
	Code        string `gorm:"uniqueIndex;not null;size:50"`
	Capacity    int    `gorm:"default:30"`
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CourseGorm) TableName() string {
	return "courses"
}

func toGormCourse(c *domain.Course) *CourseGorm {
	return &CourseGorm{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Code:        c.Code,
		Capacity:    c.Capacity,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toDomainCourse(c *CourseGorm) *domain.Course {
	return &domain.Course{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Code:        c.Code,
		Capacity:    c.Capacity,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	gormCourse := toGormCourse(course)

	result := r.db.WithContext(ctx).Create(gormCourse)
	if result.Error != nil {
		// The unique index backstops the handler's pre-check.
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrCourseCodeTaken
		}
		return result.Error
	}

	course.ID = gormCourse.ID
	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var model CourseGorm

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	return toDomainCourse(&model), nil
}

func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	var model CourseGorm

	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	return toDomainCourse(&model), nil
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	var models []CourseGorm

	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&models).Error; err != nil {
		return nil, err
	}

	courses := make([]domain.Course, 0, len(models))
	for i := range models {
		courses = append(courses, *toDomainCourse(&models[i]))
	}
	return courses, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&CourseGorm{}, &RegistrationGorm{})
}
