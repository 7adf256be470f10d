package repository

import (
	"context"
	"errors"
	"time"

	"eduplatform/services/course-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistrationGorm struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID        string    `gorm:"index;not null;size:64"`
	CourseID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Status           string    `gorm:"not null;size:20;default:active"`
	RegistrationDate time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (RegistrationGorm) TableName() string {
	return "registrations"
}

func toGormRegistration(r *domain.Registration) *RegistrationGorm {
	return &RegistrationGorm{
		ID:               r.ID,
		StudentID:        r.StudentID,
		CourseID:         r.CourseID,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toDomainRegistration(r *RegistrationGorm) *domain.Registration {
	return &domain.Registration{
		ID:               r.ID,
		StudentID:        r.StudentID,
		CourseID:         r.CourseID,
		Status:           r.Status,
		RegistrationDate: r.RegistrationDate,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	gormReg := toGormRegistration(reg)

	if err := r.db.WithContext(ctx).Create(gormReg).Error; err != nil {
		return err
	}

	reg.ID = gormReg.ID
	return nil
}

func (r *RegistrationRepository) FindByStudentAndCourse(ctx context.Context, studentID string, courseID uuid.UUID) (*domain.Registration, error) {
	var model RegistrationGorm

	err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, err
	}

	return toDomainRegistration(&model), nil
}

// CountByCourse counts registrations of every status, matching the
// capacity check of the registration endpoint.
func (r *RegistrationRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RegistrationGorm{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *RegistrationRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.StudentRegistration, error) {
	var models []RegistrationGorm

	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("registration_date asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uuid.UUID, 0, len(models))
	for i := range models {
		courseIDs = append(courseIDs, models[i].CourseID)
	}

	coursesByID := make(map[uuid.UUID]*domain.Course, len(courseIDs))
	if len(courseIDs) > 0 {
		var courses []CourseGorm
		if err := r.db.WithContext(ctx).Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
			return nil, err
		}
		for i := range courses {
			coursesByID[courses[i].ID] = toDomainCourse(&courses[i])
		}
	}

	result := make([]domain.StudentRegistration, 0, len(models))
	for i := range models {
		result = append(result, domain.StudentRegistration{
			Registration: *toDomainRegistration(&models[i]),
			Course:       coursesByID[models[i].CourseID],
		})
	}
	return result, nil
}

func (r *RegistrationRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Registration, error) {
	var models []RegistrationGorm

	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("registration_date asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	regs := make([]domain.Registration, 0, len(models))
	for i := range models {
		regs = append(regs, *toDomainRegistration(&models[i]))
	}
	return regs, nil
}
