package repository

import (
	"context"
	"time"

	"eduplatform/services/auth-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentProfileGorm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ParentID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Attendance []AttendanceGorm `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;"`
	Marks      []MarkGorm       `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;"`
	PTM        []PTMGorm        `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE;"`
}

func (StudentProfileGorm) TableName() string {
	return "student_profiles"
}

type AttendanceGorm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID uuid.UUID `gorm:"type:uuid;index"`
	Date      time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;size:10"`
}

func (AttendanceGorm) TableName() string {
	return "student_attendance"
}

type MarkGorm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID uuid.UUID `gorm:"type:uuid;index"`
	Subject   string    `gorm:"not null;size:100"`
	Exam      string    `gorm:"not null;size:100"`
	Score     int       `gorm:"not null"`
	OutOf     int       `gorm:"not null"`
}

func (MarkGorm) TableName() string {
	return "student_marks"
}

type PTMGorm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID uuid.UUID `gorm:"type:uuid;index"`
	Date      time.Time `gorm:"not null"`
	Notes     string
	Attended  bool `gorm:"default:false"`
}

func (PTMGorm) TableName() string {
	return "student_ptm"
}

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, profile *domain.StudentProfile) error {
	gormProfile := &StudentProfileGorm{
		ID:       profile.ID,
		UserID:   profile.UserID,
		ParentID: profile.ParentID,
	}

	if err := r.db.WithContext(ctx).Create(gormProfile).Error; err != nil {
		return err
	}

	profile.ID = gormProfile.ID
	return nil
}

// AutoMigrate creates the auth-service tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserGorm{},
		&StudentProfileGorm{},
		&AttendanceGorm{},
		&MarkGorm{},
		&PTMGorm{},
	)
}
