package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eduplatform/services/content-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONB stores an opaque JSON payload in a jsonb column.
type JSONB json.RawMessage

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	return nil
}

type ContentGorm struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID    string    `gorm:"index;not null;size:64"`
	Title       string    `gorm:"not null;size:200"`
	ContentType string    `gorm:"not null;size:20"`
	ContentData JSONB     `gorm:"type:jsonb;not null"`
	AuthorID    string    `gorm:"not null;size:64"`
	Order       int       `gorm:"column:order;default:0"`
	IsPublished bool      `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ContentGorm) TableName() string {
	return "course_contents"
}

func toGormContent(c *domain.Content) *ContentGorm {
	return &ContentGorm{
		ID:          c.ID,
		CourseID:    c.CourseID,
		Title:       c.Title,
		ContentType: c.ContentType,
		ContentData: JSONB(c.ContentData),
		AuthorID:    c.AuthorID,
		Order:       c.Order,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toDomainContent(c *ContentGorm) *domain.Content {
	return &domain.Content{
		ID:          c.ID,
		CourseID:    c.CourseID,
		Title:       c.Title,
		ContentType: c.ContentType,
		ContentData: json.RawMessage(c.ContentData),
		AuthorID:    c.AuthorID,
		Order:       c.Order,
		IsPublished: c.IsPublished,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(ctx context.Context, content *domain.Content) error {
	gormContent := toGormContent(content)

	if err := r.db.WithContext(ctx).Create(gormContent).Error; err != nil {
		return err
	}

	content.ID = gormContent.ID
	return nil
}

func (r *ContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	var model ContentGorm

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContentNotFound
		}
		return nil, err
	}

	return toDomainContent(&model), nil
}

// ListByCourse returns the course materials sorted by their explicit
// order field, optionally restricted to published ones.
func (r *ContentRepository) ListByCourse(ctx context.Context, courseID string, publishedOnly bool) ([]domain.Content, error) {
	var models []ContentGorm

	query := r.db.WithContext(ctx).Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	if err := query.Order("\"order\" asc").Find(&models).Error; err != nil {
		return nil, err
	}

	contents := make([]domain.Content, 0, len(models))
	for i := range models {
		contents = append(contents, *toDomainContent(&models[i]))
	}
	return contents, nil
}

// Update applies a sparse merge: only the given columns are written,
// updated_at is always refreshed. Returns the updated row.
func (r *ContentRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*domain.Content, error) {
	fields["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).
		Model(&ContentGorm{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrContentNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *ContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ContentGorm{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&ContentGorm{})
}
