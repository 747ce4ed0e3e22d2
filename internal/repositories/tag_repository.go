package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"menfem/internal/models/db_models"
)

type TagRepository interface {
	Create(ctx context.Context, tag *db_models.Tag) error
	GetBySlug(ctx context.Context, slug string) (*db_models.Tag, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]db_models.Tag, error)
	GetAll(ctx context.Context, page, pageSize int) ([]db_models.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

type tagRepository struct {
	db *gorm.DB
}

func (t *tagRepository) Create(ctx context.Context, tag *db_models.Tag) error {
	return t.db.WithContext(ctx).Create(tag).Error
}

func (t *tagRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Tag, error) {
	var tag db_models.Tag
	err := t.db.WithContext(ctx).First(&tag, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (t *tagRepository) GetBySlugs(ctx context.Context, slugs []string) ([]db_models.Tag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var tags []db_models.Tag
	err := t.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (t *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := t.db.WithContext(ctx).Delete(&db_models.Tag{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (t *tagRepository) GetAll(ctx context.Context, page, pageSize int) ([]db_models.Tag, error) {
	var tags []db_models.Tag
	err := t.db.WithContext(ctx).Scopes(func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
