package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"menfem/internal/models/db_models"
	"menfem/internal/models/request_models"
)

type ContentRepository interface {
	Create(ctx context.Context, item *db_models.ContentItem) (uuid.UUID, error)
	Update(ctx context.Context, item *db_models.ContentItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.ContentItem, error)
	GetBySlug(ctx context.Context, slug string) (*db_models.ContentItem, error)

	// List applies the filters conjunctively and returns one page plus the
	// total match count, which ignores pagination. An out-of-range page is an
	// empty slice, not an error.
	List(ctx context.Context, q request_models.ContentListQuery) ([]db_models.ContentItem, int64, error)

	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementViewCountBySlug(ctx context.Context, slug string) error

	// ListDigestCandidates returns published items of the given kind with
	// publishedAt strictly before the cutoff, newest first, skipping anything
	// already included in a previous digest.
	ListDigestCandidates(ctx context.Context, kind db_models.ContentKind, before int64, limit int) ([]db_models.ContentItem, error)
}

// Allow-list so raw orderBy strings never reach the SQL layer. Unknown keys
// fall back to published_at; the request model documents that policy.
var contentOrderColumns = map[string]string{
	"createdAt":   "created_at",
	"publishedAt": "published_at",
	"viewCount":   "view_count",
	"title":       "title",
}

type contentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *db_models.ContentItem) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return uuid.Nil, err
	}
	return item.ID, nil
}

func (r *contentRepository) Update(ctx context.Context, item *db_models.ContentItem) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(item).Association("Tags").Replace(item.Tags); err != nil {
			return fmt.Errorf("failed to replace tags: %w", err)
		}

		result := tx.Save(item)
		if result.Error != nil {
			return fmt.Errorf("failed to update content: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *contentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.ContentItem{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Read helpers share one convention: nil item + nil error when no rows match.

func (r *contentRepository) GetByID(ctx context.Context, id string) (*db_models.ContentItem, error) {
	var item db_models.ContentItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		First(&item, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) GetBySlug(ctx context.Context, slug string) (*db_models.ContentItem, error) {
	var item db_models.ContentItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags").
		First(&item, "slug = ?", slug).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) List(ctx context.Context, q request_models.ContentListQuery) ([]db_models.ContentItem, int64, error) {
	base := r.db.WithContext(ctx).Model(&db_models.ContentItem{})

	if q.Kind != "" {
		base = base.Where("content_items.kind = ?", q.Kind)
	}
	if q.PublishedOnly {
		base = base.Where("content_items.is_published = ?", true)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where("(LOWER(content_items.title) LIKE ? OR LOWER(content_items.summary) LIKE ?)", pattern, pattern)
	}
	if q.CategorySlug != "" {
		base = base.
			Joins("JOIN categories ON categories.id = content_items.category_id").
			Where("categories.slug = ?", q.CategorySlug)
	}
	if q.TagSlug != "" {
		base = base.
			Joins("JOIN content_item_tags ON content_item_tags.content_item_id = content_items.id").
			Joins("JOIN tags ON tags.id = content_item_tags.tag_id").
			Where("tags.slug = ?", q.TagSlug)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := contentOrderColumns[q.OrderBy]
	if !ok {
		column = "published_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.OrderDirection, "asc") {
		direction = "ASC"
	}

	offset := (q.Page - 1) * q.PageSize
	var items []db_models.ContentItem
	err := base.Session(&gorm.Session{}).
		Preload("Category").
		Preload("Tags").
		Order(fmt.Sprintf("content_items.%s %s, content_items.id ASC", column, direction)).
		Offset(offset).
		Limit(q.PageSize).
		Find(&items).Error

	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *contentRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.ContentItem{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *contentRepository) IncrementViewCountBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.ContentItem{}).
		Where("slug = ?", slug).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *contentRepository) ListDigestCandidates(ctx context.Context, kind db_models.ContentKind, before int64, limit int) ([]db_models.ContentItem, error) {
	sent := r.db.WithContext(ctx).Model(&db_models.DigestItem{}).Select("content_item_id")

	var items []db_models.ContentItem
	err := r.db.WithContext(ctx).
		Where("kind = ? AND is_published = ? AND published_at IS NOT NULL AND published_at < ?", kind, true, before).
		Where("id NOT IN (?)", sent).
		Order("published_at DESC, id ASC").
		Limit(limit).
		Find(&items).Error

	if err != nil {
		return nil, err
	}
	return items, nil
}
