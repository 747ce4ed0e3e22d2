package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"menfem/internal/models/db_models"
	"menfem/internal/models/request_models"
	"menfem/internal/models/response_models"
	"menfem/internal/repositories"
	mem "menfem/pkg/memcache"
	"menfem/pkg/utils"
)

// TaxonomyService covers the category and tag surfaces. Both are small enough
// to share one service.
type TaxonomyServiceInterface interface {
	ListCategories(ctx context.Context) ([]response_models.CategoryResponse, error)
	CreateCategory(ctx context.Context, req request_models.CreateCategoryRequest) (uuid.UUID, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListTags(ctx context.Context, page, pageSize int) ([]response_models.TagResponse, error)
	CreateTag(ctx context.Context, req request_models.CreateTagRequest) (uuid.UUID, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

type TaxonomyService struct {
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
	cache        mem.QueryCache
}

func NewTaxonomyService(
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
	cache mem.QueryCache,
) TaxonomyServiceInterface {
	return &TaxonomyService{
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		cache:        cache,
	}
}

func (s *TaxonomyService) ListCategories(ctx context.Context) ([]response_models.CategoryResponse, error) {
	const key = "taxonomy:categories"
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]response_models.CategoryResponse), nil
	}

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, response_models.CategoryResponse{
			ID:       cat.ID.String(),
			Name:     cat.Name,
			Slug:     cat.Slug,
			Position: cat.Position,
		})
	}

	s.cache.Set(key, out)
	return out, nil
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, req request_models.CreateCategoryRequest) (uuid.UUID, error) {
	slug := utils.Slugify(req.Name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return uuid.Nil, utils.ErrSlugTaken
	}

	category := &db_models.Category{
		Name:     req.Name,
		Slug:     slug,
		Position: req.Position,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		log.Printf("Error creating category: %v", err)
		return uuid.Nil, utils.ErrDatabaseError
	}

	s.cache.Invalidate("taxonomy:")
	return category.ID, nil
}

func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		log.Printf("Error deleting category %s: %v", id, err)
		return utils.ErrDatabaseError
	}
	s.cache.Invalidate("taxonomy:")
	s.cache.Invalidate("content:")
	return nil
}

func (s *TaxonomyService) ListTags(ctx context.Context, page, pageSize int) ([]response_models.TagResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	tags, err := s.tagRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, response_models.TagResponse{
			ID:   tag.ID.String(),
			Name: tag.Name,
			Slug: tag.Slug,
		})
	}
	return out, nil
}

func (s *TaxonomyService) CreateTag(ctx context.Context, req request_models.CreateTagRequest) (uuid.UUID, error) {
	slug := utils.Slugify(req.Name)

	existing, err := s.tagRepo.GetBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return uuid.Nil, utils.ErrSlugTaken
	}

	tag := &db_models.Tag{Name: req.Name, Slug: slug}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		log.Printf("Error creating tag: %v", err)
		return uuid.Nil, utils.ErrDatabaseError
	}
	return tag.ID, nil
}

func (s *TaxonomyService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		log.Printf("Error deleting tag %s: %v", id, err)
		return utils.ErrDatabaseError
	}
	// Tag filters feed the content list cache, so both prefixes go.
	s.cache.Invalidate("taxonomy:")
	s.cache.Invalidate("content:")
	return nil
}
