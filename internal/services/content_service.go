package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"menfem/internal/models/db_models"
	"menfem/internal/models/request_models"
	"menfem/internal/models/response_models"
	"menfem/internal/repositories"
	mem "menfem/pkg/memcache"
	"menfem/pkg/utils"
)

type ContentServiceInterface interface {
	ListContent(ctx context.Context, q request_models.ContentListQuery, viewer *Viewer) (*response_models.ContentPage, error)
	GetContentBySlug(ctx context.Context, slug string, viewer *Viewer) (*response_models.ContentDetailResponse, error)
	TrackViews(ctx context.Context, events []request_models.TrackEvent) error

	// Admin path. Slug immutability after publish and purchase-reference
	// guards live here, not in the repository.
	CreateContent(ctx context.Context, req request_models.CreateContentRequest) (uuid.UUID, error)
	UpdateContent(ctx context.Context, req request_models.UpdateContentRequest) error
	PublishContent(ctx context.Context, id uuid.UUID) error
	DeleteContent(ctx context.Context, id uuid.UUID) error
}

type ContentService struct {
	contentRepo  repositories.ContentRepository
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
	purchaseRepo repositories.PurchaseRepository
	cache        mem.QueryCache
}

func NewContentService(
	contentRepo repositories.ContentRepository,
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
	purchaseRepo repositories.PurchaseRepository,
	cache mem.QueryCache) ContentServiceInterface {
	return &ContentService{
		contentRepo:  contentRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		purchaseRepo: purchaseRepo,
		cache:        cache,
	}
}

type cachedList struct {
	items []db_models.ContentItem
	total int64
}

func listCacheKey(q request_models.ContentListQuery) string {
	return fmt.Sprintf("content:list:%d:%d:%s:%s:%s:%s:%s:%s:%t",
		q.Page, q.PageSize, q.Search, q.Kind, q.CategorySlug, q.TagSlug,
		q.OrderBy, q.OrderDirection, q.PublishedOnly)
}

func (s *ContentService) ListContent(ctx context.Context, q request_models.ContentListQuery, viewer *Viewer) (*response_models.ContentPage, error) {
	q = q.WithDefaults()
	if q.Page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if q.PageSize < 1 || q.PageSize > request_models.MaxPageSize {
		return nil, utils.ErrInvalidPageSize
	}

	// The cache holds repository output, never viewer-specific annotations,
	// so one entry serves every identity.
	key := listCacheKey(q)
	var items []db_models.ContentItem
	var total int64
	if hit, ok := s.cache.Get(key); ok {
		cached := hit.(cachedList)
		items, total = cached.items, cached.total
	} else {
		var err error
		items, total, err = s.contentRepo.List(ctx, q)
		if err != nil {
			log.Printf("Error listing content: %v", err)
			return nil, utils.ErrDatabaseError
		}
		s.cache.Set(key, cachedList{items: items, total: total})
	}

	responses := make([]response_models.ContentResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toContentResponse(&items[i], viewer))
	}

	return &response_models.ContentPage{
		Items:      responses,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		HasNext:    int64(q.Page)*int64(q.PageSize) < total,
		HasPrev:    q.Page > 1,
	}, nil
}

func (s *ContentService) GetContentBySlug(ctx context.Context, slug string, viewer *Viewer) (*response_models.ContentDetailResponse, error) {
	key := "content:detail:" + slug
	var item *db_models.ContentItem
	if hit, ok := s.cache.Get(key); ok {
		item = hit.(*db_models.ContentItem)
	} else {
		var err error
		item, err = s.contentRepo.GetBySlug(ctx, slug)
		if err != nil {
			log.Printf("Error fetching content %q: %v", slug, err)
			return nil, utils.ErrDatabaseError
		}
		if item != nil {
			s.cache.Set(key, item)
		}
	}

	decision := CanViewDetail(item, viewer)
	if !decision.Visible && decision.Reason == ReasonNotFound {
		// Unpublished and missing share one answer so existence never leaks.
		return nil, utils.ErrContentNotFound
	}

	resp := &response_models.ContentDetailResponse{
		ContentResponse: toContentResponse(item, viewer),
	}
	if decision.Visible {
		resp.Body = item.Body
		s.trackView(item.Slug)
	}
	return resp, nil
}

// trackView is fire-and-forget: a lost increment under failure is acceptable
// staleness, and the render never waits on it.
func (s *ContentService) trackView(slug string) {
	go func() {
		if err := s.contentRepo.IncrementViewCountBySlug(context.Background(), slug); err != nil {
			log.Printf("Error incrementing view count for %q: %v", slug, err)
		}
	}()
}

func (s *ContentService) TrackViews(ctx context.Context, events []request_models.TrackEvent) error {
	for _, e := range events {
		if err := s.contentRepo.IncrementViewCountBySlug(ctx, e.Slug); err != nil {
			log.Printf("Error tracking view for %q: %v", e.Slug, err)
			return utils.ErrDatabaseError
		}
	}
	return nil
}

// ------------------- Admin path -------------------

func (s *ContentService) CreateContent(ctx context.Context, req request_models.CreateContentRequest) (uuid.UUID, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}

	existing, err := s.contentRepo.GetBySlug(ctx, slug)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return uuid.Nil, utils.ErrSlugTaken
	}

	item := &db_models.ContentItem{
		Kind:       db_models.ContentKind(req.Kind),
		Slug:       slug,
		Title:      req.Title,
		Summary:    req.Summary,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		IsPremium:  req.IsPremium,
		PriceMinor: req.PriceMinor,
		Currency:   req.Currency,
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return uuid.Nil, utils.ErrCategoryNotFound
		}
		item.CategoryID = &categoryID
	}

	tags, err := s.tagRepo.GetBySlugs(ctx, req.TagSlugs)
	if err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	item.Tags = tags

	id, err := s.contentRepo.Create(ctx, item)
	if err != nil {
		log.Printf("Error creating content: %v", err)
		return uuid.Nil, utils.ErrDatabaseError
	}

	s.cache.Invalidate("content:")
	return id, nil
}

func (s *ContentService) UpdateContent(ctx context.Context, req request_models.UpdateContentRequest) error {
	item, err := s.contentRepo.GetByID(ctx, req.ID.String())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if item == nil {
		return utils.ErrContentNotFound
	}

	if req.Slug != "" && req.Slug != item.Slug {
		// Published slugs are load-bearing URLs; draft slugs may still move.
		if item.IsPublished {
			return utils.ErrSlugImmutable
		}
		taken, err := s.contentRepo.GetBySlug(ctx, req.Slug)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if taken != nil {
			return utils.ErrSlugTaken
		}
		item.Slug = req.Slug
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	item.Summary = req.Summary
	item.Body = req.Body
	item.CoverImage = req.CoverImage
	item.IsPremium = req.IsPremium
	item.PriceMinor = req.PriceMinor
	if req.Currency != "" {
		item.Currency = req.Currency
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return utils.ErrCategoryNotFound
		}
		item.CategoryID = &categoryID
	}

	if req.TagSlugs != nil {
		tags, err := s.tagRepo.GetBySlugs(ctx, req.TagSlugs)
		if err != nil {
			return utils.ErrDatabaseError
		}
		item.Tags = tags
	}

	if err := s.contentRepo.Update(ctx, item); err != nil {
		log.Printf("Error updating content %s: %v", req.ID, err)
		return utils.ErrDatabaseError
	}

	s.cache.Invalidate("content:")
	return nil
}

func (s *ContentService) PublishContent(ctx context.Context, id uuid.UUID) error {
	item, err := s.contentRepo.GetByID(ctx, id.String())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if item == nil {
		return utils.ErrContentNotFound
	}
	if item.IsPublished {
		return nil
	}

	item.IsPublished = true
	if item.PublishedAt == nil {
		now := utils.NowUnixSeconds()
		item.PublishedAt = &now
	}

	if err := s.contentRepo.Update(ctx, item); err != nil {
		log.Printf("Error publishing content %s: %v", id, err)
		return utils.ErrDatabaseError
	}

	s.cache.Invalidate("content:")
	return nil
}

func (s *ContentService) DeleteContent(ctx context.Context, id uuid.UUID) error {
	item, err := s.contentRepo.GetByID(ctx, id.String())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if item == nil {
		return utils.ErrContentNotFound
	}

	refs, err := s.purchaseRepo.CountCompletedForContent(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if refs > 0 {
		return utils.ErrContentReferenced
	}

	if err := s.contentRepo.Delete(ctx, id); err != nil {
		log.Printf("Error deleting content %s: %v", id, err)
		return utils.ErrDatabaseError
	}

	s.cache.Invalidate("content:")
	return nil
}

// ------------------- Mapping -------------------

func toContentResponse(item *db_models.ContentItem, viewer *Viewer) response_models.ContentResponse {
	resp := response_models.ContentResponse{
		ID:         item.ID.String(),
		Kind:       string(item.Kind),
		Slug:       item.Slug,
		Title:      item.Title,
		Summary:    item.Summary,
		CoverImage: item.CoverImage,
		IsPremium:  item.IsPremium,
		Locked:     item.IsPremium && !CanView(item, viewer),
		ViewCount:  item.ViewCount,
		PriceMinor: item.PriceMinor,
		Currency:   item.Currency,
	}
	if item.PublishedAt != nil {
		resp.PublishedAt = *item.PublishedAt
	}
	if item.Category != nil {
		resp.Category = &response_models.CategoryResponse{
			ID:       item.Category.ID.String(),
			Name:     item.Category.Name,
			Slug:     item.Category.Slug,
			Position: item.Category.Position,
		}
	}
	for _, tag := range item.Tags {
		resp.Tags = append(resp.Tags, response_models.TagResponse{
			ID:   tag.ID.String(),
			Name: tag.Name,
			Slug: tag.Slug,
		})
	}
	return resp
}
