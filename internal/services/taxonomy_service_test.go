package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menfem/internal/models/db_models"
	"menfem/internal/models/request_models"
	"menfem/pkg/utils"
)

// recordingTagRepo tracks deletes so cache and routing behavior is observable.
type recordingTagRepo struct {
	fakeTagRepo
	tags    map[string]*db_models.Tag
	deleted []uuid.UUID
	err     error
}

func (r *recordingTagRepo) GetBySlug(ctx context.Context, slug string) (*db_models.Tag, error) {
	return r.tags[slug], nil
}

func (r *recordingTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func TestDeleteTag_InvalidatesContentCache(t *testing.T) {
	repo := &recordingTagRepo{tags: map[string]*db_models.Tag{}}
	cache := newFakeQueryCache()
	cache.Set("content:list:page1", "stale")
	cache.Set("taxonomy:categories", "stale")

	svc := NewTaxonomyService(fakeCategoryRepo{}, repo, cache)

	id := uuid.New()
	require.NoError(t, svc.DeleteTag(context.Background(), id))

	require.Len(t, repo.deleted, 1)
	assert.Equal(t, id, repo.deleted[0])

	_, listCached := cache.Get("content:list:page1")
	assert.False(t, listCached, "content list cache should be purged after a tag delete")
	_, taxCached := cache.Get("taxonomy:categories")
	assert.False(t, taxCached)
}

func TestDeleteTag_RepositoryFailure(t *testing.T) {
	repo := &recordingTagRepo{err: assert.AnError}
	svc := NewTaxonomyService(fakeCategoryRepo{}, repo, newFakeQueryCache())

	err := svc.DeleteTag(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestCreateTag_RejectsDuplicateSlug(t *testing.T) {
	repo := &recordingTagRepo{tags: map[string]*db_models.Tag{
		"go-basics": {Name: "Go Basics", Slug: "go-basics"},
	}}
	svc := NewTaxonomyService(fakeCategoryRepo{}, repo, newFakeQueryCache())

	_, err := svc.CreateTag(context.Background(), request_models.CreateTagRequest{Name: "Go Basics"})
	assert.ErrorIs(t, err, utils.ErrSlugTaken)
}
