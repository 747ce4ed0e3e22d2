package repositories

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"menfem/internal/models/db_models"
	"menfem/internal/models/request_models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&db_models.Category{},
		&db_models.Tag{},
		&db_models.ContentItem{},
		&db_models.DigestRecord{},
		&db_models.DigestItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM content_item_tags")
		db.Exec("DELETE FROM digest_items")
		db.Exec("DELETE FROM digest_records")
		db.Exec("DELETE FROM content_items")
		db.Exec("DELETE FROM categories")
		db.Exec("DELETE FROM tags")
	})
	return db
}

func seedArticle(t *testing.T, db *gorm.DB, slug string, publishedAt int64, opts func(*db_models.ContentItem)) *db_models.ContentItem {
	t.Helper()
	item := &db_models.ContentItem{
		Kind:        db_models.KindArticle,
		Slug:        slug,
		Title:       "Title " + slug,
		Summary:     "Summary " + slug,
		Body:        "Body " + slug,
		IsPublished: true,
		PublishedAt: &publishedAt,
	}
	if opts != nil {
		opts(item)
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed %s: %v", slug, err)
	}
	return item
}

func TestList_PublishedOnlyFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	seedArticle(t, db, "published", 1000, nil)
	seedArticle(t, db, "draft", 1000, func(i *db_models.ContentItem) {
		i.IsPublished = false
	})

	items, total, err := repo.List(context.Background(), request_models.ContentListQuery{
		Page: 1, PageSize: 10, PublishedOnly: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if len(items) != 1 || items[0].Slug != "published" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestList_CountIgnoresPagination(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	for i := 0; i < 7; i++ {
		seedArticle(t, db, fmt.Sprintf("item-%d", i), int64(1000+i), nil)
	}

	items, total, err := repo.List(context.Background(), request_models.ContentListQuery{
		Page: 2, PageSize: 3, PublishedOnly: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
}

func TestList_PagesAreDisjointAndExhaustive(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	for i := 0; i < 10; i++ {
		seedArticle(t, db, fmt.Sprintf("item-%d", i), 1000, nil) // identical publishedAt
	}

	seen := map[string]bool{}
	for page := 1; page <= 4; page++ {
		items, _, err := repo.List(context.Background(), request_models.ContentListQuery{
			Page: page, PageSize: 3, PublishedOnly: true,
		})
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		for _, item := range items {
			if seen[item.Slug] {
				t.Fatalf("slug %s returned twice; id tie-break not stable", item.Slug)
			}
			seen[item.Slug] = true
		}
	}
	if len(seen) != 10 {
		t.Fatalf("saw %d distinct items, want 10", len(seen))
	}
}

func TestList_OutOfRangePageIsEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)
	seedArticle(t, db, "only-one", 1000, nil)

	items, total, err := repo.List(context.Background(), request_models.ContentListQuery{
		Page: 5, PageSize: 10, PublishedOnly: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 || total != 1 {
		t.Fatalf("items=%d total=%d, want 0 and 1", len(items), total)
	}
}

func TestList_SearchMatchesTitleAndSummary(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	seedArticle(t, db, "grooming", 1000, func(i *db_models.ContentItem) {
		i.Title = "The Grooming Guide"
		i.Summary = "Essentials"
	})
	seedArticle(t, db, "style", 1001, func(i *db_models.ContentItem) {
		i.Title = "Style Basics"
		i.Summary = "A grooming-adjacent capsule wardrobe"
	})
	seedArticle(t, db, "other", 1002, func(i *db_models.ContentItem) {
		i.Title = "Something Else"
		i.Summary = "Unrelated"
	})

	items, total, err := repo.List(context.Background(), request_models.ContentListQuery{
		Page: 1, PageSize: 10, Search: "GROOMING", PublishedOnly: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total=%d len=%d, want 2 and 2", total, len(items))
	}
}

func TestList_FiltersCombineConjunctively(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	tag := db_models.Tag{Name: "Fitness", Slug: "fitness"}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatal(err)
	}

	seedArticle(t, db, "tagged-match", 1000, func(i *db_models.ContentItem) {
		i.Title = "Kettlebell Plan"
		i.Tags = []db_models.Tag{tag}
	})
	seedArticle(t, db, "tagged-no-search", 1001, func(i *db_models.ContentItem) {
		i.Title = "Mobility Routine"
		i.Tags = []db_models.Tag{tag}
	})
	seedArticle(t, db, "search-no-tag", 1002, func(i *db_models.ContentItem) {
		i.Title = "Kettlebell History"
	})

	items, total, err := repo.List(context.Background(), request_models.ContentListQuery{
		Page: 1, PageSize: 10, Search: "kettlebell", TagSlug: "fitness", PublishedOnly: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Slug != "tagged-match" {
		t.Fatalf("want exactly tagged-match, got total=%d items=%+v", total, items)
	}
}

func TestList_CategoryFilter(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	cat := db_models.Category{Name: "Culture", Slug: "culture"}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatal(err)
	}
	seedArticle(t, db, "in-category", 1000, func(i *db_models.ContentItem) {
		i.CategoryID = &cat.ID
	})
	seedArticle(t, db, "no-category", 1001, nil)

	items, total, err := repo.List(context.Background(), request_models.ContentListQuery{
		Page: 1, PageSize: 10, CategorySlug: "culture", PublishedOnly: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || items[0].Slug != "in-category" {
		t.Fatalf("want in-category only, got total=%d items=%+v", total, items)
	}
}

func TestList_OrderByAllowListAndFallback(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	seedArticle(t, db, "old", 1000, func(i *db_models.ContentItem) { i.ViewCount = 50 })
	seedArticle(t, db, "new", 2000, func(i *db_models.ContentItem) { i.ViewCount = 5 })

	// Known key: viewCount descending puts "old" first.
	items, _, err := repo.List(context.Background(), request_models.ContentListQuery{
		Page: 1, PageSize: 10, OrderBy: "viewCount", OrderDirection: "desc", PublishedOnly: true,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items[0].Slug != "old" {
		t.Fatalf("viewCount desc: first = %s, want old", items[0].Slug)
	}

	// Hostile key falls back to published_at instead of reaching SQL.
	items, _, err = repo.List(context.Background(), request_models.ContentListQuery{
		Page: 1, PageSize: 10, OrderBy: "view_count; DROP TABLE content_items", OrderDirection: "desc", PublishedOnly: true,
	})
	if err != nil {
		t.Fatalf("List with unknown orderBy: %v", err)
	}
	if items[0].Slug != "new" {
		t.Fatalf("fallback order: first = %s, want new", items[0].Slug)
	}

	// The table is still there.
	var count int64
	if err := db.Model(&db_models.ContentItem{}).Count(&count).Error; err != nil || count != 2 {
		t.Fatalf("table damaged or wrong count: %d %v", count, err)
	}
}

func TestList_SameArgsSameResult(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	for i := 0; i < 5; i++ {
		seedArticle(t, db, fmt.Sprintf("item-%d", i), 1000, nil)
	}

	q := request_models.ContentListQuery{Page: 1, PageSize: 10, PublishedOnly: true}
	first, _, err := repo.List(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := repo.List(context.Background(), q)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("order unstable at %d: %s vs %s", i, first[i].Slug, second[i].Slug)
		}
	}
}

func TestIncrementViewCountBySlug(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)
	item := seedArticle(t, db, "counted", 1000, nil)

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViewCountBySlug(context.Background(), "counted"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	var reloaded db_models.ContentItem
	if err := db.First(&reloaded, "id = ?", item.ID).Error; err != nil {
		t.Fatal(err)
	}
	if reloaded.ViewCount != 3 {
		t.Fatalf("view_count = %d, want 3", reloaded.ViewCount)
	}
}

func TestListDigestCandidates_ExcludesSentAndFuture(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	sentItem := seedArticle(t, db, "already-sent", 1000, nil)
	eligible := seedArticle(t, db, "eligible", 2000, nil)
	seedArticle(t, db, "too-new", 9000, nil)
	seedArticle(t, db, "wrong-kind", 2000, func(i *db_models.ContentItem) {
		i.Kind = db_models.KindVideo
	})
	seedArticle(t, db, "unpublished", 2000, func(i *db_models.ContentItem) {
		i.IsPublished = false
	})

	record := db_models.DigestRecord{Subject: "Past issue", SentAt: 1500}
	if err := db.Create(&record).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&db_models.DigestItem{
		DigestRecordID: record.ID,
		ContentItemID:  sentItem.ID,
		Featured:       true,
	}).Error; err != nil {
		t.Fatal(err)
	}

	items, err := repo.ListDigestCandidates(context.Background(), db_models.KindArticle, 5000, 10)
	if err != nil {
		t.Fatalf("ListDigestCandidates: %v", err)
	}
	if len(items) != 1 || items[0].ID != eligible.ID {
		t.Fatalf("want only eligible, got %+v", items)
	}
}

func TestListDigestCandidates_NewestFirstWithLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewContentRepository(db)

	for i := 1; i <= 8; i++ {
		seedArticle(t, db, fmt.Sprintf("day-%d", i), int64(i*100), nil)
	}

	items, err := repo.ListDigestCandidates(context.Background(), db_models.KindArticle, 10_000, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 6 {
		t.Fatalf("len = %d, want 6", len(items))
	}
	if items[0].Slug != "day-8" || items[5].Slug != "day-3" {
		t.Fatalf("ordering wrong: first=%s last=%s", items[0].Slug, items[5].Slug)
	}
}
