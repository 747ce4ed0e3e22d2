package content_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"menfem/internal/api/controllers"
	"menfem/internal/repositories"
	"menfem/internal/services"
	mem "menfem/pkg/memcache"
)

var Module = fx.Provide(
	provideContentRepo, provideContentService,
	provideContentController, provideTrackingController)

func provideContentRepo(db *gorm.DB) repositories.ContentRepository {
	return repositories.NewContentRepository(db)
}

func provideContentService(
	contentRepo repositories.ContentRepository,
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
	purchaseRepo repositories.PurchaseRepository,
	cache mem.QueryCache) services.ContentServiceInterface {
	return services.NewContentService(contentRepo, categoryRepo, tagRepo, purchaseRepo, cache)
}

func provideContentController(
	contentService services.ContentServiceInterface,
	accessService services.AccessServiceInterface) *controllers.ContentController {
	return controllers.NewContentController(contentService, accessService)
}

func provideTrackingController(contentService services.ContentServiceInterface) *controllers.TrackingController {
	return controllers.NewTrackingController(contentService)
}
