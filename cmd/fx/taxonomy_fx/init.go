package taxonomy_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"menfem/internal/api/controllers"
	"menfem/internal/repositories"
	"menfem/internal/services"
	mem "menfem/pkg/memcache"
)

var Module = fx.Provide(
	provideCategoryRepo, provideTagRepo,
	provideTaxonomyService, provideTaxonomyController)

func provideCategoryRepo(db *gorm.DB) repositories.CategoryRepository {
	return repositories.NewCategoryRepository(db)
}

func provideTagRepo(db *gorm.DB) repositories.TagRepository {
	return repositories.NewTagRepository(db)
}

func provideTaxonomyService(
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
	cache mem.QueryCache) services.TaxonomyServiceInterface {
	return services.NewTaxonomyService(categoryRepo, tagRepo, cache)
}

func provideTaxonomyController(taxonomyService services.TaxonomyServiceInterface) *controllers.TaxonomyController {
	return controllers.NewTaxonomyController(taxonomyService)
}
