package newsletter_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"menfem/internal/api/controllers"
	"menfem/internal/repositories"
	"menfem/internal/services"
	mem "menfem/pkg/memcache"
)

var Module = fx.Provide(
	provideNewsletterRepo, provideNewsletterService, provideNewsletterController)

func provideNewsletterRepo(db *gorm.DB) repositories.NewsletterRepository {
	return repositories.NewNewsletterRepository(db)
}

func provideNewsletterService(
	contentRepo repositories.ContentRepository,
	newsletterRepo repositories.NewsletterRepository,
	mailService services.IMailService,
	tokens mem.ActionTokenStore) services.NewsletterServiceInterface {
	return services.NewNewsletterService(contentRepo, newsletterRepo, mailService, tokens, os.Getenv("APP_BASE_URL"))
}

func provideNewsletterController(newsletterService services.NewsletterServiceInterface) *controllers.NewsletterController {
	return controllers.NewNewsletterController(newsletterService)
}
