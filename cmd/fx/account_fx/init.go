package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"menfem/internal/api/controllers"
	"menfem/internal/repositories"
	"menfem/internal/services"
	mem "menfem/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountRepo, provideAccountService, provideAccountController)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	accessService services.AccessServiceInterface,
	mailService services.IMailService,
	tokens mem.ActionTokenStore) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, accessService, mailService, tokens)
}

func provideAccountController(
	accountService services.AccountServiceInterface,
	accessService services.AccessServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService, accessService)
}
