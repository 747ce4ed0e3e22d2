package access_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"menfem/internal/repositories"
	"menfem/internal/services"
)

var Module = fx.Provide(
	provideSubscriptionRepo, providePurchaseRepo, provideAccessService)

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func providePurchaseRepo(db *gorm.DB) repositories.PurchaseRepository {
	return repositories.NewPurchaseRepository(db)
}

func provideAccessService(
	subscriptionRepo repositories.SubscriptionRepository,
	purchaseRepo repositories.PurchaseRepository) services.AccessServiceInterface {
	return services.NewAccessService(subscriptionRepo, purchaseRepo)
}
