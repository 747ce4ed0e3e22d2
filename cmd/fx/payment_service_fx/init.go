package payment_service_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"menfem/internal/api/controllers"
	"menfem/internal/repositories"
	"menfem/internal/services"
)

var Module = fx.Provide(
	providePlanRepo, providePaymentService, providePaymentController)

func providePlanRepo(db *gorm.DB) repositories.PlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePaymentService(db *gorm.DB, planRepo repositories.PlanRepository) services.PaymentService {
	cfg := services.PayOSConfig{
		ClientID:     os.Getenv("PAYOS_CLIENT_ID"),
		ApiKey:       os.Getenv("PAYOS_API_KEY"),
		ChecksumKey:  os.Getenv("PAYOS_CHECKSUM_KEY"),
		ReturnURL:    os.Getenv("APP_BASE_URL") + "/pay/return",
		CancelURL:    os.Getenv("APP_BASE_URL") + "/pay/cancel",
		ProviderName: "payos",
	}

	instance, err := services.NewPaymentService(db, planRepo, cfg)
	if err != nil {
		log.Printf("Error initializing PaymentService: %v", err)
	}

	return instance
}

func providePaymentController(paymentService services.PaymentService) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}
