package event_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"menfem/internal/api/controllers"
	"menfem/internal/repositories"
	"menfem/internal/services"
)

var Module = fx.Provide(
	provideEventRepo, provideEventService, provideEventController)

func provideEventRepo(db *gorm.DB) repositories.EventRepository {
	return repositories.NewEventRepository(db)
}

func provideEventService(repo repositories.EventRepository) services.EventService {
	return services.NewEventService(repo)
}

func provideEventController(eventService services.EventService) *controllers.EventController {
	return controllers.NewEventController(eventService)
}
