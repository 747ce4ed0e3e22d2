package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"menfem/internal/services"
	"menfem/pkg/utils"
)

type EventController struct {
	eventService services.EventService
}

func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// ListUpcoming godoc
// @Summary List upcoming events
// @Tags Events
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Items per page"
// @Success 200 {object} utils.APIResponse
// @Router /events [get]
func (e *EventController) ListUpcoming(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	events, err := e.eventService.ListUpcoming(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, events, "Events fetched successfully")
}

// GetBySlug godoc
// @Summary Get one event by slug
// @Tags Events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /events/{slug} [get]
func (e *EventController) GetBySlug(c *gin.Context) {
	event, err := e.eventService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, event, "Event fetched successfully")
}

// RSVP godoc
// @Summary RSVP to an event
// @Description Rejected once the event is at capacity or already RSVPed
// @Tags Events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /events/{slug}/rsvp [post]
func (e *EventController) RSVP(c *gin.Context) {
	accountID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := e.eventService.RSVP(c.Request.Context(), c.Param("slug"), accountID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "RSVP recorded successfully")
}
