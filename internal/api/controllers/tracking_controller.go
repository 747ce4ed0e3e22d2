package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"menfem/internal/models/request_models"
	"menfem/internal/services"
)

type TrackingController struct {
	contentService services.ContentServiceInterface
}

func NewTrackingController(contentService services.ContentServiceInterface) *TrackingController {
	return &TrackingController{contentService: contentService}
}

// Track godoc
// @Summary Record content view events
// @Description Accepts a single event object or a JSON array of them. Uses a lightweight {success, error} envelope for beacon-style clients.
// @Tags Tracking
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]interface{}
// @Router /track [post]
func (t *TrackingController) Track(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "empty body"})
		return
	}

	events, err := decodeTrackEvents(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := t.contentService.TrackViews(c.Request.Context(), events); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to record events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// decodeTrackEvents accepts either one event object or an array of them.
// json.Unmarshal does not see binding tags, so required fields are checked here.
func decodeTrackEvents(raw []byte) ([]request_models.TrackEvent, error) {
	trimmed := bytes.TrimSpace(raw)

	var events []request_models.TrackEvent
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, err
		}
	} else {
		var single request_models.TrackEvent
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, err
		}
		events = []request_models.TrackEvent{single}
	}

	if len(events) == 0 {
		return nil, errors.New("no events")
	}
	for _, e := range events {
		if e.Slug == "" {
			return nil, errors.New("slug is required")
		}
	}
	return events, nil
}
