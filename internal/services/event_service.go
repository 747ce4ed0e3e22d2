package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"menfem/internal/models/db_models"
	"menfem/internal/models/response_models"
	"menfem/internal/repositories"
	"menfem/pkg/utils"
)

type EventService interface {
	ListUpcoming(ctx context.Context, page, pageSize int) ([]response_models.EventResponse, error)
	GetBySlug(ctx context.Context, slug string) (*response_models.EventResponse, error)
	RSVP(ctx context.Context, slug string, accountID uuid.UUID) error
}

type eventService struct {
	repo repositories.EventRepository
}

func NewEventService(repo repositories.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) ListUpcoming(ctx context.Context, page, pageSize int) ([]response_models.EventResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 20
	}

	events, err := s.repo.ListUpcoming(ctx, time.Now().Unix(), page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.EventResponse, 0, len(events))
	for i := range events {
		count, err := s.repo.CountRSVPs(ctx, events[i].ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		out = append(out, toEventResponse(&events[i], count))
	}
	return out, nil
}

func (s *eventService) GetBySlug(ctx context.Context, slug string) (*response_models.EventResponse, error) {
	event, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil || !event.IsPublished {
		return nil, utils.ErrEventNotFound
	}

	count, err := s.repo.CountRSVPs(ctx, event.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toEventResponse(event, count)
	return &resp, nil
}

func (s *eventService) RSVP(ctx context.Context, slug string, accountID uuid.UUID) error {
	event, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if event == nil || !event.IsPublished {
		return utils.ErrEventNotFound
	}
	return s.repo.CreateRSVP(ctx, event.ID, accountID)
}

func toEventResponse(e *db_models.Event, rsvpCount int64) response_models.EventResponse {
	resp := response_models.EventResponse{
		ID:          e.ID.String(),
		Slug:        e.Slug,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
		RSVPCount:   rsvpCount,
	}
	if e.Capacity > 0 {
		left := int64(e.Capacity) - rsvpCount
		if left < 0 {
			left = 0
		}
		resp.SpotsLeft = &left
	}
	return resp
}
