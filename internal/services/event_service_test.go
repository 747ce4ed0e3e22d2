package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menfem/internal/models/db_models"
	"menfem/pkg/utils"
)

type fakeEventRepo struct {
	events map[string]*db_models.Event // by slug
	rsvps  map[uuid.UUID]map[uuid.UUID]struct{}
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events: map[string]*db_models.Event{},
		rsvps:  map[uuid.UUID]map[uuid.UUID]struct{}{},
	}
}

func (f *fakeEventRepo) add(event *db_models.Event) *db_models.Event {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events[event.Slug] = event
	return event
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*db_models.Event, error) {
	return f.events[slug], nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, after int64, page, pageSize int) ([]db_models.Event, error) {
	var out []db_models.Event
	for _, e := range f.events {
		if e.IsPublished && e.StartsAt >= after {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) CountRSVPs(ctx context.Context, eventID uuid.UUID) (int64, error) {
	return int64(len(f.rsvps[eventID])), nil
}

func (f *fakeEventRepo) CreateRSVP(ctx context.Context, eventID, accountID uuid.UUID) error {
	var event *db_models.Event
	for _, e := range f.events {
		if e.ID == eventID {
			event = e
		}
	}
	if event == nil {
		return utils.ErrEventNotFound
	}
	if _, dup := f.rsvps[eventID][accountID]; dup {
		return utils.ErrAlreadyRSVPed
	}
	if event.Capacity > 0 && len(f.rsvps[eventID]) >= event.Capacity {
		return utils.ErrEventFull
	}
	if f.rsvps[eventID] == nil {
		f.rsvps[eventID] = map[uuid.UUID]struct{}{}
	}
	f.rsvps[eventID][accountID] = struct{}{}
	return nil
}

func upcomingEvent(capacity int) *db_models.Event {
	return &db_models.Event{
		Slug:        "launch-night",
		Title:       "Launch Night",
		StartsAt:    time.Now().Add(48 * time.Hour).Unix(),
		Capacity:    capacity,
		IsPublished: true,
	}
}

func TestEventGetBySlug_SpotsLeft(t *testing.T) {
	repo := newFakeEventRepo()
	event := repo.add(upcomingEvent(10))
	require.NoError(t, repo.CreateRSVP(context.Background(), event.ID, uuid.New()))
	require.NoError(t, repo.CreateRSVP(context.Background(), event.ID, uuid.New()))
	svc := NewEventService(repo)

	resp, err := svc.GetBySlug(context.Background(), "launch-night")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.RSVPCount)
	require.NotNil(t, resp.SpotsLeft)
	assert.Equal(t, int64(8), *resp.SpotsLeft)
}

func TestEventGetBySlug_UnlimitedCapacityHasNoSpotsLeft(t *testing.T) {
	repo := newFakeEventRepo()
	repo.add(upcomingEvent(0))
	svc := NewEventService(repo)

	resp, err := svc.GetBySlug(context.Background(), "launch-night")
	require.NoError(t, err)
	assert.Nil(t, resp.SpotsLeft)
}

func TestEventGetBySlug_UnpublishedIsNotFound(t *testing.T) {
	repo := newFakeEventRepo()
	event := upcomingEvent(10)
	event.IsPublished = false
	repo.add(event)
	svc := NewEventService(repo)

	_, err := svc.GetBySlug(context.Background(), "launch-night")
	assert.ErrorIs(t, err, utils.ErrEventNotFound)

	_, err = svc.GetBySlug(context.Background(), "no-such-event")
	assert.ErrorIs(t, err, utils.ErrEventNotFound)
}

func TestEventRSVP_CapacityAndDuplicates(t *testing.T) {
	repo := newFakeEventRepo()
	repo.add(upcomingEvent(2))
	svc := NewEventService(repo)

	first := uuid.New()
	require.NoError(t, svc.RSVP(context.Background(), "launch-night", first))
	assert.ErrorIs(t, svc.RSVP(context.Background(), "launch-night", first), utils.ErrAlreadyRSVPed)

	require.NoError(t, svc.RSVP(context.Background(), "launch-night", uuid.New()))
	assert.ErrorIs(t, svc.RSVP(context.Background(), "launch-night", uuid.New()), utils.ErrEventFull)
}
