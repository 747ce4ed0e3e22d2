package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"menfem/internal/models/db_models"
	"menfem/pkg/utils"
)

type EventRepository interface {
	GetBySlug(ctx context.Context, slug string) (*db_models.Event, error)
	ListUpcoming(ctx context.Context, after int64, page, pageSize int) ([]db_models.Event, error)
	CountRSVPs(ctx context.Context, eventID uuid.UUID) (int64, error)

	// CreateRSVP checks capacity and duplicates inside one transaction so two
	// concurrent signups cannot both take the last spot.
	CreateRSVP(ctx context.Context, eventID, accountID uuid.UUID) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*db_models.Event, error) {
	var event db_models.Event
	err := r.db.WithContext(ctx).First(&event, "slug = ?", slug).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, after int64, page, pageSize int) ([]db_models.Event, error) {
	var events []db_models.Event
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Where("is_published = ? AND starts_at >= ?", true, after).
		Order("starts_at ASC, id ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) CountRSVPs(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.EventRSVP{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) CreateRSVP(ctx context.Context, eventID, accountID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event db_models.Event
		if err := tx.First(&event, "id = ?", eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrEventNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&db_models.EventRSVP{}).
			Where("event_id = ? AND account_id = ?", eventID, accountID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return utils.ErrAlreadyRSVPed
		}

		if event.Capacity > 0 {
			var taken int64
			if err := tx.Model(&db_models.EventRSVP{}).
				Where("event_id = ?", eventID).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken >= int64(event.Capacity) {
				return utils.ErrEventFull
			}
		}

		return tx.Create(&db_models.EventRSVP{
			EventID:   eventID,
			AccountID: accountID,
		}).Error
	})
}
