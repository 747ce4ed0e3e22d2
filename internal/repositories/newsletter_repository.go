package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"menfem/internal/models/db_models"
)

type NewsletterRepository interface {
	FindSubscriberByEmail(ctx context.Context, email string) (*db_models.NewsletterSubscriber, error)
	CreateSubscriber(ctx context.Context, sub *db_models.NewsletterSubscriber) error
	ConfirmSubscriber(ctx context.Context, email string, at int64) error
	UnsubscribeByEmail(ctx context.Context, email string, at int64) error
	ListConfirmed(ctx context.Context) ([]db_models.NewsletterSubscriber, error)

	// RecordDigest writes the send record and its items in one transaction so
	// a partially written history can never suppress future selections.
	RecordDigest(ctx context.Context, record *db_models.DigestRecord, items []db_models.DigestItem) error
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) FindSubscriberByEmail(ctx context.Context, email string) (*db_models.NewsletterSubscriber, error) {
	var sub db_models.NewsletterSubscriber
	err := r.db.WithContext(ctx).First(&sub, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *newsletterRepository) CreateSubscriber(ctx context.Context, sub *db_models.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *newsletterRepository) ConfirmSubscriber(ctx context.Context, email string, at int64) error {
	return r.db.WithContext(ctx).
		Model(&db_models.NewsletterSubscriber{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"confirmed":       true,
			"confirmed_at":    at,
			"unsubscribed_at": nil,
		}).Error
}

func (r *newsletterRepository) UnsubscribeByEmail(ctx context.Context, email string, at int64) error {
	return r.db.WithContext(ctx).
		Model(&db_models.NewsletterSubscriber{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"confirmed":       false,
			"unsubscribed_at": at,
		}).Error
}

func (r *newsletterRepository) ListConfirmed(ctx context.Context) ([]db_models.NewsletterSubscriber, error) {
	var subs []db_models.NewsletterSubscriber
	err := r.db.WithContext(ctx).
		Where("confirmed = ?", true).
		Order("created_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *newsletterRepository) RecordDigest(ctx context.Context, record *db_models.DigestRecord, items []db_models.DigestItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].DigestRecordID = record.ID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}
