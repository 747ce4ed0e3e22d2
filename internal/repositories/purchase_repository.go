package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"menfem/internal/models/db_models"
)

type PurchaseRepository interface {
	FindCompleted(ctx context.Context, accountID, contentItemID uuid.UUID) (*db_models.Purchase, error)
	ListCompletedByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Purchase, error)
	CountCompletedForContent(ctx context.Context, contentItemID uuid.UUID) (int64, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) FindCompleted(ctx context.Context, accountID, contentItemID uuid.UUID) (*db_models.Purchase, error) {
	var purchase db_models.Purchase
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND content_item_id = ? AND status = ?",
			accountID, contentItemID, db_models.PurchaseCompleted).
		First(&purchase).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepository) ListCompletedByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Purchase, error) {
	var purchases []db_models.Purchase
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, db_models.PurchaseCompleted).
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepository) CountCompletedForContent(ctx context.Context, contentItemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Purchase{}).
		Where("content_item_id = ? AND status = ?", contentItemID, db_models.PurchaseCompleted).
		Count(&count).Error
	return count, err
}
