package db_models

import "github.com/google/uuid"

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseFailed    PurchaseStatus = "failed"
)

// Purchase grants access to one specific paid item, independent of any
// subscription. Like Subscription, rows are written only by the payment
// webhook path.
type Purchase struct {
	BaseModel
	AccountID     uuid.UUID `gorm:"index;uniqueIndex:idx_purchase_account_item"`
	ContentItemID uuid.UUID `gorm:"index;uniqueIndex:idx_purchase_account_item"`

	Status      PurchaseStatus `gorm:"type:varchar(16);index"`
	PurchasedAt *int64

	Provider      string `gorm:"index"`
	ProviderTxnID string `gorm:"index"`

	Account     Account     `gorm:"foreignKey:AccountID"`
	ContentItem ContentItem `gorm:"foreignKey:ContentItemID"`
}

func (p *Purchase) IsCompleted() bool {
	return p != nil && p.Status == PurchaseCompleted
}
