package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending  TransactionStatus = "pending"
	TxnStatusPaid     TransactionStatus = "paid"
	TxnStatusFailed   TransactionStatus = "failed"
	TxnStatusRefunded TransactionStatus = "refunded"
)

// Transaction is the payment ledger row. Exactly one of SubscriptionID or
// ContentItemID ends up set once the webhook resolves what was bought.
type Transaction struct {
	BaseModel
	AccountID      uuid.UUID  `gorm:"index"`
	SubscriptionID *uuid.UUID `gorm:"index"` // set for plan checkouts
	ContentItemID  *uuid.UUID `gorm:"index"` // set for one-off content purchases

	AmountMinor int64             // e.g., 999 = $9.99
	Currency    string            `gorm:"size:3"` // ISO 4217
	Status      TransactionStatus `gorm:"type:varchar(16);index"`

	// Gateway fields
	Provider         string `gorm:"index"`
	ProviderTxnID    string `gorm:"index"` // idempotency across webhooks
	PaymentMethodRef string // last4 / token ref (avoid PCI data)

	// Unix seconds
	AuthorizedAt *int64
	PaidAt       *int64
	RefundedAt   *int64

	// Raw receipts, webhook payloads, failure reasons, etc.
	Receipt  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account      Account       `gorm:"foreignKey:AccountID"`
	Subscription *Subscription `gorm:"foreignKey:SubscriptionID"`
	ContentItem  *ContentItem  `gorm:"foreignKey:ContentItemID"`
}
