package db_models

import "github.com/google/uuid"

type NewsletterSubscriber struct {
	BaseModel
	Email          string `gorm:"unique;not null"`
	Confirmed      bool   `gorm:"index;default:false"`
	ConfirmedAt    *int64
	UnsubscribedAt *int64
}

// DigestRecord is one digest send. Its items are the de-duplication source
// for the next selection: content that appears in any DigestItem is never
// picked again.
type DigestRecord struct {
	BaseModel
	Subject     string
	SentAt      int64 `gorm:"index"`
	SentCount   int
	FailedCount int

	Items []DigestItem `gorm:"foreignKey:DigestRecordID"`
}

type DigestItem struct {
	BaseModel
	DigestRecordID uuid.UUID `gorm:"index;uniqueIndex:idx_digest_item"`
	ContentItemID  uuid.UUID `gorm:"index;uniqueIndex:idx_digest_item"`
	Featured       bool      `gorm:"default:false"`

	ContentItem ContentItem `gorm:"foreignKey:ContentItemID"`
}
