package db_models

import "github.com/google/uuid"

// Event is an in-person or online happening with a hard capacity.
type Event struct {
	BaseModel
	Slug        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Location    string
	StartsAt    int64 `gorm:"index;not null"`
	EndsAt      *int64
	Capacity    int  `gorm:"default:0"` // 0 = unlimited
	IsPublished bool `gorm:"index;default:false"`

	RSVPs []EventRSVP `gorm:"foreignKey:EventID"`
}

type EventRSVP struct {
	BaseModel
	EventID   uuid.UUID `gorm:"index;uniqueIndex:idx_rsvp_event_account"`
	AccountID uuid.UUID `gorm:"index;uniqueIndex:idx_rsvp_event_account"`

	Event   Event   `gorm:"foreignKey:EventID"`
	Account Account `gorm:"foreignKey:AccountID"`
}
