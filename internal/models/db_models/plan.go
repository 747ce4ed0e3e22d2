package db_models

import (
	"gorm.io/datatypes"
)

type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"` // e.g., "member_monthly", "member_yearly"
	Name        string
	Description *string
	Period      BillingPeriod `gorm:"type:varchar(8)"` // "month" | "year"
	PriceMinor  int64         // 999 = $9.99
	Currency    string        `gorm:"size:3"`
	TrialDays   int32         `gorm:"default:0"`
	IsActive    bool          `gorm:"default:true"`
	// Feature flags, limits, etc.
	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
