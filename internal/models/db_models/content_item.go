package db_models

import "github.com/google/uuid"

type ContentKind string

const (
	KindArticle ContentKind = "article"
	KindVideo   ContentKind = "video"
	KindCourse  ContentKind = "course"
	KindProduct ContentKind = "product"
)

// ContentItem is one publishable unit. Articles, videos, courses and products
// share the table and the same visibility rules; Kind tells them apart.
type ContentItem struct {
	BaseModel
	Kind ContentKind `gorm:"type:varchar(16);index;not null"`
	Slug string      `gorm:"uniqueIndex;not null"`

	Title      string `gorm:"not null"`
	Summary    string
	Body       string `gorm:"type:text"`
	CoverImage string

	IsPublished bool   `gorm:"index;default:false"`
	IsPremium   bool   `gorm:"default:false"`
	PublishedAt *int64 `gorm:"index"` // unix seconds, set on first publish

	ViewCount int64 `gorm:"default:0"`

	// Only meaningful for Kind=product (one-off purchases).
	PriceMinor int64
	Currency   string `gorm:"size:3"`

	CategoryID *uuid.UUID `gorm:"index"`
	Category   *Category  `gorm:"foreignKey:CategoryID"`
	Tags       []Tag      `gorm:"many2many:content_item_tags"`
}
