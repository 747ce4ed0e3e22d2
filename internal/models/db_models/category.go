package db_models

// Category groups content items. Position drives navigation ordering.
type Category struct {
	BaseModel
	Name     string `gorm:"unique;not null"`
	Slug     string `gorm:"uniqueIndex;not null"`
	Position int    `gorm:"default:0"`

	Items []ContentItem `gorm:"foreignKey:CategoryID"`
}
