package db_models

type Tag struct {
	BaseModel
	Name  string        `gorm:"unique;not null"`
	Slug  string        `gorm:"uniqueIndex;not null"`
	Items []ContentItem `gorm:"many2many:content_item_tags"`
}
