package db_models

type Account struct {
	BaseModel
	Name          string
	Email         string  `gorm:"unique;not null"`
	Username      *string `gorm:"uniqueIndex"` // optional, unique when present
	PasswordHash  string
	EmailVerified bool   `gorm:"default:false"`
	Role          string `gorm:"default:'user'"`

	Subscription *Subscription `gorm:"foreignKey:AccountID"`
	Purchases    []Purchase    `gorm:"foreignKey:AccountID"`
}
