package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"menfem/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := AutoMigrate(connectionPool); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return connectionPool
}

// AutoMigrate keeps the schema in sync on boot. The content_item_tags join
// table comes from the many2many tag on ContentItem.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&db_models.Category{},
		&db_models.Tag{},
		&db_models.ContentItem{},
		&db_models.Account{},
		&db_models.Plan{},
		&db_models.Subscription{},
		&db_models.Purchase{},
		&db_models.Transaction{},
		&db_models.Event{},
		&db_models.EventRSVP{},
		&db_models.NewsletterSubscriber{},
		&db_models.DigestRecord{},
		&db_models.DigestItem{},
	)
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
