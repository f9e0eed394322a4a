package database

import (
	"log"
	"strings"

	"github.com/kutuphane/locallibrary/internal/config"
	"github.com/kutuphane/locallibrary/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the store selected by DATABASE_URL. A postgres:// URL
// uses the postgres driver, anything else is treated as a SQLite DSN
// (the development default).
func Connect(cfg *config.Config) {
	var err error

	if strings.HasPrefix(cfg.DatabaseURL, "postgres://") || strings.HasPrefix(cfg.DatabaseURL, "postgresql://") {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	} else {
		DB, err = gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{})
	}

	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	log.Println("Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Author{},
		&models.Genre{},
		&models.Book{},
		&models.BookInstance{},
		&models.User{},
	)

	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Database migration completed")
}
