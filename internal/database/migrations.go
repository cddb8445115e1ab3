package database

import (
	"fmt"
	"log"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents first
func Models() []interface{} {
	return []interface{}{
		&models.Customer{},
		&models.CustomerAuth{},
		&models.Item{},
	}
}

// Migrate creates or updates the tables, columns and indexes
func Migrate(db *gorm.DB) error {
	log.Printf("[DB] Running migrations")
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	log.Printf("[DB] Migrations complete")
	return nil
}
