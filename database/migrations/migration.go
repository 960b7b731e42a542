package migrations

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/khankhulgun/mapstyle/models"
)

// Schema holds every table the service owns.
const Schema = "map_style"

// Migrate creates the schema and brings the style tables up to date.
func Migrate(db *gorm.DB) error {
	createSchema := `
	CREATE SCHEMA IF NOT EXISTS ` + Schema + `;
	`
	if err := db.Exec(createSchema).Error; err != nil {
		return fmt.Errorf("migrate: create schema: %w", err)
	}

	if err := db.AutoMigrate(&models.StyleRecord{}); err != nil {
		return fmt.Errorf("migrate: styles: %w", err)
	}

	createIndex := `
	CREATE INDEX IF NOT EXISTS styles_name_idx ON ` + Schema + `.styles (name);
	`
	if err := db.Exec(createIndex).Error; err != nil {
		return fmt.Errorf("migrate: index: %w", err)
	}

	log.Println("Style tables migrated")
	return nil
}
