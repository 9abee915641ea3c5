package database

import (
	"fmt"
	"log"

	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the tasks table
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&models.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// Reset drops and recreates the tasks table so ids start again from 1.
// All task data is lost.
func Reset(db *gorm.DB) error {
	log.Println("Resetting database schema...")
	if err := db.Migrator().DropTable(&models.Task{}); err != nil {
		return fmt.Errorf("failed to drop tasks table: %w", err)
	}
	if err := Migrate(db); err != nil {
		return err
	}
	log.Println("Database schema reset; task ids restart from 1")
	return nil
}
