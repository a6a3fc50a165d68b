package database

import (
	"efood-checkout/internal/common/models"
	"efood-checkout/internal/pkg/logger"
	"fmt"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	entities := []any{
		&models.Order{},
	}

	for _, model := range entities {
		logger.Info.Printf("Migrating model: %T", model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}
