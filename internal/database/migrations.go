// internal/database/migrations.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/autosalvage/storefront/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.CarPart{},
		&models.ProductImage{},
		&models.UsedCar{},
		&models.UsedCarImage{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) {
	indexes := []string{
		// Car part filters
		"CREATE INDEX IF NOT EXISTS idx_products_type ON products(type)",
		"CREATE INDEX IF NOT EXISTS idx_products_condition_stock ON products(condition, stock_status)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",

		// Used car filters
		"CREATE INDEX IF NOT EXISTS idx_used_cars_type ON used_cars(type)",
		"CREATE INDEX IF NOT EXISTS idx_used_cars_year ON used_cars(year)",
		"CREATE INDEX IF NOT EXISTS idx_used_cars_price ON used_cars(price)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			logrus.WithError(err).WithField("statement", index).Warn("Failed to create index")
		}
	}
}
