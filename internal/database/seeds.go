// internal/database/seeds.go
package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/autosalvage/storefront/internal/models"
)

type sampleCarPart struct {
	name, car, condition, stock, category string
	price                                 int64
	images                                []string
}

type sampleUsedCar struct {
	make, model   string
	year, mileage int
	price         int64
	image         string
}

func unsplash(photo string) string {
	return "https://images.unsplash.com/photo-" + photo + "?w=400&h=300&fit=crop"
}

var sampleCarParts = []sampleCarPart{
	{"Complete Engine Assembly", "Toyota Camry", models.ConditionRefurbished, models.StockStatusInStock, "Engine", 2500,
		[]string{unsplash("1486496572940-2bb2341fdbdf"), unsplash("1503376780353-7e6692767b70"), unsplash("1558439297-6d64de180fa3")}},
	{"Front Brake Caliper Set", "Honda Civic", models.ConditionUsed, models.StockStatusInStock, "Brakes", 180,
		[]string{unsplash("1558618666-fcd25c85cd64"), unsplash("1609521263047-f8f205293f24")}},
	{"Left Headlight Assembly", "Ford F-150", models.ConditionUsed, models.StockStatusLowStock, "Lighting", 120,
		[]string{unsplash("1449965408869-eaa3f722e40d"), unsplash("1580414329544-cddfa1abc36d")}},
	{"Transmission - Automatic", "Chevrolet Silverado", models.ConditionRefurbished, models.StockStatusInStock, "Transmission", 1800,
		[]string{unsplash("1619642751034-765dfdf7c58e")}},
	{"Driver Side Door", "BMW 3 Series", models.ConditionUsed, models.StockStatusOutOfStock, "Body", 350,
		[]string{unsplash("1552519507-da3b142c6e3d")}},
	{"Catalytic Converter", "Nissan Altima", models.ConditionNew, models.StockStatusInStock, "Exhaust", 420,
		[]string{unsplash("1609521263047-f8f205293f24")}},
	{"Rear Axle Assembly", "Jeep Wrangler", models.ConditionUsed, models.StockStatusInStock, "Suspension", 680,
		[]string{unsplash("1503376780353-7e6692767b70")}},
	{"ECU/PCM Module", "Mazda CX-5", models.ConditionRefurbished, models.StockStatusLowStock, "Electronics", 290,
		[]string{unsplash("1580414329544-cddfa1abc36d")}},
	{"Complete Wheel Set (4)", "Subaru Outback", models.ConditionUsed, models.StockStatusInStock, "Wheels", 320,
		[]string{unsplash("1558439297-6d64de180fa3")}},
}

var sampleUsedCars = []sampleUsedCar{
	{"Honda", "Civic", 2020, 30000, 18000, unsplash("1558618666-fcd25c85cd64")},
	{"Toyota", "Camry", 2019, 40000, 22000, unsplash("1486496572940-2bb2341fdbdf")},
	{"Ford", "F-150", 2018, 50000, 25000, unsplash("1449965408869-eaa3f722e40d")},
}

// SeedSampleData fills empty listing tables with the storefront's demo catalog.
func SeedSampleData(db *gorm.DB) error {
	logrus.Info("Seeding sample data...")

	return WithTransaction(db, func(tx *gorm.DB) error {
		var partCount int64
		if err := tx.Model(&models.CarPart{}).Count(&partCount).Error; err != nil {
			return fmt.Errorf("failed to count car parts: %w", err)
		}
		if partCount == 0 {
			if err := seedCarParts(tx); err != nil {
				return err
			}
			logrus.WithField("count", len(sampleCarParts)).Info("Sample car parts created")
		}

		var carCount int64
		if err := tx.Model(&models.UsedCar{}).Count(&carCount).Error; err != nil {
			return fmt.Errorf("failed to count used cars: %w", err)
		}
		if carCount == 0 {
			if err := seedUsedCars(tx); err != nil {
				return err
			}
			logrus.WithField("count", len(sampleUsedCars)).Info("Sample used cars created")
		}

		return nil
	})
}

func seedCarParts(tx *gorm.DB) error {
	for _, s := range sampleCarParts {
		part := &models.CarPart{
			Name:        models.StringPtr(s.name),
			Price:       decimal.NewNullDecimal(decimal.NewFromInt(s.price)),
			Car:         models.StringPtr(s.car),
			Condition:   models.StringPtr(s.condition),
			StockStatus: models.StringPtr(s.stock),
			Part:        models.StringPtr(s.category),
			Category:    models.StringPtr(s.category),
			Type:        models.ListingTypeCarPart,
		}
		if err := tx.Create(part).Error; err != nil {
			return fmt.Errorf("failed to create sample car part %q: %w", s.name, err)
		}

		for _, url := range s.images {
			image := &models.ProductImage{ProductID: part.ID, Filename: "sample.jpg", Mimetype: "image/jpeg", FilePath: url}
			if err := tx.Create(image).Error; err != nil {
				return fmt.Errorf("failed to create sample image: %w", err)
			}
		}
	}
	return nil
}

func seedUsedCars(tx *gorm.DB) error {
	for _, s := range sampleUsedCars {
		car := &models.UsedCar{
			Make:    models.StringPtr(s.make),
			Model:   models.StringPtr(s.model),
			Year:    models.IntPtr(s.year),
			Price:   decimal.NewNullDecimal(decimal.NewFromInt(s.price)),
			Mileage: models.IntPtr(s.mileage),
			Type:    models.ListingTypeUsedCar,
		}
		if err := tx.Create(car).Error; err != nil {
			return fmt.Errorf("failed to create sample used car %s %s: %w", s.make, s.model, err)
		}

		image := &models.UsedCarImage{UsedCarID: car.ID, Filename: "sample.jpg", Mimetype: "image/jpeg", FilePath: s.image}
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to create sample image: %w", err)
		}
	}
	return nil
}
