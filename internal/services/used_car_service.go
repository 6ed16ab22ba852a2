// internal/services/used_car_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/autosalvage/storefront/internal/database"
	"github.com/autosalvage/storefront/internal/models"
	"github.com/autosalvage/storefront/internal/query"
	"github.com/autosalvage/storefront/internal/utils"
)

// UsedCarService manages whole-vehicle listings. Every statement is scoped to
// the used_car discriminator.
type UsedCarService struct {
	db      *database.DB
	storage *StorageService
}

func NewUsedCarService(db *database.DB, storage *StorageService) *UsedCarService {
	return &UsedCarService{
		db:      db,
		storage: storage,
	}
}

func (s *UsedCarService) ListUsedCars(ctx context.Context, criteria query.Criteria) ([]models.UsedCar, error) {
	sql, args, err := query.UsedCars.Build(criteria)
	if err != nil {
		return nil, err
	}

	// Databases created before migrations ran may carry unmapped columns.
	cars := []models.UsedCar{}
	if err := s.db.SQL.Unsafe().SelectContext(ctx, &cars, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to list used cars: %w", err)
	}

	ids := make([]uint, len(cars))
	for i := range cars {
		ids[i] = cars[i].ID
	}

	images, err := imagePathsByOwner(ctx, s.db.SQL, "used_car_images", "used_car_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range cars {
		cars[i].Images = nonNil(images[cars[i].ID])
	}

	return cars, nil
}

func (s *UsedCarService) GetUsedCar(ctx context.Context, id uint) (*models.UsedCar, error) {
	return s.load(s.db.Gorm.WithContext(ctx), id)
}

func (s *UsedCarService) CreateUsedCar(ctx context.Context, input *UsedCarInput, files []*multipart.FileHeader) (*models.UsedCar, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		logrus.Info("No files uploaded for new used car")
	}

	stored, err := s.storage.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	car := &models.UsedCar{
		Make:    input.Make,
		Model:   input.Model,
		Year:    input.Year,
		Price:   input.Price,
		Mileage: input.Mileage,
		Type:    models.ListingTypeUsedCar,
	}

	err = database.WithTransaction(s.db.Gorm.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(car).Error; err != nil {
			return fmt.Errorf("failed to create used car: %w", err)
		}
		return addUsedCarImages(tx, car.ID, stored)
	})
	if err != nil {
		s.storage.Discard(ctx, pathsOf(stored))
		return nil, err
	}

	car.Images = nonNil(pathsOf(stored))
	return car, nil
}

func (s *UsedCarService) UpdateUsedCar(ctx context.Context, id uint, input *UsedCarInput, files []*multipart.FileHeader) (*models.UsedCar, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	stored, err := s.storage.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	var car *models.UsedCar
	err = database.WithTransaction(s.db.Gorm.WithContext(ctx), func(tx *gorm.DB) error {
		result := tx.Model(&models.UsedCar{}).
			Where("id = ? AND type = ?", id, models.ListingTypeUsedCar).
			Updates(input.columns())
		if result.Error != nil {
			return fmt.Errorf("failed to update used car: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := addUsedCarImages(tx, id, stored); err != nil {
			return err
		}

		loaded, err := s.load(tx, id)
		if err != nil {
			return err
		}
		car = loaded
		return nil
	})
	if err != nil {
		s.storage.Discard(ctx, pathsOf(stored))
		return nil, err
	}

	return car, nil
}

func (s *UsedCarService) DeleteUsedCar(ctx context.Context, id uint) error {
	var paths []string
	err := database.WithTransaction(s.db.Gorm.WithContext(ctx), func(tx *gorm.DB) error {
		var car models.UsedCar
		err := tx.Where("id = ? AND type = ?", id, models.ListingTypeUsedCar).First(&car).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find used car: %w", err)
		}

		paths, err = imagePaths(tx, &models.UsedCarImage{}, "used_car_id", id)
		if err != nil {
			return err
		}
		if err := tx.Where("used_car_id = ?", id).Delete(&models.UsedCarImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete used car images: %w", err)
		}
		if err := tx.Delete(&car).Error; err != nil {
			return fmt.Errorf("failed to delete used car: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.storage.Discard(ctx, paths)
	return nil
}

func (s *UsedCarService) load(tx *gorm.DB, id uint) (*models.UsedCar, error) {
	var car models.UsedCar
	err := tx.Where("id = ? AND type = ?", id, models.ListingTypeUsedCar).First(&car).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load used car: %w", err)
	}

	car.Images, err = imagePaths(tx, &models.UsedCarImage{}, "used_car_id", id)
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func addUsedCarImages(tx *gorm.DB, usedCarID uint, files []StoredFile) error {
	for _, f := range files {
		image := &models.UsedCarImage{
			UsedCarID: usedCarID,
			Filename:  f.Filename,
			Mimetype:  f.Mimetype,
			FilePath:  f.Path,
		}
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to record used car image: %w", err)
		}
	}
	return nil
}
