// internal/services/product_service.go
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

// ProductService manages car part listings stored in the products table.
type ProductService struct {
	db      *database.DB
	storage *StorageService
}

func NewProductService(db *database.DB, storage *StorageService) *ProductService {
	return &ProductService{
		db:      db,
		storage: storage,
	}
}

func (s *ProductService) ListProducts(ctx context.Context, criteria query.Criteria) ([]models.CarPart, error) {
	sql, args, err := query.CarParts.Build(criteria)
	if err != nil {
		return nil, err
	}

	// Databases created before migrations ran may carry unmapped columns.
	parts := []models.CarPart{}
	if err := s.db.SQL.Unsafe().SelectContext(ctx, &parts, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	ids := make([]uint, len(parts))
	for i := range parts {
		ids[i] = parts[i].ID
	}

	images, err := imagePathsByOwner(ctx, s.db.SQL, "product_images", "product_id", ids)
	if err != nil {
		return nil, err
	}
	for i := range parts {
		parts[i].Images = nonNil(images[parts[i].ID])
	}

	return parts, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.CarPart, error) {
	return s.load(s.db.Gorm.WithContext(ctx), id)
}

// CreateProduct stores the uploaded files, then inserts the part and one image
// row per file in a single transaction.
func (s *ProductService) CreateProduct(ctx context.Context, input *CarPartInput, files []*multipart.FileHeader) (*models.CarPart, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		logrus.Info("No files uploaded for new product")
	}

	stored, err := s.storage.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	part := &models.CarPart{
		Name:        input.Name,
		Price:       input.Price,
		Car:         input.Car,
		Condition:   input.Condition,
		StockStatus: input.StockStatus,
		Part:        input.Part,
		Category:    input.Category,
		Type:        models.ListingTypeCarPart,
	}

	err = database.WithTransaction(s.db.Gorm.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(part).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return addProductImages(tx, part.ID, stored)
	})
	if err != nil {
		s.storage.Discard(ctx, pathsOf(stored))
		return nil, err
	}

	part.Images = nonNil(pathsOf(stored))
	return part, nil
}

// UpdateProduct replaces every scalar field of the part and appends any newly
// uploaded images to the existing ones.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input *CarPartInput, files []*multipart.FileHeader) (*models.CarPart, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}

	stored, err := s.storage.SaveAll(ctx, files)
	if err != nil {
		return nil, err
	}

	var part *models.CarPart
	err = database.WithTransaction(s.db.Gorm.WithContext(ctx), func(tx *gorm.DB) error {
		result := tx.Model(&models.CarPart{}).
			Where("id = ? AND type = ?", id, models.ListingTypeCarPart).
			Updates(input.columns())
		if result.Error != nil {
			return fmt.Errorf("failed to update product: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := addProductImages(tx, id, stored); err != nil {
			return err
		}

		loaded, err := s.load(tx, id)
		if err != nil {
			return err
		}
		part = loaded
		return nil
	})
	if err != nil {
		s.storage.Discard(ctx, pathsOf(stored))
		return nil, err
	}

	return part, nil
}

// DeleteProduct removes the part and its image rows, then the stored files.
// Deleting an id that is not a car part is a no-op.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	var paths []string
	err := database.WithTransaction(s.db.Gorm.WithContext(ctx), func(tx *gorm.DB) error {
		var part models.CarPart
		err := tx.Where("id = ? AND type = ?", id, models.ListingTypeCarPart).First(&part).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to find product: %w", err)
		}

		paths, err = imagePaths(tx, &models.ProductImage{}, "product_id", id)
		if err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}
		if err := tx.Delete(&part).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.storage.Discard(ctx, paths)
	return nil
}

func (s *ProductService) load(tx *gorm.DB, id uint) (*models.CarPart, error) {
	var part models.CarPart
	err := tx.Where("id = ? AND type = ?", id, models.ListingTypeCarPart).First(&part).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	part.Images, err = imagePaths(tx, &models.ProductImage{}, "product_id", id)
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func addProductImages(tx *gorm.DB, productID uint, files []StoredFile) error {
	for _, f := range files {
		image := &models.ProductImage{
			ProductID: productID,
			Filename:  f.Filename,
			Mimetype:  f.Mimetype,
			FilePath:  f.Path,
		}
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to record product image: %w", err)
		}
	}
	return nil
}
