// internal/services/listing.go
package services

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CarPartInput is the full replacement state of a car part. Omitted fields
// are stored as NULL.
type CarPartInput struct {
	Name        *string             `json:"name" validate:"omitempty,max=255"`
	Price       decimal.NullDecimal `json:"price" validate:"omitempty,gte=0"`
	Car         *string             `json:"car" validate:"omitempty,max=255"`
	Condition   *string             `json:"condition" validate:"omitempty,max=50"`
	StockStatus *string             `json:"stock_status" validate:"omitempty,max=50"`
	Part        *string             `json:"part" validate:"omitempty,max=255"`
	Category    *string             `json:"category" validate:"omitempty,max=100"`
}

func (in *CarPartInput) columns() map[string]interface{} {
	return map[string]interface{}{
		"name":         in.Name,
		"price":        in.Price,
		"car":          in.Car,
		"condition":    in.Condition,
		"stock_status": in.StockStatus,
		"part":         in.Part,
		"category":     in.Category,
	}
}

// UsedCarInput is the full replacement state of a used car.
type UsedCarInput struct {
	Make    *string             `json:"make" validate:"omitempty,max=100"`
	Model   *string             `json:"model" validate:"omitempty,max=100"`
	Year    *int                `json:"year" validate:"omitempty,gte=1886,lte=2100"`
	Price   decimal.NullDecimal `json:"price" validate:"omitempty,gte=0"`
	Mileage *int                `json:"mileage" validate:"omitempty,gte=0"`
}

func (in *UsedCarInput) columns() map[string]interface{} {
	return map[string]interface{}{
		"make":    in.Make,
		"model":   in.Model,
		"year":    in.Year,
		"price":   in.Price,
		"mileage": in.Mileage,
	}
}

type imageRef struct {
	OwnerID  uint   `db:"owner_id"`
	FilePath string `db:"file_path"`
}

// imagePathsByOwner fetches the image paths of many listings in one round
// trip, keyed by listing id and kept in upload order.
func imagePathsByOwner(ctx context.Context, db *sqlx.DB, table, ownerColumn string, ids []uint) (map[uint][]string, error) {
	paths := make(map[uint][]string, len(ids))
	if len(ids) == 0 {
		return paths, nil
	}

	owners := make([]int64, len(ids))
	for i, id := range ids {
		owners[i] = int64(id)
	}

	q := fmt.Sprintf(
		"SELECT %[2]s AS owner_id, file_path FROM %[1]s WHERE %[2]s = ANY($1) ORDER BY id",
		table, ownerColumn,
	)

	var refs []imageRef
	if err := db.SelectContext(ctx, &refs, q, pq.Array(owners)); err != nil {
		return nil, fmt.Errorf("failed to load images from %s: %w", table, err)
	}

	for _, ref := range refs {
		paths[ref.OwnerID] = append(paths[ref.OwnerID], ref.FilePath)
	}
	return paths, nil
}

// imagePaths returns the paths of a single listing's images in upload order.
func imagePaths(tx *gorm.DB, image interface{}, ownerColumn string, id uint) ([]string, error) {
	paths := []string{}
	err := tx.Model(image).
		Where(ownerColumn+" = ?", id).
		Order("id").
		Pluck("file_path", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	return paths, nil
}

func nonNil(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
