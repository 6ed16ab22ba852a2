// internal/models/common.go
package models

import (
	"time"
)

// ListingType is the discriminator stored in the type column of every listing.
type ListingType string

const (
	ListingTypeCarPart ListingType = "car_part"
	ListingTypeUsedCar ListingType = "used_car"
)

// Timestamps shared by listing and image rows.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Stock status values used by the storefront. The column is free text.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Condition values used by the storefront. The column is free text.
const (
	ConditionNew         = "new"
	ConditionUsed        = "used"
	ConditionRefurbished = "refurbished"
)

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}
