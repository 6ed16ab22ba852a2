// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

// CarPart is a row of the products table.
type CarPart struct {
	ID          uint                `json:"id" db:"id" gorm:"primaryKey"`
	Name        *string             `json:"name" db:"name" gorm:"size:255"`
	Price       decimal.NullDecimal `json:"price" db:"price" gorm:"type:numeric(12,2)"`
	Car         *string             `json:"car" db:"car" gorm:"size:255"`
	Condition   *string             `json:"condition" db:"condition" gorm:"size:50"`
	StockStatus *string             `json:"stock_status" db:"stock_status" gorm:"size:50"`
	Part        *string             `json:"part" db:"part" gorm:"size:255"`
	Category    *string             `json:"category" db:"category" gorm:"size:100"`
	Type        ListingType         `json:"type" db:"type" gorm:"type:varchar(20);not null;default:'car_part'"`
	Timestamps

	// Public paths of the attached images, first one is the primary image.
	Images []string `json:"images" db:"-" gorm:"-"`
}

func (CarPart) TableName() string {
	return "products"
}

// ProductImage records one uploaded file owned by a car part.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"product_id" gorm:"not null;index"`
	Filename  string `json:"filename" gorm:"size:255"`
	Mimetype  string `json:"mimetype" gorm:"size:100"`
	FilePath  string `json:"file_path" gorm:"size:1024;not null"`
	Timestamps

	Product *CarPart `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
