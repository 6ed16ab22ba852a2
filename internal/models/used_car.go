// internal/models/used_car.go
package models

import (
	"github.com/shopspring/decimal"
)

// UsedCar is a row of the used_cars table.
type UsedCar struct {
	ID      uint                `json:"id" db:"id" gorm:"primaryKey"`
	Make    *string             `json:"make" db:"make" gorm:"size:100"`
	Model   *string             `json:"model" db:"model" gorm:"size:100"`
	Year    *int                `json:"year" db:"year"`
	Price   decimal.NullDecimal `json:"price" db:"price" gorm:"type:numeric(12,2)"`
	Mileage *int                `json:"mileage" db:"mileage"`
	Type    ListingType         `json:"type" db:"type" gorm:"type:varchar(20);not null;default:'used_car'"`
	Timestamps

	Images []string `json:"images" db:"-" gorm:"-"`
}

func (UsedCar) TableName() string {
	return "used_cars"
}

// UsedCarImage records one uploaded file owned by a used car.
type UsedCarImage struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UsedCarID uint   `json:"used_car_id" gorm:"not null;index"`
	Filename  string `json:"filename" gorm:"size:255"`
	Mimetype  string `json:"mimetype" gorm:"size:100"`
	FilePath  string `json:"file_path" gorm:"size:1024;not null"`
	Timestamps

	UsedCar *UsedCar `json:"-" gorm:"foreignKey:UsedCarID;constraint:OnDelete:CASCADE"`
}

func (UsedCarImage) TableName() string {
	return "used_car_images"
}
