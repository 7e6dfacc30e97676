package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Brand       string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:varchar(255)"`
	Category    string    `gorm:"type:varchar(100);index"`
	Price       float64   `gorm:"not null"`
	Stock       int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
