package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Price columns are written once at
// checkout; only Status is updated afterwards.
type OrderModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentMethod string    `gorm:"type:varchar(50);not null"`
	Address       string    `gorm:"type:varchar(255);not null"`
	City          string    `gorm:"type:varchar(100);not null"`
	PostalCode    string    `gorm:"type:varchar(20);not null"`
	Country       string    `gorm:"type:varchar(100);not null"`
	ItemsPrice    float64   `gorm:"not null"`
	TaxPrice      float64   `gorm:"not null"`
	ShippingPrice float64   `gorm:"not null"`
	TotalPrice    float64   `gorm:"not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Name, Image and Price are
// snapshots of the product at checkout time.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Image     string    `gorm:"type:varchar(255)"`
	Price     float64   `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
