// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Orders never reference it live; they snapshot the
// fields they need at checkout.
type Product struct {
	ID          uuid.UUID
	Name        string
	Brand       string
	Description string
	Image       string // Path to the uploaded product image, if any.
	Category    string
	Price       float64
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
