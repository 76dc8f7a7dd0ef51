package models

import (
	"errors"
	"strings"
	"time"
)

// Product represents a merchandise item sold alongside event tickets
type Product struct {
	ID          int       `json:"id" db:"id"`
	EventID     int       `json:"event_id" db:"event_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	PriceCents  int       `json:"price_cents" db:"price_cents"`
	Stock       int       `json:"stock" db:"stock"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	ImageKey    string    `json:"image_key" db:"image_key"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductCreateRequest represents the data needed to create a product
type ProductCreateRequest struct {
	EventID     int    `json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
	ImageKey    string `json:"image_key"`
}

// Validate validates the product data
func (p *Product) Validate() error {
	return validateProductFields(p.Name, p.Description, p.PriceCents, p.Stock)
}

// Validate validates product creation data
func (req *ProductCreateRequest) Validate() error {
	return validateProductFields(req.Name, req.Description, req.PriceCents, req.Stock)
}

func validateProductFields(name, description string, priceCents, stock int) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("product name is required")
	}

	if len(name) > 200 {
		return errors.New("product name must be less than 200 characters")
	}

	if len(description) > 2000 {
		return errors.New("product description must be less than 2000 characters")
	}

	if priceCents < 0 {
		return errors.New("product price cannot be negative")
	}

	if priceCents > 10000000 {
		return errors.New("product price cannot exceed $100,000")
	}

	if stock < 0 {
		return errors.New("product stock cannot be negative")
	}

	return nil
}

// InStock returns true if the product can be added to a cart
func (p *Product) InStock() bool {
	return p.Stock > 0
}
