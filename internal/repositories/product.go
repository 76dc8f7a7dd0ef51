package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"stagefront/internal/models"
)

// ProductRepository handles merchandise data operations
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, event_id, name, description, price_cents, stock, image_url, image_key, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(
		&product.ID,
		&product.EventID,
		&product.Name,
		&product.Description,
		&product.PriceCents,
		&product.Stock,
		&product.ImageURL,
		&product.ImageKey,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	return product, err
}

// Create creates a new product
func (r *ProductRepository) Create(eventID int, req *models.ProductCreateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO products (event_id, name, description, price_cents, stock, image_url, image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + productColumns

	product, err := scanProduct(r.db.QueryRow(
		query,
		eventID,
		req.Name,
		req.Description,
		req.PriceCents,
		req.Stock,
		req.ImageURL,
		req.ImageKey,
		now,
	))

	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// GetByEvent retrieves all products for an event
func (r *ProductRepository) GetByEvent(eventID int) ([]*models.Product, error) {
	rows, err := r.db.Query(`SELECT `+productColumns+` FROM products WHERE event_id = $1 ORDER BY name ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// Update updates a product
func (r *ProductRepository) Update(id int, req *models.ProductCreateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, price_cents = $4, stock = $5, image_url = $6, image_key = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + productColumns

	product, err := scanProduct(r.db.QueryRow(
		query,
		id,
		req.Name,
		req.Description,
		req.PriceCents,
		req.Stock,
		req.ImageURL,
		req.ImageKey,
		time.Now(),
	))

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete deletes a product
func (r *ProductRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrProductNotFound
	}

	return nil
}

// DecrementStock reduces stock for a purchase. Fails when stock is
// insufficient rather than going negative.
func (r *ProductRepository) DecrementStock(id, quantity int) error {
	result, err := r.db.Exec(`
		UPDATE products
		SET stock = stock - $2, updated_at = $3
		WHERE id = $1 AND stock >= $2`,
		id, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrInsufficientStock
	}

	return nil
}

// IncrementStock returns stock to a product when an order with merch
// lines is cancelled.
func (r *ProductRepository) IncrementStock(id, quantity int) error {
	result, err := r.db.Exec(`
		UPDATE products
		SET stock = stock + $2, updated_at = $3
		WHERE id = $1`,
		id, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrProductNotFound
	}

	return nil
}
