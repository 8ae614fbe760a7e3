package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storebot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrProductNotFound is returned when a lookup misses.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Add(ctx context.Context, product *domain.Product) (int64, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a Postgres-backed ProductRepository.
func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Add(ctx context.Context, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products (name, price, photo_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := r.db.GetContext(ctx, &id, query, product.Name, product.Price, product.PhotoID); err != nil {
		return 0, fmt.Errorf("failed to add product: %w", err)
	}
	product.ID = id
	return id, nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, photo_id
		FROM products
		ORDER BY id
	`
	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, price, photo_id
		FROM products
		WHERE id = $1
	`
	product := &domain.Product{}
	if err := r.db.GetContext(ctx, product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}
	return product, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
