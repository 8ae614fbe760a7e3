package service

import (
	"context"
	"errors"
	"fmt"

	"storebot/core/logger"
	"storebot/core/telegram/format"
	"storebot/internal/domain"
	"storebot/internal/repository"

	"log/slog"
)

// ErrIncompleteDraft indicates a wizard draft missing required fields.
var ErrIncompleteDraft = errors.New("product draft is incomplete")

// CatalogService defines the interface for catalog business logic.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Add(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error)
	// Remove deletes the product and reports whether it existed.
	Remove(ctx context.Context, id int64) (bool, error)
}

type catalogService struct {
	products repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(products repository.ProductRepository) CatalogService {
	return &catalogService{products: products}
}

func (s *catalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.GetAll(ctx)
}

func (s *catalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *catalogService) Add(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	if !draft.Complete() {
		return nil, ErrIncompleteDraft
	}

	product := &domain.Product{
		Name:    draft.Name,
		Price:   draft.Price,
		PhotoID: draft.PhotoID,
	}
	id, err := s.products.Add(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	logger.LogEvent(ctx, logger.SVCCatalog, slog.LevelInfo, "product.added",
		slog.String("status", "ok"),
		slog.Int64("product_id", id),
		slog.String("product", logger.SanitizeLimit(product.Name, 128)),
		slog.Int64("price", product.Price),
	)
	return product, nil
}

func (s *catalogService) Remove(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	if deleted {
		logger.LogEvent(ctx, logger.SVCCatalog, slog.LevelInfo, "product.removed",
			slog.String("status", "ok"),
			slog.Int64("product_id", id),
		)
	}
	return deleted, nil
}

// Caption renders the catalog card text for a product. Markdown is used for
// emphasis, so the name is escaped to survive arbitrary input.
func Caption(p domain.Product) string {
	return fmt.Sprintf("*%s*\n\n💰 Price: *%d ⭐*", format.EscapeMarkdown(p.Name), p.Price)
}
