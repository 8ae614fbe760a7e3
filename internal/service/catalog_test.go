package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storebot/internal/domain"
	"storebot/internal/repository"
)

type mockProductRepository struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[int64]*domain.Product)}
}

func (m *mockProductRepository) Add(ctx context.Context, product *domain.Product) (int64, error) {
	m.nextID++
	product.ID = m.nextID
	stored := *product
	m.products[m.nextID] = &stored
	return m.nextID, nil
}

func (m *mockProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.products[id]; !ok {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

func TestAddRejectsIncompleteDraft(t *testing.T) {
	svc := NewCatalogService(newMockProductRepository())

	drafts := []domain.ProductDraft{
		{},
		{Name: "runner"},
		{Name: "runner", Price: 100},
		{Price: 100, PhotoID: "file-1"},
	}
	for _, d := range drafts {
		if _, err := svc.Add(context.Background(), d); !errors.Is(err, ErrIncompleteDraft) {
			t.Errorf("Add(%+v) err = %v, want ErrIncompleteDraft", d, err)
		}
	}
}

func TestAddAssignsID(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogService(repo)

	p, err := svc.Add(context.Background(), domain.ProductDraft{Name: "runner", Price: 150, PhotoID: "file-1"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("product id = %d, want 1", p.ID)
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "runner" || got.Price != 150 || got.PhotoID != "file-1" {
		t.Errorf("stored product = %+v", got)
	}
}

func TestRemoveReportsExistence(t *testing.T) {
	repo := newMockProductRepository()
	svc := NewCatalogService(repo)

	p, err := svc.Add(context.Background(), domain.ProductDraft{Name: "runner", Price: 150, PhotoID: "file-1"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	deleted, err := svc.Remove(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !deleted {
		t.Error("existing product reported as not deleted")
	}

	deleted, err = svc.Remove(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Remove (repeat): %v", err)
	}
	if deleted {
		t.Error("missing product reported as deleted")
	}
}

func TestCaptionEscapesMarkdown(t *testing.T) {
	p := domain.Product{Name: "air_max *2024*", Price: 500}

	caption := Caption(p)
	if !strings.Contains(caption, `air\_max \*2024\*`) {
		t.Errorf("caption did not escape markdown: %q", caption)
	}
	if !strings.Contains(caption, "500") {
		t.Errorf("caption missing price: %q", caption)
	}
}
