// Package store provides catalog storage implementations.
package store

import (
	"context"
	"sync"

	"wecare/domain"
)

// MemoryStore is a thread-safe in-memory domain.CatalogRepository.
// Useful for tests and for the throwaway "memory" backend.
type MemoryStore struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemoryStore constructs a MemoryStore seeded with the given products.
func NewMemoryStore(products ...domain.Product) *MemoryStore {
	s := &MemoryStore{}
	s.products = append(s.products, products...)
	return s
}

// compile-time assertion that MemoryStore implements domain.CatalogRepository
var _ domain.CatalogRepository = (*MemoryStore)(nil)

// Load returns a catalog over a copy of the stored snapshot.
func (s *MemoryStore) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return domain.NewCatalog(out), nil
}

// Save replaces the snapshot with the catalog's current sequence.
func (s *MemoryStore) Save(ctx context.Context, catalog *domain.Catalog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = catalog.Products()
	return nil
}
