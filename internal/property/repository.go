package property

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("property not found")

type Repository interface {
	ListBySellers(ctx context.Context, sellerIDs []string) ([]Property, error)
	GetByID(ctx context.Context, id string) (Property, error)
	Create(ctx context.Context, p Property) (Property, error)
	Update(ctx context.Context, p Property) (Property, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Property
}

func NewInMemoryRepository(seed []Property) *InMemoryRepository {
	r := &InMemoryRepository{items: make(map[string]Property, len(seed))}
	for _, p := range seed {
		r.items[p.ID] = p
	}
	return r
}

func (r *InMemoryRepository) ListBySellers(_ context.Context, sellerIDs []string) ([]Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := make(map[string]bool, len(sellerIDs))
	for _, id := range sellerIDs {
		want[id] = true
	}
	out := make([]Property, 0)
	for _, p := range r.items {
		if want[p.SellerID] {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return Property{}, ErrNotFound
	}
	return p, nil
}

func (r *InMemoryRepository) Create(_ context.Context, p Property) (Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return p, nil
}

func (r *InMemoryRepository) Update(_ context.Context, p Property) (Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return Property{}, ErrNotFound
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
