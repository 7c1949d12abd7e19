package seller

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("seller not found")

// Repository stores sellers without their properties.
type Repository interface {
	List(ctx context.Context, userID string) ([]Seller, error)
	Get(ctx context.Context, userID, id string) (Seller, error)
	Create(ctx context.Context, s Seller) (Seller, error)
	Update(ctx context.Context, s Seller) (Seller, error)
	Delete(ctx context.Context, userID, id string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Seller
}

func NewInMemoryRepository(seed []Seller) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Seller, 0, len(seed))}
	r.items = append(r.items, seed...)
	return r
}

func (r *InMemoryRepository) List(_ context.Context, userID string) ([]Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Seller, 0)
	for _, s := range r.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, userID, id string) (Seller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.items {
		if s.ID == id && s.UserID == userID {
			return s, nil
		}
	}
	return Seller{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, s Seller) (Seller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Properties = nil
	r.items = append(r.items, s)
	return s, nil
}

func (r *InMemoryRepository) Update(_ context.Context, s Seller) (Seller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.items {
		if cur.ID == s.ID && cur.UserID == s.UserID {
			s.Properties = nil
			r.items[i] = s
			return s, nil
		}
	}
	return Seller{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.items {
		if cur.ID == id && cur.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
