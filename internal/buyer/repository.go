package buyer

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("buyer not found")

type Repository interface {
	List(ctx context.Context, userID string) ([]Buyer, error)
	Get(ctx context.Context, userID, id string) (Buyer, error)
	Create(ctx context.Context, b Buyer) (Buyer, error)
	Update(ctx context.Context, b Buyer) (Buyer, error)
	Delete(ctx context.Context, userID, id string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Buyer
}

func NewInMemoryRepository(seed []Buyer) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Buyer, 0, len(seed))}
	r.items = append(r.items, seed...)
	return r
}

func (r *InMemoryRepository) List(_ context.Context, userID string) ([]Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Buyer, 0)
	for _, b := range r.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	// newest first, like the postgres query
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Get(_ context.Context, userID, id string) (Buyer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.items {
		if b.ID == id && b.UserID == userID {
			return b, nil
		}
	}
	return Buyer{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, b Buyer) (Buyer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, b)
	return b, nil
}

func (r *InMemoryRepository) Update(_ context.Context, b Buyer) (Buyer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.items {
		if cur.ID == b.ID && cur.UserID == b.UserID {
			r.items[i] = b
			return b, nil
		}
	}
	return Buyer{}, ErrNotFound
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
