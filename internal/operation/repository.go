package operation

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("operation not found")

type Repository interface {
	List(ctx context.Context, userID string) ([]Operation, error)
	Create(ctx context.Context, op Operation) (Operation, error)
	Delete(ctx context.Context, userID, id string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Operation
}

func NewInMemoryRepository(seed []Operation) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Operation, 0, len(seed))}
	r.items = append(r.items, seed...)
	return r
}

func (r *InMemoryRepository) List(_ context.Context, userID string) ([]Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Operation, 0)
	for _, op := range r.items {
		if op.UserID == userID {
			out = append(out, op)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (r *InMemoryRepository) Create(_ context.Context, op Operation) (Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, op)
	return op, nil
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
