package favorite

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrAlreadyFavorite = errors.New("client already in favorites")
	ErrNotFavorite     = errors.New("client not in favorites")
)

// Repository provides access to favorite operations.
type Repository interface {
	Add(ctx context.Context, f Favorite) (Favorite, error)
	Remove(ctx context.Context, userID, clientID string, typ ClientType) error
	// List filters by type unless it is empty.
	List(ctx context.Context, userID string, typ ClientType) ([]Favorite, error)
	Exists(ctx context.Context, userID, clientID string, typ ClientType) (bool, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Favorite
}

func NewInMemoryRepository(seed []Favorite) *InMemoryRepository {
	r := &InMemoryRepository{items: make([]Favorite, 0, len(seed))}
	r.items = append(r.items, seed...)
	return r
}

func same(f Favorite, userID, clientID string, typ ClientType) bool {
	return f.UserID == userID && f.ClientID == clientID && f.ClientType == typ
}

func (r *InMemoryRepository) Add(_ context.Context, f Favorite) (Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.items {
		if same(cur, f.UserID, f.ClientID, f.ClientType) {
			return Favorite{}, ErrAlreadyFavorite
		}
	}
	r.items = append(r.items, f)
	return f, nil
}

func (r *InMemoryRepository) Remove(_ context.Context, userID, clientID string, typ ClientType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.items {
		if same(cur, userID, clientID, typ) {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFavorite
}

func (r *InMemoryRepository) List(_ context.Context, userID string, typ ClientType) ([]Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Favorite, 0)
	for _, f := range r.items {
		if f.UserID == userID && (typ == "" || f.ClientType == typ) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) Exists(_ context.Context, userID, clientID string, typ ClientType) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.items {
		if same(f, userID, clientID, typ) {
			return true, nil
		}
	}
	return false, nil
}
