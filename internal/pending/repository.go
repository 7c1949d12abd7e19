package pending

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound         = errors.New("pending request not found")
	ErrAlreadyProcessed = errors.New("pending request already processed")
)

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	Get(ctx context.Context, id string) (Request, error)
	// List filters on the processed flag when it is not nil.
	List(ctx context.Context, processed *bool) ([]Request, error)
	MarkProcessed(ctx context.Context, id, clientID string, at time.Time) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []Request
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (m *InMemoryRepository) Create(_ context.Context, r Request) (Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, r)
	return r, nil
}

func (m *InMemoryRepository) Get(_ context.Context, id string) (Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.items {
		if r.ID == id {
			return r, nil
		}
	}
	return Request{}, ErrNotFound
}

func (m *InMemoryRepository) List(_ context.Context, processed *bool) ([]Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Request, 0)
	for _, r := range m.items {
		if processed == nil || r.Processed == *processed {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *InMemoryRepository) MarkProcessed(_ context.Context, id, clientID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			if m.items[i].Processed {
				return ErrAlreadyProcessed
			}
			m.items[i].Processed = true
			m.items[i].ClientID = clientID
			m.items[i].ProcessedAt = &at
			return nil
		}
	}
	return ErrNotFound
}
