package clients

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("client request not found")

type Repository interface {
	// SaveLead upserts c by email and stores r for it. The returned client
	// carries the stored id.
	SaveLead(ctx context.Context, c Client, r Request) (Client, Request, error)
	ListClients(ctx context.Context) ([]Client, error)
	// ListRequests filters by status unless it is empty.
	ListRequests(ctx context.Context, status Status) ([]Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status Status, by string, at time.Time) (Request, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	clients  []Client
	requests []Request
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) SaveLead(_ context.Context, c Client, req Request) (Client, Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for i, cur := range r.clients {
		if strings.EqualFold(cur.Email, c.Email) {
			r.clients[i].Name = c.Name
			r.clients[i].Phone = c.Phone
			r.clients[i].UpdatedAt = c.UpdatedAt
			c = r.clients[i]
			found = true
			break
		}
	}
	if !found {
		r.clients = append(r.clients, c)
	}
	req.ClientID = c.ID
	r.requests = append(r.requests, req)
	return c, req, nil
}

func (r *InMemoryRepository) ListClients(_ context.Context) ([]Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append(make([]Client, 0, len(r.clients)), r.clients...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) ListRequests(_ context.Context, status Status) ([]Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Request, 0)
	for _, req := range r.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) UpdateRequestStatus(_ context.Context, id string, status Status, by string, at time.Time) (Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == id {
			r.requests[i].Status = status
			r.requests[i].ProcessedBy = by
			r.requests[i].ProcessedAt = &at
			r.requests[i].UpdatedAt = at
			return r.requests[i], nil
		}
	}
	return Request{}, ErrNotFound
}
