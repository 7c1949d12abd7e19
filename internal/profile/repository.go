package profile

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrEmailNotFound = errors.New("approved email not found")
	ErrEmailExists   = errors.New("email already approved")
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Create(ctx context.Context, p Profile) (Profile, error)
	Update(ctx context.Context, p Profile) (Profile, error)
	ListUserIDs(ctx context.Context) ([]string, error)

	ListApproved(ctx context.Context) ([]ApprovedEmail, error)
	AddApproved(ctx context.Context, e ApprovedEmail) (ApprovedEmail, error)
	DeleteApproved(ctx context.Context, id string) error
	IsApproved(ctx context.Context, email string) (bool, error)
}

type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles []Profile
	approved []ApprovedEmail
}

func NewInMemoryRepository(seed []Profile) *InMemoryRepository {
	r := &InMemoryRepository{}
	r.profiles = append(r.profiles, seed...)
	return r
}

func (r *InMemoryRepository) GetByUserID(_ context.Context, userID string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.profiles {
		if cur.UserID == p.UserID {
			return cur, nil
		}
	}
	r.profiles = append(r.profiles, p)
	return p, nil
}

func (r *InMemoryRepository) Update(_ context.Context, p Profile) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.profiles {
		if cur.UserID == p.UserID {
			r.profiles[i] = p
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (r *InMemoryRepository) ListUserIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.UserID)
	}
	return out, nil
}

func (r *InMemoryRepository) ListApproved(_ context.Context) ([]ApprovedEmail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append(make([]ApprovedEmail, 0, len(r.approved)), r.approved...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) AddApproved(_ context.Context, e ApprovedEmail) (ApprovedEmail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.approved {
		if cur.Email == e.Email {
			return ApprovedEmail{}, ErrEmailExists
		}
	}
	r.approved = append(r.approved, e)
	return e, nil
}

func (r *InMemoryRepository) DeleteApproved(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cur := range r.approved {
		if cur.ID == id {
			r.approved = append(r.approved[:i], r.approved[i+1:]...)
			return nil
		}
	}
	return ErrEmailNotFound
}

func (r *InMemoryRepository) IsApproved(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cur := range r.approved {
		if cur.Email == email {
			return true, nil
		}
	}
	return false, nil
}
