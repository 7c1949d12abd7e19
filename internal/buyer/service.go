package buyer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/estate-crm/internal/kvstore"
	"github.com/wichananm65/estate-crm/internal/logging"
)

// CacheKey holds the cached buyer list in each user namespace.
const CacheKey = "buyers"

var ErrInvalid = errors.New("invalid buyer")

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

type Service struct {
	repo  Repository
	cache *kvstore.ListCache[[]Buyer]
	lggr  logging.Logger
	now   func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, lggr: logging.Nop(), now: time.Now}
}

// WithCache enables the read-through list cache.
func (s *Service) WithCache(backend kvstore.Backend, lggr logging.Logger) *Service {
	s.cache = kvstore.NewListCache[[]Buyer](backend, CacheKey, kvstore.ListTTL)
	s.lggr = lggr
	return s
}

func (s *Service) List(ctx context.Context, userID string) ([]Buyer, error) {
	var gen uint64
	if s.cache != nil {
		cached, g, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.lggr.Warnw("buyer cache read failed", "user", userID, "error", err)
		} else if ok {
			return cached, nil
		}
		gen = g
	}

	buyers, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if _, err := s.cache.Fill(ctx, userID, gen, buyers); err != nil {
			s.lggr.Warnw("buyer cache write failed", "user", userID, "error", err)
		}
	}
	return buyers, nil
}

// Invalidate drops the cached list of userID. A List already reading the
// repository will not cache its result.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.lggr.Warnw("buyer cache invalidation failed", "user", userID, "error", err)
	}
}

func (s *Service) Get(ctx context.Context, userID, id string) (Buyer, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (Buyer, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Buyer{}, &ValidationError{Fields: errs}
	}
	now := s.now().UTC()
	b := Buyer{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	in.apply(&b)
	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return Buyer{}, err
	}
	s.Invalidate(ctx, userID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in Input) (Buyer, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Buyer{}, &ValidationError{Fields: errs}
	}
	b, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Buyer{}, err
	}
	in.apply(&b)
	b.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return Buyer{}, err
	}
	s.Invalidate(ctx, userID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.Invalidate(ctx, userID)
	return nil
}
