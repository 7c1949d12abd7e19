package seller

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/estate-crm/internal/kvstore"
	"github.com/wichananm65/estate-crm/internal/logging"
	"github.com/wichananm65/estate-crm/internal/property"
)

// CacheKey holds the cached seller list, properties included.
const CacheKey = "sellers"

var ErrInvalid = errors.New("invalid seller")

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// PropertyLister loads the properties attached to sellers.
type PropertyLister interface {
	ListBySellers(ctx context.Context, sellerIDs []string) ([]property.Property, error)
}

type Service struct {
	repo  Repository
	props PropertyLister
	cache *kvstore.ListCache[[]Seller]
	lggr  logging.Logger
	now   func() time.Time
}

func NewService(repo Repository, props PropertyLister) *Service {
	return &Service{repo: repo, props: props, lggr: logging.Nop(), now: time.Now}
}

// WithCache enables the read-through list cache.
func (s *Service) WithCache(backend kvstore.Backend, lggr logging.Logger) *Service {
	s.cache = kvstore.NewListCache[[]Seller](backend, CacheKey, kvstore.ListTTL)
	s.lggr = lggr
	return s
}

func (s *Service) attach(ctx context.Context, sellers []Seller) error {
	if len(sellers) == 0 {
		return nil
	}
	ids := make([]string, len(sellers))
	for i, sl := range sellers {
		ids[i] = sl.ID
	}
	props, err := s.props.ListBySellers(ctx, ids)
	if err != nil {
		return err
	}
	bySeller := make(map[string][]property.Property, len(sellers))
	for _, p := range props {
		bySeller[p.SellerID] = append(bySeller[p.SellerID], p)
	}
	for i := range sellers {
		sellers[i].Properties = bySeller[sellers[i].ID]
		if sellers[i].Properties == nil {
			sellers[i].Properties = []property.Property{}
		}
	}
	return nil
}

// List returns the user's sellers with their properties.
func (s *Service) List(ctx context.Context, userID string) ([]Seller, error) {
	var gen uint64
	if s.cache != nil {
		cached, g, ok, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.lggr.Warnw("seller cache read failed", "user", userID, "error", err)
		} else if ok {
			return cached, nil
		}
		gen = g
	}

	sellers, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, sellers); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if _, err := s.cache.Fill(ctx, userID, gen, sellers); err != nil {
			s.lggr.Warnw("seller cache write failed", "user", userID, "error", err)
		}
	}
	return sellers, nil
}

// Invalidate drops the cached list of userID, including a fill still in
// flight.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.lggr.Warnw("seller cache invalidation failed", "user", userID, "error", err)
	}
}

func (s *Service) Get(ctx context.Context, userID, id string) (Seller, error) {
	sl, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Seller{}, err
	}
	one := []Seller{sl}
	if err := s.attach(ctx, one); err != nil {
		return Seller{}, err
	}
	return one[0], nil
}

// OwnsSeller implements property.SellerOwner.
func (s *Service) OwnsSeller(ctx context.Context, userID, sellerID string) (bool, error) {
	if _, err := s.repo.Get(ctx, userID, sellerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (Seller, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Seller{}, &ValidationError{Fields: errs}
	}
	now := s.now().UTC()
	sl := Seller{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	in.apply(&sl)
	created, err := s.repo.Create(ctx, sl)
	if err != nil {
		return Seller{}, err
	}
	created.Properties = []property.Property{}
	s.Invalidate(ctx, userID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in Input) (Seller, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Seller{}, &ValidationError{Fields: errs}
	}
	sl, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Seller{}, err
	}
	in.apply(&sl)
	sl.UpdatedAt = s.now().UTC()
	if _, err := s.repo.Update(ctx, sl); err != nil {
		return Seller{}, err
	}
	s.Invalidate(ctx, userID)
	return s.Get(ctx, userID, id)
}

// Delete removes the seller; its properties go with it.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.Invalidate(ctx, userID)
	return nil
}
