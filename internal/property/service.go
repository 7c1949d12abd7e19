package property

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid property")

// SellerOwner reports whether a seller belongs to a user.
type SellerOwner interface {
	OwnsSeller(ctx context.Context, userID, sellerID string) (bool, error)
}

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

type Service struct {
	repo     Repository
	owners   SellerOwner
	onChange func(ctx context.Context, userID string)
	now      func() time.Time
}

func NewService(repo Repository, owners SellerOwner) *Service {
	return &Service{repo: repo, owners: owners, now: time.Now}
}

// OnChange registers a callback run after every successful mutation.
func (s *Service) OnChange(fn func(ctx context.Context, userID string)) {
	s.onChange = fn
}

func (s *Service) changed(ctx context.Context, userID string) {
	if s.onChange != nil {
		s.onChange(ctx, userID)
	}
}

func (s *Service) authorize(ctx context.Context, userID, sellerID string) error {
	ok, err := s.owners.OwnsSeller(ctx, userID, sellerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ListBySellers returns the properties of the given sellers without any
// ownership check; callers pass ids they already resolved for a user.
func (s *Service) ListBySellers(ctx context.Context, sellerIDs []string) ([]Property, error) {
	return s.repo.ListBySellers(ctx, sellerIDs)
}

func (s *Service) ListForSeller(ctx context.Context, userID, sellerID string) ([]Property, error) {
	if err := s.authorize(ctx, userID, sellerID); err != nil {
		return nil, err
	}
	return s.repo.ListBySellers(ctx, []string{sellerID})
}

func (s *Service) Get(ctx context.Context, userID, id string) (Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Property{}, err
	}
	if err := s.authorize(ctx, userID, p.SellerID); err != nil {
		return Property{}, err
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, userID, sellerID string, in Input) (Property, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Property{}, &ValidationError{Fields: errs}
	}
	if err := s.authorize(ctx, userID, sellerID); err != nil {
		return Property{}, err
	}
	now := s.now().UTC()
	p := Property{ID: uuid.NewString(), SellerID: sellerID, CreatedAt: now, UpdatedAt: now}
	in.apply(&p)
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Property{}, err
	}
	s.changed(ctx, userID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, in Input) (Property, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Property{}, &ValidationError{Fields: errs}
	}
	p, err := s.Get(ctx, userID, id)
	if err != nil {
		return Property{}, err
	}
	in.apply(&p)
	p.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return Property{}, err
	}
	s.changed(ctx, userID)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, userID)
	return nil
}
