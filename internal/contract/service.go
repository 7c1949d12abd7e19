package contract

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/estate-crm/internal/kvstore"
)

// CacheKey holds the contract list in each user namespace.
const CacheKey = "contracts"

var (
	ErrNotFound = errors.New("contract not found")
	ErrInvalid  = errors.New("invalid contract")
)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Input is the writable part of a contract. Nil fields are left untouched on update.
type Input struct {
	Type                   *Type             `json:"type"`
	Status                 *Status           `json:"status"`
	Description            *string           `json:"description"`
	Parties                map[string]string `json:"parties"`
	RegistrationDate       *time.Time        `json:"registrationDate"`
	RegistrationExpiryDate *time.Time        `json:"registrationExpiryDate"`
	Amount                 *float64          `json:"amount"`
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if in.Type != nil {
		switch *in.Type {
		case TypeRent, TypeSale, TypePreliminary, TypeOther:
		default:
			errs["type"] = "must be one of rent, sale, preliminary, other"
		}
	}
	if in.Status != nil {
		switch *in.Status {
		case StatusToRegister, StatusRegistered, StatusExpired:
		default:
			errs["status"] = "must be one of to_register, registered, expired"
		}
	}
	if in.Amount != nil && *in.Amount < 0 {
		errs["amount"] = "must not be negative"
	}
	return errs
}

func (in Input) apply(c *Contract) {
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Parties != nil {
		c.Parties = in.Parties
	}
	if in.RegistrationDate != nil {
		c.RegistrationDate = in.RegistrationDate
	}
	if in.RegistrationExpiryDate != nil {
		c.RegistrationExpiryDate = in.RegistrationExpiryDate
	}
	if in.Amount != nil {
		c.Amount = *in.Amount
	}
}

// Service keeps contracts in the user's cache namespace. Writes are
// serialized so concurrent read-modify-write cycles do not lose updates.
type Service struct {
	backend kvstore.Backend
	mu      sync.Mutex
	now     func() time.Time
	newID   func() string
}

func NewService(backend kvstore.Backend) *Service {
	return &Service{backend: backend, now: time.Now, newID: uuid.NewString}
}

func (s *Service) load(ctx context.Context, userID string) ([]Contract, error) {
	return kvstore.GetJSON(ctx, kvstore.ForUser(s.backend, userID), CacheKey, []Contract{})
}

func (s *Service) save(ctx context.Context, userID string, cs []Contract) error {
	return kvstore.SetJSON(ctx, kvstore.ForUser(s.backend, userID), CacheKey, cs)
}

func (s *Service) List(ctx context.Context, userID string) ([]Contract, error) {
	return s.load(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (Contract, error) {
	cs, err := s.load(ctx, userID)
	if err != nil {
		return Contract{}, err
	}
	for _, c := range cs {
		if c.ID == id {
			return c, nil
		}
	}
	return Contract{}, ErrNotFound
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (Contract, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Contract{}, &ValidationError{Fields: errs}
	}
	if in.Type == nil {
		return Contract{}, &ValidationError{Fields: map[string]string{"type": "is required"}}
	}
	now := s.now().UTC()
	c := Contract{ID: s.newID(), Status: StatusToRegister, Parties: map[string]string{}, CreatedAt: now, UpdatedAt: now}
	in.apply(&c)
	return c, s.insert(ctx, userID, c)
}

// CreateFromOperation records the contract produced by a completed operation.
func (s *Service) CreateFromOperation(ctx context.Context, userID string, op OperationSummary) (Contract, error) {
	c := FromOperation(s.newID(), op, s.now().UTC())
	return c, s.insert(ctx, userID, c)
}

func (s *Service) insert(ctx context.Context, userID string, c Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	return s.save(ctx, userID, append([]Contract{c}, cs...))
}

func (s *Service) Update(ctx context.Context, userID, id string, in Input) (Contract, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Contract{}, &ValidationError{Fields: errs}
	}
	return s.modify(ctx, userID, id, func(c *Contract) { in.apply(c) })
}

// Register marks a contract registered, stamping the registration date.
func (s *Service) Register(ctx context.Context, userID, id string) (Contract, error) {
	return s.modify(ctx, userID, id, func(c *Contract) {
		now := s.now().UTC()
		c.Status = StatusRegistered
		c.RegistrationDate = &now
	})
}

func (s *Service) modify(ctx context.Context, userID, id string, fn func(*Contract)) (Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, err := s.load(ctx, userID)
	if err != nil {
		return Contract{}, err
	}
	i := slices.IndexFunc(cs, func(c Contract) bool { return c.ID == id })
	if i < 0 {
		return Contract{}, ErrNotFound
	}
	fn(&cs[i])
	cs[i].UpdatedAt = s.now().UTC()
	if err := s.save(ctx, userID, cs); err != nil {
		return Contract{}, err
	}
	return cs[i], nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(cs, func(c Contract) bool { return c.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	return s.save(ctx, userID, slices.Delete(cs, i, i+1))
}

func (s *Service) ToRegister(ctx context.Context, userID string) ([]Contract, error) {
	cs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToRegister(cs), nil
}

func (s *Service) Upcoming(ctx context.Context, userID string, days int) ([]Contract, error) {
	cs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return UpcomingDeadlines(cs, days, s.now()), nil
}

func (s *Service) Critical(ctx context.Context, userID string) ([]Contract, error) {
	cs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return CriticalDeadlines(cs, s.now()), nil
}
