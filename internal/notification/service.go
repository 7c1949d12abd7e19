package notification

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/wichananm65/estate-crm/internal/buyer"
	"github.com/wichananm65/estate-crm/internal/contract"
	"github.com/wichananm65/estate-crm/internal/kvstore"
	"github.com/wichananm65/estate-crm/internal/logging"
	"github.com/wichananm65/estate-crm/internal/seller"
)

// CacheKey holds the notification list in each user namespace.
const CacheKey = "notifications"

var ErrNotFound = errors.New("notification not found")

type BuyerLister interface {
	List(ctx context.Context, userID string) ([]buyer.Buyer, error)
}

type SellerLister interface {
	List(ctx context.Context, userID string) ([]seller.Seller, error)
}

type ContractLister interface {
	List(ctx context.Context, userID string) ([]contract.Contract, error)
}

type Service struct {
	backend   kvstore.Backend
	buyers    BuyerLister
	sellers   SellerLister
	contracts ContractLister
	lggr      logging.Logger
	mu        sync.Mutex
	now       func() time.Time
}

func NewService(backend kvstore.Backend, buyers BuyerLister, sellers SellerLister, contracts ContractLister, lggr logging.Logger) *Service {
	if lggr == nil {
		lggr = logging.Nop()
	}
	return &Service{
		backend:   backend,
		buyers:    buyers,
		sellers:   sellers,
		contracts: contracts,
		lggr:      lggr,
		now:       time.Now,
	}
}

func (s *Service) load(ctx context.Context, userID string) ([]Notification, error) {
	return kvstore.GetJSON(ctx, kvstore.ForUser(s.backend, userID), CacheKey, []Notification{})
}

func (s *Service) save(ctx context.Context, userID string, ns []Notification) error {
	return kvstore.SetJSON(ctx, kvstore.ForUser(s.backend, userID), CacheKey, ns)
}

func (s *Service) people(ctx context.Context, userID string) ([]Person, error) {
	buyers, err := s.buyers.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sellers, err := s.sellers.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Person, 0, len(buyers)+len(sellers))
	for _, b := range buyers {
		if d, ok := b.BirthdayDate(); ok {
			out = append(out, Person{ID: b.ID, Name: b.Name, Kind: "buyer", Birthday: d})
		}
	}
	for _, sl := range sellers {
		if d, ok := sl.BirthdayDate(); ok {
			out = append(out, Person{ID: sl.ID, Name: sl.Name, Kind: "seller", Birthday: d})
		}
	}
	return out, nil
}

// Refresh derives the reminders due now, stores the ones not seen before and
// returns those of them that are urgent.
func (s *Service) Refresh(ctx context.Context, userID string) ([]Notification, error) {
	people, err := s.people(ctx, userID)
	if err != nil {
		return nil, err
	}
	contracts, err := s.contracts.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	fresh := Derive(people, contracts, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged, added := Merge(existing, fresh)
	if len(added) == 0 {
		return []Notification{}, nil
	}
	if err := s.save(ctx, userID, merged); err != nil {
		return nil, err
	}

	urgent := make([]Notification, 0)
	for _, n := range added {
		if n.Urgent {
			urgent = append(urgent, n)
		}
	}
	s.lggr.Debugw("notifications refreshed", "user", userID, "added", len(added), "urgent", len(urgent))
	return urgent, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Notification, error) {
	return s.load(ctx, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	ns, err := s.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return countUnread(ns), nil
}

func countUnread(ns []Notification) int {
	n := 0
	for _, x := range ns {
		if !x.Read {
			n++
		}
	}
	return n
}

func (s *Service) MarkAsRead(ctx context.Context, userID, id string) error {
	return s.update(ctx, userID, func(ns []Notification) ([]Notification, error) {
		i := slices.IndexFunc(ns, func(n Notification) bool { return n.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		ns[i].Read = true
		return ns, nil
	})
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.update(ctx, userID, func(ns []Notification) ([]Notification, error) {
		for i := range ns {
			ns[i].Read = true
		}
		return ns, nil
	})
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.update(ctx, userID, func(ns []Notification) ([]Notification, error) {
		i := slices.IndexFunc(ns, func(n Notification) bool { return n.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		return slices.Delete(ns, i, i+1), nil
	})
}

// Clear empties the list. Reminders still due come back on the next Refresh.
func (s *Service) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, userID, []Notification{})
}

func (s *Service) update(ctx context.Context, userID string, fn func([]Notification) ([]Notification, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	ns, err = fn(ns)
	if err != nil {
		return err
	}
	return s.save(ctx, userID, ns)
}
