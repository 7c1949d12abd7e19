package match

import (
	"context"
	"errors"

	"github.com/wichananm65/estate-crm/internal/buyer"
	"github.com/wichananm65/estate-crm/internal/seller"
)

var ErrBuyerNotFound = errors.New("buyer not found")

type BuyerLister interface {
	List(ctx context.Context, userID string) ([]buyer.Buyer, error)
}

type SellerLister interface {
	List(ctx context.Context, userID string) ([]seller.Seller, error)
}

// Service computes matches over the records of one user.
type Service struct {
	buyers  BuyerLister
	sellers SellerLister
}

func NewService(buyers BuyerLister, sellers SellerLister) *Service {
	return &Service{buyers: buyers, sellers: sellers}
}

// ForUser matches all of the user's buyers against all of their sellers.
// limit > 0 truncates each bucket.
func (s *Service) ForUser(ctx context.Context, userID string, limit int) (Result, error) {
	buyers, err := s.buyers.List(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	sellers, err := s.sellers.List(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	return truncate(Calculate(buyers, sellers), limit), nil
}

// ForBuyer matches a single buyer of the user.
func (s *Service) ForBuyer(ctx context.Context, userID, buyerID string, limit int) (Result, error) {
	buyers, err := s.buyers.List(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	var target []buyer.Buyer
	for _, b := range buyers {
		if b.ID == buyerID {
			target = append(target, b)
			break
		}
	}
	if target == nil {
		return Result{}, ErrBuyerNotFound
	}
	sellers, err := s.sellers.List(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	return truncate(Calculate(target, sellers), limit), nil
}

func truncate(r Result, limit int) Result {
	if limit <= 0 {
		return r
	}
	if len(r.Sales) > limit {
		r.Sales = r.Sales[:limit]
	}
	if len(r.Rentals) > limit {
		r.Rentals = r.Rentals[:limit]
	}
	return r
}
