package portal

import (
	"context"
	"errors"
	"strings"

	"github.com/wichananm65/estate-crm/internal/logging"
	"github.com/wichananm65/estate-crm/internal/property"
	"github.com/wichananm65/estate-crm/internal/seller"
)

var (
	ErrUnknownPortal = errors.New("unknown portal")
	ErrInvalid       = errors.New("listing is not valid")
	ErrNoUser        = errors.New("portal calls need an authenticated user")
)

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return ErrInvalid.Error() + ": " + strings.Join(e.Errors, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

type PropertyGetter interface {
	Get(ctx context.Context, userID, id string) (property.Property, error)
}

type SellerGetter interface {
	Get(ctx context.Context, userID, id string) (seller.Seller, error)
}

type Service struct {
	properties PropertyGetter
	sellers    SellerGetter
	sim        *Simulator
	lggr       logging.Logger
}

func NewService(properties PropertyGetter, sellers SellerGetter, sim *Simulator, lggr logging.Logger) *Service {
	if lggr == nil {
		lggr = logging.Nop()
	}
	return &Service{properties: properties, sellers: sellers, sim: sim, lggr: lggr}
}

// listing loads the property and its seller and builds a valid listing.
func (s *Service) listing(ctx context.Context, userID, propertyID string, cfg Config, extra Extra) (Listing, error) {
	p, err := s.properties.Get(ctx, userID, propertyID)
	if err != nil {
		return Listing{}, err
	}
	sl, err := s.sellers.Get(ctx, userID, p.SellerID)
	if err != nil {
		return Listing{}, err
	}
	l := Convert(p, sl, cfg.ID, extra)
	if errs := Validate(l); len(errs) > 0 {
		return Listing{}, &ValidationError{Errors: errs}
	}
	return l, nil
}

func (s *Service) Publish(ctx context.Context, userID, propertyID, portalID string, extra Extra) (Result, error) {
	cfg, ok := Lookup(portalID)
	if !ok {
		return Result{}, ErrUnknownPortal
	}
	l, err := s.listing(ctx, userID, propertyID, cfg, extra)
	if err != nil {
		return Result{}, err
	}
	res, err := s.sim.Publish(ctx, cfg, l)
	if err != nil {
		return Result{}, err
	}
	if res.Success {
		s.lggr.Infow("listing published", "user", userID, "portal", cfg.ID, "property", propertyID, "listing", res.ID)
	} else {
		s.lggr.Warnw("listing publish failed", "user", userID, "portal", cfg.ID, "property", propertyID, "error", res.Error)
	}
	return res, nil
}

func (s *Service) Update(ctx context.Context, userID, portalID, listingID, propertyID string, extra Extra) (Result, error) {
	cfg, ok := Lookup(portalID)
	if !ok {
		return Result{}, ErrUnknownPortal
	}
	l, err := s.listing(ctx, userID, propertyID, cfg, extra)
	if err != nil {
		return Result{}, err
	}
	res, err := s.sim.Update(ctx, cfg, listingID, l)
	if err == nil && !res.Success {
		s.lggr.Warnw("listing update failed", "user", userID, "portal", cfg.ID, "listing", listingID)
	}
	return res, err
}

// Delete removes a listing on behalf of userID. Listings live on the portal
// side only, so the user is recorded in the log rather than checked.
func (s *Service) Delete(ctx context.Context, userID, portalID, listingID string) (Result, error) {
	if userID == "" {
		return Result{}, ErrNoUser
	}
	cfg, ok := Lookup(portalID)
	if !ok {
		return Result{}, ErrUnknownPortal
	}
	res, err := s.sim.Delete(ctx, cfg, listingID)
	if err != nil {
		return Result{}, err
	}
	if res.Success {
		s.lggr.Infow("listing deleted", "user", userID, "portal", cfg.ID, "listing", listingID)
	} else {
		s.lggr.Warnw("listing delete failed", "user", userID, "portal", cfg.ID, "listing", listingID)
	}
	return res, nil
}

func (s *Service) Status(ctx context.Context, userID, portalID, listingID string) (Result, error) {
	if userID == "" {
		return Result{}, ErrNoUser
	}
	cfg, ok := Lookup(portalID)
	if !ok {
		return Result{}, ErrUnknownPortal
	}
	s.lggr.Debugw("listing status", "user", userID, "portal", cfg.ID, "listing", listingID)
	return s.sim.Status(ctx, cfg, listingID)
}
