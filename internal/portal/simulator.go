package portal

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusInactive ListingStatus = "inactive"
	StatusPending  ListingStatus = "pending"
	StatusRejected ListingStatus = "rejected"
)

var statuses = []ListingStatus{StatusActive, StatusInactive, StatusPending, StatusRejected}

var publishFailures = []string{
	"connection to the portal failed",
	"missing or invalid data",
	"publication limit reached",
	"API authentication failed",
	"property already listed on the portal",
	"category not supported",
}

// Result is what a portal call returns. Success false with Error set is a
// portal-side failure, not a transport error.
type Result struct {
	Success bool          `json:"success"`
	ID      string        `json:"id,omitempty"`
	URL     string        `json:"url,omitempty"`
	Status  ListingStatus `json:"status,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Simulator stands in for the portal APIs. Each call waits a random latency
// and then succeeds with a fixed probability.
type Simulator struct {
	latency bool
	float64 func() float64
	intN    func(n int) int
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewSimulator(latency bool) *Simulator {
	return &Simulator{
		latency: latency,
		float64: rand.Float64,
		intN:    rand.IntN,
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// wait sleeps between min and min+spread milliseconds.
func (s *Simulator) wait(ctx context.Context, minMS, spreadMS float64) error {
	if !s.latency {
		return ctx.Err()
	}
	d := time.Duration(minMS+s.float64()*spreadMS) * time.Millisecond
	return s.sleep(ctx, d)
}

func (s *Simulator) Publish(ctx context.Context, cfg Config, _ Listing) (Result, error) {
	if err := s.wait(ctx, 2000, 3000); err != nil {
		return Result{}, err
	}
	if s.float64() <= 0.15 {
		return Result{Error: publishFailures[s.intN(len(publishFailures))]}, nil
	}
	id := fmt.Sprintf("%s_%d_%d", cfg.ID, s.now().UnixMilli(), s.intN(1000))
	return Result{Success: true, ID: id, URL: cfg.ListingURL + id}, nil
}

func (s *Simulator) Update(ctx context.Context, _ Config, listingID string, _ Listing) (Result, error) {
	if err := s.wait(ctx, 1500, 2000); err != nil {
		return Result{}, err
	}
	if s.float64() <= 0.10 {
		return Result{ID: listingID, Error: "listing update failed"}, nil
	}
	return Result{Success: true, ID: listingID}, nil
}

func (s *Simulator) Delete(ctx context.Context, _ Config, listingID string) (Result, error) {
	if err := s.wait(ctx, 1000, 1500); err != nil {
		return Result{}, err
	}
	if s.float64() <= 0.05 {
		return Result{ID: listingID, Error: "listing deletion failed"}, nil
	}
	return Result{Success: true, ID: listingID}, nil
}

func (s *Simulator) Status(ctx context.Context, _ Config, listingID string) (Result, error) {
	if err := s.wait(ctx, 500, 1000); err != nil {
		return Result{}, err
	}
	return Result{Success: true, ID: listingID, Status: statuses[s.intN(len(statuses))]}, nil
}
