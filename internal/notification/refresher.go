package notification

import (
	"context"
	"time"

	"github.com/wichananm65/estate-crm/internal/logging"
)

// UserLister returns the ids of every user with a profile.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

// Refresher runs Refresh for every known user on a fixed period.
type Refresher struct {
	service  *Service
	users    UserLister
	interval time.Duration
	lggr     logging.Logger
}

func NewRefresher(service *Service, users UserLister, interval time.Duration, lggr logging.Logger) *Refresher {
	if interval <= 0 {
		interval = time.Hour
	}
	if lggr == nil {
		lggr = logging.Nop()
	}
	return &Refresher{service: service, users: users, interval: interval, lggr: lggr}
}

// Run refreshes once immediately, then on every tick until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			r.lggr.Infow("notification refresher stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}

// RunOnce refreshes every user and returns how many urgent reminders were raised.
// A failing user is logged and skipped.
func (r *Refresher) RunOnce(ctx context.Context) int {
	ids, err := r.users.ListUserIDs(ctx)
	if err != nil {
		r.lggr.Errorw("list users for notifications", "error", err)
		return 0
	}
	total := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return total
		}
		urgent, err := r.service.Refresh(ctx, id)
		if err != nil {
			r.lggr.Warnw("notification refresh failed", "user", id, "error", err)
			continue
		}
		for _, n := range urgent {
			r.lggr.Infow("urgent notification", "user", id, "id", n.ID, "title", n.Title)
		}
		total += len(urgent)
	}
	return total
}
