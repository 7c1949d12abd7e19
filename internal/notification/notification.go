// Package notification derives birthday and contract-registration reminders
// and keeps them, with their read state, in the user's cache namespace.
package notification

import (
	"fmt"
	"time"

	"github.com/wichananm65/estate-crm/internal/contract"
)

type Type string

const (
	TypeBirthday Type = "birthday"
	TypeContract Type = "contract"
	TypeReminder Type = "reminder"
	TypeInfo     Type = "info"
)

// UpcomingDays is how far ahead reminders are raised.
const UpcomingDays = 7

type Notification struct {
	ID                  string    `json:"id"`
	Type                Type      `json:"type"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	ClientID            string    `json:"clientId,omitempty"`
	ClientName          string    `json:"clientName,omitempty"`
	ClientType          string    `json:"clientType,omitempty"`
	ContractID          string    `json:"contractId,omitempty"`
	ContractDescription string    `json:"contractDescription,omitempty"`
	Date                time.Time `json:"date"`
	Urgent              bool      `json:"urgent"`
	Read                bool      `json:"isRead"`
}

// Person is a buyer or seller as seen by the birthday check.
type Person struct {
	ID       string
	Name     string
	Kind     string // "buyer" or "seller"
	Birthday time.Time
}

// NextBirthday returns the next occurrence of birthday on or after the day
// of now, and the whole days until it.
func NextBirthday(birthday, now time.Time) (time.Time, int) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	next := time.Date(now.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, now.Location())
	if next.Before(today) {
		next = time.Date(now.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, now.Location())
	}
	return next, int(next.Sub(today).Hours()/24 + 0.5)
}

// Birthday returns the reminder for p, if its birthday is within UpcomingDays.
func Birthday(p Person, now time.Time) (Notification, bool) {
	next, days := NextBirthday(p.Birthday, now)
	n := Notification{
		ID:         fmt.Sprintf("birthday-%s-%s-%d", p.Kind, p.ID, next.UnixMilli()),
		Type:       TypeBirthday,
		ClientID:   p.ID,
		ClientName: p.Name,
		ClientType: p.Kind,
		Date:       next,
	}
	switch {
	case days == 0:
		n.Title = "Birthday today"
		n.Description = fmt.Sprintf("Today is %s's birthday. Don't forget to send your wishes!", p.Name)
		n.Urgent = true
	case days == 1:
		n.Title = "Birthday tomorrow"
		n.Description = fmt.Sprintf("Tomorrow is %s's birthday.", p.Name)
	case days <= UpcomingDays:
		n.Title = "Upcoming birthday"
		n.Description = fmt.Sprintf("%s's birthday is in %d days.", p.Name, days)
	default:
		return Notification{}, false
	}
	return n, true
}

// Contract returns the registration reminder for c. Registered contracts and
// contracts without an expiry date never produce one.
func Contract(c contract.Contract, now time.Time) (Notification, bool) {
	if c.Status == contract.StatusRegistered {
		return Notification{}, false
	}
	days, ok := c.DaysUntilExpiry(now)
	if !ok {
		return Notification{}, false
	}
	expiry := *c.RegistrationExpiryDate
	n := Notification{
		ID:                  fmt.Sprintf("contract-%s-%d", c.ID, expiry.UnixMilli()),
		Type:                TypeContract,
		ContractID:          c.ID,
		ContractDescription: c.Description,
		Date:                expiry,
	}
	switch {
	case days < 0:
		n.Title = "Registration overdue"
		n.Description = fmt.Sprintf("Contract %q is %s overdue", c.Description, plural(-days, "day"))
		n.Urgent = true
	case days == 0:
		n.Title = "Registration due today"
		n.Description = fmt.Sprintf("Contract %q must be registered TODAY", c.Description)
		n.Urgent = true
	case days == 1:
		n.Title = "Registration due tomorrow"
		n.Description = fmt.Sprintf("Contract %q must be registered by tomorrow", c.Description)
	case days <= UpcomingDays:
		n.Title = "Registration deadline"
		n.Description = fmt.Sprintf("Contract %q must be registered within %d days", c.Description, days)
	default:
		return Notification{}, false
	}
	return n, true
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Derive computes every reminder due at now, birthdays first.
func Derive(people []Person, contracts []contract.Contract, now time.Time) []Notification {
	out := make([]Notification, 0)
	for _, p := range people {
		if n, ok := Birthday(p, now); ok {
			out = append(out, n)
		}
	}
	for _, c := range contracts {
		if n, ok := Contract(c, now); ok {
			out = append(out, n)
		}
	}
	return out
}

// Merge appends the fresh notifications whose id is not already present.
// It returns the merged list and the notifications that were added.
func Merge(existing, fresh []Notification) (merged, added []Notification) {
	seen := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		seen[n.ID] = struct{}{}
	}
	merged = append(make([]Notification, 0, len(existing)+len(fresh)), existing...)
	added = make([]Notification, 0)
	for _, n := range fresh {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		merged = append(merged, n)
		added = append(added, n)
	}
	return merged, added
}
