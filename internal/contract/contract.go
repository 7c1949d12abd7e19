// Package contract tracks the registration deadlines of contracts created
// from completed operations. Contracts live only in the user's key-value
// namespace, not in Postgres.
package contract

import (
	"math"
	"time"

	"github.com/wichananm65/estate-crm/internal/money"
)

type Type string

const (
	TypeRent        Type = "rent"
	TypeSale        Type = "sale"
	TypePreliminary Type = "preliminary"
	TypeOther       Type = "other"
)

type Status string

const (
	StatusToRegister Status = "to_register"
	StatusRegistered Status = "registered"
	StatusExpired    Status = "expired"
)

// RegistrationWindow is the time allowed to register a new contract.
const RegistrationWindow = 30 * 24 * time.Hour

type Contract struct {
	ID                     string            `json:"id"`
	Type                   Type              `json:"type"`
	Status                 Status            `json:"status"`
	Description            string            `json:"description"`
	Parties                map[string]string `json:"parties"`
	RegistrationDate       *time.Time        `json:"registrationDate,omitempty"`
	RegistrationExpiryDate *time.Time        `json:"registrationExpiryDate,omitempty"`
	Amount                 float64           `json:"amount"`
	CreatedAt              time.Time         `json:"createdAt"`
	UpdatedAt              time.Time         `json:"updatedAt"`
}

// DaysUntilExpiry is ceil((expiry-now)/24h). ok is false without an expiry date.
func (c Contract) DaysUntilExpiry(now time.Time) (int, bool) {
	if c.RegistrationExpiryDate == nil {
		return 0, false
	}
	return DaysUntil(*c.RegistrationExpiryDate, now), true
}

// DaysUntil rounds the remaining time up to whole days; negative when past.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// OperationSummary is what a completed operation contributes to its contract.
type OperationSummary struct {
	Sale         bool
	PropertyType string
	Location     string
	Price        string
	SellerName   string
	BuyerName    string
}

// FromOperation builds the to-register contract of a completed operation,
// due RegistrationWindow after now.
func FromOperation(id string, op OperationSummary, now time.Time) Contract {
	c := Contract{
		ID:        id,
		Type:      TypeRent,
		Status:    StatusToRegister,
		CreatedAt: now,
		UpdatedAt: now,
	}
	label := "Lease contract"
	if op.Sale {
		c.Type = TypeSale
		label = "Sale contract"
		c.Parties = map[string]string{"seller": op.SellerName, "buyer": op.BuyerName}
	} else {
		c.Parties = map[string]string{"landlord": op.SellerName, "tenant": op.BuyerName}
	}
	c.Description = label + " - " + op.PropertyType + " in " + op.Location
	if amount, ok := money.ParseAmount(op.Price); ok {
		c.Amount = amount
	}
	expiry := now.Add(RegistrationWindow)
	c.RegistrationExpiryDate = &expiry
	return c
}

// ToRegister returns the contracts still waiting for registration.
func ToRegister(cs []Contract) []Contract {
	out := make([]Contract, 0)
	for _, c := range cs {
		if c.Status == StatusToRegister {
			out = append(out, c)
		}
	}
	return out
}

// UpcomingDeadlines returns contracts whose expiry falls within 0..days.
func UpcomingDeadlines(cs []Contract, days int, now time.Time) []Contract {
	out := make([]Contract, 0)
	for _, c := range cs {
		d, ok := c.DaysUntilExpiry(now)
		if ok && d >= 0 && d <= days {
			out = append(out, c)
		}
	}
	return out
}

// CriticalDeadlines is UpcomingDeadlines with the one-week default.
func CriticalDeadlines(cs []Contract, now time.Time) []Contract {
	return UpcomingDeadlines(cs, 7, now)
}
