package buyer

import (
	"net/mail"
	"strings"
	"time"
)

// RequestType is what the buyer is looking for.
type RequestType string

const (
	RequestPurchase RequestType = "purchase"
	RequestRental   RequestType = "rental"
)

// ParseRequestType accepts the stored value and the legacy Italian labels.
func ParseRequestType(s string) RequestType {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "purchase", "acquisto", "buy":
		return RequestPurchase
	case "rental", "locazione", "affitto", "rent":
		return RequestRental
	default:
		return RequestType(v)
	}
}

const dateLayout = "2006-01-02"

type Buyer struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Birthday     string      `json:"birthday,omitempty"`
	Type         RequestType `json:"type"`
	PropertyType string      `json:"propertyType"`
	Features     string      `json:"features"`
	Budget       string      `json:"budget"`
	Zone         string      `json:"zone"`
	Notes        string      `json:"notes"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// BirthdayDate parses Birthday; ok is false when unset or malformed.
func (b Buyer) BirthdayDate() (time.Time, bool) {
	if b.Birthday == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, b.Birthday)
	return t, err == nil
}

type Input struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Birthday     string `json:"birthday"`
	Type         string `json:"type"`
	PropertyType string `json:"propertyType"`
	Features     string `json:"features"`
	Budget       string `json:"budget"`
	Zone         string `json:"zone"`
	Notes        string `json:"notes"`
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	switch ParseRequestType(in.Type) {
	case RequestPurchase, RequestRental:
	default:
		errs["type"] = "type must be purchase or rental"
	}
	if e := strings.TrimSpace(in.Email); e != "" {
		if _, err := mail.ParseAddress(e); err != nil {
			errs["email"] = "invalid email"
		}
	}
	if in.Birthday != "" {
		if _, err := time.Parse(dateLayout, in.Birthday); err != nil {
			errs["birthday"] = "birthday must be YYYY-MM-DD"
		}
	}
	return errs
}

func (in Input) apply(b *Buyer) {
	b.Name = strings.TrimSpace(in.Name)
	b.Email = strings.TrimSpace(in.Email)
	b.Phone = strings.TrimSpace(in.Phone)
	b.Birthday = in.Birthday
	b.Type = ParseRequestType(in.Type)
	b.PropertyType = strings.TrimSpace(in.PropertyType)
	b.Features = in.Features
	b.Budget = strings.TrimSpace(in.Budget)
	b.Zone = strings.TrimSpace(in.Zone)
	b.Notes = in.Notes
}
