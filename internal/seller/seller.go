package seller

import (
	"net/mail"
	"strings"
	"time"

	"github.com/wichananm65/estate-crm/internal/property"
)

// Status is where the seller stands in the sales pipeline.
type Status string

const (
	StatusReadyToSell  Status = "ready_to_sell"
	StatusInManagement Status = "in_management"
	StatusClosed       Status = "closed"
)

// ParseStatus accepts the stored value and the legacy Italian labels.
func ParseStatus(s string) Status {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "ready_to_sell", "da vendere":
		return StatusReadyToSell
	case "in_management", "in gestione":
		return StatusInManagement
	case "closed", "venduto", "chiuso":
		return StatusClosed
	default:
		return Status(v)
	}
}

const dateLayout = "2006-01-02"

type Seller struct {
	ID         string              `json:"id"`
	UserID     string              `json:"userId"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Phone      string              `json:"phone"`
	Birthday   string              `json:"birthday,omitempty"`
	Status     Status              `json:"status"`
	Notes      string              `json:"notes"`
	Properties []property.Property `json:"properties"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// BirthdayDate parses Birthday; ok is false when unset or malformed.
func (s Seller) BirthdayDate() (time.Time, bool) {
	if s.Birthday == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s.Birthday)
	return t, err == nil
}

type Input struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Birthday string `json:"birthday"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if in.Status != "" {
		switch ParseStatus(in.Status) {
		case StatusReadyToSell, StatusInManagement, StatusClosed:
		default:
			errs["status"] = "status must be ready_to_sell, in_management or closed"
		}
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

func (in Input) apply(s *Seller) {
	s.Name = strings.TrimSpace(in.Name)
	s.Email = strings.TrimSpace(in.Email)
	s.Phone = strings.TrimSpace(in.Phone)
	s.Birthday = in.Birthday
	s.Status = ParseStatus(in.Status)
	if s.Status == "" {
		s.Status = StatusInManagement
	}
	s.Notes = in.Notes
}
