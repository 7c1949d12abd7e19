// Package clients captures leads from the public site. A lead upserts a
// client by email and queues a request for the agency to follow up.
package clients

import (
	"net/mail"
	"strings"
	"time"
)

// RequestType is what the lead is asking the agency for.
type RequestType string

const (
	RequestPurchase RequestType = "purchase"
	RequestRental   RequestType = "rental"
	RequestSale     RequestType = "sale"
)

// ParseRequestType accepts the stored value and the Italian form labels.
func ParseRequestType(s string) RequestType {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "purchase", "acquisto":
		return RequestPurchase
	case "rental", "locazione", "affitto":
		return RequestRental
	case "sale", "vendita":
		return RequestSale
	default:
		return RequestType(v)
	}
}

func (t RequestType) valid() bool {
	return t == RequestPurchase || t == RequestRental || t == RequestSale
}

// Status of a client request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func (s Status) valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Request struct {
	ID           string      `json:"id"`
	ClientID     string      `json:"clientId"`
	RequestType  RequestType `json:"requestType"`
	PropertyType string      `json:"propertyType"`
	Location     string      `json:"location"`
	Budget       string      `json:"budget"`
	Timeframe    string      `json:"timeframe"`
	Features     string      `json:"features"`
	Notes        string      `json:"notes"`
	Status       Status      `json:"status"`
	ProcessedBy  string      `json:"processedBy,omitempty"`
	ProcessedAt  *time.Time  `json:"processedAt,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Lead is the public request form.
type Lead struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	RequestType       string `json:"requestType"`
	PropertyType      string `json:"propertyType"`
	Budget            string `json:"budget"`
	Zone              string `json:"zona"`
	Features          string `json:"features"`
	AdditionalDetails string `json:"additionalDetails"`
}

// Validate returns the field errors of the form.
func (l Lead) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(l.Name) == "" {
		errs["name"] = "is required"
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(l.Email)); err != nil {
		errs["email"] = "must be a valid email address"
	}
	if strings.TrimSpace(l.Phone) == "" {
		errs["phone"] = "is required"
	}
	if !ParseRequestType(l.RequestType).valid() {
		errs["requestType"] = "must be one of purchase, rental, sale"
	}
	return errs
}

// SubmitResult is what the public form receives back.
type SubmitResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ClientID string `json:"clientId,omitempty"`
}
