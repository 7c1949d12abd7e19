package property

import (
	"strings"
	"time"
)

type OperationType string

const (
	OperationSale OperationType = "sale"
	OperationRent OperationType = "rent"
)

// ParseOperationType accepts the stored value and the legacy Italian labels.
// Empty input stays empty; unknown labels are kept lowercased.
func ParseOperationType(s string) OperationType {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "sale", "vendita", "sell":
		return OperationSale
	case "rent", "locazione", "affitto", "rental":
		return OperationRent
	default:
		return OperationType(v)
	}
}

// Property is a real-estate unit offered by a seller.
type Property struct {
	ID            string        `json:"id"`
	SellerID      string        `json:"sellerId"`
	Code          string        `json:"code"`
	PropertyType  string        `json:"propertyType"`
	Location      string        `json:"location"`
	Price         string        `json:"price"`
	OperationType OperationType `json:"operationType"`
	Features      string        `json:"features"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Input is the writable part of a Property.
type Input struct {
	Code          string `json:"code"`
	PropertyType  string `json:"propertyType"`
	Location      string `json:"location"`
	Price         string `json:"price"`
	OperationType string `json:"operationType"`
	Features      string `json:"features"`
	Notes         string `json:"notes"`
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(in.PropertyType) == "" {
		errs["propertyType"] = "propertyType is required"
	}
	if in.OperationType != "" {
		switch ParseOperationType(in.OperationType) {
		case OperationSale, OperationRent:
		default:
			errs["operationType"] = "operationType must be sale or rent"
		}
	}
	return errs
}

func (in Input) apply(p *Property) {
	p.Code = strings.TrimSpace(in.Code)
	p.PropertyType = strings.TrimSpace(in.PropertyType)
	p.Location = strings.TrimSpace(in.Location)
	p.Price = strings.TrimSpace(in.Price)
	p.OperationType = ParseOperationType(in.OperationType)
	if p.OperationType == "" {
		p.OperationType = OperationSale
	}
	p.Features = in.Features
	p.Notes = in.Notes
}
