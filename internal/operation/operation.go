package operation

import (
	"strings"
	"time"
)

// Kind tells whether a deal closed a sale or a lease.
type Kind string

const (
	KindSale Kind = "sale"
	KindRent Kind = "rent"
)

// ParseKind accepts the legacy labels "Vendita eseguita" and "Affitto eseguito".
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sale", "vendita", "vendita eseguita":
		return KindSale
	case "rent", "affitto", "affitto eseguito", "locazione":
		return KindRent
	default:
		return ""
	}
}

// Operation is a closed deal between a seller and a buyer.
type Operation struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Type         Kind      `json:"type"`
	SellerName   string    `json:"sellerName"`
	SellerPhone  string    `json:"sellerPhone"`
	SellerEmail  string    `json:"sellerEmail"`
	BuyerName    string    `json:"buyerName"`
	BuyerPhone   string    `json:"buyerPhone"`
	BuyerEmail   string    `json:"buyerEmail"`
	PropertyType string    `json:"propertyType"`
	Location     string    `json:"location"`
	Price        string    `json:"price"`
	Commission   string    `json:"commission"`
	Notes        string    `json:"notes"`
	CompletedAt  time.Time `json:"completedAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Input struct {
	Type         string     `json:"type"`
	SellerName   string     `json:"sellerName"`
	SellerPhone  string     `json:"sellerPhone"`
	SellerEmail  string     `json:"sellerEmail"`
	BuyerName    string     `json:"buyerName"`
	BuyerPhone   string     `json:"buyerPhone"`
	BuyerEmail   string     `json:"buyerEmail"`
	PropertyType string     `json:"propertyType"`
	Location     string     `json:"location"`
	Price        string     `json:"price"`
	Commission   string     `json:"commission"`
	Notes        string     `json:"notes"`
	CompletedAt  *time.Time `json:"completedAt"`
}

func (in Input) validate() map[string]string {
	errs := map[string]string{}
	if ParseKind(in.Type) == "" {
		errs["type"] = "must be sale or rent"
	}
	if strings.TrimSpace(in.SellerName) == "" {
		errs["sellerName"] = "is required"
	}
	if strings.TrimSpace(in.BuyerName) == "" {
		errs["buyerName"] = "is required"
	}
	return errs
}
