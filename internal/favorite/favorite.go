// Package favorite keeps the buyers and sellers an agent has starred.
package favorite

import (
	"strings"
	"time"
)

type ClientType string

const (
	ClientBuyer  ClientType = "buyer"
	ClientSeller ClientType = "seller"
)

// ParseClientType returns "" for anything but buyer or seller.
func ParseClientType(s string) ClientType {
	switch ClientType(strings.ToLower(strings.TrimSpace(s))) {
	case ClientBuyer:
		return ClientBuyer
	case ClientSeller:
		return ClientSeller
	default:
		return ""
	}
}

type Favorite struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	ClientID   string     `json:"clientId"`
	ClientType ClientType `json:"clientType"`
	CreatedAt  time.Time  `json:"createdAt"`
}
