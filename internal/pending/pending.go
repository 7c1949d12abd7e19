// Package pending queues public requests that arrive while no agent is
// available. An admin later processes them into regular client requests.
package pending

import (
	"time"

	"github.com/wichananm65/estate-crm/internal/clients"
)

type Request struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	RequestType  string     `json:"requestType"`
	PropertyType string     `json:"propertyType"`
	Location     string     `json:"location"`
	Budget       string     `json:"budget"`
	Timeframe    string     `json:"timeframe"`
	Features     string     `json:"features"`
	Notes        string     `json:"notes"`
	Processed    bool       `json:"processed"`
	ClientID     string     `json:"clientId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
}

func fromLead(l clients.Lead) Request {
	return Request{
		Name:         l.Name,
		Email:        l.Email,
		Phone:        l.Phone,
		RequestType:  l.RequestType,
		PropertyType: l.PropertyType,
		Location:     l.Zone,
		Budget:       l.Budget,
		Features:     l.Features,
		Notes:        l.AdditionalDetails,
	}
}

// Lead turns the stored request back into the public form it came from.
func (r Request) Lead() clients.Lead {
	return clients.Lead{
		Name:              r.Name,
		Email:             r.Email,
		Phone:             r.Phone,
		RequestType:       r.RequestType,
		PropertyType:      r.PropertyType,
		Budget:            r.Budget,
		Zone:              r.Location,
		Features:          r.Features,
		AdditionalDetails: r.Notes,
	}
}
