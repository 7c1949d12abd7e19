// Package portal converts CRM properties into listings for the external
// real-estate portals and talks to a simulated syndication API.
package portal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wichananm65/estate-crm/internal/money"
	"github.com/wichananm65/estate-crm/internal/property"
	"github.com/wichananm65/estate-crm/internal/seller"
)

const (
	Agency   = "Immobiliare Filippo Marcuzzo"
	Currency = "EUR"
	Region   = "Italia"
)

// Config describes one portal. Types maps lowercased CRM property types to
// the portal's own vocabulary.
type Config struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	BaseURL    string            `json:"baseUrl"`
	ListingURL string            `json:"listingUrl"`
	Types      map[string]string `json:"-"`
}

var configs = map[string]Config{
	"immobiliare": {
		ID:         "immobiliare",
		Name:       "Immobiliare.it",
		BaseURL:    "https://api.immobiliare.it/v1",
		ListingURL: "https://www.immobiliare.it/annunci/",
		Types: map[string]string{
			"monolocale":   "monolocale",
			"bilocale":     "bilocale",
			"trilocale":    "trilocale",
			"quadrilocale": "quadrilocale",
			"villa":        "villa",
			"attico":       "attico",
			"loft":         "loft",
			"bifamiliare":  "bifamiliare",
			"multi locale": "multilocale",
			"ufficio":      "ufficio",
			"negozio":      "negozio",
			"magazzino":    "magazzino",
		},
	},
	"idealista": {
		ID:         "idealista",
		Name:       "Idealista",
		BaseURL:    "https://api.idealista.com/3.5",
		ListingURL: "https://www.idealista.it/immobile/",
		Types: map[string]string{
			"monolocale":   "flat",
			"bilocale":     "flat",
			"trilocale":    "flat",
			"quadrilocale": "flat",
			"villa":        "chalet",
			"attico":       "penthouse",
			"loft":         "loft",
			"bifamiliare":  "duplex",
			"multi locale": "flat",
			"ufficio":      "office",
			"negozio":      "premises",
			"magazzino":    "storage",
		},
	},
}

// Lookup returns the configuration of a known portal.
func Lookup(id string) (Config, bool) {
	c, ok := configs[strings.ToLower(strings.TrimSpace(id))]
	return c, ok
}

// MapType falls back to "flat" for types the portal does not list.
func (c Config) MapType(propertyType string) string {
	if t, ok := c.Types[strings.ToLower(strings.TrimSpace(propertyType))]; ok {
		return t
	}
	return "flat"
}

type Features struct {
	Rooms       int    `json:"rooms,omitempty"`
	Bathrooms   int    `json:"bathrooms,omitempty"`
	Surface     int    `json:"surface,omitempty"`
	Floor       int    `json:"floor,omitempty"`
	EnergyClass string `json:"energyClass,omitempty"`
	Furnished   bool   `json:"furnished,omitempty"`
	Parking     bool   `json:"parking,omitempty"`
	Garden      bool   `json:"garden,omitempty"`
	Terrace     bool   `json:"terrace,omitempty"`
	Elevator    bool   `json:"elevator,omitempty"`
}

type Location struct {
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
}

type Contact struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Agency string `json:"agency,omitempty"`
}

type Options struct {
	ShowOnMap bool `json:"showOnMap"`
	Highlight bool `json:"highlight"`
	AutoRenew bool `json:"autoRenew"`
}

// Listing is the payload sent to a portal.
type Listing struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	Location      Location `json:"location"`
	PropertyType  string   `json:"propertyType"`
	OperationType string   `json:"operationType"`
	Features      Features `json:"features"`
	Contact       Contact  `json:"contact"`
	Options       Options  `json:"options"`
}

// Extra carries the values the agent adds when publishing.
type Extra struct {
	Description  string `json:"description"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`
	ShowOnMap    *bool  `json:"showOnMap"`
	Highlight    *bool  `json:"highlight"`
}

var (
	roomsRe     = regexp.MustCompile(`(\d+)\s*(?:locali?|camere?|stanze?)`)
	bathroomsRe = regexp.MustCompile(`(\d+)\s*bagni?`)
	surfaceRe   = regexp.MustCompile(`(\d+)\s*(?:mq|m²|metri)`)
	floorRe     = regexp.MustCompile(`(\d+)°?\s*piano|piano\s*(\d+)`)
	energyRe    = regexp.MustCompile(`classe\s*energetica\s*([a-g])`)
)

func firstInt(groups []string) int {
	for _, g := range groups[1:] {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err == nil {
			return n
		}
	}
	return 0
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// ParseFeatures reads the comma-separated free-text features of a property.
// Later entries override earlier ones for the numeric fields.
func ParseFeatures(text string) Features {
	var f Features
	for _, item := range strings.Split(text, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if m := roomsRe.FindStringSubmatch(item); m != nil {
			f.Rooms = firstInt(m)
		}
		if m := bathroomsRe.FindStringSubmatch(item); m != nil {
			f.Bathrooms = firstInt(m)
		}
		if m := surfaceRe.FindStringSubmatch(item); m != nil {
			f.Surface = firstInt(m)
		}
		if m := floorRe.FindStringSubmatch(item); m != nil {
			f.Floor = firstInt(m)
		}
		if m := energyRe.FindStringSubmatch(item); m != nil {
			f.EnergyClass = strings.ToUpper(m[1])
		}
		if containsAny(item, "arredato", "ammobiliato") {
			f.Furnished = true
		}
		if containsAny(item, "posto auto", "garage", "parcheggio") {
			f.Parking = true
		}
		if strings.Contains(item, "giardino") {
			f.Garden = true
		}
		if containsAny(item, "terrazzo", "terrazza", "balcone") {
			f.Terrace = true
		}
		if strings.Contains(item, "ascensore") {
			f.Elevator = true
		}
	}
	return f
}

// Convert builds the listing for portalID. The first comma-separated part of
// the property location is the address, the second the city.
func Convert(p property.Property, s seller.Seller, portalID string, extra Extra) Listing {
	cfg, _ := Lookup(portalID)

	price, _ := money.ParseAmount(p.Price)

	parts := strings.Split(p.Location, ",")
	address := strings.TrimSpace(parts[0])
	if address == "" {
		address = strings.TrimSpace(p.Location)
	}
	var city string
	if len(parts) > 1 {
		city = strings.TrimSpace(parts[1])
	}

	var desc []string
	for _, d := range []string{p.Notes, extra.Description} {
		if strings.TrimSpace(d) != "" {
			desc = append(desc, d)
		}
	}

	op := "sale"
	if p.OperationType == property.OperationRent {
		op = "rent"
	}

	phone := extra.ContactPhone
	if phone == "" {
		phone = s.Phone
	}
	email := extra.ContactEmail
	if email == "" {
		email = s.Email
	}

	opts := Options{ShowOnMap: true, AutoRenew: true}
	if extra.ShowOnMap != nil {
		opts.ShowOnMap = *extra.ShowOnMap
	}
	if extra.Highlight != nil {
		opts.Highlight = *extra.Highlight
	}

	return Listing{
		Title:         fmt.Sprintf("%s - %s", p.PropertyType, p.Location),
		Description:   strings.Join(desc, "\n\n"),
		Price:         price,
		Currency:      Currency,
		Location:      Location{Address: address, City: city, Region: Region},
		PropertyType:  cfg.MapType(p.PropertyType),
		OperationType: op,
		Features:      ParseFeatures(p.Features),
		Contact:       Contact{Name: s.Name, Phone: phone, Email: email, Agency: Agency},
		Options:       opts,
	}
}

var (
	phoneRe = regexp.MustCompile(`^[+]?[0-9\s\-()]{8,}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validate lists every problem that would make a portal reject the listing.
func Validate(l Listing) []string {
	var errs []string
	if utf8.RuneCountInString(strings.TrimSpace(l.Title)) < 10 {
		errs = append(errs, "title must be at least 10 characters")
	}
	if utf8.RuneCountInString(strings.TrimSpace(l.Description)) < 50 {
		errs = append(errs, "description must be at least 50 characters")
	}
	if l.Price <= 0 {
		errs = append(errs, "price must be greater than zero")
	}
	if l.Location.Address == "" {
		errs = append(errs, "address is required")
	}
	if l.Contact.Phone == "" && l.Contact.Email == "" {
		errs = append(errs, "a phone or an email contact is required")
	}
	if l.Contact.Phone != "" && !phoneRe.MatchString(l.Contact.Phone) {
		errs = append(errs, "phone number is not valid")
	}
	if l.Contact.Email != "" && !emailRe.MatchString(l.Contact.Email) {
		errs = append(errs, "email is not valid")
	}
	return errs
}
