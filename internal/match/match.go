// Package match pairs buyers with the properties of sellers using an additive
// score over property type, budget, location, features and seller readiness.
package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wichananm65/estate-crm/internal/buyer"
	"github.com/wichananm65/estate-crm/internal/money"
	"github.com/wichananm65/estate-crm/internal/property"
	"github.com/wichananm65/estate-crm/internal/seller"
)

const (
	// MinScore is the lowest score reported as a match.
	MinScore = 30
	MaxScore = 100

	maxFeatureScore  = 15
	pointsPerFeature = 5
)

// categories are the property-type words that count as a partial match when
// both sides mention them.
var categories = []string{"appartamento", "casa", "villa"}

type Match struct {
	BuyerID       string                 `json:"buyerId"`
	BuyerName     string                 `json:"buyerName"`
	SellerID      string                 `json:"sellerId"`
	SellerName    string                 `json:"sellerName"`
	PropertyID    string                 `json:"propertyId"`
	Score         int                    `json:"score"`
	Reasons       []string               `json:"reasons"`
	OperationType property.OperationType `json:"operationType"`
}

// Result holds the accepted matches bucketed by operation, best first.
type Result struct {
	Sales   []Match `json:"sales"`
	Rentals []Match `json:"rentals"`
}

// Calculate scores every (buyer, seller, property) triple. Ties keep the
// input order, so identical inputs always give identical output.
func Calculate(buyers []buyer.Buyer, sellers []seller.Seller) Result {
	res := Result{Sales: []Match{}, Rentals: []Match{}}
	for _, b := range buyers {
		for _, s := range sellers {
			for _, p := range s.Properties {
				m, ok := Score(b, s, p)
				if !ok || m.Score < MinScore {
					continue
				}
				if m.OperationType == property.OperationRent {
					res.Rentals = append(res.Rentals, m)
				} else {
					res.Sales = append(res.Sales, m)
				}
			}
		}
	}
	sortByScore(res.Sales)
	sortByScore(res.Rentals)
	return res
}

func sortByScore(ms []Match) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Score > ms[j].Score })
}

// Score rates one property for one buyer. ok is false when the buyer wants a
// different operation than the property offers; the threshold is not applied.
func Score(b buyer.Buyer, s seller.Seller, p property.Property) (Match, bool) {
	op := p.OperationType
	if op == "" {
		op = property.OperationSale
	}
	switch b.Type {
	case buyer.RequestPurchase:
		if op != property.OperationSale {
			return Match{}, false
		}
	case buyer.RequestRental:
		if op != property.OperationRent {
			return Match{}, false
		}
	}

	score := 0
	reasons := make([]string, 0, 5)
	add := func(points int, reason string) {
		score += points
		reasons = append(reasons, reason)
	}

	if pts, reason := propertyTypeScore(b.PropertyType, p.PropertyType); pts > 0 {
		add(pts, reason)
	}
	if pts, reason := budgetScore(b.Budget, p.Price); pts > 0 {
		add(pts, reason)
	}
	if pts, reason := locationScore(b.Zone, p.Location); pts > 0 {
		add(pts, reason)
	}
	if n := featureOverlap(b.Features, p.Features); n > 0 {
		add(min(maxFeatureScore, n*pointsPerFeature), featureReason(n))
	}
	switch s.Status {
	case seller.StatusReadyToSell:
		add(10, "seller ready to sell")
	case seller.StatusInManagement:
		add(5, "seller in management")
	}

	return Match{
		BuyerID:       b.ID,
		BuyerName:     b.Name,
		SellerID:      s.ID,
		SellerName:    s.Name,
		PropertyID:    p.ID,
		Score:         min(MaxScore, score),
		Reasons:       reasons,
		OperationType: op,
	}, true
}

func propertyTypeScore(want, have string) (int, string) {
	want = strings.ToLower(strings.TrimSpace(want))
	have = strings.ToLower(strings.TrimSpace(have))
	if want == "" || have == "" {
		return 0, ""
	}
	if want == have {
		return 30, "property type matches"
	}
	for _, c := range categories {
		if strings.Contains(want, c) && strings.Contains(have, c) {
			return 20, "similar property type"
		}
	}
	return 0, ""
}

func budgetScore(budget, price string) (int, string) {
	b, ok := money.ParseAmount(budget)
	if !ok || b <= 0 {
		return 0, ""
	}
	p, ok := money.ParseAmount(price)
	if !ok {
		return 0, ""
	}
	diff := (b - p) / b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 0.1:
		return 25, "budget fully compatible"
	case diff <= 0.2:
		return 20, "budget compatible"
	case diff <= 0.3:
		return 10, "budget acceptable"
	}
	return 0, ""
}

func locationScore(zone, location string) (int, string) {
	zone = strings.ToLower(strings.TrimSpace(zone))
	location = strings.ToLower(strings.TrimSpace(location))
	if zone == "" || location == "" {
		return 0, ""
	}
	if strings.Contains(location, zone) || strings.Contains(zone, location) {
		return 20, "preferred area"
	}
	locWords := tokenize(location, 0)
	for _, w := range tokenize(zone, 3) {
		if overlaps(w, locWords) {
			return 10, "nearby area"
		}
	}
	return 0, ""
}

// featureOverlap counts buyer keywords contained in, or containing, a
// property keyword. Keywords shorter than three characters are ignored.
func featureOverlap(want, have string) int {
	haveWords := tokenize(strings.ToLower(have), 3)
	if len(haveWords) == 0 {
		return 0
	}
	n := 0
	for _, w := range tokenize(strings.ToLower(want), 3) {
		if overlaps(w, haveWords) {
			n++
		}
	}
	return n
}

func overlaps(word string, others []string) bool {
	for _, o := range others {
		if strings.Contains(o, word) || strings.Contains(word, o) {
			return true
		}
	}
	return false
}

// tokenize splits on whitespace and commas, dropping words shorter than minLen
// runes and empty fragments.
func tokenize(s string, minLen int) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minLen {
			out = append(out, f)
		}
	}
	return out
}

func featureReason(n int) string {
	if n == 1 {
		return "1 matching feature"
	}
	return fmt.Sprintf("%d matching features", n)
}
