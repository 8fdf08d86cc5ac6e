// Package catalog holds the pure filtering and pagination logic shared by
// the public storefront and the admin table. No I/O.
package catalog

import (
	"sort"
	"strings"

	"tienda/internal/domain"
)

// Page sizes for the two views.
const (
	PublicPageSize = 12
	AdminPageSize  = 10
)

// Filters are conjunctive; zero values mean "no restriction". Delivered
// and Paid are tri-state: nil ignores the flag.
type Filters struct {
	StatusID  string
	Delivered *bool
	Paid      *bool
	Query     string
}

// Match reports whether a product satisfies every active predicate.
func (f Filters) Match(p domain.Product) bool {
	if f.StatusID != "" && p.StatusID != f.StatusID {
		return false
	}
	if f.Delivered != nil && p.Delivered != *f.Delivered {
		return false
	}
	if f.Paid != nil && p.Paid != *f.Paid {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(p.Title + " " + p.Description + " " + p.Condition)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return true
}

// statusRank orders the list: available first, then pending, sold, and
// anything unranked last.
func statusRank(name string) int {
	switch name {
	case domain.StatusAvailable:
		return 0
	case domain.StatusPending:
		return 1
	case domain.StatusSold:
		return 2
	}
	return 3
}

// Apply filters then orders the list. statusName maps a status id to its
// internal name for ranking; ties keep the input order (stable).
func Apply(products []domain.Product, f Filters, statusName func(id string) string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return statusRank(statusName(out[i].StatusID)) < statusRank(statusName(out[j].StatusID))
	})
	return out
}
