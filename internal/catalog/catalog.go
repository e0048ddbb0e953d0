// Package catalog holds the vendor result set shown to the user.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/jask/wedplan/internal/api"
	"github.com/jask/wedplan/internal/domain"
)

// FilterAll selects every category.
const FilterAll = "all"

// Lister fetches vendors from the backend.
type Lister interface {
	ListVendors(ctx context.Context, category string) ([]domain.Vendor, error)
}

// Recommender fetches vendors matched to a user's preferences.
type Recommender interface {
	Recommend(ctx context.Context, userID, category string) (api.Recommendations, error)
}

// Ticket identifies one fetch. Only the most recently issued ticket may
// replace the result set.
type Ticket struct {
	ID     uint64
	Filter string
}

// Catalog is the client-side view of the vendor catalog.
type Catalog struct {
	mu       sync.Mutex
	issued   uint64
	selected string
	vendors  []domain.Vendor
	lister   Lister
	log      *slog.Logger
}

func New(lister Lister, logger *slog.Logger) *Catalog {
	return &Catalog{
		lister:   lister,
		selected: FilterAll,
		log:      logger.With("component", "catalog"),
	}
}

// Begin records filter as the current selection and issues a new ticket.
func (c *Catalog) Begin(filter string) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	c.selected = normalizeFilter(filter)
	return Ticket{ID: c.issued, Filter: c.selected}
}

// Resolve applies the outcome of the fetch for t. The result set is replaced
// only when t is the latest ticket and err is nil; it reports whether the
// result set changed.
func (c *Catalog) Resolve(t Ticket, vendors []domain.Vendor, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.ID != c.issued {
		c.log.Debug("discarding superseded catalog response", slog.Uint64("ticket", t.ID), slog.Uint64("latest", c.issued))
		return false
	}
	if err != nil {
		c.log.Error("catalog fetch failed", slog.String("filter", t.Filter), slog.String("error", err.Error()))
		return false
	}
	c.vendors = append([]domain.Vendor(nil), vendors...)
	return true
}

// Fetch performs the network half of t.
func (c *Catalog) Fetch(ctx context.Context, t Ticket) ([]domain.Vendor, error) {
	return c.lister.ListVendors(ctx, wireFilter(t.Filter))
}

// List fetches with filter and returns the result set in effect afterwards.
func (c *Catalog) List(ctx context.Context, filter string) []domain.Vendor {
	t := c.Begin(filter)
	vendors, err := c.Fetch(ctx, t)
	c.Resolve(t, vendors, err)
	return c.Vendors()
}

// Recommend replaces the result set with vendors ranked for userID, under
// the same fencing rule as List.
func (c *Catalog) Recommend(ctx context.Context, r Recommender, userID string) []domain.Vendor {
	c.mu.Lock()
	filter := c.selected
	c.mu.Unlock()
	t := c.Begin(filter)
	vendors, err := c.FetchRecommended(ctx, r, t, userID)
	c.Resolve(t, vendors, err)
	return c.Vendors()
}

// FetchRecommended is the network half of a recommendation fetch for t.
func (c *Catalog) FetchRecommended(ctx context.Context, r Recommender, t Ticket, userID string) ([]domain.Vendor, error) {
	rec, err := r.Recommend(ctx, userID, wireFilter(t.Filter))
	if err != nil {
		return nil, err
	}
	return rec.Recommendations, nil
}

// Vendors returns a copy of the current result set.
func (c *Catalog) Vendors() []domain.Vendor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Vendor(nil), c.vendors...)
}

// Selected returns the filter of the most recently issued fetch.
func (c *Catalog) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Filters returns FilterAll followed by every category wire string.
func Filters() []string {
	out := []string{FilterAll}
	for _, cat := range domain.Categories() {
		out = append(out, cat.String())
	}
	return out
}

// SuggestCategory returns the category closest to input by edit distance,
// for hinting only. ok is false when input is empty, already exact, or too
// far from every category.
func SuggestCategory(input string) (domain.Category, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" || in == FilterAll {
		return domain.CategoryUnknown, false
	}
	best, bestDist := domain.CategoryUnknown, -1
	for _, cat := range domain.Categories() {
		name := strings.ToLower(cat.String())
		if name == in {
			return domain.CategoryUnknown, false
		}
		d := levenshtein.ComputeDistance(in, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = cat, d
		}
	}
	if bestDist > maxSuggestDistance(len(in)) {
		return domain.CategoryUnknown, false
	}
	return best, true
}

func maxSuggestDistance(n int) int {
	if n <= 4 {
		return 1
	}
	return n / 3
}

func normalizeFilter(filter string) string {
	if strings.TrimSpace(filter) == "" {
		return FilterAll
	}
	return filter
}

// wireFilter maps the selection to the query value; FilterAll sends none.
func wireFilter(filter string) string {
	if filter == FilterAll {
		return ""
	}
	return filter
}
