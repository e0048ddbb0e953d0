// Package draft manages the vendor registration form: a client-local draft
// that is edited field by field and projected into a VendorRecord on
// submit. Every transition returns a new Draft.
package draft

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/wedplan/internal/domain"
)

var (
	// ErrUnknownField is returned by UpdateField for a field outside the form.
	ErrUnknownField = errors.New("unknown draft field")
	// ErrNoServices is returned by a strict Normalizer when every service
	// row is blank.
	ErrNoServices = errors.New("at least one service is required")
)

// Field names an editable scalar of the form.
type Field string

const (
	FieldName         Field = "name"
	FieldBusinessName Field = "business_name"
	FieldEmail        Field = "email"
	FieldPhone        Field = "phone"
	FieldCategory     Field = "category"
	FieldLocation     Field = "location"
	FieldDescription  Field = "description"
	FieldPriceMin     Field = "price_min"
	FieldPriceMax     Field = "price_max"
)

// Fields lists the scalar fields in form order.
func Fields() []Field {
	return []Field{
		FieldName, FieldBusinessName, FieldEmail, FieldPhone, FieldCategory,
		FieldLocation, FieldDescription, FieldPriceMin, FieldPriceMax,
	}
}

// Draft is the raw form. Price fields hold unparsed input and Services may
// contain blank rows.
type Draft struct {
	Name            string
	BusinessName    string
	Email           string
	Phone           string
	Category        domain.Category
	Services        []string
	PriceMin        string
	PriceMax        string
	Location        string
	Description     string
	PortfolioImages []string
}

// New returns an empty draft with a single blank service row.
func New() Draft {
	return Draft{
		Category: domain.CategoryPhotography,
		Services: []string{""},
	}
}

// Reset discards d and returns a fresh draft.
func Reset(Draft) Draft { return New() }

// AddService appends a blank service row.
func AddService(d Draft) Draft {
	d.Services = append(cloneStrings(d.Services), "")
	return d
}

// UpdateService replaces row i. An out of range index returns d unchanged.
func UpdateService(d Draft, i int, text string) Draft {
	if i < 0 || i >= len(d.Services) {
		return d
	}
	d.Services = cloneStrings(d.Services)
	d.Services[i] = text
	return d
}

// RemoveService deletes row i. An out of range index returns d unchanged.
func RemoveService(d Draft, i int) Draft {
	if i < 0 || i >= len(d.Services) {
		return d
	}
	out := make([]string, 0, len(d.Services)-1)
	out = append(out, d.Services[:i]...)
	d.Services = append(out, d.Services[i+1:]...)
	return d
}

// UpdateField sets a scalar field. The category value must be one of the
// enumerated categories.
func UpdateField(d Draft, f Field, value string) (Draft, error) {
	switch f {
	case FieldName:
		d.Name = value
	case FieldBusinessName:
		d.BusinessName = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldCategory:
		c, err := domain.ParseCategory(value)
		if err != nil {
			return d, err
		}
		d.Category = c
	case FieldLocation:
		d.Location = value
	case FieldDescription:
		d.Description = value
	case FieldPriceMin:
		d.PriceMin = value
	case FieldPriceMax:
		d.PriceMax = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return d, nil
}

// Value returns the current text of a scalar field.
func (d Draft) Value(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldBusinessName:
		return d.BusinessName
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldCategory:
		return d.Category.String()
	case FieldLocation:
		return d.Location
	case FieldDescription:
		return d.Description
	case FieldPriceMin:
		return d.PriceMin
	case FieldPriceMax:
		return d.PriceMax
	}
	return ""
}

// Normalizer projects drafts into submission records.
type Normalizer struct {
	// RequireServices rejects drafts whose services are all blank. When
	// false an empty service list is forwarded and left to field-level
	// validation.
	RequireServices bool
}

// Finalize drops blank service rows and parses the price range. Prices
// that are missing or not integers become 0; min and max are not compared.
// d is not modified.
func (n Normalizer) Finalize(d Draft) (domain.VendorRecord, error) {
	services := make([]string, 0, len(d.Services))
	for _, s := range d.Services {
		if strings.TrimSpace(s) == "" {
			continue
		}
		services = append(services, s)
	}
	if n.RequireServices && len(services) == 0 {
		return domain.VendorRecord{}, ErrNoServices
	}
	images := cloneStrings(d.PortfolioImages)
	if images == nil {
		images = []string{}
	}
	return domain.VendorRecord{
		Name:            d.Name,
		BusinessName:    d.BusinessName,
		Email:           d.Email,
		Phone:           d.Phone,
		Category:        d.Category,
		Services:        services,
		PricingRange:    domain.PriceRange{Min: parsePrice(d.PriceMin), Max: parsePrice(d.PriceMax)},
		Location:        d.Location,
		Description:     d.Description,
		PortfolioImages: images,
	}, nil
}

// parsePrice reads a leading base-10 integer the way a browser's parseInt
// does: surrounding space is ignored and trailing junk after the digits is
// dropped ("500abc" is 500). Anything without leading digits is 0.
func parsePrice(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
