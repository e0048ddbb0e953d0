package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a value is outside the category set.
var ErrUnknownCategory = errors.New("unknown vendor category")

// Category is the closed set of vendor categories.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPhotography
	CategoryCatering
	CategoryVenue
	CategoryDecoration
	CategoryMusic
	CategoryTransportation
	CategoryMakeup
	CategoryInvitations
	CategoryJewelry
	CategoryClothing
)

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryPhotography,
		CategoryCatering,
		CategoryVenue,
		CategoryDecoration,
		CategoryMusic,
		CategoryTransportation,
		CategoryMakeup,
		CategoryInvitations,
		CategoryJewelry,
		CategoryClothing,
	}
}

// Wire returns the string the backend uses for c.
func (c Category) Wire() (string, error) {
	switch c {
	case CategoryPhotography:
		return "Photography", nil
	case CategoryCatering:
		return "Catering", nil
	case CategoryVenue:
		return "Venue", nil
	case CategoryDecoration:
		return "Decoration", nil
	case CategoryMusic:
		return "Music", nil
	case CategoryTransportation:
		return "Transportation", nil
	case CategoryMakeup:
		return "Makeup", nil
	case CategoryInvitations:
		return "Invitations", nil
	case CategoryJewelry:
		return "Jewelry", nil
	case CategoryClothing:
		return "Clothing", nil
	case CategoryUnknown:
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
}

func (c Category) String() string {
	s, err := c.Wire()
	if err != nil {
		return "unknown"
	}
	return s
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	_, err := c.Wire()
	return err == nil
}

// ParseCategory maps a wire string (case-insensitive) to a Category.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	s, err := c.Wire()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
