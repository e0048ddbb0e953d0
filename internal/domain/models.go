package domain

import (
	"strings"
	"time"
)

// Preferences is the planning context attached to a user.
type Preferences struct {
	Budget          float64 `json:"budget,omitempty"`
	Location        string  `json:"location,omitempty"`
	StylePreference string  `json:"style_preference,omitempty"`
	GuestCount      int     `json:"guest_count,omitempty"`
}

// User is the identity the client acts as.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Role        Role         `json:"role"`
	Preferences *Preferences `json:"preferences,omitempty"`
	CreatedAt   Timestamp    `json:"created_at"`
}

// PriceRange is a vendor's quoted range in whole currency units.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// VendorRecord is the normalized registration payload.
type VendorRecord struct {
	Name            string     `json:"name"`
	BusinessName    string     `json:"business_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Category        Category   `json:"category"`
	Services        []string   `json:"services"`
	PricingRange    PriceRange `json:"pricing_range"`
	Location        string     `json:"location"`
	Description     string     `json:"description"`
	PortfolioImages []string   `json:"portfolio_images"`
}

// Vendor is a catalog entry as served by the backend.
type Vendor struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	BusinessName    string     `json:"business_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Category        Category   `json:"category"`
	Services        []string   `json:"services"`
	PricingRange    PriceRange `json:"pricing_range"`
	Location        string     `json:"location"`
	Description     string     `json:"description"`
	PortfolioImages []string   `json:"portfolio_images"`
	Rating          float64    `json:"rating"`
	TotalReviews    int        `json:"total_reviews"`
	Availability    []string   `json:"availability"`
	Verified        bool       `json:"verified"`
	CreatedAt       Timestamp  `json:"created_at"`
}

// ChatRole identifies the author of a transcript entry.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one transcript entry. Entries are never mutated.
type ChatMessage struct {
	Role          ChatRole `json:"role"`
	Content       string   `json:"content"`
	WebSearchUsed bool     `json:"web_search_used,omitempty"`
}

// InquiryStatus tracks a vendor's handling of an inquiry.
type InquiryStatus string

const (
	InquiryPending InquiryStatus = "pending"
	InquiryReplied InquiryStatus = "replied"
	InquiryClosed  InquiryStatus = "closed"
)

// Inquiry is a message from a user to a vendor.
type Inquiry struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	VendorID  string        `json:"vendor_id"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt Timestamp     `json:"created_at"`
}

// Timestamp accepts RFC 3339 as well as zone-less ISO 8601 values, which
// some backends emit for UTC times.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}
