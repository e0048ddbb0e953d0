package repository

import (
	"encoding/json"
	"time"

	"github.com/jask/wedplan/internal/domain"
)

// ChatSession is a stored conversation between one user and the planner.
type ChatSession struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	SessionID string              `json:"session_id"`
	Messages  []ChatMessage       `json:"messages"`
	Context   *domain.Preferences `json:"context"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ChatMessage is one stored transcript entry.
type ChatMessage struct {
	Role          domain.ChatRole `json:"role"`
	Content       string          `json:"content"`
	WebSearchUsed bool            `json:"web_search_used,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

// WeddingPlan is a user's plan with its generated timeline.
type WeddingPlan struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Budget          float64             `json:"budget"`
	GuestCount      int                 `json:"guest_count"`
	WeddingDate     time.Time           `json:"wedding_date"`
	Location        string              `json:"location"`
	StylePreference string              `json:"style_preference"`
	SelectedVendors []string            `json:"selected_vendors"`
	Timeline        map[string][]string `json:"timeline"`
	CreatedAt       time.Time           `json:"created_at"`
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSON(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}
