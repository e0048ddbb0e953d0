package assistant

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jask/wedplan/internal/domain"
)

//go:embed prompts/planner.yaml
var defaultPersona []byte

// Persona is the planner's system prompt and sampling style.
type Persona struct {
	System        string `yaml:"system"`
	ContextHeader string `yaml:"context_header"`
	EmptyContext  string `yaml:"empty_context"`
	Style         struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
		// HistoryTurns caps how many stored messages are replayed.
		HistoryTurns int `yaml:"history_turns"`
	} `yaml:"style"`
}

// LoadPersona reads a persona from path, or the built-in one when path is
// empty.
func LoadPersona(path string) (Persona, error) {
	raw := defaultPersona
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Persona{}, fmt.Errorf("read persona: %w", err)
		}
		raw = b
	}
	var p Persona
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Persona{}, fmt.Errorf("parse persona: %w", err)
	}
	if strings.TrimSpace(p.System) == "" {
		return Persona{}, fmt.Errorf("parse persona: empty system prompt")
	}
	if p.Style.Temperature <= 0 {
		p.Style.Temperature = 0.7
	}
	if p.Style.MaxTokens <= 0 {
		p.Style.MaxTokens = 600
	}
	if p.Style.HistoryTurns <= 0 {
		p.Style.HistoryTurns = 10
	}
	return p, nil
}

// SystemPrompt renders the system message for a user with prefs.
func (p Persona) SystemPrompt(prefs *domain.Preferences) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.System))
	b.WriteString("\n\n")
	b.WriteString(p.ContextHeader)
	b.WriteString(" ")
	b.WriteString(describe(prefs, p.EmptyContext))
	return b.String()
}

func describe(prefs *domain.Preferences, empty string) string {
	if prefs == nil || *prefs == (domain.Preferences{}) {
		return empty
	}
	var parts []string
	if prefs.Budget > 0 {
		parts = append(parts, fmt.Sprintf("budget %.0f", prefs.Budget))
	}
	if prefs.GuestCount > 0 {
		parts = append(parts, fmt.Sprintf("%d guests", prefs.GuestCount))
	}
	if prefs.Location != "" {
		parts = append(parts, "location "+prefs.Location)
	}
	if prefs.StylePreference != "" {
		parts = append(parts, "style "+prefs.StylePreference)
	}
	return strings.Join(parts, ", ")
}
