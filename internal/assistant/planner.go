// Package assistant produces planner replies for chat turns, either from
// an OpenAI-compatible model or from offline keyword heuristics.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jask/wedplan/internal/config"
	"github.com/jask/wedplan/internal/domain"
)

const (
	ProviderOffline = "offline"
	ProviderOpenAI  = "openai"
)

// MaxSuggestions caps the follow-up prompts returned with a reply.
const MaxSuggestions = 3

// Turn is one prior message replayed to the planner.
type Turn struct {
	Role    domain.ChatRole
	Content string
}

// Request is a single chat turn with the context the planner may use.
type Request struct {
	UserID      string
	SessionID   string
	Message     string
	Preferences *domain.Preferences
	History     []Turn
}

// Reply is the planner's answer to one turn.
type Reply struct {
	Text          string
	WebSearchUsed bool
}

// Planner answers chat turns.
type Planner interface {
	Reply(ctx context.Context, req Request) (Reply, error)
}

// New builds the planner selected by cfg.
func New(cfg config.AssistantConfig, logger *slog.Logger) (Planner, error) {
	persona, err := LoadPersona(cfg.PromptFile)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOffline:
		return NewOfflinePlanner(persona), nil
	case ProviderOpenAI:
		key := cfg.APIKey
		if key == "" && cfg.APIKeyEnv != "" {
			key = os.Getenv(cfg.APIKeyEnv)
		}
		if key == "" {
			return nil, fmt.Errorf("assistant: openai provider needs an API key (set %s)", cfg.APIKeyEnv)
		}
		return NewOpenAIPlanner(openai.NewClient(key), cfg.Model, persona, logger), nil
	default:
		return nil, fmt.Errorf("assistant: unknown provider %q", cfg.Provider)
	}
}

// Suggestions returns up to MaxSuggestions follow-up prompts for message.
func Suggestions(message string) []string {
	m := strings.ToLower(message)
	var out []string
	switch {
	case strings.Contains(m, "budget"):
		out = []string{
			"Show me vendors within my budget",
			"Help me allocate my wedding budget",
			"What can I get for my budget?",
		}
	case strings.Contains(m, "venue"):
		out = []string{
			"Show me venues in my area",
			"What's the average venue cost?",
			"Outdoor vs indoor venue options",
		}
	case strings.Contains(m, "photography"):
		out = []string{
			"Find photographers in my budget",
			"Traditional vs candid photography",
			"Pre-wedding shoot packages",
		}
	default:
		out = []string{
			"Create my wedding timeline",
			"Show me vendor recommendations",
			"Help with budget planning",
			"What should I book first?",
		}
	}
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}
