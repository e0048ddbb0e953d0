package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/jask/wedplan/internal/domain"
)

// ErrEmptyCompletion is returned when the model answers with no choices.
var ErrEmptyCompletion = errors.New("assistant: empty completion")

// OpenAIPlanner answers through the chat completions API.
type OpenAIPlanner struct {
	client  *openai.Client
	model   string
	persona Persona
	timeout time.Duration
	log     *slog.Logger
}

func NewOpenAIPlanner(client *openai.Client, model string, p Persona, logger *slog.Logger) *OpenAIPlanner {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIPlanner{
		client:  client,
		model:   model,
		persona: p,
		timeout: 45 * time.Second,
		log:     logger.With("component", "assistant", "provider", ProviderOpenAI),
	}
}

// Reply sends the persona, the recent history and the new message. Search
// capable models report WebSearchUsed.
func (p *OpenAIPlanner) Reply(ctx context.Context, req Request) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	history := req.History
	if n := p.persona.Style.HistoryTurns; n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: p.persona.SystemPrompt(req.Preferences),
	})
	for _, t := range history {
		role := openai.ChatMessageRoleUser
		if t.Role == domain.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message})

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.persona.Style.Temperature,
		MaxTokens:   p.persona.Style.MaxTokens,
		Messages:    messages,
		User:        req.UserID,
	})
	if err != nil {
		p.log.ErrorContext(ctx, "chat completion failed", slog.String("session_id", req.SessionID), slog.String("error", err.Error()))
		return Reply{}, err
	}
	if len(resp.Choices) == 0 {
		return Reply{}, ErrEmptyCompletion
	}
	p.log.DebugContext(ctx, "chat completion",
		slog.String("session_id", req.SessionID),
		slog.Int("total_tokens", resp.Usage.TotalTokens),
		slog.Duration("took", time.Since(start)))
	return Reply{
		Text:          strings.TrimSpace(resp.Choices[0].Message.Content),
		WebSearchUsed: strings.Contains(p.model, "search"),
	}, nil
}
