package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jask/wedplan/internal/api"
	"github.com/jask/wedplan/internal/session"
)

// Sender delivers one chat turn to the backend.
type Sender interface {
	SendChat(ctx context.Context, req api.ChatRequest) (api.ChatResponse, error)
}

// Orchestrator serializes turns against the backend and keeps the
// conversation State. It is safe for use from bubbletea command goroutines.
type Orchestrator struct {
	mu      sync.Mutex
	state   State
	sender  Sender
	session *session.Store
	timeout time.Duration
	log     *slog.Logger
}

// NewOrchestrator creates an Orchestrator. timeout bounds each turn; zero
// means the caller's context is the only bound.
func NewOrchestrator(sender Sender, store *session.Store, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		sender:  sender,
		session: store,
		timeout: timeout,
		log:     logger.With("component", "chat"),
	}
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// Begin applies Submit against the current user and session id.
func (o *Orchestrator) Begin(draft string) (Request, bool) {
	id := Identity{SessionID: o.session.SessionID()}
	if u, ok := o.session.User(); ok {
		id.UserID = u.ID
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	next, req, ok := Submit(o.state, draft, id)
	if !ok {
		return Request{}, false
	}
	o.state = next
	return req, true
}

// Deliver performs the network half of req and completes the turn. It
// never returns an error: failures become the fallback reply.
func (o *Orchestrator) Deliver(ctx context.Context, req Request) State {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	resp, err := o.sender.SendChat(ctx, api.ChatRequest{
		UserID:    req.UserID,
		Message:   req.Message,
		SessionID: req.SessionID,
	})

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.log.ErrorContext(ctx, "chat send failed", slog.Uint64("seq", req.Seq), slog.String("error", err.Error()))
		if next, ok := Degrade(o.state, req); ok {
			o.state = next
		}
		return o.state.clone()
	}

	next, ok := Confirm(o.state, req, Reply{
		Text:          resp.Response,
		SessionID:     resp.SessionID,
		WebSearchUsed: resp.WebSearchUsed,
		Suggestions:   resp.Suggestions,
	})
	if !ok {
		o.log.Warn("dropping reply for superseded turn", slog.Uint64("seq", req.Seq))
		return o.state.clone()
	}
	o.state = next
	if req.SessionID == "" {
		o.session.AdoptSessionID(resp.SessionID)
	}
	return o.state.clone()
}

// Send runs a whole turn. A draft rejected by Submit leaves the state
// untouched and issues no request.
func (o *Orchestrator) Send(ctx context.Context, draft string) State {
	req, ok := o.Begin(draft)
	if !ok {
		return o.Snapshot()
	}
	return o.Deliver(ctx, req)
}
