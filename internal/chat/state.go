// Package chat owns the assistant conversation: the ordered transcript, the
// in-flight guard and the exchange with the backend.
//
// State transitions are pure functions so the presentation layer and tests
// drive them identically. A turn has two phases: Submit appends the user
// message and marks the state busy (pending), then exactly one of Confirm
// (assistant reply) or Degrade (fallback reply) completes it.
package chat

import (
	"strings"

	"github.com/jask/wedplan/internal/domain"
)

// FallbackReply replaces the assistant's answer when a turn fails.
const FallbackReply = "Sorry, I encountered an error. Please try again."

// State is an immutable snapshot of the conversation. Transitions return a
// new State and never modify the receiver's transcript.
type State struct {
	Transcript  []domain.ChatMessage
	Busy        bool
	Pending     uint64
	LastSeq     uint64
	Suggestions []string
}

// Identity is who a turn is sent as.
type Identity struct {
	UserID    string
	SessionID string
}

// Request is the outgoing half of a turn.
type Request struct {
	Seq       uint64
	UserID    string
	Message   string
	SessionID string
}

// Reply is the backend's answer to a Request.
type Reply struct {
	Text          string
	SessionID     string
	WebSearchUsed bool
	Suggestions   []string
}

// Submit starts a turn. It is a no-op (ok == false) when the trimmed draft
// is empty, no user exists, or a turn is already in flight.
func Submit(s State, draft string, id Identity) (next State, req Request, ok bool) {
	text := strings.TrimSpace(draft)
	if text == "" || id.UserID == "" || s.Busy {
		return s, Request{}, false
	}
	seq := s.LastSeq + 1
	next = s
	next.Transcript = appendMessage(s.Transcript, domain.ChatMessage{Role: domain.ChatRoleUser, Content: text})
	next.Busy = true
	next.Pending = seq
	next.LastSeq = seq
	return next, Request{Seq: seq, UserID: id.UserID, Message: text, SessionID: id.SessionID}, true
}

// Confirm completes the pending turn with the assistant's reply. A reply to
// any request other than the pending one is discarded.
func Confirm(s State, req Request, r Reply) (State, bool) {
	if !s.Busy || req.Seq != s.Pending {
		return s, false
	}
	next := s
	next.Transcript = appendMessage(s.Transcript, domain.ChatMessage{
		Role:          domain.ChatRoleAssistant,
		Content:       r.Text,
		WebSearchUsed: r.WebSearchUsed,
	})
	next.Busy = false
	next.Pending = 0
	next.Suggestions = append([]string(nil), r.Suggestions...)
	return next, true
}

// Degrade completes the pending turn with FallbackReply.
func Degrade(s State, req Request) (State, bool) {
	if !s.Busy || req.Seq != s.Pending {
		return s, false
	}
	next := s
	next.Transcript = appendMessage(s.Transcript, domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: FallbackReply})
	next.Busy = false
	next.Pending = 0
	next.Suggestions = nil
	return next, true
}

func appendMessage(list []domain.ChatMessage, m domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(list), len(list)+1)
	copy(out, list)
	return append(out, m)
}

func (s State) clone() State {
	c := s
	c.Transcript = append([]domain.ChatMessage(nil), s.Transcript...)
	c.Suggestions = append([]string(nil), s.Suggestions...)
	return c
}
