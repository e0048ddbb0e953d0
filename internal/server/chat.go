package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jask/wedplan/internal/assistant"
	"github.com/jask/wedplan/internal/database/repository"
	"github.com/jask/wedplan/internal/domain"
)

type chatRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	Response      string   `json:"response"`
	SessionID     string   `json:"session_id"`
	Suggestions   []string `json:"suggestions"`
	WebSearchUsed bool     `json:"web_search_used"`
}

// handleChat answers one turn. A request without session_id starts a new
// session whose id is returned to the caller.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decode(w, r, &req) {
		return
	}
	ctx := r.Context()
	u, ok := s.lookupUser(w, r, req.UserID)
	if !ok {
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newID()
	}

	now := s.now()
	session, err := s.chats.Ensure(ctx, s.newID(), u.ID, sessionID, u.Preferences, now)
	if err != nil {
		s.internalError(w, r, "open chat session", err)
		return
	}
	stored, err := s.chats.History(ctx, session.ID)
	if err != nil {
		s.internalError(w, r, "load chat history", err)
		return
	}
	history := make([]assistant.Turn, 0, len(stored))
	for _, m := range stored {
		history = append(history, assistant.Turn{Role: m.Role, Content: m.Content})
	}

	reply, err := s.planner.Reply(ctx, assistant.Request{
		UserID:      u.ID,
		SessionID:   sessionID,
		Message:     req.Message,
		Preferences: u.Preferences,
		History:     history,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "planner reply failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "Chat service error: "+err.Error())
		return
	}

	turn := []repository.ChatMessage{
		{Role: domain.ChatRoleUser, Content: req.Message, Timestamp: now},
		{Role: domain.ChatRoleAssistant, Content: reply.Text, WebSearchUsed: reply.WebSearchUsed, Timestamp: s.now()},
	}
	if err := s.chats.AppendTurn(ctx, session.ID, turn, s.now()); err != nil {
		s.internalError(w, r, "store chat turn", err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:      reply.Text,
		SessionID:     sessionID,
		Suggestions:   assistant.Suggestions(req.Message),
		WebSearchUsed: reply.WebSearchUsed,
	})
}

func (s *Server) handleListChatSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.chats.ListByUser(r.Context(), chi.URLParam(r, "userID"), maxChatSessions)
	if err != nil {
		s.internalError(w, r, "list chat sessions", err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetChatSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.chats.Get(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.internalError(w, r, "get chat session", err)
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, session)
}
