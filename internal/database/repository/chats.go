package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jask/wedplan/internal/domain"
)

// ChatRepo handles chat sessions and their messages.
type ChatRepo struct{ db *sql.DB }

func NewChatRepo(db *sql.DB) *ChatRepo { return &ChatRepo{db: db} }

// Ensure returns the session (userID, sessionID), creating it with id and
// prefs as its context when it does not exist. Messages are not loaded.
func (r *ChatRepo) Ensure(ctx context.Context, id, userID, sessionID string, prefs *domain.Preferences, now time.Time) (ChatSession, error) {
	var rawContext sql.NullString
	if prefs != nil {
		raw, err := encodeJSON(prefs)
		if err != nil {
			return ChatSession{}, fmt.Errorf("encode chat context: %w", err)
		}
		rawContext = sql.NullString{String: raw, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO chat_sessions(id, user_id, session_id, context, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id, session_id) DO NOTHING;
	`, id, userID, sessionID, rawContext, now, now)
	if err != nil {
		return ChatSession{}, err
	}
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, session_id, context, created_at, updated_at FROM chat_sessions WHERE user_id = ? AND session_id = ?`, userID, sessionID)
	return scanChatSession(row)
}

// History returns the messages of a session in the order they were stored.
func (r *ChatRepo) History(ctx context.Context, chatSessionID string) ([]ChatMessage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, content, web_search_used, created_at FROM chat_messages WHERE chat_session_id = ? ORDER BY id`, chatSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ChatMessage{}
	for rows.Next() {
		var (
			m    ChatMessage
			role string
		)
		if err := rows.Scan(&role, &m.Content, &m.WebSearchUsed, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Role = domain.ChatRole(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

// AppendTurn stores msgs and bumps the session's updated_at in one
// transaction.
func (r *ChatRepo) AppendTurn(ctx context.Context, chatSessionID string, msgs []ChatMessage, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		ts := m.Timestamp
		if ts.IsZero() {
			ts = now
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO chat_messages(chat_session_id, role, content, web_search_used, created_at)
		VALUES (?, ?, ?, ?, ?)
		`, chatSessionID, string(m.Role), m.Content, m.WebSearchUsed, ts); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, now, chatSessionID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Get returns the session with its messages, or nil, nil when missing.
func (r *ChatRepo) Get(ctx context.Context, userID, sessionID string) (*ChatSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, session_id, context, created_at, updated_at FROM chat_sessions WHERE user_id = ? AND session_id = ?`, userID, sessionID)
	s, err := scanChatSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if s.Messages, err = r.History(ctx, s.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByUser returns the user's most recently updated sessions first.
func (r *ChatRepo) ListByUser(ctx context.Context, userID string, limit int) ([]ChatSession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, user_id, session_id, context, created_at, updated_at FROM chat_sessions WHERE user_id = ? ORDER BY updated_at DESC, created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	var out []ChatSession
	for rows.Next() {
		s, err := scanChatSession(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// sqlite allows one open connection; messages are loaded after the
	// session cursor is closed.
	for i := range out {
		if out[i].Messages, err = r.History(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	if out == nil {
		out = []ChatSession{}
	}
	return out, nil
}

func scanChatSession(s scanner) (ChatSession, error) {
	var (
		cs         ChatSession
		rawContext sql.NullString
	)
	if err := s.Scan(&cs.ID, &cs.UserID, &cs.SessionID, &rawContext, &cs.CreatedAt, &cs.UpdatedAt); err != nil {
		return ChatSession{}, err
	}
	if rawContext.Valid {
		cs.Context = &domain.Preferences{}
		if err := decodeJSON(rawContext.String, cs.Context); err != nil {
			return ChatSession{}, fmt.Errorf("decode chat context: %w", err)
		}
	}
	cs.Messages = []ChatMessage{}
	return cs, nil
}
