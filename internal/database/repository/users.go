package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/wedplan/internal/domain"
)

// UserRepo handles users.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	role, err := u.Role.Wire()
	if err != nil {
		return err
	}
	var prefs sql.NullString
	if u.Preferences != nil {
		raw, err := encodeJSON(u.Preferences)
		if err != nil {
			return fmt.Errorf("encode preferences: %w", err)
		}
		prefs = sql.NullString{String: raw, Valid: true}
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO users(id, name, email, phone, role, preferences, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.Phone, role, prefs, u.CreatedAt.Time)
	return err
}

// Get returns nil, nil when the user does not exist.
func (r *UserRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, phone, role, preferences, created_at FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context, limit int) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, phone, role, preferences, created_at FROM users ORDER BY created_at, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) UpdatePreferences(ctx context.Context, id string, p domain.Preferences) error {
	raw, err := encodeJSON(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `UPDATE users SET preferences = ? WHERE id = ?`, raw, id)
	return err
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u     domain.User
		role  string
		prefs sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &prefs, &u.CreatedAt.Time); err != nil {
		return domain.User{}, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = parsed
	if prefs.Valid {
		u.Preferences = &domain.Preferences{}
		if err := decodeJSON(prefs.String, u.Preferences); err != nil {
			return domain.User{}, fmt.Errorf("decode preferences for %s: %w", u.ID, err)
		}
	}
	return u, nil
}
