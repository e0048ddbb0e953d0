package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PlanRepo handles wedding plans.
type PlanRepo struct{ db *sql.DB }

func NewPlanRepo(db *sql.DB) *PlanRepo { return &PlanRepo{db: db} }

func (r *PlanRepo) Create(ctx context.Context, p WeddingPlan) error {
	selected, err := encodeJSON(nonNil(p.SelectedVendors))
	if err != nil {
		return err
	}
	timeline, err := encodeJSON(p.Timeline)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO wedding_plans(id, user_id, budget, guest_count, wedding_date, location, style_preference, selected_vendors, timeline, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.Budget, p.GuestCount, p.WeddingDate, p.Location, p.StylePreference, selected, timeline, p.CreatedAt)
	return err
}

func (r *PlanRepo) ListByUser(ctx context.Context, userID string, limit int) ([]WeddingPlan, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, user_id, budget, guest_count, wedding_date, location, style_preference, selected_vendors, timeline, created_at
	FROM wedding_plans WHERE user_id = ? ORDER BY created_at, id LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []WeddingPlan{}
	for rows.Next() {
		var (
			p                  WeddingPlan
			selected, timeline string
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.Budget, &p.GuestCount, &p.WeddingDate, &p.Location, &p.StylePreference, &selected, &timeline, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := decodeJSON(selected, &p.SelectedVendors); err != nil {
			return nil, fmt.Errorf("plan %s: %w", p.ID, err)
		}
		if err := decodeJSON(timeline, &p.Timeline); err != nil {
			return nil, fmt.Errorf("plan %s: %w", p.ID, err)
		}
		p.SelectedVendors = nonNil(p.SelectedVendors)
		out = append(out, p)
	}
	return out, rows.Err()
}
