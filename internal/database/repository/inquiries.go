package repository

import (
	"context"
	"database/sql"

	"github.com/jask/wedplan/internal/domain"
)

// InquiryRepo handles inquiries.
type InquiryRepo struct{ db *sql.DB }

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

func (r *InquiryRepo) Create(ctx context.Context, in domain.Inquiry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO inquiries(id, user_id, vendor_id, message, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`, in.ID, in.UserID, in.VendorID, in.Message, string(in.Status), in.CreatedAt.Time)
	return err
}

func (r *InquiryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Inquiry, error) {
	return r.list(ctx, `SELECT id, user_id, vendor_id, message, status, created_at FROM inquiries WHERE user_id = ? ORDER BY created_at, id LIMIT ?`, userID, limit)
}

func (r *InquiryRepo) ListByVendor(ctx context.Context, vendorID string, limit int) ([]domain.Inquiry, error) {
	return r.list(ctx, `SELECT id, user_id, vendor_id, message, status, created_at FROM inquiries WHERE vendor_id = ? ORDER BY created_at, id LIMIT ?`, vendorID, limit)
}

func (r *InquiryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&n)
	return n, err
}

func (r *InquiryRepo) list(ctx context.Context, q string, args ...any) ([]domain.Inquiry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Inquiry{}
	for rows.Next() {
		var (
			in     domain.Inquiry
			status string
		)
		if err := rows.Scan(&in.ID, &in.UserID, &in.VendorID, &in.Message, &status, &in.CreatedAt.Time); err != nil {
			return nil, err
		}
		in.Status = domain.InquiryStatus(status)
		out = append(out, in)
	}
	return out, rows.Err()
}
