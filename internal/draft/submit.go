package draft

import (
	"context"
	"log/slog"

	"github.com/jask/wedplan/internal/domain"
)

const (
	NoticeRegistered  = "Vendor added successfully!"
	NoticeRegisterErr = "Error adding vendor. Please try again."
)

// Registrar creates vendors on the backend.
type Registrar interface {
	RegisterVendor(ctx context.Context, rec domain.VendorRecord) (domain.Vendor, error)
}

// Outcome is the one-shot result of a submission.
type Outcome struct {
	OK     bool
	Notice string
	Vendor domain.Vendor
	Err    error
}

// Submit finalizes d and sends it. On success the returned draft is a fresh
// one; on failure d is returned unchanged so the user can retry.
func Submit(ctx context.Context, r Registrar, n Normalizer, d Draft, logger *slog.Logger) (Draft, Outcome) {
	rec, err := n.Finalize(d)
	if err != nil {
		logger.WarnContext(ctx, "vendor draft rejected", slog.String("error", err.Error()))
		return d, Outcome{Notice: NoticeRegisterErr, Err: err}
	}
	v, err := r.RegisterVendor(ctx, rec)
	if err != nil {
		logger.ErrorContext(ctx, "register vendor failed", slog.String("business_name", rec.BusinessName), slog.String("error", err.Error()))
		return d, Outcome{Notice: NoticeRegisterErr, Err: err}
	}
	logger.InfoContext(ctx, "vendor registered", slog.String("vendor_id", v.ID))
	return Reset(d), Outcome{OK: true, Notice: NoticeRegistered, Vendor: v}
}
