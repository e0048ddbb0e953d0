package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jask/wedplan/internal/domain"
)

// BudgetFlex is the share of a budget a vendor's upper price must reach to
// still be considered a fit.
const BudgetFlex = 0.7

// VendorFilter narrows a vendor listing. Zero values do not filter.
type VendorFilter struct {
	Category domain.Category
	// Location matches case-insensitively anywhere in the vendor location.
	Location string
	// Budget keeps vendors with min <= Budget and max >= BudgetFlex*Budget.
	Budget float64
	Limit  int
}

// VendorRepo handles vendors.
type VendorRepo struct{ db *sql.DB }

func NewVendorRepo(db *sql.DB) *VendorRepo { return &VendorRepo{db: db} }

const vendorColumns = `id, name, business_name, email, phone, category, services, price_min, price_max,
 location, description, portfolio_images, rating, total_reviews, availability, verified, created_at`

func (r *VendorRepo) Create(ctx context.Context, v domain.Vendor) error {
	category, err := v.Category.Wire()
	if err != nil {
		return err
	}
	services, err := encodeJSON(nonNil(v.Services))
	if err != nil {
		return err
	}
	images, err := encodeJSON(nonNil(v.PortfolioImages))
	if err != nil {
		return err
	}
	availability, err := encodeJSON(nonNil(v.Availability))
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO vendors(`+vendorColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, v.ID, v.Name, v.BusinessName, v.Email, v.Phone, category, services,
		v.PricingRange.Min, v.PricingRange.Max, v.Location, v.Description, images,
		v.Rating, v.TotalReviews, availability, v.Verified, v.CreatedAt.Time)
	return err
}

// Get returns nil, nil when the vendor does not exist.
func (r *VendorRepo) Get(ctx context.Context, id string) (*domain.Vendor, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = ?`, id)
	v, err := scanVendor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns vendors matching f, best rated first.
func (r *VendorRepo) List(ctx context.Context, f VendorFilter) ([]domain.Vendor, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != domain.CategoryUnknown {
		category, err := f.Category.Wire()
		if err != nil {
			return nil, err
		}
		where = append(where, "category = ?")
		args = append(args, category)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, "location LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(loc)+"%")
	}
	if f.Budget > 0 {
		where = append(where, "price_min <= ? AND price_max >= ?")
		args = append(args, f.Budget, f.Budget*BudgetFlex)
	}
	q := `SELECT ` + vendorColumns + ` FROM vendors`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY rating DESC, created_at"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VendorRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vendors`).Scan(&n)
	return n, err
}

func scanVendor(s scanner) (domain.Vendor, error) {
	var (
		v                              domain.Vendor
		category                       string
		services, images, availability string
	)
	if err := s.Scan(&v.ID, &v.Name, &v.BusinessName, &v.Email, &v.Phone, &category, &services,
		&v.PricingRange.Min, &v.PricingRange.Max, &v.Location, &v.Description, &images,
		&v.Rating, &v.TotalReviews, &availability, &v.Verified, &v.CreatedAt.Time); err != nil {
		return domain.Vendor{}, err
	}
	c, err := domain.ParseCategory(category)
	if err != nil {
		return domain.Vendor{}, fmt.Errorf("vendor %s: %w", v.ID, err)
	}
	v.Category = c
	for _, col := range []struct {
		raw string
		dst *[]string
	}{{services, &v.Services}, {images, &v.PortfolioImages}, {availability, &v.Availability}} {
		if err := decodeJSON(col.raw, col.dst); err != nil {
			return domain.Vendor{}, fmt.Errorf("vendor %s: %w", v.ID, err)
		}
		*col.dst = nonNil(*col.dst)
	}
	return v, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
