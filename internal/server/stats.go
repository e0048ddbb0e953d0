package server

import (
	"net/http"

	"github.com/jask/wedplan/internal/domain"
)

type statsResponse struct {
	TotalUsers       int      `json:"total_users"`
	TotalVendors     int      `json:"total_vendors"`
	TotalInquiries   int      `json:"total_inquiries"`
	VendorCategories []string `json:"vendor_categories"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		out statsResponse
		err error
	)
	if out.TotalUsers, err = s.users.Count(ctx); err != nil {
		s.internalError(w, r, "count users", err)
		return
	}
	if out.TotalVendors, err = s.vendors.Count(ctx); err != nil {
		s.internalError(w, r, "count vendors", err)
		return
	}
	if out.TotalInquiries, err = s.inquiries.Count(ctx); err != nil {
		s.internalError(w, r, "count inquiries", err)
		return
	}
	for _, c := range domain.Categories() {
		out.VendorCategories = append(out.VendorCategories, c.String())
	}
	writeJSON(w, http.StatusOK, out)
}
