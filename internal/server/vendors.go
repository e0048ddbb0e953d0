package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jask/wedplan/internal/database/repository"
	"github.com/jask/wedplan/internal/domain"
)

type createVendorRequest struct {
	Name            string             `json:"name" validate:"required"`
	BusinessName    string             `json:"business_name" validate:"required"`
	Email           string             `json:"email" validate:"required,email"`
	Phone           string             `json:"phone" validate:"required"`
	Category        domain.Category    `json:"category" validate:"required"`
	Services        []string           `json:"services" validate:"required"`
	PricingRange    *domain.PriceRange `json:"pricing_range" validate:"required"`
	Location        string             `json:"location" validate:"required"`
	Description     string             `json:"description" validate:"required"`
	PortfolioImages []string           `json:"portfolio_images"`
}

func (s *Server) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if !s.decode(w, r, &req) {
		return
	}
	v := domain.Vendor{
		ID:              s.newID(),
		Name:            req.Name,
		BusinessName:    req.BusinessName,
		Email:           req.Email,
		Phone:           req.Phone,
		Category:        req.Category,
		Services:        req.Services,
		PricingRange:    *req.PricingRange,
		Location:        req.Location,
		Description:     req.Description,
		PortfolioImages: orEmpty(req.PortfolioImages),
		Availability:    []string{},
		CreatedAt:       domain.Timestamp{Time: s.now()},
	}
	if err := s.vendors.Create(r.Context(), v); err != nil {
		s.internalError(w, r, "create vendor", err)
		return
	}
	s.log.InfoContext(r.Context(), "vendor created", "vendor_id", v.ID, "category", v.Category.String())
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleListVendors(w http.ResponseWriter, r *http.Request) {
	f := repository.VendorFilter{
		Location: r.URL.Query().Get("location"),
		Limit:    maxVendors,
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		c, err := domain.ParseCategory(raw)
		if err != nil {
			// no vendor can carry an unknown category
			writeJSON(w, http.StatusOK, []domain.Vendor{})
			return
		}
		f.Category = c
	}
	vendors, err := s.vendors.List(r.Context(), f)
	if err != nil {
		s.internalError(w, r, "list vendors", err)
		return
	}
	writeJSON(w, http.StatusOK, vendors)
}

func (s *Server) handleGetVendor(w http.ResponseWriter, r *http.Request) {
	v, err := s.vendors.Get(r.Context(), chi.URLParam(r, "vendorID"))
	if err != nil {
		s.internalError(w, r, "get vendor", err)
		return
	}
	if v == nil {
		writeError(w, http.StatusNotFound, "Vendor not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// recommendationsResponse lists vendors fitting a user's preferences.
type recommendationsResponse struct {
	Recommendations []domain.Vendor `json:"recommendations"`
	TotalCount      int             `json:"total_count"`
	Category        string          `json:"category"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	u, ok := s.lookupUser(w, r, chi.URLParam(r, "userID"))
	if !ok {
		return
	}
	f := repository.VendorFilter{Limit: maxRecommendations}
	if p := u.Preferences; p != nil {
		f.Location = p.Location
		f.Budget = p.Budget
	}
	label := "all"
	if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
		label = raw
		c, err := domain.ParseCategory(raw)
		if err != nil {
			writeJSON(w, http.StatusOK, recommendationsResponse{Recommendations: []domain.Vendor{}, Category: label})
			return
		}
		f.Category = c
	}
	vendors, err := s.vendors.List(r.Context(), f)
	if err != nil {
		s.internalError(w, r, "recommend vendors", err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{
		Recommendations: vendors,
		TotalCount:      len(vendors),
		Category:        label,
	})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
