package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jask/wedplan/internal/domain"
)

type createInquiryRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	VendorID string `json:"vendor_id" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

func (s *Server) handleCreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req createInquiryRequest
	if !s.decode(w, r, &req) {
		return
	}
	in := domain.Inquiry{
		ID:        s.newID(),
		UserID:    req.UserID,
		VendorID:  req.VendorID,
		Message:   req.Message,
		Status:    domain.InquiryPending,
		CreatedAt: domain.Timestamp{Time: s.now()},
	}
	if err := s.inquiries.Create(r.Context(), in); err != nil {
		s.internalError(w, r, "create inquiry", err)
		return
	}
	s.log.InfoContext(r.Context(), "inquiry created", "inquiry_id", in.ID, "vendor_id", in.VendorID)
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleUserInquiries(w http.ResponseWriter, r *http.Request) {
	list, err := s.inquiries.ListByUser(r.Context(), chi.URLParam(r, "userID"), maxInquiries)
	if err != nil {
		s.internalError(w, r, "list user inquiries", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleVendorInquiries(w http.ResponseWriter, r *http.Request) {
	list, err := s.inquiries.ListByVendor(r.Context(), chi.URLParam(r, "vendorID"), maxInquiries)
	if err != nil {
		s.internalError(w, r, "list vendor inquiries", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
