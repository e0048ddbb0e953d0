package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jask/wedplan/internal/database/repository"
	"github.com/jask/wedplan/internal/domain"
)

type createPlanRequest struct {
	UserID          string    `json:"user_id" validate:"required"`
	Budget          float64   `json:"budget" validate:"gt=0"`
	GuestCount      int       `json:"guest_count" validate:"gt=0"`
	WeddingDate     time.Time `json:"wedding_date" validate:"required"`
	Location        string    `json:"location" validate:"required"`
	StylePreference string    `json:"style_preference" validate:"required"`
}

// planningTimeline is the checklist attached to every new plan.
func planningTimeline() map[string][]string {
	return map[string][]string{
		"12_months_before": {"Book venue", "Set budget", "Create guest list"},
		"8_months_before":  {"Book photographer", "Book caterer", "Send save the dates"},
		"6_months_before":  {"Book decorator", "Plan honeymoon", "Buy wedding outfits"},
		"3_months_before":  {"Send invitations", "Final guest count", "Menu tasting"},
		"1_month_before":   {"Final fittings", "Rehearsal", "Confirm all vendors"},
		"1_week_before":    {"Pack for honeymoon", "Final payments", "Relax and enjoy!"},
	}
}

// handleCreatePlan stores a plan and makes its figures the user's
// preferences, which drive recommendations and the chat context.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req createPlanRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, ok := s.lookupUser(w, r, req.UserID); !ok {
		return
	}
	p := repository.WeddingPlan{
		ID:              s.newID(),
		UserID:          req.UserID,
		Budget:          req.Budget,
		GuestCount:      req.GuestCount,
		WeddingDate:     req.WeddingDate.UTC(),
		Location:        req.Location,
		StylePreference: req.StylePreference,
		SelectedVendors: []string{},
		Timeline:        planningTimeline(),
		CreatedAt:       s.now(),
	}
	ctx := r.Context()
	if err := s.plans.Create(ctx, p); err != nil {
		s.internalError(w, r, "create wedding plan", err)
		return
	}
	prefs := domain.Preferences{
		Budget:          req.Budget,
		Location:        req.Location,
		StylePreference: req.StylePreference,
		GuestCount:      req.GuestCount,
	}
	if err := s.users.UpdatePreferences(ctx, req.UserID, prefs); err != nil {
		s.internalError(w, r, "update preferences", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.ListByUser(r.Context(), chi.URLParam(r, "userID"), maxPlans)
	if err != nil {
		s.internalError(w, r, "list wedding plans", err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}
