package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jask/wedplan/internal/domain"
)

type createUserRequest struct {
	Name        string              `json:"name" validate:"required"`
	Email       string              `json:"email" validate:"required,email"`
	Phone       string              `json:"phone"`
	Role        domain.Role         `json:"role"`
	Preferences *domain.Preferences `json:"preferences"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Role == domain.RoleUnknown {
		req.Role = domain.RoleCustomer
	}
	u := domain.User{
		ID:          s.newID(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Role:        req.Role,
		Preferences: req.Preferences,
		CreatedAt:   domain.Timestamp{Time: s.now()},
	}
	if err := s.users.Create(r.Context(), u); err != nil {
		s.internalError(w, r, "create user", err)
		return
	}
	s.log.InfoContext(r.Context(), "user created", "user_id", u.ID)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context(), maxUsers)
	if err != nil {
		s.internalError(w, r, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.lookupUser(w, r, chi.URLParam(r, "userID"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// lookupUser writes 404 or 500 and reports false when the user cannot be
// loaded.
func (s *Server) lookupUser(w http.ResponseWriter, r *http.Request, id string) (domain.User, bool) {
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.internalError(w, r, "get user", err)
		return domain.User{}, false
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return domain.User{}, false
	}
	return *u, true
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.ErrorContext(r.Context(), op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, op+" failed")
}
