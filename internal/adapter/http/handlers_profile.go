package adapthttp

import (
	"net/http"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Current(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handleProfileSetup(w http.ResponseWriter, r *http.Request) {
	var in app.ProfileInput
	if err := parseJSON(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	p, entry, err := s.profiles.Setup(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("profile created", "id", p.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"profile": p, "entry": entry})
}

func (s *Server) handleProfileReset(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.Reset(r.Context()); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleSessionBind(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID int64 `json:"id"`
	}
	if err := parseJSON(w, r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	if body.ID <= 0 {
		s.fail(w, r, &domain.ValidationError{Field: "id", Reason: "must be a positive integer"})
		return
	}
	p, err := s.profiles.Bind(r.Context(), body.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}
