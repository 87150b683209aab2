package adapthttp

import (
	"net/http"

	"weighttrack/internal/domain"
)

const defaultChartDays = 90

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := s.profiles.UserID()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.dashboard.Get(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if d.Entries == nil {
		d.Entries = []domain.WeightEntry{}
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleMotivation(w http.ResponseWriter, r *http.Request) {
	userID, err := s.profiles.UserID()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	m, err := s.dashboard.Motivation(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"motivation": m})
}

func (s *Server) handleChartsDaily(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", defaultChartDays)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	userID, err := s.profiles.UserID()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	series, err := s.charts.Daily(r.Context(), userID, days)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}
