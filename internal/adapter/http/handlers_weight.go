package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func (s *Server) handleWeightToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := s.profiles.Current(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	entry, err := s.weight.Today(ctx, p.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"today": domain.DayString(time.Now(), nil), "entry": entry})
}

func (s *Server) handleWeightLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var body struct {
		Weight float64 `json:"weight"`
		Note   *string `json:"note"`
	}
	if err := parseJSON(w, r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.profiles.Current(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	entry, err := s.weight.LogToday(ctx, p.ID, body.Weight, body.Note)
	if errors.Is(err, domain.ErrAlreadyLogged) {
		writeJSON(w, http.StatusConflict, errorBody{Code: "already_logged", Error: err.Error(), Entry: entry})
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (s *Server) handleWeightList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := s.profiles.Current(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items, err := s.weight.List(ctx, p.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if items == nil {
		items = []domain.WeightEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWeightEdit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var body struct {
		Weight float64 `json:"weight"`
		Note   *string `json:"note"`
		Date   *string `json:"date"`
	}
	if err := parseJSON(w, r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	upd := app.EntryUpdate{Weight: body.Weight, Note: body.Note}
	if body.Date != nil {
		d, err := parseDate(*body.Date)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		upd.Date = &d
	}

	p, err := s.profiles.Current(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	entry, err := s.weight.Edit(ctx, p.ID, id, upd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleWeightDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.profiles.Current(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.weight.Delete(ctx, p.ID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": id})
}

// parseDate accepts a bare calendar day or a full RFC 3339 timestamp.
func parseDate(v string) (time.Time, error) {
	if d, err := domain.ParseDay(v, nil); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD or RFC 3339"}
	}
	return t, nil
}
