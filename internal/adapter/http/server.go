package adapthttp

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"weighttrack/internal/app"
)

const requestTimeout = 30 * time.Second

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	profiles  *app.ProfileService
	weight    *app.WeightService
	dashboard *app.DashboardService
	charts    *app.ChartsService
	webDir    string
	log       *log.Logger
}

// New creates a Server wired to the given application services. A nil logger
// falls back to the package default.
func New(ps *app.ProfileService, ws *app.WeightService, ds *app.DashboardService, cs *app.ChartsService, webDir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		profiles:  ps,
		weight:    ws,
		dashboard: ds,
		charts:    cs,
		webDir:    webDir,
		log:       logger.WithPrefix("http"),
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(withNoCache)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Get("/profile", s.handleProfileGet)
		r.Post("/profile", s.handleProfileSetup)
		r.Delete("/profile", s.handleProfileReset)
		r.Post("/session", s.handleSessionBind)

		r.Route("/weight", func(r chi.Router) {
			r.Get("/today", s.handleWeightToday)
			r.Post("/today", s.handleWeightLog)
			r.Get("/entries", s.handleWeightList)
			r.Put("/entries/{id}", s.handleWeightEdit)
			r.Delete("/entries/{id}", s.handleWeightDelete)
		})

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/motivation", s.handleMotivation)
		r.Get("/charts/daily", s.handleChartsDaily)

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "not_found", "no such endpoint")
		})
	})

	r.Handle("/*", spaFromDisk(s.webDir))
	return r
}
