package api

import (
	"context"
	"net/http"
	"time"

	"job-tracker-api/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HealthChecker is satisfied by *pgxpool.Pool and the redis client.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server exposes the dashboard, report, email summary and checklist use
// cases over HTTP.
type Server struct {
	dashboard  usecase.DashboardUseCase
	reports    usecase.ReportUseCase
	emails     usecase.EmailSummaryUseCase
	checklists usecase.ChecklistUseCase
	auth       *AuthManager
	timeout    time.Duration
	checks     map[string]HealthChecker
	log        *zerolog.Logger
}

func NewServer(
	dashboard usecase.DashboardUseCase,
	reports usecase.ReportUseCase,
	emails usecase.EmailSummaryUseCase,
	checklists usecase.ChecklistUseCase,
	auth *AuthManager,
	requestTimeout time.Duration,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "http").Logger()
	return &Server{
		dashboard:  dashboard,
		reports:    reports,
		emails:     emails,
		checklists: checklists,
		auth:       auth,
		timeout:    requestTimeout,
		checks:     map[string]HealthChecker{},
		log:        &l,
	}
}

// AddHealthCheck registers a dependency probed by GET /health.
func (s *Server) AddHealthCheck(name string, c HealthChecker) {
	s.checks[name] = c
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log), Timeout(s.timeout))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(s.auth, s.log))

		r.Get("/dashboard/stats", s.handleStats)
		r.Get("/dashboard/ai-insights", s.handleInsights)
		r.Get("/dashboard/upcoming-interviews", s.handleUpcoming)
		r.Get("/dashboard/interview-checklist/{stage}", s.handleChecklist)
		r.Get("/interview-checklist/{stage}", s.handleChecklist)

		r.Get("/reports", s.handleListReports)
		r.Post("/reports/generate/{type}", s.handleGenerateReport)
		r.Get("/reports/{id}", s.handleGetReport)
		r.Delete("/reports/{id}", s.handleDeleteReport)

		r.Get("/email-summary/{type}", s.handleEmailSummary)
	})
	return r
}

// ListenAndServe blocks until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
