package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/domain/model"
	"job-tracker-api/internal/infra/logging"
	"job-tracker-api/internal/usecase"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{}
	code := http.StatusOK
	for name, c := range s.checks {
		if err := c.Ping(r.Context()); err != nil {
			l := logging.With(r.Context(), s.log)
			l.Warn().Err(err).Str("dependency", name).Msg("health check failed")
			status[name] = "down"
			code = http.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}
	writeJSON(w, code, map[string]any{"status": http.StatusText(code), "checks": status})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.dashboard.Stats(r.Context(), logging.UserID(r.Context()))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	res, err := s.dashboard.Insights(r.Context(), logging.UserID(r.Context()))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	items, err := s.dashboard.UpcomingInterviews(r.Context(), logging.UserID(r.Context()))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	cl, err := s.checklists.Get(r.Context(), chi.URLParam(r, "stage"), r.URL.Query().Get("company"))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, cl)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	page, err := intQuery(r, "page", 1)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	limit, err := intQuery(r, "limit", usecase.DefaultReportPageSize)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	items, err := s.reports.List(r.Context(), logging.UserID(r.Context()), page, limit)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	format, err := usecase.ParseReportFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	rep, err := s.reports.Get(r.Context(), logging.UserID(r.Context()), chi.URLParam(r, "id"), format)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.reports.Delete(r.Context(), logging.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Report deleted"})
}

type generateResponse struct {
	Message  string `json:"message"`
	ReportID string `json:"report_id"`
	Title    string `json:"title"`
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	typ, err := model.ParseReportType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	rep, err := s.reports.Generate(r.Context(), logging.UserID(r.Context()), typ)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{
		Message:  fmt.Sprintf("%s report generated", titleWord(string(typ))),
		ReportID: rep.ID,
		Title:    rep.Title,
	})
}

func (s *Server) handleEmailSummary(w http.ResponseWriter, r *http.Request) {
	typ, err := model.ParseReportType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	email, err := s.emails.Preview(r.Context(), logging.UserID(r.Context()), typ)
	if err != nil {
		writeError(w, r, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, email)
}

func intQuery(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidArgument, key)
	}
	return n, nil
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
