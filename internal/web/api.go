package web

import (
	"encoding/json"
	"net/http"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/schema"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// reportResponse is the body of GET /api/report.
type reportResponse struct {
	Source       string                      `json:"source"`
	Phase        string                      `json:"phase"`
	Error        string                      `json:"error,omitempty"`
	Health       string                      `json:"health"`
	Distribution []schema.StatusCount        `json:"distribution"`
	Report       *schema.TechnicalDebtReport `json:"report"`
}

// filesResponse is the body of GET /api/files.
type filesResponse struct {
	Shown     int                         `json:"shown"`
	Total     int                         `json:"total"`
	Sort      schema.SortField            `json:"sort"`
	Direction schema.SortDirection        `json:"direction"`
	Files     []schema.EnrichedFileResult `json:"files"`
}

var errNoReport = goerr.New("no report is loaded")

// currentReport writes a 503 and returns nil when nothing is loaded.
func (s *Server) currentReport(w http.ResponseWriter, r *http.Request) *schema.TechnicalDebtReport {
	report := s.app.Report()
	if report == nil {
		writeError(w, r, http.StatusServiceUnavailable, errNoReport)
	}
	return report
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	if !snap.HasReport() {
		writeError(w, r, http.StatusServiceUnavailable, errNoReport)
		return
	}
	writeJSON(w, r, http.StatusOK, reportResponse{
		Source:       snap.Source,
		Phase:        string(snap.Phase),
		Error:        snap.Error,
		Health:       schema.DebtRatioHealth(snap.Report.Overview.DebtRatio),
		Distribution: schema.StatusDistribution(snap.Report.Files),
		Report:       snap.Report,
	})
}

func (s *Server) handleAPIFiles(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseExplorerQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, goerr.Wrap(err, "invalid query"))
		return
	}
	report := s.currentReport(w, r)
	if report == nil {
		return
	}

	files := core.FilterAndSort(report.Files, q.Search, q.Status, q.Sort.Field, q.Sort.Direction)
	writeJSON(w, r, http.StatusOK, filesResponse{
		Shown:     len(files),
		Total:     len(report.Files),
		Sort:      q.Sort.Field,
		Direction: q.Sort.Direction,
		Files:     schema.EnrichFiles(files),
	})
}

func (s *Server) handleAPIFolders(w http.ResponseWriter, r *http.Request) {
	report := s.currentReport(w, r)
	if report == nil {
		return
	}
	writeJSON(w, r, http.StatusOK, schema.EnrichFolders(core.GroupByDirectory(report.Files)))
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "debtboard",
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes a JSON error body and logs the error with its goerr values.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := ctxlog.From(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "status", status, "error", err)
	} else {
		logger.Warn("Request rejected", "status", status, "error", err)
	}

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}
	writeJSON(w, r, status, map[string]string{"error": message})
}
