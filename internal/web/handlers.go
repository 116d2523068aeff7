package web

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/dashboard"
	"github.com/huangsam/debtboard/schema"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// uploadField is the multipart field that carries the report file.
const uploadField = "report"

// maxUploadBytes bounds the whole multipart body, leaving room for the form envelope.
const maxUploadBytes = core.MaxReportBytes + 1<<20

// errNotJSON is returned for uploads whose name does not end in .json.
var errNotJSON = errors.New("report file must have a .json extension")

// uploadResult is the JSON answer to an upload from a script.
type uploadResult struct {
	Applied bool   `json:"applied"`
	Source  string `json:"source"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	if snap.View == dashboard.ViewDashboard {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderPage(w, r, http.StatusOK, pageLanding, messagePage{})
}

func (s *Server) handleEnter(w http.ResponseWriter, r *http.Request) {
	if s.app.Enter() && s.cfg.UsesSampleReport() {
		// The simulated analysis starts on the first visit to the dashboard
		s.app.StartInitialLoad(s.baseCtx, s.cfg.InitialDelay)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	s.app.Back()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	s.app.DismissError()
	target := "/"
	if s.app.Snapshot().View == dashboard.ViewDashboard {
		target = "/dashboard"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Snapshot()
	if snap.View != dashboard.ViewDashboard {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	q, err := s.parseExplorerQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case snap.Phase == dashboard.PhaseLoading:
		renderPage(w, r, http.StatusOK, pageLoading, messagePage{Error: snap.Error})
	case !snap.HasReport():
		renderPage(w, r, http.StatusOK, pageEmpty, messagePage{Error: snap.Error})
	default:
		renderPage(w, r, http.StatusOK, pageDashboard, buildDashboardPage(snap, q))
	}
}

// handleUpload replaces the report with an uploaded file. A failed upload keeps
// the previous report and leaves its message in the notification.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	source := "upload"
	var load func() (*schema.TechnicalDebtReport, error)

	file, header, err := r.FormFile(uploadField)
	switch {
	case err != nil:
		load = func() (*schema.TechnicalDebtReport, error) {
			return nil, &core.ReadError{Err: goerr.Wrap(err, "failed to read upload", goerr.V("field", uploadField))}
		}
	case !strings.EqualFold(filepath.Ext(header.Filename), ".json"):
		source = header.Filename
		load = func() (*schema.TechnicalDebtReport, error) {
			return nil, &core.ReadError{Path: header.Filename, Err: errNotJSON}
		}
	default:
		source = header.Filename
		load = func() (*schema.TechnicalDebtReport, error) {
			return core.LoadReportReader(file)
		}
	}
	if file != nil {
		defer func() { _ = file.Close() }()
	}

	s.app.Enter()
	applied, loadErr := s.app.Load(source, load)
	s.metrics.ObserveLoad(applied, loadErr)

	logger := ctxlog.From(r.Context())
	if loadErr != nil {
		logger.Warn("Report upload failed", "source", source, "error", loadErr)
	} else {
		logger.Info("Report uploaded", "source", source, "applied", applied)
	}

	if wantsJSON(r) {
		status := http.StatusOK
		res := uploadResult{Applied: applied, Source: source}
		if loadErr != nil {
			status = http.StatusUnprocessableEntity
			res.Error = core.UserMessage(loadErr)
		}
		writeJSON(w, r, status, res)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// parseExplorerQuery reads q, status, sort and dir. Missing values fall back to
// the flags the server was started with.
func (s *Server) parseExplorerQuery(r *http.Request) (explorerQuery, error) {
	values := r.URL.Query()
	pick := func(key, fallback string) string {
		if v := values.Get(key); v != "" {
			return v
		}
		return fallback
	}

	status, err := contract.ParseStatusFilter(pick("status", string(s.cfg.StatusFilter)))
	if err != nil {
		return explorerQuery{}, err
	}
	field, err := contract.ParseSortField(pick("sort", string(s.cfg.SortField)))
	if err != nil {
		return explorerQuery{}, err
	}
	direction, err := contract.ParseSortDirection(pick("dir", string(s.cfg.SortDirection)))
	if err != nil {
		return explorerQuery{}, err
	}

	return explorerQuery{
		Search: pick("q", s.cfg.Search),
		Status: status,
		Sort:   core.SortState{Field: field, Direction: direction},
	}, nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
