package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/dashboard"
	"github.com/huangsam/debtboard/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer returns a server whose app is on the dashboard with the sample report.
func newTestServer(t *testing.T) (*Server, *dashboard.App) {
	t.Helper()
	app := dashboard.NewApp()
	app.Enter()
	applied, err := app.Load("sample", func() (*schema.TechnicalDebtReport, error) { return schema.MockReport(), nil })
	require.NoError(t, err)
	require.True(t, applied)
	return NewServer(context.Background(), &contract.Config{}, app, NewMetrics()), app
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, s, httptest.NewRequest(http.MethodGet, target, nil))
}

func post(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, s, httptest.NewRequest(http.MethodPost, target, nil))
}

// uploadRequest builds a multipart upload of content under filename.
func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(uploadField, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"debtboard"}`, rec.Body.String())
}

func TestLandingAndNavigation(t *testing.T) {
	app := dashboard.NewApp()
	s := NewServer(context.Background(), &contract.Config{}, app, NewMetrics())

	rec := get(t, s, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stop Guessing Your Technical Debt")
	assert.Contains(t, rec.Body.String(), "Launch Demo")
	assert.Contains(t, rec.Body.String(), "Start Analyzing")

	rec = get(t, s, "/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = post(t, s, "/enter")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Equal(t, dashboard.ViewDashboard, app.Snapshot().View)

	rec = get(t, s, "/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = post(t, s, "/back")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, dashboard.ViewLanding, app.Snapshot().View)
}

func TestDashboard_Loading(t *testing.T) {
	app := dashboard.NewApp()
	app.Enter()
	s := NewServer(context.Background(), &contract.Config{}, app, NewMetrics())

	rec := get(t, s, "/dashboard")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analyzing Codebase...")
	assert.Contains(t, rec.Body.String(), `http-equiv="refresh"`)
}

func TestEnter_StartsInitialLoad(t *testing.T) {
	t.Run("sample arrives after the first visit", func(t *testing.T) {
		app := dashboard.NewApp()
		cfg := &contract.Config{InitialDelay: 100 * time.Millisecond}
		s := NewServer(context.Background(), cfg, app, NewMetrics())
		require.Nil(t, app.Report(), "nothing is loaded before entering")

		post(t, s, "/enter")
		assert.Contains(t, get(t, s, "/dashboard").Body.String(), "Analyzing Codebase...")

		require.Eventually(t, func() bool { return app.Report() != nil }, 2*time.Second, 10*time.Millisecond)
		assert.Contains(t, get(t, s, "/dashboard").Body.String(), "Showing 9 of 9 files")

		// Going back and entering again does not restart the load
		post(t, s, "/back")
		seq := app.Snapshot().Seq
		post(t, s, "/enter")
		assert.Equal(t, seq, app.Snapshot().Seq)
	})

	t.Run("failed upload keeps the sample coming", func(t *testing.T) {
		app := dashboard.NewApp()
		cfg := &contract.Config{InitialDelay: 200 * time.Millisecond}
		s := NewServer(context.Background(), cfg, app, NewMetrics())

		post(t, s, "/enter")
		rec := do(t, s, uploadRequest(t, "broken.json", "{not json"))
		assert.Equal(t, http.StatusSeeOther, rec.Code)

		body := get(t, s, "/dashboard").Body.String()
		assert.Contains(t, body, "Analyzing Codebase...")
		assert.Contains(t, body, core.ParseErrorMessage)

		require.Eventually(t, func() bool { return app.Report() != nil }, 2*time.Second, 10*time.Millisecond)
		body = get(t, s, "/dashboard").Body.String()
		assert.Contains(t, body, "Showing 9 of 9 files")
		assert.Contains(t, body, core.ParseErrorMessage)
	})

	t.Run("report file skips the sample", func(t *testing.T) {
		app := dashboard.NewApp()
		s := NewServer(context.Background(), &contract.Config{ReportPath: "/tmp/debt.json"}, app, NewMetrics())

		post(t, s, "/enter")
		assert.Zero(t, app.Snapshot().Seq)
	})
}

func TestDashboard_NoReport(t *testing.T) {
	app := dashboard.NewApp()
	app.Enter()
	_, err := app.Load("broken.json", func() (*schema.TechnicalDebtReport, error) {
		return nil, &core.ParseError{Err: assert.AnError}
	})
	require.Error(t, err)
	s := NewServer(context.Background(), &contract.Config{}, app, NewMetrics())

	body := get(t, s, "/dashboard").Body.String()
	assert.Contains(t, body, "No Data Loaded")
	assert.Contains(t, body, "Upload a report or run the CLI tool to generate one.")
	assert.Contains(t, body, core.ParseErrorMessage)
}

func TestDashboard_SampleReport(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	for _, want := range []string{
		"Debt Ratio", "18.5%", "Moderate",
		"Est. Cost", "$6,200", "Remediation",
		"Fix Time", "124h", "Developer Hours",
		"Severity", "MEDIUM", "9 Files Scanned",
		"Technical Debt Trend", "2023-11-15",
		"File Status Distribution",
		"System Map", "src/legacy", "OldParser.js",
		"Action Plan", "Extreme cyclomatic complexity (45) and high file size.",
		"Search files...",
		"Showing 9 of 9 files", "Sorted by score (desc)",
	} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, "No files found matching your filters.")
	assert.Less(t, strings.Index(body, "src/legacy/OldParser.js</td>"), strings.Index(body, "src/legacy/ProcessHandler.ts</td>"))
}

func TestDashboard_FilterAndSort(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("critical by score", func(t *testing.T) {
		body := get(t, s, "/dashboard?status=critical&sort=score&dir=desc").Body.String()
		assert.Contains(t, body, "Showing 3 of 9 files")

		first := strings.Index(body, "src/legacy/OldParser.js</td>")
		second := strings.Index(body, "src/legacy/ProcessHandler.ts</td>")
		third := strings.Index(body, "src/components/ComplexGrid.tsx</td>")
		require.True(t, first > 0 && second > 0 && third > 0)
		assert.Less(t, first, second)
		assert.Less(t, second, third)
	})

	t.Run("search without matches", func(t *testing.T) {
		body := get(t, s, "/dashboard?q=nothing-here").Body.String()
		assert.Contains(t, body, "No files found matching your filters.")
		assert.Contains(t, body, "Showing 0 of 9 files")
	})

	t.Run("header toggles direction", func(t *testing.T) {
		body := get(t, s, "/dashboard?sort=size&dir=asc").Body.String()
		assert.Contains(t, body, "Sorted by size (asc)")
		assert.Contains(t, body, "/dashboard?dir=desc&amp;sort=size")
		assert.Contains(t, body, "/dashboard?dir=desc&amp;sort=score")
	})

	t.Run("invalid parameters", func(t *testing.T) {
		for _, target := range []string{"/dashboard?status=urgent", "/dashboard?sort=age", "/dashboard?dir=up"} {
			assert.Equal(t, http.StatusBadRequest, get(t, s, target).Code, target)
		}
	})
}

func TestUpload_ParseErrorKeepsDashboard(t *testing.T) {
	s, app := newTestServer(t)
	before := app.Report()

	rec := do(t, s, uploadRequest(t, "broken.json", "{not json"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Same(t, before, app.Report())

	body := get(t, s, "/dashboard").Body.String()
	assert.Contains(t, body, core.ParseErrorMessage)
	assert.Contains(t, body, "Showing 9 of 9 files")
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.reportLoads.WithLabelValues(OutcomeParseError)))

	rec = post(t, s, "/dismiss")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.NotContains(t, get(t, s, "/dashboard").Body.String(), core.ParseErrorMessage)
}

func TestUpload_EmptyReport(t *testing.T) {
	s, app := newTestServer(t)

	rec := do(t, s, uploadRequest(t, "empty.json", `{"overview": {}, "files": []}`))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, app.Report().Files)
	assert.Equal(t, "empty.json", app.Snapshot().Source)

	body := get(t, s, "/dashboard").Body.String()
	assert.Contains(t, body, "No files found matching your filters.")
	assert.Contains(t, body, "Showing 0 of 0 files")
	assert.Contains(t, body, "No trend data available")
	assert.Contains(t, body, "No active recommendations. Great job!")
	assert.Contains(t, body, "0 Files Scanned")
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.reportLoads.WithLabelValues(OutcomeSuccess)))
}

func TestUpload_Rejections(t *testing.T) {
	testCases := []struct {
		name    string
		req     func(t *testing.T) *http.Request
		message string
		outcome string
	}{
		{
			name:    "shape error",
			req:     func(t *testing.T) *http.Request { return uploadRequest(t, "r.json", `{"overview": {}}`) },
			message: core.ShapeErrorMessage,
			outcome: OutcomeShapeError,
		},
		{
			name:    "wrong extension",
			req:     func(t *testing.T) *http.Request { return uploadRequest(t, "report.txt", `{"overview": {}, "files": []}`) },
			message: core.ReadErrorMessage,
			outcome: OutcomeReadError,
		},
		{
			name: "missing field",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("x=1"))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			},
			message: core.ReadErrorMessage,
			outcome: OutcomeReadError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, app := newTestServer(t)
			req := tc.req(t)
			req.Header.Set("Accept", "application/json")

			rec := do(t, s, req)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

			var res uploadResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.Equal(t, tc.message, res.Error)
			assert.Len(t, app.Report().Files, 9)
			assert.Equal(t, "sample", app.Snapshot().Source)
			assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.reportLoads.WithLabelValues(tc.outcome)))
		})
	}
}

func TestUpload_JSONSuccess(t *testing.T) {
	s, _ := newTestServer(t)
	req := uploadRequest(t, "next.json", `{"overview": {"debtRatio": 3}, "files": [{"file": "main.go", "status": "good"}]}`)
	req.Header.Set("Accept", "application/json")

	rec := do(t, s, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"applied": true, "source": "next.json"}`, rec.Body.String())
}

func TestAPI(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("report", func(t *testing.T) {
		rec := get(t, s, "/api/report")
		require.Equal(t, http.StatusOK, rec.Code)
		var res reportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "sample", res.Source)
		assert.Equal(t, "loaded", res.Phase)
		assert.Equal(t, "Moderate", res.Health)
		assert.Len(t, res.Report.Files, 9)
	})

	t.Run("files", func(t *testing.T) {
		rec := get(t, s, "/api/files?status=critical")
		require.Equal(t, http.StatusOK, rec.Code)
		var res filesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, 3, res.Shown)
		assert.Equal(t, 9, res.Total)
		assert.Equal(t, "src/legacy/OldParser.js", res.Files[0].File)
	})

	t.Run("files invalid query", func(t *testing.T) {
		rec := get(t, s, "/api/files?sort=age")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid sort field")
	})

	t.Run("folders", func(t *testing.T) {
		rec := get(t, s, "/api/folders")
		require.Equal(t, http.StatusOK, rec.Code)
		var res []schema.EnrichedFolderResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.NotEmpty(t, res)
		assert.Equal(t, "src/legacy", res[0].Dir)
		assert.Equal(t, 2, res[0].FileCount)
	})

	t.Run("no report", func(t *testing.T) {
		empty := NewServer(context.Background(), &contract.Config{}, dashboard.NewApp(), NewMetrics())
		for _, target := range []string{"/api/report", "/api/files", "/api/folders"} {
			rec := get(t, empty, target)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
			assert.JSONEq(t, `{"error": "no report is loaded"}`, rec.Body.String(), target)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	get(t, s, "/dashboard")
	s.metrics.ObserveLoad(false, nil)

	body := get(t, s, "/metrics").Body.String()
	assert.Contains(t, body, `debtboard_report_loads_total{outcome="stale"} 1`)
	assert.Contains(t, body, `debtboard_http_request_duration_seconds_count{method="GET",route="/dashboard",status="200"} 1`)
}

func TestLoadOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, LoadOutcome(true, nil))
	assert.Equal(t, OutcomeStale, LoadOutcome(false, nil))
	assert.Equal(t, OutcomeParseError, LoadOutcome(true, &core.ParseError{Err: assert.AnError}))
	assert.Equal(t, OutcomeShapeError, LoadOutcome(true, &core.ShapeError{Missing: []string{"files"}}))
	assert.Equal(t, OutcomeReadError, LoadOutcome(true, &core.ReadError{Err: assert.AnError}))
	assert.Equal(t, OutcomeReadError, LoadOutcome(false, assert.AnError))
}

func TestRecoverMiddleware(t *testing.T) {
	router := chi.NewRouter()
	router.Use(RecoverMiddleware)
	router.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("render failed") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.Contains(t, rec.Body.String(), "Reload Application")

	t.Run("abort handler is re-raised", func(t *testing.T) {
		router := chi.NewRouter()
		router.Use(RecoverMiddleware)
		router.Get("/abort", func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) })

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
		})
	})
}

func TestServerRun(t *testing.T) {
	cfg := &contract.Config{ServeAddr: "127.0.0.1:0"}
	s := NewServer(context.Background(), cfg, dashboard.NewApp(), NewMetrics())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
