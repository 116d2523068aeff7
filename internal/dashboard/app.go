// Package dashboard holds the application state behind the HTML dashboard and the MCP tools.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/schema"
)

// View is the screen the user is looking at.
type View string

// All views supported.
const (
	ViewLanding   View = "landing"
	ViewDashboard View = "dashboard"
)

// Phase is where the current report is in its load cycle.
type Phase string

// All load phases supported.
const (
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseError   Phase = "error"
)

// Snapshot is a copy of the App state at one point in time.
// Report is shared with the App and must be treated as read-only.
type Snapshot struct {
	View     View
	Phase    Phase
	Report   *schema.TechnicalDebtReport
	Source   string // "sample" or the path or upload name of the report
	Error    string // Notification text, empty when dismissed
	Seq      uint64 // Token of the latest load
	LoadedAt time.Time
}

// HasReport reports whether a report is installed.
func (s Snapshot) HasReport() bool {
	return s.Report != nil
}

// App is the single owner of the dashboard state.
// Every transition takes the mutex, so handlers and watchers may call it concurrently.
type App struct {
	mu       sync.Mutex
	view     View
	phase    Phase
	report   *schema.TechnicalDebtReport
	source   string
	errMsg   string
	seq      uint64
	inflight map[uint64]string // Token -> source of loads not yet completed
	loadedAt time.Time
	now      func() time.Time
}

var _ contract.ReportSource = &App{} // Compile-time check

// NewApp returns an App on the landing view with nothing loaded yet.
func NewApp() *App {
	return &App{
		view:     ViewLanding,
		phase:    PhaseLoading,
		inflight: make(map[uint64]string),
		now:      time.Now,
	}
}

// Enter moves from the landing view to the dashboard.
// It returns true when this is the first visit and no load was ever requested.
func (a *App) Enter() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	first := a.view == ViewLanding && a.seq == 0
	a.view = ViewDashboard
	return first
}

// Back returns to the landing view. The report is kept.
func (a *App) Back() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = ViewLanding
}

// BeginLoad starts a new load of the report named source and returns its token.
// Any earlier notification is cleared.
func (a *App) BeginLoad(source string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.inflight[a.seq] = source
	a.errMsg = ""
	a.phase = PhaseLoading
	return a.seq
}

// CompleteLoad finishes the load started with token and reports whether it was applied.
//
// A completion is stale when a newer load is still in flight or has already
// succeeded. A failed load only withdraws itself: it sets the notification and
// keeps the previous report, and older loads still in flight stay live.
func (a *App) CompleteLoad(token uint64, report *schema.TechnicalDebtReport, err error) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	source, ok := a.inflight[token]
	if !ok {
		return false
	}
	delete(a.inflight, token)
	for t := range a.inflight {
		if t > token {
			return false
		}
	}

	if err != nil {
		a.errMsg = core.UserMessage(err)
		a.phase = a.settledPhase()
		return true
	}

	// Everything still in flight is older than token and now stale
	clear(a.inflight)
	a.report = report
	a.source = source
	a.phase = PhaseLoaded
	a.loadedAt = a.now()
	return true
}

// settledPhase is the phase after a failed completion. Callers hold the mutex.
func (a *App) settledPhase() Phase {
	switch {
	case len(a.inflight) > 0:
		return PhaseLoading
	case a.report != nil:
		return PhaseLoaded
	default:
		return PhaseError
	}
}

// abandonLoad forgets a load that will never complete.
func (a *App) abandonLoad(token uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.inflight[token]; !ok {
		return
	}
	delete(a.inflight, token)
	if a.phase == PhaseLoading && len(a.inflight) == 0 {
		a.phase = a.settledPhase()
	}
}

// Load runs a synchronous load of source through the token sequence.
func (a *App) Load(source string, load func() (*schema.TechnicalDebtReport, error)) (bool, error) {
	token := a.BeginLoad(source)
	report, err := load()
	return a.CompleteLoad(token, report, err), err
}

// DismissError clears the notification text.
func (a *App) DismissError() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errMsg = ""
}

// StartInitialLoad installs the bundled sample report after delay.
// The returned channel is closed once the goroutine is done. Cancelling ctx
// stops the wait without installing anything. A newer successful load wins over
// the sample, while a newer failed load leaves it pending.
func (a *App) StartInitialLoad(ctx context.Context, delay time.Duration) <-chan struct{} {
	token := a.BeginLoad("sample")
	done := make(chan struct{})

	go func() {
		defer close(done)
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			a.abandonLoad(token)
			return
		case <-timer.C:
			a.CompleteLoad(token, schema.MockReport(), nil)
		}
	}()

	return done
}

// Snapshot returns a copy of the current state.
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		View:     a.view,
		Phase:    a.phase,
		Report:   a.report,
		Source:   a.source,
		Error:    a.errMsg,
		Seq:      a.seq,
		LoadedAt: a.loadedAt,
	}
}

// Report returns the installed report, or nil before the first successful load.
func (a *App) Report() *schema.TechnicalDebtReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.report
}
