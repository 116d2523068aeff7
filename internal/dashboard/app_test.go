package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	snap := NewApp().Snapshot()
	assert.Equal(t, ViewLanding, snap.View)
	assert.Equal(t, PhaseLoading, snap.Phase)
	assert.False(t, snap.HasReport())
	assert.Empty(t, snap.Error)
	assert.Zero(t, snap.Seq)
}

func TestEnterAndBack(t *testing.T) {
	app := NewApp()
	token := app.BeginLoad("sample")
	require.True(t, app.CompleteLoad(token, schema.MockReport(), nil))

	app.Enter()
	assert.Equal(t, ViewDashboard, app.Snapshot().View)

	// Entering twice stays on the dashboard
	app.Enter()
	assert.Equal(t, ViewDashboard, app.Snapshot().View)

	app.Back()
	snap := app.Snapshot()
	assert.Equal(t, ViewLanding, snap.View)
	assert.True(t, snap.HasReport(), "report is kept when going back")
}

func TestEnterFirstVisit(t *testing.T) {
	app := NewApp()
	assert.True(t, app.Enter(), "first visit with nothing requested")
	assert.False(t, app.Enter(), "already on the dashboard")

	app.Back()
	assert.True(t, app.Enter(), "still nothing requested")

	app.Back()
	app.BeginLoad("sample")
	assert.False(t, app.Enter(), "a load was already requested")
}

func TestCompleteLoad(t *testing.T) {
	t.Run("success installs report", func(t *testing.T) {
		app := NewApp()
		token := app.BeginLoad("/tmp/report.json")
		assert.Equal(t, PhaseLoading, app.Snapshot().Phase)

		report := schema.MockReport()
		assert.True(t, app.CompleteLoad(token, report, nil))

		snap := app.Snapshot()
		assert.Equal(t, PhaseLoaded, snap.Phase)
		assert.Same(t, report, snap.Report)
		assert.Equal(t, "/tmp/report.json", snap.Source)
		assert.False(t, snap.LoadedAt.IsZero())
	})

	t.Run("failure without report", func(t *testing.T) {
		app := NewApp()
		token := app.BeginLoad("upload.json")
		assert.True(t, app.CompleteLoad(token, nil, &core.ParseError{Err: errors.New("bad")}))

		snap := app.Snapshot()
		assert.Equal(t, PhaseError, snap.Phase)
		assert.Nil(t, snap.Report)
		assert.Equal(t, core.ParseErrorMessage, snap.Error)
	})

	t.Run("failure keeps previous report", func(t *testing.T) {
		app := NewApp()
		first := schema.MockReport()
		_, err := app.Load("sample", func() (*schema.TechnicalDebtReport, error) { return first, nil })
		require.NoError(t, err)

		applied, err := app.Load("bad.json", func() (*schema.TechnicalDebtReport, error) {
			return nil, &core.ShapeError{Missing: []string{"files"}}
		})
		assert.True(t, applied)
		assert.Error(t, err)

		snap := app.Snapshot()
		assert.Equal(t, PhaseLoaded, snap.Phase)
		assert.Same(t, first, snap.Report)
		assert.Equal(t, "sample", snap.Source)
		assert.Equal(t, core.ShapeErrorMessage, snap.Error)
	})

	t.Run("stale completion is dropped", func(t *testing.T) {
		app := NewApp()
		older := app.BeginLoad("older.json")
		newer := app.BeginLoad("newer.json")

		newReport := &schema.TechnicalDebtReport{Files: []schema.FileDebtScore{}}
		assert.True(t, app.CompleteLoad(newer, newReport, nil))
		assert.False(t, app.CompleteLoad(older, schema.MockReport(), nil))

		snap := app.Snapshot()
		assert.Same(t, newReport, snap.Report)
		assert.Equal(t, "newer.json", snap.Source)
	})

	t.Run("stale completion before the latest finishes", func(t *testing.T) {
		app := NewApp()
		older := app.BeginLoad("older.json")
		app.BeginLoad("newer.json")

		assert.False(t, app.CompleteLoad(older, schema.MockReport(), nil))
		snap := app.Snapshot()
		assert.Equal(t, PhaseLoading, snap.Phase)
		assert.Nil(t, snap.Report)
	})

	t.Run("failed newer load leaves older load live", func(t *testing.T) {
		app := NewApp()
		older := app.BeginLoad("older.json")
		newer := app.BeginLoad("newer.json")

		assert.True(t, app.CompleteLoad(newer, nil, &core.ParseError{Err: errors.New("bad")}))
		snap := app.Snapshot()
		assert.Equal(t, PhaseLoading, snap.Phase, "older load is still pending")
		assert.Equal(t, core.ParseErrorMessage, snap.Error)

		report := schema.MockReport()
		assert.True(t, app.CompleteLoad(older, report, nil))
		snap = app.Snapshot()
		assert.Equal(t, PhaseLoaded, snap.Phase)
		assert.Same(t, report, snap.Report)
		assert.Equal(t, "older.json", snap.Source)
		assert.Equal(t, core.ParseErrorMessage, snap.Error, "notification stays until dismissed")
	})

	t.Run("failed older load is dropped", func(t *testing.T) {
		app := NewApp()
		older := app.BeginLoad("older.json")
		app.BeginLoad("newer.json")

		assert.False(t, app.CompleteLoad(older, nil, errors.New("disk")))
		assert.Empty(t, app.Snapshot().Error)
	})

	t.Run("completing twice is dropped", func(t *testing.T) {
		app := NewApp()
		token := app.BeginLoad("x.json")
		require.True(t, app.CompleteLoad(token, schema.MockReport(), nil))
		assert.False(t, app.CompleteLoad(token, nil, errors.New("late")))
		assert.Empty(t, app.Snapshot().Error)
	})
}

func TestDismissError(t *testing.T) {
	app := NewApp()
	token := app.BeginLoad("x.json")
	app.CompleteLoad(token, nil, errors.New("disk"))
	assert.Equal(t, core.ReadErrorMessage, app.Snapshot().Error)

	app.DismissError()
	assert.Empty(t, app.Snapshot().Error)

	// Dismissing with nothing to dismiss is harmless
	app.DismissError()
	assert.Empty(t, app.Snapshot().Error)
}

func TestBeginLoadClearsError(t *testing.T) {
	app := NewApp()
	token := app.BeginLoad("x.json")
	app.CompleteLoad(token, nil, errors.New("disk"))
	require.NotEmpty(t, app.Snapshot().Error)

	app.BeginLoad("y.json")
	assert.Empty(t, app.Snapshot().Error)
}

func TestStartInitialLoad(t *testing.T) {
	t.Run("installs sample after delay", func(t *testing.T) {
		app := NewApp()
		done := app.StartInitialLoad(context.Background(), 10*time.Millisecond)
		assert.Equal(t, PhaseLoading, app.Snapshot().Phase)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("initial load did not finish")
		}

		snap := app.Snapshot()
		assert.Equal(t, PhaseLoaded, snap.Phase)
		require.NotNil(t, snap.Report)
		assert.Len(t, snap.Report.Files, 9)
		assert.Equal(t, "sample", snap.Source)
	})

	t.Run("cancel stops the load", func(t *testing.T) {
		app := NewApp()
		ctx, cancel := context.WithCancel(context.Background())
		done := app.StartInitialLoad(ctx, time.Hour)
		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("cancelled initial load did not return")
		}
		snap := app.Snapshot()
		assert.Nil(t, snap.Report)
		assert.Equal(t, PhaseError, snap.Phase, "nothing is pending after cancel")
	})

	t.Run("failed load during initial load keeps the sample", func(t *testing.T) {
		app := NewApp()
		done := app.StartInitialLoad(context.Background(), 20*time.Millisecond)

		applied, err := app.Load("bad.json", func() (*schema.TechnicalDebtReport, error) {
			return core.LoadReport([]byte("{not json"))
		})
		require.Error(t, err)
		assert.True(t, applied)
		assert.Equal(t, PhaseLoading, app.Snapshot().Phase)

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("initial load did not finish")
		}

		snap := app.Snapshot()
		assert.Equal(t, PhaseLoaded, snap.Phase)
		require.NotNil(t, snap.Report)
		assert.Len(t, snap.Report.Files, 9)
		assert.Equal(t, "sample", snap.Source)
		assert.Equal(t, core.ParseErrorMessage, snap.Error)
	})

	t.Run("newer load wins over sample", func(t *testing.T) {
		app := NewApp()
		done := app.StartInitialLoad(context.Background(), 20*time.Millisecond)

		uploaded := &schema.TechnicalDebtReport{Files: []schema.FileDebtScore{}}
		_, err := app.Load("upload.json", func() (*schema.TechnicalDebtReport, error) { return uploaded, nil })
		require.NoError(t, err)

		<-done
		assert.Same(t, uploaded, app.Report())
	})
}

func TestConcurrentTransitions(t *testing.T) {
	app := NewApp()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := app.BeginLoad("sample")
			if i%2 == 0 {
				app.Enter()
			} else {
				app.Back()
			}
			app.CompleteLoad(token, schema.MockReport(), nil)
			_ = app.Snapshot()
		}(i)
	}
	wg.Wait()

	snap := app.Snapshot()
	assert.Equal(t, uint64(50), snap.Seq)
}
