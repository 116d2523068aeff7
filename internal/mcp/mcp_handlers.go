package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/dashboard"
	"github.com/huangsam/debtboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// errNoReport is returned by the read tools before any report is installed.
var errNoReport = errors.New("no report is loaded")

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	app     *dashboard.App
	mgr     contract.ArchiveManager
}

// overviewResult is the payload of get_overview.
type overviewResult struct {
	Overview     schema.DebtOverview  `json:"overview"`
	Health       string               `json:"health"`
	Distribution []schema.StatusCount `json:"distribution"`
	Source       string               `json:"source"`
}

// filesResult is the payload of list_files.
type filesResult struct {
	Shown int                         `json:"shown"`
	Total int                         `json:"total"`
	Files []schema.EnrichedFileResult `json:"files"`
}

// currentReport returns the installed report and its source.
func (h *toolHandler) currentReport() (*schema.TechnicalDebtReport, string, error) {
	snap := h.app.Snapshot()
	if !snap.HasReport() {
		return nil, "", errNoReport
	}
	return snap.Report, snap.Source, nil
}

// jsonResult marshals v into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetOverview(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, source, err := h.currentReport()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(overviewResult{
		Overview:     report.Overview,
		Health:       schema.DebtRatioHealth(report.Overview.DebtRatio),
		Distribution: schema.StatusDistribution(report.Files),
		Source:       source,
	})
}

func (h *toolHandler) handleListFiles(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, _, err := h.currentReport()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Unset arguments fall back to the flags the server was started with
	cfg := h.baseCfg.Clone()
	status, err := contract.ParseStatusFilter(request.GetString("status", string(cfg.StatusFilter)))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	field, err := contract.ParseSortField(request.GetString("sort", string(cfg.SortField)))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	direction, err := contract.ParseSortDirection(request.GetString("direction", string(cfg.SortDirection)))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	files := core.FilterAndSort(report.Files, request.GetString("search", cfg.Search), status, field, direction)
	if l := request.GetInt("limit", 0); l > 0 && l < len(files) {
		files = files[:l]
	}

	return jsonResult(filesResult{
		Shown: len(files),
		Total: len(report.Files),
		Files: schema.EnrichFiles(files),
	})
}

func (h *toolHandler) handleGroupByDirectory(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, _, err := h.currentReport()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(schema.EnrichFolders(core.GroupByDirectory(report.Files)))
}

func (h *toolHandler) handleGetRecommendations(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, _, err := h.currentReport()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recs := report.Recommendations
	if recs == nil {
		recs = []schema.Recommendation{}
	}
	return jsonResult(recs)
}

func (h *toolHandler) handleGetTrends(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, _, err := h.currentReport()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	trends := report.Trends
	if trends == nil {
		trends = []schema.TrendData{}
	}
	return jsonResult(trends)
}

func (h *toolHandler) handleLoadReport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	applied, err := h.app.Load(path, func() (*schema.TechnicalDebtReport, error) {
		return core.LoadReportFile(path)
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s %v", core.UserMessage(err), err)), nil
	}
	if !applied {
		return mcp.NewToolResultError("a newer load replaced this report"), nil
	}

	report := h.app.Report()
	return mcp.NewToolResultText(fmt.Sprintf("Loaded %s: %d files, %d recommendations", path, len(report.Files), len(report.Recommendations))), nil
}

func (h *toolHandler) handleArchiveReport(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, source, err := h.currentReport()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if h.mgr == nil || h.mgr.GetArchiveStore() == nil {
		return mcp.NewToolResultError("archive is disabled; set --archive-backend"), nil
	}

	id, err := h.mgr.GetArchiveStore().SaveReport(report, source, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to archive report: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Archived report %d from %s", id, source)), nil
}
