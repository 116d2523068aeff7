// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"fmt"

	"github.com/huangsam/debtboard/core"
	"github.com/huangsam/debtboard/internal/contract"
	"github.com/huangsam/debtboard/internal/dashboard"
	"github.com/huangsam/debtboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the debtboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, app *dashboard.App, mgr contract.ArchiveManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Debtboard Report Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		app:     app,
		mgr:     mgr,
	}

	// --- 1. Tool: get_overview ---
	s.AddTool(mcp.NewTool("get_overview",
		mcp.WithDescription("Get the overview of the current technical debt report: debt ratio, cost, fix time, severity and status distribution."),
	), h.handleGetOverview)

	// --- 2. Tool: list_files ---
	s.AddTool(mcp.NewTool("list_files",
		mcp.WithDescription("List the files of the current report with an optional search, status filter and sort."),
		mcp.WithString("search", mcp.Description("Case-insensitive substring of the file path.")),
		mcp.WithString("status", mcp.Description("Status filter. Defaults to 'all'."), mcp.Enum("all", "good", "warning", "critical")),
		mcp.WithString("sort", mcp.Description("Sort field. Defaults to 'score'."), mcp.Enum("score", "complexity", "size", "file")),
		mcp.WithString("direction", mcp.Description("Sort direction. Defaults to 'desc'."), mcp.Enum("asc", "desc")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of files returned.")),
	), h.handleListFiles)

	// --- 3. Tool: group_by_directory ---
	s.AddTool(mcp.NewTool("group_by_directory",
		mcp.WithDescription("Group the files of the current report by their immediate parent directory."),
	), h.handleGroupByDirectory)

	// --- 4. Tool: get_recommendations ---
	s.AddTool(mcp.NewTool("get_recommendations",
		mcp.WithDescription("Get the remediation recommendations of the current report."),
	), h.handleGetRecommendations)

	// --- 5. Tool: get_trends ---
	s.AddTool(mcp.NewTool("get_trends",
		mcp.WithDescription("Get the debt ratio history of the current report."),
	), h.handleGetTrends)

	// --- 6. Tool: load_report ---
	s.AddTool(mcp.NewTool("load_report",
		mcp.WithDescription("Replace the current report with a JSON report file. The current report is kept when loading fails."),
		mcp.WithString("path", mcp.Description("Path to the JSON report file."), mcp.Required()),
	), h.handleLoadReport)

	// --- 7. Tool: archive_report ---
	s.AddTool(mcp.NewTool("archive_report",
		mcp.WithDescription("Save the current report to the report archive and return its ID."),
	), h.handleArchiveReport)

	return s
}

// LoadInitialReport installs the report named by cfg into app.
func LoadInitialReport(cfg *contract.Config, app *dashboard.App) error {
	source := "sample"
	load := func() (*schema.TechnicalDebtReport, error) { return schema.MockReport(), nil }
	if !cfg.UsesSampleReport() {
		source = cfg.ReportPath
		load = func() (*schema.TechnicalDebtReport, error) { return core.LoadReportFile(cfg.ReportPath) }
	}
	if _, err := app.Load(source, load); err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}
	return nil
}

// StartMCPServer loads the configured report and serves the debtboard MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.ArchiveManager) error {
	app := dashboard.NewApp()
	if err := LoadInitialReport(baseCfg, app); err != nil {
		return err
	}
	s := NewMCPServer(baseCfg, app, mgr)
	return server.ServeStdio(s)
}
