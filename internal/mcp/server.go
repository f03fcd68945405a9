// Package mcp exposes file splitting as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/helixml/csvsplit/domain/split"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Splits runs splits and lists their history.
type Splits interface {
	Split(ctx context.Context, req split.Request) (split.Result, error)
	Runs(ctx context.Context, limit int) ([]split.Run, error)
}

// Server wraps the MCP server with the csvsplit tools.
type Server struct {
	mcpServer *server.MCPServer
	splits    Splits
	logger    *slog.Logger
}

// NewServer creates a new MCP server.
func NewServer(splits Splits, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		splits: splits,
		logger: logger,
	}

	mcpServer := server.NewMCPServer(
		"csvsplit",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions("Split CSV and other line-oriented files into numbered chunks that repeat the header."),
	)
	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	splitTool := mcp.NewTool("split_csv",
		mcp.WithDescription("Split a file into <stem>-<N>.<ext> files beside it, each holding the header lines followed by up to num_lines data lines. Returns the number of files written and their paths."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file to split"),
		),
		mcp.WithNumber("num_lines",
			mcp.Required(),
			mcp.Description("Maximum data lines per output file (at least 1)"),
		),
		mcp.WithNumber("header_lines",
			mcp.Description("Number of leading lines repeated at the top of every output file. Takes precedence over with_header."),
		),
		mcp.WithBoolean("with_header",
			mcp.Description("Treat the first line as a header (same as header_lines=1)"),
		),
	)
	mcpServer.AddTool(splitTool, s.handleSplit)

	runsTool := mcp.NewTool("list_runs",
		mcp.WithDescription("List recent split runs, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs to return (default: 20)"),
		),
	)
	mcpServer.AddTool(runsTool, s.handleListRuns)
}

type splitResult struct {
	Files       int      `json:"files"`
	Paths       []string `json:"paths"`
	HeaderLines int      `json:"header_lines"`
	DataLines   int      `json:"data_lines"`
}

type runResult struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	NumLines    int       `json:"num_lines"`
	HeaderLines int       `json:"header_lines"`
	Files       int       `json:"files"`
	DataLines   int       `json:"data_lines"`
	State       string    `json:"state"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

func (s *Server) handleSplit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil
	}
	if _, ok := request.GetArguments()["num_lines"]; !ok {
		return mcp.NewToolResultError("num_lines is required"), nil
	}
	numLines := request.GetInt("num_lines", 0)

	var opts []split.RequestOption
	if _, ok := request.GetArguments()["header_lines"]; ok {
		opts = append(opts, split.WithHeaderLines(request.GetInt("header_lines", 0)))
	} else {
		opts = append(opts, split.WithHeader(request.GetBool("with_header", false)))
	}

	result, err := s.splits.Split(ctx, split.NewRequest(path, numLines, opts...))
	if err != nil {
		s.logger.Error("split tool failed", slog.String("path", path), slog.Any("error", err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(splitResult{
		Files:       result.Files(),
		Paths:       result.Paths(),
		HeaderLines: result.HeaderLines(),
		DataLines:   result.DataLines(),
	})
}

func (s *Server) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)

	runs, err := s.splits.Runs(ctx, limit)
	if err != nil {
		s.logger.Error("list runs tool failed", slog.Any("error", err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	results := make([]runResult, len(runs))
	for i, r := range runs {
		results[i] = runResult{
			ID:          r.ID(),
			Source:      r.Source(),
			NumLines:    r.NumLines(),
			HeaderLines: r.HeaderLines(),
			Files:       r.Files(),
			DataLines:   r.DataLines(),
			State:       string(r.State()),
			Error:       r.Error(),
			StartedAt:   r.StartedAt(),
			FinishedAt:  r.FinishedAt(),
		}
	}
	return jsonResult(results)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdin and stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
