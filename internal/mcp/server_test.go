package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/helixml/csvsplit/domain/split"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSplits records the last request and returns canned values.
type fakeSplits struct {
	last   split.Request
	result split.Result
	runs   []split.Run
	err    error
}

func (f *fakeSplits) Split(_ context.Context, req split.Request) (split.Result, error) {
	f.last = req
	if f.err != nil {
		return split.Result{}, f.err
	}
	return f.result, nil
}

func (f *fakeSplits) Runs(_ context.Context, _ int) ([]split.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.runs, nil
}

// sendMessage sends a JSON-RPC request through HandleMessage.
func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCResponse {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	result := srv.MCPServer().HandleMessage(context.Background(), raw)
	resp, ok := result.(mcp.JSONRPCResponse)
	require.Truef(t, ok, "expected JSONRPCResponse, got %T: %+v", result, result)
	return resp
}

// resultJSON re-marshals the Result field through JSON into dst.
func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, dst))
}

func textFromContent(t *testing.T, result mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	b, err := json.Marshal(result.Content[0])
	require.NoError(t, err)
	var tc struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(b, &tc))
	return tc.Text
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) mcp.CallToolResult {
	t.Helper()
	sendMessage(t, srv, "initialize", 1, initializeParams())
	resp := sendMessage(t, srv, "tools/call", 2, map[string]any{
		"name":      name,
		"arguments": args,
	})
	var result mcp.CallToolResult
	resultJSON(t, resp, &result)
	return result
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "0.0.1",
		},
	}
}

func TestServer_Initialize(t *testing.T) {
	srv := NewServer(&fakeSplits{}, "1.2.3", nil)
	resp := sendMessage(t, srv, "initialize", 1, initializeParams())

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)
	assert.Equal(t, "csvsplit", result.ServerInfo.Name)
	assert.Equal(t, "1.2.3", result.ServerInfo.Version)
}

func TestServer_ListTools(t *testing.T) {
	srv := NewServer(&fakeSplits{}, "test", nil)
	sendMessage(t, srv, "initialize", 1, initializeParams())
	resp := sendMessage(t, srv, "tools/list", 2, nil)

	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{"split_csv", "list_runs"}, names)
}

func TestServer_SplitCSV(t *testing.T) {
	fake := &fakeSplits{
		result: split.NewResult([]string{"/d/a-1.csv", "/d/a-2.csv"}, 1, 3),
	}
	srv := NewServer(fake, "test", nil)

	result := callTool(t, srv, "split_csv", map[string]any{
		"path":        "/d/a.csv",
		"num_lines":   2,
		"with_header": true,
	})
	require.False(t, result.IsError, textFromContent(t, result))

	var got splitResult
	require.NoError(t, json.Unmarshal([]byte(textFromContent(t, result)), &got))
	assert.Equal(t, 2, got.Files)
	assert.Equal(t, []string{"/d/a-1.csv", "/d/a-2.csv"}, got.Paths)
	assert.Equal(t, 1, got.HeaderLines)
	assert.Equal(t, 3, got.DataLines)

	assert.Equal(t, "/d/a.csv", fake.last.Source())
	assert.Equal(t, 2, fake.last.NumLines())
	assert.Equal(t, 1, fake.last.HeaderLines())
}

func TestServer_SplitCSV_HeaderLinesWins(t *testing.T) {
	fake := &fakeSplits{result: split.NewResult([]string{"/d/a-1.csv"}, 3, 0)}
	srv := NewServer(fake, "test", nil)

	result := callTool(t, srv, "split_csv", map[string]any{
		"path":         "/d/a.csv",
		"num_lines":    5,
		"header_lines": 3,
		"with_header":  false,
	})
	require.False(t, result.IsError)
	assert.Equal(t, 3, fake.last.HeaderLines())
}

func TestServer_SplitCSV_MissingArguments(t *testing.T) {
	srv := NewServer(&fakeSplits{}, "test", nil)

	result := callTool(t, srv, "split_csv", map[string]any{"num_lines": 1})
	assert.True(t, result.IsError)
	assert.Contains(t, textFromContent(t, result), "path is required")

	result = callTool(t, srv, "split_csv", map[string]any{"path": "/d/a.csv"})
	assert.True(t, result.IsError)
	assert.Contains(t, textFromContent(t, result), "num_lines is required")
}

func TestServer_SplitCSV_ErrorString(t *testing.T) {
	fake := &fakeSplits{err: split.NewIOError("open", "/d/a.csv", errors.New("no such file or directory"))}
	srv := NewServer(fake, "test", nil)

	result := callTool(t, srv, "split_csv", map[string]any{"path": "/d/a.csv", "num_lines": 1})
	assert.True(t, result.IsError)
	assert.Equal(t, "open /d/a.csv: no such file or directory", textFromContent(t, result))
}

func TestServer_ListRuns(t *testing.T) {
	started := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	run := split.ReconstructRun(7, "/d/a.csv", 2, 1, 3, 5, split.RunStateCompleted, "", started, started.Add(time.Second))
	srv := NewServer(&fakeSplits{runs: []split.Run{run}}, "test", nil)

	result := callTool(t, srv, "list_runs", map[string]any{"limit": 5})
	require.False(t, result.IsError)

	var got []runResult
	require.NoError(t, json.Unmarshal([]byte(textFromContent(t, result)), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, "completed", got[0].State)
	assert.Equal(t, 3, got[0].Files)
}
