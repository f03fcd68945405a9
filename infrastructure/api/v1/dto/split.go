// Package dto holds the JSON request and response bodies of the v1 API.
package dto

import "time"

// SplitRequest is the body of POST /api/v1/split.
// NumLines falls back to the last successful run's chunk size, then the
// configured default. HeaderLines takes precedence over WithHeader.
type SplitRequest struct {
	Path        string `json:"path"`
	NumLines    *int   `json:"num_lines,omitempty"`
	HeaderLines *int   `json:"header_lines,omitempty"`
	WithHeader  *bool  `json:"with_header,omitempty"`
}

// SplitResponse is the result of a successful split.
type SplitResponse struct {
	Files       int      `json:"files"`
	Paths       []string `json:"paths"`
	HeaderLines int      `json:"header_lines"`
	DataLines   int      `json:"data_lines"`
}

// RunResponse describes one recorded split run.
type RunResponse struct {
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
	DurationMS  int64     `json:"duration_ms"`
}

// RunListResponse lists recorded runs, newest first.
type RunListResponse struct {
	Data []RunResponse `json:"data"`
}
