package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/helixml/csvsplit/domain/split"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type splitOutput struct {
	Files       int      `json:"files" yaml:"files"`
	Paths       []string `json:"paths" yaml:"paths"`
	HeaderLines int      `json:"header_lines" yaml:"header_lines"`
	DataLines   int      `json:"data_lines" yaml:"data_lines"`
}

type runOutput struct {
	ID          int64     `json:"id" yaml:"id"`
	Source      string    `json:"source" yaml:"source"`
	NumLines    int       `json:"num_lines" yaml:"num_lines"`
	HeaderLines int       `json:"header_lines" yaml:"header_lines"`
	Files       int       `json:"files" yaml:"files"`
	DataLines   int       `json:"data_lines" yaml:"data_lines"`
	State       string    `json:"state" yaml:"state"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
	FinishedAt  time.Time `json:"finished_at" yaml:"finished_at"`
}

func newSplitOutput(result split.Result) splitOutput {
	return splitOutput{
		Files:       result.Files(),
		Paths:       result.Paths(),
		HeaderLines: result.HeaderLines(),
		DataLines:   result.DataLines(),
	}
}

func newRunOutputs(runs []split.Run) []runOutput {
	out := make([]runOutput, len(runs))
	for i, r := range runs {
		out[i] = runOutput{
			ID:          r.ID(),
			Source:      r.Source(),
			NumLines:    r.NumLines(),
			HeaderLines: r.HeaderLines(),
			Files:       r.Files(),
			DataLines:   r.DataLines(),
			State:       string(r.State()),
			Error:       r.Error(),
			FinishedAt:  r.FinishedAt(),
		}
	}
	return out
}

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return validateOutput(format)
	}
}
