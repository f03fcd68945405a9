package chunking

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/helixml/csvsplit/domain/split"
)

const writeBufferSize = 64 * 1024

// Progress is called after each output file has been written and closed.
type Progress func(ctx context.Context, index int, path string, dataLines int)

// Splitter writes a source file out as numbered chunks of at most
// NumLines data lines, each preceded by the source's header block.
type Splitter struct {
	logger *slog.Logger
}

// NewSplitter creates a new Splitter.
func NewSplitter(logger *slog.Logger) *Splitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{logger: logger}
}

// Split reads req.Source once, sequentially, and writes "<stem>-<N>.<ext>"
// files beside it. Existing files at those paths are truncated.
//
// At least one file is always produced, even for an empty source. A new file
// is only opened once a data line is available for it, so a source whose data
// lines are an exact multiple of NumLines gets no trailing header-only file.
//
// On failure, files written so far are left on disk and a zero Result is returned.
// progress may be nil.
func (s *Splitter) Split(ctx context.Context, req split.Request, progress Progress) (split.Result, error) {
	if err := req.Validate(); err != nil {
		return split.Result{}, err
	}

	source := req.Source()
	if _, err := split.DerivePath(source, 1); err != nil {
		return split.Result{}, err
	}

	file, err := os.Open(source)
	if err != nil {
		return split.Result{}, split.NewIOError("open", source, err)
	}
	defer func() { _ = file.Close() }()

	lines := NewLines(file)

	header := make([]string, 0, req.HeaderLines())
	for len(header) < req.HeaderLines() {
		line, ok := lines.Next()
		if !ok {
			break
		}
		header = append(header, line)
	}
	if err := lines.Err(); err != nil {
		return split.Result{}, split.NewIOError("read", source, err)
	}
	if len(header) < req.HeaderLines() {
		s.logger.Warn("source has fewer lines than requested header lines",
			slog.String("source", source),
			slog.Int("requested", req.HeaderLines()),
			slog.Int("available", len(header)),
		)
	}

	var (
		paths     []string
		dataLines int
	)
	for {
		first, ok := lines.Next()
		if err := lines.Err(); err != nil {
			return split.Result{}, split.NewIOError("read", source, err)
		}
		if !ok && len(paths) > 0 {
			break
		}

		index := len(paths) + 1
		path, err := split.DerivePath(source, index)
		if err != nil {
			return split.Result{}, err
		}

		var pending []string
		if ok {
			pending = []string{first}
		}
		written, err := writeChunk(source, path, header, pending, lines, req.NumLines())
		if err != nil {
			return split.Result{}, err
		}

		paths = append(paths, path)
		dataLines += written

		s.logger.Debug("wrote chunk",
			slog.String("path", path),
			slog.Int("index", index),
			slog.Int("data_lines", written),
		)
		if progress != nil {
			progress(ctx, index, path, written)
		}

		if written < req.NumLines() {
			break
		}
	}

	return split.NewResult(paths, len(header), dataLines), nil
}

// writeChunk creates path and writes the header block, the pending lines and
// then further lines from the sequence until numLines data lines are written
// or the sequence ends. It returns the number of data lines written.
func writeChunk(source, path string, header, pending []string, lines *Lines, numLines int) (int, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, split.NewIOError("create", path, err)
	}

	w := bufio.NewWriterSize(out, writeBufferSize)
	fail := func(op string, err error) (int, error) {
		_ = out.Close()
		return 0, split.NewIOError(op, path, err)
	}

	for _, line := range header {
		if err := writeLine(w, line); err != nil {
			return fail("write", err)
		}
	}

	written := 0
	for _, line := range pending {
		if err := writeLine(w, line); err != nil {
			return fail("write", err)
		}
		written++
	}

	for written > 0 && written < numLines {
		line, ok := lines.Next()
		if !ok {
			break
		}
		if err := writeLine(w, line); err != nil {
			return fail("write", err)
		}
		written++
	}
	if err := lines.Err(); err != nil {
		_ = out.Close()
		return 0, split.NewIOError("read", source, err)
	}

	if err := w.Flush(); err != nil {
		return fail("write", err)
	}
	if err := out.Close(); err != nil {
		return 0, split.NewIOError("close", path, err)
	}
	return written, nil
}

func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
