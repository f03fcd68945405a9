package split

// Result describes the output of a completed split.
type Result struct {
	files       int
	paths       []string
	headerLines int
	dataLines   int
}

// NewResult creates a Result.
func NewResult(paths []string, headerLines, dataLines int) Result {
	copied := make([]string, len(paths))
	copy(copied, paths)
	return Result{
		files:       len(copied),
		paths:       copied,
		headerLines: headerLines,
		dataLines:   dataLines,
	}
}

// Files returns the number of output files, which is also the last index written.
func (r Result) Files() int { return r.files }

// Paths returns the output paths in index order.
func (r Result) Paths() []string {
	paths := make([]string, len(r.paths))
	copy(paths, r.paths)
	return paths
}

// HeaderLines returns the number of header lines captured from the source.
// This can be lower than requested when the source is short.
func (r Result) HeaderLines() int { return r.headerLines }

// DataLines returns the number of data lines written across all outputs.
func (r Result) DataLines() int { return r.dataLines }
