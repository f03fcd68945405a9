package split

import "time"

// RunState is the final state of a recorded run.
type RunState string

// RunState values.
const (
	RunStateCompleted RunState = "completed"
	RunStateFailed    RunState = "failed"
)

// Run is a historical record of one split invocation.
type Run struct {
	id          int64
	source      string
	numLines    int
	headerLines int
	files       int
	dataLines   int
	state       RunState
	errorText   string
	startedAt   time.Time
	finishedAt  time.Time
}

// NewCompletedRun records a successful split.
func NewCompletedRun(req Request, result Result, startedAt, finishedAt time.Time) Run {
	return Run{
		source:      req.Source(),
		numLines:    req.NumLines(),
		headerLines: req.HeaderLines(),
		files:       result.Files(),
		dataLines:   result.DataLines(),
		state:       RunStateCompleted,
		startedAt:   startedAt,
		finishedAt:  finishedAt,
	}
}

// NewFailedRun records a failed split.
func NewFailedRun(req Request, err error, startedAt, finishedAt time.Time) Run {
	return Run{
		source:      req.Source(),
		numLines:    req.NumLines(),
		headerLines: req.HeaderLines(),
		state:       RunStateFailed,
		errorText:   err.Error(),
		startedAt:   startedAt,
		finishedAt:  finishedAt,
	}
}

// ReconstructRun rebuilds a Run from persistence.
func ReconstructRun(
	id int64,
	source string,
	numLines, headerLines, files, dataLines int,
	state RunState,
	errorText string,
	startedAt, finishedAt time.Time,
) Run {
	return Run{
		id:          id,
		source:      source,
		numLines:    numLines,
		headerLines: headerLines,
		files:       files,
		dataLines:   dataLines,
		state:       state,
		errorText:   errorText,
		startedAt:   startedAt,
		finishedAt:  finishedAt,
	}
}

// ID returns the run ID (zero until saved).
func (r Run) ID() int64 { return r.id }

// Source returns the source path.
func (r Run) Source() string { return r.source }

// NumLines returns the requested chunk size.
func (r Run) NumLines() int { return r.numLines }

// HeaderLines returns the requested header line count.
func (r Run) HeaderLines() int { return r.headerLines }

// Files returns the number of files produced.
func (r Run) Files() int { return r.files }

// DataLines returns the number of data lines written.
func (r Run) DataLines() int { return r.dataLines }

// State returns the final state.
func (r Run) State() RunState { return r.state }

// Error returns the error message of a failed run.
func (r Run) Error() string { return r.errorText }

// StartedAt returns when the run started.
func (r Run) StartedAt() time.Time { return r.startedAt }

// FinishedAt returns when the run finished.
func (r Run) FinishedAt() time.Time { return r.finishedAt }

// Duration returns the wall time of the run.
func (r Run) Duration() time.Duration { return r.finishedAt.Sub(r.startedAt) }

// WithID returns a copy of the run with the given ID.
func (r Run) WithID(id int64) Run {
	r.id = id
	return r
}
