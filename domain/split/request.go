// Package split holds the domain types for splitting a text file into
// fixed-size chunks with a repeated header block.
package split

import "fmt"

// Request describes one split operation.
type Request struct {
	source      string
	numLines    int
	headerLines int
}

// RequestOption configures a Request.
type RequestOption func(*Request)

// WithHeaderLines preserves the first n source lines at the top of every output.
func WithHeaderLines(n int) RequestOption {
	return func(r *Request) { r.headerLines = n }
}

// WithHeader is the boolean form of WithHeaderLines: true keeps one header line.
func WithHeader(header bool) RequestOption {
	return func(r *Request) {
		if header {
			r.headerLines = 1
			return
		}
		r.headerLines = 0
	}
}

// NewRequest creates a Request. The request is not validated until Validate is called.
func NewRequest(source string, numLines int, opts ...RequestOption) Request {
	r := Request{
		source:   source,
		numLines: numLines,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Source returns the path of the file to split.
func (r Request) Source() string { return r.source }

// NumLines returns the maximum number of data lines per output file.
func (r Request) NumLines() int { return r.numLines }

// HeaderLines returns the number of leading lines repeated in every output.
func (r Request) HeaderLines() int { return r.headerLines }

// Validate checks the request without touching the filesystem.
func (r Request) Validate() error {
	if r.numLines < 1 {
		return fmt.Errorf("%w: num lines cannot be %d", ErrInvalidArgument, r.numLines)
	}
	if r.headerLines < 0 {
		return fmt.Errorf("%w: header lines cannot be negative", ErrInvalidArgument)
	}
	if r.source == "" {
		return fmt.Errorf("%w: source path is required", ErrInvalidArgument)
	}
	return nil
}
