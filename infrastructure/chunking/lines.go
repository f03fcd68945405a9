// Package chunking splits line-oriented text files into fixed-size chunks.
package chunking

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const readBufferSize = 64 * 1024

// Lines is a lazy, finite, forward-only sequence of text lines read from an
// io.Reader. Lines have no length limit. Once exhausted or failed it stays that way.
type Lines struct {
	reader *bufio.Reader
	err    error
	done   bool
	count  int
}

// NewLines creates a line sequence over r.
func NewLines(r io.Reader) *Lines {
	return &Lines{
		reader: bufio.NewReaderSize(r, readBufferSize),
	}
}

// Next returns the next line without its terminator ("\n" or "\r\n").
// A final line without a terminator is still returned. ok is false once the
// sequence is exhausted or a read fails; check Err to tell them apart.
func (l *Lines) Next() (line string, ok bool) {
	if l.done {
		return "", false
	}

	raw, err := l.reader.ReadString('\n')
	if err != nil {
		l.done = true
		if !errors.Is(err, io.EOF) {
			l.err = err
			return "", false
		}
		if raw == "" {
			return "", false
		}
	}

	l.count++
	return trimTerminator(raw), true
}

// Err returns the first non-EOF read error.
func (l *Lines) Err() error {
	return l.err
}

// Count returns the number of lines returned so far.
func (l *Lines) Count() int {
	return l.count
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
