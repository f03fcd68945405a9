package split

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_Defaults(t *testing.T) {
	r := NewRequest("a.csv", 5)

	assert.Equal(t, "a.csv", r.Source())
	assert.Equal(t, 5, r.NumLines())
	assert.Equal(t, 0, r.HeaderLines())
	assert.NoError(t, r.Validate())
}

func TestNewRequest_HeaderForms(t *testing.T) {
	assert.Equal(t, 1, NewRequest("a.csv", 1, WithHeader(true)).HeaderLines())
	assert.Equal(t, 0, NewRequest("a.csv", 1, WithHeader(false)).HeaderLines())
	assert.Equal(t, 3, NewRequest("a.csv", 1, WithHeaderLines(3)).HeaderLines())

	// Later options win.
	r := NewRequest("a.csv", 1, WithHeaderLines(4), WithHeader(false))
	assert.Equal(t, 0, r.HeaderLines())
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"zero lines", NewRequest("a.csv", 0)},
		{"negative lines", NewRequest("a.csv", -1)},
		{"negative header", NewRequest("a.csv", 1, WithHeaderLines(-2))},
		{"missing source", NewRequest("", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestIOError(t *testing.T) {
	err := NewIOError("open", "a.csv", os.ErrNotExist)

	assert.Equal(t, "open a.csv: file does not exist", err.Error())
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	wrapped := fmt.Errorf("split: %w", err)
	assert.True(t, errors.Is(wrapped, ErrIO))

	var ioErr *IOError
	require.True(t, errors.As(wrapped, &ioErr))
	assert.Equal(t, "open", ioErr.Op)
}

func TestResult_CopiesPaths(t *testing.T) {
	paths := []string{"a-1.csv", "a-2.csv"}
	r := NewResult(paths, 1, 3)
	paths[0] = "mutated"

	assert.Equal(t, 2, r.Files())
	assert.Equal(t, []string{"a-1.csv", "a-2.csv"}, r.Paths())
	assert.Equal(t, 1, r.HeaderLines())
	assert.Equal(t, 3, r.DataLines())
}
