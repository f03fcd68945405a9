// Package tracking fans task status changes out to reporters.
package tracking

import (
	"context"

	"github.com/helixml/csvsplit/domain/task"
)

// Reporter receives task status changes.
type Reporter interface {
	OnChange(ctx context.Context, status task.Status) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, status task.Status) error

// OnChange calls f.
func (f ReporterFunc) OnChange(ctx context.Context, status task.Status) error {
	return f(ctx, status)
}
