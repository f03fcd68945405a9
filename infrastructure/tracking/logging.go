package tracking

import (
	"context"
	"log/slog"

	"github.com/helixml/csvsplit/domain/task"
)

// LoggingReporter implements Reporter by logging status changes.
type LoggingReporter struct {
	logger *slog.Logger
}

// NewLoggingReporter creates a new LoggingReporter.
func NewLoggingReporter(logger *slog.Logger) *LoggingReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingReporter{
		logger: logger,
	}
}

// OnChange logs the task status change.
func (r *LoggingReporter) OnChange(ctx context.Context, status task.Status) error {
	state := status.State()
	attrs := []slog.Attr{
		slog.String("state", string(state)),
		slog.String("source", status.TrackableID()),
		slog.Int("files", status.Current()),
	}

	if state == task.ReportingStateFailed {
		attrs = append(attrs, slog.String("error", status.Error()))
		r.logger.LogAttrs(ctx, slog.LevelError, status.Operation().String(), attrs...)
		return nil
	}

	if status.Message() != "" {
		attrs = append(attrs, slog.String("message", status.Message()))
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, status.Operation().String(), attrs...)
	return nil
}
