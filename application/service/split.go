// Package service holds the application services that orchestrate domain
// operations for the library client and its transports.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/helixml/csvsplit/domain/split"
	"github.com/helixml/csvsplit/domain/task"
	"github.com/helixml/csvsplit/infrastructure/chunking"
	"github.com/helixml/csvsplit/infrastructure/tracking"
)

// Split runs file splits, reports their progress and records their history.
type Split struct {
	splitter  *chunking.Splitter
	runs      split.RunStore
	reporters []tracking.Reporter
	closed    *atomic.Bool
	logger    *slog.Logger
}

// NewSplit creates a new Split service. runs may be nil to disable history.
func NewSplit(
	splitter *chunking.Splitter,
	runs split.RunStore,
	reporters []tracking.Reporter,
	closed *atomic.Bool,
	logger *slog.Logger,
) *Split {
	if logger == nil {
		logger = slog.Default()
	}
	return &Split{
		splitter:  splitter,
		runs:      runs,
		reporters: reporters,
		closed:    closed,
		logger:    logger,
	}
}

// HistoryEnabled reports whether runs are being recorded.
func (s *Split) HistoryEnabled() bool {
	return s.runs != nil
}

// Split splits req.Source into numbered files beside it.
func (s *Split) Split(ctx context.Context, req split.Request) (split.Result, error) {
	if s.isClosed() {
		return split.Result{}, ErrClientClosed
	}

	tracker := tracking.TrackerForOperation(task.OperationSplit, s.logger, task.TrackableTypeSource, req.Source())
	for _, reporter := range s.reporters {
		tracker.Subscribe(reporter)
	}
	tracker.Notify(ctx)

	startedAt := time.Now().UTC()
	result, err := s.splitter.Split(ctx, req, func(ctx context.Context, index int, path string, dataLines int) {
		tracker.SetCurrent(ctx, index, fmt.Sprintf("wrote %s (%d data lines)", path, dataLines))
	})
	finishedAt := time.Now().UTC()

	if err != nil {
		tracker.Fail(ctx, err.Error())
		s.record(ctx, split.NewFailedRun(req, err, startedAt, finishedAt))
		s.logger.Error("split failed",
			slog.String("source", req.Source()),
			slog.Int("num_lines", req.NumLines()),
			slog.String("error", err.Error()),
		)
		return split.Result{}, err
	}

	tracker.Complete(ctx)
	s.record(ctx, split.NewCompletedRun(req, result, startedAt, finishedAt))
	s.logger.Info("split completed",
		slog.String("source", req.Source()),
		slog.Int("files", result.Files()),
		slog.Int("header_lines", result.HeaderLines()),
		slog.Int("data_lines", result.DataLines()),
		slog.Duration("duration", finishedAt.Sub(startedAt)),
	)
	return result, nil
}

// LastNumLines returns the chunk size of the most recent successful run.
func (s *Split) LastNumLines(ctx context.Context) (int, bool) {
	if s.runs == nil || s.isClosed() {
		return 0, false
	}
	run, found, err := s.runs.LatestCompleted(ctx)
	if err != nil {
		s.logger.Warn("failed to load last run", slog.String("error", err.Error()))
		return 0, false
	}
	if !found {
		return 0, false
	}
	return run.NumLines(), true
}

// Runs lists up to limit recorded runs, newest first.
func (s *Split) Runs(ctx context.Context, limit int) ([]split.Run, error) {
	if s.isClosed() {
		return nil, ErrClientClosed
	}
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	runs, err := s.runs.Find(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func (s *Split) record(ctx context.Context, run split.Run) {
	if s.runs == nil {
		return
	}
	if _, err := s.runs.Save(ctx, run); err != nil {
		s.logger.Warn("failed to record run",
			slog.String("source", run.Source()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Split) isClosed() bool {
	return s.closed != nil && s.closed.Load()
}
