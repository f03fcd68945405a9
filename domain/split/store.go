package split

import "context"

// RunStore persists split run history.
type RunStore interface {
	Save(ctx context.Context, run Run) (Run, error)
	Find(ctx context.Context, limit int) ([]Run, error)
	LatestCompleted(ctx context.Context) (Run, bool, error)
}
