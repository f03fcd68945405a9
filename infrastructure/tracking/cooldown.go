package tracking

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/helixml/csvsplit/domain/task"
)

var (
	_ Reporter  = (*Cooldown)(nil)
	_ io.Closer = (*Cooldown)(nil)
)

// Cooldown wraps a Reporter and delivers at most one in-progress update per
// status ID per interval. Started and terminal states pass straight through;
// a terminal state discards any pending in-progress update for its ID. The
// newest throttled update is delivered when its interval elapses or on Close.
type Cooldown struct {
	inner    Reporter
	interval time.Duration

	mu      sync.Mutex
	entries map[string]*cooldownEntry
}

type cooldownEntry struct {
	lastDelivery time.Time
	pending      *task.Status
	timer        *time.Timer
}

// NewCooldown creates a Cooldown in front of inner.
func NewCooldown(inner Reporter, interval time.Duration) *Cooldown {
	return &Cooldown{
		inner:    inner,
		interval: interval,
		entries:  make(map[string]*cooldownEntry),
	}
}

// OnChange receives a status update.
func (c *Cooldown) OnChange(ctx context.Context, status task.Status) error {
	if status.State() != task.ReportingStateInProgress {
		c.forget(status.ID())
		return c.inner.OnChange(ctx, status)
	}

	c.mu.Lock()
	entry, ok := c.entries[status.ID()]
	if !ok {
		entry = &cooldownEntry{}
		c.entries[status.ID()] = entry
	}

	wait := c.interval - time.Since(entry.lastDelivery)
	if wait <= 0 {
		entry.stop()
		entry.lastDelivery = time.Now()
		c.mu.Unlock()
		return c.inner.OnChange(ctx, status)
	}

	pending := status
	entry.pending = &pending
	if entry.timer == nil {
		id := status.ID()
		entry.timer = time.AfterFunc(wait, func() { c.flush(id) })
	}
	c.mu.Unlock()
	return nil
}

// Close delivers every pending update and stops all timers.
func (c *Cooldown) Close() error {
	c.mu.Lock()
	entries := c.entries
	c.entries = make(map[string]*cooldownEntry)
	c.mu.Unlock()

	for _, entry := range entries {
		pending := entry.pending
		entry.stop()
		if pending != nil {
			_ = c.inner.OnChange(context.Background(), *pending)
		}
	}
	return nil
}

func (c *Cooldown) forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[id]; ok {
		entry.stop()
		delete(c.entries, id)
	}
}

func (c *Cooldown) flush(id string) {
	c.mu.Lock()
	entry, ok := c.entries[id]
	if !ok {
		c.mu.Unlock()
		return
	}
	entry.timer = nil
	pending := entry.pending
	entry.pending = nil
	if pending == nil {
		c.mu.Unlock()
		return
	}
	entry.lastDelivery = time.Now()
	c.mu.Unlock()

	_ = c.inner.OnChange(context.Background(), *pending)
}

func (e *cooldownEntry) stop() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.pending = nil
}
