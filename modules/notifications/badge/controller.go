// Package badge implements the client-side unread indicator: a polling state
// machine that shows a count only when unread notices arrived after the
// reader last opened the panel.
package badge

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type State string

const (
	// StateIdle means nothing to show: no unread notices, or none newer
	// than the viewed watermark.
	StateIdle State = "idle"
	// StateAlerting means the badge is visible with a positive count.
	StateAlerting State = "alerting"
	// StateCleared means the panel was just opened: the count is forced to
	// zero until the next poll observes newer notices.
	StateCleared State = "cleared"
)

// CountFetcher returns the current unread count for the reader.
type CountFetcher interface {
	UnreadCount(ctx context.Context) (int64, error)
}

// WatermarkStore persists the last time the reader opened the panel.
// Last write wins, so concurrent readers of the same account converge.
type WatermarkStore interface {
	LastViewed() (time.Time, error)
	SetLastViewed(t time.Time) error
}

type Snapshot struct {
	State State
	Count int64
}

// Controller drives the badge. A single goroutine polls on a fixed interval;
// Wake forces an immediate poll and Open clears the badge without waiting
// for one.
type Controller struct {
	fetcher  CountFetcher
	store    WatermarkStore
	interval time.Duration
	logger   *logrus.Logger

	mu    sync.Mutex
	state State
	count int64

	wake chan struct{}
}

func NewController(fetcher CountFetcher, store WatermarkStore, interval time.Duration, logger *logrus.Logger) *Controller {
	return &Controller{
		fetcher:  fetcher,
		store:    store,
		interval: interval,
		logger:   logger,
		state:    StateIdle,
		wake:     make(chan struct{}, 1),
	}
}

// Run polls until the context is cancelled. It performs one poll immediately
// so the badge is correct before the first tick.
func (c *Controller) Run(ctx context.Context) {
	c.poll(ctx)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.poll(ctx)
		case <-c.wake:
			c.poll(ctx)
		}
	}
}

// Wake requests an immediate poll. Coalesces when one is already pending.
func (c *Controller) Wake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Open records that the reader opened the panel: the watermark advances to
// now, the displayed count drops to zero immediately, and the controller
// moves to Cleared without waiting for the next poll.
func (c *Controller) Open() {
	now := time.Now()
	if err := c.store.SetLastViewed(now); err != nil && c.logger != nil {
		c.logger.WithError(err).Warn("failed to persist viewed watermark")
	}
	c.mu.Lock()
	c.state = StateCleared
	c.count = 0
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, Count: c.count}
}

// poll fetches the count and recomputes the state. A fetch or store error
// degrades to no badge rather than surfacing to the reader.
func (c *Controller) poll(ctx context.Context) {
	count, err := c.fetcher.UnreadCount(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("unread count fetch failed")
		}
		c.transition(StateIdle, 0)
		return
	}
	lastViewed, err := c.store.LastViewed()
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).Warn("viewed watermark read failed")
		}
		c.transition(StateIdle, 0)
		return
	}
	if count > 0 && time.Now().After(lastViewed) {
		c.transition(StateAlerting, count)
		return
	}
	c.transition(StateIdle, 0)
}

func (c *Controller) transition(state State, count int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.count = count
}
