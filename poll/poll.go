// Package poll runs a cancellable fixed-interval fetch loop per screen.
// Fixed interval, no backoff: a failed tick just tries again next tick,
// matching the server's cheap read endpoints.
package poll

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/botdeck/id"
	"github.com/rustyeddy/botdeck/logger"
)

// Snapshot is the presentable state of one poller: the last-known-good data
// (kept across transient failures so the screen never blanks), the last
// error if the most recent fetch failed, and when data last refreshed.
type Snapshot[T any] struct {
	Data    T
	HasData bool
	Err     error
	Updated time.Time
}

// Poller owns one repeating fetch. At most one fetch is in flight at a
// time: the next tick waits for the previous fetch (including its timeout)
// to resolve, and RefreshNow coalesces into an in-flight fetch instead of
// stacking a second one.
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    func(ctx context.Context) (T, error)
	log      *logger.Logger

	mu       sync.Mutex
	data     T
	hasData  bool
	lastErr  error
	updated  time.Time
	inflight bool
	stopped  bool
	cancel   context.CancelFunc
}

func New[T any](name string, interval time.Duration, fetch func(ctx context.Context) (T, error), log *logger.Logger) *Poller[T] {
	return &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		log:      log,
	}
}

// Start launches the loop: fetch, sleep, repeat until Stop or ctx
// cancellation. The sleep is interrupted immediately on cancellation.
func (p *Poller[T]) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.stopped = false
	p.cancel = cancel
	p.mu.Unlock()

	go func() {
		for {
			p.fetchOnce(ctx)
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.interval):
			}
		}
	}()
}

// Stop cancels the loop. An in-flight fetch may run to completion but its
// result is discarded; no state mutates after Stop.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	p.stopped = true
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// RefreshNow performs one fetch immediately, independent of the timer
// phase. It does not reset the timer, and if a fetch is already in flight
// the call coalesces into it rather than racing a duplicate.
func (p *Poller[T]) RefreshNow(ctx context.Context) {
	p.fetchOnce(ctx)
}

// State returns the current presentable snapshot.
func (p *Poller[T]) State() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot[T]{
		Data:    p.data,
		HasData: p.hasData,
		Err:     p.lastErr,
		Updated: p.updated,
	}
}

func (p *Poller[T]) fetchOnce(ctx context.Context) {
	p.mu.Lock()
	if p.inflight || p.stopped {
		p.mu.Unlock()
		return
	}
	p.inflight = true
	p.mu.Unlock()

	cycle := id.New()
	data, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inflight = false

	// A result that lands after Stop (or cancellation) is discarded.
	if p.stopped || ctx.Err() != nil {
		return
	}

	if err != nil {
		// Keep the last-known-good data: stale-but-present beats blank.
		p.lastErr = err
		p.log.WithFields(logrus.Fields{"component": "poll", "request_id": cycle}).WithError(err).Debug(p.name + " fetch failed")
		return
	}
	p.data = data
	p.hasData = true
	p.lastErr = nil
	p.updated = time.Now()
}
