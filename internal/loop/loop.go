// Package loop drives a game session: every tick it lets the acquirer hand
// out telescopes, observes one random object and reports the result, then
// waits a fixed interval before the next tick.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deep-field/internal/astro"
	"github.com/vovakirdan/deep-field/internal/core"
	"github.com/vovakirdan/deep-field/internal/game"
)

// DefaultInterval is the delay between ticks when none is configured.
const DefaultInterval = time.Second

var (
	// ErrAlreadyStarted is returned by Start when the loop has left Idle.
	ErrAlreadyStarted = errors.New("loop: already started")
	// ErrNotRunning is returned by Tick outside the Running state.
	ErrNotRunning = errors.New("loop: not running")
)

// Status is the loop's lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopped
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// TickReport describes what one tick changed.
type TickReport struct {
	Generation       uint64
	Acquired         []astro.Telescope
	Observation      *game.Observation // nil when nothing was observed
	NothingToObserve bool
	Snapshot         game.Snapshot
}

// Reporter receives a report after every tick.
type Reporter interface {
	Report(TickReport)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(TickReport)

// Report calls f(r).
func (f ReporterFunc) Report(r TickReport) {
	f(r)
}

// Engine applies the observation rules on each tick. *game.Engine
// satisfies it.
type Engine interface {
	game.Acquirer
	ObserveRandomObject(s *game.State) (game.Observation, error)
	ObserveAt(s *game.State, p core.Point) (game.Observation, error)
}

var _ Engine = (*game.Engine)(nil)

// Options configures a Loop. Zero values select defaults.
type Options struct {
	Interval  time.Duration
	Scheduler Scheduler
	Acquirer  game.Acquirer // Defaults to the engine's no-op
	Logger    *log.Logger
	Reporters []Reporter
}

// Loop owns a game state and advances it tick by tick.
type Loop struct {
	state     *game.State
	engine    Engine
	acquirer  game.Acquirer
	interval  time.Duration
	scheduler Scheduler
	logger    *log.Logger
	reporters []Reporter

	mu         sync.Mutex
	status     Status
	generation uint64
	stop       chan struct{}
	stopOnce   sync.Once
}

// New creates an idle loop for state.
func New(state *game.State, engine Engine, opts Options) *Loop {
	l := &Loop{
		state:     state,
		engine:    engine,
		acquirer:  opts.Acquirer,
		interval:  opts.Interval,
		scheduler: opts.Scheduler,
		logger:    opts.Logger,
		reporters: opts.Reporters,
		stop:      make(chan struct{}),
	}
	if l.acquirer == nil {
		l.acquirer = engine
	}
	if l.interval <= 0 {
		l.interval = DefaultInterval
	}
	if l.scheduler == nil {
		l.scheduler = RealScheduler{}
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	return l
}

// AddReporter registers r for subsequent ticks.
func (l *Loop) AddReporter(r Reporter) {
	l.reporters = append(l.reporters, r)
}

// Status returns the current lifecycle state.
func (l *Loop) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Generation returns the number of ticks run so far.
func (l *Loop) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Snapshot returns a copy of the owned state.
func (l *Loop) Snapshot() game.Snapshot {
	return l.state.Snapshot()
}

// Interval returns the delay between ticks.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Start moves the loop from Idle to Running.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.status != StatusIdle {
		return ErrAlreadyStarted
	}
	l.status = StatusRunning
	l.logger.Debug("loop started", "interval", l.interval)
	return nil
}

// Stop moves the loop to Stopped and wakes a blocked Run. It is safe to call
// from any goroutine and more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.status != StatusStopped {
		l.status = StatusStopped
		l.logger.Debug("loop stopped", "generation", l.generation)
	}
}

// Tick runs one mutation cycle: acquire telescopes, then observe one random
// object. Running out of observable objects is reported, not returned.
func (l *Loop) Tick(ctx context.Context) (TickReport, error) {
	if err := ctx.Err(); err != nil {
		return TickReport{}, err
	}

	l.mu.Lock()
	if l.status != StatusRunning {
		l.mu.Unlock()
		return TickReport{}, ErrNotRunning
	}
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	report := TickReport{Generation: gen}
	report.Acquired = l.acquirer.AcquireTelescopes(l.state, gen)
	for _, t := range report.Acquired {
		l.logger.Info("telescope acquired", "telescope", t.Key, "power", t.MaxPower)
	}

	obs, err := l.engine.ObserveRandomObject(l.state)
	switch {
	case errors.Is(err, game.ErrNothingToObserve):
		report.NothingToObserve = true
		l.logger.Debug("nothing to observe", "generation", gen, "power", l.state.MaxPower())
	case err != nil:
		l.logger.Error("observation rejected", "generation", gen, "error", err)
		return report, fmt.Errorf("loop: tick %d: %w", gen, err)
	default:
		report.Observation = &obs
	}

	report.Snapshot = l.state.Snapshot()
	for _, r := range l.reporters {
		r.Report(report)
	}
	return report, nil
}

// Run starts the loop if it is idle and ticks until ctx is done or Stop is
// called. It returns ctx.Err() on cancellation, nil after Stop, or the first
// error a tick returns.
func (l *Loop) Run(ctx context.Context) error {
	if l.Status() == StatusIdle {
		if err := l.Start(); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.stop:
			return nil
		default:
		}

		if _, err := l.Tick(ctx); err != nil {
			if errors.Is(err, ErrNotRunning) {
				return nil
			}
			l.Stop()
			return err
		}

		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-l.scheduler.After(l.interval):
		}
	}
}
