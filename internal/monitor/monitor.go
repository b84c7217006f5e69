// Package monitor periodically finds browser windows and applies the
// configured effect to the ones it has not handled yet.
package monitor

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/interfaces"
	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/timeouts"
)

// State is the monitor lifecycle state
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}

	return "stopped"
}

// Status messages emitted through Events.OnStatus
const (
	StatusStarted = "Monitoring started"
	StatusStopped = "Monitoring stopped"
)

// AppliedStatus is the status message for a window that received the effect
func AppliedStatus(hwnd uintptr) string {
	return fmt.Sprintf("Applied to window: %X", hwnd)
}

// Events are the owner's notification hooks. They run synchronously on the
// goroutine that produced them (the ticker goroutine for per-window status)
// and never while the monitor holds its lock. Nil hooks are skipped.
type Events struct {
	OnStatus  func(msg string)
	OnApplied func(count int)
}

// Dependencies holds the collaborators the monitor drives
type Dependencies struct {
	Source     interfaces.WindowSource
	Classifier interfaces.Classifier
	Applier    interfaces.EffectApplier
	Liveness   interfaces.Liveness
	Settings   interfaces.SettingsProvider
}

// Options tunes the monitor
type Options struct {
	Interval time.Duration // default timeouts.ScanInterval
	Events   Events
}

// Monitor owns the processed-window set and the tick loop. A single mutex
// serialises ticks, ApplyToAll and the Start/Stop transitions, so the set
// is never touched concurrently.
type Monitor struct {
	log      logger.LoggerInterface
	deps     Dependencies
	interval time.Duration
	events   Events

	mu        sync.Mutex
	state     State
	processed map[uintptr]struct{}
	stop      chan struct{}
	done      chan struct{}
}

// New creates a stopped monitor
func New(log logger.LoggerInterface, deps *Dependencies, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = timeouts.ScanInterval
	}

	return &Monitor{
		log:       log,
		deps:      *deps,
		interval:  opts.Interval,
		events:    opts.Events,
		state:     Stopped,
		processed: make(map[uintptr]struct{}),
	}
}

// Interval returns the tick period
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// State returns the current lifecycle state
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Running reports whether the monitor is ticking
func (m *Monitor) Running() bool {
	return m.State() == Running
}

// Processed returns a sorted snapshot of the handles already handled in the
// current running period
func (m *Monitor) Processed() []uintptr {
	m.mu.Lock()
	defer m.mu.Unlock()

	handles := make([]uintptr, 0, len(m.processed))
	for hwnd := range m.processed {
		handles = append(handles, hwnd)
	}

	slices.Sort(handles)
	return handles
}

// Start begins ticking. The first tick runs immediately, then one every
// interval. Calling Start while running does nothing.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.state == Running {
		m.mu.Unlock()
		return
	}

	m.state = Running
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	stop, done := m.stop, m.done
	m.mu.Unlock()

	m.log.Debug("Window monitor started", slog.Duration("interval", m.interval))
	m.emitStatus(StatusStarted)

	go m.run(stop, done)
}

// Stop disarms the ticker and forgets every processed window, so a later
// Start treats all windows as new. A tick already in progress finishes
// before the set is cleared. Calling Stop while stopped does nothing.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.state == Stopped {
		m.mu.Unlock()
		return
	}

	m.state = Stopped
	close(m.stop)
	clear(m.processed)
	m.mu.Unlock()

	m.log.Debug("Window monitor stopped")
	m.emitStatus(StatusStopped)
}

// Close stops the monitor and waits for the ticker goroutine to exit. It is
// safe to call more than once but must not be called from an event hook.
func (m *Monitor) Close() {
	m.Stop()

	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (m *Monitor) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		for _, msg := range m.tick(stop) {
			m.emitStatus(msg)
		}

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// Tick runs one scan synchronously. It is exported for owners that drive the
// monitor themselves; it does nothing unless the monitor is running.
func (m *Monitor) Tick() {
	m.mu.Lock()
	stop := m.stop
	m.mu.Unlock()

	if stop == nil {
		return
	}

	for _, msg := range m.tick(stop) {
		m.emitStatus(msg)
	}
}

// tick performs one scan and returns the status messages to emit once the
// lock is released
func (m *Monitor) tick(stop <-chan struct{}) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A Stop that took the lock first has already cleared the set
	select {
	case <-stop:
		return nil
	default:
	}

	current := m.deps.Settings.Current()
	if !current.AutoApply {
		m.log.Trace("Auto-apply disabled, skipping scan")
		return nil
	}

	var messages []string
	for hwnd := range m.deps.Source.Windows() {
		if !m.deps.Classifier.IsTarget(hwnd) {
			continue
		}

		if _, seen := m.processed[hwnd]; seen {
			continue
		}

		if !m.deps.Applier.Apply(hwnd, current.Effect) {
			// Left out of the set so the next tick retries it
			continue
		}

		m.processed[hwnd] = struct{}{}
		m.log.Debug("Effect applied to new window",
			slog.Uint64("hwnd", uint64(hwnd)),
			slog.String("effect", current.Effect.String()),
		)
		messages = append(messages, AppliedStatus(hwnd))
	}

	m.prune()
	return messages
}

// prune drops handles whose window can no longer be resolved
func (m *Monitor) prune() {
	for hwnd := range m.processed {
		if m.deps.Liveness.IsAlive(hwnd) {
			continue
		}

		delete(m.processed, hwnd)
		m.log.Trace("Forgetting closed window", slog.Uint64("hwnd", uint64(hwnd)))
	}
}

// ApplyToAll applies cfg to every qualifying window present right now,
// including ones already processed, and returns how many succeeded. The
// processed set is left untouched.
func (m *Monitor) ApplyToAll(cfg effect.Config) int {
	m.mu.Lock()
	count := 0
	for hwnd := range m.deps.Source.Windows() {
		if !m.deps.Classifier.IsTarget(hwnd) {
			continue
		}

		if m.deps.Applier.Apply(hwnd, cfg) {
			count++
		}
	}
	m.mu.Unlock()

	m.log.Debug("Applied effect to all windows",
		slog.Int("count", count),
		slog.String("effect", cfg.String()),
	)

	if m.events.OnApplied != nil {
		m.events.OnApplied(count)
	}

	return count
}

func (m *Monitor) emitStatus(msg string) {
	if m.events.OnStatus != nil {
		m.events.OnStatus(msg)
	}
}
