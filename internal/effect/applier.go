package effect

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Norgate-AV/alreadyedge/internal/logger"
)

// Compositor is the set of native calls the applier issues against a window.
// Each method maps to a single OS call and reports its failure as an error.
type Compositor interface {
	IsWindow(hwnd uintptr) bool
	ExtendFrame(hwnd uintptr) error
	SetBackdrop(hwnd uintptr, backdrop Backdrop) error
	SetDarkMode(hwnd uintptr, enabled bool) error
	SetTranslucent(hwnd uintptr) error
	RefreshFrame(hwnd uintptr) error
	NotifyThemeChanged(hwnd uintptr) error
}

// ErrUnsupported marks a compositor step the running version of Windows does
// not implement, such as a system backdrop before build 22621. The applier
// logs these and carries on; they do not fail the apply.
var ErrUnsupported = errors.New("not supported by this version of Windows")

// Applier applies a Config to windows through a Compositor. Apart from
// remembering whether it has already warned about unsupported steps it holds
// no state between calls.
type Applier struct {
	log        logger.LoggerInterface
	compositor Compositor
	warned     atomic.Bool
}

// NewApplier creates an applier over the given compositor
func NewApplier(log logger.LoggerInterface, compositor Compositor) *Applier {
	return &Applier{
		log:        log,
		compositor: compositor,
	}
}

type step struct {
	name string
	call func() error
}

// Apply pushes cfg onto hwnd. The frame is extended first because the backdrop
// and blur attributes have no visible effect on an unextended frame. Every step
// is attempted; the result is true only if none of them failed. Steps that
// report ErrUnsupported do not count as failures.
func (a *Applier) Apply(hwnd uintptr, cfg Config) bool {
	if !a.compositor.IsWindow(hwnd) {
		a.log.Trace("Skipping apply, window no longer exists", slog.Uint64("hwnd", uint64(hwnd)))
		return false
	}

	steps := []step{
		{"extend frame", func() error { return a.compositor.ExtendFrame(hwnd) }},
		{"set backdrop", func() error { return a.compositor.SetBackdrop(hwnd, cfg.Backdrop) }},
		{"set dark mode", func() error { return a.compositor.SetDarkMode(hwnd, cfg.DarkMode) }},
		{"set translucent", func() error { return a.compositor.SetTranslucent(hwnd) }},
		{"refresh frame", func() error { return a.compositor.RefreshFrame(hwnd) }},
		{"theme changed", func() error { return a.compositor.NotifyThemeChanged(hwnd) }},
	}

	var errs []error
	for _, s := range steps {
		err := s.call()
		switch {
		case err == nil:
		case errors.Is(err, ErrUnsupported):
			a.unsupported(hwnd, s.name, err)
		default:
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		a.log.Debug("Effect not fully applied",
			slog.Uint64("hwnd", uint64(hwnd)),
			slog.String("effect", cfg.String()),
			slog.Any("error", err),
		)
		return false
	}

	a.log.Trace("Effect applied",
		slog.Uint64("hwnd", uint64(hwnd)),
		slog.String("effect", cfg.String()),
	)

	return true
}

// unsupported reports a skipped step. The first one is a warning; repeats
// for other windows or later applies are only logged at debug level.
func (a *Applier) unsupported(hwnd uintptr, step string, err error) {
	attrs := []any{
		slog.Uint64("hwnd", uint64(hwnd)),
		slog.String("step", step),
		slog.Any("error", err),
	}

	if a.warned.CompareAndSwap(false, true) {
		a.log.Warn("Skipping effect step this version of Windows does not support", attrs...)
		return
	}

	a.log.Debug("Skipping unsupported effect step", attrs...)
}
