// Package interfaces defines core interfaces for dependency injection and testing.
package interfaces

import (
	"iter"

	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/settings"
)

// WindowSource enumerates top-level windows. Each iteration performs a fresh
// enumeration; a failed enumeration yields nothing.
type WindowSource interface {
	Windows() iter.Seq[uintptr]
}

// Classifier decides whether a window belongs to the target browser
type Classifier interface {
	IsTarget(hwnd uintptr) bool
}

// EffectApplier pushes an effect onto a single window
type EffectApplier interface {
	Apply(hwnd uintptr, cfg effect.Config) bool
}

// Liveness reports whether a window's owning thread can still be resolved
type Liveness interface {
	IsAlive(hwnd uintptr) bool
}

// SettingsProvider supplies the current settings. Callers must not cache the
// result across ticks.
type SettingsProvider interface {
	Current() settings.Settings
}

// StartupRegistrar manages the "start with Windows" entry
type StartupRegistrar interface {
	Enabled() (bool, error)
	Enable(command string) error
	Disable() error
}
