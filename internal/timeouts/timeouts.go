// Package timeouts defines intervals and timeouts for window monitoring.
package timeouts

import "time"

const (
	// ScanInterval is the period between monitor ticks. Newly opened browser
	// windows pick up the effect within one interval, and settings edits are
	// seen on the next tick.
	ScanInterval = 2 * time.Second

	// MinScanInterval is the shortest interval accepted from flags or the
	// environment. Ticks run synchronously and must finish inside the period.
	MinScanInterval = 250 * time.Millisecond

	// ThemeMessageTimeout bounds how long WM_THEMECHANGED may block on a
	// window. A hung browser frame must not stall the whole tick.
	ThemeMessageTimeout = 1 * time.Second

	// ShutdownGracePeriod is how long the run command waits for an in-flight
	// tick to finish after an interrupt before exiting anyway.
	ShutdownGracePeriod = 5 * time.Second
)
