package cmd

import (
	"github.com/Norgate-AV/alreadyedge/internal/browser"
	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/interfaces"
	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/monitor"
	"github.com/Norgate-AV/alreadyedge/internal/settings"
)

// desktop bundles the platform services the commands drive
type desktop struct {
	Windows    interfaces.WindowSource
	Liveness   interfaces.Liveness
	Inspector  browser.Inspector
	Compositor effect.Compositor
	Startup    interfaces.StartupRegistrar

	// Describe formats a window for the list command
	Describe func(hwnd uintptr) string

	// Open starts an executable with the given arguments
	Open func(path string, args []string) error

	// HandleConsole registers fn for console close, logoff and shutdown.
	// fn must return only once cleanup is complete.
	HandleConsole func(fn func(reason string)) error
}

// newDesktop is replaced in tests
var newDesktop = openDesktop

// classifier returns an Edge classifier backed by the desktop's inspector
func (d *desktop) classifier(log logger.LoggerInterface) *browser.Classifier {
	return browser.NewClassifier(log, d.Inspector, browser.Edge)
}

// newMonitor wires the desktop, the settings store and the events into a
// stopped monitor
func (d *desktop) newMonitor(log logger.LoggerInterface, store interfaces.SettingsProvider, opts monitor.Options) *monitor.Monitor {
	return monitor.New(log, &monitor.Dependencies{
		Source:     d.Windows,
		Classifier: d.classifier(log),
		Applier:    effect.NewApplier(log, d.Compositor),
		Liveness:   d.Liveness,
		Settings:   store,
	}, opts)
}

// storeFor opens the settings store named by cfg
func storeFor(cfg *Config, log logger.LoggerInterface) *settings.Store {
	return settings.NewStore(log, cfg.SettingsPath)
}
