//go:build integration && windows

package integration

import (
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/alreadyedge/internal/browser"
	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/monitor"
	"github.com/Norgate-AV/alreadyedge/internal/settings"
	"github.com/Norgate-AV/alreadyedge/internal/timeouts"
	"github.com/Norgate-AV/alreadyedge/internal/windows"
)

// TestIntegration_ClassifyDesktop checks the classifier against the live desktop
func TestIntegration_ClassifyDesktop(t *testing.T) {
	log := newTestLogger(t)
	client := windows.NewClient(log)
	classifier := browser.NewClassifier(log, client.Window, browser.Edge)

	var taskbar uintptr
	for hwnd := range client.Window.Windows() {
		if name, _ := client.Window.ClassName(hwnd); name == "Shell_TrayWnd" {
			taskbar = hwnd
			break
		}
	}

	if taskbar == 0 {
		t.Skip("No taskbar window found (not an interactive session)")
	}

	assert.False(t, classifier.IsTarget(taskbar), "The taskbar is not an Edge window")
}

// TestIntegration_ApplyToEdge applies an effect to open Edge windows
func TestIntegration_ApplyToEdge(t *testing.T) {
	log := newTestLogger(t)
	client := windows.NewClient(log)
	edgeWindows := findEdgeWindows(t, log, client)

	applier := effect.NewApplier(log, client.Compositor)
	for _, hwnd := range edgeWindows {
		t.Logf("Applying to %s", client.Window.Describe(hwnd))
		assert.True(t, applier.Apply(hwnd, effect.DefaultConfig()), "Apply should succeed for %X", hwnd)
	}

	assert.False(t, applier.Apply(0, effect.DefaultConfig()), "Apply should fail for a null handle")
}

// TestIntegration_MonitorProcessesEdge runs the monitor against the live desktop
func TestIntegration_MonitorProcessesEdge(t *testing.T) {
	log := newTestLogger(t)
	client := windows.NewClient(log)
	edgeWindows := findEdgeWindows(t, log, client)

	store := settings.NewStore(log, filepath.Join(t.TempDir(), "settings.yaml"))

	m := monitor.New(log, &monitor.Dependencies{
		Source:     client.Window,
		Classifier: browser.NewClassifier(log, client.Window, browser.Edge),
		Applier:    effect.NewApplier(log, client.Compositor),
		Liveness:   client.Window,
		Settings:   store,
	}, monitor.Options{
		Interval: timeouts.MinScanInterval,
	})
	defer m.Close()

	m.Start()

	require.Eventually(t, func() bool {
		processed := m.Processed()
		for _, hwnd := range edgeWindows {
			if !slices.Contains(processed, hwnd) {
				return false
			}
		}
		return true
	}, 10*time.Second, 100*time.Millisecond, "Every Edge window should be processed")

	m.Stop()
	assert.Empty(t, m.Processed(), "Stop should clear the processed set")

	assert.Equal(t, len(edgeWindows), m.ApplyToAll(effect.Config{Backdrop: effect.BackdropMica, DarkMode: true}))
}

func newTestLogger(t *testing.T) logger.LoggerInterface {
	t.Helper()

	log, err := logger.NewLogger(logger.LoggerOptions{Verbose: testing.Verbose(), LogDir: t.TempDir()})
	require.NoError(t, err, "Should create logger")
	t.Cleanup(log.Close)

	return log
}

// findEdgeWindows returns the open Edge windows, skipping the test when there are none
func findEdgeWindows(t *testing.T, log logger.LoggerInterface, client *windows.Client) []uintptr {
	t.Helper()

	classifier := browser.NewClassifier(log, client.Window, browser.Edge)

	var found []uintptr
	for hwnd := range client.Window.Windows() {
		if classifier.IsTarget(hwnd) {
			found = append(found, hwnd)
		}
	}

	if len(found) == 0 {
		t.Skip("No Microsoft Edge windows are open")
	}

	return found
}
