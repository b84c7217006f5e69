//go:build windows

package windows

import (
	"iter"

	"github.com/Norgate-AV/alreadyedge/internal/logger"
)

// Client provides methods for interacting with Windows APIs
// It composes specialized managers for different categories of functionality
type Client struct {
	log        logger.LoggerInterface
	Window     *windowManager
	Compositor *compositor
}

// NewClient creates a new Windows API client
func NewClient(log logger.LoggerInterface) *Client {
	return &Client{
		log:        log,
		Window:     newWindowManager(log),
		Compositor: newCompositor(log),
	}
}

// windowManager enumerates and inspects top-level windows. It satisfies
// the monitor's WindowSource and Liveness and the classifier's Inspector.
type windowManager struct {
	log logger.LoggerInterface
}

func newWindowManager(log logger.LoggerInterface) *windowManager {
	return &windowManager{log: log}
}

func (w *windowManager) Windows() iter.Seq[uintptr] {
	return Windows()
}

// IsAlive reports whether the window's owning thread can still be resolved
func (w *windowManager) IsAlive(hwnd uintptr) bool {
	_, _, err := GetWindowPid(hwnd)
	return err == nil
}

func (w *windowManager) ClassName(hwnd uintptr) (string, error) {
	return GetClassName(hwnd)
}

func (w *windowManager) ProcessID(hwnd uintptr) (uint32, error) {
	_, pid, err := GetWindowPid(hwnd)
	return pid, err
}

func (w *windowManager) ProcessName(pid uint32) (string, error) {
	return GetProcessName(pid)
}

// Describe gathers class and process details for a window. Fields that
// cannot be resolved are left empty.
func (w *windowManager) Describe(hwnd uintptr) WindowInfo {
	info := WindowInfo{Hwnd: hwnd}
	info.ClassName, _ = GetClassName(hwnd)

	if _, pid, err := GetWindowPid(hwnd); err == nil {
		info.Pid = pid
		info.Process, _ = GetProcessName(pid)
	}

	return info
}
