//go:build windows

package windows

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/windows"
)

// Console control event types
const (
	CTRL_C_EVENT        = 0
	CTRL_BREAK_EVENT    = 1
	CTRL_CLOSE_EVENT    = 2
	CTRL_LOGOFF_EVENT   = 5
	CTRL_SHUTDOWN_EVENT = 6
)

var ctrlTypeNames = map[uint32]string{
	CTRL_C_EVENT:        "CTRL_C",
	CTRL_BREAK_EVENT:    "CTRL_BREAK",
	CTRL_CLOSE_EVENT:    "CTRL_CLOSE",
	CTRL_LOGOFF_EVENT:   "CTRL_LOGOFF",
	CTRL_SHUTDOWN_EVENT: "CTRL_SHUTDOWN",
}

// ConsoleCtrlHandler handles a console control event. A non-zero return
// marks the event handled. Windows terminates the process once a close,
// logoff or shutdown handler returns.
type ConsoleCtrlHandler func(ctrlType uint32) uintptr

var (
	consoleHandler  atomic.Pointer[ConsoleCtrlHandler]
	consoleCallback uintptr
	registerOnce    sync.Once
	registerErr     error
)

// SetConsoleCtrlHandler installs handler, replacing any earlier one. The
// native callback is registered once per process.
func SetConsoleCtrlHandler(handler ConsoleCtrlHandler) error {
	consoleHandler.Store(&handler)

	registerOnce.Do(func() {
		consoleCallback = windows.NewCallback(dispatchConsoleCtrl)
		registerErr = callBool(procSetConsoleCtrlHandler, consoleCallback, 1)
	})

	return registerErr
}

func dispatchConsoleCtrl(ctrlType uint32) uintptr {
	if h := consoleHandler.Load(); h != nil && *h != nil {
		return (*h)(ctrlType)
	}

	return 0 // let the default handler run
}

// GetCtrlTypeName returns a human-readable name for a control event type
func GetCtrlTypeName(ctrlType uint32) string {
	if name, ok := ctrlTypeNames[ctrlType]; ok {
		return name
	}

	return "UNKNOWN"
}
