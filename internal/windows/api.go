//go:build windows

package windows

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetPropW            = user32.NewProc("SetPropW")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")

	dwmapi                           = windows.NewLazySystemDLL("dwmapi.dll")
	procDwmSetWindowAttribute        = dwmapi.NewProc("DwmSetWindowAttribute")
	procDwmExtendFrameIntoClientArea = dwmapi.NewProc("DwmExtendFrameIntoClientArea")

	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	// DWM window attributes
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_SYSTEMBACKDROP_TYPE     = 38

	// SetWindowPos flags
	SWP_NOSIZE       = 0x0001
	SWP_NOMOVE       = 0x0002
	SWP_NOZORDER     = 0x0004
	SWP_NOACTIVATE   = 0x0010
	SWP_FRAMECHANGED = 0x0020

	WM_THEMECHANGED  = 0x031A
	SMTO_ABORTIFHUNG = 0x0002

	SW_SHOWNORMAL = 1

	// HRESULTs returned for unknown window attributes
	E_NOTIMPL    = 0x80004001
	E_INVALIDARG = 0x80070057

	// Chromium reads this window property to decide whether to paint a
	// transparent background
	TranslucentProperty = "Chrome.WindowTranslucent"
)

// callBool invokes a Win32 function that returns BOOL
func callBool(proc *windows.LazyProc, args ...uintptr) error {
	if err := proc.Find(); err != nil {
		return err
	}

	ret, _, err := proc.Call(args...)
	if ret == 0 {
		return fmt.Errorf("%s failed: %w", proc.Name, err)
	}

	return nil
}

// callHRESULT invokes a function that returns an HRESULT
func callHRESULT(proc *windows.LazyProc, args ...uintptr) error {
	if err := proc.Find(); err != nil {
		return err
	}

	hr, _, _ := proc.Call(args...)
	if int32(hr) < 0 {
		return &HRESULTError{Proc: proc.Name, Code: uint32(hr)}
	}

	return nil
}

// HRESULTError is a failed HRESULT from a native call
type HRESULTError struct {
	Proc string
	Code uint32
}

func (e *HRESULTError) Error() string {
	return fmt.Sprintf("%s failed: HRESULT 0x%08X", e.Proc, e.Code)
}

// notSupported reports whether err is an HRESULT that DWM returns for
// attributes the running build does not know
func notSupported(err error) bool {
	var hr *HRESULTError
	if !errors.As(err, &hr) {
		return false
	}

	return hr.Code == E_INVALIDARG || hr.Code == E_NOTIMPL
}
