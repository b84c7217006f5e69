//go:build windows

package windows

import (
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/timeouts"
)

// compositor issues the DWM and user32 calls behind effect.Compositor
type compositor struct {
	log logger.LoggerInterface
}

func newCompositor(log logger.LoggerInterface) *compositor {
	return &compositor{log: log}
}

func (c *compositor) IsWindow(hwnd uintptr) bool {
	return IsWindow(hwnd)
}

func (c *compositor) ExtendFrame(hwnd uintptr) error {
	margins := fullMargins
	return callHRESULT(procDwmExtendFrameIntoClientArea, hwnd, uintptr(unsafe.Pointer(&margins)))
}

// SetBackdrop sets DWMWA_SYSTEMBACKDROP_TYPE. Builds before 22621 reject the
// attribute, which is reported as effect.ErrUnsupported.
func (c *compositor) SetBackdrop(hwnd uintptr, backdrop effect.Backdrop) error {
	err := setDwordAttribute(hwnd, DWMWA_SYSTEMBACKDROP_TYPE, int32(backdrop))
	if notSupported(err) {
		return fmt.Errorf("system backdrop: %w: %w", effect.ErrUnsupported, err)
	}

	return err
}

func (c *compositor) SetDarkMode(hwnd uintptr, enabled bool) error {
	var value int32
	if enabled {
		value = 1
	}

	return setDwordAttribute(hwnd, DWMWA_USE_IMMERSIVE_DARK_MODE, value)
}

func (c *compositor) SetTranslucent(hwnd uintptr) error {
	name, err := windows.UTF16PtrFromString(TranslucentProperty)
	if err != nil {
		return err
	}

	return callBool(procSetPropW, hwnd, uintptr(unsafe.Pointer(name)), 1)
}

func (c *compositor) RefreshFrame(hwnd uintptr) error {
	const flags = SWP_NOMOVE | SWP_NOSIZE | SWP_NOZORDER | SWP_FRAMECHANGED | SWP_NOACTIVATE
	return callBool(procSetWindowPos, hwnd, 0, 0, 0, 0, 0, flags)
}

func (c *compositor) NotifyThemeChanged(hwnd uintptr) error {
	var result uintptr

	err := callBool(procSendMessageTimeoutW,
		hwnd,
		WM_THEMECHANGED,
		0,
		0,
		SMTO_ABORTIFHUNG,
		uintptr(timeouts.ThemeMessageTimeout.Milliseconds()),
		uintptr(unsafe.Pointer(&result)),
	)
	if err != nil {
		c.log.Trace("WM_THEMECHANGED not delivered",
			slog.Uint64("hwnd", uint64(hwnd)),
			slog.Any("error", err))
	}

	return err
}

func setDwordAttribute(hwnd uintptr, attribute uint32, value int32) error {
	return callHRESULT(procDwmSetWindowAttribute,
		hwnd,
		uintptr(attribute),
		uintptr(unsafe.Pointer(&value)),
		unsafe.Sizeof(value),
	)
}
