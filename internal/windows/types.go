//go:build windows

package windows

import "fmt"

// MARGINS mirrors the Win32 structure passed to DwmExtendFrameIntoClientArea
type MARGINS struct {
	CxLeftWidth    int32
	CxRightWidth   int32
	CyTopHeight    int32
	CyBottomHeight int32
}

// fullMargins extends the frame over the entire client area ("sheet of glass")
var fullMargins = MARGINS{-1, -1, -1, -1}

// WindowInfo describes a top-level window for diagnostics
type WindowInfo struct {
	Hwnd      uintptr
	ClassName string
	Pid       uint32
	Process   string
}

func (w WindowInfo) String() string {
	return fmt.Sprintf("%X\t%s\t%d\t%s", w.Hwnd, w.ClassName, w.Pid, w.Process)
}
