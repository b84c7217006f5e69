//go:build windows

package windows

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/alreadyedge/internal/logger"
)

func TestGetProcessName_CurrentProcess(t *testing.T) {
	name, err := GetProcessName(uint32(os.Getpid()))
	require.NoError(t, err)

	exe, err := os.Executable()
	require.NoError(t, err)
	assert.True(t, strings.Contains(strings.ToLower(exe), strings.ToLower(name)))
	assert.False(t, strings.HasSuffix(strings.ToLower(name), ".exe"))
}

func TestGetProcessName_UnknownPid(t *testing.T) {
	// PIDs are multiples of four, so this one never exists
	_, err := GetProcessName(0xFFFFFFF3)
	assert.Error(t, err)
}

func TestInvalidHandle(t *testing.T) {
	assert.False(t, IsWindow(0))

	_, _, err := GetWindowPid(0)
	assert.Error(t, err)

	_, err = GetClassName(0)
	assert.Error(t, err)

	wm := newWindowManager(logger.NewNoOpLogger())
	assert.False(t, wm.IsAlive(0))
	assert.Equal(t, WindowInfo{Hwnd: 0}, wm.Describe(0))
}

func TestCompositor_MissingWindowFails(t *testing.T) {
	c := newCompositor(logger.NewNoOpLogger())

	assert.False(t, c.IsWindow(0))
	assert.Error(t, c.RefreshFrame(0))
	assert.Error(t, c.SetTranslucent(0))
}

func TestWindows_EarlyExit(t *testing.T) {
	seen := 0
	for range Windows() {
		seen++
		break
	}

	assert.LessOrEqual(t, seen, 1)
}

func TestEnumerateWindows_HandlesResolve(t *testing.T) {
	wm := newWindowManager(logger.NewNoOpLogger())

	for _, hwnd := range EnumerateWindows() {
		if !IsWindow(hwnd) {
			// Closed between enumeration and inspection
			continue
		}

		info := wm.Describe(hwnd)
		assert.Equal(t, hwnd, info.Hwnd)
	}
}

func TestGetCtrlTypeName(t *testing.T) {
	assert.Equal(t, "CTRL_C", GetCtrlTypeName(CTRL_C_EVENT))
	assert.Equal(t, "CTRL_CLOSE", GetCtrlTypeName(CTRL_CLOSE_EVENT))
	assert.Equal(t, "UNKNOWN", GetCtrlTypeName(42))
}

func TestDispatchConsoleCtrl(t *testing.T) {
	var got uint32
	consoleHandler.Store(nil)
	assert.Equal(t, uintptr(0), dispatchConsoleCtrl(CTRL_C_EVENT))

	h := ConsoleCtrlHandler(func(ctrlType uint32) uintptr {
		got = ctrlType
		return 1
	})
	consoleHandler.Store(&h)
	t.Cleanup(func() { consoleHandler.Store(nil) })

	assert.Equal(t, uintptr(1), dispatchConsoleCtrl(CTRL_CLOSE_EVENT))
	assert.Equal(t, uint32(CTRL_CLOSE_EVENT), got)
}

func TestWindowInfo_String(t *testing.T) {
	info := WindowInfo{Hwnd: 0x1A2B, ClassName: "Chrome_WidgetWin_1", Pid: 42, Process: "msedge"}
	assert.Equal(t, "1A2B\tChrome_WidgetWin_1\t42\tmsedge", info.String())
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty", nil, ""},
		{"plain", []string{"--disable-gpu", "https://example.com"}, "--disable-gpu https://example.com"},
		{"space in argument", []string{"--enable-transparent-visuals", `C:\My Pages\index.html`}, `--enable-transparent-visuals "C:\My Pages\index.html"`},
		{"embedded quote", []string{`say "hi"`}, `"say \"hi\""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommandLine(tt.args))
		})
	}
}
