package browser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/alreadyedge/internal/browser"
	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/testutil"
)

func TestClassifier_IsTarget(t *testing.T) {
	t.Parallel()

	inspector := testutil.NewMockInspector().
		WithWindow(0x10, "Chrome_WidgetWin_1", 100).
		WithWindow(0x11, "Chrome_WidgetWin_1", 101).
		WithWindow(0x12, "Chrome_WidgetWin_0", 100).
		WithWindow(0x13, "chrome_widgetwin_1", 100).
		WithWindow(0x14, "Chrome_WidgetWin_1", 102).
		WithWindow(0x15, "Chrome_WidgetWin_1", 0).
		WithWindow(0x16, "Chrome_WidgetWin_1", 103).
		WithProcess(100, "msedge.exe").
		WithProcess(101, "chrome.exe").
		WithProcess(103, `C:\Program Files (x86)\Microsoft\Edge\Application\MSEDGE.EXE`)

	c := browser.NewClassifier(logger.NewNoOpLogger(), inspector, browser.Edge)

	tests := []struct {
		name string
		hwnd uintptr
		want bool
	}{
		{"edge top-level window", 0x10, true},
		{"chrome shares the class", 0x11, false},
		{"different class", 0x12, false},
		{"class match is exact", 0x13, false},
		{"process exited", 0x14, false},
		{"pid unresolved", 0x15, false},
		{"full path and case", 0x16, true},
		{"invalid handle", 0x99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.IsTarget(tt.hwnd))
		})
	}
}

func TestClassifier_Target(t *testing.T) {
	t.Parallel()

	c := browser.NewClassifier(logger.NewNoOpLogger(), testutil.NewMockInspector(), browser.Edge)
	assert.Equal(t, "Chrome_WidgetWin_1", c.Target().ClassName)
	assert.Equal(t, "msedge", c.Target().ProcessName)
}

func TestMatchProcessName(t *testing.T) {
	t.Parallel()

	assert.True(t, browser.MatchProcessName("msedge", "msedge"))
	assert.True(t, browser.MatchProcessName("MSEdge.exe", "msedge"))
	assert.True(t, browser.MatchProcessName("C:/Edge/msedge.exe", "msedge.exe"))
	assert.False(t, browser.MatchProcessName("msedgewebview2.exe", "msedge"))
	assert.False(t, browser.MatchProcessName("", "msedge"))
	assert.False(t, browser.MatchProcessName("msedge", ""))
}
