//go:build windows

package windows

import (
	"iter"
	"sync"

	"golang.org/x/sys/windows"
)

var (
	foundWindows []uintptr
	windowsMu    sync.Mutex

	// Created once; the runtime caps the number of callbacks a process may
	// create, and the monitor enumerates every tick
	enumCallback = windows.NewCallback(enumWindowsCallback)
)

func enumWindowsCallback(hwnd windows.HWND, _ uintptr) uintptr {
	foundWindows = append(foundWindows, uintptr(hwnd))
	return 1 // continue enumeration
}

// EnumerateWindows returns a snapshot of all top-level windows in z-order.
// It returns nil if the enumeration itself fails.
func EnumerateWindows() []uintptr {
	windowsMu.Lock()
	defer windowsMu.Unlock()

	foundWindows = nil
	if err := windows.EnumWindows(enumCallback, nil); err != nil {
		return nil
	}

	handles := make([]uintptr, len(foundWindows))
	copy(handles, foundWindows)

	return handles
}

// Windows yields top-level windows. The enumeration runs when iteration
// starts, so each range over the sequence sees the current desktop.
func Windows() iter.Seq[uintptr] {
	return func(yield func(uintptr) bool) {
		for _, hwnd := range EnumerateWindows() {
			if !yield(hwnd) {
				return
			}
		}
	}
}
