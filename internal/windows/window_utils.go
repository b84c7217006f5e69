//go:build windows

package windows

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

// ShellExecute opens file through the Windows shell
func ShellExecute(verb, file, args, cwd string, showCmd int32) error {
	var verbPtr, argsPtr, cwdPtr *uint16
	var err error

	if verb != "" {
		if verbPtr, err = windows.UTF16PtrFromString(verb); err != nil {
			return err
		}
	}

	filePtr, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return err
	}

	if args != "" {
		if argsPtr, err = windows.UTF16PtrFromString(args); err != nil {
			return err
		}
	}

	if cwd != "" {
		if cwdPtr, err = windows.UTF16PtrFromString(cwd); err != nil {
			return err
		}
	}

	if err := windows.ShellExecute(0, verbPtr, filePtr, argsPtr, cwdPtr, showCmd); err != nil {
		return fmt.Errorf("shell execute failed: %w", err)
	}

	return nil
}

// CommandLine joins args into a single argument string, quoting and
// escaping each one the way CommandLineToArgvW splits them
func CommandLine(args []string) string {
	return windows.ComposeCommandLine(args)
}

// GetClassName retrieves the class name of a window
func GetClassName(hwnd uintptr) (string, error) {
	buf := make([]uint16, 256)

	n, err := windows.GetClassName(windows.HWND(hwnd), &buf[0], int32(len(buf)))
	if n == 0 {
		return "", fmt.Errorf("GetClassName failed: %w", err)
	}

	return windows.UTF16ToString(buf[:n]), nil
}

// IsWindow checks if a window handle is valid
func IsWindow(hwnd uintptr) bool {
	return windows.IsWindow(windows.HWND(hwnd))
}

// GetWindowPid retrieves the owning thread and process of a window. A zero
// thread id means the window no longer exists.
func GetWindowPid(hwnd uintptr) (tid, pid uint32, err error) {
	tid, err = windows.GetWindowThreadProcessId(windows.HWND(hwnd), &pid)
	if tid == 0 {
		if err == nil {
			err = errors.New("window has no owning thread")
		}

		return 0, 0, fmt.Errorf("GetWindowThreadProcessId failed: %w", err)
	}

	return tid, pid, nil
}

// GetProcessImagePath returns the full executable path of a process
func GetProcessImagePath(pid uint32) (string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", fmt.Errorf("failed to open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", fmt.Errorf("failed to query image name of process %d: %w", pid, err)
	}

	return windows.UTF16ToString(buf[:size]), nil
}

// GetProcessName returns the executable name of a process without ".exe"
func GetProcessName(pid uint32) (string, error) {
	path, err := GetProcessImagePath(pid)
	if err != nil {
		return "", err
	}

	name := filepath.Base(path)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".exe") {
		name = strings.TrimSuffix(name, ext)
	}

	return name, nil
}
