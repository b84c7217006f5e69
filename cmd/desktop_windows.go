//go:build windows

package cmd

import (
	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/startup"
	"github.com/Norgate-AV/alreadyedge/internal/windows"
)

func openDesktop(log logger.LoggerInterface) (*desktop, error) {
	client := windows.NewClient(log)

	return &desktop{
		Windows:    client.Window,
		Liveness:   client.Window,
		Inspector:  client.Window,
		Compositor: client.Compositor,
		Startup:    startup.NewRegistry(startup.ValueName),
		Describe: func(hwnd uintptr) string {
			return client.Window.Describe(hwnd).String()
		},
		Open: func(path string, args []string) error {
			return windows.ShellExecute("open", path, windows.CommandLine(args), "", windows.SW_SHOWNORMAL)
		},
		HandleConsole: func(fn func(reason string)) error {
			return windows.SetConsoleCtrlHandler(func(ctrlType uint32) uintptr {
				fn(windows.GetCtrlTypeName(ctrlType))
				return 1
			})
		},
	}, nil
}
