// Package edge locates the Microsoft Edge executable and builds its launch
// arguments.
package edge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Norgate-AV/alreadyedge/internal/settings"
)

// PathEnvVar overrides executable discovery
const PathEnvVar = "EDGE_PATH"

// DefaultPaths are the standard Edge install locations, checked in order
var DefaultPaths = []string{
	`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
	`C:\Program Files\Microsoft\Edge\Application\msedge.exe`,
}

// Switches understood by Chromium that let the DWM backdrop show through
const (
	SwitchDisableGPU               = "--disable-gpu"
	SwitchDisableGPUCompositing    = "--disable-gpu-compositing"
	SwitchEnableTransparentVisuals = "--enable-transparent-visuals"
)

// GetEdgePath returns the Edge executable path.
// It checks the EDGE_PATH environment variable first, then the default
// install locations. An empty string means Edge was not found.
func GetEdgePath() string {
	if envPath := os.Getenv(PathEnvVar); envPath != "" {
		return envPath
	}

	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// ValidateEdgeInstallation checks that the Edge executable exists.
// Returns an error with guidance if it is not found.
func ValidateEdgeInstallation() error {
	if envPath := os.Getenv(PathEnvVar); envPath != "" {
		_, err := os.Stat(envPath)
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("Edge not found at custom path: %s\n"+
				"Please verify the %s environment variable is correct", envPath, PathEnvVar)
		}

		if err != nil {
			return fmt.Errorf("error checking Edge installation at %s: %w", envPath, err)
		}

		return nil
	}

	if GetEdgePath() == "" {
		return fmt.Errorf("Edge not found in any default location\n"+
			"Please install Microsoft Edge or set the %s environment variable", PathEnvVar)
	}

	return nil
}

// LaunchArgs returns the command-line switches selected by flags, in a
// stable order
func LaunchArgs(flags settings.LaunchFlags) []string {
	var args []string

	if flags.EnableTransparentVisuals {
		args = append(args, SwitchEnableTransparentVisuals)
	}

	if flags.DisableGPU {
		args = append(args, SwitchDisableGPU)
	}

	if flags.DisableGPUCompositing {
		args = append(args, SwitchDisableGPUCompositing)
	}

	return args
}
