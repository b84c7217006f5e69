// Package version provides build version information.
package version

import (
	"runtime/debug"
	"sync"
)

// Injected at build time via -ldflags "-X .../internal/version.version=v1.2.3"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var fillOnce sync.Once

// fill replaces values left at their defaults with what the Go toolchain
// embedded, so "go install" builds still report something useful
func fill() {
	fillOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}

		if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "none" && s.Value != "" {
					commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if date == "unknown" && s.Value != "" {
					date = s.Value
				}
			}
		}
	})
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}

	return rev
}

// GetVersion returns the full version string
func GetVersion() string {
	fill()
	return version
}

// GetCommit returns the git commit hash.
func GetCommit() string {
	fill()
	return commit
}

// GetDate returns the build date.
func GetDate() string {
	fill()
	return date
}

// GetFullVersion returns version with commit and date info
func GetFullVersion() string {
	return GetVersion() + " (commit: " + GetCommit() + ", built: " + GetDate() + ")"
}
