// Package browser decides which top-level windows belong to the target browser.
package browser

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/alreadyedge/internal/logger"
)

// Target identifies a browser by the class of its top-level windows and the
// executable name of its process.
type Target struct {
	ClassName   string
	ProcessName string
}

// Edge is Microsoft Edge. Its frames share the Chromium widget class, so the
// process name is what separates it from Chrome and other Chromium shells.
var Edge = Target{
	ClassName:   "Chrome_WidgetWin_1",
	ProcessName: "msedge",
}

// Inspector reads the window and process facts the classifier needs.
// Implementations return an error when the handle or process can no longer
// be resolved.
type Inspector interface {
	ClassName(hwnd uintptr) (string, error)
	ProcessID(hwnd uintptr) (uint32, error)
	ProcessName(pid uint32) (string, error)
}

// Classifier is a stateless predicate over window handles
type Classifier struct {
	log       logger.LoggerInterface
	inspector Inspector
	target    Target
}

// NewClassifier creates a classifier for target
func NewClassifier(log logger.LoggerInterface, inspector Inspector, target Target) *Classifier {
	return &Classifier{
		log:       log,
		inspector: inspector,
		target:    target,
	}
}

// Target returns the browser this classifier matches
func (c *Classifier) Target() Target {
	return c.target
}

// IsTarget reports whether hwnd is a top-level window of the target browser.
// Lookup failures are indistinguishable from a mismatch and yield false.
func (c *Classifier) IsTarget(hwnd uintptr) bool {
	className, err := c.inspector.ClassName(hwnd)
	if err != nil || className != c.target.ClassName {
		return false
	}

	pid, err := c.inspector.ProcessID(hwnd)
	if err != nil || pid == 0 {
		c.log.Trace("Could not resolve window process",
			slog.Uint64("hwnd", uint64(hwnd)),
			slog.Any("error", err),
		)
		return false
	}

	name, err := c.inspector.ProcessName(pid)
	if err != nil {
		c.log.Trace("Could not resolve process name",
			slog.Uint64("hwnd", uint64(hwnd)),
			slog.Uint64("pid", uint64(pid)),
			slog.Any("error", err),
		)
		return false
	}

	return MatchProcessName(name, c.target.ProcessName)
}

// MatchProcessName compares an executable name or path against want,
// ignoring case, directories and a trailing ".exe".
func MatchProcessName(name, want string) bool {
	if name == "" || want == "" {
		return false
	}

	return strings.EqualFold(baseName(name), baseName(want))
}

func baseName(name string) string {
	// filepath.Base only splits on the host separator
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}

	ext := filepath.Ext(name)
	if strings.EqualFold(ext, ".exe") {
		name = name[:len(name)-len(ext)]
	}

	return name
}
