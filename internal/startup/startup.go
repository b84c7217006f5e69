// Package startup manages the per-user "start with Windows" entry.
package startup

import (
	"fmt"
	"log/slog"

	"github.com/Norgate-AV/alreadyedge/internal/interfaces"
	"github.com/Norgate-AV/alreadyedge/internal/logger"
)

// ValueName is the name of the entry under the Run key
const ValueName = "alreadyedge"

// Command returns the command line registered for startup: the quoted
// executable followed by the run subcommand
func Command(exe string) string {
	return fmt.Sprintf("%q run", exe)
}

// Sync makes the startup entry match enabled. The registrar is only written
// when the current state differs.
func Sync(log logger.LoggerInterface, reg interfaces.StartupRegistrar, enabled bool, exe string) error {
	current, err := reg.Enabled()
	if err != nil {
		log.Debug("Could not read startup entry", slog.Any("error", err))
	}

	if enabled {
		if current && err == nil {
			return nil
		}

		if err := reg.Enable(Command(exe)); err != nil {
			return fmt.Errorf("failed to enable start with Windows: %w", err)
		}

		log.Info("Start with Windows enabled")
		return nil
	}

	if !current && err == nil {
		return nil
	}

	if err := reg.Disable(); err != nil {
		return fmt.Errorf("failed to disable start with Windows: %w", err)
	}

	log.Info("Start with Windows disabled")
	return nil
}
