package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/monitor"
	"github.com/Norgate-AV/alreadyedge/internal/settings"
	"github.com/Norgate-AV/alreadyedge/internal/timeouts"
	"github.com/Norgate-AV/alreadyedge/internal/version"
)

// ExecutionContext holds state shared by a command and its shutdown handlers
type ExecutionContext struct {
	cfg   *Config
	log   logger.LoggerInterface
	store *settings.Store
}

// RootCmd is the root command for the alreadyedge CLI application.
var RootCmd = &cobra.Command{
	Use:   "alreadyedge",
	Short: "alreadyedge - Keep Microsoft Edge windows translucent",
	Long: `alreadyedge watches for Microsoft Edge windows and applies a DWM system
backdrop (Mica, Acrylic or Mica Alt) and dark mode to each one as it appears.

Running without a subcommand is the same as "alreadyedge run".`,
	Version:      version.GetVersion(),
	Args:         cobra.NoArgs,
	RunE:         Execute,
	SilenceUsage: true, // Don't show usage on runtime errors
}

func init() {
	// Set custom version template to show full version info
	RootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	RootCmd.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolP("logs", "l", false, "print the current log file to stdout and exit")
	RootCmd.PersistentFlags().Duration("interval", timeouts.ScanInterval, "how often to scan for new Edge windows")
	RootCmd.PersistentFlags().String("settings", "", "settings file (default is %APPDATA%\\alreadyedge\\settings.yaml)")
}

// handleLogsFlag processes the --logs flag and exits if needed
func handleLogsFlag(cfg *Config, exitFunc func(int)) error {
	if !cfg.ShowLogs {
		return nil
	}

	if err := logger.PrintLogFile(nil, logger.LoggerOptions{}); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logPath := logger.GetLogPath(logger.LoggerOptions{})
			fmt.Fprintf(os.Stderr, "Log file does not exist: %s\n", logPath)
			exitFunc(1)
			return nil
		}

		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		exitFunc(1)
		return nil
	}

	exitFunc(0)
	return nil
}

// initializeLogger creates a logger for the command's configuration
func initializeLogger(cfg *Config) (logger.LoggerInterface, error) {
	log, err := logger.NewLogger(logger.LoggerOptions{
		Verbose:  cfg.Verbose,
		Compress: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// newExecutionContext reads the configuration, handles --logs and opens
// the logger and settings store. done reports that --logs was handled and
// the command has nothing left to do. The caller must Close the context.
func newExecutionContext(cmd *cobra.Command, exitFunc func(int)) (ctx *ExecutionContext, done bool, err error) {
	cfg := NewConfigFromFlags(cmd)

	if cfg.ShowLogs {
		return nil, true, handleLogsFlag(cfg, exitFunc)
	}

	log, err := initializeLogger(cfg)
	if err != nil {
		return nil, false, err
	}

	log.Debug("Starting alreadyedge",
		slog.String("command", cmd.CommandPath()),
		slog.String("version", version.GetFullVersion()),
	)
	log.Debug("Flags set",
		slog.Bool("verbose", cfg.Verbose),
		slog.Duration("interval", cfg.Interval),
		slog.String("settings", cfg.SettingsPath),
	)

	return &ExecutionContext{
		cfg:   cfg,
		log:   log,
		store: storeFor(cfg, log),
	}, false, nil
}

// Close releases the logger
func (ctx *ExecutionContext) Close() {
	ctx.log.Close()
}

// recoverPanic logs a panic with its stack instead of crashing silently
func (ctx *ExecutionContext) recoverPanic() {
	if r := recover(); r != nil {
		ctx.log.Error("PANIC RECOVERED",
			slog.Any("panic", r),
			slog.String("stack", string(debug.Stack())),
		)

		fmt.Fprintf(os.Stderr, "\n*** PANIC: %v ***\n", r)
		fmt.Fprintf(os.Stderr, "Check log file for details\n")
	}
}

// monitorEvents logs status changes and apply counts
func monitorEvents(log logger.LoggerInterface) monitor.Events {
	return monitor.Events{
		OnStatus: func(msg string) {
			log.Info(msg)
		},
		OnApplied: func(count int) {
			log.Info("Applied effect", slog.Int("windows", count))
		},
	}
}

// setupSignalHandlers cancels the returned context on Ctrl+C, SIGTERM or a
// console control event. Console handlers block until cleanup has finished
// or the grace period elapses, since Windows ends the process when they return.
func setupSignalHandlers(parent context.Context, ctx *ExecutionContext, d *desktop) (context.Context, func(), chan<- struct{}) {
	sigCtx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	cleaned := make(chan struct{})

	if d.HandleConsole != nil {
		err := d.HandleConsole(func(reason string) {
			ctx.log.Debug("Received console control event", slog.String("type", reason))
			ctx.log.Info("Cleaning up after console control event")
			cancel()

			select {
			case <-cleaned:
				ctx.log.Debug("Cleanup completed")
			case <-time.After(timeouts.ShutdownGracePeriod):
				ctx.log.Warn("Cleanup did not finish in time")
			}
		})
		if err != nil {
			ctx.log.Warn("Could not install console control handler", slog.Any("error", err))
		}
	}

	return sigCtx, cancel, cleaned
}

// Execute runs the monitor until interrupted. It is the action of the
// root command and of "run".
func Execute(cmd *cobra.Command, args []string) error {
	ctx, done, err := newExecutionContext(cmd, os.Exit)
	if done || err != nil {
		return err
	}
	defer ctx.Close()
	defer ctx.recoverPanic()

	d, err := newDesktop(ctx.log)
	if err != nil {
		ctx.log.Error("Desktop unavailable", slog.Any("error", err))
		return err
	}

	once, _ := cmd.Flags().GetBool("once")
	if once {
		count := applyOnce(ctx, d)
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %s to %d window(s)\n", ctx.store.Current().Effect, count)
		return nil
	}

	sigCtx, cancel, cleaned := setupSignalHandlers(cmd.Context(), ctx, d)
	defer cancel()

	runMonitor(sigCtx, ctx, d)
	close(cleaned)

	return nil
}

// applyOnce applies the saved effect to every Edge window present now
func applyOnce(ctx *ExecutionContext, d *desktop) int {
	m := d.newMonitor(ctx.log, ctx.store, monitor.Options{Interval: ctx.cfg.Interval, Events: monitorEvents(ctx.log)})
	defer m.Close()

	return m.ApplyToAll(ctx.store.Current().Effect)
}

// runMonitor starts the monitor and blocks until runCtx is cancelled
func runMonitor(runCtx context.Context, ctx *ExecutionContext, d *desktop) {
	if _, err := ctx.store.Load(); err != nil {
		ctx.log.Warn("Using default settings", slog.Any("error", err))
	}

	m := d.newMonitor(ctx.log, ctx.store, monitor.Options{
		Interval: ctx.cfg.Interval,
		Events:   monitorEvents(ctx.log),
	})

	ctx.log.Info("Watching for Edge windows",
		slog.Duration("interval", m.Interval()),
		slog.String("effect", ctx.store.Current().Effect.String()),
	)

	m.Start()
	<-runCtx.Done()

	ctx.log.Debug("Stopping monitor", slog.Int("processed", len(m.Processed())))
	m.Stop()
	m.Close()
}
