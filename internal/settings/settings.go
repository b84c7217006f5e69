// Package settings persists the user's effect selection and behaviour flags.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/logger"
)

const fileName = "settings.yaml"

// Settings is the persisted application configuration
type Settings struct {
	Effect           effect.Config `yaml:"effect" json:"effect"`
	AutoApply        bool          `yaml:"auto_apply" json:"auto_apply"`
	StartWithWindows bool          `yaml:"start_with_windows" json:"start_with_windows"`
	Launch           LaunchFlags   `yaml:"launch" json:"launch"`
}

// LaunchFlags are the Edge command-line switches used by the launch command
type LaunchFlags struct {
	DisableGPU               bool `yaml:"disable_gpu" json:"disable_gpu"`
	DisableGPUCompositing    bool `yaml:"disable_gpu_compositing" json:"disable_gpu_compositing"`
	EnableTransparentVisuals bool `yaml:"enable_transparent_visuals" json:"enable_transparent_visuals"`
}

// Default returns the settings used when no file exists or it cannot be read
func Default() Settings {
	return Settings{
		Effect:    effect.DefaultConfig(),
		AutoApply: true,
		Launch: LaunchFlags{
			DisableGPU:               true,
			DisableGPUCompositing:    true,
			EnableTransparentVisuals: true,
		},
	}
}

// DefaultPath returns %APPDATA%\alreadyedge\settings.yaml, falling back to
// the roaming profile under USERPROFILE when APPDATA is unset.
func DefaultPath() string {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}

	return filepath.Join(appData, "alreadyedge", fileName)
}

// Store reads and writes settings at a fixed path
type Store struct {
	log  logger.LoggerInterface
	path string
	mu   sync.Mutex

	// last read error reported by Current, to warn once per distinct error
	reported string
}

// NewStore creates a store for path. An empty path selects DefaultPath.
func NewStore(log logger.LoggerInterface, path string) *Store {
	if path == "" {
		path = DefaultPath()
	}

	return &Store{
		log:  log,
		path: path,
	}
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields defaults with no error.
// Fields absent from the file keep their default values.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *Store) load() (Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return Default(), fmt.Errorf("failed to read settings %s: %w", s.path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse settings %s: %w", s.path, err)
	}

	return cfg, nil
}

// Current returns the settings as they are on disk right now, or defaults if
// the file cannot be read. It is called on every monitor tick so edits take
// effect without a restart.
// A read error is logged as a warning the first time it is seen and at
// debug level while it persists.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err == nil {
		if s.reported != "" {
			s.log.Info("Settings readable again", slog.String("path", s.path))
			s.reported = ""
		}

		return cfg
	}

	if msg := err.Error(); msg != s.reported {
		s.reported = msg
		s.log.Warn("Using default settings", slog.Any("error", err))
	} else {
		s.log.Debug("Still using default settings", slog.Any("error", err))
	}

	return cfg
}

// Save writes cfg, creating the directory if needed
func (s *Store) Save(cfg Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(cfg)
}

func (s *Store) save(cfg Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("could not create settings directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	// Write to a sibling file first so a reader never sees a half-written file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}

	s.log.Debug("Settings saved", slog.String("path", s.path))
	return nil
}

// Update loads the settings, applies fn and saves the result
func (s *Store) Update(fn func(*Settings) error) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		s.log.Warn("Replacing unreadable settings with defaults", slog.Any("error", err))
	}

	if err := fn(&cfg); err != nil {
		return cfg, err
	}

	return cfg, s.save(cfg)
}

// Keys lists the names accepted by Get and Set
func Keys() []string {
	return []string{
		"backdrop",
		"dark_mode",
		"auto_apply",
		"start_with_windows",
		"disable_gpu",
		"disable_gpu_compositing",
		"enable_transparent_visuals",
	}
}

// Get returns the string form of a single setting
func (c Settings) Get(key string) (string, error) {
	switch normalizeKey(key) {
	case "backdrop":
		return c.Effect.Backdrop.String(), nil
	case "dark_mode":
		return strconv.FormatBool(c.Effect.DarkMode), nil
	case "auto_apply":
		return strconv.FormatBool(c.AutoApply), nil
	case "start_with_windows":
		return strconv.FormatBool(c.StartWithWindows), nil
	case "disable_gpu":
		return strconv.FormatBool(c.Launch.DisableGPU), nil
	case "disable_gpu_compositing":
		return strconv.FormatBool(c.Launch.DisableGPUCompositing), nil
	case "enable_transparent_visuals":
		return strconv.FormatBool(c.Launch.EnableTransparentVisuals), nil
	}

	return "", unknownKey(key)
}

// Set parses value and assigns it to the named setting
func (c *Settings) Set(key, value string) error {
	k := normalizeKey(key)
	if k == "backdrop" {
		b, err := effect.ParseBackdrop(value)
		if err != nil {
			return err
		}

		c.Effect.Backdrop = b
		return nil
	}

	var target *bool
	switch k {
	case "dark_mode":
		target = &c.Effect.DarkMode
	case "auto_apply":
		target = &c.AutoApply
	case "start_with_windows":
		target = &c.StartWithWindows
	case "disable_gpu":
		target = &c.Launch.DisableGPU
	case "disable_gpu_compositing":
		target = &c.Launch.DisableGPUCompositing
	case "enable_transparent_visuals":
		target = &c.Launch.EnableTransparentVisuals
	default:
		return unknownKey(key)
	}

	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s expects true or false, got %q", k, value)
	}

	*target = v
	return nil
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(Keys(), ", "))
}
