//go:build windows

package startup

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Run`

// Registry stores the startup entry under HKCU\...\Run
type Registry struct {
	name string
}

// NewRegistry creates a registrar for the named Run value.
// An empty name selects ValueName.
func NewRegistry(name string) *Registry {
	if name == "" {
		name = ValueName
	}

	return &Registry{name: name}
}

// Enabled reports whether the Run value exists
func (r *Registry) Enabled() (bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("failed to open run key: %w", err)
	}
	defer k.Close()

	_, _, err = k.GetStringValue(r.name)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to read run value: %w", err)
	}

	return true, nil
}

// Command returns the registered command line, or "" when not registered
func (r *Registry) Command() (string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open run key: %w", err)
	}
	defer k.Close()

	v, _, err := k.GetStringValue(r.name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}

	return v, err
}

// Enable writes command as the Run value
func (r *Registry) Enable(command string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open run key: %w", err)
	}
	defer k.Close()

	return k.SetStringValue(r.name, command)
}

// Disable removes the Run value; a missing value is not an error
func (r *Registry) Disable() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open run key: %w", err)
	}
	defer k.Close()

	if err := k.DeleteValue(r.name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return err
	}

	return nil
}
