package testutil

import (
	"sync"

	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/settings"
)

// MockSettingsProvider serves settings from memory and counts reads
type MockSettingsProvider struct {
	mu       sync.Mutex
	settings settings.Settings
	reads    int
}

func NewMockSettingsProvider() *MockSettingsProvider {
	return &MockSettingsProvider{settings: settings.Default()}
}

func (p *MockSettingsProvider) WithAutoApply(enabled bool) *MockSettingsProvider {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settings.AutoApply = enabled
	return p
}

func (p *MockSettingsProvider) WithEffect(cfg effect.Config) *MockSettingsProvider {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settings.Effect = cfg
	return p
}

func (p *MockSettingsProvider) Current() settings.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reads++
	return p.settings
}

// Reads returns how many times Current was called
func (p *MockSettingsProvider) Reads() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.reads
}

// MockStartupRegistrar keeps the startup entry in memory
type MockStartupRegistrar struct {
	Command   string
	IsEnabled bool
	EnableErr error
}

func NewMockStartupRegistrar() *MockStartupRegistrar {
	return &MockStartupRegistrar{}
}

func (r *MockStartupRegistrar) Enabled() (bool, error) {
	return r.IsEnabled, nil
}

func (r *MockStartupRegistrar) Enable(command string) error {
	if r.EnableErr != nil {
		return r.EnableErr
	}

	r.Command = command
	r.IsEnabled = true
	return nil
}

func (r *MockStartupRegistrar) Disable() error {
	r.Command = ""
	r.IsEnabled = false
	return nil
}
