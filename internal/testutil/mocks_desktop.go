package testutil

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"github.com/Norgate-AV/alreadyedge/internal/effect"
)

// MockDesktop is an in-memory desktop. It implements WindowSource,
// Classifier and Liveness, and is safe for use from the monitor goroutine.
type MockDesktop struct {
	mu           sync.Mutex
	windows      []uintptr
	targets      map[uintptr]bool
	dead         map[uintptr]bool
	Enumerations int
	Classified   []uintptr
}

// NewMockDesktop creates an empty desktop
func NewMockDesktop() *MockDesktop {
	return &MockDesktop{
		targets: make(map[uintptr]bool),
		dead:    make(map[uintptr]bool),
	}
}

// WithTarget adds a window that classifies as a browser window
func (d *MockDesktop) WithTarget(hwnds ...uintptr) *MockDesktop {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, h := range hwnds {
		d.windows = append(d.windows, h)
		d.targets[h] = true
	}

	return d
}

// WithOther adds a window that does not classify as a browser window
func (d *MockDesktop) WithOther(hwnds ...uintptr) *MockDesktop {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.windows = append(d.windows, hwnds...)
	return d
}

// Destroy removes a window from enumeration and makes liveness checks fail
func (d *MockDesktop) Destroy(hwnd uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.windows = slices.DeleteFunc(d.windows, func(h uintptr) bool { return h == hwnd })
	d.dead[hwnd] = true
}

// Recreate puts a destroyed handle back as a live browser window
func (d *MockDesktop) Recreate(hwnd uintptr) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.dead, hwnd)
	d.windows = append(d.windows, hwnd)
	d.targets[hwnd] = true
}

// EnumerationCount returns how many times Windows was iterated
func (d *MockDesktop) EnumerationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.Enumerations
}

// ClassifyCount returns how many IsTarget calls were made
func (d *MockDesktop) ClassifyCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Classified)
}

func (d *MockDesktop) Windows() iter.Seq[uintptr] {
	return func(yield func(uintptr) bool) {
		d.mu.Lock()
		d.Enumerations++
		snapshot := slices.Clone(d.windows)
		d.mu.Unlock()

		for _, h := range snapshot {
			if !yield(h) {
				return
			}
		}
	}
}

func (d *MockDesktop) IsTarget(hwnd uintptr) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Classified = append(d.Classified, hwnd)
	return d.targets[hwnd] && !d.dead[hwnd]
}

func (d *MockDesktop) IsAlive(hwnd uintptr) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return !d.dead[hwnd]
}

// ApplyCall records one Apply invocation
type ApplyCall struct {
	Hwnd   uintptr
	Config effect.Config
}

// MockApplier records Apply calls and fails for selected handles
type MockApplier struct {
	mu    sync.Mutex
	calls []ApplyCall
	fail  map[uintptr]bool
}

func NewMockApplier() *MockApplier {
	return &MockApplier{fail: make(map[uintptr]bool)}
}

// WithFailure makes Apply return false for hwnd until Heal is called
func (a *MockApplier) WithFailure(hwnd uintptr) *MockApplier {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.fail[hwnd] = true
	return a
}

// Heal lets Apply succeed for hwnd again
func (a *MockApplier) Heal(hwnd uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.fail, hwnd)
}

func (a *MockApplier) Apply(hwnd uintptr, cfg effect.Config) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.calls = append(a.calls, ApplyCall{Hwnd: hwnd, Config: cfg})
	return !a.fail[hwnd]
}

// Calls returns a copy of the recorded calls
func (a *MockApplier) Calls() []ApplyCall {
	a.mu.Lock()
	defer a.mu.Unlock()

	return slices.Clone(a.calls)
}

// CallsFor counts the Apply calls made for hwnd
func (a *MockApplier) CallsFor(hwnd uintptr) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0
	for _, c := range a.calls {
		if c.Hwnd == hwnd {
			n++
		}
	}

	return n
}

// ErrMockCompositor is returned by MockCompositor steps set to fail
var ErrMockCompositor = errors.New("mock compositor failure")

// MockCompositor records native calls in order and keeps the resulting
// attribute state per window
type MockCompositor struct {
	mu          sync.Mutex
	Calls       []string
	Failing     map[string]bool
	Unsupported map[string]bool
	Missing     map[uintptr]bool
	Backdrops   map[uintptr]effect.Backdrop
	DarkMode    map[uintptr]bool
	Extended    map[uintptr]bool
}

func NewMockCompositor() *MockCompositor {
	return &MockCompositor{
		Failing:     make(map[string]bool),
		Unsupported: make(map[string]bool),
		Missing:     make(map[uintptr]bool),
		Backdrops:   make(map[uintptr]effect.Backdrop),
		DarkMode:    make(map[uintptr]bool),
		Extended:    make(map[uintptr]bool),
	}
}

// WithFailingStep makes the named step ("ExtendFrame", "SetBackdrop", ...) fail
func (c *MockCompositor) WithFailingStep(name string) *MockCompositor {
	c.Failing[name] = true
	return c
}

// WithUnsupportedStep makes the named step report effect.ErrUnsupported
func (c *MockCompositor) WithUnsupportedStep(name string) *MockCompositor {
	c.Unsupported[name] = true
	return c
}

// WithMissingWindow makes IsWindow report false for hwnd
func (c *MockCompositor) WithMissingWindow(hwnd uintptr) *MockCompositor {
	c.Missing[hwnd] = true
	return c
}

func (c *MockCompositor) record(name string) error {
	c.Calls = append(c.Calls, name)
	if c.Failing[name] {
		return ErrMockCompositor
	}

	if c.Unsupported[name] {
		return fmt.Errorf("%s: %w", name, effect.ErrUnsupported)
	}

	return nil
}

func (c *MockCompositor) IsWindow(hwnd uintptr) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return !c.Missing[hwnd]
}

func (c *MockCompositor) ExtendFrame(hwnd uintptr) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.record("ExtendFrame"); err != nil {
		return err
	}

	c.Extended[hwnd] = true
	return nil
}

func (c *MockCompositor) SetBackdrop(hwnd uintptr, backdrop effect.Backdrop) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.record("SetBackdrop"); err != nil {
		return err
	}

	c.Backdrops[hwnd] = backdrop
	return nil
}

func (c *MockCompositor) SetDarkMode(hwnd uintptr, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.record("SetDarkMode"); err != nil {
		return err
	}

	c.DarkMode[hwnd] = enabled
	return nil
}

func (c *MockCompositor) SetTranslucent(hwnd uintptr) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.record("SetTranslucent")
}

func (c *MockCompositor) RefreshFrame(hwnd uintptr) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.record("RefreshFrame")
}

func (c *MockCompositor) NotifyThemeChanged(hwnd uintptr) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.record("NotifyThemeChanged")
}

// InspectedWindow describes a window known to MockInspector
type InspectedWindow struct {
	ClassName string
	Pid       uint32
}

// MockInspector resolves class names and processes from fixed tables.
// Unknown handles and pids return errors.
type MockInspector struct {
	Windows   map[uintptr]InspectedWindow
	Processes map[uint32]string
}

func NewMockInspector() *MockInspector {
	return &MockInspector{
		Windows:   make(map[uintptr]InspectedWindow),
		Processes: make(map[uint32]string),
	}
}

func (i *MockInspector) WithWindow(hwnd uintptr, className string, pid uint32) *MockInspector {
	i.Windows[hwnd] = InspectedWindow{ClassName: className, Pid: pid}
	return i
}

func (i *MockInspector) WithProcess(pid uint32, name string) *MockInspector {
	i.Processes[pid] = name
	return i
}

var errNotFound = errors.New("not found")

func (i *MockInspector) ClassName(hwnd uintptr) (string, error) {
	w, ok := i.Windows[hwnd]
	if !ok {
		return "", errNotFound
	}

	return w.ClassName, nil
}

func (i *MockInspector) ProcessID(hwnd uintptr) (uint32, error) {
	w, ok := i.Windows[hwnd]
	if !ok {
		return 0, errNotFound
	}

	return w.Pid, nil
}

func (i *MockInspector) ProcessName(pid uint32) (string, error) {
	name, ok := i.Processes[pid]
	if !ok {
		return "", errNotFound
	}

	return name, nil
}

// BackdropFor returns the backdrop last set on hwnd
func (c *MockCompositor) BackdropFor(hwnd uintptr) (effect.Backdrop, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.Backdrops[hwnd]
	return b, ok
}

// DarkModeFor returns the dark mode value last set on hwnd
func (c *MockCompositor) DarkModeFor(hwnd uintptr) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.DarkMode[hwnd]
	return v, ok
}
