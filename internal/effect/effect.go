// Package effect defines the DWM backdrop effect configuration and the
// applier that pushes it onto a window.
package effect

import (
	"fmt"
	"strconv"
	"strings"
)

// Backdrop is a DWM system backdrop type. The numeric values are the ones
// accepted by DWMWA_SYSTEMBACKDROP_TYPE.
type Backdrop int

const (
	BackdropAuto    Backdrop = 0
	BackdropNone    Backdrop = 1
	BackdropMica    Backdrop = 2
	BackdropAcrylic Backdrop = 3
	BackdropMicaAlt Backdrop = 4
)

var backdropNames = map[Backdrop]string{
	BackdropAuto:    "auto",
	BackdropNone:    "none",
	BackdropMica:    "mica",
	BackdropAcrylic: "acrylic",
	BackdropMicaAlt: "mica-alt",
}

// Backdrops lists every supported backdrop in ascending value order
func Backdrops() []Backdrop {
	return []Backdrop{BackdropAuto, BackdropNone, BackdropMica, BackdropAcrylic, BackdropMicaAlt}
}

func (b Backdrop) String() string {
	if name, ok := backdropNames[b]; ok {
		return name
	}

	return fmt.Sprintf("backdrop(%d)", int(b))
}

// Valid reports whether b is one of the known backdrop types
func (b Backdrop) Valid() bool {
	_, ok := backdropNames[b]
	return ok
}

// ParseBackdrop converts a backdrop name or its numeric value. Matching
// ignores case, and "micaalt"/"mica_alt" are accepted for MicaAlt.
func ParseBackdrop(s string) (Backdrop, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if b := Backdrop(n); b.Valid() {
			return b, nil
		}

		return 0, fmt.Errorf("backdrop value %d out of range 0-4", n)
	}

	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-").Replace(norm)
	if norm == "micaalt" {
		norm = "mica-alt"
	}

	for b, name := range backdropNames {
		if name == norm {
			return b, nil
		}
	}

	return 0, fmt.Errorf("unknown backdrop %q (want one of auto, none, mica, acrylic, mica-alt)", s)
}

// MarshalText encodes the backdrop by name so it reads well in settings files
func (b Backdrop) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid backdrop value %d", int(b))
	}

	return []byte(b.String()), nil
}

// UnmarshalText decodes a backdrop name
func (b *Backdrop) UnmarshalText(text []byte) error {
	parsed, err := ParseBackdrop(string(text))
	if err != nil {
		return err
	}

	*b = parsed
	return nil
}

// Config is an immutable snapshot of the effect to apply. It is passed by value.
type Config struct {
	Backdrop Backdrop `yaml:"backdrop" json:"backdrop"`
	DarkMode bool     `yaml:"dark_mode" json:"dark_mode"`
}

// DefaultConfig returns the effect used when nothing has been configured
func DefaultConfig() Config {
	return Config{
		Backdrop: BackdropAcrylic,
		DarkMode: true,
	}
}

func (c Config) String() string {
	mode := "light"
	if c.DarkMode {
		mode = "dark"
	}

	return c.Backdrop.String() + "/" + mode
}
