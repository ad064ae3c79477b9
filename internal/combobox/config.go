package combobox

import "github.com/creasty/defaults"

// Config holds the presentational settings of a combobox. None of them change
// how the state machine behaves; the *Class fields name styles in Styles.
type Config struct {
	Label        string `toml:"label" default:"Combobox"`
	LabelClass   string `toml:"label_class"`
	Placeholder  string `toml:"placeholder" default:"Search"`
	InputClass   string `toml:"input_class"`
	ListboxLabel string `toml:"listbox_label" default:"Listbox"`
	ListboxClass string `toml:"listbox_class"`
	InputWidth   int    `toml:"input_width" default:"32" validate:"gte=0"`
	MaxVisible   int    `toml:"max_visible" default:"8" validate:"gte=0"`
}

// DefaultConfig returns a Config with every default filled in
func DefaultConfig() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero-valued fields with their defaults
func (c *Config) ApplyDefaults() {
	// defaults.Set only fails on non-pointer or malformed tags
	_ = defaults.Set(c)
}
