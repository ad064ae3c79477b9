package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"stationpicker/internal/combobox"
	"stationpicker/internal/eventbus"
	"stationpicker/internal/logging"
)

// DefaultSourceURL is the SEPTA station list
const DefaultSourceURL = "https://s3.amazonaws.com/flat-api.septa.org/prod/static/new-stations.json"

// ErrInvalid is returned when a loaded configuration fails validation
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version" default:"1" validate:"gte=1"`
	Source  SourceConfig    `toml:"source"`
	Log     LogConfig       `toml:"log"`
	From    combobox.Config `toml:"from"`
	To      combobox.Config `toml:"to"`
	Theme   ThemeConfig     `toml:"theme"`
}

// SourceConfig describes where stations are fetched from
type SourceConfig struct {
	URL     string   `toml:"url" default:"https://s3.amazonaws.com/flat-api.septa.org/prod/static/new-stations.json" validate:"required,url"`
	Timeout Duration `toml:"timeout"`
}

// SetDefaults is called by defaults.Set for fields a tag cannot express
func (s *SourceConfig) SetDefaults() {
	if s.Timeout.Duration == 0 {
		s.Timeout.Duration = 10 * time.Second
	}
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `toml:"level" default:"info" validate:"oneof=trace debug info warn warning error off disabled"`
	Format string `toml:"format" default:"console" validate:"oneof=console json"`
	File   string `toml:"file" default:"stationpicker.log"`
}

// Logging converts the section into a logger configuration
func (l LogConfig) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.File = l.File
	return cfg
}

// ThemeConfig holds terminal colors, as ANSI numbers or hex strings
type ThemeConfig struct {
	Accent    string `toml:"accent" default:"99"`
	Muted     string `toml:"muted" default:"241"`
	Highlight string `toml:"highlight" default:"226"`
	Selection string `toml:"selection" default:"238"`
	Error     string `toml:"error" default:"196"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// Option configures a config service
type Option func(*configService)

// WithFs reads and writes through fs instead of the OS filesystem
func WithFs(fs afero.Fs) Option {
	return func(cs *configService) { cs.fs = fs }
}

// WithPath overrides the default config file location
func WithPath(path string) Option {
	return func(cs *configService) {
		if path != "" {
			cs.filePath = path
		}
	}
}

// WithLogger sets the service logger
func WithLogger(log zerolog.Logger) Option {
	return func(cs *configService) { cs.log = log.With().Str("component", "config").Logger() }
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	fs       afero.Fs
	filePath string
	validate *validator.Validate
	log      zerolog.Logger
}

// NewConfigService creates a new config service
func NewConfigService(opts ...Option) ConfigService {
	cs := &configService{
		fs:       afero.NewOsFs(),
		filePath: DefaultPath(),
		validate: validator.New(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, opts ...Option) ConfigService {
	cs := NewConfigService(opts...).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist
func (cs *configService) Load() (*Config, error) {
	exists, err := afero.Exists(cs.fs, cs.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	var cfg *Config
	if !exists {
		cs.log.Debug().Str("path", cs.filePath).Msg("no config file, using defaults")
		cfg = DefaultConfig()
		applyEnvOverrides(cfg)
		if err := cs.check(cfg); err != nil {
			return nil, err
		}
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := afero.ReadFile(cs.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Fields emptied in the file fall back to defaults
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	applyEnvOverrides(cfg)

	if err := cs.check(cfg); err != nil {
		return nil, err
	}

	cs.log.Info().Str("path", path).Msg("config loaded")
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := cs.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(cs.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cs.log.Info().Str("path", path).Msg("config saved")
	return nil
}

func (cs *configService) check(cfg *Config) error {
	if err := cs.validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if cfg.Source.Timeout.Duration <= 0 {
		return fmt.Errorf("%w: source timeout must be positive", ErrInvalid)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		From: combobox.Config{
			Label:        "From",
			Placeholder:  "Search origin station",
			ListboxLabel: "Stations",
			LabelClass:   "accent",
		},
		To: combobox.Config{
			Label:        "To",
			Placeholder:  "Search destination station",
			ListboxLabel: "Stations",
			LabelClass:   "accent",
		},
	}
	// defaults.Set only fails on non-pointer or malformed tags
	_ = defaults.Set(cfg)
	return cfg
}

// DefaultPath returns $XDG_CONFIG_HOME/stationpicker/config.toml
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		var err error
		configDir, err = os.UserConfigDir()
		if err != nil {
			// Fallback to home directory
			home, herr := os.UserHomeDir()
			if herr != nil {
				home = "."
			}
			configDir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(configDir, "stationpicker", "config.toml")
}

// LoadDotenv loads environment files into the process environment.
// Missing files are skipped; variables already set win.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// applyEnvOverrides checks environment variables and overrides config values
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STATIONPICKER_SOURCE_URL"); v != "" {
		cfg.Source.URL = v
	}
	if v := os.Getenv("STATIONPICKER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STATIONPICKER_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
