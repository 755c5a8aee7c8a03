package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version          int       `toml:"version"`
	MinLength        int       `toml:"min_length"`
	Hint             bool      `toml:"hint"`
	HintMargin       int       `toml:"hint_margin"`
	AutocompleteKeys bool      `toml:"autocomplete_keys"`
	DecoupledQuery   bool      `toml:"decoupled_query"`
	OpenOnFocus      bool      `toml:"open_on_focus"`
	Prompt           string    `toml:"prompt"`
	Placeholder      string    `toml:"placeholder"`
	Width            int       `toml:"width"`
	Styles           Styles    `toml:"styles"`
	Datasets         []Dataset `toml:"datasets"`
}

// Styles holds the colors used by the terminal views
type Styles struct {
	Hint       string `toml:"hint"`
	Cursor     string `toml:"cursor"`
	Header     string `toml:"header"`
	Highlight  string `toml:"highlight"`
	Border     string `toml:"border"`
	Suggestion string `toml:"suggestion"`
}

// Dataset configures one group of suggestions. Exactly one of Words, File
// or Command supplies the entries.
type Dataset struct {
	Name    string   `toml:"name"`
	Limit   int      `toml:"limit"`
	Words   []string `toml:"words,omitempty"`
	File    string   `toml:"file,omitempty"`
	Watch   bool     `toml:"watch,omitempty"`
	Command string   `toml:"command,omitempty"`
}

var (
	ErrDatasetName   = errors.New("dataset has no name")
	ErrDatasetSource = errors.New("dataset needs exactly one of words, file or command")
)

// Validate reports the first dataset that cannot be built
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, ds := range c.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("dataset %d: %w", i, ErrDatasetName)
		}
		if seen[ds.Name] {
			return fmt.Errorf("dataset %q is defined twice", ds.Name)
		}
		seen[ds.Name] = true

		sources := 0
		if len(ds.Words) > 0 {
			sources++
		}
		if ds.File != "" {
			sources++
		}
		if ds.Command != "" {
			sources++
		}
		if sources != 1 {
			return fmt.Errorf("dataset %q: %w", ds.Name, ErrDatasetSource)
		}
	}
	return nil
}

// Event types published by the config service
const (
	EventConfigLoaded domain.EventType = "configloaded"
	EventConfigSaved  domain.EventType = "configsaved"
)

// LoadedEvent is published after a config is loaded
type LoadedEvent struct {
	Path     string
	Datasets int
}

func (e LoadedEvent) Type() domain.EventType { return EventConfigLoaded }

// SavedEvent is published after a config is written
type SavedEvent struct {
	Path string
}

func (e SavedEvent) Type() domain.EventType { return EventConfigSaved }

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service backed by the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "typeahead", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service backed by path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus makes the service publish load and save events on bus
func WithBus(cs ConfigService, bus eventbus.EventBus) ConfigService {
	if c, ok := cs.(*configService); ok {
		c.bus = bus
	}
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from file, falling back to the defaults
// when the file does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publish(LoadedEvent{Path: "", Datasets: len(cfg.Datasets)})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publish(LoadedEvent{Path: cs.filePath, Datasets: len(cfg.Datasets)})
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(SavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	// datasets in the file replace the defaults instead of merging into them
	cfg.Datasets = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MinLength < 0 {
		cfg.MinLength = 0
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publish(e domain.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Trigger(e)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		MinLength:   1,
		Hint:        true,
		HintMargin:  2,
		OpenOnFocus: true,
		Prompt:      "> ",
		Placeholder: "Search",
		Width:       60,
		Styles: Styles{
			Hint:       "241",
			Cursor:     "205",
			Header:     "39",
			Highlight:  "212",
			Border:     "238",
			Suggestion: "252",
		},
		Datasets: []Dataset{
			{
				Name:  "states",
				Limit: 5,
				Words: defaultStates,
			},
		},
	}
}

var defaultStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}
