package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/dropdown/internal/ident"
	"github.com/marcus/dropdown/internal/validate"
)

const configFile = ".dropdown/config.json"

// ErrNoMenus is returned when a config file defines no menus.
var ErrNoMenus = errors.New("config defines no menus")

// Identifier schemes for toggle ids.
const (
	IDSchemeRandom = "random"
	IDSchemeUUID   = "uuid"
)

// Item is one entry of a configured menu.
type Item struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Menu describes a dropdown: its toggle label, its items and the item keys
// whose selection a built-in handler vetoes.
type Menu struct {
	Name    string   `json:"name"`
	Toggle  string   `json:"toggle"`
	Items   []Item   `json:"items"`
	Prevent []string `json:"prevent,omitempty"`
}

// Config is the on-disk configuration.
type Config struct {
	Menus    []Menu `json:"menus"`
	History  bool   `json:"history"`
	IDPrefix string `json:"id_prefix,omitempty"` // random scheme only
	IDScheme string `json:"id_scheme,omitempty"` // random (default) or uuid
}

// IDProvider returns the toggle id provider selected by IDScheme.
func (c *Config) IDProvider() ident.Provider {
	if c.IDScheme == IDSchemeUUID {
		return ident.UUID{}
	}
	return ident.Random{Prefix: c.IDPrefix}
}

// UnmarshalJSON rejects a prevent value that is not a list before typing it
// as []string, so the error names the menu and the property.
func (m *Menu) UnmarshalJSON(data []byte) error {
	type plain Menu
	var raw struct {
		plain
		Prevent json.RawMessage `json:"prevent"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Menu(raw.plain)
	m.Prevent = nil

	p := bytes.TrimSpace(raw.Prevent)
	if len(p) == 0 {
		return nil
	}
	var loose any
	if err := json.Unmarshal(p, &loose); err != nil {
		return err
	}
	component := m.Name
	if component == "" {
		component = "menu"
	}
	if err := preventShape(validate.Props{"prevent": loose}, "prevent", component); err != nil {
		return err
	}
	if loose == nil {
		return nil
	}
	return json.Unmarshal(p, &m.Prevent)
}

// Keys returns the item keys in order.
func (m Menu) Keys() []string {
	keys := make([]string, len(m.Items))
	for i, it := range m.Items {
		keys[i] = it.Key
	}
	return keys
}

// Find returns the menu with the given name.
func (c *Config) Find(name string) (Menu, bool) {
	for _, m := range c.Menus {
		if m.Name == name {
			return m, true
		}
	}
	return Menu{}, false
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Menus: []Menu{
			{
				Name:   "actions",
				Toggle: "Actions",
				Items: []Item{
					{Key: "action", Label: "Action"},
					{Key: "another", Label: "Another action"},
					{Key: "else", Label: "Something else here"},
					{Key: "separated", Label: "Separated link"},
				},
			},
			{
				Name:   "sort",
				Toggle: "Sort by",
				Items: []Item{
					{Key: "name", Label: "Name"},
					{Key: "modified", Label: "Date modified"},
					{Key: "size", Label: "Size (unavailable)"},
				},
				Prevent: []string{"size"},
			},
		},
	}
}

// Path returns the config file location under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk
func Load(baseDir string) (*Config, error) {
	return LoadFile(Path(baseDir))
}

// LoadFile reads and validates the config at path. A missing file yields
// the default configuration.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := Path(baseDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
