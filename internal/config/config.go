// Package config loads and saves demo profiles: the option list and
// behavior flags the selectkit demo host builds its engine from.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// OptionEntry is one selectable option in a profile file.
type OptionEntry struct {
	Value       string `toml:"value"`
	Label       string `toml:"label"`
	Group       string `toml:"group,omitempty"`
	Disabled    bool   `toml:"disabled,omitempty"`
	Description string `toml:"description,omitempty"`
}

// Profile is the persisted demo configuration.
type Profile struct {
	Title          string        `toml:"title"`
	Multiple       bool          `toml:"multiple"`
	Searchable     bool          `toml:"searchable"`
	Clearable      bool          `toml:"clearable"`
	Creatable      bool          `toml:"creatable"`
	MaxSelected    int           `toml:"max_selected"`
	MinSelected    int           `toml:"min_selected"`
	DebounceMillis int           `toml:"debounce_ms"`
	PageSize       int           `toml:"page_size"`
	Options        []OptionEntry `toml:"options"`
}

// DefaultProfile returns a small built-in profile so the demo runs
// without any configuration file.
func DefaultProfile() *Profile {
	return &Profile{
		Title:      "selectkit demo",
		Searchable: true,
		Clearable:  true,
		Options: []OptionEntry{
			{Value: "apple", Label: "Apple", Group: "Fruit"},
			{Value: "banana", Label: "Banana", Group: "Fruit"},
			{Value: "cherry", Label: "Cherry", Group: "Fruit"},
			{Value: "carrot", Label: "Carrot", Group: "Vegetable"},
			{Value: "daikon", Label: "Daikon", Group: "Vegetable", Disabled: true},
			{Value: "eggplant", Label: "Eggplant", Group: "Vegetable"},
		},
	}
}

// DefaultPath returns the profile location under the user config dir.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "selectkit", "profile.toml")
}

// Load reads a profile from path, falling back to the default profile
// when the file does not exist.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if len(p.Options) == 0 {
		p.Options = DefaultProfile().Options
	}
	return &p, nil
}

// Save writes the profile to path, creating parent directories.
func Save(p *Profile, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
