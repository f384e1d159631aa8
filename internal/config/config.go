// Package config handles loading and saving user configuration for minpair.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/minpair/internal/pairs"
)

// File names inside the config directory.
const (
	SettingsFile = "config.yaml"
	PresetsFile  = "presets.yaml"
)

// ErrPresetNotFound is returned when a named preset does not exist.
var ErrPresetNotFound = errors.New("preset not found")

// Settings are the persistent defaults for command-line flags.
type Settings struct {
	Dict      string `yaml:"dict"`       // Path to the dictionary file
	SkipLines int    `yaml:"skip_lines"` // Header lines skipped in the dictionary
	Workers   int    `yaml:"workers"`    // 0 means one per CPU
	Output    string `yaml:"output"`
	Format    string `yaml:"format"`
	AudioDir  string `yaml:"audio_dir"`
	Log       Log    `yaml:"log"`
}

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		SkipLines: 1,
		Output:    "minimal_pairs.csv",
		Format:    "csv",
		Log:       Log{Level: "info", Format: "text"},
	}
}

// Preset is a named, reusable pair query.
type Preset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	pairs.Query `yaml:",inline"`
}

// LoadSettings loads settings from a YAML file. Missing keys keep their
// defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing settings file: %w", err)
	}

	return s, nil
}

// LoadPresets loads filter presets from a YAML file.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}

	var presets struct {
		Presets []Preset `yaml:"presets"`
	}
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parsing presets file: %w", err)
	}

	return presets.Presets, nil
}

// SavePresets saves filter presets to a YAML file.
func SavePresets(path string, presets []Preset) error {
	data := struct {
		Presets []Preset `yaml:"presets"`
	}{Presets: presets}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return fmt.Errorf("marshaling presets: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing presets file: %w", err)
	}

	return nil
}

// FindPreset returns the preset called name. The error lists the names that
// do exist.
func FindPreset(presets []Preset, name string) (Preset, error) {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return Preset{}, fmt.Errorf("%w: %s (no presets defined; run 'minpair init')", ErrPresetNotFound, name)
	}
	return Preset{}, fmt.Errorf("%w: %s (available: %s)", ErrPresetNotFound, name, strings.Join(names, ", "))
}

// SavePreset stores p in the presets file at path, replacing any preset with
// the same name. A missing file is created.
func SavePreset(path string, p Preset) error {
	presets, err := LoadPresets(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	replaced := false
	for i := range presets {
		if presets[i].Name == p.Name {
			presets[i] = p
			replaced = true
		}
	}
	if !replaced {
		presets = append(presets, p)
	}

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return SavePresets(path, presets)
}

// Merge overlays non-empty values of q onto the preset's query. Sets given
// on the command line replace the preset's sets rather than extending them.
func (p Preset) Merge(q pairs.Query) pairs.Query {
	out := p.Query
	if len(q.Vowels) > 0 {
		out.Vowels = q.Vowels
	}
	if len(q.Initials) > 0 {
		out.Initials = q.Initials
	}
	if len(q.Finals) > 0 {
		out.Finals = q.Finals
	}
	if len(q.Tones) > 0 {
		out.Tones = q.Tones
	}
	if q.Mode != "" {
		out.Mode = q.Mode
	}
	return out
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "minpair"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}
