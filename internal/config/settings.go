package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/studiowebux/gist/internal/types"
)

// ErrInvalidTheme is returned when a theme name is not dark, light or system
var ErrInvalidTheme = errors.New("invalid theme: use 'dark', 'light', or 'system'")

// Defaults for a fresh installation
const (
	DefaultModel          = "openai/gpt-4o"
	DefaultBaseURL        = "https://openrouter.ai/api/v1"
	DefaultMessageTimeout = 5
)

// Settings is the user configuration stored in config.toml
type Settings struct {
	Editor           string      `toml:"editor" json:"editor"`
	DefaultTags      []string    `toml:"default_tags" json:"default_tags"`
	Theme            types.Theme `toml:"theme" json:"theme"`
	AutoGenerateTags bool        `toml:"auto_generate_tags" json:"auto_generate_tags"`
	TagAPIKey        string      `toml:"tag_api_key,omitempty" json:"tag_api_key,omitempty"`
	AIModel          string      `toml:"ai_model" json:"ai_model"`
	AIBaseURL        string      `toml:"ai_base_url" json:"ai_base_url"`
	MessageTimeout   int         `toml:"message_timeout" json:"message_timeout"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	return Settings{
		DefaultTags:      []string{"snippet"},
		Theme:            types.ThemeSystem,
		AutoGenerateTags: true,
		AIModel:          DefaultModel,
		AIBaseURL:        DefaultBaseURL,
		MessageTimeout:   DefaultMessageTimeout,
	}
}

// Load reads settings from path. A missing file yields defaults.
// When the TOML file is missing or unreadable as TOML, a legacy config.json in the
// same directory is migrated to TOML if present.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), fmt.Errorf("failed to read config: %w", err)
		}
		s, _, err := migrateLegacy(path)
		return s, err
	}

	s := DefaultSettings()
	if err := toml.Unmarshal(data, &s); err != nil {
		if legacy, ok, legacyErr := migrateLegacy(path); ok && legacyErr == nil {
			return legacy, nil
		}
		return DefaultSettings(), fmt.Errorf("failed to parse config: %w", err)
	}

	return s.normalize(), nil
}

// migrateLegacy converts config.json next to path into TOML
// It reports false when there is no legacy file.
func migrateLegacy(path string) (Settings, bool, error) {
	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "config.json"))
	if err != nil {
		return DefaultSettings(), false, nil
	}

	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), true, fmt.Errorf("failed to parse legacy config: %w", err)
	}

	s = s.normalize()
	if err := Save(path, s); err != nil {
		return s, true, fmt.Errorf("failed to migrate legacy config: %w", err)
	}

	return s, true, nil
}

func (s Settings) normalize() Settings {
	if theme, ok := types.ParseTheme(string(s.Theme)); ok {
		s.Theme = theme
	} else {
		s.Theme = types.ThemeSystem
	}
	if s.AIModel == "" {
		s.AIModel = DefaultModel
	}
	if s.AIBaseURL == "" {
		s.AIBaseURL = DefaultBaseURL
	}
	if s.MessageTimeout <= 0 {
		s.MessageTimeout = DefaultMessageTimeout
	}
	if s.DefaultTags == nil {
		s.DefaultTags = []string{}
	}
	return s
}

// Save writes settings to path as TOML
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// SetTheme validates and applies a theme name
func (s *Settings) SetTheme(name string) error {
	theme, ok := types.ParseTheme(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidTheme, name)
	}
	s.Theme = theme
	return nil
}

// DefaultTagString returns the default tags joined the way they are stored
func (s Settings) DefaultTagString() string {
	return strings.Join(s.DefaultTags, ", ")
}
