package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Each section maps an action name to a comma-separated list of keys, e.g.
// "navigate_down": "down,j". Listing an action replaces its default keys.
type Config struct {
	Version   string            `json:"version"`
	Global    map[string]string `json:"global,omitempty"`
	Normal    map[string]string `json:"normal,omitempty"`
	TextInput map[string]string `json:"text_input,omitempty"`
	Help      map[string]string `json:"help,omitempty"`
	Confirm   map[string]string `json:"confirm,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextNormal:    c.Normal,
		ContextTextInput: c.TextInput,
		ContextHelp:      c.Help,
		ContextConfirm:   c.Confirm,
	}
}

// LoadConfig loads keybinding configuration from a JSON file; // and /* */ comments are allowed
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SplitKeys parses a comma-separated key list; a lone "," is kept as a key
func SplitKeys(spec string) []string {
	if strings.TrimSpace(spec) == "," {
		return []string{","}
	}
	var keys []string
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ApplyConfig applies user configuration to a registry
// User bindings replace the default keys of each listed action
func ApplyConfig(registry *Registry, config *Config) error {
	result := NewValidator().ValidateConfig(config)
	if result.HasErrors() {
		return fmt.Errorf("invalid keybindings:\n%s", result.String())
	}

	for context, section := range config.sections() {
		for actionStr, keySpec := range section {
			action := Action(actionStr)
			registry.Unbind(context, action)
			registry.RegisterMultiple(context, SplitKeys(keySpec), action)
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	config, err := LoadConfig(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return registry, nil
		}
		return registry, fmt.Errorf("failed to load keybinds.json: %w", err)
	}

	if err := ApplyConfig(registry, config); err != nil {
		return NewDefaultRegistry(), fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}

// ExportRegistry renders a registry as a config, one entry per action
func ExportRegistry(registry *Registry) *Config {
	config := &Config{
		Version:   "1.0",
		Global:    map[string]string{},
		Normal:    map[string]string{},
		TextInput: map[string]string{},
		Help:      map[string]string{},
		Confirm:   map[string]string{},
	}

	sections := config.sections()
	for _, context := range Contexts {
		grouped := map[Action][]string{}
		for _, b := range registry.ListBindings(context) {
			grouped[b.Action] = append(grouped[b.Action], b.Key)
		}
		for action, keys := range grouped {
			sections[context][string(action)] = strings.Join(keys, ",")
		}
	}

	return config
}
