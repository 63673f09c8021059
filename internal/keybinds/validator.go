package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Context Context
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s in context '%s': %s", e.Type, e.Key, e.Context, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedKeys are keys that should not be rebound
	reservedKeys map[string]Action
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedKeys: map[string]Action{
			"ctrl+c": ActionQuitForce, // Force quit should always work
		},
	}
}

// ValidateConfig checks a user configuration before it is applied
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{}

	for context, section := range config.sections() {
		// Sorted for stable output
		actions := make([]string, 0, len(section))
		for a := range section {
			actions = append(actions, a)
		}
		sort.Strings(actions)

		owner := map[string]string{}
		for _, actionStr := range actions {
			if err := ValidateAction(actionStr); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Type:    "invalid",
					Context: context,
					Message: err.Error(),
				})
				continue
			}

			keys := SplitKeys(section[actionStr])
			if len(keys) == 0 {
				result.Warnings = append(result.Warnings, ValidationError{
					Type:    "warning",
					Context: context,
					Message: fmt.Sprintf("action '%s' has no keys and will be unbound", actionStr),
				})
			}

			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					result.Errors = append(result.Errors, ValidationError{
						Type:    "invalid",
						Context: context,
						Key:     key,
						Message: err.Error(),
					})
					continue
				}

				if prev, ok := owner[key]; ok {
					result.Errors = append(result.Errors, ValidationError{
						Type:    "conflict",
						Context: context,
						Key:     key,
						Message: fmt.Sprintf("bound to both '%s' and '%s'", prev, actionStr),
					})
					continue
				}
				owner[key] = actionStr

				if reserved, ok := v.reservedKeys[key]; ok && Action(actionStr) != reserved {
					result.Warnings = append(result.Warnings, ValidationError{
						Type:    "warning",
						Context: context,
						Key:     key,
						Message: "reserved key rebound (may cause issues)",
					})
				}
			}
		}
	}

	return result
}

// ValidateRegistry reports normal-mode keys shadowed by global bindings
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{}

	global := registry.ListBindings(ContextGlobal)
	for _, context := range Contexts {
		if context == ContextGlobal {
			continue
		}
		for _, b := range registry.ListBindings(context) {
			for _, g := range global {
				if g.Key == b.Key && g.Action != b.Action {
					result.Warnings = append(result.Warnings, ValidationError{
						Type:    "warning",
						Context: context,
						Key:     b.Key,
						Message: fmt.Sprintf("shadows global binding (%s -> %s)", g.Action, b.Action),
					})
				}
			}
		}
	}

	return result
}

// ValidateKey checks if a key string is valid
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	for _, mod := range []string{"ctrl+", "alt+", "shift+", "super+"} {
		if key == mod {
			return fmt.Errorf("modifier without key: %s", key)
		}
	}

	return nil
}

// ValidateAction checks if an action string names a known action
func ValidateAction(actionStr string) error {
	if actionStr == "" {
		return fmt.Errorf("action cannot be empty")
	}
	if !IsKnownAction(Action(actionStr)) {
		return fmt.Errorf("unknown action '%s'", actionStr)
	}
	return nil
}
