package keybinds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict error",
			err: ValidationError{
				Type:    "conflict",
				Context: ContextNormal,
				Key:     "q",
				Message: "bound to both 'quit' and 'add'",
			},
			expected: "[conflict] q in context 'normal': bound to both 'quit' and 'add'",
		},
		{
			name: "invalid error",
			err: ValidationError{
				Type:    "invalid",
				Context: ContextGlobal,
				Message: "empty key",
			},
			expected: "[invalid]  in context 'global': empty key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	empty := &ValidationResult{}
	if empty.String() != "No issues found" {
		t.Errorf("Expected 'No issues found', got %q", empty.String())
	}

	r := &ValidationResult{
		Errors:   []ValidationError{{Type: "invalid", Context: ContextNormal, Key: "", Message: "x"}},
		Warnings: []ValidationError{{Type: "warning", Context: ContextNormal, Key: "ctrl+c", Message: "y"}},
	}
	s := r.String()
	if !strings.Contains(s, "Errors (1)") || !strings.Contains(s, "Warnings (1)") {
		t.Errorf("Unexpected summary: %q", s)
	}
	if !r.HasErrors() || !r.HasWarnings() {
		t.Error("Expected both errors and warnings")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		config       *Config
		wantErrors   int
		wantWarnings int
	}{
		{
			name:   "valid override",
			config: &Config{Normal: map[string]string{"add": "n", "quit": "q,x"}},
		},
		{
			name:       "unknown action",
			config:     &Config{Normal: map[string]string{"launch_rockets": "l"}},
			wantErrors: 1,
		},
		{
			name:       "key bound twice in one context",
			config:     &Config{Normal: map[string]string{"add": "n", "edit": "n"}},
			wantErrors: 1,
		},
		{
			name:       "modifier without key",
			config:     &Config{Normal: map[string]string{"add": "ctrl+"}},
			wantErrors: 1,
		},
		{
			name:         "reserved key rebound",
			config:       &Config{Normal: map[string]string{"quit": "ctrl+c"}},
			wantWarnings: 1,
		},
		{
			name:         "action unbound",
			config:       &Config{Normal: map[string]string{"copy_to_clipboard": ""}},
			wantWarnings: 1,
		},
		{
			name: "same key in different contexts is fine",
			config: &Config{
				Normal:  map[string]string{"add": "n"},
				Confirm: map[string]string{"cancel": "n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateConfig(tt.config)
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("Expected %d errors, got %d: %s", tt.wantErrors, len(result.Errors), result.String())
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("Expected %d warnings, got %d: %s", tt.wantWarnings, len(result.Warnings), result.String())
			}
		})
	}
}

func TestValidateRegistry_DefaultsHaveNoShadowing(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())
	if result.HasWarnings() || result.HasErrors() {
		t.Errorf("Expected clean defaults, got: %s", result.String())
	}
}

func TestValidateRegistry_ReportsShadowing(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(ContextNormal, "ctrl+c", ActionQuit)

	result := NewValidator().ValidateRegistry(r)
	if !result.HasWarnings() {
		t.Error("Expected shadowing warning")
	}
}

func TestValidateKey(t *testing.T) {
	valid := []string{"a", "ctrl+k", "shift+insert", "pgdown", "?"}
	for _, k := range valid {
		if err := ValidateKey(k); err != nil {
			t.Errorf("ValidateKey(%q) unexpected error: %v", k, err)
		}
	}

	invalid := []string{"", "ctrl+", "alt+"}
	for _, k := range invalid {
		if err := ValidateKey(k); err == nil {
			t.Errorf("ValidateKey(%q) expected error", k)
		}
	}
}

func TestDefaultRegistry_NormalBindings(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		key    string
		action Action
	}{
		{"j", ActionNavigateDown},
		{"down", ActionNavigateDown},
		{"k", ActionNavigateUp},
		{"pgdown", ActionPageDown},
		{"home", ActionGoToTop},
		{"end", ActionGoToBottom},
		{"tab", ActionSwitchFocus},
		{"s", ActionOpenSearch},
		{"/", ActionOpenSearch},
		{"t", ActionEditTags},
		{"d", ActionDelete},
		{"q", ActionQuit},
		{"?", ActionOpenHelp},
		{"a", ActionAdd},
		{"e", ActionEdit},
		{"y", ActionCopy},
		{"r", ActionReload},
		{"ctrl+c", ActionQuitForce},
	}

	for _, tt := range tests {
		action, ok := r.Match(ContextNormal, tt.key)
		if !ok || action != tt.action {
			t.Errorf("Match(normal, %q) = (%q, %v), want %q", tt.key, action, ok, tt.action)
		}
	}
}

func TestRegistry_GlobalFallback(t *testing.T) {
	r := NewDefaultRegistry()

	action, ok := r.Match(ContextHelp, "ctrl+c")
	if !ok || action != ActionQuitForce {
		t.Errorf("Expected global fallback, got (%q, %v)", action, ok)
	}

	if _, ok := r.Match(ContextConfirm, "x"); ok {
		t.Error("Expected no match for unbound key")
	}
}

func TestRegistry_GetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextNormal, ActionOpenSearch); got != "/, s" {
		t.Errorf("GetBindingString() = %q, want %q", got, "/, s")
	}
	if got := r.GetBindingString(ContextNormal, Action("nope")); got != "unbound" {
		t.Errorf("GetBindingString() = %q, want unbound", got)
	}
}

func TestApplyConfig_ReplacesDefaults(t *testing.T) {
	r := NewDefaultRegistry()
	cfg := &Config{Normal: map[string]string{"add": "n,insert"}}

	if err := ApplyConfig(r, cfg); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}

	if _, ok := r.Match(ContextNormal, "a"); ok {
		t.Error("Expected default 'a' binding to be replaced")
	}
	for _, k := range []string{"n", "insert"} {
		if action, ok := r.Match(ContextNormal, k); !ok || action != ActionAdd {
			t.Errorf("Expected %q bound to add, got (%q, %v)", k, action, ok)
		}
	}
	if action, _ := r.Match(ContextNormal, "e"); action != ActionEdit {
		t.Error("Expected unrelated defaults to survive")
	}
}

func TestApplyConfig_RejectsInvalid(t *testing.T) {
	r := NewDefaultRegistry()
	err := ApplyConfig(r, &Config{Normal: map[string]string{"bogus": "b"}})
	if err == nil {
		t.Fatal("Expected error for unknown action")
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	r, err := LoadOrDefault(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("LoadOrDefault(missing) error = %v", err)
	}
	if action, _ := r.Match(ContextNormal, "a"); action != ActionAdd {
		t.Error("Expected defaults when file is missing")
	}

	path := filepath.Join(dir, "keybinds.json")
	content := `{
  // comments are allowed
  "version": "1.0",
  "normal": {
    "reload": "R" /* trailing */
  }
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	r, err = LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if action, ok := r.Match(ContextNormal, "R"); !ok || action != ActionReload {
		t.Errorf("Expected R bound to reload, got (%q, %v)", action, ok)
	}

	if err := os.WriteFile(path, []byte(`{"normal": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestExportRegistry_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "keybinds.json")

	if err := SaveConfig(ExportRegistry(NewDefaultRegistry()), path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Normal["navigate_down"] != "down,j" {
		t.Errorf("navigate_down = %q, want %q", cfg.Normal["navigate_down"], "down,j")
	}

	r := NewRegistry()
	if err := ApplyConfig(r, cfg); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}
	if action, _ := r.Match(ContextConfirm, "y"); action != ActionConfirm {
		t.Error("Expected confirm binding after round trip")
	}
}

func TestSplitKeys(t *testing.T) {
	got := SplitKeys(" up , k ,, ")
	if len(got) != 2 || got[0] != "up" || got[1] != "k" {
		t.Errorf("SplitKeys() = %v", got)
	}
	if got := SplitKeys(","); len(got) != 1 || got[0] != "," {
		t.Errorf("SplitKeys(\",\") = %v", got)
	}
}
