package types

import "testing"

func TestParseTheme(t *testing.T) {
	tests := []struct {
		input string
		want  Theme
		ok    bool
	}{
		{"dark", ThemeDark, true},
		{"Light", ThemeLight, true},
		{" SYSTEM ", ThemeSystem, true},
		{"solarized", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTheme(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseTheme(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFindByID(t *testing.T) {
	gists := []Gist{{ID: 3}, {ID: 7}, {ID: 1}}

	if idx := FindByID(gists, 7); idx != 1 {
		t.Errorf("Expected index 1, got %d", idx)
	}
	if idx := FindByID(gists, 42); idx != -1 {
		t.Errorf("Expected -1 for missing id, got %d", idx)
	}
	if idx := FindByID(nil, 1); idx != -1 {
		t.Errorf("Expected -1 for empty slice, got %d", idx)
	}
}

func TestGistIDString(t *testing.T) {
	g := Gist{ID: 120}
	if g.IDString() != "120" {
		t.Errorf("Expected \"120\", got %q", g.IDString())
	}
}
