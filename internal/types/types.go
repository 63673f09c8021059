package types

import (
	"fmt"
	"strings"
	"time"
)

// Gist is a stored snippet of text with its tags
type Gist struct {
	ID        int64     `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	Tags      string    `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// IDString returns the decimal id used for display and search
func (g Gist) IDString() string {
	return fmt.Sprintf("%d", g.ID)
}

// ExportVersion is the current export envelope version
const ExportVersion = 1

// ExportFile is the envelope written by export and read by import
type ExportFile struct {
	Version int    `json:"version" yaml:"version"`
	Gists   []Gist `json:"gists" yaml:"gists"`
}

// Theme selects the viewer color palette
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// ParseTheme parses a theme name case-insensitively
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, true
	case ThemeLight:
		return ThemeLight, true
	case ThemeSystem:
		return ThemeSystem, true
	}
	return "", false
}

// FindByID returns the index of the gist with the given id, or -1
func FindByID(gists []Gist, id int64) int {
	for i, g := range gists {
		if g.ID == id {
			return i
		}
	}
	return -1
}
