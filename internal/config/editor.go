package config

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// lookPath is replaced in tests
var lookPath = exec.LookPath

// ResolveEditor returns the editor command to run
// Order: configured editor, $EDITOR, first installed of nvim/vim/nano, then vi
func ResolveEditor(configured string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	if env := os.Getenv("EDITOR"); strings.TrimSpace(env) != "" {
		return env
	}

	candidates := []string{"nvim", "vim", "nano"}
	if runtime.GOOS == "windows" {
		candidates = []string{"notepad"}
	}
	for _, c := range candidates {
		if _, err := lookPath(c); err == nil {
			return c
		}
	}

	return "vi"
}
