package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/studiowebux/gist/internal/filter"
	"github.com/studiowebux/gist/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	previewLines = 3
	previewWidth = 60
	dateLayout   = "2006-01-02 15:04"
)

// ANSI color codes
const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorDim   = "\x1b[2m"
	colorBold  = "\x1b[1m"
)

// Color output is disabled when stdout is not a terminal or NO_COLOR is set
var useColor = isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

// PrintSuccess prints a green check line
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", paint(colorGreen, "✓"), msg)
}

// PrintError prints a red "Error:" prefixed line
func PrintError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", paint(colorRed+colorBold, "Error:"), msg)
}

// Preview renders a short listing entry: header line plus up to three
// content lines, each cut at 60 characters
func Preview(g types.Gist) string {
	var sb strings.Builder

	header := fmt.Sprintf("#%d", g.ID)
	sb.WriteString(paint(colorBold, header))
	if g.Tags != "" {
		sb.WriteString(" [" + g.Tags + "]")
	}
	sb.WriteString(" " + paint(colorDim, formatDate(g)))
	sb.WriteString("\n")

	lines := strings.Split(strings.TrimRight(g.Content, "\n"), "\n")
	for i, line := range lines {
		if i == previewLines {
			sb.WriteString("  ...\n")
			break
		}
		sb.WriteString("  " + truncate(line, previewWidth) + "\n")
	}

	return sb.String()
}

// Display renders a full gist for the view command
func Display(g types.Gist) string {
	var sb strings.Builder

	sb.WriteString(paint(colorBold, fmt.Sprintf("Gist #%d", g.ID)) + "\n")
	tags := g.Tags
	if tags == "" {
		tags = "(none)"
	}
	sb.WriteString(fmt.Sprintf("Tags: %s\n", tags))
	sb.WriteString(fmt.Sprintf("Created: %s\n", formatDate(g)))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(g.Content)
	if !strings.HasSuffix(g.Content, "\n") {
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatList renders gists as text previews, JSON or YAML.
// A non-empty query is applied as a JMESPath expression and always yields JSON.
func FormatList(gists []types.Gist, format, query string) (string, error) {
	if gists == nil {
		gists = []types.Gist{}
	}

	if query != "" {
		return filter.Query(gists, query)
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(gists, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(gists)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text", "":
		var sb strings.Builder
		for _, g := range gists {
			sb.WriteString(Preview(g))
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown output format '%s' (use text, json or yaml)", format)
	}
}

// Confirm asks a y/N question on out and reads the answer from in
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// IsInteractive checks if stdin is a terminal (not piped)
func IsInteractive() bool {
	return isTerminal(os.Stdin)
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func formatDate(g types.Gist) string {
	if g.CreatedAt.IsZero() {
		return "unknown date"
	}
	return g.CreatedAt.Local().Format(dateLayout)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
