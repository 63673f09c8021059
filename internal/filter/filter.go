package filter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/gist/internal/types"
)

// Matches reports whether query is a case-insensitive substring of the gist's
// content, tags or decimal id. An empty query matches everything.
func Matches(g types.Gist, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(g.Content), q) ||
		strings.Contains(strings.ToLower(g.Tags), q) ||
		strings.Contains(g.IDString(), q)
}

// Apply returns the gists matching query in their original order
func Apply(all []types.Gist, query string) []types.Gist {
	out := make([]types.Gist, 0, len(all))
	for _, g := range all {
		if Matches(g, query) {
			out = append(out, g)
		}
	}
	return out
}

// gistSource adapts a gist slice to fuzzy.Source
type gistSource []types.Gist

func (s gistSource) String(i int) string {
	g := s[i]
	return g.Tags + " " + g.Content
}

func (s gistSource) Len() int {
	return len(s)
}

// Rank orders gists by fuzzy match score against query, best first.
// Gists that do not match at all are dropped.
func Rank(all []types.Gist, query string) []types.Gist {
	if query == "" {
		return append([]types.Gist(nil), all...)
	}

	matches := fuzzy.FindFrom(query, gistSource(all))
	out := make([]types.Gist, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out
}

// Query applies a JMESPath expression to v after a JSON round trip so struct
// tags define the field names. The result is indented JSON.
func Query(v interface{}, expression string) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal input: %w", err)
	}

	var data interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}
