// Package tags normalizes tag strings and suggests tags for new content.
package tags

import "strings"

// MaxTags is the number of tags kept after sanitizing
const MaxTags = 10

// Separator joins tags in their stored form
const Separator = ", "

// Sanitize splits raw on commas, trims each entry, drops empty ones and keeps
// at most MaxTags in their original order.
func Sanitize(raw string) string {
	return strings.Join(Split(raw), Separator)
}

// Split returns the non-empty trimmed tags of a stored tag string, capped at MaxTags
func Split(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
