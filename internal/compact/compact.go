// Package compact renders corpus DataSources into dense "## Heading" text
// blocks for the system prompt. Every function is pure: the same inputs
// always produce the same string.
package compact

import (
	"fmt"
	"regexp"
	"strings"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// trailingPartial matches the last whitespace-separated run so a cut never
// ends mid-word.
var trailingPartial = regexp.MustCompile(`\s+\S*$`)

// Truncate trims s and, if it is longer than max runes, cuts it at max,
// drops the trailing partial word and appends an ellipsis. The result is at
// most max+1 runes.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 0 {
		return Ellipsis
	}
	cut := trailingPartial.ReplaceAllString(string(r[:max]), "")
	return cut + Ellipsis
}

// field is a labeled value in a compacted line. An empty label renders the
// value alone.
type field struct {
	label string
	value string
}

// joinFields renders fields as "label: value" joined by " | ", dropping
// fields whose value is blank.
func joinFields(fields ...field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			continue
		}
		if f.label == "" {
			parts = append(parts, v)
		} else {
			parts = append(parts, f.label+": "+v)
		}
	}
	return strings.Join(parts, " | ")
}

// joinNonEmpty joins the non-blank items with sep.
func joinNonEmpty(sep string, items ...string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return strings.Join(out, sep)
}

// block assembles a heading and its lines. An empty line set yields "" so
// callers can filter missing sections.
func block(title string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("## ")
	sb.WriteString(title)
	for _, l := range lines {
		sb.WriteString("\n")
		sb.WriteString(l)
	}
	return sb.String()
}

// labeled prefixes a line with its key. A key with no body stands alone.
func labeled(key, body string) string {
	if body == "" {
		return key
	}
	return fmt.Sprintf("%s: %s", key, body)
}

// Join concatenates non-empty blocks with a blank line between them.
func Join(blocks ...string) string {
	return joinNonEmpty("\n\n", blocks...)
}

// CompactVaultEntries is reserved for per-topic entry files that do not exist
// yet; it returns "" so area knowledge skips it.
func CompactVaultEntries(_ string) string {
	return ""
}
