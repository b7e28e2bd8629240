package review

import (
	"strings"
	"unicode"
)

const suggestionCutset = "•-*123456789.)"

// ExtractSection returns the text following the first header variant of name
// found in text, up to the next blank line. Variants are tried in a fixed
// order: exact, title case and upper case with a colon, then the same three
// without one. It returns "" when no variant occurs.
func ExtractSection(text, name string) string {
	section, _ := findSection(text, name)
	return section
}

func findSection(text, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, header := range headerVariants(name) {
		idx := strings.Index(text, header)
		if idx < 0 {
			continue
		}
		rest := text[idx+len(header):]
		if end := strings.Index(rest, "\n\n"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest), true
	}
	return "", false
}

func headerVariants(name string) []string {
	title := titleCase(name)
	upper := strings.ToUpper(name)
	return []string{
		name + ":", title + ":", upper + ":",
		name, title, upper,
	}
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "call to action" becomes "Call To Action".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// valueAfter finds marker case-insensitively and returns everything after its
// first occurrence.
func valueAfter(text, marker string) (string, bool) {
	idx := indexFold(text, marker)
	if idx < 0 {
		return "", false
	}
	return text[idx+len(marker):], true
}

// indexFold is strings.Index under Unicode case folding. Offsets refer to s
// itself, unlike searching a lower-cased copy.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func firstLine(s string) string {
	if end := strings.IndexByte(s, '\n'); end >= 0 {
		return s[:end]
	}
	return s
}

// ExtractFeedback returns the rest of the line after "feedback:", or the whole
// text trimmed when there is no such marker.
func ExtractFeedback(text string) string {
	rest, ok := valueAfter(text, "feedback:")
	if !ok {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(firstLine(rest))
}

// ExtractSuggestions collects the lines following "suggestions:", with leading
// bullets and numbering removed. The result is never nil.
func ExtractSuggestions(text string) []string {
	suggestions := []string{}
	rest, ok := valueAfter(text, "suggestions:")
	if !ok {
		return suggestions
	}
	for _, line := range strings.Split(rest, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || indexFold(line, "suggestions:") == 0 {
			continue
		}
		clean := strings.TrimSpace(strings.TrimLeft(line, suggestionCutset))
		if clean != "" {
			suggestions = append(suggestions, clean)
		}
	}
	return suggestions
}

// ExtractSeverity reads the value after "severity:" up to the end of its line
// or sentence. Anything other than low, medium or high yields medium.
func ExtractSeverity(text string) Severity {
	rest, ok := valueAfter(text, "severity:")
	if !ok {
		return SeverityMedium
	}
	value := firstLine(rest)
	if end := strings.IndexByte(value, '.'); end >= 0 {
		value = value[:end]
	}
	sev, ok := ParseSeverity(value)
	if !ok {
		return SeverityMedium
	}
	return sev
}
