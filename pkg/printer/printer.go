// Package printer provides the low-effort canonical formatters: stateless
// line rewriters for Markdown, XML, CSV, and plain text. Each produces
// format-preserving, whitespace-normalized output and never fails.
package printer

import "strings"

// Markdown normalizes spacing: a blank line is inserted before headings and
// fenced-code delimiters, trailing whitespace is trimmed, and consecutive
// blank lines are capped at one.
func Markdown(content string) string {
	var formatted []string
	prevEmpty := false

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(stripped, "#"):
			if len(formatted) > 0 && !prevEmpty {
				formatted = append(formatted, "")
			}
			formatted = append(formatted, strings.TrimRight(line, " \t"))
			prevEmpty = true
		case strings.HasPrefix(stripped, "```"):
			if !prevEmpty {
				formatted = append(formatted, "")
			}
			formatted = append(formatted, strings.TrimRight(line, " \t"))
			prevEmpty = true
		case stripped != "":
			formatted = append(formatted, strings.TrimRight(line, " \t"))
			prevEmpty = false
		default:
			if !prevEmpty || lastNonEmpty(formatted) {
				formatted = append(formatted, "")
			}
			prevEmpty = true
		}
	}

	return strings.Join(formatted, "\n")
}

// Text trims trailing whitespace per line and caps consecutive blank lines
// at one.
func Text(content string) string {
	var formatted []string
	prevEmpty := false

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			formatted = append(formatted, strings.TrimRight(line, " \t"))
			prevEmpty = false
			continue
		}
		if !prevEmpty || lastNonEmpty(formatted) {
			formatted = append(formatted, "")
		}
		prevEmpty = true
	}

	return strings.Join(formatted, "\n")
}

func lastNonEmpty(lines []string) bool {
	return len(lines) > 0 && lines[len(lines)-1] != ""
}
