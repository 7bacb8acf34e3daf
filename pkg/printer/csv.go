package printer

import "strings"

// CSV re-joins comma-separated fields with a canonical ", " separator.
// The split is quote-aware so commas inside quoted fields survive.
func CSV(content string) string {
	var formatted []string

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			formatted = append(formatted, "")
			continue
		}
		formatted = append(formatted, strings.Join(splitQuoted(line), ", "))
	}

	return strings.Join(formatted, "\n")
}

// splitQuoted splits a CSV line on commas outside double quotes, trimming
// each field.
func splitQuoted(line string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			current.WriteByte(c)
		case c == ',' && !inQuotes:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}

	return parts
}
