// Package jsonrepair repairs structurally broken JSON text and re-serializes
// it in a canonical 2-space indented form. The entry point never fails: when
// every repair pass is exhausted without producing valid JSON, the best-effort
// repaired text is returned as-is.
package jsonrepair

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var (
	reTru       = regexp.MustCompile(`\btru\b`)
	reFals      = regexp.MustCompile(`\bfals\b`)
	reUndefined = regexp.MustCompile(`\bundefined\b`)
	reNaN       = regexp.MustCompile(`\bNaN\b`)

	reLineComment  = regexp.MustCompile(`(?m)//.*$`)
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

	reSingleQuoteKey   = regexp.MustCompile(`'(\w+)'\s*:`)
	reSingleQuoteValue = regexp.MustCompile(`:\s*'([^',}\]]*)'\s*([,}\]])`)

	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// commaHealers is the fixed, ordered list of adjacent-value patterns the
// character scanner misses across newlines: a completed value on one line
// followed by a new key, object, or array on the next.
var commaHealers = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`(")\s*\n\s*(")`), "${1},\n  ${2}"},
	{regexp.MustCompile(`(")[ \t]+(")`), "${1}, ${2}"},
	{regexp.MustCompile(`(":\s*"[^"]*")[ \t]+(")`), "${1}, ${2}"},
	{regexp.MustCompile(`(null|true|false|\d+)\s*\n\s*(")`), "${1},\n  ${2}"},
	{regexp.MustCompile(`(null|true|false|\d+)[ \t]+(")`), "${1}, ${2}"},
	{regexp.MustCompile(`(\})\s*\n\s*(")`), "${1},\n  ${2}"},
	{regexp.MustCompile(`(\])\s*\n\s*(")`), "${1},\n  ${2}"},
	{regexp.MustCompile(`(")\s*\n\s*(\{)`), "${1},\n  ${2}"},
	{regexp.MustCompile(`(")\s*\n\s*(\[)`), "${1},\n  ${2}"},
	{regexp.MustCompile(`(")\s*"([a-zA-Z_])`), "${1}, \"${2}"},
}

// RepairAndFormat repairs malformed JSON and formats it with 2-space
// indentation. Already-valid input is re-serialized directly, making the fast
// path idempotent. The function always returns some string; when repair fails
// the repaired-but-unparsed text is returned verbatim.
func RepairAndFormat(content string) string {
	trimmed := strings.TrimSpace(content)

	// Fast path: valid input only needs canonical formatting.
	if gjson.Valid(trimmed) {
		return canonical(trimmed)
	}

	repaired := Repair(trimmed)
	if gjson.Valid(repaired) {
		return canonical(repaired)
	}

	// Degraded recovery: balance and parse from the first opening bracket,
	// dropping any leading garbage.
	if partial, ok := extractBalanced(repaired); ok {
		return canonical(partial)
	}

	return strings.TrimSpace(repaired)
}

// Repair applies every repair pass without the final serialization step.
// The result is best-effort text: closer to valid JSON, not guaranteed valid.
func Repair(content string) string {
	content = fixLexical(strings.TrimSpace(content))
	content = repairScan(content)
	for _, h := range commaHealers {
		content = h.pattern.ReplaceAllString(content, h.replace)
	}
	content = healLines(content)
	content = reTrailingComma.ReplaceAllString(content, "${1}")
	content = dropCommaLines(content)
	content = balanceBrackets(content)
	return content
}

// fixLexical strips the BOM and comments, corrects common token typos, and
// converts single-quoted keys and values to double quotes.
func fixLexical(content string) string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = reTru.ReplaceAllString(content, "true")
	content = reFals.ReplaceAllString(content, "false")
	content = reUndefined.ReplaceAllString(content, "null")
	content = reNaN.ReplaceAllString(content, "null")
	content = reLineComment.ReplaceAllString(content, "")
	content = reBlockComment.ReplaceAllString(content, "")
	content = reSingleQuoteKey.ReplaceAllString(content, `"${1}":`)
	content = reSingleQuoteValue.ReplaceAllString(content, `: "${1}"${2}`)
	return content
}

// healLines repairs structure the flat regexes cannot see: an array item line
// followed by an object-key line means the array should have closed, and two
// adjacent value lines inside an object are missing a comma.
func healLines(content string) string {
	lines := strings.Split(content, "\n")
	repaired := make([]string, 0, len(lines))
	arrayDepth := 0

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		arrayDepth += strings.Count(stripped, "[") - strings.Count(stripped, "]")
		inArray := arrayDepth > 0

		// Standalone comma lines are dropped; when the next line starts a new
		// object key while an array is open, the array gets closed first.
		if stripped == "," || stripped == ",," {
			if i+1 < len(lines) {
				next := strings.TrimSpace(lines[i+1])
				if inArray && isKeyLine(next) {
					repaired = append(repaired, "],")
					arrayDepth = 0
				}
			}
			continue
		}

		repaired = append(repaired, line)

		if i+1 >= len(lines) {
			continue
		}
		next := strings.TrimSpace(lines[i+1])
		if next == "," {
			if i+2 >= len(lines) {
				continue
			}
			next = strings.TrimSpace(lines[i+2])
		}
		if !isKeyLine(next) {
			continue
		}

		bareValue := strings.HasPrefix(stripped, `"`) && strings.HasSuffix(stripped, `"`) &&
			!strings.Contains(stripped, ":")

		switch {
		case inArray && bareValue:
			// Array item directly followed by an object key: the array was
			// never closed.
			repaired[len(repaired)-1] = strings.TrimRight(line, " \t") + "],"
			arrayDepth = 0
		case strings.HasSuffix(stripped, `"`) && strings.Contains(stripped, ":"):
			repaired[len(repaired)-1] = strings.TrimRight(line, " \t") + ","
		case bareValue:
			repaired[len(repaired)-1] = strings.TrimRight(line, " \t") + ","
		}
	}

	return strings.Join(repaired, "\n")
}

// isKeyLine reports whether a line starts a new object member.
func isKeyLine(line string) bool {
	return strings.HasPrefix(line, `"`) && strings.Contains(line, ":")
}

// dropCommaLines removes now-redundant standalone comma lines.
func dropCommaLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if s := strings.TrimSpace(line); s == "," || s == ",," {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// balanceBrackets appends missing closers when openers outnumber them.
func balanceBrackets(content string) string {
	braces := strings.Count(content, "{") - strings.Count(content, "}")
	brackets := strings.Count(content, "[") - strings.Count(content, "]")
	if braces > 0 {
		content = strings.TrimRight(content, " \t\n\r") + "\n" + strings.Repeat("}", braces)
	}
	if brackets > 0 {
		content = strings.TrimRight(content, " \t\n\r") + "\n" + strings.Repeat("]", brackets)
	}
	return content
}

// extractBalanced finds the first opening bracket, balances the remainder,
// and reports whether the result parses.
func extractBalanced(content string) (string, bool) {
	start := strings.IndexAny(content, "{[")
	if start < 0 {
		return "", false
	}
	partial := balanceBrackets(content[start:])
	if gjson.Valid(partial) {
		return partial, true
	}
	return "", false
}

// canonical re-serializes valid JSON with 2-space indentation, preserving
// member order.
func canonical(content string) string {
	return strings.TrimSpace(string(pretty.Pretty([]byte(content))))
}
