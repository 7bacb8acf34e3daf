package extract

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/textmend/textmend/pkg/record"
)

var (
	// jsonObjectPattern matches brace-balanced candidates (one nesting level)
	// embedded in loose text; each candidate is validated before use.
	jsonObjectPattern = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

	kvColon  = regexp.MustCompile(`([^:=\n]+):[ \t]*([^\n]+)`)
	kvEquals = regexp.MustCompile(`([^:=\n]+)=[ \t]*([^\n]+)`)
)

// Mixed handles content with no declared format. Sub-extractors run in a
// fixed order (JSON objects, HTML, CSV, key/value pairs) and their output is
// concatenated; each failure contributes nothing rather than aborting the
// call. When nothing matches, every non-blank line becomes a text_line
// record, so non-empty input never yields an empty result.
func Mixed(content string) []record.Record {
	var records []record.Record

	records = append(records, jsonObjects(content)...)

	lower := strings.ToLower(content)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<body") || strings.Contains(lower, "<div") {
		records = append(records, HTML(content)...)
	}

	if looksTabular(content) {
		records = append(records, CSV(content)...)
	}

	records = append(records, keyValues(content)...)

	if len(records) == 0 {
		records = TextLines(content)
	}
	return records
}

// JSON converts a valid JSON document into json_object records: one per
// object element of a top-level array, or a single record for a top-level
// object. ok is false when content is not valid JSON.
func JSON(content string) ([]record.Record, bool) {
	trimmed := strings.TrimSpace(content)
	if !gjson.Valid(trimmed) {
		return nil, false
	}

	parsed := gjson.Parse(trimmed)
	var records []record.Record
	switch {
	case parsed.IsArray():
		for _, el := range parsed.Array() {
			if values, ok := el.Value().(map[string]any); ok {
				records = append(records, record.JSONObject{Values: values})
			}
		}
	case parsed.IsObject():
		if values, ok := parsed.Value().(map[string]any); ok {
			records = append(records, record.JSONObject{Values: values})
		}
	}
	return records, true
}

// TextLines is the last-resort extractor: one record per non-blank line,
// numbered from 1.
func TextLines(content string) []record.Record {
	var records []record.Record
	for i, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, record.TextLine{
			LineNumber: i + 1,
			Content:    strings.TrimSpace(line),
		})
	}
	return records
}

// jsonObjects parses the whole content as JSON when possible, otherwise
// scans for embedded brace-balanced objects and keeps the ones that parse.
func jsonObjects(content string) []record.Record {
	if records, ok := JSON(content); ok {
		return records
	}

	var records []record.Record
	for _, candidate := range jsonObjectPattern.FindAllString(content, -1) {
		if !gjson.Valid(candidate) {
			continue
		}
		if values, ok := gjson.Parse(candidate).Value().(map[string]any); ok {
			records = append(records, record.JSONObject{Values: values})
		}
	}
	return records
}

// looksTabular reports whether content is plausibly CSV: commas plus
// newlines, with a comma in the first line.
func looksTabular(content string) bool {
	if !strings.Contains(content, ",") || !strings.Contains(content, "\n") {
		return false
	}
	lines := strings.Split(content, "\n")
	return len(lines) > 1 && strings.Contains(lines[0], ",")
}

// keyValues extracts "key: value" and "key=value" line patterns.
func keyValues(content string) []record.Record {
	var records []record.Record
	for _, re := range []*regexp.Regexp{kvColon, kvEquals} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			key := strings.TrimSpace(m[1])
			value := strings.TrimSpace(m[2])
			if key != "" && value != "" {
				records = append(records, record.KeyValue{Key: key, Value: value})
			}
		}
	}
	return records
}
