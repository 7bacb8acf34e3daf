// Package format detects the format family of a piece of text content.
// Extension mapping wins when a filename is available; otherwise the content
// is sniffed for structural markers.
package format

import (
	"path/filepath"
	"strings"
)

// Tag is the detected format family.
type Tag string

const (
	TagHTML     Tag = "html"
	TagJSON     Tag = "json"
	TagMarkdown Tag = "markdown"
	TagXML      Tag = "xml"
	TagCSV      Tag = "csv"
	TagText     Tag = "text"
)

var extensions = map[string]Tag{
	".html":     TagHTML,
	".htm":      TagHTML,
	".json":     TagJSON,
	".md":       TagMarkdown,
	".markdown": TagMarkdown,
	".xml":      TagXML,
	".csv":      TagCSV,
	".txt":      TagText,
	".text":     TagText,
}

// Detect chooses a format tag for the given content. A recognized filename
// extension takes precedence; unknown extensions and empty filenames fall
// through to content sniffing.
func Detect(filename, content string) Tag {
	if tag, ok := FromExtension(filename); ok {
		return tag
	}
	return Sniff(content)
}

// FromExtension maps a filename extension to a format tag.
func FromExtension(filename string) (Tag, bool) {
	if filename == "" {
		return TagText, false
	}
	ext := strings.ToLower(filepath.Ext(filename))
	tag, ok := extensions[ext]
	return tag, ok
}

// Sniff inspects content for structural markers. JSON and HTML are checked
// before defaulting to text: misclassifying structured content as plain text
// would silently disable repair.
func Sniff(content string) Tag {
	trimmed := strings.TrimSpace(content)
	lower := strings.ToLower(trimmed)

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return TagJSON
	}
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<body") || strings.Contains(lower, "<div") {
		return TagHTML
	}
	if strings.HasPrefix(lower, "<?xml") {
		return TagXML
	}
	return TagText
}
