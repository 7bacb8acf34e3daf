// Package textmend is the high-level entry point: it routes content by
// detected format to the repair and formatting engines, and to the record
// extractors. Both entry points are total. FormatContent always returns a
// usable string and ParseFileContent always returns records for non-empty
// input, degrading toward the raw content rather than failing.
package textmend

import (
	"strings"

	"github.com/textmend/textmend/internal/logger"
	"github.com/textmend/textmend/pkg/extract"
	"github.com/textmend/textmend/pkg/format"
	"github.com/textmend/textmend/pkg/htmlnorm"
	"github.com/textmend/textmend/pkg/jsonrepair"
	"github.com/textmend/textmend/pkg/printer"
	"github.com/textmend/textmend/pkg/record"
)

// FormatContent repairs and canonically formats content. The filename, when
// available, selects the format by extension; otherwise the content is
// sniffed. Unrecognized content passes through text normalization only.
func FormatContent(content, filename string) (result string) {
	// Formatting must not fail on any input. A panic in an engine
	// degrades to the original content.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("formatter panicked, returning content verbatim", "panic", r, "filename", filename)
			result = content
		}
	}()

	tag := format.Detect(filename, content)
	logger.Debug("formatting content", "format", string(tag), "filename", filename, "bytes", len(content))

	switch tag {
	case format.TagJSON:
		return jsonrepair.RepairAndFormat(content)
	case format.TagHTML:
		return htmlnorm.Format(content)
	case format.TagMarkdown:
		return printer.Markdown(content)
	case format.TagXML:
		return printer.XML(content)
	case format.TagCSV:
		return printer.CSV(content)
	default:
		return printer.Text(content)
	}
}

// ParseFileContent extracts typed records from content. Non-empty input
// always yields at least text_line records.
func ParseFileContent(content, filename string) []record.Record {
	tag := format.Detect(filename, content)
	logger.Debug("parsing content", "format", string(tag), "filename", filename, "bytes", len(content))

	var records []record.Record
	switch tag {
	case format.TagJSON:
		records = parseJSON(content)
	case format.TagHTML, format.TagXML:
		records = extract.HTML(content)
	case format.TagMarkdown:
		records = extract.Markdown(content)
	case format.TagCSV:
		records = extract.CSV(content)
	default:
		records = extract.Mixed(content)
	}

	if len(records) == 0 && strings.TrimSpace(content) != "" {
		logger.Debug("no structured records found, falling back to text lines", "filename", filename)
		records = extract.TextLines(content)
	}
	return records
}

// parseJSON extracts records from JSON content, repairing it first when it
// does not parse as-is. Content that stays unparseable after repair is
// treated as mixed text.
func parseJSON(content string) []record.Record {
	if records, ok := extract.JSON(content); ok {
		return records
	}

	repaired := jsonrepair.Repair(content)
	if records, ok := extract.JSON(repaired); ok {
		logger.Debug("extracted records after repair")
		return records
	}
	return extract.Mixed(content)
}
