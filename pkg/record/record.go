// Package record defines the typed records produced by the extraction path.
// A record is a tagged unit of structured data pulled out of a document;
// different kinds carry different field sets, but every record flattens to a
// JSON-safe map with a mandatory "type" discriminator.
package record

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind identifies the record type.
type Kind string

const (
	KindHeading    Kind = "heading"
	KindParagraph  Kind = "paragraph"
	KindLink       Kind = "link"
	KindImage      Kind = "image"
	KindTableRow   Kind = "table_row"
	KindListItem   Kind = "list_item"
	KindMetadata   Kind = "metadata"
	KindCodeBlock  Kind = "code_block"
	KindJSONObject Kind = "json_object"
	KindKeyValue   Kind = "key_value"
	KindTextLine   Kind = "text_line"
)

// Record is a single extracted unit. Fields returns the flattened,
// JSON-safe representation including the "type" key.
type Record interface {
	Kind() Kind
	Fields() map[string]any
}

// Heading is a document heading with its level (1-6).
type Heading struct {
	Level int
	Text  string
}

func (h Heading) Kind() Kind { return KindHeading }

func (h Heading) Fields() map[string]any {
	level := h.Level
	if level < 1 {
		level = 1
	}
	return map[string]any{
		"type":  string(KindHeading),
		"level": level,
		"text":  SafeValue(h.Text),
	}
}

// Paragraph is a run of body text.
type Paragraph struct {
	Text string
}

func (p Paragraph) Kind() Kind { return KindParagraph }

func (p Paragraph) Fields() map[string]any {
	return map[string]any{
		"type": string(KindParagraph),
		"text": SafeValue(p.Text),
	}
}

// Link is a hyperlink with its anchor text.
type Link struct {
	URL  string
	Text string
}

func (l Link) Kind() Kind { return KindLink }

func (l Link) Fields() map[string]any {
	return map[string]any{
		"type": string(KindLink),
		"url":  SafeValue(l.URL),
		"text": SafeValue(l.Text),
	}
}

// Image is an image reference.
type Image struct {
	Src string
	Alt string
}

func (i Image) Kind() Kind { return KindImage }

func (i Image) Fields() map[string]any {
	return map[string]any{
		"type": string(KindImage),
		"src":  SafeValue(i.Src),
		"alt":  SafeValue(i.Alt),
	}
}

// TableRow is one data row of a table, keyed by the table's header names.
// TableIndex is only emitted when HasIndex is set (HTML documents can contain
// several tables; CSV input has exactly one, so the index is omitted there).
type TableRow struct {
	TableIndex int
	HasIndex   bool
	Cells      map[string]any
}

func (t TableRow) Kind() Kind { return KindTableRow }

func (t TableRow) Fields() map[string]any {
	fields := map[string]any{
		"type": string(KindTableRow),
	}
	if t.HasIndex {
		fields["table_index"] = t.TableIndex
	}
	for k, v := range t.Cells {
		fields[k] = SafeValue(v)
	}
	return fields
}

// ListItem is one entry of an ordered or unordered list.
type ListItem struct {
	ListIndex int
	HasIndex  bool
	Text      string
}

func (l ListItem) Kind() Kind { return KindListItem }

func (l ListItem) Fields() map[string]any {
	fields := map[string]any{
		"type": string(KindListItem),
		"text": SafeValue(l.Text),
	}
	if l.HasIndex {
		fields["list_index"] = l.ListIndex
	}
	return fields
}

// Metadata carries document-level metadata (title, meta tags) merged into
// a single record with dynamic keys.
type Metadata struct {
	Values map[string]any
}

func (m Metadata) Kind() Kind { return KindMetadata }

func (m Metadata) Fields() map[string]any {
	fields := map[string]any{
		"type": string(KindMetadata),
	}
	for k, v := range m.Values {
		fields[k] = SafeValue(v)
	}
	return fields
}

// CodeBlock is a fenced code block with its language tag.
type CodeBlock struct {
	Language string
	Content  string
}

func (c CodeBlock) Kind() Kind { return KindCodeBlock }

func (c CodeBlock) Fields() map[string]any {
	return map[string]any{
		"type":     string(KindCodeBlock),
		"language": SafeValue(c.Language),
		"content":  SafeValue(c.Content),
	}
}

// JSONObject wraps an object parsed out of JSON content; its members become
// dynamic fields of the record.
type JSONObject struct {
	Values map[string]any
}

func (j JSONObject) Kind() Kind { return KindJSONObject }

func (j JSONObject) Fields() map[string]any {
	fields := map[string]any{
		"type": string(KindJSONObject),
	}
	for k, v := range j.Values {
		fields[k] = SafeDeep(v)
	}
	return fields
}

// KeyValue is a "key: value" or "key=value" pair found in loose text.
type KeyValue struct {
	Key   string
	Value string
}

func (k KeyValue) Kind() Kind { return KindKeyValue }

func (k KeyValue) Fields() map[string]any {
	return map[string]any{
		"type":  string(KindKeyValue),
		"key":   SafeValue(k.Key),
		"value": SafeValue(k.Value),
	}
}

// TextLine is the last-resort record: one non-blank source line.
type TextLine struct {
	LineNumber int
	Content    string
}

func (t TextLine) Kind() Kind { return KindTextLine }

func (t TextLine) Fields() map[string]any {
	return map[string]any{
		"type":        string(KindTextLine),
		"line_number": t.LineNumber,
		"content":     SafeValue(t.Content),
	}
}

// SafeValue coerces a scalar to a JSON-safe value. Non-finite floats become 0,
// nil becomes the empty string, and anything that is not a JSON primitive is
// stringified.
func SafeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string, bool, int, int64:
		return val
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return val
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return fmt.Sprintf("%v", val)
	}
}

// SafeDeep sanitizes a value recursively, descending into maps and slices so
// that nested structures stay intact while every scalar is JSON-safe.
func SafeDeep(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = SafeDeep(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = SafeDeep(item)
		}
		return out
	default:
		return SafeValue(v)
	}
}

// Maps flattens a record sequence for serialization.
func Maps(records []Record) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, r := range records {
		out[i] = r.Fields()
	}
	return out
}

// MarshalJSON encodes a record sequence as a JSON array of flat objects.
func MarshalJSON(records []Record) ([]byte, error) {
	return json.Marshal(Maps(records))
}
