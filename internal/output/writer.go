// Package output serializes extracted records and repaired documents to the
// supported CLI output formats.
package output

import (
	"fmt"
	"io"

	"github.com/textmend/textmend/pkg/record"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer handles output serialization.
type Writer interface {
	// Write outputs a single item.
	Write(data any) error

	// Flush ensures all data is written.
	Flush() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return newJSONWriter(w), nil
	case FormatJSONL:
		return newJSONLWriter(w), nil
	case FormatYAML:
		return newYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Records writes a record sequence in the given format. Records are
// flattened to their field maps, so each carries its "type" discriminator.
func Records(w io.Writer, format Format, records []record.Record) error {
	writer, err := NewWriter(w, format)
	if err != nil {
		return err
	}
	for _, m := range record.Maps(records) {
		if err := writer.Write(m); err != nil {
			return err
		}
	}
	return writer.Flush()
}
