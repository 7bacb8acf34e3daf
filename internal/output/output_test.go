package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/textmend/textmend/pkg/record"
)

var sample = []record.Record{
	record.Heading{Level: 1, Text: "Title"},
	record.KeyValue{Key: "k", Value: "v"},
}

func TestRecordsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Records(&buf, FormatJSON, sample); err != nil {
		t.Fatalf("Records: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d items, want 2", len(decoded))
	}
	if decoded[0]["type"] != "heading" {
		t.Errorf("first type = %v", decoded[0]["type"])
	}
}

func TestRecordsJSONL(t *testing.T) {
	var buf bytes.Buffer
	if err := Records(&buf, FormatJSONL, sample); err != nil {
		t.Fatalf("Records: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for _, line := range lines {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Errorf("line is not JSON: %q", line)
		}
	}
}

func TestRecordsYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Records(&buf, FormatYAML, sample); err != nil {
		t.Fatalf("Records: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "type: heading") {
		t.Errorf("yaml output missing record type:\n%s", out)
	}
	if !strings.Contains(out, "key: k") {
		t.Errorf("yaml output missing key field:\n%s", out)
	}
}

func TestRecordsEmptySequence(t *testing.T) {
	var buf bytes.Buffer
	if err := Records(&buf, FormatJSON, nil); err != nil {
		t.Fatalf("Records: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty sequence = %q, want []", buf.String())
	}
}

func TestNewWriterRejectsUnknownFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, Format("csv")); err == nil {
		t.Error("expected error for unsupported format")
	}
}
