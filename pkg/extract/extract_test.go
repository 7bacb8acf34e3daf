package extract

import (
	"strings"
	"testing"

	"github.com/textmend/textmend/pkg/record"
)

func kinds(records []record.Record) map[record.Kind]int {
	counts := make(map[record.Kind]int)
	for _, r := range records {
		counts[r.Kind()]++
	}
	return counts
}

func TestHTMLExtractsCategories(t *testing.T) {
	doc := `<html>
<head>
  <title>Sample Page</title>
  <meta name="author" content="Ann">
</head>
<body>
  <h1>Main</h1>
  <h2>Sub</h2>
  <p>First paragraph.</p>
  <a href="https://example.com">example</a>
  <img src="pic.png" alt="a picture">
  <table>
    <tr><th>Name</th><th>Age</th></tr>
    <tr><td>Bo</td><td>3</td></tr>
  </table>
  <ul>
    <li>one</li>
    <li>two</li>
  </ul>
</body>
</html>`

	records := HTML(doc)
	counts := kinds(records)

	if counts[record.KindHeading] != 2 {
		t.Errorf("headings = %d, want 2", counts[record.KindHeading])
	}
	if counts[record.KindParagraph] != 1 {
		t.Errorf("paragraphs = %d, want 1", counts[record.KindParagraph])
	}
	if counts[record.KindLink] != 1 {
		t.Errorf("links = %d, want 1", counts[record.KindLink])
	}
	if counts[record.KindImage] != 1 {
		t.Errorf("images = %d, want 1", counts[record.KindImage])
	}
	if counts[record.KindTableRow] != 1 {
		t.Errorf("table rows = %d, want 1", counts[record.KindTableRow])
	}
	if counts[record.KindListItem] != 2 {
		t.Errorf("list items = %d, want 2", counts[record.KindListItem])
	}
	if counts[record.KindMetadata] != 1 {
		t.Errorf("metadata = %d, want 1", counts[record.KindMetadata])
	}
}

func TestHTMLHeadingLevels(t *testing.T) {
	records := HTML(`<html><body><h3>Three</h3></body></html>`)

	for _, r := range records {
		if h, ok := r.(record.Heading); ok {
			if h.Level != 3 {
				t.Errorf("level = %d, want 3", h.Level)
			}
			return
		}
	}
	t.Fatal("no heading extracted")
}

func TestHTMLTableHeaderKeys(t *testing.T) {
	doc := `<html><body><table>
<tr><th>Name</th><th>Age</th></tr>
<tr><td>Bo</td><td>3</td></tr>
<tr><td>Cy</td><td>5</td><td>extra</td></tr>
</table></body></html>`

	var rows []record.TableRow
	for _, r := range HTML(doc) {
		if tr, ok := r.(record.TableRow); ok {
			rows = append(rows, tr)
		}
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Cells["Name"] != "Bo" || rows[0].Cells["Age"] != "3" {
		t.Errorf("row 0 cells = %v", rows[0].Cells)
	}
	// A cell past the header row falls back to a positional key.
	if rows[1].Cells["column_2"] != "extra" {
		t.Errorf("overflow cell = %v", rows[1].Cells)
	}
	if !rows[0].HasIndex {
		t.Error("HTML table rows should carry the table index")
	}
}

func TestHTMLHeaderOnlyTableSkipped(t *testing.T) {
	doc := `<html><body><table><tr><th>Name</th></tr></table></body></html>`
	if counts := kinds(HTML(doc)); counts[record.KindTableRow] != 0 {
		t.Errorf("header-only table produced %d rows", counts[record.KindTableRow])
	}
}

func TestHTMLNestedListOwnership(t *testing.T) {
	doc := `<html><body><ul>
<li>outer<ul><li>inner</li></ul></li>
</ul></body></html>`

	var items []record.ListItem
	for _, r := range HTML(doc) {
		if li, ok := r.(record.ListItem); ok {
			items = append(items, li)
		}
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	for _, li := range items {
		if strings.Contains(li.Text, "inner") && strings.Contains(li.Text, "outer") {
			t.Errorf("outer item swallowed nested list text: %q", li.Text)
		}
	}
}

func TestHTMLEmptyInput(t *testing.T) {
	if records := HTML(""); len(records) != 0 {
		t.Errorf("empty input produced %d records", len(records))
	}
}

func TestMarkdownExtract(t *testing.T) {
	doc := "# Title\n" +
		"## Section\n" +
		"A paragraph line.\n" +
		"- first\n" +
		"* second\n" +
		"See [docs](https://example.com/docs)\n" +
		"```go\nx := 1\n```\n"

	records := Markdown(doc)
	counts := kinds(records)

	if counts[record.KindHeading] != 2 {
		t.Errorf("headings = %d, want 2", counts[record.KindHeading])
	}
	if counts[record.KindListItem] != 2 {
		t.Errorf("list items = %d, want 2", counts[record.KindListItem])
	}
	if counts[record.KindLink] != 1 {
		t.Errorf("links = %d, want 1", counts[record.KindLink])
	}
	if counts[record.KindCodeBlock] != 1 {
		t.Errorf("code blocks = %d, want 1", counts[record.KindCodeBlock])
	}
	if counts[record.KindParagraph] != 1 {
		t.Errorf("paragraphs = %d, want 1", counts[record.KindParagraph])
	}
}

func TestMarkdownHeadingLevel(t *testing.T) {
	records := Markdown("### Deep")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	h := records[0].(record.Heading)
	if h.Level != 3 || h.Text != "Deep" {
		t.Errorf("heading = %+v", h)
	}
}

func TestMarkdownCodeBlock(t *testing.T) {
	records := Markdown("```python\nprint(1)\nprint(2)\n```")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	cb := records[0].(record.CodeBlock)
	if cb.Language != "python" {
		t.Errorf("language = %q", cb.Language)
	}
	if cb.Content != "print(1)\nprint(2)" {
		t.Errorf("content = %q", cb.Content)
	}
}

func TestMarkdownBareFenceDefaultsLanguage(t *testing.T) {
	records := Markdown("```\ncode\n```")
	cb := records[0].(record.CodeBlock)
	if cb.Language != "text" {
		t.Errorf("language = %q, want text", cb.Language)
	}
}

func TestMarkdownUnterminatedFence(t *testing.T) {
	records := Markdown("```go\nx := 1")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	cb := records[0].(record.CodeBlock)
	if cb.Content != "x := 1" {
		t.Errorf("content = %q", cb.Content)
	}
}

func TestMarkdownHeadingInsideFenceIgnored(t *testing.T) {
	records := Markdown("```\n# not a heading\n```")
	if counts := kinds(records); counts[record.KindHeading] != 0 {
		t.Error("heading extracted from inside code fence")
	}
}

func TestCSVExtract(t *testing.T) {
	records := CSV("name,age\nBo,3\nCy,5")

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	row := records[0].(record.TableRow)
	if row.Cells["name"] != "Bo" || row.Cells["age"] != "3" {
		t.Errorf("cells = %v", row.Cells)
	}
	if row.HasIndex {
		t.Error("CSV rows should not carry a table index")
	}
}

func TestCSVSemicolonInput(t *testing.T) {
	records := CSV("name;age\nBo;3\nCy;5")
	if len(records) == 0 {
		t.Fatal("no records from semicolon-delimited input")
	}
}

func TestCSVMissingTrailingCells(t *testing.T) {
	records := CSV("a,b,c\n1,2")
	row := records[0].(record.TableRow)
	if row.Cells["c"] != "" {
		t.Errorf("missing cell = %v, want empty string", row.Cells["c"])
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	if records := CSV("a,b,c"); len(records) != 0 {
		t.Errorf("header-only input produced %d records", len(records))
	}
}

func TestJSONExtract(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantOK  bool
	}{
		{"array of objects", `[{"a": 1}, {"a": 2}]`, 2, true},
		{"single object", `{"a": 1}`, 1, true},
		{"scalar", `42`, 0, true},
		{"invalid", `{"a": `, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, ok := JSON(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if len(records) != tt.wantLen {
				t.Errorf("records = %d, want %d", len(records), tt.wantLen)
			}
		})
	}
}

func TestMixedEmbeddedJSON(t *testing.T) {
	records := Mixed(`log line before {"level": "info", "msg": "up"} trailing`)

	var found bool
	for _, r := range records {
		if obj, ok := r.(record.JSONObject); ok {
			found = true
			if obj.Values["level"] != "info" {
				t.Errorf("values = %v", obj.Values)
			}
		}
	}
	if !found {
		t.Error("embedded JSON object not extracted")
	}
}

func TestMixedKeyValuePairs(t *testing.T) {
	records := Mixed("host: example.com\nretries=3")

	keys := make(map[string]string)
	for _, r := range records {
		if kv, ok := r.(record.KeyValue); ok {
			keys[kv.Key] = kv.Value
		}
	}
	if keys["host"] != "example.com" {
		t.Errorf("host = %q", keys["host"])
	}
	if keys["retries"] != "3" {
		t.Errorf("retries = %q", keys["retries"])
	}
}

func TestMixedFallsBackToTextLines(t *testing.T) {
	records := Mixed("just a plain sentence\n\nanother one")

	if len(records) == 0 {
		t.Fatal("non-empty input produced no records")
	}
	for _, r := range records {
		if r.Kind() == record.KindTextLine {
			return
		}
	}
	t.Errorf("no text_line records in fallback output: %v", kinds(records))
}

func TestTextLinesNumbering(t *testing.T) {
	records := TextLines("first\n\nthird")
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	first := records[0].(record.TextLine)
	third := records[1].(record.TextLine)
	if first.LineNumber != 1 || third.LineNumber != 3 {
		t.Errorf("line numbers = %d, %d; want 1, 3", first.LineNumber, third.LineNumber)
	}
}
