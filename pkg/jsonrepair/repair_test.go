package jsonrepair

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestRepairAndFormatValidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"flat object", `{"name": "Alice", "age": 30}`},
		{"nested object", `{"user": {"name": "Bob", "tags": ["a", "b"]}}`},
		{"array of objects", `[{"id": 1}, {"id": 2}]`},
		{"empty object", `{}`},
		{"empty array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairAndFormat(tt.input)
			if !gjson.Valid(got) {
				t.Fatalf("output is not valid JSON: %q", got)
			}
			// Valid input must survive a second pass unchanged.
			if again := RepairAndFormat(got); again != got {
				t.Errorf("not idempotent:\nfirst:  %q\nsecond: %q", got, again)
			}
		})
	}
}

func TestRepairAndFormatPreservesMemberOrder(t *testing.T) {
	got := RepairAndFormat(`{"zebra": 1, "apple": 2}`)
	if strings.Index(got, "zebra") > strings.Index(got, "apple") {
		t.Errorf("member order changed: %q", got)
	}
}

func TestRepairAndFormatMissingCommas(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
		want  string
	}{
		{"same line numbers", `{"a": 1 "b": 2}`, "b", "2"},
		{"same line strings", `{"a": "x" "b": "y"}`, "b", "y"},
		{"across lines strings", "{\n  \"a\": \"x\"\n  \"b\": \"y\"\n}", "b", "y"},
		{"across lines after number", "{\n  \"a\": 1\n  \"b\": 2\n}", "b", "2"},
		{"after closing brace", "{\n  \"a\": {\"x\": 1}\n  \"b\": 2\n}", "b", "2"},
		{"after closing bracket", "{\n  \"a\": [1]\n  \"b\": 2\n}", "b", "2"},
		{"array elements", `[1 2 3]`, "2", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairAndFormat(tt.input)
			if !gjson.Valid(got) {
				t.Fatalf("output is not valid JSON: %q", got)
			}
			if v := gjson.Get(got, tt.path).String(); v != tt.want {
				t.Errorf("path %q = %q, want %q in %q", tt.path, v, tt.want, got)
			}
		})
	}
}

func TestRepairAndFormatTruncated(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, out string)
	}{
		{
			name:  "unclosed array",
			input: `{"a": [1, 2, 3`,
			check: func(t *testing.T, out string) {
				if n := len(gjson.Get(out, "a").Array()); n != 3 {
					t.Errorf("array length = %d, want 3 in %q", n, out)
				}
			},
		},
		{
			name:  "unclosed nested object",
			input: `{"user": {"name": "Bo"`,
			check: func(t *testing.T, out string) {
				if v := gjson.Get(out, "user.name").String(); v != "Bo" {
					t.Errorf("user.name = %q, want Bo in %q", v, out)
				}
			},
		},
		{
			name:  "unclosed object in array",
			input: `[{"id": 1}, {"id": 2`,
			check: func(t *testing.T, out string) {
				if n := len(gjson.Parse(out).Array()); n != 2 {
					t.Errorf("element count = %d, want 2 in %q", n, out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairAndFormat(tt.input)
			if !gjson.Valid(got) {
				t.Fatalf("output is not valid JSON: %q", got)
			}
			tt.check(t, got)
		})
	}
}

func TestRepairAndFormatLexicalFixes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
		want  string
	}{
		{"trailing comma object", `{"a": 1,}`, "a", "1"},
		{"trailing comma array", `{"a": [1, 2,]}`, "a.1", "2"},
		{"single quoted key", `{'name': "Alice"}`, "name", "Alice"},
		{"single quoted value", `{'name': 'Alice'}`, "name", "Alice"},
		{"truncated true", `{"ok": tru}`, "ok", "true"},
		{"truncated false", `{"ok": fals}`, "ok", "false"},
		{"line comment", "{\n  // the id\n  \"id\": 7\n}", "id", "7"},
		{"block comment", `{"id": /* numeric */ 7}`, "id", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairAndFormat(tt.input)
			if !gjson.Valid(got) {
				t.Fatalf("output is not valid JSON: %q", got)
			}
			if v := gjson.Get(got, tt.path).String(); v != tt.want {
				t.Errorf("path %q = %q, want %q in %q", tt.path, v, tt.want, got)
			}
		})
	}
}

func TestRepairAndFormatNonFiniteTokens(t *testing.T) {
	got := RepairAndFormat(`{"a": NaN, "b": undefined}`)
	if !gjson.Valid(got) {
		t.Fatalf("output is not valid JSON: %q", got)
	}
	for _, path := range []string{"a", "b"} {
		if gjson.Get(got, path).Type != gjson.Null {
			t.Errorf("path %q = %v, want null", path, gjson.Get(got, path))
		}
	}
}

func TestRepairAndFormatBOM(t *testing.T) {
	got := RepairAndFormat("\ufeff" + `{"a": 1}`)
	if !gjson.Valid(got) {
		t.Fatalf("output is not valid JSON: %q", got)
	}
}

func TestRepairAndFormatDegradedRecovery(t *testing.T) {
	got := RepairAndFormat("log output before the payload\n{\"a\": 1")
	if !gjson.Valid(got) {
		t.Fatalf("expected recovered JSON, got %q", got)
	}
	if v := gjson.Get(got, "a").Int(); v != 1 {
		t.Errorf("a = %d, want 1", v)
	}
	if !strings.HasPrefix(got, "{") {
		t.Errorf("leading garbage not dropped: %q", got)
	}
}

func TestRepairAndFormatNeverFails(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not json at all",
		`"just a string`,
		"}}}}",
		"{{{{",
		"[,,,]",
		strings.Repeat(`{"a":`, 50),
	}

	for _, input := range inputs {
		got := RepairAndFormat(input)
		_ = got // any string result is acceptable, panics are not
	}
}

func TestRepairDropsStandaloneCommaLines(t *testing.T) {
	input := "{\"a\": 1,\n,\n\"b\": 2}"
	got := RepairAndFormat(input)
	if !gjson.Valid(got) {
		t.Fatalf("output is not valid JSON: %q", got)
	}
	if v := gjson.Get(got, "a").Int(); v != 1 {
		t.Errorf("a = %d, want 1 in %q", v, got)
	}
	if v := gjson.Get(got, "b").Int(); v != 2 {
		t.Errorf("b = %d, want 2 in %q", v, got)
	}
}

func TestRepairScanStrayClosers(t *testing.T) {
	// A stray closer must not corrupt the bracket stack.
	got := repairScan(`{"a": 1]`)
	if !strings.HasSuffix(got, "}") {
		t.Errorf("open brace not closed: %q", got)
	}
}

func BenchmarkRepairAndFormatValid(b *testing.B) {
	input := `{"name": "Alice", "tags": ["a", "b", "c"], "nested": {"x": 1, "y": 2}}`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RepairAndFormat(input)
	}
}

func BenchmarkRepairAndFormatBroken(b *testing.B) {
	input := `{"name": "Alice" "tags": ["a", "b" "c"], "nested": {"x": 1`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RepairAndFormat(input)
	}
}
