package printer

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// XML pretty-prints a document with 2-space indentation. Well-formed input is
// round-tripped through the XML token stream; anything the decoder rejects
// falls back to a bracket-depth line indenter.
func XML(content string) string {
	if formatted, ok := prettyXML(content); ok {
		return formatted
	}
	return indentXMLLines(content)
}

// prettyXML re-encodes the token stream with indentation, dropping
// whitespace-only character data so the encoder controls all spacing.
func prettyXML(content string) (string, bool) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false
		}
		if cd, ok := tok.(xml.CharData); ok {
			trimmed := strings.TrimSpace(string(cd))
			if trimmed == "" {
				continue
			}
			tok = xml.CharData(trimmed)
		}
		if err := enc.EncodeToken(tok); err != nil {
			return "", false
		}
	}

	if err := enc.Flush(); err != nil {
		return "", false
	}
	return strings.TrimSpace(buf.String()), true
}

// indentXMLLines infers nesting depth per line from closing and opening tags.
func indentXMLLines(content string) string {
	var formatted []string
	depth := 0

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		switch {
		case strings.HasPrefix(stripped, "</"):
			depth = max(0, depth-1)
			formatted = append(formatted, strings.Repeat("  ", depth)+stripped)
		case strings.HasPrefix(stripped, "<") && !strings.HasSuffix(stripped, "/>") &&
			!strings.HasPrefix(stripped, "<?") && !strings.Contains(stripped, "</"):
			formatted = append(formatted, strings.Repeat("  ", depth)+stripped)
			depth++
		default:
			formatted = append(formatted, strings.Repeat("  ", depth)+stripped)
		}
	}

	return strings.Join(formatted, "\n")
}
