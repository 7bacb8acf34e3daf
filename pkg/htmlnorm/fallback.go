package htmlnorm

import (
	"strings"

	"golang.org/x/net/html"
)

// streamFormat is the fallback when tree building is unavailable: a direct
// tokenizer walk that tracks indent depth, incrementing on open tags and
// decrementing on close tags. Raw-text element content is passed through with
// only the enclosing indent applied.
func (n *Normalizer) streamFormat(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	var lines []string
	depth := 0
	inRaw := ""

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tok := z.Token()
		indent := strings.Repeat(n.config.Indent, depth)

		switch tt {
		case html.DoctypeToken:
			lines = append(lines, "<!DOCTYPE "+tok.Data+">")
		case html.CommentToken:
			lines = append(lines, indent+"<!--"+tok.Data+"-->")
		case html.StartTagToken:
			open := "<" + tok.Data + renderTokenAttrs(tok)
			if selfClosing[tok.Data] {
				lines = append(lines, indent+open+"/>")
				continue
			}
			lines = append(lines, indent+open+">")
			if rawText[tok.Data] {
				inRaw = tok.Data
				continue
			}
			depth++
		case html.SelfClosingTagToken:
			lines = append(lines, indent+"<"+tok.Data+renderTokenAttrs(tok)+"/>")
		case html.EndTagToken:
			if inRaw == tok.Data {
				inRaw = ""
				lines = append(lines, indent+"</"+tok.Data+">")
				continue
			}
			if selfClosing[tok.Data] {
				continue
			}
			depth = max(0, depth-1)
			lines = append(lines, strings.Repeat(n.config.Indent, depth)+"</"+tok.Data+">")
		case html.TextToken:
			if inRaw != "" {
				for _, raw := range strings.Split(tok.Data, "\n") {
					if strings.TrimSpace(raw) != "" {
						lines = append(lines, indent+strings.TrimRight(raw, " \t"))
					}
				}
				continue
			}
			text := strings.TrimSpace(tok.Data)
			if text != "" {
				lines = append(lines, indent+strings.Join(strings.Fields(text), " "))
			}
		}
	}

	return strings.Join(lines, "\n")
}

// lineIndent is the last-resort formatter: depth inferred purely from
// </tag> / <tag> / <tag/> patterns per line.
func lineIndent(content, indentUnit string) string {
	var formatted []string
	depth := 0

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			formatted = append(formatted, "")
			continue
		}

		switch {
		case strings.HasPrefix(stripped, "</"):
			depth = max(0, depth-1)
			formatted = append(formatted, strings.Repeat(indentUnit, depth)+stripped)
		case strings.HasPrefix(stripped, "<") && !strings.HasSuffix(stripped, "/>"):
			formatted = append(formatted, strings.Repeat(indentUnit, depth)+stripped)
			if !startsVoidTag(stripped) && !strings.Contains(stripped, "</") {
				depth++
			}
		default:
			formatted = append(formatted, strings.Repeat(indentUnit, depth)+stripped)
		}
	}

	return strings.Join(formatted, "\n")
}

func startsVoidTag(line string) bool {
	for tag := range selfClosing {
		if strings.HasPrefix(line, "<"+tag) {
			return true
		}
	}
	return false
}

func renderTokenAttrs(tok html.Token) string {
	var sb strings.Builder
	for _, attr := range tok.Attr {
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		if attr.Val != "" {
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(attr.Val))
			sb.WriteByte('"')
		}
	}
	return sb.String()
}
