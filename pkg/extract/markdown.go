package extract

import (
	"regexp"
	"strings"

	"github.com/textmend/textmend/pkg/record"
)

var inlineLink = regexp.MustCompile(`\[([^\]]+)\]\(([^\)]+)\)`)

// Markdown scans content top to bottom: ATX headings, fenced code blocks,
// list items, inline links, and paragraphs for everything else non-blank.
func Markdown(content string) []record.Record {
	var records []record.Record
	var codeLines []string
	codeLang := ""
	inCode := false

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)

		switch {
		case inCode && strings.HasPrefix(stripped, "```"):
			records = append(records, record.CodeBlock{
				Language: codeLang,
				Content:  strings.Join(codeLines, "\n"),
			})
			codeLines = nil
			codeLang = ""
			inCode = false
		case inCode:
			codeLines = append(codeLines, line)
		case strings.HasPrefix(stripped, "```"):
			inCode = true
			codeLang = strings.TrimSpace(stripped[3:])
			if codeLang == "" {
				codeLang = "text"
			}
		case strings.HasPrefix(stripped, "#"):
			level := len(stripped) - len(strings.TrimLeft(stripped, "#"))
			records = append(records, record.Heading{
				Level: level,
				Text:  strings.TrimSpace(strings.TrimLeft(stripped, "#")),
			})
		case strings.HasPrefix(stripped, "-") || strings.HasPrefix(stripped, "*"):
			if text := strings.TrimSpace(stripped[1:]); text != "" {
				records = append(records, record.ListItem{Text: text})
			}
		case strings.Contains(line, "[") && strings.Contains(line, "]("):
			if m := inlineLink.FindStringSubmatch(line); m != nil {
				records = append(records, record.Link{Text: m[1], URL: m[2]})
			} else if stripped != "" {
				records = append(records, record.Paragraph{Text: stripped})
			}
		case stripped != "":
			records = append(records, record.Paragraph{Text: stripped})
		}
	}

	// An unterminated fence still carries content worth keeping.
	if inCode && len(codeLines) > 0 {
		records = append(records, record.CodeBlock{
			Language: codeLang,
			Content:  strings.Join(codeLines, "\n"),
		})
	}

	return records
}
