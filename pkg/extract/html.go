// Package extract turns documents into ordered sequences of typed records
// for downstream schema inference. Extractors never return errors: a parse
// failure inside one sub-extractor degrades to an empty contribution.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/textmend/textmend/pkg/record"
)

// HTML walks a document and collects records per element category: headings,
// paragraphs, links, images, table rows, list items, and a merged metadata
// record. Order within a category is document order. A parse failure yields
// no records rather than an error.
func HTML(content string) []record.Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var records []record.Record

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		records = append(records, record.Heading{
			Level: headingLevel(goquery.NodeName(s)),
			Text:  text,
		})
	})

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			records = append(records, record.Paragraph{Text: text})
		}
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		records = append(records, record.Link{
			URL:  href,
			Text: strings.TrimSpace(s.Text()),
		})
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		records = append(records, record.Image{Src: src, Alt: alt})
	})

	doc.Find("table").Each(func(tableIndex int, table *goquery.Selection) {
		records = append(records, tableRows(tableIndex, table)...)
	})

	doc.Find("ul, ol").Each(func(listIndex int, list *goquery.Selection) {
		listNode := list.Nodes[0]
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			// Items of nested lists belong to their own enclosing list.
			if closest := li.Parent().Closest("ul, ol"); len(closest.Nodes) == 0 || closest.Nodes[0] != listNode {
				return
			}
			if text := strings.TrimSpace(directText(li.Nodes[0])); text != "" {
				records = append(records, record.ListItem{
					ListIndex: listIndex,
					HasIndex:  true,
					Text:      text,
				})
			}
		})
	})

	if meta := metadata(doc); len(meta) > 0 {
		records = append(records, record.Metadata{Values: meta})
	}

	return records
}

// tableRows turns a table into one record per data row, keyed by the header
// row's cell text. Rows wider than the header fall back to column_N keys.
func tableRows(tableIndex int, table *goquery.Selection) []record.Record {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	if len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	records := make([]record.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make(map[string]any, len(row))
		for i, cell := range row {
			key := fmt.Sprintf("column_%d", i)
			if i < len(headers) && strings.TrimSpace(headers[i]) != "" {
				key = headers[i]
			}
			cells[key] = cell
		}
		records = append(records, record.TableRow{
			TableIndex: tableIndex,
			HasIndex:   true,
			Cells:      cells,
		})
	}
	return records
}

// metadata merges <title> and <meta name=... content=...> into one map.
func metadata(doc *goquery.Document) map[string]any {
	meta := make(map[string]any)
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		meta["title"] = title
	}
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		if name != "" {
			meta[name] = content
		}
	})
	return meta
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 1
}

// directText collects the subtree text of a node, skipping nested lists so a
// parent item does not swallow its children's items.
func directText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode && (n.Data == "ul" || n.Data == "ol") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return sb.String()
}
