package layout

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// ParseHOCR converts hOCR output (Tesseract and compatible engines) into
// layout pages. Word boxes come from the bbox title property, font sizes
// from x_size, and boldness from strong/b/em wrappers. Pages that cannot be
// parsed are returned as blank pages; only a document that yields no pages
// at all is an error.
func ParseHOCR(data []byte) ([]*Page, error) {
	decoded := data
	if enc := detectCharset(string(data)); enc != "" && enc != "utf-8" {
		converted, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err == nil {
			decoded = converted
		}
	}

	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR document: %w", err)
	}

	var pages []*Page
	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			pages = append(pages, parseHOCRPage(n, len(pages)+1))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(doc)

	if len(pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return pages, nil
}

func detectCharset(content string) string {
	idx := strings.Index(content, "charset=")
	if idx < 0 {
		return ""
	}
	rest := content[idx+len("charset="):]
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' '
	})
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && strings.Contains(a.Val, class) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// parseTitleProps breaks an hOCR title attribute into its properties.
// Example input: "bbox 100 200 300 400; x_size 31.5; x_wconf 95".
func parseTitleProps(title string) map[string][]string {
	props := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(strings.TrimSpace(part))
		if len(items) > 0 {
			props[items[0]] = items[1:]
		}
	}
	return props
}

func bboxFromTitle(title string) (BoundingBox, bool) {
	props := parseTitleProps(title)
	vals, ok := props["bbox"]
	if !ok || len(vals) < 4 {
		return BoundingBox{}, false
	}
	l, err1 := strconv.ParseFloat(vals[0], 64)
	t, err2 := strconv.ParseFloat(vals[1], 64)
	r, err3 := strconv.ParseFloat(vals[2], 64)
	b, err4 := strconv.ParseFloat(vals[3], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return BoundingBox{}, false
	}
	return BoundingBox{Left: l, Top: t, Right: r, Bottom: b}, true
}

func sizeFromTitle(title string) float64 {
	props := parseTitleProps(title)
	if vals, ok := props["x_size"]; ok && len(vals) > 0 {
		if size, err := strconv.ParseFloat(vals[0], 64); err == nil {
			return size
		}
	}
	return 0
}

// hocrStyleKey deduplicates synthesized styles by font signature.
type hocrStyleKey struct {
	size float64
	bold bool
}

func parseHOCRPage(node *html.Node, index int) *Page {
	var lines []Line
	raw := make(map[int]RawStyle)
	styleIDs := make(map[hocrStyleKey]int)

	styleID := func(size float64, bold bool) int {
		key := hocrStyleKey{size: size, bold: bold}
		if id, ok := styleIDs[key]; ok {
			return id
		}
		id := len(styleIDs)
		styleIDs[key] = id
		raw[id] = RawStyle{Bold: bold, Size: size}
		return id
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (hasClass(n, "ocr_line") || hasClass(n, "ocr_header") || hasClass(n, "ocr_textfloat") || hasClass(n, "ocr_caption")) {
			lineSize := sizeFromTitle(attr(n, "title"))
			line := parseHOCRLine(n, lineSize, styleID)
			if len(line.Words) > 0 {
				lines = append(lines, line)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return BuildPage(index, lines, raw)
}

func parseHOCRLine(node *html.Node, lineSize float64, styleID func(float64, bool) int) Line {
	var line Line

	var walk func(n *html.Node, bold bool)
	walk = func(n *html.Node, bold bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "strong", "b", "em":
				bold = true
			}
			if hasClass(n, "ocrx_word") {
				text := strings.TrimSpace(nodeText(n))
				if text == "" {
					return
				}
				bbox, ok := bboxFromTitle(attr(n, "title"))
				if !ok {
					return
				}
				size := sizeFromTitle(attr(n, "title"))
				if size == 0 {
					size = lineSize
				}
				if size == 0 {
					size = bbox.Height()
				}
				line.Words = append(line.Words, Word{
					Text:    text,
					BBox:    bbox,
					StyleID: styleID(size, bold || boldWordNode(n)),
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, bold)
		}
	}
	walk(node, false)

	return line
}

// boldWordNode reports whether the word wraps a strong/b/em element.
func boldWordNode(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "strong", "b", "em":
				return true
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
