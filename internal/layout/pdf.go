package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// lineGroupTolerance is the vertical distance within which positioned text
// fragments are considered part of the same line.
const lineGroupTolerance = 2.0

// PagesFromPDF builds layout pages from a born-digital PDF by grouping the
// positioned text fragments of each page into lines and synthesizing a
// style table from the embedded font names and sizes. Pages that expose no
// text (scanned images) come back blank.
func PagesFromPDF(path string) ([]*Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]*Page, 0, total)
	for num := 1; num <= total; num++ {
		p := reader.Page(num)
		if p.V.IsNull() {
			pages = append(pages, BuildPage(num, nil, nil))
			continue
		}
		pages = append(pages, pageFromTexts(num, p.Content().Text))
	}
	return pages, nil
}

type pdfStyleKey struct {
	font string
	size float64
}

func pageFromTexts(index int, texts []pdf.Text) *Page {
	if len(texts) == 0 {
		return BuildPage(index, nil, nil)
	}

	// PDF user space has a bottom-left origin; flip against the tallest
	// fragment so the layout model's top-origin band checks work.
	maxY := texts[0].Y
	for _, t := range texts {
		if t.Y > maxY {
			maxY = t.Y
		}
	}

	raw := make(map[int]RawStyle)
	styleIDs := make(map[pdfStyleKey]int)
	styleID := func(font string, size float64) int {
		key := pdfStyleKey{font: font, size: size}
		if id, ok := styleIDs[key]; ok {
			return id
		}
		id := len(styleIDs)
		styleIDs[key] = id
		raw[id] = RawStyle{
			FontFamily: font,
			Bold:       strings.Contains(strings.ToLower(font), "bold"),
			Size:       size,
		}
		return id
	}

	// Group fragments into lines by Y position.
	byLine := make(map[float64][]pdf.Text)
	var keys []float64
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		matched := false
		for _, y := range keys {
			if t.Y >= y-lineGroupTolerance && t.Y <= y+lineGroupTolerance {
				byLine[y] = append(byLine[y], t)
				matched = true
				break
			}
		}
		if !matched {
			keys = append(keys, t.Y)
			byLine[t.Y] = append(byLine[t.Y], t)
		}
	}
	// Top of page first.
	sort.Sort(sort.Reverse(sort.Float64Slice(keys)))

	lines := make([]Line, 0, len(keys))
	for _, y := range keys {
		frags := byLine[y]
		sort.Slice(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

		var line Line
		for _, t := range frags {
			top := maxY - t.Y
			line.Words = append(line.Words, Word{
				Text: strings.TrimSpace(t.S),
				BBox: BoundingBox{
					Left:   t.X,
					Top:    top,
					Right:  t.X + t.W,
					Bottom: top + t.FontSize,
				},
				StyleID: styleID(t.Font, t.FontSize),
			})
		}
		lines = append(lines, line)
	}

	return BuildPage(index, lines, raw)
}
