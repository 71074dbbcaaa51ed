package classify

import (
	"strings"

	"github.com/icaplabs/pagewise/internal/layout"
)

// testLine describes one page line for test fixtures. Raw sizes are chosen
// so the largest style on the page is 40 and normalization is the identity.
type testLine struct {
	text string
	top  float64
	size float64
	bold bool
}

// footerLine anchors the page bounds near the bottom so the top/bottom band
// geometry behaves like a full page.
func footerLine(top float64) testLine {
	return testLine{text: "Issued without signature", top: top, size: 8}
}

func buildTestPage(index int, lines []testLine) *layout.Page {
	type styleKey struct {
		size float64
		bold bool
	}
	raw := make(map[int]layout.RawStyle)
	ids := make(map[styleKey]int)

	var built []layout.Line
	for _, tl := range lines {
		key := styleKey{size: tl.size, bold: tl.bold}
		id, ok := ids[key]
		if !ok {
			id = len(ids)
			ids[key] = id
			raw[id] = layout.RawStyle{Bold: tl.bold, Size: tl.size}
		}

		var words []layout.Word
		left := 50.0
		for _, field := range strings.Fields(tl.text) {
			width := float64(len(field)) * 8
			words = append(words, layout.Word{
				Text:    field,
				BBox:    layout.BoundingBox{Left: left, Top: tl.top, Right: left + width, Bottom: tl.top + tl.size},
				StyleID: id,
			})
			left += width + 8
		}
		built = append(built, layout.Line{Words: words})
	}
	return layout.BuildPage(index, built, raw)
}

func testDirections() Directions {
	return Directions{
		Page:   []string{"Page"},
		German: []string{"Seite", "Seite von"},
		ISF:    []string{"Importer Security Filing"},
	}
}

func numbered(index, start, end int) *PageResult {
	return &PageResult{Index: index, Number: PageNumber{Start: start, End: end}}
}

func labeled(index int, label string, start, end int) *PageResult {
	return &PageResult{Index: index, Label: label, Number: PageNumber{Start: start, End: end}}
}
