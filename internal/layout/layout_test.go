package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(text string, left, top, right, bottom float64, styleID int) Word {
	return Word{
		Text:    text,
		BBox:    BoundingBox{Left: left, Top: top, Right: right, Bottom: bottom},
		StyleID: styleID,
	}
}

func TestBuildPageNormalizesFontSizes(t *testing.T) {
	raw := map[int]RawStyle{
		0: {FontFamily: "Arial", Bold: true, Size: 20},
		1: {FontFamily: "Arial", Size: 10},
	}
	lines := []Line{
		{Words: []Word{word("INVOICE", 50, 40, 150, 60, 0)}},
		{Words: []Word{word("Detail", 50, 100, 100, 110, 1)}},
	}

	page := BuildPage(1, lines, raw)

	assert.Equal(t, MaxFontSize, page.Styles[0].Size, "largest font maps to the scale ceiling")
	assert.Equal(t, MaxFontSize/2, page.Styles[1].Size)
	assert.True(t, page.Styles[0].Bold)
}

func TestBuildPageComputesBounds(t *testing.T) {
	raw := map[int]RawStyle{0: {Size: 12}}
	lines := []Line{
		{Words: []Word{
			word("Left", 50, 40, 90, 52, 0),
			word("Right", 200, 40, 260, 52, 0),
		}},
		{Words: []Word{word("Footer", 80, 900, 140, 912, 0)}},
	}

	page := BuildPage(1, lines, raw)

	require.NotNil(t, page.Bounds)
	assert.Equal(t, BoundingBox{Left: 50, Top: 40, Right: 260, Bottom: 912}, *page.Bounds)
	assert.Equal(t, BoundingBox{Left: 50, Top: 40, Right: 260, Bottom: 52}, page.Lines[0].BBox,
		"line box is the envelope of its words")
}

func TestBuildPageBlank(t *testing.T) {
	page := BuildPage(3, nil, nil)
	assert.True(t, page.Blank())
	assert.Nil(t, page.Bounds)
	assert.Equal(t, 3, page.Index)

	withEmptyLine := BuildPage(1, []Line{{}}, nil)
	assert.Empty(t, withEmptyLine.Lines, "lines without words are dropped")
}

func TestBands(t *testing.T) {
	raw := map[int]RawStyle{0: {Size: 10}}
	header := Line{Words: []Word{word("Header", 50, 0, 110, 10, 0)}}
	middle := Line{Words: []Word{word("Middle", 50, 500, 110, 510, 0)}}
	footer := Line{Words: []Word{word("Footer", 50, 990, 110, 1000, 0)}}

	page := BuildPage(1, []Line{header, middle, footer}, raw)

	assert.True(t, page.TopBand(page.Lines[0], 0.2))
	assert.False(t, page.TopBand(page.Lines[1], 0.2))
	assert.True(t, page.BottomBand(page.Lines[2], 0.2))
	assert.False(t, page.BottomBand(page.Lines[1], 0.2))
}

func TestLineAccessors(t *testing.T) {
	line := Line{Words: []Word{
		word("Gross", 50, 40, 90, 52, 2),
		word("Weight", 100, 40, 160, 52, 2),
		{Text: "", BBox: BoundingBox{}, StyleID: 2},
	}}

	assert.Equal(t, "Gross Weight", line.Text())
	assert.Equal(t, 2, line.StyleID())
	assert.Equal(t, 2, line.WordCount())
	assert.Equal(t, -1, Line{}.StyleID())
}

func TestBoundingBoxExtendAndOverlap(t *testing.T) {
	b := BoundingBox{Left: 10, Top: 10, Right: 20, Bottom: 20}
	b.Extend(BoundingBox{Left: 5, Top: 15, Right: 30, Bottom: 25})
	assert.Equal(t, BoundingBox{Left: 5, Top: 10, Right: 30, Bottom: 25}, b)

	assert.True(t, b.OverlapsHorizontally(BoundingBox{Left: 25, Right: 40}))
	assert.False(t, b.OverlapsHorizontally(BoundingBox{Left: 31, Right: 40}))
	assert.Equal(t, 25.0, b.Width())
	assert.Equal(t, 15.0, b.Height())
}
