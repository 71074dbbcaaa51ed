package layout

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageFromTextsGroupsLines(t *testing.T) {
	texts := []pdf.Text{
		// Title fragments on one baseline, out of X order.
		{Font: "Helvetica-Bold", FontSize: 18, X: 220, Y: 780, W: 90, S: "INVOICE"},
		{Font: "Helvetica-Bold", FontSize: 18, X: 72, Y: 780.5, W: 140, S: "COMMERCIAL"},
		// Body line lower on the page.
		{Font: "Helvetica", FontSize: 9, X: 72, Y: 700, W: 60, S: "Invoice"},
		{Font: "Helvetica", FontSize: 9, X: 140, Y: 700, W: 70, S: "Number"},
		{Font: "Helvetica", FontSize: 9, X: 220, Y: 700, W: 60, S: "770312"},
		// Whitespace fragments are noise.
		{Font: "Helvetica", FontSize: 9, X: 300, Y: 700, W: 5, S: "  "},
	}

	page := pageFromTexts(1, texts)

	require.Len(t, page.Lines, 2)
	assert.Equal(t, "COMMERCIAL INVOICE", page.Lines[0].Text(), "fragments sort by X within a line")
	assert.Equal(t, "Invoice Number 770312", page.Lines[1].Text())

	title := page.Styles[page.Lines[0].StyleID()]
	assert.True(t, title.Bold, "bold inferred from the font name")
	assert.Equal(t, MaxFontSize, title.Size)

	// The PDF bottom-left origin is flipped: the title is the topmost line.
	assert.Less(t, page.Lines[0].BBox.Top, page.Lines[1].BBox.Top)
}

func TestPageFromTextsEmpty(t *testing.T) {
	page := pageFromTexts(4, nil)
	assert.True(t, page.Blank())
	assert.Equal(t, 4, page.Index)
}
