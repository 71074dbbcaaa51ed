// Package layout holds the page text model consumed by the classification
// engine: lines of styled words with bounding boxes, a per-page style table
// with normalized font sizes, and the content-bounds envelope.
package layout

import "strings"

// BoundingBox represents a rectangle on a page. Coordinates grow rightward
// and downward (top-left origin).
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 {
	return b.Bottom - b.Top
}

// Extend grows the box to envelop another box.
func (b *BoundingBox) Extend(o BoundingBox) {
	if o.Left < b.Left {
		b.Left = o.Left
	}
	if o.Top < b.Top {
		b.Top = o.Top
	}
	if o.Right > b.Right {
		b.Right = o.Right
	}
	if o.Bottom > b.Bottom {
		b.Bottom = o.Bottom
	}
}

// Overlaps reports whether two boxes intersect horizontally.
func (b BoundingBox) OverlapsHorizontally(o BoundingBox) bool {
	return b.Left <= o.Right && o.Left <= b.Right
}

// Style describes the font of a run of words. Size is normalized to the
// 0..40 range relative to the largest font on the page.
type Style struct {
	FontFamily string  `json:"font_family"`
	Bold       bool    `json:"bold"`
	Size       float64 `json:"size"`
}

// RawStyle carries un-normalized font information from the OCR source.
type RawStyle struct {
	FontFamily string
	Bold       bool
	Size       float64
}

// Word is one recognized word with its bounding box and style reference.
type Word struct {
	Text    string      `json:"text"`
	BBox    BoundingBox `json:"bbox"`
	StyleID int         `json:"style"`
}

// Line is an ordered run of words sharing a baseline.
type Line struct {
	Words []Word      `json:"words"`
	BBox  BoundingBox `json:"bbox"`
}

// Text returns the space-joined word text of the line.
func (l Line) Text() string {
	parts := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		if w.Text != "" {
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " ")
}

// StyleID returns the style of the line, taken from its first word.
// Returns -1 for an empty line.
func (l Line) StyleID() int {
	if len(l.Words) == 0 {
		return -1
	}
	return l.Words[0].StyleID
}

// WordCount returns the number of non-empty words on the line.
func (l Line) WordCount() int {
	n := 0
	for _, w := range l.Words {
		if w.Text != "" {
			n++
		}
	}
	return n
}

// Page is one physical page of a batch. Pages are built once from the OCR
// source and are immutable afterwards.
type Page struct {
	// Index is the 1-based position of the page within its batch.
	Index int `json:"index"`

	Lines  []Line        `json:"lines"`
	Styles map[int]Style `json:"styles"`

	// Bounds is the envelope of every line bounding box on the page.
	// Nil when the page carries no styled lines (blank page).
	Bounds *BoundingBox `json:"bounds,omitempty"`
}

// Blank reports whether the page carries no recognizable font information.
// Blank pages classify to the Blank sentinel regardless of text content.
func (p *Page) Blank() bool {
	return len(p.Styles) == 0
}

// MaxFontSize is the upper bound of the normalized font scale.
const MaxFontSize = 40.0

// BuildPage assembles a Page from raw lines and styles. Font sizes are
// rescaled so the largest font on the page maps to MaxFontSize. Line boxes
// are recomputed from their word envelopes when words are present. A page
// with no usable input yields an empty (blank) page rather than an error so
// one corrupt page never aborts a batch.
func BuildPage(index int, lines []Line, raw map[int]RawStyle) *Page {
	page := &Page{
		Index:  index,
		Styles: make(map[int]Style, len(raw)),
	}

	maxSize := 0.0
	for _, rs := range raw {
		if rs.Size > maxSize {
			maxSize = rs.Size
		}
	}
	for id, rs := range raw {
		size := 0.0
		if maxSize > 0 {
			size = rs.Size / maxSize * MaxFontSize
		}
		page.Styles[id] = Style{FontFamily: rs.FontFamily, Bold: rs.Bold, Size: size}
	}

	for _, line := range lines {
		if len(line.Words) > 0 {
			bbox := line.Words[0].BBox
			for _, w := range line.Words[1:] {
				bbox.Extend(w.BBox)
			}
			line.BBox = bbox
		}
		if line.WordCount() == 0 {
			continue
		}
		if page.Bounds == nil {
			b := line.BBox
			page.Bounds = &b
		} else {
			page.Bounds.Extend(line.BBox)
		}
		page.Lines = append(page.Lines, line)
	}

	return page
}

// TopBand reports whether the line starts within the top fraction of the
// page's content bounds. Lines on a page without bounds are never in band.
func (p *Page) TopBand(l Line, fraction float64) bool {
	if p.Bounds == nil {
		return false
	}
	return l.BBox.Top <= p.Bounds.Top+p.Bounds.Height()*fraction
}

// BottomBand reports whether the line starts within the bottom fraction of
// the page's content bounds.
func (p *Page) BottomBand(l Line, fraction float64) bool {
	if p.Bounds == nil {
		return false
	}
	return l.BBox.Top >= p.Bounds.Bottom-p.Bounds.Height()*fraction
}
