package layout

import (
	"encoding/json"
	"fmt"
)

// Batch document format: a JSON dump of pre-parsed OCR layout, one entry per
// page. This is the neutral interchange shape for callers whose OCR output
// is neither hOCR nor a born-digital PDF.
//
//	{"pages": [{"index": 1,
//	            "styles": [{"id": 0, "font_family": "Arial", "bold": true, "size": 14}],
//	            "lines": [{"words": [{"text": "INVOICE",
//	                                  "bbox": [10, 20, 120, 40],
//	                                  "style": 0}]}]}]}

type batchDoc struct {
	Pages []batchPage `json:"pages"`
}

type batchPage struct {
	Index  int          `json:"index"`
	Styles []batchStyle `json:"styles"`
	Lines  []batchLine  `json:"lines"`
}

type batchStyle struct {
	ID         int     `json:"id"`
	FontFamily string  `json:"font_family"`
	Bold       bool    `json:"bold"`
	Size       float64 `json:"size"`
}

type batchLine struct {
	Words []batchWord `json:"words"`
}

type batchWord struct {
	Text  string     `json:"text"`
	BBox  [4]float64 `json:"bbox"`
	Style int        `json:"style"`
}

// ParseBatch decodes a layout batch dump into pages. Individual malformed
// pages degrade to blank pages; only an undecodable document is an error.
func ParseBatch(data []byte) ([]*Page, error) {
	var doc batchDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode layout batch: %w", err)
	}
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("layout batch contains no pages")
	}

	pages := make([]*Page, 0, len(doc.Pages))
	for i, bp := range doc.Pages {
		index := bp.Index
		if index == 0 {
			index = i + 1
		}

		raw := make(map[int]RawStyle, len(bp.Styles))
		for _, s := range bp.Styles {
			raw[s.ID] = RawStyle{FontFamily: s.FontFamily, Bold: s.Bold, Size: s.Size}
		}

		lines := make([]Line, 0, len(bp.Lines))
		for _, bl := range bp.Lines {
			var line Line
			for _, bw := range bl.Words {
				if _, ok := raw[bw.Style]; !ok {
					continue
				}
				line.Words = append(line.Words, Word{
					Text: bw.Text,
					BBox: BoundingBox{
						Left:   bw.BBox[0],
						Top:    bw.BBox[1],
						Right:  bw.BBox[2],
						Bottom: bw.BBox[3],
					},
					StyleID: bw.Style,
				})
			}
			if len(line.Words) > 0 {
				lines = append(lines, line)
			}
		}

		pages = append(pages, BuildPage(index, lines, raw))
	}
	return pages, nil
}
