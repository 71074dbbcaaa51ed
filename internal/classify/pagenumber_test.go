package classify

import "testing"

func newTestExtractor() *NumberExtractor {
	return NewNumberExtractor(testDirections(), DefaultThresholds())
}

func TestExtractSameLinePair(t *testing.T) {
	tests := []struct {
		name string
		line string
		want PageNumber
	}{
		{"plain of pair", "Page 1 of 2", PageNumber{Start: 1, End: 2}},
		{"combined slash token", "Page 2/4", PageNumber{Start: 2, End: 4}},
		{"ocr misread of", "Page 1 0f 3", PageNumber{Start: 1, End: 3}},
		{"lone number", "Page 7", PageNumber{Start: 7}},
		{"positional pair", "Page 3 5", PageNumber{Start: 3, End: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor()
			page := buildTestPage(1, []testLine{
				{text: "DELIVERY NOTE", top: 40, size: 40, bold: true},
				{text: tt.line, top: 500, size: 10},
				footerLine(950),
			})
			if got := e.Extract(page); got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestExtractBelowTriggerLine(t *testing.T) {
	e := newTestExtractor()
	page := buildTestPage(1, []testLine{
		{text: "DELIVERY NOTE", top: 40, size: 40, bold: true},
		{text: "Page", top: 100, size: 10},
		{text: "2 of 4", top: 120, size: 10},
		footerLine(950),
	})
	want := PageNumber{Start: 2, End: 4}
	if got := e.Extract(page); got != want {
		t.Errorf("Extract = %+v, want %+v", got, want)
	}
}

func TestExtractSkipsRepeatedCueBelow(t *testing.T) {
	e := newTestExtractor()
	page := buildTestPage(1, []testLine{
		{text: "DELIVERY NOTE", top: 40, size: 40, bold: true},
		{text: "Page", top: 100, size: 10},
		{text: "Page", top: 120, size: 10},
		{text: "3 of 9", top: 140, size: 10},
		footerLine(950),
	})
	want := PageNumber{Start: 3, End: 9}
	if got := e.Extract(page); got != want {
		t.Errorf("Extract = %+v, want %+v", got, want)
	}
}

func TestExtractGermanNextLine(t *testing.T) {
	e := newTestExtractor()
	page := buildTestPage(1, []testLine{
		{text: "LIEFERSCHEIN", top: 40, size: 40, bold: true},
		{text: "Seite von", top: 100, size: 10},
		{text: "2 von 3", top: 120, size: 10},
		footerLine(950),
	})
	want := PageNumber{Start: 2, End: 3}
	if got := e.Extract(page); got != want {
		t.Errorf("Extract = %+v, want %+v", got, want)
	}
}

func TestExtractISFAlwaysPageTwo(t *testing.T) {
	e := newTestExtractor()
	page := buildTestPage(1, []testLine{
		{text: "Importer Security Filing", top: 40, size: 40, bold: true},
		{text: "Page 5 of 9", top: 500, size: 10},
		footerLine(950),
	})
	want := PageNumber{Start: 2}
	if got := e.Extract(page); got != want {
		t.Errorf("ISF cue must win over numeric cues, got %+v", got)
	}
}

func TestExtractBandFallback(t *testing.T) {
	tests := []struct {
		name   string
		footer string
		want   PageNumber
	}{
		{"bare number", "3", PageNumber{Start: 3}},
		{"bare pair", "2 / 7", PageNumber{Start: 2, End: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor()
			page := buildTestPage(1, []testLine{
				{text: "DELIVERY NOTE", top: 40, size: 40, bold: true},
				{text: "Goods as per attached schedule", top: 400, size: 12},
				{text: tt.footer, top: 940, size: 8},
			})
			if got := e.Extract(page); got != tt.want {
				t.Errorf("Extract = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractIgnoresMidPageBareNumbers(t *testing.T) {
	e := newTestExtractor()
	page := buildTestPage(1, []testLine{
		{text: "DELIVERY NOTE", top: 40, size: 40, bold: true},
		{text: "12", top: 500, size: 12},
		footerLine(950),
	})
	if got := e.Extract(page); !got.Unknown() {
		t.Errorf("mid-page number must not be a page number, got %+v", got)
	}
}

func TestExtractRejectsReferenceNumbers(t *testing.T) {
	e := newTestExtractor()
	page := buildTestPage(1, []testLine{
		{text: "DELIVERY NOTE", top: 40, size: 40, bold: true},
		{text: "Page 770312", top: 500, size: 10},
		footerLine(950),
	})
	if got := e.Extract(page); !got.Unknown() {
		t.Errorf("tokens beyond four digits are references, got %+v", got)
	}
}

func TestExtractNilPage(t *testing.T) {
	e := newTestExtractor()
	if got := e.Extract(nil); !got.Unknown() {
		t.Errorf("nil page yields unknown, got %+v", got)
	}
}
