package classify

import (
	"testing"

	"github.com/icaplabs/pagewise/internal/entity"
)

func newTestPipeline() *Pipeline {
	return New(Config{
		Categories: ParseCategories(map[string][]string{
			LabelCommercialInvoice: {"COMMERCIAL INVOICE", "INVOICE"},
			LabelPackingList:       {"PACKING LIST"},
		}),
		Matrix: Matrix{
			LabelCommercialInvoice: {"invoice number": 0.35, "total amount": 0.25},
			LabelPackingList:       {"gross weight": 0.4, "net weight": 0.2},
		},
		Directions: testDirections(),
		Thresholds: DefaultThresholds(),
		Recognizer: entity.RecognizerFunc(func(string) bool { return false }),
	})
}

// invoicePages is a two-page invoice followed by a one-page packing list,
// the way the three arrive concatenated in one scanned batch.
func invoicePages() []PageInput {
	page1 := buildTestPage(1, []testLine{
		{text: "COMMERCIAL INVOICE", top: 40, size: 40, bold: true},
		{text: "Invoice Number 770312", top: 100, size: 12},
		{text: "Total Amount 1500", top: 160, size: 12},
		{text: "Page 1 of 2", top: 950, size: 10},
	})
	page2 := buildTestPage(2, []testLine{
		{text: "Invoice Number 770312", top: 40, size: 12},
		{text: "Goods continued from previous sheet", top: 100, size: 12},
		{text: "Page 2 of 2", top: 950, size: 10},
	})
	page3 := buildTestPage(3, []testLine{
		{text: "PACKING LIST", top: 40, size: 40, bold: true},
		{text: "Gross Weight 450 KG", top: 100, size: 12},
		{text: "Net Weight 420 KG", top: 160, size: 12},
		{text: "Page 1 of 1", top: 950, size: 10},
	})
	return []PageInput{
		{Index: 1, Layout: page1},
		{Index: 2, Layout: page2},
		{Index: 3, Layout: page3},
	}
}

func TestPipelineAutomaticSplit(t *testing.T) {
	result, err := newTestPipeline().Run(invoicePages(), nil, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Pages) != 3 {
		t.Fatalf("expected three page results, got %d", len(result.Pages))
	}
	if result.Pages[0].Label != LabelCommercialInvoice {
		t.Errorf("page 1 label = %q", result.Pages[0].Label)
	}
	if result.Pages[0].Number != (PageNumber{Start: 1, End: 2}) {
		t.Errorf("page 1 number = %+v", result.Pages[0].Number)
	}
	if result.Pages[1].Relevancy == 0 {
		t.Error("shared invoice number should carry relevancy to page 2")
	}
	if result.Pages[2].Label != LabelPackingList {
		t.Errorf("page 3 label = %q", result.Pages[2].Label)
	}

	want := []DocumentSegment{
		{Label: LabelCommercialInvoice, First: 1, Last: 2},
		{Label: LabelPackingList, First: 3, Last: 3},
	}
	if len(result.Segments) != len(want) {
		t.Fatalf("segments = %+v, want %+v", result.Segments, want)
	}
	for i := range want {
		if result.Segments[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, result.Segments[i], want[i])
		}
	}
}

func TestPipelineWithoutAutomaticSplit(t *testing.T) {
	result, err := newTestPipeline().Run(invoicePages(), nil, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Segments) != 1 {
		t.Fatalf("one range yields one segment, got %+v", result.Segments)
	}
	seg := result.Segments[0]
	if seg.First != 1 || seg.Last != 3 || seg.Label != LabelCommercialInvoice {
		t.Errorf("segment = %+v", seg)
	}
}

func TestPipelineExplicitRanges(t *testing.T) {
	result, err := newTestPipeline().Run(invoicePages(), []PageRange{{First: 1, Last: 2}, {First: 3, Last: 3}}, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected one segment per range, got %+v", result.Segments)
	}
	if result.Segments[1].Label != LabelPackingList {
		t.Errorf("second range label = %q", result.Segments[1].Label)
	}
}

func TestPipelineExcludedPagesBecomeStubs(t *testing.T) {
	inputs := []PageInput{
		{Index: 1},
		{Index: 2, Layout: buildTestPage(2, []testLine{
			{text: "COMMERCIAL INVOICE", top: 40, size: 40, bold: true},
			footerLine(950),
		}), NameMatchedType: LabelAirwayBill},
	}

	result, err := newTestPipeline().Run(inputs, nil, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, p := range result.Pages {
		if p.Label != "" {
			t.Errorf("excluded page %d must not be classified, got %q", p.Index, p.Label)
		}
		if p.Number != (PageNumber{Start: 1, End: 1}) {
			t.Errorf("excluded page %d should be a single-page stub, got %+v", p.Index, p.Number)
		}
	}
	if len(result.Segments) != 2 {
		t.Errorf("stubs are single-page documents, got %+v", result.Segments)
	}
}

func TestPipelineEmptyBatch(t *testing.T) {
	if _, err := newTestPipeline().Run(nil, nil, true); err == nil {
		t.Fatal("empty batch must error")
	}
}

func TestPipelineMissingPageInRange(t *testing.T) {
	inputs := []PageInput{{Index: 1}, {Index: 3}}
	if _, err := newTestPipeline().Run(inputs, nil, true); err == nil {
		t.Fatal("a range over a missing page must error")
	}
}

func TestPipelineCategoriesMerged(t *testing.T) {
	p := New(Config{
		Categories: ParseCategories(map[string][]string{
			LabelCommercialInvoice: {"COMMERCIAL INVOICE"},
		}),
		Custom: ParseCategories(map[string][]string{
			"Booking Confirmation": {"BOOKING CONFIRMATION"},
		}),
		Thresholds: DefaultThresholds(),
	})
	if len(p.Categories()) != 2 {
		t.Errorf("custom categories missing from merged set: %v", p.Categories())
	}
}
