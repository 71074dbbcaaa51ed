package classify

import "testing"

func reconcile(pages []*PageResult) {
	NewReconciler(DefaultThresholds(), nil).Reconcile(pages)
}

func TestReconcileMonotonicRecovery(t *testing.T) {
	// A ten-page document numbered "i of 10" with roughly a third of the
	// extractions missing must come back fully numbered.
	const total = 10
	missing := map[int]bool{2: true, 4: true, 7: true}

	pages := make([]*PageResult, 0, total)
	for i := 1; i <= total; i++ {
		n := PageNumber{Start: i, End: total}
		if missing[i] {
			n = PageNumber{}
		}
		pages = append(pages, labeled(i, LabelCommercialInvoice, n.Start, n.End))
	}

	reconcile(pages)

	for i, p := range pages {
		want := PageNumber{Start: i + 1, End: total}
		if p.Number != want {
			t.Errorf("page %d = %+v, want %+v", p.Index, p.Number, want)
		}
	}
}

func TestAnchorToleratesSingleInconsistency(t *testing.T) {
	t.Run("one violation keeps the anchor", func(t *testing.T) {
		pages := []*PageResult{
			numbered(1, 1, 0),
			numbered(2, 5, 0),
			numbered(3, 0, 0),
			numbered(4, 0, 0),
		}
		reconcile(pages)
		if pages[0].Number.Start != 1 {
			t.Errorf("a single inconsistency must not discount the anchor, got %+v", pages[0].Number)
		}
		if pages[1].Number.Known() {
			t.Errorf("the implausible start should have been reset, got %+v", pages[1].Number)
		}
	})

	t.Run("two violations discount the anchor", func(t *testing.T) {
		pages := []*PageResult{
			numbered(1, 1, 0),
			numbered(2, 5, 0),
			numbered(3, 7, 0),
		}
		reconcile(pages)
		if !pages[0].Number.Unknown() {
			t.Errorf("two inconsistencies must discount the anchor, got %+v", pages[0].Number)
		}
	})

	t.Run("window ends at the next document start", func(t *testing.T) {
		pages := []*PageResult{
			numbered(1, 1, 0),
			numbered(2, 9, 0),
			numbered(3, 1, 0),
			numbered(4, 5, 0),
		}
		reconcile(pages)
		if pages[0].Number.Start != 1 {
			t.Errorf("violations past a new document start must not count, got %+v", pages[0].Number)
		}
		if pages[2].Number.Start != 1 {
			t.Errorf("second anchor must survive, got %+v", pages[2].Number)
		}
	})
}

func TestReconcileResetsImplausibleStart(t *testing.T) {
	pages := []*PageResult{
		numbered(1, 1, 2),
		numbered(2, 2, 2),
		numbered(3, 50, 0),
	}
	reconcile(pages)
	if !pages[2].Number.Unknown() {
		t.Errorf("start 50 in a three-page batch must reset, got %+v", pages[2].Number)
	}
}

func TestReconcileBackwardFillsLongRun(t *testing.T) {
	// Only the last three pages of a nine-page document carried numbers;
	// the backward pass renumbers the whole run.
	pages := make([]*PageResult, 0, 9)
	for i := 1; i <= 6; i++ {
		pages = append(pages, labeled(i, LabelBillOfLading, 0, 0))
	}
	for i := 7; i <= 9; i++ {
		pages = append(pages, labeled(i, LabelBillOfLading, i, 9))
	}

	reconcile(pages)

	for i, p := range pages {
		want := PageNumber{Start: i + 1, End: 9}
		if p.Number != want {
			t.Errorf("page %d = %+v, want %+v", p.Index, p.Number, want)
		}
	}
}

func TestReconcileInheritsFromCompletePrevious(t *testing.T) {
	pages := []*PageResult{
		labeled(1, LabelCommercialInvoice, 1, 3),
		labeled(2, LabelCommercialInvoice, 0, 0),
		labeled(3, LabelCommercialInvoice, 0, 0),
	}
	reconcile(pages)
	if pages[1].Number != (PageNumber{Start: 2, End: 3}) {
		t.Errorf("page 2 = %+v, want (2,3)", pages[1].Number)
	}
	if pages[2].Number != (PageNumber{Start: 3, End: 3}) {
		t.Errorf("page 3 = %+v, want (3,3)", pages[2].Number)
	}
}

func TestReconcileNoInheritancePastDocumentEnd(t *testing.T) {
	pages := []*PageResult{
		labeled(1, LabelCommercialInvoice, 1, 1),
		labeled(2, LabelPackingList, 0, 0),
	}
	reconcile(pages)
	if !pages[1].Number.Unknown() {
		t.Errorf("a closed document must not leak numbering, got %+v", pages[1].Number)
	}
}

func TestReconcileRelevancyInheritance(t *testing.T) {
	pages := []*PageResult{
		labeled(1, LabelCommercialInvoice, 2, 6),
		labeled(2, LabelCommercialInvoice, 3, 0),
		labeled(3, LabelCommercialInvoice, 0, 0),
	}
	pages[2].Relevancy = 30

	reconcile(pages)
	if pages[2].Number != (PageNumber{Start: 4, End: 6}) {
		t.Errorf("relevancy walk should reach the complete page, got %+v", pages[2].Number)
	}
}

func TestReconcileBackwardFill(t *testing.T) {
	pages := []*PageResult{
		labeled(1, LabelBillOfLading, 0, 0),
		labeled(2, LabelBillOfLading, 3, 4),
		labeled(3, LabelBillOfLading, 4, 4),
		labeled(4, LabelBillOfLading, 0, 0),
	}
	reconcile(pages)
	if pages[0].Number != (PageNumber{Start: 2, End: 4}) {
		t.Errorf("backward pass should fill next-1, got %+v", pages[0].Number)
	}
	if !pages[3].Number.Unknown() {
		t.Errorf("nothing past the closed document should be numbered, got %+v", pages[3].Number)
	}
}

func TestReconcileBackwardStopsAtDocumentStart(t *testing.T) {
	// A single-page document followed by a fragment of a larger one: the
	// backward pass must not renumber the document start to next-1.
	pages := []*PageResult{
		labeled(1, LabelDeliveryNote, 1, 1),
		labeled(2, LabelBillOfLading, 3, 4),
		labeled(3, LabelBillOfLading, 4, 4),
		labeled(4, LabelBillOfLading, 0, 0),
	}
	reconcile(pages)
	if pages[0].Number != (PageNumber{Start: 1, End: 1}) {
		t.Errorf("a page starting its own document must not be renumbered, got %+v", pages[0].Number)
	}
}

func TestReconcileEmptyBatch(t *testing.T) {
	reconcile(nil)
}
