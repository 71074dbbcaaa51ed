// Package classify implements the page classification and page-number
// reconciliation engine: trigger-based category scoring with a
// co-occurrence fallback, page-number cue extraction, sequence-consistency
// repair, and document-boundary splitting.
package classify

// Category labels with dedicated handling in the trigger decision table.
// The dictionaries are free to define any further labels.
const (
	LabelBlank             = "Blank"
	LabelCommercialInvoice = "Commercial Invoice"
	LabelPackingList       = "Packing List"
	LabelAirwayBill        = "Airway Bill"
	LabelBillOfLading      = "Bill of Lading"
	LabelDeliveryNote      = "Delivery Note"
)

// Source records which scorer produced a page's label.
type Source int

const (
	// SourceTitle means the title triggers decided on their own.
	SourceTitle Source = iota
	// SourceMatrixValidated means the co-occurrence matrix corroborated or
	// refined a title decision.
	SourceMatrixValidated
	// SourceMatrixPrimary means the matrix supplied the label because the
	// title triggers were inconclusive.
	SourceMatrixPrimary
)

// PageNumber is a tentative (start, end) page-number pair extracted from a
// page. Zero means unknown; real page numbers start at 1.
type PageNumber struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Known reports whether the start number was resolved.
func (n PageNumber) Known() bool {
	return n.Start != 0
}

// Complete reports whether both numbers were resolved.
func (n PageNumber) Complete() bool {
	return n.Start != 0 && n.End != 0
}

// Unknown reports whether neither number was resolved.
func (n PageNumber) Unknown() bool {
	return n.Start == 0 && n.End == 0
}

// PageResult is the per-page classification outcome. Label and scores are
// written once by the scorers; Number is repaired in place by the
// reconciler.
type PageResult struct {
	// Index is the 1-based position of the page within its batch.
	Index int `json:"index"`

	// Label is the inferred category; empty means unclassified.
	Label       string  `json:"label"`
	TitleScore  float64 `json:"title_score"`
	MatrixScore float64 `json:"matrix_score"`
	Source      Source  `json:"source"`

	Number    PageNumber `json:"page_number"`
	Relevancy int        `json:"relevancy"`

	// docIDs feeds the relevancy chain to the following page.
	docIDs []string
}

// DocumentSegment is a contiguous run of pages forming one detected
// document instance. First and Last are 1-based and inclusive.
type DocumentSegment struct {
	Label string `json:"label"`
	First int    `json:"first"`
	Last  int    `json:"last"`
}

// GroupByLabel folds segments into a label -> page-range list mapping.
// Ranges for the same label may repeat non-contiguously across the batch.
func GroupByLabel(segments []DocumentSegment) map[string][][2]int {
	grouped := make(map[string][][2]int)
	for _, s := range segments {
		grouped[s.Label] = append(grouped[s.Label], [2]int{s.First, s.Last})
	}
	return grouped
}
