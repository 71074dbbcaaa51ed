package classify

// Thresholds collects every tuned scoring constant of the engine in one
// place. The defaults were calibrated against a production corpus of trade
// documents; treat them as tunable configuration, not values to re-derive.
type Thresholds struct {
	// Trigger matching.
	FuzzyAccept        float64 `json:"fuzzy_accept"`        // baseline token-set/WRatio acceptance
	ExactPair          float64 `json:"exact_pair"`          // both scorers at or above this is an unconditional match
	WRatioSlack        float64 `json:"wratio_slack"`        // WRatio may trail token-set by this much
	ModifierTightening float64 `json:"modifier_tightening"` // focus/force triggers must clear FuzzyAccept plus this
	MinLineLength      int     `json:"min_line_length"`     // lines must be strictly longer than this to be scored

	// Trigger score bonuses.
	BoldBonus  float64 `json:"bold_bonus"`
	FocusBonus float64 `json:"focus_bonus"`
	ForceBonus float64 `json:"force_bonus"`
	BlankScore float64 `json:"blank_score"`

	// Top-of-page windows.
	TopWindowFirst  float64 `json:"top_window_first"`
	TopWindowSecond float64 `json:"top_window_second"`

	// Decision table.
	SecondPassCutoff    float64 `json:"second_pass_cutoff"`    // skip the widened pass once a category reaches this
	DirectAccept        float64 `json:"direct_accept"`         // generic direct-acceptance floor
	InvoicePackingGap   float64 `json:"invoice_packing_gap"`   // invoice/packing-list scores this close defer to the matrix
	InvoicePackingFloor float64 `json:"invoice_packing_floor"` // ...as do winners at or below this score
	AirwayBillFloor     float64 `json:"airway_bill_floor"`
	DeliveryNoteFloor   float64 `json:"delivery_note_floor"`
	BillOfLadingFloor   float64 `json:"bill_of_lading_floor"`

	// Co-occurrence matrix.
	MatrixKeywordAccept float64 `json:"matrix_keyword_accept"` // per-keyword token-set floor
	MatrixKeywordTopN   int     `json:"matrix_keyword_top_n"`  // keyword candidates considered per line
	MatrixAcceptWeight  float64 `json:"matrix_accept_weight"`  // summed weight needed for most labels
	MatrixLadingWeight  float64 `json:"matrix_lading_weight"`  // Bill of Lading co-occurrence is noisier and needs more

	// Page numbers.
	PageNumberAccept float64 `json:"page_number_accept"` // direction-keyword fuzzy floor
	PageBandFraction float64 `json:"page_band_fraction"` // top/bottom band for the bare-number fallback

	// Document ids and relevancy.
	DocIDTriggerScreen float64 `json:"doc_id_trigger_screen"` // lines this close to a trigger are titles, not ids
	DocIDMinLength     int     `json:"doc_id_min_length"`
	RelevancyPerMatch  int     `json:"relevancy_per_match"`
	RelevancyInherit   int     `json:"relevancy_inherit"` // reconciler inherits across a label run above this

	// Reconciliation.
	ForwardLookahead int `json:"forward_lookahead"` // starts beyond index+this are implausible
	AnchorViolations int `json:"anchor_violations"` // forward inconsistencies that discount a (1,·) anchor

	// Manual-classification landmark scoring.
	LandmarkWeight    float64 `json:"landmark_weight"`
	LandmarkFontFloor float64 `json:"landmark_font_floor"`
	GreenScore        float64 `json:"green_score"`
	YellowScore       float64 `json:"yellow_score"`
}

// DefaultThresholds returns the production-calibrated constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FuzzyAccept:        85,
		ExactPair:          95,
		WRatioSlack:        2.5,
		ModifierTightening: 3,
		MinLineLength:      4,

		BoldBonus:  10,
		FocusBonus: 25,
		ForceBonus: 2000,
		BlankScore: 150,

		TopWindowFirst:  0.40,
		TopWindowSecond: 0.45,

		SecondPassCutoff:    125,
		DirectAccept:        110,
		InvoicePackingGap:   10,
		InvoicePackingFloor: 115,
		AirwayBillFloor:     130,
		DeliveryNoteFloor:   120,
		BillOfLadingFloor:   125,

		MatrixKeywordAccept: 70,
		MatrixKeywordTopN:   3,
		MatrixAcceptWeight:  0.5,
		MatrixLadingWeight:  0.7,

		PageNumberAccept: 85,
		PageBandFraction: 0.20,

		DocIDTriggerScreen: 90,
		DocIDMinLength:     4,
		RelevancyPerMatch:  10,
		RelevancyInherit:   20,

		ForwardLookahead: 5,
		AnchorViolations: 2,

		LandmarkWeight:    2,
		LandmarkFontFloor: 20,
		GreenScore:        8,
		YellowScore:       6,
	}
}
