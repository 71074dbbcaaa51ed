// Package training implements the manual-classification workflow: merging
// user-taught triggers into the dictionaries, re-running prediction, and
// annotating each page with a color-coded confidence and human-readable
// remarks for operator review.
package training

import (
	"fmt"
	"log/slog"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/icaplabs/pagewise/internal/classify"
	"github.com/icaplabs/pagewise/internal/entity"
	"github.com/icaplabs/pagewise/internal/layout"
)

// Confidence colors surfaced to the review UI.
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

// Fixed remark strings the review UI keys on.
const (
	remarkExcelSheet    = "excel sheets"
	remarkNameMatched   = "name matching doctype"
	remarkFailed        = "classification failed."
	remarkFontTooSmall  = "font size too small"
	remarkNotInTopBand  = "not found in top 40% of the page"
	remarkNoLineMatch   = "marked trigger not found on the page"
	remarkEntityInvalid = "marked trigger looks like an entity, not a title"
)

// TriggerMark is one user-marked trigger occurrence on a page.
type TriggerMark struct {
	Text    string             `json:"text"`
	BBox    layout.BoundingBox `json:"bbox"`
	StyleID int                `json:"style"`
}

// PageRecord extends a page with the human-entered training fields and the
// annotations the validator writes back.
type PageRecord struct {
	Index      int          `json:"index"`
	Layout     *layout.Page `json:"-"`
	LayoutPath string       `json:"layout_file_path"`

	// Human-entered fields.
	UserDocType     string        `json:"user_classified_doc_type"`
	Triggers        []TriggerMark `json:"trigger"`
	NameMatchedType string        `json:"name_matching_doc_type"`

	// Validator output.
	PredictedDocType string   `json:"manual_classified_doc_type"`
	Color            string   `json:"color"`
	Score            float64  `json:"score"`
	Remarks          []string `json:"remarks"`
	StartIndex       int      `json:"start_index"`
}

// Trainer validates human classifications against the automatic engine.
type Trainer struct {
	master     classify.CategorySet
	custom     classify.CategorySet
	matrix     classify.Matrix
	directions classify.Directions
	th         classify.Thresholds
	recognizer entity.Recognizer
	logger     *slog.Logger
}

// NewTrainer builds a trainer over the master and custom dictionaries. The
// custom set is mutated when duplicate taught triggers must be stripped.
func NewTrainer(master, custom classify.CategorySet, matrix classify.Matrix, directions classify.Directions, th classify.Thresholds, recognizer entity.Recognizer, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if recognizer == nil {
		recognizer = entity.NewHeuristic()
	}
	if custom == nil {
		custom = classify.CategorySet{}
	}
	return &Trainer{
		master:     master,
		custom:     custom,
		matrix:     matrix,
		directions: directions,
		th:         th,
		recognizer: recognizer,
		logger:     logger,
	}
}

// Custom exposes the (possibly stripped) custom dictionary after analysis.
func (t *Trainer) Custom() classify.CategorySet {
	return t.custom
}

// Analyze merges taught triggers into the dictionaries, re-runs prediction
// over the batch, and annotates every record in place with its predicted
// type, confidence color, landmark score, and remarks.
func (t *Trainer) Analyze(records []*PageRecord) error {
	merged := classify.Merge(t.master, t.custom)
	t.teach(records, merged)

	pipeline := classify.New(classify.Config{
		Categories: merged,
		Matrix:     t.matrix,
		Directions: t.directions,
		Thresholds: t.th,
		Recognizer: t.recognizer,
		Logger:     t.logger,
	})

	inputs := make([]classify.PageInput, 0, len(records))
	for _, rec := range records {
		in := classify.PageInput{Index: rec.Index, NameMatchedType: rec.NameMatchedType}
		if rec.LayoutPath != "" {
			in.Layout = rec.Layout
		}
		inputs = append(inputs, in)
	}

	result, err := pipeline.Run(inputs, nil, true)
	if err != nil {
		return fmt.Errorf("training prediction failed: %w", err)
	}

	predicted := make(map[int]*classify.PageResult, len(result.Pages))
	for _, pr := range result.Pages {
		predicted[pr.Index] = pr
	}

	for _, rec := range records {
		t.annotate(rec, predicted[rec.Index])
	}
	return nil
}

// teach appends each page's first user-marked trigger to the merged
// dictionary under the user's label, enabling train-by-highlighting. A
// phrase already taught to a different category is rejected and stripped
// from the custom dictionary: two categories sharing a trigger would make
// every future classification of that phrase ambiguous.
func (t *Trainer) teach(records []*PageRecord, merged classify.CategorySet) {
	for _, rec := range records {
		if rec.UserDocType == "" || len(rec.Triggers) == 0 {
			continue
		}
		mark := rec.Triggers[0]
		if mark.Text == "" {
			continue
		}
		if owner, dup := merged.FindDuplicate(mark.Text, rec.UserDocType); dup {
			rec.Remarks = append(rec.Remarks,
				fmt.Sprintf("trigger %q already belongs to category %q and was removed", mark.Text, owner))
			t.custom.Remove(rec.UserDocType, mark.Text)
			t.logger.Debug("duplicate trigger rejected",
				"page", rec.Index, "trigger", mark.Text, "owner", owner)
			continue
		}
		merged.Add(rec.UserDocType, mark.Text)
	}
}

// annotate writes the validation outcome for one record.
func (t *Trainer) annotate(rec *PageRecord, pr *classify.PageResult) {
	rec.StartIndex = 1

	if rec.LayoutPath == "" || rec.Layout == nil {
		rec.PredictedDocType = ""
		rec.Remarks = append(rec.Remarks, remarkExcelSheet)
		return
	}
	if rec.NameMatchedType != "" {
		rec.PredictedDocType = ""
		rec.Remarks = append(rec.Remarks, remarkNameMatched)
		return
	}
	if pr == nil {
		rec.Color = ColorRed
		rec.Remarks = append(rec.Remarks, remarkFailed)
		return
	}

	rec.PredictedDocType = pr.Label
	if pr.Number.Known() {
		rec.StartIndex = pr.Number.Start
	}

	if rec.UserDocType != "" && pr.Label != rec.UserDocType {
		rec.Color = ColorRed
		rec.Remarks = append(rec.Remarks, remarkFailed)
		return
	}

	score, remarks := t.landmarkScore(rec)
	rec.Score = score
	rec.Remarks = append(rec.Remarks, remarks...)
	switch {
	case score >= t.th.GreenScore:
		rec.Color = ColorGreen
	case score >= t.th.YellowScore:
		rec.Color = ColorYellow
	default:
		rec.Color = ColorRed
	}
}

// landmarkScore sums the heuristic landmark features of the user-marked
// trigger: entity validity, presence of a matching line, top-of-page
// position, boldness, and font size.
func (t *Trainer) landmarkScore(rec *PageRecord) (float64, []string) {
	if len(rec.Triggers) == 0 {
		return 0, []string{remarkNoLineMatch}
	}
	mark := rec.Triggers[0]
	page := rec.Layout
	w := t.th.LandmarkWeight

	score := 0.0
	var remarks []string

	if !t.recognizer.HasLocationOrOrgEntity(mark.Text) {
		score += w
	} else {
		remarks = append(remarks, remarkEntityInvalid)
	}

	line, found := t.findMarkedLine(page, mark)
	if found {
		score += w
		if page.TopBand(line, t.th.TopWindowFirst) {
			score += w
		} else {
			remarks = append(remarks, remarkNotInTopBand)
		}
		if st, ok := page.Styles[line.StyleID()]; ok {
			if st.Bold {
				score += w
			}
			if st.Size >= t.th.LandmarkFontFloor {
				score += w
			} else {
				remarks = append(remarks, remarkFontTooSmall)
			}
		}
	} else {
		remarks = append(remarks, remarkNoLineMatch)
	}

	return score, remarks
}

// findMarkedLine locates the page line the user marked, by fuzzy text match
// and bounding-box overlap.
func (t *Trainer) findMarkedLine(page *layout.Page, mark TriggerMark) (layout.Line, bool) {
	for _, line := range page.Lines {
		if float64(fuzzy.WRatio(line.Text(), mark.Text)) < t.th.FuzzyAccept {
			continue
		}
		if mark.BBox == (layout.BoundingBox{}) || line.BBox.OverlapsHorizontally(mark.BBox) {
			return line, true
		}
	}
	return layout.Line{}, false
}
