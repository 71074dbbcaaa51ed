package classify

import (
	"fmt"
	"log/slog"

	"github.com/icaplabs/pagewise/internal/entity"
	"github.com/icaplabs/pagewise/internal/layout"
)

// PageInput is one page of a batch handed to the pipeline. Layout is nil
// for pages with no layout source (Excel worksheets, blank placeholders);
// such pages are excluded from analysis but still occupy their slot in the
// output segmentation.
type PageInput struct {
	// Index is the 1-based position within the batch.
	Index int

	Layout *layout.Page

	// NameMatchedType is non-empty when a filename rule elsewhere already
	// determined the page's type; such pages skip automatic classification.
	NameMatchedType string
}

// PageRange is a 1-based inclusive index range within a batch.
type PageRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Config assembles a pipeline. Categories is the master dictionary; Custom
// is merged in additively. A nil Recognizer falls back to the heuristic
// default.
type Config struct {
	Categories CategorySet
	Custom     CategorySet
	Matrix     Matrix
	Directions Directions
	Thresholds Thresholds
	Recognizer entity.Recognizer
	Logger     *slog.Logger
}

// Pipeline wires the scorers, extractors, reconciler, and splitter into the
// per-batch classification flow. Batches are processed synchronously and
// in strictly ascending page order; the reconciler depends on it. Trigger
// matching is O(pages x lines x triggers) — large custom dictionaries make
// batches slower, never wrong.
type Pipeline struct {
	categories CategorySet
	titles     *TitleScorer
	numbers    *NumberExtractor
	ids        *IDExtractor
	reconciler *Reconciler
	th         Thresholds
	logger     *slog.Logger
}

// BatchResult is the pipeline output for one batch: the per-page detail
// table and the final segmentation covering every input page.
type BatchResult struct {
	Pages    []*PageResult     `json:"pages"`
	Segments []DocumentSegment `json:"segments"`
}

// New builds a pipeline from the merged configuration.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	recognizer := cfg.Recognizer
	if recognizer == nil {
		recognizer = entity.NewHeuristic()
	}

	merged := Merge(cfg.Categories, cfg.Custom)
	matrix := NewMatrixScorer(cfg.Matrix, cfg.Thresholds)

	return &Pipeline{
		categories: merged,
		titles:     NewTitleScorer(merged, matrix, cfg.Thresholds, logger),
		numbers:    NewNumberExtractor(cfg.Directions, cfg.Thresholds),
		ids:        NewIDExtractor(merged, recognizer, cfg.Thresholds),
		reconciler: NewReconciler(cfg.Thresholds, logger),
		th:         cfg.Thresholds,
		logger:     logger,
	}
}

// Categories exposes the merged dictionary the pipeline classifies with.
func (p *Pipeline) Categories() CategorySet {
	return p.categories
}

// Run classifies a batch. With automaticSplit the per-page table goes
// through page-number reconciliation and document splitting; without it,
// each input range becomes one segment labeled by its first classified
// page. Pages are scored strictly in order because the document-id
// relevancy of a page chains from the previous page's ids.
func (p *Pipeline) Run(inputs []PageInput, ranges []PageRange, automaticSplit bool) (*BatchResult, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("empty batch")
	}
	if len(ranges) == 0 {
		ranges = []PageRange{{First: inputs[0].Index, Last: inputs[len(inputs)-1].Index}}
	}

	byIndex := make(map[int]PageInput, len(inputs))
	for _, in := range inputs {
		byIndex[in.Index] = in
	}

	var table []*PageResult
	for _, rng := range ranges {
		var prevIDs []string
		for idx := rng.First; idx <= rng.Last; idx++ {
			in, ok := byIndex[idx]
			if !ok {
				return nil, fmt.Errorf("range %d-%d references missing page %d", rng.First, rng.Last, idx)
			}
			result := p.classifyPage(in, prevIDs)
			prevIDs = result.docIDs
			table = append(table, result)
		}
	}

	if automaticSplit {
		p.reconciler.Reconcile(table)
		return &BatchResult{Pages: table, Segments: Split(table)}, nil
	}

	segments := make([]DocumentSegment, 0, len(ranges))
	offset := 0
	for _, rng := range ranges {
		count := rng.Last - rng.First + 1
		label := ""
		for _, result := range table[offset : offset+count] {
			if result.Label != "" {
				label = result.Label
				break
			}
		}
		segments = append(segments, DocumentSegment{Label: label, First: rng.First, Last: rng.Last})
		offset += count
	}
	return &BatchResult{Pages: table, Segments: segments}, nil
}

// classifyPage runs the per-page scorers. Pages without layout and pages
// with a name-matched type are forced to a single-page stub so they stay
// in the segmentation without being analyzed.
func (p *Pipeline) classifyPage(in PageInput, prevIDs []string) *PageResult {
	if in.Layout == nil || in.NameMatchedType != "" {
		return &PageResult{
			Index:  in.Index,
			Number: PageNumber{Start: 1, End: 1},
		}
	}

	decision := p.titles.Classify(in.Layout)
	result := &PageResult{
		Index:       in.Index,
		Label:       decision.Label,
		TitleScore:  decision.TitleScore,
		MatrixScore: decision.MatrixScore,
		Source:      decision.Source,
		Number:      p.numbers.Extract(in.Layout),
	}
	result.docIDs = p.ids.Extract(in.Layout)
	result.Relevancy = Relevancy(prevIDs, result.docIDs, p.th.RelevancyPerMatch)

	p.logger.Debug("page classified",
		"page", in.Index,
		"label", result.Label,
		"title_score", result.TitleScore,
		"page_number", result.Number,
		"relevancy", result.Relevancy)

	return result
}
