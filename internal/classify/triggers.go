package classify

import (
	"log/slog"
	"math"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/icaplabs/pagewise/internal/layout"
)

// Decision is the per-page outcome of the title/matrix classification.
type Decision struct {
	Label       string
	TitleScore  float64
	MatrixScore float64
	Source      Source

	// Scores holds the per-category trigger scores of the deciding pass.
	Scores map[string]float64
}

// TitleScorer scores pages against the trigger dictionaries, consulting the
// co-occurrence matrix when the trigger evidence is ambiguous.
type TitleScorer struct {
	categories CategorySet
	matrix     *MatrixScorer
	th         Thresholds
	logger     *slog.Logger
}

// NewTitleScorer builds a scorer over merged category dictionaries.
func NewTitleScorer(categories CategorySet, matrix *MatrixScorer, th Thresholds, logger *slog.Logger) *TitleScorer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TitleScorer{categories: categories, matrix: matrix, th: th, logger: logger}
}

// Classify scores the page's top-of-page lines against every trigger and
// applies the disambiguation table. Pages with no font information are
// always Blank: without styles there is no title evidence to weigh.
func (s *TitleScorer) Classify(page *layout.Page) Decision {
	if page == nil || page.Blank() {
		return Decision{
			Label:      LabelBlank,
			TitleScore: s.th.BlankScore,
			Scores:     map[string]float64{LabelBlank: s.th.BlankScore},
		}
	}

	// Titles sit near the top of the page but drift lower on noisy scans,
	// so a second pass widens the window when the first is inconclusive.
	scores := s.scorePass(page, s.th.TopWindowFirst)
	if maxScore(scores) < s.th.SecondPassCutoff {
		widened := s.scorePass(page, s.th.TopWindowSecond)
		for label, score := range widened {
			if score > scores[label] {
				scores[label] = score
			}
		}
	}

	return s.decide(page, scores)
}

// scorePass scores one top-window pass. Every trigger contributes the score
// of its best-matching line; a category's score is the sum of its triggers'
// contributions.
func (s *TitleScorer) scorePass(page *layout.Page, window float64) map[string]float64 {
	scores := make(map[string]float64)
	for label, triggers := range s.categories {
		total := 0.0
		for _, trig := range triggers {
			best := 0.0
			for _, line := range page.Lines {
				if !page.TopBand(line, window) {
					continue
				}
				text := line.Text()
				if len(text) <= s.th.MinLineLength {
					continue
				}
				if !s.matches(text, trig) {
					continue
				}
				score := s.lineScore(page, line, trig)
				if score > best {
					best = score
				}
			}
			total += best
		}
		if total > 0 {
			scores[label] = total
		}
	}
	return scores
}

// matches applies the fuzzy acceptance rules for one line/trigger pair.
func (s *TitleScorer) matches(text string, trig Trigger) bool {
	ts := float64(fuzzy.TokenSetRatio(text, trig.Text))
	wr := float64(fuzzy.WRatio(text, trig.Text))

	if ts >= s.th.ExactPair && wr >= s.th.ExactPair {
		return true
	}
	if !mutualSubstring(text, trig.Text) || wordCount(text) < trig.WordCount() {
		return false
	}
	if trig.Modifier == ModifierNone {
		return ts >= s.th.FuzzyAccept && wr >= s.th.FuzzyAccept-s.th.WRatioSlack
	}
	tightened := s.th.FuzzyAccept + s.th.ModifierTightening
	return ts >= tightened && wr >= tightened
}

// lineScore computes a matched line's contribution: the normalized font
// size of the line's style, with bold and modifier bonuses.
func (s *TitleScorer) lineScore(page *layout.Page, line layout.Line, trig Trigger) float64 {
	score := 0.0
	if st, ok := page.Styles[line.StyleID()]; ok {
		score = st.Size
		if st.Bold {
			score += s.th.BoldBonus
		}
	}
	switch trig.Modifier {
	case ModifierFocus:
		score += s.th.FocusBonus
	case ModifierForce:
		score += s.th.ForceBonus
	}
	return score
}

// decide applies the disambiguation table to the accumulated scores. The
// numeric floors are load-bearing business logic preserved exactly.
func (s *TitleScorer) decide(page *layout.Page, scores map[string]float64) Decision {
	best, bestScore := "", 0.0
	for label, score := range scores {
		if score > bestScore || (score == bestScore && label < best) {
			best, bestScore = label, score
		}
	}

	switch {
	case best == LabelCommercialInvoice || best == LabelPackingList:
		other := LabelPackingList
		if best == LabelPackingList {
			other = LabelCommercialInvoice
		}
		gap := math.Abs(bestScore - scores[other])
		if gap <= s.th.InvoicePackingGap || bestScore <= s.th.InvoicePackingFloor {
			mLabel, mWeights := s.matrix.Score(page)
			if mLabel == LabelCommercialInvoice || mLabel == LabelPackingList {
				return Decision{
					Label:       mLabel,
					TitleScore:  scores[mLabel],
					MatrixScore: mWeights[mLabel],
					Source:      SourceMatrixValidated,
					Scores:      scores,
				}
			}
			// The matrix could not tell the pair apart; fall back to the
			// generic floors.
			if bestScore >= s.th.DirectAccept {
				return Decision{Label: best, TitleScore: bestScore, Source: SourceTitle, Scores: scores}
			}
			return Decision{Label: mLabel, TitleScore: bestScore, MatrixScore: mWeights[mLabel], Source: SourceMatrixPrimary, Scores: scores}
		}
		return Decision{Label: best, TitleScore: bestScore, Source: SourceTitle, Scores: scores}

	case best == LabelAirwayBill:
		if bestScore >= s.th.AirwayBillFloor {
			return Decision{Label: best, TitleScore: bestScore, Source: SourceTitle, Scores: scores}
		}
		mLabel, mWeights := s.matrix.Score(page)
		if mLabel == LabelAirwayBill {
			return Decision{
				Label:       LabelAirwayBill,
				TitleScore:  bestScore,
				MatrixScore: mWeights[mLabel],
				Source:      SourceMatrixValidated,
				Scores:      scores,
			}
		}
		return Decision{TitleScore: bestScore, MatrixScore: mWeights[mLabel], Source: SourceMatrixPrimary, Scores: scores}

	case best == LabelDeliveryNote:
		if bestScore > s.th.DeliveryNoteFloor {
			return Decision{Label: best, TitleScore: bestScore, Source: SourceTitle, Scores: scores}
		}
		mLabel, mWeights := s.matrix.Score(page)
		if mLabel == LabelCommercialInvoice || mLabel == LabelPackingList {
			// The matrix leans invoice/packing but the title said delivery
			// note; the title wins, the matrix weight is recorded.
			return Decision{
				Label:       best,
				TitleScore:  bestScore,
				MatrixScore: mWeights[mLabel],
				Source:      SourceMatrixValidated,
				Scores:      scores,
			}
		}
		return Decision{Label: mLabel, MatrixScore: mWeights[mLabel], TitleScore: bestScore, Source: SourceMatrixPrimary, Scores: scores}

	case best == LabelBillOfLading:
		if bestScore >= s.th.BillOfLadingFloor {
			return Decision{Label: best, TitleScore: bestScore, Source: SourceTitle, Scores: scores}
		}
		mLabel, mWeights := s.matrix.Score(page)
		if mLabel == LabelBillOfLading {
			return Decision{
				Label:       LabelBillOfLading,
				TitleScore:  bestScore,
				MatrixScore: mWeights[mLabel],
				Source:      SourceMatrixValidated,
				Scores:      scores,
			}
		}
		return Decision{TitleScore: bestScore, MatrixScore: mWeights[mLabel], Source: SourceMatrixPrimary, Scores: scores}

	case bestScore >= s.th.DirectAccept:
		return Decision{Label: best, TitleScore: bestScore, Source: SourceTitle, Scores: scores}

	default:
		mLabel, mWeights := s.matrix.Score(page)
		s.logger.Debug("trigger evidence inconclusive, matrix primary",
			"page", page.Index, "title_best", best, "title_score", bestScore, "matrix_label", mLabel)
		return Decision{
			Label:       mLabel,
			TitleScore:  bestScore,
			MatrixScore: mWeights[mLabel],
			Source:      SourceMatrixPrimary,
			Scores:      scores,
		}
	}
}

func maxScore(scores map[string]float64) float64 {
	best := 0.0
	for _, s := range scores {
		if s > best {
			best = s
		}
	}
	return best
}
