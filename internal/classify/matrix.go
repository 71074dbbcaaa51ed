package classify

import (
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/icaplabs/pagewise/internal/layout"
)

// Matrix is the co-occurrence ("memory points") table: category label ->
// keyword -> weight. It is corroborating or fallback evidence only, never
// the primary classifier unless the trigger scorer is inconclusive.
type Matrix map[string]map[string]float64

// MatrixScorer scores pages against a co-occurrence matrix.
type MatrixScorer struct {
	matrix Matrix
	th     Thresholds
}

// NewMatrixScorer builds a scorer over the given matrix.
func NewMatrixScorer(matrix Matrix, th Thresholds) *MatrixScorer {
	return &MatrixScorer{matrix: matrix, th: th}
}

// Score accumulates keyword weights for every category across the page's
// lines and returns the winning label with the per-category weight map.
// The winner must clear an acceptance floor: Bill of Lading co-occurrence
// is noisier in this domain and uses a higher floor than everything else.
// An empty label means no category was convincing.
func (s *MatrixScorer) Score(page *layout.Page) (string, map[string]float64) {
	weights := make(map[string]float64, len(s.matrix))
	if page == nil || len(s.matrix) == 0 {
		return "", weights
	}

	for _, line := range page.Lines {
		key := normalizeKey(line.Text())
		if key == "" {
			continue
		}
		for label, keywords := range s.matrix {
			for _, match := range s.topKeywords(key, keywords) {
				weights[label] += keywords[match]
			}
		}
	}

	best, bestWeight := "", 0.0
	for label, w := range weights {
		if w > bestWeight {
			best, bestWeight = label, w
		}
	}

	floor := s.th.MatrixAcceptWeight
	if best == LabelBillOfLading {
		floor = s.th.MatrixLadingWeight
	}
	if best == "" || bestWeight <= floor {
		return "", weights
	}
	return best, weights
}

// topKeywords returns the strongest keyword candidates for one line,
// keeping at most MatrixKeywordTopN matches at or above the keyword floor.
func (s *MatrixScorer) topKeywords(lineKey string, keywords map[string]float64) []string {
	type candidate struct {
		keyword string
		score   int
	}
	var candidates []candidate
	for kw := range keywords {
		score := fuzzy.TokenSetRatio(lineKey, normalizeKey(kw))
		if float64(score) >= s.th.MatrixKeywordAccept {
			candidates = append(candidates, candidate{keyword: kw, score: score})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].keyword < candidates[j].keyword
	})
	if len(candidates) > s.th.MatrixKeywordTopN {
		candidates = candidates[:s.th.MatrixKeywordTopN]
	}
	matches := make([]string, len(candidates))
	for i, c := range candidates {
		matches[i] = c.keyword
	}
	return matches
}
