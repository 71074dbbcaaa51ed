package classify

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/icaplabs/pagewise/internal/entity"
	"github.com/icaplabs/pagewise/internal/layout"
)

// IDExtractor harvests "document id"-looking tokens (invoice numbers,
// waybill numbers) from the top of a page. Shared ids between consecutive
// pages are a weak signal that the pages belong to the same document.
type IDExtractor struct {
	categories CategorySet
	recognizer entity.Recognizer
	th         Thresholds
}

// NewIDExtractor builds an extractor. The recognizer screens out lines that
// name places or organizations; a nil recognizer disables that screen.
func NewIDExtractor(categories CategorySet, recognizer entity.Recognizer, th Thresholds) *IDExtractor {
	return &IDExtractor{categories: categories, recognizer: recognizer, th: th}
}

// Extract collects mostly-numeric tokens from lines in the top window of
// the page, excluding lines that look like category titles or that mention
// location/organization entities.
func (e *IDExtractor) Extract(page *layout.Page) []string {
	if page == nil || page.Bounds == nil {
		return nil
	}

	var ids []string
	seen := make(map[string]bool)
	for _, line := range page.Lines {
		if !page.TopBand(line, e.th.TopWindowFirst) {
			continue
		}
		text := line.Text()
		if e.triggerLike(text) {
			continue
		}
		if e.recognizer != nil && e.recognizer.HasLocationOrOrgEntity(text) {
			continue
		}
		for _, token := range strings.Fields(text) {
			if !referenceToken(token, e.th.DocIDMinLength) {
				continue
			}
			if !seen[token] {
				seen[token] = true
				ids = append(ids, token)
			}
		}
	}
	return ids
}

// triggerLike reports whether the line is close enough to a known trigger
// phrase to be a title rather than an id-bearing line.
func (e *IDExtractor) triggerLike(text string) bool {
	for _, triggers := range e.categories {
		for _, trig := range triggers {
			if float64(fuzzy.WRatio(text, trig.Text)) > e.th.DocIDTriggerScreen {
				return true
			}
		}
	}
	return false
}

// referenceToken reports whether a token looks like a reference number:
// long enough and at least half digits.
func referenceToken(token string, minLength int) bool {
	if len(token) < minLength {
		return false
	}
	digits := digitCount(token)
	return digits >= len(token)-digits
}

// Relevancy scores the document-id overlap between two consecutive pages.
// Set intersection is symmetric, so relevancy(a, b) == relevancy(b, a).
func Relevancy(prev, curr []string, perMatch int) int {
	if len(prev) == 0 || len(curr) == 0 {
		return 0
	}
	set := make(map[string]bool, len(prev))
	for _, id := range prev {
		set[id] = true
	}
	shared := 0
	counted := make(map[string]bool, len(curr))
	for _, id := range curr {
		if set[id] && !counted[id] {
			counted[id] = true
			shared++
		}
	}
	return perMatch * shared
}
