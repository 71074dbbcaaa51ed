package classify

import (
	"regexp"
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/icaplabs/pagewise/internal/layout"
)

// Directions groups the configured page-direction keyword lists by cue
// family: plain "Page N of M" cues, German "Seite N von M" cues, and ISF
// filing sheets whose second page never restates a number.
type Directions struct {
	Page   []string `json:"page"`
	German []string `json:"german"`
	ISF    []string `json:"isf"`
}

// NumberExtractor infers a tentative (start, end) page-number pair from a
// page's text. Every internal failure resolves to an unknown pair; the
// reconciler absorbs the noise.
type NumberExtractor struct {
	dirs Directions
	th   Thresholds
}

// NewNumberExtractor builds an extractor over the configured direction
// keywords.
func NewNumberExtractor(dirs Directions, th Thresholds) *NumberExtractor {
	return &NumberExtractor{dirs: dirs, th: th}
}

// separator tokens between the two numbers of a pair, including the OCR
// misreads of "of".
var pairSeparators = map[string]bool{
	"of": true, "von": true, "0f": true, "0l": true, "/": true, "-": true,
}

var (
	combinedPairPattern = regexp.MustCompile(`(?i)^(\d{1,4})\s*(?:of|von|0f|0l|/|-)\s*(\d{1,4})[.,;:]?$`)
	bareNumberPattern   = regexp.MustCompile(`(?i)^(\d{1,3})(?:\s*(?:of|von|0f|0l|/|-)\s*(\d{1,4}))?$`)
)

// Extract scans the page for direction-keyword cues and returns the
// inferred pair. ISF cues win outright: an ISF continuation sheet is always
// page 2 of an unnumbered filing, regardless of other numeric tokens.
func (e *NumberExtractor) Extract(page *layout.Page) PageNumber {
	if page == nil || page.Bounds == nil {
		return PageNumber{}
	}

	for _, line := range page.Lines {
		for wi := range line.Words {
			if e.keywordAt(line, wi, e.dirs.ISF) > 0 {
				return PageNumber{Start: 2}
			}
		}
	}

	for li, line := range page.Lines {
		for wi := range line.Words {
			if span := e.keywordAt(line, wi, e.dirs.Page); span > 0 {
				if n := e.afterTrigger(page, li, wi, span); !n.Unknown() {
					return n
				}
			}
			if e.keywordAt(line, wi, e.dirs.German) > 0 {
				if n := e.nextLinePair(page, li); !n.Unknown() {
					return n
				}
			}
		}
	}

	return e.bandFallback(page)
}

// keywordAt fuzzy-matches the word window starting at wi against each
// keyword and returns the matched window length in words, or 0.
func (e *NumberExtractor) keywordAt(line layout.Line, wi int, keywords []string) int {
	for _, kw := range keywords {
		span := len(strings.Fields(kw))
		if span == 0 || wi+span > len(line.Words) {
			continue
		}
		parts := make([]string, span)
		for i := 0; i < span; i++ {
			parts[i] = line.Words[wi+i].Text
		}
		window := strings.Join(parts, " ")
		ts := float64(fuzzy.TokenSetRatio(window, kw))
		wr := float64(fuzzy.WRatio(window, kw))
		if ts >= e.th.PageNumberAccept && wr >= e.th.PageNumberAccept {
			return span
		}
	}
	return 0
}

// afterTrigger interprets the text following a matched "Page" cue: first
// the remainder of the same line, then the region below and to the right of
// the cue's bounding box, skipping lines that merely repeat the cue.
func (e *NumberExtractor) afterTrigger(page *layout.Page, li, wi, span int) PageNumber {
	line := page.Lines[li]

	tail := make([]string, 0, len(line.Words)-wi-span)
	for _, w := range line.Words[wi+span:] {
		tail = append(tail, w.Text)
	}
	if n := parsePair(tail); !n.Unknown() {
		return n
	}

	trigBox := line.Words[wi].BBox
	for i := wi + 1; i < wi+span; i++ {
		trigBox.Extend(line.Words[i].BBox)
	}

	for bi := li + 1; bi < len(page.Lines); bi++ {
		below := page.Lines[bi]
		if below.BBox.Top < trigBox.Bottom {
			continue
		}
		// A repeated cue directly below is boilerplate, not a value.
		if e.keywordAt(below, 0, e.dirs.Page) > 0 {
			continue
		}
		var tokens []string
		for _, w := range below.Words {
			if w.BBox.Right >= trigBox.Left {
				tokens = append(tokens, w.Text)
			}
		}
		if n := parsePair(tokens); !n.Unknown() {
			return n
		}
	}
	return PageNumber{}
}

// nextLinePair handles the German cue form, where "Seite ... von ..." often
// carries its numbers on the following line.
func (e *NumberExtractor) nextLinePair(page *layout.Page, li int) PageNumber {
	if li+1 >= len(page.Lines) {
		return PageNumber{}
	}
	var tokens []string
	for _, w := range page.Lines[li+1].Words {
		tokens = append(tokens, w.Text)
	}
	return parsePair(tokens)
}

// bandFallback looks for an isolated page-number token in the top or bottom
// band of the page when no directional cue matched anywhere.
func (e *NumberExtractor) bandFallback(page *layout.Page) PageNumber {
	for _, line := range page.Lines {
		if !page.TopBand(line, e.th.PageBandFraction) && !page.BottomBand(line, e.th.PageBandFraction) {
			continue
		}
		// The token must essentially be the whole line.
		compact := strings.Join(strings.Fields(line.Text()), " ")
		m := bareNumberPattern.FindStringSubmatch(compact)
		if m == nil {
			continue
		}
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		n := PageNumber{Start: start}
		if m[2] != "" {
			if end, err := strconv.Atoi(m[2]); err == nil {
				n.End = end
			}
		}
		return n
	}
	return PageNumber{}
}

// parsePair extracts a (start, end) pair from loose tokens. Priority:
// an explicit separator (of/von/slash/dash, with OCR misreads) beats the
// positional reading of two bare numbers, which beats a lone number taken
// as start-only.
func parsePair(tokens []string) PageNumber {
	cleaned := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}

	// Combined single-token form: "3/5", "3-5", "2of2".
	for _, t := range cleaned {
		if m := combinedPairPattern.FindStringSubmatch(t); m != nil {
			return pairFrom(m[1], m[2])
		}
	}

	// Three-token form: "3 of 5".
	for i := 0; i+2 < len(cleaned); i++ {
		a, aOK := numberToken(cleaned[i])
		sep := strings.ToLower(strings.Trim(cleaned[i+1], ".,;:"))
		b, bOK := numberToken(cleaned[i+2])
		if aOK && bOK && pairSeparators[sep] {
			return PageNumber{Start: a, End: b}
		}
	}

	// Positional: the first two bare numbers read as (start, end).
	var nums []int
	for _, t := range cleaned {
		if n, ok := numberToken(t); ok {
			nums = append(nums, n)
		}
	}
	switch {
	case len(nums) >= 2:
		return PageNumber{Start: nums[0], End: nums[1]}
	case len(nums) == 1:
		return PageNumber{Start: nums[0]}
	default:
		return PageNumber{}
	}
}

func pairFrom(a, b string) PageNumber {
	start, err1 := strconv.Atoi(a)
	end, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return PageNumber{}
	}
	return PageNumber{Start: start, End: end}
}

// numberToken parses a token as a page number, tolerating surrounding
// punctuation. Tokens longer than four digits are reference numbers, not
// page numbers.
func numberToken(t string) (int, bool) {
	t = strings.Trim(t, ".,;:()[]")
	if t == "" || len(t) > 4 {
		return 0, false
	}
	n, err := strconv.Atoi(t)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
