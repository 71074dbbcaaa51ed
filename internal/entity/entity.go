// Package entity abstracts the named-entity capability the document-id
// extractor uses to screen lines. Any NER backend that can answer "does
// this line mention a place or an organization" satisfies the contract; the
// heuristic default keeps the library usable without an external NLP
// service.
package entity

import (
	"regexp"
	"strings"
)

// Recognizer answers whether a line of text mentions a geopolitical or
// organization entity. Implementations must treat internal failures as
// "no entity" rather than returning errors; screening is best-effort.
type Recognizer interface {
	HasLocationOrOrgEntity(text string) bool
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(text string) bool

// HasLocationOrOrgEntity calls the underlying function.
func (f RecognizerFunc) HasLocationOrOrgEntity(text string) bool {
	return f(text)
}

var (
	orgSuffixPattern = regexp.MustCompile(`(?i)\b(inc|llc|ltd|limited|gmbh|corp|corporation|co|company|sa|bv|ag|kg|plc|pvt|srl|logistics|shipping|forwarding|freight)\b\.?`)
	phonePattern     = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	datePattern      = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2}`)
)

// Common trade-lane countries and port cities. The list is intentionally
// small; real deployments inject an NLP-backed Recognizer instead.
var knownPlaces = []string{
	"china", "germany", "india", "japan", "korea", "mexico", "netherlands",
	"singapore", "taiwan", "thailand", "turkey", "usa", "united states",
	"vietnam", "hamburg", "hong kong", "long beach", "los angeles",
	"ningbo", "rotterdam", "shanghai", "shenzhen", "tokyo", "new york",
	"felixstowe", "antwerp", "busan", "qingdao",
}

// Heuristic is a regex and keyword based Recognizer. It also flags phone
// numbers and dates, which the document-id screening treats the same way as
// entities (reference numbers never look like either).
type Heuristic struct{}

// NewHeuristic returns the default heuristic recognizer.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// HasLocationOrOrgEntity reports whether the line looks like it names a
// place or an organization, or carries phone/date content.
func (h *Heuristic) HasLocationOrOrgEntity(text string) bool {
	if text == "" {
		return false
	}
	if orgSuffixPattern.MatchString(text) {
		return true
	}
	if phonePattern.MatchString(text) || datePattern.MatchString(text) {
		return true
	}
	lower := strings.ToLower(text)
	for _, place := range knownPlaces {
		if strings.Contains(lower, place) {
			return true
		}
	}
	return false
}
