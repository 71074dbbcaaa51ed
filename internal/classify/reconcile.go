package classify

import "log/slog"

// Reconciler repairs the per-page tentative page numbers of one batch into
// a globally consistent sequence. OCR page-number extraction is noisy:
// numbers go missing, get misread, or repeat. The reconciler treats
// start==1 as a strong structural prior (the first page of a new document)
// and otherwise trusts local monotonic continuity over any single noisy
// extraction, propagating confidently-known numbers across runs of
// unknowns from both directions.
type Reconciler struct {
	th     Thresholds
	logger *slog.Logger
}

// NewReconciler builds a reconciler.
func NewReconciler(th Thresholds, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{th: th, logger: logger}
}

// Reconcile repairs the page numbers in place. Pages must be in strictly
// ascending index order; the forward/backward passes rely on it.
func (r *Reconciler) Reconcile(pages []*PageResult) {
	if len(pages) == 0 {
		return
	}
	r.validateAnchors(pages)
	r.forward(pages)
	r.backward(pages)
}

// validateAnchors discounts spurious "page 1" extractions. A (1, unknown)
// pair claims a document starts here; if the pages after it disagree with
// simple +1 increments more than once, the claim was likely a false match.
// A single inconsistency is tolerated; the window ends at the next claimed
// document start.
func (r *Reconciler) validateAnchors(pages []*PageResult) {
	for i, p := range pages {
		if p.Number.Start != 1 || p.Number.End != 0 {
			continue
		}
		violations := 0
		for j := i + 1; j < len(pages); j++ {
			q := pages[j]
			if q.Number.Start == 1 {
				break
			}
			if q.Number.Start == 0 {
				continue
			}
			if q.Number.Start != 1+(j-i) {
				violations++
			}
		}
		if violations >= r.th.AnchorViolations {
			r.logger.Debug("discounting spurious page-1 anchor",
				"page", p.Index, "violations", violations)
			p.Number = PageNumber{}
		}
	}
}

// forward walks the batch in ascending order, repairing implausible
// extractions, inheriting continuity from the previous page, back-filling
// runs of unknowns once a trusted number appears, and enforcing monotonic
// increments against the last trusted number.
func (r *Reconciler) forward(pages []*PageResult) {
	n := len(pages)
	lastKnown := -1 // slice index of the last page with a trusted start
	unresolved := 0 // length of the current run of unknown pages

	for i := 0; i < n; i++ {
		p := pages[i]
		var prev *PageResult
		if i > 0 {
			prev = pages[i-1]
		}

		r.repairImplausibleStart(pages, i, n)
		r.repairImplausibleEnd(p, prev, n)

		if p.Number.Start == 0 {
			r.inherit(pages, i)
		}

		if p.Number.Start == 0 {
			unresolved++
			continue
		}

		if lastKnown >= 0 {
			gap := i - lastKnown - 1
			if gap > 0 && gap <= unresolved && p.Number.Start-gap >= 1 {
				r.backfill(pages, i, gap)
			}
			anchor := pages[lastKnown]
			if lastKnown == i-1 && p.Number.Start != 1 &&
				!documentClosed(anchor.Number) &&
				anchor.Number.Start+1 != p.Number.Start {
				r.logger.Debug("enforcing monotonic continuity",
					"page", p.Index, "extracted", p.Number.Start, "override", anchor.Number.Start+1)
				p.Number.Start = anchor.Number.Start + 1
			}
		}

		unresolved = 0
		lastKnown = i
	}
}

// repairImplausibleStart resets a start that cannot be right: larger than
// the batch, or further ahead than the page position allows, with no
// neighbor support.
func (r *Reconciler) repairImplausibleStart(pages []*PageResult, i, n int) {
	p := pages[i]
	s := p.Number.Start
	if s == 0 {
		return
	}
	if s <= n && s <= i+1+r.th.ForwardLookahead {
		return
	}
	if r.neighborsSupport(pages, i) {
		return
	}
	p.Number = PageNumber{}
}

// neighborsSupport reports whether an adjacent page's numbering is
// consistent with this page's extracted start being correct.
func (r *Reconciler) neighborsSupport(pages []*PageResult, i int) bool {
	s := pages[i].Number.Start
	if i > 0 {
		if ps := pages[i-1].Number.Start; ps != 0 && ps+1 == s {
			return true
		}
	}
	if i+1 < len(pages) {
		if ns := pages[i+1].Number.Start; ns != 0 && ns == s+1 {
			return true
		}
	}
	return false
}

// repairImplausibleEnd handles an end larger than the batch: inherit the
// previous page's end when continuity holds, keep just the start when only
// the start chains, reset otherwise.
func (r *Reconciler) repairImplausibleEnd(p, prev *PageResult, n int) {
	e := p.Number.End
	if e == 0 || e <= n {
		return
	}
	switch {
	case prev != nil && prev.Number.Complete() && prev.Number.Start+1 == p.Number.Start && prev.Number.End <= n:
		p.Number.End = prev.Number.End
	case prev != nil && prev.Number.Start != 0 && prev.Number.Start+1 == p.Number.Start:
		p.Number.End = 0
	default:
		p.Number = PageNumber{}
	}
}

// inherit fills an unknown start from the previous page's numbering when
// that numbering is fully known and still inside its document, or, with
// enough document-id relevancy, from the nearest fully-known page across a
// run of same-label pages.
func (r *Reconciler) inherit(pages []*PageResult, i int) {
	p := pages[i]
	if i > 0 {
		prev := pages[i-1]
		if prev.Number.Complete() && prev.Number.Start+1 <= prev.Number.End {
			p.Number.Start = prev.Number.Start + 1
			p.Number.End = prev.Number.End
			return
		}
	}
	if p.Relevancy <= r.th.RelevancyInherit {
		return
	}
	steps := 0
	for j := i - 1; j >= 0; j-- {
		if pages[j].Label != p.Label {
			return
		}
		steps++
		if pages[j].Number.Complete() {
			start := pages[j].Number.Start + steps
			if start <= pages[j].Number.End {
				p.Number.Start = start
				p.Number.End = pages[j].Number.End
			}
			return
		}
	}
}

// backfill counts backward from a freshly trusted start across the
// preceding run of unknown pages.
func (r *Reconciler) backfill(pages []*PageResult, i, gap int) {
	p := pages[i]
	for k := 1; k <= gap; k++ {
		q := pages[i-k]
		if q.Number.Start != 0 {
			continue
		}
		q.Number.Start = p.Number.Start - k
		if q.Number.End == 0 {
			q.Number.End = p.Number.End
		}
	}
}

// backward walks the batch in descending order enforcing monotonic
// decrements: a page inherits next-1 whenever the later page carries a
// trusted number above 1. A page whose own start is 1 is a document start
// and resets the backward anchor.
func (r *Reconciler) backward(pages []*PageResult) {
	for i := len(pages) - 2; i >= 0; i-- {
		p := pages[i]
		if p.Number.Start == 1 {
			continue
		}
		next := pages[i+1]
		if next.Number.Start <= 1 {
			continue
		}
		want := next.Number.Start - 1
		if want < 1 || p.Number.Start == want {
			continue
		}
		p.Number.Start = want
		if p.Number.End == 0 && p.Label == next.Label {
			p.Number.End = next.Number.End
		}
	}
}

// documentClosed reports whether a numbering pair marks the last page of
// its document, after which a restart at 1 is expected rather than a gap.
func documentClosed(n PageNumber) bool {
	return n.Complete() && n.Start == n.End
}
