package classify

// Split partitions the reconciled page sequence into contiguous document
// segments. Every input page lands in exactly one segment: pages with an
// unknown pair or a (1,1) pair are single-page documents; a known start
// opens a run consumed while the following pages continue the numbering
// (neither restarting at 1 nor dropping to unknown). A run's label comes
// from its first labeled page, skipping leading unlabeled pages.
func Split(pages []*PageResult) []DocumentSegment {
	var segments []DocumentSegment
	for i := 0; i < len(pages); {
		p := pages[i]

		if p.Number.Unknown() || (p.Number.Start == 1 && p.Number.End == 1) {
			segments = append(segments, DocumentSegment{Label: p.Label, First: p.Index, Last: p.Index})
			i++
			continue
		}

		if p.Number.Start > 0 {
			j := i + 1
			for j < len(pages) && pages[j].Number.Start != 1 && pages[j].Number.Start != 0 {
				j++
			}
			label := ""
			for k := i; k < j; k++ {
				if pages[k].Label != "" {
					label = pages[k].Label
					break
				}
			}
			segments = append(segments, DocumentSegment{Label: label, First: p.Index, Last: pages[j-1].Index})
			i = j
			continue
		}

		// Start unknown but end extracted: no run to anchor on.
		segments = append(segments, DocumentSegment{Label: p.Label, First: p.Index, Last: p.Index})
		i++
	}
	return segments
}
