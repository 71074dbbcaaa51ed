// Package export turns a finished segmentation into physical artifacts:
// one PDF per detected document segment, ready for the downstream
// extraction stage.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/icaplabs/pagewise/internal/classify"
)

const dirPerm = 0o750

// WriteSegments slices the source PDF into one file per segment and
// returns the written paths. File names carry the segment's label and page
// range: "02_commercial-invoice_p001-p002.pdf".
func WriteSegments(sourcePDF, outDir string, segments []classify.DocumentSegment) ([]string, error) {
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", outDir, err)
	}

	paths := make([]string, 0, len(segments))
	for i, seg := range segments {
		outFile := filepath.Join(outDir, segmentFileName(i, seg))
		selection := []string{fmt.Sprintf("%d-%d", seg.First, seg.Last)}
		if err := api.TrimFile(sourcePDF, outFile, selection, nil); err != nil {
			return paths, fmt.Errorf("failed to write segment %d-%d: %w", seg.First, seg.Last, err)
		}
		paths = append(paths, outFile)
	}
	return paths, nil
}

func segmentFileName(i int, seg classify.DocumentSegment) string {
	label := seg.Label
	if label == "" {
		label = "unclassified"
	}
	label = strings.ToLower(strings.ReplaceAll(label, " ", "-"))
	return fmt.Sprintf("%02d_%s_p%03d-p%03d.pdf", i+1, label, seg.First, seg.Last)
}
