package extract

import (
	"fmt"
	"sort"
)

// edit is one splice against the unit's source bytes: the half-open range
// [start, end) is replaced with text. Insertions use start == end; deletions
// use empty text. Edits are collected during recognition and applied only
// after the whole unit extracted successfully, keeping extraction pure.
type edit struct {
	start uint32
	end   uint32
	text  string
}

// applyEdits splices the collected edits into a fresh buffer.
// Edits must not overlap; tree-sitter node ranges guarantee that as long as
// each site contributes edits only within its own subtree.
func applyEdits(source []byte, edits []edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := make([]edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	out := make([]byte, 0, len(source))
	last := uint32(0)
	for _, e := range sorted {
		if e.start < last {
			return nil, fmt.Errorf("overlapping source edits at byte %d", e.start)
		}
		if e.end > uint32(len(source)) {
			return nil, fmt.Errorf("source edit out of range at byte %d", e.end)
		}
		out = append(out, source[last:e.start]...)
		out = append(out, e.text...)
		last = e.end
	}
	out = append(out, source[last:]...)

	return out, nil
}
