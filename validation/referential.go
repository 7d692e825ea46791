package validation

import (
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// checkReferential verifies that every edge target exists and that
// every label is unique (spec §3 invariants 3 and 6).
func checkReferential(d *ucm.Document, r *Result) {
	seenLabels := make(map[string]types.Id)
	for id, b := range d.Blocks {
		if b.Metadata.Label != "" {
			if other, ok := seenLabels[b.Metadata.Label]; ok && other != id {
				r.add(SeverityError, types.ErrLabelCollision, id, "label %q is used by both %s and %s", b.Metadata.Label, other, id)
			} else {
				seenLabels[b.Metadata.Label] = id
			}
		}
		for _, e := range b.Edges {
			if _, ok := d.GetBlock(e.Target); !ok {
				r.add(SeverityError, types.ErrEdgeNotFound, id, "block %s has a %s edge to missing block %s", id, e.Kind, e.Target)
			}
			if err := e.Validate(); err != nil {
				r.add(SeverityError, types.ErrInvalidContent, id, "block %s has an invalid edge: %v", id, err)
			}
		}
	}
}
