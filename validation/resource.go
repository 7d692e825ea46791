package validation

import (
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// checkResource verifies the document stays within the configured
// Limits (spec §3 invariant 8 and §5 resource model): block count,
// per-block content size, tree depth, and edges per block.
func checkResource(d *ucm.Document, r *Result) {
	lim := d.Limits

	if d.BlockCount() > lim.MaxBlocks {
		r.add(SeverityError, types.ErrBlockCountExceeded, "", "document has %d blocks, exceeding the limit of %d", d.BlockCount(), lim.MaxBlocks)
	}

	totalSize := 0
	for id, b := range d.Blocks {
		if b.Content == nil {
			continue
		}
		size := b.Content.SizeEstimate()
		totalSize += size
		if size > lim.MaxBlockSize {
			r.add(SeverityError, types.ErrBlockSizeExceeded, id, "block %s is %d bytes, exceeding the limit of %d", id, size, lim.MaxBlockSize)
		}
		if n := d.Indices.Edges.CountFrom(id); n > lim.MaxEdgesPerBlock {
			r.add(SeverityError, types.ErrEdgeCountExceeded, id, "block %s has %d outgoing edges, exceeding the limit of %d", id, n, lim.MaxEdgesPerBlock)
		}
		if depth := d.Depth(id); depth > lim.MaxDepth {
			r.add(SeverityError, types.ErrDepthExceeded, id, "block %s is at depth %d, exceeding the limit of %d", id, depth, lim.MaxDepth)
		}
	}
	if totalSize > lim.MaxDocumentSize {
		r.add(SeverityError, types.ErrBlockSizeExceeded, "", "document content totals %d bytes, exceeding the limit of %d", totalSize, lim.MaxDocumentSize)
	}
}
