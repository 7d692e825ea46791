package validation

import (
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// checkStructural verifies the block/structure invariants from spec §3:
// every block reachable from Structure exists in Blocks, every block
// in Blocks (other than root) is reachable, no block appears as a
// child twice, and the tree contains no cycles.
func checkStructural(d *ucm.Document, r *Result) {
	seen := make(map[types.Id]bool)
	var walk func(id types.Id, path map[types.Id]bool) bool
	walk = func(id types.Id, path map[types.Id]bool) bool {
		if path[id] {
			r.add(SeverityError, types.ErrCycleDetected, id, "cycle detected at block %s", id)
			return false
		}
		if seen[id] {
			return true
		}
		seen[id] = true
		path[id] = true
		defer delete(path, id)

		children := d.Structure[id]
		childSet := make(map[types.Id]bool, len(children))
		for _, c := range children {
			if childSet[c] {
				r.add(SeverityError, types.ErrDuplicateChild, id, "block %s lists child %s more than once", id, c)
				continue
			}
			childSet[c] = true
			if _, ok := d.GetBlock(c); !ok {
				r.add(SeverityError, types.ErrBlockNotFound, id, "block %s references missing child %s", id, c)
				continue
			}
			if !walk(c, path) {
				return false
			}
		}
		return true
	}
	walk(d.Root, map[types.Id]bool{})

	for id := range d.Blocks {
		if !seen[id] {
			r.add(SeverityError, types.ErrOrphanedBlock, id, "block %s is not reachable from the root", id)
		}
	}
}
