package ucm

import "github.com/Antonio7098/unified-content-protocol-sub002/types"

// edgeRecord pairs a kind with the block on the other end of the edge.
type edgeRecord struct {
	Kind EdgeKind
	ID   types.Id
}

// EdgeIndex provides O(1) bidirectional edge lookup, kept in lockstep
// with the per-block outgoing edge lists stored on each Block (spec
// §3 invariant 6, §4.3). Only the outgoing map is ground truth for
// edge *content*; the incoming map exists purely for reverse lookups
// and is always derived from the same Add/Remove calls.
type EdgeIndex struct {
	outgoing map[types.Id][]edgeRecord // source -> (kind, target)
	incoming map[types.Id][]edgeRecord // target -> (kind, source)
}

// NewEdgeIndex creates an empty index.
func NewEdgeIndex() *EdgeIndex {
	return &EdgeIndex{
		outgoing: make(map[types.Id][]edgeRecord),
		incoming: make(map[types.Id][]edgeRecord),
	}
}

// Add records a forward edge from source to edge.Target.
func (idx *EdgeIndex) Add(source types.Id, e Edge) {
	idx.outgoing[source] = append(idx.outgoing[source], edgeRecord{Kind: e.Kind, ID: e.Target})
	idx.incoming[e.Target] = append(idx.incoming[e.Target], edgeRecord{Kind: e.Kind, ID: source})
}

// Remove deletes a single matching (source, kind, target) edge, if
// present. It removes at most one copy; Link is idempotent per
// (s,k,t) so duplicates should never accumulate, but this stays
// defensive about it.
func (idx *EdgeIndex) Remove(source types.Id, target types.Id, kind EdgeKind) {
	idx.outgoing[source] = removeOne(idx.outgoing[source], edgeRecord{Kind: kind, ID: target})
	idx.incoming[target] = removeOne(idx.incoming[target], edgeRecord{Kind: kind, ID: source})
}

func removeOne(records []edgeRecord, target edgeRecord) []edgeRecord {
	for i, r := range records {
		if r == target {
			return append(records[:i], records[i+1:]...)
		}
	}
	return records
}

// RemoveBlock erases all edges incident to id, in either direction.
func (idx *EdgeIndex) RemoveBlock(id types.Id) {
	for _, rec := range idx.outgoing[id] {
		idx.incoming[rec.ID] = removeOne(idx.incoming[rec.ID], edgeRecord{Kind: rec.Kind, ID: id})
	}
	delete(idx.outgoing, id)
	for _, rec := range idx.incoming[id] {
		idx.outgoing[rec.ID] = removeOne(idx.outgoing[rec.ID], edgeRecord{Kind: rec.Kind, ID: id})
	}
	delete(idx.incoming, id)
}

// OutgoingFrom returns every edge leaving id.
func (idx *EdgeIndex) OutgoingFrom(id types.Id) []Edge {
	recs := idx.outgoing[id]
	out := make([]Edge, 0, len(recs))
	for _, r := range recs {
		out = append(out, Edge{Kind: r.Kind, Target: r.ID})
	}
	return out
}

// IncomingEdge pairs an edge kind with the source block it arrived
// from, for queries keyed by target rather than by source.
type IncomingEdge struct {
	Kind   EdgeKind
	Source types.Id
}

// IncomingTo returns every edge arriving at id. The underlying storage
// is unchanged by this: it is a read projection over the single
// forward-edge source of truth (r.ID holds the source block id).
func (idx *EdgeIndex) IncomingTo(id types.Id) []IncomingEdge {
	recs := idx.incoming[id]
	out := make([]IncomingEdge, 0, len(recs))
	for _, r := range recs {
		out = append(out, IncomingEdge{Kind: r.Kind, Source: r.ID})
	}
	return out
}

// OutgoingOfKind filters OutgoingFrom by kind, including inverse kinds
// so a query for e.g. Supersedes also surfaces edges recorded the other
// way as DerivedFrom.
func (idx *EdgeIndex) OutgoingOfKind(id types.Id, kind EdgeKind) []types.Id {
	kinds := append([]EdgeKind{kind}, InverseKinds(kind)...)
	var out []types.Id
	for _, r := range idx.outgoing[id] {
		if containsKind(kinds, r.Kind) {
			out = append(out, r.ID)
		}
	}
	return out
}

// IncomingOfKind filters IncomingTo by kind, including inverse kinds.
func (idx *EdgeIndex) IncomingOfKind(id types.Id, kind EdgeKind) []types.Id {
	kinds := append([]EdgeKind{kind}, InverseKinds(kind)...)
	var out []types.Id
	for _, r := range idx.incoming[id] {
		if containsKind(kinds, r.Kind) {
			out = append(out, r.ID)
		}
	}
	return out
}

func containsKind(kinds []EdgeKind, k EdgeKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

// HasEdge reports whether the exact forward edge (s,k,t) is recorded.
func (idx *EdgeIndex) HasEdge(s, t types.Id, k EdgeKind) bool {
	for _, r := range idx.outgoing[s] {
		if r.Kind == k && r.ID == t {
			return true
		}
	}
	return false
}

// Count returns the total number of forward edges recorded.
func (idx *EdgeIndex) Count() int {
	n := 0
	for _, recs := range idx.outgoing {
		n += len(recs)
	}
	return n
}

// CountFrom returns the number of outgoing edges from id, used by
// validation's edges-per-block resource check.
func (idx *EdgeIndex) CountFrom(id types.Id) int {
	return len(idx.outgoing[id])
}

// Clone returns a deep copy of the index.
func (idx *EdgeIndex) Clone() *EdgeIndex {
	out := NewEdgeIndex()
	for k, v := range idx.outgoing {
		out.outgoing[k] = append([]edgeRecord(nil), v...)
	}
	for k, v := range idx.incoming {
		out.incoming[k] = append([]edgeRecord(nil), v...)
	}
	return out
}
