// Package ucm implements the Unified Content Model: the block/edge
// data plane described in spec §3-§4.4. Direct field mutation from
// outside this package's own engine collaborator is disallowed by
// convention — all mutation is expected to flow through the
// transformation engine (package engine), which is the only code that
// should import ucm and hold a write reference to a Document.
package ucm

import (
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// DocumentMetadata is document-level metadata, distinct from any
// block's metadata.
type DocumentMetadata struct {
	Title     string                 `json:"title,omitempty"`
	Custom    map[string]interface{} `json:"custom,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Limits are the configurable resource ceilings from spec §3
// invariant 8.
type Limits struct {
	MaxBlocks       int
	MaxBlockSize    int
	MaxDepth        int
	MaxEdgesPerBlock int
	MaxDocumentSize int
}

// DefaultLimits returns generous defaults suitable for interactive use.
func DefaultLimits() Limits {
	return Limits{
		MaxBlocks:        100_000,
		MaxBlockSize:     1 << 20, // 1 MiB
		MaxDepth:         64,
		MaxEdgesPerBlock: 256,
		MaxDocumentSize:  256 << 20,
	}
}

// Document is a container of blocks forming a tree (via structure),
// plus a secondary edge graph, per spec §3.
type Document struct {
	ID        types.Id
	Root      types.Id
	Blocks    map[types.Id]*Block
	Structure map[types.Id][]types.Id // parent -> ordered children
	Metadata  DocumentMetadata
	Version   uint64
	Indices   *Indices
	Limits    Limits

	parent map[types.Id]types.Id // derived: child -> parent, kept in lockstep by the engine
}

// New creates a document with a single root composite block, per
// spec §3 "Lifecycle".
func New(id types.Id) *Document {
	root := &Block{
		ID:       types.RootID,
		Content:  content.CompositeContent{},
		Metadata: Metadata{CreatedAt: time.Now().UTC(), ModifiedAt: time.Now().UTC()},
		Children: []types.Id{},
	}
	d := &Document{
		ID:        id,
		Root:      types.RootID,
		Blocks:    map[types.Id]*Block{types.RootID: root},
		Structure: map[types.Id][]types.Id{types.RootID: {}},
		Metadata:  DocumentMetadata{CreatedAt: time.Now().UTC()},
		Version:   0,
		Indices:   newIndices(),
		Limits:    DefaultLimits(),
		parent:    map[types.Id]types.Id{},
	}
	d.Indices.indexBlock(root)
	return d
}

// Restore rebuilds a Document from deserialized parts (package
// serialize's counterpart to New): blocks and structure arrive fully
// formed, so only the derived indices and parent map need computing.
func Restore(id, root types.Id, version uint64, meta DocumentMetadata, blocks map[types.Id]*Block, structure map[types.Id][]types.Id) *Document {
	d := &Document{
		ID: id, Root: root, Version: version, Metadata: meta,
		Blocks: blocks, Structure: structure,
		Limits: DefaultLimits(),
	}
	d.RebuildIndices()
	return d
}

// GetBlock returns the block with the given id, or ok=false.
func (d *Document) GetBlock(id types.Id) (*Block, bool) {
	b, ok := d.Blocks[id]
	return b, ok
}

// Parent returns the parent of id, or ok=false for the root or an
// unknown id.
func (d *Document) Parent(id types.Id) (types.Id, bool) {
	p, ok := d.parent[id]
	return p, ok
}

// Children returns the ordered child ids of id.
func (d *Document) Children(id types.Id) []types.Id {
	return append([]types.Id(nil), d.Structure[id]...)
}

// Ancestors returns id's ancestors, nearest first, up to and including
// the root.
func (d *Document) Ancestors(id types.Id) []types.Id {
	var out []types.Id
	cur := id
	for {
		p, ok := d.parent[cur]
		if !ok {
			break
		}
		out = append(out, p)
		cur = p
	}
	return out
}

// Descendants returns id's descendants in breadth-first order, per
// spec §4.4.
func (d *Document) Descendants(id types.Id) []types.Id {
	var out []types.Id
	queue := append([]types.Id(nil), d.Structure[id]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		queue = append(queue, d.Structure[cur]...)
	}
	return out
}

// Siblings returns the other children of id's parent, excluding id
// itself. Returns nil for the root.
func (d *Document) Siblings(id types.Id) []types.Id {
	p, ok := d.parent[id]
	if !ok {
		return nil
	}
	var out []types.Id
	for _, c := range d.Structure[p] {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}

// Depth returns id's distance from the root (root is depth 0).
func (d *Document) Depth(id types.Id) int {
	depth := 0
	cur := id
	for {
		p, ok := d.parent[cur]
		if !ok {
			break
		}
		depth++
		cur = p
	}
	return depth
}

// FindByLabel returns the block with the given label, if any.
func (d *Document) FindByLabel(label string) (types.Id, bool) {
	id, ok := d.Indices.ByLabel[label]
	return id, ok
}

// FindByTag returns every block carrying tag.
func (d *Document) FindByTag(tag string) []types.Id {
	return setKeys(d.Indices.ByTag[tag])
}

// FindByType returns every block whose content type matches t.
func (d *Document) FindByType(t content.Type) []types.Id {
	return setKeys(d.Indices.ByType[string(t)])
}

// FindByRole returns every block with semantic role r.
func (d *Document) FindByRole(r SemanticRole) []types.Id {
	return setKeys(d.Indices.ByRole[r])
}

func setKeys(set map[types.Id]bool) []types.Id {
	if len(set) == 0 {
		return nil
	}
	out := make([]types.Id, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// BlockCount returns the number of blocks in the document.
func (d *Document) BlockCount() int { return len(d.Blocks) }

// TotalTokens sums every block's token estimate for the given model.
func (d *Document) TotalTokens(model string) int {
	total := 0
	for _, b := range d.Blocks {
		if b.Content != nil {
			total += b.Content.TokenEstimate(model)
		}
	}
	return total
}

// RebuildIndices recomputes every secondary index (including the edge
// index) from Blocks/Structure/parent, per spec §4.4's bulk-recovery
// contract. Used after loading a serialized document and after
// restoring a snapshot or rolling back to a savepoint.
func (d *Document) RebuildIndices() {
	d.Indices = newIndices()
	d.parent = make(map[types.Id]types.Id)
	for parentID, children := range d.Structure {
		for _, c := range children {
			d.parent[c] = parentID
		}
	}
	for id, b := range d.Blocks {
		d.Indices.indexBlock(b)
		for _, e := range b.Edges {
			d.Indices.Edges.Add(id, e)
		}
	}
}

// Clone returns a deep copy of the document, used by the transaction
// manager's copy-on-commit mode and by the snapshot manager.
func (d *Document) Clone() *Document {
	out := &Document{
		ID:        d.ID,
		Root:      d.Root,
		Blocks:    make(map[types.Id]*Block, len(d.Blocks)),
		Structure: make(map[types.Id][]types.Id, len(d.Structure)),
		Metadata:  d.Metadata,
		Version:   d.Version,
		Limits:    d.Limits,
	}
	for id, b := range d.Blocks {
		out.Blocks[id] = b.Clone()
	}
	for id, children := range d.Structure {
		out.Structure[id] = append([]types.Id(nil), children...)
	}
	out.RebuildIndices()
	return out
}
