package ucm

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// Block is an identified node carrying a typed content payload plus
// metadata (spec §3). Children are stored on the Block for
// serialization convenience but Document.structure is the mutation
// authority; the engine keeps the two in lockstep.
type Block struct {
	ID       types.Id        `json:"id"`
	Content  content.Content `json:"content"`
	Metadata Metadata        `json:"metadata"`
	Children []types.Id      `json:"children"`
	Edges    []Edge          `json:"edges,omitempty"`
}

// HasChild reports whether id appears in the block's child list.
func (b *Block) HasChild(id types.Id) bool {
	for _, c := range b.Children {
		if c == id {
			return true
		}
	}
	return false
}

// ContentHash computes a deterministic hash of the block's canonical
// content projection, stored on Metadata.ContentHash after every edit.
func ContentHash(c content.Content) string {
	if c == nil {
		return ""
	}
	sum := sha256.Sum256([]byte(c.Canonical()))
	return hex.EncodeToString(sum[:])
}

// Clone returns a deep copy of the block, used by transactions and
// snapshots to isolate mutation.
func (b *Block) Clone() *Block {
	out := &Block{
		ID:       b.ID,
		Content:  b.Content,
		Metadata: b.Metadata.Clone(),
		Children: append([]types.Id(nil), b.Children...),
	}
	if b.Edges != nil {
		out.Edges = make([]Edge, len(b.Edges))
		for i, e := range b.Edges {
			out.Edges[i] = e.Clone()
		}
	}
	return out
}
