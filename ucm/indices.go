package ucm

import "github.com/Antonio7098/unified-content-protocol-sub002/types"

// Indices holds every document-level secondary index. Indices are
// caches: they must always be reconstructible from primary state
// (spec §9 "arena + index pattern"), which is exactly what
// RebuildIndices does.
type Indices struct {
	ByLabel map[string]types.Id          // unique
	ByTag   map[string]map[types.Id]bool // multi
	ByType  map[string]map[types.Id]bool // multi (content type)
	ByRole  map[SemanticRole]map[types.Id]bool
	Edges   *EdgeIndex
}

func newIndices() *Indices {
	return &Indices{
		ByLabel: make(map[string]types.Id),
		ByTag:   make(map[string]map[types.Id]bool),
		ByType:  make(map[string]map[types.Id]bool),
		ByRole:  make(map[SemanticRole]map[types.Id]bool),
		Edges:   NewEdgeIndex(),
	}
}

func (ix *Indices) addTag(tag string, id types.Id) {
	set, ok := ix.ByTag[tag]
	if !ok {
		set = make(map[types.Id]bool)
		ix.ByTag[tag] = set
	}
	set[id] = true
}

func (ix *Indices) removeTag(tag string, id types.Id) {
	if set, ok := ix.ByTag[tag]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(ix.ByTag, tag)
		}
	}
}

func (ix *Indices) addType(t string, id types.Id) {
	set, ok := ix.ByType[t]
	if !ok {
		set = make(map[types.Id]bool)
		ix.ByType[t] = set
	}
	set[id] = true
}

func (ix *Indices) removeType(t string, id types.Id) {
	if set, ok := ix.ByType[t]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(ix.ByType, t)
		}
	}
}

func (ix *Indices) addRole(r SemanticRole, id types.Id) {
	if r == "" {
		return
	}
	set, ok := ix.ByRole[r]
	if !ok {
		set = make(map[types.Id]bool)
		ix.ByRole[r] = set
	}
	set[id] = true
}

func (ix *Indices) removeRole(r SemanticRole, id types.Id) {
	if r == "" {
		return
	}
	if set, ok := ix.ByRole[r]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(ix.ByRole, r)
		}
	}
}

// indexBlock adds a block's label/tags/type/role into the secondary
// indices. Callers must have already validated label uniqueness.
func (ix *Indices) indexBlock(b *Block) {
	if b.Metadata.Label != "" {
		ix.ByLabel[b.Metadata.Label] = b.ID
	}
	for _, tag := range b.Metadata.Tags {
		ix.addTag(tag, b.ID)
	}
	if b.Content != nil {
		ix.addType(string(b.Content.ContentType()), b.ID)
	}
	ix.addRole(b.Metadata.SemanticRole, b.ID)
}

// unindexBlock removes a block's entries from the secondary indices
// (but not from the edge index — callers use EdgeIndex.RemoveBlock for
// that, since edges are not part of Indices' struct-tag-driven set).
func (ix *Indices) unindexBlock(b *Block) {
	if b.Metadata.Label != "" {
		delete(ix.ByLabel, b.Metadata.Label)
	}
	for _, tag := range b.Metadata.Tags {
		ix.removeTag(tag, b.ID)
	}
	if b.Content != nil {
		ix.removeType(string(b.Content.ContentType()), b.ID)
	}
	ix.removeRole(b.Metadata.SemanticRole, b.ID)
}
