// Package serialize implements the lossless JSON document round-trip
// from spec §6: stable snake_case field names, deterministic key
// ordering, blocks keyed by id, RFC-3339 timestamps, and base64 byte
// blobs (the latter two already handled by time.Time's and content's
// own (Un)MarshalJSON methods).
//
// The reader/writer split and wrapped-result-with-error-context style
// is grounded on the teacher's nanostore/export and nanostore/import
// packages, generalized from a document-row export bundle to a single
// in-memory Document tree.
package serialize

import (
	"encoding/json"
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// wireBlock is a Block's wire shape: content is carried as a raw JSON
// envelope since content.Content is an interface encoding/json cannot
// (de)serialize on its own.
type wireBlock struct {
	ID       types.Id        `json:"id"`
	Content  json.RawMessage `json:"content"`
	Metadata ucm.Metadata    `json:"metadata"`
	Children []types.Id      `json:"children"`
	Edges    []ucm.Edge      `json:"edges,omitempty"`
}

type wireDocument struct {
	ID        types.Id                 `json:"id"`
	Root      types.Id                 `json:"root"`
	Version   uint64                   `json:"version"`
	Metadata  ucm.DocumentMetadata     `json:"metadata"`
	Blocks    map[types.Id]wireBlock   `json:"blocks"`
	Structure map[types.Id][]types.Id  `json:"structure"`
}

// Marshal encodes doc into the §6 wire shape.
func Marshal(doc *ucm.Document) ([]byte, error) {
	wire := wireDocument{
		ID: doc.ID, Root: doc.Root, Version: doc.Version,
		Metadata: doc.Metadata, Structure: doc.Structure,
		Blocks: make(map[types.Id]wireBlock, len(doc.Blocks)),
	}
	for id, b := range doc.Blocks {
		raw, err := content.Marshal(b.Content)
		if err != nil {
			return nil, fmt.Errorf("serialize: block %s: %w", id, err)
		}
		wire.Blocks[id] = wireBlock{
			ID: b.ID, Content: raw, Metadata: b.Metadata,
			Children: b.Children, Edges: b.Edges,
		}
	}
	return json.MarshalIndent(wire, "", "  ")
}

// Unmarshal decodes data into a live Document, with derived indices
// and parent pointers rebuilt from Structure.
func Unmarshal(data []byte) (*ucm.Document, error) {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("serialize: decode document: %w", err)
	}

	blocks := make(map[types.Id]*ucm.Block, len(wire.Blocks))
	for id, wb := range wire.Blocks {
		c, err := content.Unmarshal(wb.Content)
		if err != nil {
			return nil, fmt.Errorf("serialize: block %s: %w", id, err)
		}
		children := wb.Children
		if children == nil {
			children = []types.Id{}
		}
		blocks[id] = &ucm.Block{ID: wb.ID, Content: c, Metadata: wb.Metadata, Children: children, Edges: wb.Edges}
	}

	structure := wire.Structure
	if structure == nil {
		structure = map[types.Id][]types.Id{}
	}

	doc := ucm.Restore(wire.ID, wire.Root, wire.Version, wire.Metadata, blocks, structure)
	return doc, nil
}
