package ucm

import (
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

func TestHasChild(t *testing.T) {
	b := &Block{Children: []types.Id{"blk_a", "blk_b"}}
	if !b.HasChild("blk_a") {
		t.Error("HasChild(blk_a) = false, want true")
	}
	if b.HasChild("blk_z") {
		t.Error("HasChild(blk_z) = true, want false")
	}
}

func TestContentHashDeterministic(t *testing.T) {
	c := content.TextContent{Text: "same text"}
	h1 := ContentHash(c)
	h2 := ContentHash(c)
	if h1 != h2 {
		t.Errorf("ContentHash not deterministic: %s != %s", h1, h2)
	}
	if ContentHash(content.TextContent{Text: "different"}) == h1 {
		t.Error("ContentHash collided for different content")
	}
	if ContentHash(nil) != "" {
		t.Error("ContentHash(nil) should be empty")
	}
}

func TestBlockCloneIsIndependent(t *testing.T) {
	conf := 0.8
	b := &Block{
		ID:       "blk_a",
		Content:  content.TextContent{Text: "hi"},
		Metadata: Metadata{Tags: []string{"x"}},
		Children: []types.Id{"blk_b"},
		Edges:    []Edge{{Kind: References, Target: "blk_c", Confidence: &conf}},
	}
	clone := b.Clone()

	clone.Children[0] = "blk_mutated"
	if b.Children[0] != "blk_b" {
		t.Error("mutating clone's Children affected original")
	}

	clone.Metadata.Tags[0] = "mutated"
	if b.Metadata.Tags[0] != "x" {
		t.Error("mutating clone's Metadata.Tags affected original")
	}

	*clone.Edges[0].Confidence = 0.1
	if *b.Edges[0].Confidence != 0.8 {
		t.Error("mutating clone's Edge confidence affected original")
	}
}
