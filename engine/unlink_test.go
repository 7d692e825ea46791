package engine

import (
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

func TestUnlinkRemovesEdge(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	link := &Link{Source: "blk_a1", Kind: ucm.References, Target: "blk_b"}
	if res := link.Execute(ctx); !res.Success {
		t.Fatalf("Link failed: %+v", res.Messages)
	}

	unlink := &Unlink{Source: "blk_a1", Kind: ucm.References, Target: "blk_b"}
	res := unlink.Execute(ctx)
	if !res.Success {
		t.Fatalf("Unlink failed: %+v", res.Messages)
	}
	if doc.Indices.Edges.HasEdge("blk_a1", "blk_b", ucm.References) {
		t.Error("edge still present after Unlink")
	}
}

func TestUnlinkAbsentEdgeSucceedsSilently(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	u := &Unlink{Source: "blk_a1", Kind: ucm.References, Target: "blk_b"}

	res := u.Execute(ctx)
	if !res.Success {
		t.Fatalf("Unlink of absent edge should succeed silently, got %+v", res.Messages)
	}
}

func TestUnlinkUnknownSourceFails(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	u := &Unlink{Source: "blk_missing", Kind: ucm.References, Target: "blk_b"}

	res := u.Execute(ctx)
	if res.Success {
		t.Fatal("expected failure for unknown source")
	}
}
