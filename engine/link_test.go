package engine

import (
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

func TestLinkAddsEdgeIdempotently(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	l := &Link{Source: "blk_a1", Kind: ucm.References, Target: "blk_b"}

	if res := l.Execute(ctx); !res.Success {
		t.Fatalf("first Execute failed: %+v", res.Messages)
	}
	if res := l.Execute(ctx); !res.Success {
		t.Fatalf("second Execute failed: %+v", res.Messages)
	}
	if doc.Indices.Edges.CountFrom("blk_a1") != 1 {
		t.Errorf("Link should be idempotent, got %d edges", doc.Indices.Edges.CountFrom("blk_a1"))
	}
}

func TestLinkUnknownSourceOrTargetFails(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)

	if res := (&Link{Source: "blk_missing", Kind: ucm.References, Target: "blk_b"}).Execute(ctx); res.Success {
		t.Error("expected failure for unknown source")
	}
	if res := (&Link{Source: "blk_a1", Kind: ucm.References, Target: "blk_missing"}).Execute(ctx); res.Success {
		t.Error("expected failure for unknown target")
	}
}

func TestLinkInvalidConfidenceFails(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	bad := 5.0
	l := &Link{Source: "blk_a1", Kind: ucm.References, Target: "blk_b", Confidence: &bad}

	res := l.Execute(ctx)
	if res.Success {
		t.Fatal("expected failure for out-of-range confidence")
	}
}

func TestLinkExceedingMaxEdgesFails(t *testing.T) {
	doc := buildDoc(t)
	doc.Limits.MaxEdgesPerBlock = 0
	ctx := newCtx(doc)
	l := &Link{Source: "blk_a1", Kind: ucm.References, Target: "blk_b"}

	res := l.Execute(ctx)
	if res.Success {
		t.Fatal("expected failure exceeding MaxEdgesPerBlock")
	}
}
