package engine

import (
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

func TestMoveReparents(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	m := &Move{Target: "blk_a1", Destination: MoveDestination{Parent: "blk_b"}}

	res := m.Execute(ctx)
	if !res.Success {
		t.Fatalf("Execute failed: %+v", res.Messages)
	}
	if parent, _ := doc.Parent("blk_a1"); parent != "blk_b" {
		t.Errorf("Parent(blk_a1) = %s, want blk_b", parent)
	}
	if len(doc.Children("blk_a")) != 1 {
		t.Errorf("blk_a should have 1 remaining child, got %d", len(doc.Children("blk_a")))
	}
}

func TestMoveRelativeToSibling(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	m := &Move{Target: "blk_b", Destination: MoveDestination{Sibling: "blk_a1", Before: true}}

	res := m.Execute(ctx)
	if !res.Success {
		t.Fatalf("Execute failed: %+v", res.Messages)
	}
	children := doc.Children("blk_a")
	if children[0] != "blk_b" {
		t.Errorf("blk_b not inserted before blk_a1: %v", children)
	}
}

func TestMoveCannotMoveRoot(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	m := &Move{Target: types.RootID, Destination: MoveDestination{Parent: "blk_a"}}

	res := m.Execute(ctx)
	if res.Success {
		t.Fatal("expected failure moving the root block")
	}
}

func TestMoveCannotCreateCycle(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	m := &Move{Target: "blk_a", Destination: MoveDestination{Parent: "blk_a1"}}

	res := m.Execute(ctx)
	if res.Success {
		t.Fatal("expected failure moving a block under its own descendant")
	}
}

func TestMoveUnknownTargetFails(t *testing.T) {
	doc := buildDoc(t)
	ctx := newCtx(doc)
	m := &Move{Target: "blk_missing", Destination: MoveDestination{Parent: "blk_a"}}

	res := m.Execute(ctx)
	if res.Success {
		t.Fatal("expected failure for unknown target")
	}
}

func TestMoveExceedingMaxDepthFails(t *testing.T) {
	doc := buildDoc(t)
	// blk_a carries children blk_a1/blk_a2, so moving it under blk_b
	// would push its descendants one level deeper than the limit allows.
	doc.Limits.MaxDepth = doc.Depth("blk_a1")
	ctx := newCtx(doc)
	m := &Move{Target: "blk_a", Destination: MoveDestination{Parent: "blk_b"}}

	res := m.Execute(ctx)
	if res.Success {
		t.Fatal("expected failure when move would exceed MaxDepth")
	}
	if res.Code != CodeValidationError {
		t.Errorf("Code = %d, want CodeValidationError", res.Code)
	}
}
