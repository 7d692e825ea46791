package idalloc

import (
	"strings"
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

func TestNextBlockIDIsSequential(t *testing.T) {
	a := New()
	first := a.NextBlockID()
	second := a.NextBlockID()
	if first != "blk_1" || second != "blk_2" {
		t.Errorf("got %s, %s, want blk_1, blk_2", first, second)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	a := New()
	peeked := a.Peek()
	got := a.NextBlockID()
	if peeked != got {
		t.Errorf("Peek() = %s, NextBlockID() = %s, want equal", peeked, got)
	}
}

func TestNamespacesDoNotCollide(t *testing.T) {
	a := New()
	for i := 0; i < 5; i++ {
		a.NextBlockID()
	}
	tx := a.NextTransactionID()
	if !strings.HasPrefix(string(tx), types.PrefixTransaction) {
		t.Errorf("transaction id %s missing prefix %s", tx, types.PrefixTransaction)
	}
	snap := a.NextSnapshotID()
	if !strings.HasPrefix(string(snap), types.PrefixSnapshot) {
		t.Errorf("snapshot id %s missing prefix %s", snap, types.PrefixSnapshot)
	}
	save := a.NextSavepointID()
	if !strings.HasPrefix(string(save), types.PrefixSavepoint) {
		t.Errorf("savepoint id %s missing prefix %s", save, types.PrefixSavepoint)
	}
}

func TestAdvanceOnlyMovesForward(t *testing.T) {
	a := New()
	a.Advance(10)
	if got := a.NextBlockID(); got != "blk_11" {
		t.Errorf("got %s, want blk_11", got)
	}

	a.Advance(3) // lower than current counter, must not rewind
	if got := a.NextBlockID(); got != "blk_12" {
		t.Errorf("got %s, want blk_12 (Advance must not rewind)", got)
	}
}

func TestResetClearsAllCounters(t *testing.T) {
	a := New()
	a.NextBlockID()
	a.NextBlockID()
	a.Reset()
	if got := a.NextBlockID(); got != "blk_1" {
		t.Errorf("got %s, want blk_1 after Reset", got)
	}
}

func TestTransactionIDsAreUnique(t *testing.T) {
	a := New()
	seen := map[types.Id]bool{}
	for i := 0; i < 20; i++ {
		id := a.NextTransactionID()
		if seen[id] {
			t.Fatalf("duplicate transaction id %s", id)
		}
		seen[id] = true
	}
}
