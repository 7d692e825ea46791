// Package idalloc provides deterministic id generation for blocks,
// transactions, snapshots, and savepoints.
//
//	Overview
//
// Unlike nanostore's dimension-partitioned id scheme, UCP ids carry no
// dimensional information — they are simply a type-tag prefix (see
// types.PrefixBlock and friends) followed by a suffix. Block ids use a
// monotonically increasing decimal suffix, e.g. "blk_1", "blk_2", which
// keeps them diff-friendly and URL-safe per §4.1; transaction,
// snapshot, and savepoint ids use a uuid suffix. The block counter is
// not serialized with the Document: a loader calls Advance with the
// highest block suffix present so new ids do not collide with loaded
// ones.
//
//	Namespaces
//
// Each prefix is its own namespace — collisions across namespaces are
// structurally impossible because the prefixes never overlap.
//
//	Short aliases
//
// The allocator is also where the cheap "projection to a short numeric
// alias" mentioned in §4.1 begins: block ids are allocated in strictly
// increasing order, so a consumer that wants sequential short aliases
// (see context.Projection, §4.13) can simply strip the prefix and reuse
// the numeric suffix instead of building a second mapping from scratch.
package idalloc

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// Allocator mints ids for a single document. Its counter methods
// serialize on an internal mutex, so it may be shared across
// goroutines.
type Allocator struct {
	mu       sync.Mutex
	counters map[string]uint64
}

// New creates an allocator whose block counter starts after the root
// id (block counter begins at 1, since RootID is reserved and not
// drawn from this counter).
func New() *Allocator {
	return &Allocator{counters: make(map[string]uint64)}
}

// NextBlockID returns the next sequential block id.
func (a *Allocator) NextBlockID() types.Id {
	return a.next(types.PrefixBlock)
}

// NextTransactionID returns a non-sequential transaction id: spec §4.7
// does not require transaction ids to be diff-friendly or sequential,
// so a uuid-backed suffix (as the teacher mints document UUIDs) avoids
// any appearance of ordering guarantees callers might rely on.
func (a *Allocator) NextTransactionID() types.Id {
	return types.Id(types.PrefixTransaction + uuid.NewString())
}

// NextSnapshotID mints a snapshot id the same way.
func (a *Allocator) NextSnapshotID() types.Id {
	return types.Id(types.PrefixSnapshot + uuid.NewString())
}

// NextSavepointID mints a savepoint id the same way.
func (a *Allocator) NextSavepointID() types.Id {
	return types.Id(types.PrefixSavepoint + uuid.NewString())
}

func (a *Allocator) next(prefix string) types.Id {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters[prefix]++
	return types.Id(fmt.Sprintf("%s%d", prefix, a.counters[prefix]))
}

// Peek returns the block id that would be returned by the next call to
// NextBlockID, without consuming it. Used by tests that need to assert
// on an id before it is allocated.
func (a *Allocator) Peek() types.Id {
	a.mu.Lock()
	defer a.mu.Unlock()
	return types.Id(fmt.Sprintf("%s%d", types.PrefixBlock, a.counters[types.PrefixBlock]+1))
}

// Reset clears all counters. Used when restoring a snapshot: ids minted
// after the restore point must not collide with ids that existed
// before the snapshot was taken but were deleted since.
func (a *Allocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters = make(map[string]uint64)
}

// Advance fast-forwards the block counter to at least n, used when
// loading a serialized document whose highest existing block id
// suffix is n (so freshly minted ids never collide with loaded ones).
func (a *Allocator) Advance(n uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.counters[types.PrefixBlock] < n {
		a.counters[types.PrefixBlock] = n
	}
}
