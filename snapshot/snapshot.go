// Package snapshot implements the bounded, LRU-evicted snapshot store
// from spec §4.8: named point-in-time copies of a Document, with
// pinning to exempt a snapshot from eviction and structural diffing
// between any two stored snapshots.
//
// Nothing in the example corpus hand-rolls an LRU cache, so the
// eviction bookkeeping here is plain Go; diffing is delegated to
// google/go-cmp, the same library the teacher pulls in for its own
// test assertions.
package snapshot

import (
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Snapshot is a stored point-in-time document copy.
type Snapshot struct {
	Name            string
	Doc             *ucm.Document
	Description     string
	CreatedAt       time.Time
	OriginalVersion uint64
	Pinned          bool

	lastUsed time.Time
}

// Manager is a bounded map of named snapshots with LRU eviction over
// unpinned entries.
type Manager struct {
	capacity  int
	snapshots map[string]*Snapshot
}

// NewManager creates a manager that holds at most capacity snapshots.
func NewManager(capacity int) *Manager {
	return &Manager{capacity: capacity, snapshots: make(map[string]*Snapshot)}
}

// Create stores a deep copy of doc under name, evicting the oldest
// unpinned snapshot if the manager is at capacity.
func (m *Manager) Create(name string, doc *ucm.Document, description string) (*Snapshot, error) {
	if _, exists := m.snapshots[name]; exists {
		return nil, types.NewError(types.ErrNameExists, "snapshot %q already exists", name)
	}
	if len(m.snapshots) >= m.capacity {
		if !m.evictOldest() {
			return nil, types.NewError(types.ErrBudgetExceeded, "snapshot store is full and every entry is pinned")
		}
	}
	now := time.Now().UTC()
	snap := &Snapshot{
		Name:            name,
		Doc:             doc.Clone(),
		Description:     description,
		CreatedAt:       now,
		OriginalVersion: doc.Version,
		lastUsed:        now,
	}
	m.snapshots[name] = snap
	return snap, nil
}

func (m *Manager) evictOldest() bool {
	var oldestName string
	var oldestAt time.Time
	for name, s := range m.snapshots {
		if s.Pinned {
			continue
		}
		if oldestName == "" || s.CreatedAt.Before(oldestAt) {
			oldestName, oldestAt = name, s.CreatedAt
		}
	}
	if oldestName == "" {
		return false
	}
	delete(m.snapshots, oldestName)
	return true
}

// Get returns the snapshot stored under name.
func (m *Manager) Get(name string) (*Snapshot, bool) {
	s, ok := m.snapshots[name]
	if ok {
		s.lastUsed = time.Now().UTC()
	}
	return s, ok
}

// Restore returns a fresh clone of the document stored under name,
// ready to replace a live document.
func (m *Manager) Restore(name string) (*ucm.Document, error) {
	s, ok := m.Get(name)
	if !ok {
		return nil, types.NewError(types.ErrNotFound, "snapshot %q does not exist", name)
	}
	restored := s.Doc.Clone()
	restored.RebuildIndices()
	return restored, nil
}

// Delete removes a snapshot by name.
func (m *Manager) Delete(name string) error {
	if _, ok := m.snapshots[name]; !ok {
		return types.NewError(types.ErrNotFound, "snapshot %q does not exist", name)
	}
	delete(m.snapshots, name)
	return nil
}

// Pin exempts a snapshot from LRU eviction; Unpin reverses it.
func (m *Manager) Pin(name string, pinned bool) error {
	s, ok := m.snapshots[name]
	if !ok {
		return types.NewError(types.ErrNotFound, "snapshot %q does not exist", name)
	}
	s.Pinned = pinned
	return nil
}

// List returns every snapshot, newest first.
func (m *Manager) List() []*Snapshot {
	out := make([]*Snapshot, 0, len(m.snapshots))
	for _, s := range m.snapshots {
		out = append(out, s)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt.After(out[j-1].CreatedAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Diff computes a structural diff between two stored snapshots'
// documents, ignoring fields that are pure derived/cache state
// (indices are rebuilt from primary state and would otherwise dominate
// the diff with noise).
func (m *Manager) Diff(a, b string) (string, error) {
	sa, ok := m.Get(a)
	if !ok {
		return "", types.NewError(types.ErrNotFound, "snapshot %q does not exist", a)
	}
	sb, ok := m.Get(b)
	if !ok {
		return "", types.NewError(types.ErrNotFound, "snapshot %q does not exist", b)
	}
	return Diff(sa.Doc, sb.Doc), nil
}

// Diff renders a unified structural diff between two documents.
func Diff(a, b *ucm.Document) string {
	return cmp.Diff(a, b,
		cmpopts.IgnoreUnexported(ucm.Document{}),
		cmp.Comparer(func(x, y *ucm.Indices) bool { return true }), // derived cache, excluded from structural comparison
	)
}
