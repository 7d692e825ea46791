// Package agent implements the stateful navigation session from spec
// §4.12: a cursor over a Document with history, view-mode projection,
// circuit breakers, and an operation log.
//
// Each issued command is recorded in the operation log with an outcome
// of "ok", "error" or "rejected"; the breaker-triggered truncation
// pattern is grounded on the teacher's search.Engine result-limit
// handling.
package agent

import (
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/traversal"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// ViewMode controls how a block is projected to the caller.
type ViewMode int

const (
	ViewFull ViewMode = iota
	ViewPreview
	ViewMetadata
	ViewIdsOnly
	ViewAdaptive
)

// Breakers bounds a session's resource consumption, per spec §4.12.
type Breakers struct {
	MaxOps            int
	MaxExpansionDepth int
	MaxNeighborhood   int
	TimeBudget        time.Duration
}

// LogEntry records one issued command, its outcome, and its timing.
type LogEntry struct {
	Command  string
	Outcome  string
	Err      error
	At       time.Time
	Duration time.Duration
}

// RAGProvider delegates SEARCH to an external semantic index.
type RAGProvider interface {
	SemanticSearch(query string, k int) ([]types.Id, error)
}

// Session is a stateful reader over a Document, per spec §4.12.
type Session struct {
	Doc      *ucm.Document
	Cursor   types.Id
	History  []types.Id
	ViewMode ViewMode
	PreviewN int
	Breakers Breakers
	RAG      RAGProvider

	opLog     []LogEntry
	opsIssued int
	startedAt time.Time
}

// New opens a session focused on focus, with the session clock
// starting now-equivalent (the caller's first command time).
func New(doc *ucm.Document, focus types.Id, breakers Breakers) *Session {
	return &Session{Doc: doc, Cursor: focus, Breakers: breakers, ViewMode: ViewFull}
}

func (s *Session) checkBreakers(extraDepth, extraNodes int) error {
	if s.startedAt.IsZero() {
		s.startedAt = time.Now()
	}
	if s.Breakers.MaxOps > 0 && s.opsIssued >= s.Breakers.MaxOps {
		return types.NewError(types.ErrBudgetExceeded, "session op budget exceeded (max %d)", s.Breakers.MaxOps)
	}
	if extraDepth > 0 && s.Breakers.MaxExpansionDepth > 0 && extraDepth > s.Breakers.MaxExpansionDepth {
		return types.NewError(types.ErrBudgetExceeded, "expansion depth %d exceeds max %d", extraDepth, s.Breakers.MaxExpansionDepth)
	}
	if extraNodes > 0 && s.Breakers.MaxNeighborhood > 0 && extraNodes > s.Breakers.MaxNeighborhood {
		return types.NewError(types.ErrBudgetExceeded, "requested neighborhood %d exceeds max %d", extraNodes, s.Breakers.MaxNeighborhood)
	}
	if s.Breakers.TimeBudget > 0 && !s.startedAt.IsZero() {
		if time.Since(s.startedAt) > s.Breakers.TimeBudget {
			return types.NewError(types.ErrBudgetExceeded, "session time budget exceeded")
		}
	}
	return nil
}

func (s *Session) record(cmd, outcome string, started time.Time, err error) {
	s.opsIssued++
	s.opLog = append(s.opLog, LogEntry{
		Command: cmd, Outcome: outcome, Err: err,
		At: started, Duration: time.Since(started),
	})
}

// Log returns the session's operation history in issue order.
func (s *Session) Log() []LogEntry { return s.opLog }

// Goto moves the cursor to id, pushing the prior cursor onto history.
func (s *Session) Goto(id types.Id) error {
	start := time.Now()
	if err := s.checkBreakers(0, 0); err != nil {
		s.record("GOTO", "rejected", start, err)
		return err
	}
	if _, ok := s.Doc.GetBlock(id); !ok {
		err := types.NewError(types.ErrBlockNotFound, "block %s not found", id)
		s.record("GOTO", "error", start, err)
		return err
	}
	s.History = append(s.History, s.Cursor)
	s.Cursor = id
	s.record("GOTO", "ok", start, nil)
	return nil
}

// Back pops the most recent history entry and restores it as cursor.
func (s *Session) Back() error {
	start := time.Now()
	if err := s.checkBreakers(0, 0); err != nil {
		s.record("BACK", "rejected", start, err)
		return err
	}
	if len(s.History) == 0 {
		err := types.NewError(types.ErrHistoryEmpty, "no prior cursor to return to")
		s.record("BACK", "error", start, err)
		return err
	}
	s.Cursor = s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	s.record("BACK", "ok", start, nil)
	return nil
}

// Expand walks direction from the cursor to the given depth, subject
// to breaker limits, and returns the visited nodes.
func (s *Session) Expand(direction traversal.Direction, depth int) (traversal.Result, error) {
	start := time.Now()
	if err := s.checkBreakers(depth, 0); err != nil {
		s.record("EXPAND", "rejected", start, err)
		return traversal.Result{}, err
	}
	maxNodes := s.Breakers.MaxNeighborhood
	if maxNodes <= 0 {
		maxNodes = 1000
	}
	res := traversal.Walk(s.Doc, traversal.Options{
		Start: s.Cursor, Direction: direction, MaxDepth: depth, MaxNodes: maxNodes,
	})
	s.record("EXPAND", "ok", start, nil)
	return res, nil
}

// Follow walks outgoing edges of the given kind from the cursor.
func (s *Session) Follow(kind ucm.EdgeKind, depth int) (traversal.Result, error) {
	start := time.Now()
	if err := s.checkBreakers(depth, 0); err != nil {
		s.record("FOLLOW", "rejected", start, err)
		return traversal.Result{}, err
	}
	maxNodes := s.Breakers.MaxNeighborhood
	if maxNodes <= 0 {
		maxNodes = 1000
	}
	res := traversal.Walk(s.Doc, traversal.Options{
		Start: s.Cursor, Direction: traversal.SemanticFollow, MaxDepth: depth,
		MaxNodes: maxNodes, EdgeKinds: []ucm.EdgeKind{kind},
	})
	s.record("FOLLOW", "ok", start, nil)
	return res, nil
}

// Path finds the shortest path from the cursor to target over the
// parent-child-plus-semantic-edge graph via BFS.
func (s *Session) Path(target types.Id) ([]types.Id, error) {
	start := time.Now()
	if err := s.checkBreakers(0, 0); err != nil {
		s.record("PATH", "rejected", start, err)
		return nil, err
	}
	path, ok := shortestPath(s.Doc, s.Cursor, target)
	if !ok {
		err := types.NewError(types.ErrPathNotFound, "no path from %s to %s", s.Cursor, target)
		s.record("PATH", "error", start, err)
		return nil, err
	}
	s.record("PATH", "ok", start, nil)
	return path, nil
}

func shortestPath(doc *ucm.Document, from, to types.Id) ([]types.Id, bool) {
	if from == to {
		return []types.Id{from}, true
	}
	visited := map[types.Id]bool{from: true}
	prev := map[types.Id]types.Id{}
	queue := []types.Id{from}

	neighbors := func(id types.Id) []types.Id {
		var out []types.Id
		out = append(out, doc.Children(id)...)
		if parent, ok := doc.Parent(id); ok {
			out = append(out, parent)
		}
		for _, e := range doc.Indices.Edges.OutgoingFrom(id) {
			out = append(out, e.Target)
		}
		for _, e := range doc.Indices.Edges.IncomingTo(id) {
			out = append(out, e.Source)
		}
		return out
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range neighbors(cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = cur
			if next == to {
				path := []types.Id{to}
				for n := cur; ; n = prev[n] {
					path = append([]types.Id{n}, path...)
					if n == from {
						break
					}
				}
				return path, true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

// Search delegates to the configured RAG provider.
func (s *Session) Search(query string, k int) ([]types.Id, error) {
	start := time.Now()
	if err := s.checkBreakers(0, 0); err != nil {
		s.record("SEARCH", "rejected", start, err)
		return nil, err
	}
	if s.RAG == nil {
		err := types.NewError(types.ErrNotConfigured, "no RAG provider configured")
		s.record("SEARCH", "error", start, err)
		return nil, err
	}
	ids, err := s.RAG.SemanticSearch(query, k)
	s.record("SEARCH", outcomeOf(err), start, err)
	return ids, err
}

// Find returns every block for which predicate returns true.
func (s *Session) Find(predicate func(*ucm.Block) bool) ([]types.Id, error) {
	start := time.Now()
	if err := s.checkBreakers(0, 0); err != nil {
		s.record("FIND", "rejected", start, err)
		return nil, err
	}
	var matches []types.Id
	for id, b := range s.Doc.Blocks {
		if predicate(b) {
			matches = append(matches, id)
		}
	}
	s.record("FIND", "ok", start, nil)
	return matches, nil
}

// View sets the session's projection mode.
func (s *Session) View(mode ViewMode, previewN int) error {
	start := time.Now()
	if err := s.checkBreakers(0, 0); err != nil {
		s.record("VIEW", "rejected", start, err)
		return err
	}
	s.ViewMode = mode
	s.PreviewN = previewN
	s.record("VIEW", "ok", start, nil)
	return nil
}

func outcomeOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
