// Package search implements lexical block search over a ucm.Document,
// used as the default agent.RAGProvider when no embedding-backed
// provider is configured (spec §4.12 leaves semantic search pluggable;
// true vector search is not implemented in this module, so this
// substring/coverage scorer fills the same interface slot).
//
// The scoring shape (substring + prefix + coverage boosts, title-role
// weighting, descending sort, result-count cap) is grounded in the
// teacher's nanostore/search.Engine, adapted from flat
// title/body/dimension fields to a block's canonical text and
// semantic role.
package search

import (
	"sort"
	"strings"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Result is a single scored block match.
type Result struct {
	ID    types.Id
	Score float64
}

// Engine is a lexical search engine over a single document's blocks.
type Engine struct {
	doc *ucm.Document
}

// NewEngine builds an engine scoped to doc.
func NewEngine(doc *ucm.Document) *Engine {
	return &Engine{doc: doc}
}

// Search scores every block's canonical text against query and
// returns the highest-scoring matches, most relevant first, capped at
// maxResults (0 means unlimited).
func (e *Engine) Search(query string, maxResults int) []Result {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)

	var results []Result
	for id, b := range e.doc.Blocks {
		if b.Content == nil {
			continue
		}
		text := b.Content.Canonical()
		if text == "" {
			continue
		}
		if score, ok := e.score(text, needle, b.Metadata.SemanticRole); ok {
			results = append(results, Result{ID: id, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID // stable tie-break
	})

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// SemanticSearch implements agent.RAGProvider, returning just the
// matched block ids.
func (e *Engine) SemanticSearch(query string, k int) ([]types.Id, error) {
	results := e.Search(query, k)
	ids := make([]types.Id, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids, nil
}

func (e *Engine) score(text, needle string, role ucm.SemanticRole) (float64, bool) {
	haystack := strings.ToLower(text)
	if !strings.Contains(haystack, needle) {
		return 0, false
	}

	base := 0.5
	if isHeadingRole(role) {
		base = 0.8
	}
	if haystack == needle {
		base += 0.2
	}
	if strings.HasPrefix(haystack, needle) {
		base += 0.2
	}
	if coverage := float64(len(needle)) / float64(len(haystack)); coverage > 0.5 {
		base += 0.1
	}
	if base > 1.0 {
		base = 1.0
	}
	return base, true
}

func isHeadingRole(r ucm.SemanticRole) bool {
	switch r {
	case ucm.RoleTitle, ucm.RoleHeading1, ucm.RoleHeading2, ucm.RoleHeading3:
		return true
	default:
		return false
	}
}
