package context

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Antonio7098/unified-content-protocol-sub002/traversal"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Projection is a bijective map between a document's block ids and
// short positive integers, assigned in deterministic traversal order,
// per spec §4.13. It is the primary token-saving mechanism for
// downstream LLM serialization.
type Projection struct {
	toShort map[types.Id]int
	toFull  map[int]types.Id
	idRe    *regexp.Regexp
}

// BuildProjection numbers every block in doc in breadth-first order
// from the root, starting at 1.
func BuildProjection(doc *ucm.Document) *Projection {
	p := &Projection{toShort: map[types.Id]int{}, toFull: map[int]types.Id{}}

	result := traversal.Walk(doc, traversal.Options{
		Start: doc.Root, Direction: traversal.BreadthFirst,
		MaxDepth: doc.Limits.MaxDepth, MaxNodes: len(doc.Blocks) + 1,
	})
	next := 1
	for _, node := range result.Nodes {
		if _, ok := p.toShort[node.ID]; ok {
			continue
		}
		p.toShort[node.ID] = next
		p.toFull[next] = node.ID
		next++
	}
	p.idRe = regexp.MustCompile(`\bblk_[A-Za-z0-9_-]+\b`)
	return p
}

// Shorten replaces every full block id word-boundary occurrence in
// text with its short alias, e.g. "blk_42" -> "#7".
func (p *Projection) Shorten(text string) string {
	return p.idRe.ReplaceAllStringFunc(text, func(match string) string {
		if short, ok := p.toShort[types.Id(match)]; ok {
			return "#" + strconv.Itoa(short)
		}
		return match
	})
}

var shortIDPattern = regexp.MustCompile(`#(\d+)`)

// Expand is the inverse of Shorten: it replaces "#N" aliases with
// their full block ids, for use after a consumer has produced output
// referencing short ids.
func (p *Projection) Expand(text string) string {
	return shortIDPattern.ReplaceAllStringFunc(text, func(match string) string {
		n, err := strconv.Atoi(strings.TrimPrefix(match, "#"))
		if err != nil {
			return match
		}
		if full, ok := p.toFull[n]; ok {
			return string(full)
		}
		return match
	})
}

// Describe emits a compact document summary using short ids and role
// labels, per spec §4.13.
func (p *Projection) Describe(doc *ucm.Document) string {
	var b strings.Builder
	result := traversal.Walk(doc, traversal.Options{
		Start: doc.Root, Direction: traversal.BreadthFirst,
		MaxDepth: doc.Limits.MaxDepth, MaxNodes: len(doc.Blocks) + 1,
	})
	for _, node := range result.Nodes {
		block, ok := doc.GetBlock(node.ID)
		if !ok {
			continue
		}
		short, ok := p.toShort[node.ID]
		if !ok {
			continue
		}
		role := string(block.Metadata.SemanticRole)
		if role == "" {
			role = "block"
		}
		b.WriteString(strings.Repeat("  ", node.Depth))
		b.WriteString("#")
		b.WriteString(strconv.Itoa(short))
		b.WriteString(" ")
		b.WriteString(role)
		if block.Metadata.Label != "" {
			b.WriteString(" (" + block.Metadata.Label + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}
