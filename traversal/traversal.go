// Package traversal implements the bounded graph walk from spec
// §4.11: breadth-first, depth-first, path-to-root, semantic-edge-
// following, and radial walks over a document's parent-child tree
// plus its semantic edge graph.
//
// The bounds/options/ranked-result shape is grounded in the teacher's
// search.Engine, generalized from text search scoring to structural
// reachability.
package traversal

import (
	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Direction selects the walk strategy, per spec §4.11.
type Direction int

const (
	BreadthFirst Direction = iota
	DepthFirst
	PathToRoot
	SemanticFollow
	Radial
)

// Filter restricts which nodes are included in the output, without
// affecting which nodes are visited for expansion purposes.
type Filter struct {
	Roles   []ucm.SemanticRole
	Tags    []string
	Types   []content.Type
	Custom  func(*ucm.Block) bool
}

func (f Filter) empty() bool {
	return len(f.Roles) == 0 && len(f.Tags) == 0 && len(f.Types) == 0 && f.Custom == nil
}

func (f Filter) matches(b *ucm.Block) bool {
	if f.empty() {
		return true
	}
	for _, r := range f.Roles {
		if b.Metadata.SemanticRole == r {
			return true
		}
	}
	for _, t := range f.Tags {
		if b.Metadata.HasTag(t) {
			return true
		}
	}
	if b.Content != nil {
		for _, t := range f.Types {
			if b.Content.ContentType() == t {
				return true
			}
		}
	}
	if f.Custom != nil && f.Custom(b) {
		return true
	}
	return false
}

// Reason explains why a node appears in the output.
type Reason string

const (
	ReasonStart      Reason = "start"
	ReasonChild      Reason = "child"
	ReasonParent     Reason = "parent"
	ReasonEdge       Reason = "edge"
)

// Node is one visited block in traversal order.
type Node struct {
	ID     types.Id
	Depth  int
	Reason Reason
	Edge   ucm.EdgeKind // set when Reason == ReasonEdge
}

// Options bounds a walk, per spec §4.11: callers must supply both a
// node-count ceiling and a depth ceiling.
type Options struct {
	Start      types.Id
	Direction  Direction
	MaxDepth   int
	MaxNodes   int
	EdgeKinds  []ucm.EdgeKind // used by SemanticFollow and Radial
	Filter     Filter
}

// Result is the ordered, possibly truncated, walk output.
type Result struct {
	Nodes       []Node
	Truncated   bool
	TruncatedBy string // "max_depth" or "max_nodes"
}

// Walk executes a bounded traversal over doc starting at opts.Start,
// per spec §4.11. It is deterministic given (doc, opts). Walk reads doc
// directly: it takes no copy and no lock, and a mutation made to doc
// during the walk is not detected.
func Walk(doc *ucm.Document, opts Options) Result {
	switch opts.Direction {
	case PathToRoot:
		return walkPathToRoot(doc, opts)
	case SemanticFollow:
		return walkSemantic(doc, opts)
	case Radial:
		return walkRadial(doc, opts)
	case DepthFirst:
		return walkTree(doc, opts, false)
	default:
		return walkTree(doc, opts, true)
	}
}

func walkTree(doc *ucm.Document, opts Options, breadthFirst bool) Result {
	type item struct {
		id     types.Id
		depth  int
		reason Reason
	}
	res := Result{}
	if _, ok := doc.GetBlock(opts.Start); !ok {
		return res
	}
	visited := map[types.Id]bool{opts.Start: true}
	queue := []item{{id: opts.Start, depth: 0, reason: ReasonStart}}

	for len(queue) > 0 {
		var cur item
		if breadthFirst {
			cur, queue = queue[0], queue[1:]
		} else {
			cur, queue = queue[len(queue)-1], queue[:len(queue)-1]
		}

		if len(res.Nodes) >= opts.MaxNodes {
			res.Truncated, res.TruncatedBy = true, "max_nodes"
			break
		}
		if block, ok := doc.GetBlock(cur.id); ok && (cur.reason == ReasonStart || opts.Filter.matches(block)) {
			res.Nodes = append(res.Nodes, Node{ID: cur.id, Depth: cur.depth, Reason: cur.reason})
		}

		if cur.depth >= opts.MaxDepth {
			if len(doc.Children(cur.id)) > 0 {
				res.Truncated, res.TruncatedBy = true, "max_depth"
			}
			continue
		}
		children := doc.Children(cur.id)
		if !breadthFirst {
			for i := len(children) - 1; i >= 0; i-- {
				c := children[i]
				if !visited[c] {
					visited[c] = true
					queue = append(queue, item{id: c, depth: cur.depth + 1, reason: ReasonChild})
				}
			}
			continue
		}
		for _, c := range children {
			if !visited[c] {
				visited[c] = true
				queue = append(queue, item{id: c, depth: cur.depth + 1, reason: ReasonChild})
			}
		}
	}
	return res
}

func walkPathToRoot(doc *ucm.Document, opts Options) Result {
	res := Result{}
	if _, ok := doc.GetBlock(opts.Start); !ok {
		return res
	}
	res.Nodes = append(res.Nodes, Node{ID: opts.Start, Depth: 0, Reason: ReasonStart})
	depth := 0
	cur := opts.Start
	for {
		if len(res.Nodes) >= opts.MaxNodes {
			if _, ok := doc.Parent(cur); ok {
				res.Truncated, res.TruncatedBy = true, "max_nodes"
			}
			break
		}
		if depth >= opts.MaxDepth {
			if _, ok := doc.Parent(cur); ok {
				res.Truncated, res.TruncatedBy = true, "max_depth"
			}
			break
		}
		parent, ok := doc.Parent(cur)
		if !ok {
			break
		}
		depth++
		if block, ok := doc.GetBlock(parent); ok && opts.Filter.matches(block) {
			res.Nodes = append(res.Nodes, Node{ID: parent, Depth: depth, Reason: ReasonParent})
		}
		cur = parent
	}
	return res
}

func walkSemantic(doc *ucm.Document, opts Options) Result {
	type item struct {
		id    types.Id
		depth int
		kind  ucm.EdgeKind
	}
	res := Result{}
	if _, ok := doc.GetBlock(opts.Start); !ok {
		return res
	}
	visited := map[types.Id]bool{opts.Start: true}
	queue := []item{{id: opts.Start, depth: 0}}
	first := true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if len(res.Nodes) >= opts.MaxNodes {
			res.Truncated, res.TruncatedBy = true, "max_nodes"
			break
		}
		reason := ReasonEdge
		if first {
			reason = ReasonStart
		}
		if block, ok := doc.GetBlock(cur.id); ok && (first || opts.Filter.matches(block)) {
			res.Nodes = append(res.Nodes, Node{ID: cur.id, Depth: cur.depth, Reason: reason, Edge: cur.kind})
		}
		first = false

		if cur.depth >= opts.MaxDepth {
			continue
		}
		for _, kind := range opts.EdgeKinds {
			for _, target := range doc.Indices.Edges.OutgoingOfKind(cur.id, kind) {
				if !visited[target] {
					visited[target] = true
					queue = append(queue, item{id: target, depth: cur.depth + 1, kind: kind})
				}
			}
		}
	}
	return res
}

func walkRadial(doc *ucm.Document, opts Options) Result {
	up := walkPathToRoot(doc, opts)
	downOpts := opts
	downOpts.Direction = BreadthFirst
	down := walkTree(doc, downOpts, true)

	seen := map[types.Id]bool{}
	res := Result{}
	for _, n := range append(append([]Node{}, up.Nodes...), down.Nodes...) {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		res.Nodes = append(res.Nodes, n)
	}
	if up.Truncated || down.Truncated {
		res.Truncated = true
		res.TruncatedBy = firstNonEmpty(up.TruncatedBy, down.TruncatedBy)
	}
	return res
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
