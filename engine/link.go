package engine

import (
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Link adds an edge, idempotent per (source, kind, target) per
// spec §4.6.
type Link struct {
	Source     types.Id
	Kind       ucm.EdgeKind
	Target     types.Id
	Confidence *float64
	Note       string
	Custom     map[string]interface{}
}

func (l *Link) edge() ucm.Edge {
	return ucm.Edge{Kind: l.Kind, Target: l.Target, Confidence: l.Confidence, Description: l.Note, Custom: l.Custom}
}

func (l *Link) Description() string { return fmt.Sprintf("link %s -%s-> %s", l.Source, l.Kind, l.Target) }

func (l *Link) Validate(ctx *OpContext) []Message {
	var msgs []Message
	if _, ok := ctx.Doc.GetBlock(l.Source); !ok {
		msgs = append(msgs, errMsg(types.ErrBlockNotFound, "source block %s does not exist", l.Source))
	}
	if _, ok := ctx.Doc.GetBlock(l.Target); !ok {
		msgs = append(msgs, errMsg(types.ErrBlockNotFound, "target block %s does not exist", l.Target))
	}
	if err := l.edge().Validate(); err != nil {
		msgs = append(msgs, errMsg(types.ErrInvalidContent, "%v", err))
	}
	if n := ctx.Doc.Indices.Edges.CountFrom(l.Source); n >= ctx.Doc.Limits.MaxEdgesPerBlock {
		msgs = append(msgs, errMsg(types.ErrEdgeCountExceeded, "block %s already has %d outgoing edges", l.Source, n))
	}
	return msgs
}

func (l *Link) Execute(ctx *OpContext) *Result {
	return runValidated(l, ctx, func() ([]types.Id, []Message) {
		if ctx.DryRun {
			return []types.Id{l.Source}, nil
		}
		if ctx.Doc.Indices.Edges.HasEdge(l.Source, l.Target, l.Kind) {
			return []types.Id{l.Source}, nil
		}
		block, _ := ctx.Doc.GetBlock(l.Source)
		e := l.edge()
		block.Edges = append(block.Edges, e)
		ctx.Doc.Indices.Edges.Add(l.Source, e)
		return []types.Id{l.Source}, nil
	})
}
