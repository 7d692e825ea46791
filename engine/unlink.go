package engine

import (
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Unlink removes a matching edge; succeeds silently if absent, per
// spec §4.6.
type Unlink struct {
	Source types.Id
	Kind   ucm.EdgeKind
	Target types.Id
}

func (u *Unlink) Description() string {
	return fmt.Sprintf("unlink %s -%s-> %s", u.Source, u.Kind, u.Target)
}

func (u *Unlink) Validate(ctx *OpContext) []Message {
	if _, ok := ctx.Doc.GetBlock(u.Source); !ok {
		return []Message{errMsg(types.ErrBlockNotFound, "source block %s does not exist", u.Source)}
	}
	return nil
}

func (u *Unlink) Execute(ctx *OpContext) *Result {
	return runValidated(u, ctx, func() ([]types.Id, []Message) {
		if ctx.DryRun {
			return []types.Id{u.Source}, nil
		}
		block, _ := ctx.Doc.GetBlock(u.Source)
		out := block.Edges[:0]
		for _, e := range block.Edges {
			if e.Kind == u.Kind && e.Target == u.Target {
				continue
			}
			out = append(out, e)
		}
		block.Edges = out
		ctx.Doc.Indices.Edges.Remove(u.Source, u.Target, u.Kind)
		return []types.Id{u.Source}, nil
	})
}
