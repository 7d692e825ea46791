package engine

import (
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Selector picks the blocks a Prune targets.
type Selector struct {
	// Unreachable, when true, matches every block not reachable from
	// the root (structural orphans left over from Delete's orphan
	// mode).
	Unreachable bool
	// Condition, when set, matches blocks for which it returns true.
	Condition func(*ucm.Block) bool
}

// Prune removes all blocks matching Selector, or reports them without
// removing them when DryRun is requested, per spec §4.6.
type Prune struct {
	Selector Selector
}

func (p *Prune) Description() string { return "prune matching blocks" }

func (p *Prune) Validate(ctx *OpContext) []Message {
	if !p.Selector.Unreachable && p.Selector.Condition == nil {
		return []Message{errMsg(types.ErrInvalidOperator, "prune requires an unreachable selector or a condition")}
	}
	return nil
}

func (p *Prune) matches(ctx *OpContext) []types.Id {
	reachable := make(map[types.Id]bool)
	reachable[ctx.Doc.Root] = true
	for _, id := range ctx.Doc.Descendants(ctx.Doc.Root) {
		reachable[id] = true
	}

	var out []types.Id
	for id, b := range ctx.Doc.Blocks {
		if id == ctx.Doc.Root {
			continue
		}
		if p.Selector.Unreachable && !reachable[id] {
			out = append(out, id)
			continue
		}
		if p.Selector.Condition != nil && p.Selector.Condition(b) {
			out = append(out, id)
		}
	}
	return out
}

func (p *Prune) Execute(ctx *OpContext) *Result {
	return runValidated(p, ctx, func() ([]types.Id, []Message) {
		targets := p.matches(ctx)
		if ctx.DryRun {
			return targets, nil
		}
		for _, id := range targets {
			if parent, ok := ctx.Doc.Parent(id); ok {
				ctx.Doc.Structure[parent] = removeID(ctx.Doc.Structure[parent], id)
			}
			delete(ctx.Doc.Structure, id)
			delete(ctx.Doc.Blocks, id)
		}
		ctx.Doc.RebuildIndices()
		return targets, nil
	})
}
