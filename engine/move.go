package engine

import (
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// MoveDestination describes where a moved block should land, per
// spec §4.6: either reparented under Parent at an optional index, or
// positioned relative to a sibling.
type MoveDestination struct {
	Parent  types.Id // used when Sibling is empty
	Index   *int
	Sibling types.Id // used when non-empty; Before selects before/after
	Before  bool
}

// Move detaches Target and reattaches it at Destination.
type Move struct {
	Target      types.Id
	Destination MoveDestination
}

func (m *Move) Description() string {
	return fmt.Sprintf("move %s", m.Target)
}

func (m *Move) resolveParent(ctxDoc interface {
	Parent(types.Id) (types.Id, bool)
}) (types.Id, error) {
	if m.Destination.Sibling != "" {
		p, ok := ctxDoc.Parent(m.Destination.Sibling)
		if !ok {
			return "", fmt.Errorf("sibling %s has no parent", m.Destination.Sibling)
		}
		return p, nil
	}
	return m.Destination.Parent, nil
}

func (m *Move) Validate(ctx *OpContext) []Message {
	var msgs []Message
	if _, ok := ctx.Doc.GetBlock(m.Target); !ok {
		msgs = append(msgs, errMsg(types.ErrBlockNotFound, "block %s does not exist", m.Target))
		return msgs
	}
	if m.Target == ctx.Doc.Root {
		msgs = append(msgs, errMsg(types.ErrInvalidDropTarget, "cannot move the root block"))
		return msgs
	}
	parent, err := m.resolveParent(ctx.Doc)
	if err != nil {
		msgs = append(msgs, errMsg(types.ErrInvalidDropTarget, "%v", err))
		return msgs
	}
	if _, ok := ctx.Doc.GetBlock(parent); !ok {
		msgs = append(msgs, errMsg(types.ErrBlockNotFound, "destination parent %s does not exist", parent))
		return msgs
	}
	if parent == m.Target {
		msgs = append(msgs, errMsg(types.ErrCycleDetected, "cannot move %s under itself", m.Target))
		return msgs
	}
	descendants := ctx.Doc.Descendants(m.Target)
	for _, d := range descendants {
		if d == parent {
			msgs = append(msgs, errMsg(types.ErrCycleDetected, "destination %s is a descendant of %s", parent, m.Target))
			return msgs
		}
	}

	targetDepth := ctx.Doc.Depth(m.Target)
	subtreeDepth := 0
	for _, d := range descendants {
		if rel := ctx.Doc.Depth(d) - targetDepth; rel > subtreeDepth {
			subtreeDepth = rel
		}
	}
	if newDepth := ctx.Doc.Depth(parent) + 1 + subtreeDepth; newDepth > ctx.Doc.Limits.MaxDepth {
		msgs = append(msgs, errMsg(types.ErrDepthExceeded, "moving %s under %s would put its deepest descendant at depth %d, exceeding the limit of %d", m.Target, parent, newDepth, ctx.Doc.Limits.MaxDepth))
	}
	return msgs
}

func (m *Move) Execute(ctx *OpContext) *Result {
	return runValidated(m, ctx, func() ([]types.Id, []Message) {
		if ctx.DryRun {
			return []types.Id{m.Target}, nil
		}
		oldParent, _ := ctx.Doc.Parent(m.Target)
		ctx.Doc.Structure[oldParent] = removeID(ctx.Doc.Structure[oldParent], m.Target)

		newParent, _ := m.resolveParent(ctx.Doc)
		siblings := ctx.Doc.Structure[newParent]
		insertAt := len(siblings)
		switch {
		case m.Destination.Sibling != "":
			for i, s := range siblings {
				if s == m.Destination.Sibling {
					insertAt = i
					if !m.Destination.Before {
						insertAt = i + 1
					}
					break
				}
			}
		case m.Destination.Index != nil:
			insertAt = *m.Destination.Index
			if insertAt > len(siblings) {
				insertAt = len(siblings)
			}
		}
		siblings = append(siblings[:insertAt], append([]types.Id{m.Target}, siblings[insertAt:]...)...)
		ctx.Doc.Structure[newParent] = siblings

		if pb, ok := ctx.Doc.GetBlock(oldParent); ok {
			pb.Children = append([]types.Id(nil), ctx.Doc.Structure[oldParent]...)
		}
		if nb, ok := ctx.Doc.GetBlock(newParent); ok {
			nb.Children = append([]types.Id(nil), siblings...)
		}

		ctx.Doc.RebuildIndices()
		return []types.Id{m.Target}, nil
	})
}

func removeID(ids []types.Id, target types.Id) []types.Id {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
