package engine

import (
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// DeleteMode controls what happens to a deleted block's children, per
// spec §4.6.
type DeleteMode string

const (
	DeleteOrphan           DeleteMode = "orphan" // default: children become orphaned, then pruned by Prune(unreachable)
	DeleteCascade          DeleteMode = "cascade"
	DeletePreserveChildren DeleteMode = "preserve_children"
)

// Delete removes Target according to Mode.
type Delete struct {
	Target types.Id
	Mode   DeleteMode
}

func (d *Delete) Description() string {
	mode := d.Mode
	if mode == "" {
		mode = DeleteOrphan
	}
	return fmt.Sprintf("delete %s (%s)", d.Target, mode)
}

func (d *Delete) Validate(ctx *OpContext) []Message {
	var msgs []Message
	if _, ok := ctx.Doc.GetBlock(d.Target); !ok {
		msgs = append(msgs, errMsg(types.ErrBlockNotFound, "block %s does not exist", d.Target))
		return msgs
	}
	if d.Target == ctx.Doc.Root {
		msgs = append(msgs, errMsg(types.ErrInvalidDropTarget, "cannot delete the root block"))
	}
	return msgs
}

func (d *Delete) Execute(ctx *OpContext) *Result {
	return runValidated(d, ctx, func() ([]types.Id, []Message) {
		mode := d.Mode
		if mode == "" {
			mode = DeleteOrphan
		}
		if ctx.DryRun {
			return []types.Id{d.Target}, nil
		}

		parent, _ := ctx.Doc.Parent(d.Target)
		children := ctx.Doc.Children(d.Target)
		var affected []types.Id

		switch mode {
		case DeleteCascade:
			for _, id := range ctx.Doc.Descendants(d.Target) {
				affected = append(affected, id)
				delete(ctx.Doc.Blocks, id)
			}
			ctx.Doc.Structure[parent] = removeID(ctx.Doc.Structure[parent], d.Target)
			delete(ctx.Doc.Structure, d.Target)
			affected = append(affected, d.Target)
			delete(ctx.Doc.Blocks, d.Target)

		case DeletePreserveChildren:
			siblings := ctx.Doc.Structure[parent]
			insertAt := len(siblings)
			for i, s := range siblings {
				if s == d.Target {
					insertAt = i
					break
				}
			}
			siblings = removeID(siblings, d.Target)
			siblings = append(siblings[:insertAt], append(append([]types.Id(nil), children...), siblings[insertAt:]...)...)
			ctx.Doc.Structure[parent] = siblings
			delete(ctx.Doc.Structure, d.Target)
			affected = append(affected, d.Target)
			delete(ctx.Doc.Blocks, d.Target)

		default: // DeleteOrphan
			ctx.Doc.Structure[parent] = removeID(ctx.Doc.Structure[parent], d.Target)
			delete(ctx.Doc.Structure, d.Target)
			affected = append(affected, d.Target)
			delete(ctx.Doc.Blocks, d.Target)
		}

		if pb, ok := ctx.Doc.GetBlock(parent); ok {
			pb.Children = append([]types.Id(nil), ctx.Doc.Structure[parent]...)
		}
		ctx.Doc.RebuildIndices()
		return affected, nil
	})
}

