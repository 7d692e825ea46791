package engine

import (
	"fmt"
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Append inserts a new block as a child of Parent, per spec §4.6.
type Append struct {
	Parent   types.Id
	Content  content.Content
	Metadata ucm.Metadata
	// Index positions the new block among its siblings; nil appends at
	// the end.
	Index *int

	lastID types.Id
}

func (a *Append) Description() string {
	return fmt.Sprintf("append block under %s", a.Parent)
}

func (a *Append) Validate(ctx *OpContext) []Message {
	var msgs []Message
	if _, ok := ctx.Doc.GetBlock(a.Parent); !ok {
		msgs = append(msgs, errMsg(types.ErrBlockNotFound, "parent block %s does not exist", a.Parent))
		return msgs
	}
	if a.Metadata.Label != "" {
		if _, ok := ctx.Doc.FindByLabel(a.Metadata.Label); ok {
			msgs = append(msgs, errMsg(types.ErrLabelCollision, "label %q already in use", a.Metadata.Label))
		}
	}
	siblings := ctx.Doc.Children(a.Parent)
	if a.Index != nil && (*a.Index < 0 || *a.Index > len(siblings)) {
		msgs = append(msgs, errMsg(types.ErrInvalidDropTarget, "index %d out of range for %d siblings", *a.Index, len(siblings)))
	}
	if a.Content != nil && a.Content.SizeEstimate() > ctx.Doc.Limits.MaxBlockSize {
		msgs = append(msgs, errMsg(types.ErrBlockSizeExceeded, "content exceeds max block size"))
	}
	if ctx.Doc.BlockCount() >= ctx.Doc.Limits.MaxBlocks {
		msgs = append(msgs, errMsg(types.ErrBlockCountExceeded, "document already at max block count %d", ctx.Doc.Limits.MaxBlocks))
	}
	if depth := ctx.Doc.Depth(a.Parent) + 1; depth > ctx.Doc.Limits.MaxDepth {
		msgs = append(msgs, errMsg(types.ErrDepthExceeded, "appending under %s would put the new block at depth %d, exceeding the limit of %d", a.Parent, depth, ctx.Doc.Limits.MaxDepth))
	}
	return msgs
}

func (a *Append) Execute(ctx *OpContext) *Result {
	return runValidated(a, ctx, func() ([]types.Id, []Message) {
		newID := ctx.Allocator.NextBlockID()
		a.lastID = newID
		if ctx.DryRun {
			return []types.Id{newID}, nil
		}

		now := time.Now().UTC()
		md := a.Metadata
		md.CreatedAt, md.ModifiedAt = now, now
		md.ContentHash = ucm.ContentHash(a.Content)

		block := &ucm.Block{
			ID:       newID,
			Content:  a.Content,
			Metadata: md,
			Children: []types.Id{},
		}
		ctx.Doc.Blocks[newID] = block

		siblings := ctx.Doc.Structure[a.Parent]
		if a.Index == nil || *a.Index >= len(siblings) {
			siblings = append(siblings, newID)
		} else {
			siblings = append(siblings[:*a.Index], append([]types.Id{newID}, siblings[*a.Index:]...)...)
		}
		ctx.Doc.Structure[a.Parent] = siblings
		if parentBlock, ok := ctx.Doc.GetBlock(a.Parent); ok {
			parentBlock.Children = append([]types.Id(nil), siblings...)
		}

		ctx.Doc.RebuildIndices()
		return []types.Id{newID}, nil
	})
}

// NewID returns the id allocated by the most recent Execute call.
func (a *Append) NewID() types.Id { return a.lastID }
