package engine

import (
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// SectionCodec bridges WriteSection to an external format parser
// (package codec implements this for markdown), per spec §6. It
// builds fresh blocks under parent from payload and returns their
// ids, using alloc to mint ids.
type SectionCodec interface {
	ParseInto(doc *ucm.Document, alloc interface{ NextBlockID() types.Id }, parent types.Id, payload string, baseHeadingLevel int) ([]types.Id, error)
}

// WriteSection atomically replaces the subtree rooted at Section with
// the blocks parsed from Payload, per spec §4.6 and §6.
type WriteSection struct {
	Section          types.Id
	Payload          string
	BaseHeadingLevel int
	Codec            SectionCodec
}

func (w *WriteSection) Description() string { return fmt.Sprintf("write section %s", w.Section) }

func (w *WriteSection) Validate(ctx *OpContext) []Message {
	var msgs []Message
	if _, ok := ctx.Doc.GetBlock(w.Section); !ok {
		msgs = append(msgs, errMsg(types.ErrBlockNotFound, "section block %s does not exist", w.Section))
	}
	if w.Codec == nil {
		msgs = append(msgs, errMsg(types.ErrInvalidContent, "no codec configured for write_section"))
	}
	return msgs
}

func (w *WriteSection) Execute(ctx *OpContext) *Result {
	return runValidated(w, ctx, func() ([]types.Id, []Message) {
		if ctx.DryRun {
			return []types.Id{w.Section}, nil
		}

		for _, id := range ctx.Doc.Descendants(w.Section) {
			delete(ctx.Doc.Structure, id)
			delete(ctx.Doc.Blocks, id)
		}
		ctx.Doc.Structure[w.Section] = []types.Id{}
		if sb, ok := ctx.Doc.GetBlock(w.Section); ok {
			sb.Children = []types.Id{}
		}

		newIDs, err := w.Codec.ParseInto(ctx.Doc, ctx.Allocator, w.Section, w.Payload, w.BaseHeadingLevel)
		if err != nil {
			return nil, []Message{errMsg(types.ErrInvalidContent, "%v", err)}
		}

		ctx.Doc.RebuildIndices()
		return append([]types.Id{w.Section}, newIDs...), nil
	})
}
