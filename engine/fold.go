package engine

import (
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// FoldDirective records a projection-only collapse marker on a
// subtree, per spec §4.6: Fold never removes blocks; it is read by
// the context window (§4.13) when rendering a prompt.
type FoldDirective struct {
	Depth         *int
	MaxTokens     *int
	PreserveTags  []string
}

// Fold marks Target's subtree for collapse. It is not structurally
// destructive.
type Fold struct {
	Target    types.Id
	Directive FoldDirective
}

func (f *Fold) Description() string { return fmt.Sprintf("fold %s", f.Target) }

func (f *Fold) Validate(ctx *OpContext) []Message {
	if _, ok := ctx.Doc.GetBlock(f.Target); !ok {
		return []Message{errMsg(types.ErrBlockNotFound, "block %s does not exist", f.Target)}
	}
	return nil
}

func (f *Fold) Execute(ctx *OpContext) *Result {
	return runValidated(f, ctx, func() ([]types.Id, []Message) {
		if ctx.DryRun {
			return []types.Id{f.Target}, nil
		}
		block, _ := ctx.Doc.GetBlock(f.Target)
		if block.Metadata.Custom == nil {
			block.Metadata.Custom = make(map[string]interface{})
		}
		fold := map[string]interface{}{"folded": true}
		if f.Directive.Depth != nil {
			fold["depth"] = *f.Directive.Depth
		}
		if f.Directive.MaxTokens != nil {
			fold["max_tokens"] = *f.Directive.MaxTokens
		}
		if len(f.Directive.PreserveTags) > 0 {
			fold["preserve_tags"] = f.Directive.PreserveTags
		}
		block.Metadata.Custom["fold"] = fold
		return []types.Id{f.Target}, nil
	})
}
