package engine

import (
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// Atomic executes a sequence of commands as a single all-or-nothing
// unit, per spec §4.6: if any op fails, the document is rolled back
// to its pre-Atomic state and none of the ops take effect.
type Atomic struct {
	Ops []Command
}

func (a *Atomic) Description() string { return fmt.Sprintf("atomic block of %d operations", len(a.Ops)) }

func (a *Atomic) Validate(ctx *OpContext) []Message {
	if len(a.Ops) == 0 {
		return []Message{errMsg(types.ErrInvalidOperator, "atomic block has no operations")}
	}
	return nil
}

// Execute runs each op against a scratch clone of the document first
// to check the whole group succeeds, then replays it against the real
// document. Replaying rather than swapping in the clone keeps ids
// allocated by ctx.Allocator during the dry pass out of the
// committed document, since NextBlockID has no rollback of its own.
func (a *Atomic) Execute(ctx *OpContext) *Result {
	result := &Result{Success: true, Code: CodeSuccess}
	result.Messages = append(result.Messages, a.Validate(ctx)...)
	if result.hasError() {
		result.Success = false
		result.Code = CodeValidationError
		return result
	}

	scratch := ctx.Doc.Clone()
	scratchCtx := &OpContext{Doc: scratch, Allocator: ctx.Allocator, DryRun: ctx.DryRun}
	for _, op := range a.Ops {
		r := op.Execute(scratchCtx)
		result.Messages = append(result.Messages, r.Messages...)
		if !r.Success {
			result.Success = false
			result.Code = CodeExecutionError
			return result
		}
	}

	if ctx.DryRun {
		return result
	}

	var affected []types.Id
	for _, op := range a.Ops {
		r := op.Execute(ctx)
		affected = append(affected, r.Affected...)
	}
	result.Affected = affected
	result.Stats.AffectedBlocks = len(affected)
	return result
}
