// Package engine implements the operation algebra and transaction
// manager from spec §4.6-§4.7: a closed set of Command objects that
// mutate a ucm.Document, plus a Transaction type that sequences them
// with savepoints, commit, rollback, and timeout.
//
// The Command{Validate, Execute, Description} shape and the
// Message/Result/Stats vocabulary are carried over from the teacher's
// migration package, generalized from document-collection migrations
// to single-document block operations.
package engine

import (
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// MessageLevel is the severity of a Message.
type MessageLevel int

const (
	LevelDebug MessageLevel = iota
	LevelInfo
	LevelWarning
	LevelError
)

// Message is a single piece of command output, surfaced to callers
// via Result.Messages and logged by the transaction manager.
type Message struct {
	Level   MessageLevel
	Text    string
	Details map[string]interface{}
}

// Result codes, mirroring the teacher's CodeSuccess/CodeValidationError
// split.
const (
	CodeSuccess = iota
	CodeValidationError
	CodeExecutionError
)

// Stats describes how many blocks an operation touched.
type Stats struct {
	AffectedBlocks int
	Duration       time.Duration
}

// Result is the outcome of executing a Command.
type Result struct {
	Success  bool
	Code     int
	Messages []Message
	Affected []types.Id
	Stats    Stats
}

func (r *Result) hasError() bool {
	for _, m := range r.Messages {
		if m.Level == LevelError {
			return true
		}
	}
	return false
}

// OpContext is the state a Command operates over: the document being
// mutated and the allocator used to mint new block ids.
type OpContext struct {
	Doc       *ucm.Document
	Allocator interface {
		NextBlockID() types.Id
	}
	DryRun bool
}

// Command is a single operation from the algebra in spec §4.6.
// Implementations validate before mutating, mirroring the teacher's
// migration.Command contract.
type Command interface {
	Validate(ctx *OpContext) []Message
	Execute(ctx *OpContext) *Result
	Description() string
}

// runValidated is the common Execute scaffold shared by every command:
// validate, bail out on error, otherwise time the mutation.
func runValidated(cmd Command, ctx *OpContext, mutate func() ([]types.Id, []Message)) *Result {
	result := &Result{Success: true, Code: CodeSuccess}
	result.Messages = append(result.Messages, cmd.Validate(ctx)...)
	if result.hasError() {
		result.Success = false
		result.Code = CodeValidationError
		return result
	}

	start := time.Now()
	affected, msgs := mutate()
	result.Messages = append(result.Messages, msgs...)
	if result.hasError() {
		result.Success = false
		result.Code = CodeExecutionError
		return result
	}
	result.Affected = affected
	result.Stats = Stats{AffectedBlocks: len(affected), Duration: time.Since(start)}
	return result
}

func errMsg(code types.ErrorCode, format string, args ...interface{}) Message {
	return Message{Level: LevelError, Text: types.NewError(code, format, args...).Error()}
}
