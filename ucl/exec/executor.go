package exec

import (
	"strconv"
	"strings"
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/engine"
	"github.com/Antonio7098/unified-content-protocol-sub002/idalloc"
	"github.com/Antonio7098/unified-content-protocol-sub002/snapshot"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucl"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Executor runs a parsed UCL document against a live ucm.Document, per
// spec §4.10. A single executor instance may span several Run calls
// so that a TX_BEGIN in one source unit and its TX_COMMIT/TX_ROLLBACK
// in a later one share the same transaction.
type Executor struct {
	Doc       *ucm.Document
	Alloc     *idalloc.Allocator
	Snapshots *snapshot.Manager
	Aliases   AliasResolver
	TxTimeout time.Duration

	tx *engine.Transaction
}

// NewExecutor builds an executor with no aliasing (plain ids/labels
// only) and a 30s default transaction timeout.
func NewExecutor(doc *ucm.Document, alloc *idalloc.Allocator, snaps *snapshot.Manager) *Executor {
	return &Executor{Doc: doc, Alloc: alloc, Snapshots: snaps, Aliases: NoAliases, TxTimeout: 30 * time.Second}
}

// Outcome is one command's lowering-and-execution result.
type Outcome struct {
	Description string
	Result      *engine.Result // nil for UCL-level commands like TX_BEGIN/SNAPSHOT
	Err         error
}

// Run applies astDoc's STRUCTURE/BLOCKS declarations, then its
// COMMANDS in order, and returns one Outcome per command.
func (e *Executor) Run(astDoc *ucl.Document) ([]Outcome, error) {
	var outcomes []Outcome

	if astDoc.Blocks != nil || astDoc.Structure != nil {
		o, err := e.applyDeclarative(astDoc)
		outcomes = append(outcomes, o...)
		if err != nil {
			return outcomes, err
		}
	}

	if astDoc.Commands != nil {
		for _, cmd := range astDoc.Commands.Commands {
			outcomes = append(outcomes, e.runOne(cmd))
		}
	}
	return outcomes, nil
}

func (e *Executor) runOne(cmd ucl.Command) Outcome {
	switch c := cmd.(type) {
	case ucl.TxBeginCommand:
		id := e.Alloc.NextTransactionID()
		e.tx = engine.Begin(id, e.Doc, e.Alloc, e.TxTimeout)
		e.tx.Name = c.Name
		return Outcome{Description: "tx_begin"}
	case ucl.TxCommitCommand:
		if e.tx == nil {
			return Outcome{Description: "tx_commit", Err: types.NewError(types.ErrNotActive, "no active transaction")}
		}
		err := e.tx.Commit()
		e.tx = nil
		return Outcome{Description: "tx_commit", Err: err}
	case ucl.TxRollbackCommand:
		if e.tx == nil {
			return Outcome{Description: "tx_rollback", Err: types.NewError(types.ErrNotActive, "no active transaction")}
		}
		err := e.tx.Rollback()
		e.tx = nil
		return Outcome{Description: "tx_rollback", Err: err}
	case ucl.SnapshotCommand:
		return e.runSnapshot(c)
	default:
		return e.runEngineCommand(cmd)
	}
}

func (e *Executor) runEngineCommand(cmd ucl.Command) Outcome {
	lc := &lowerContext{doc: e.activeDoc(), aliases: e.Aliases}
	lowered, err := Lower(cmd, lc)
	if err != nil {
		return Outcome{Err: err}
	}
	if e.tx != nil {
		result, err := e.tx.Apply(lowered)
		return Outcome{Description: lowered.Description(), Result: result, Err: err}
	}
	ctx := &engine.OpContext{Doc: e.Doc, Allocator: e.Alloc}
	result := lowered.Execute(ctx)
	if !result.Success {
		e.Doc.RebuildIndices()
	}
	return Outcome{Description: lowered.Description(), Result: result}
}

func (e *Executor) activeDoc() *ucm.Document {
	if e.tx != nil {
		return e.tx.Document()
	}
	return e.Doc
}

func (e *Executor) runSnapshot(c ucl.SnapshotCommand) Outcome {
	switch c.Action {
	case "create":
		_, err := e.Snapshots.Create(c.Name, e.activeDoc(), c.Description)
		return Outcome{Description: "snapshot create " + c.Name, Err: err}
	case "restore":
		restored, err := e.Snapshots.Restore(c.Name)
		if err != nil {
			return Outcome{Description: "snapshot restore " + c.Name, Err: err}
		}
		*e.Doc = *restored
		e.Alloc.Reset()
		var highest uint64
		for id := range e.Doc.Blocks {
			suffix := strings.TrimPrefix(string(id), types.PrefixBlock)
			if n, err := strconv.ParseUint(suffix, 10, 64); err == nil && n > highest {
				highest = n
			}
		}
		e.Alloc.Advance(highest)
		return Outcome{Description: "snapshot restore " + c.Name}
	case "delete":
		return Outcome{Description: "snapshot delete " + c.Name, Err: e.Snapshots.Delete(c.Name)}
	default:
		return Outcome{Err: types.NewError(types.ErrUnknownCommand, "unknown snapshot action %q", c.Action)}
	}
}

// applyDeclarative materializes BLOCKS declarations as Append
// operations under the document root (tagged with their declared id
// as a label for STRUCTURE to resolve), then applies STRUCTURE's
// parent->children layout via Move.
func (e *Executor) applyDeclarative(astDoc *ucl.Document) ([]Outcome, error) {
	var outcomes []Outcome
	declaredLabel := make(map[string]types.Id)

	if astDoc.Blocks != nil {
		for _, decl := range astDoc.Blocks.Decls {
			contentValue, err := contentFromLiteral(decl.ContentType, decl.Content)
			if err != nil {
				return outcomes, err
			}
			md := metadataFromProps(decl.Props)
			if md.Label == "" {
				md.Label = decl.ID
			}
			appendCmd := &engine.Append{Parent: e.Doc.Root, Content: contentValue, Metadata: md}
			ctx := &engine.OpContext{Doc: e.activeDoc(), Allocator: e.Alloc}
			result := appendCmd.Execute(ctx)
			outcomes = append(outcomes, Outcome{Description: appendCmd.Description(), Result: result})
			if !result.Success {
				return outcomes, types.NewError(types.ErrInvalidContent, "failed to materialize block %q", decl.ID)
			}
			declaredLabel[decl.ID] = appendCmd.NewID()
		}
	}

	if astDoc.Structure != nil {
		for _, entry := range astDoc.Structure.Entries {
			parentID, err := e.resolveDeclared(declaredLabel, entry.ID)
			if err != nil {
				return outcomes, err
			}
			for _, childRef := range entry.Children {
				childID, err := e.resolveDeclared(declaredLabel, childRef)
				if err != nil {
					return outcomes, err
				}
				mv := &engine.Move{Target: childID, Destination: engine.MoveDestination{Parent: parentID}}
				ctx := &engine.OpContext{Doc: e.activeDoc(), Allocator: e.Alloc}
				result := mv.Execute(ctx)
				outcomes = append(outcomes, Outcome{Description: mv.Description(), Result: result})
			}
		}
	}
	return outcomes, nil
}

func (e *Executor) resolveDeclared(declared map[string]types.Id, ref string) (types.Id, error) {
	if id, ok := declared[ref]; ok {
		return id, nil
	}
	return ResolveID(e.activeDoc(), e.Aliases, ref)
}
