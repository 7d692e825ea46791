package exec

import (
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/idalloc"
	"github.com/Antonio7098/unified-content-protocol-sub002/snapshot"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucl"
)

func newExecutor(t *testing.T) *Executor {
	t.Helper()
	doc := docWithLabeledBlock(t)
	return NewExecutor(doc, idalloc.New(), snapshot.NewManager(5))
}

func TestExecutorRunsDeclarativeStructureAndBlocks(t *testing.T) {
	e := newExecutor(t)
	astDoc, err := ucl.Parse(`STRUCTURE
blk_a: [greeting]
BLOCKS
text #greeting :: "hello"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outcomes, err := e.Run(astDoc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, o := range outcomes {
		if o.Err != nil {
			t.Errorf("outcome error: %v", o.Err)
		}
	}
	children := e.Doc.Children("blk_a")
	if len(children) != 1 {
		t.Fatalf("blk_a children = %v, want 1", children)
	}
}

func TestExecutorRunsEngineCommands(t *testing.T) {
	e := newExecutor(t)
	astDoc, err := ucl.Parse(`COMMANDS
EDIT blk_a label = "renamed"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outcomes, err := e.Run(astDoc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 1 || !outcomes[0].Result.Success {
		t.Fatalf("outcomes = %+v", outcomes)
	}
	block, _ := e.Doc.GetBlock("blk_a")
	if block.Metadata.Label != "renamed" {
		t.Errorf("label = %q, want renamed", block.Metadata.Label)
	}
}

func TestExecutorTransactionSpansMultipleCommands(t *testing.T) {
	e := newExecutor(t)
	astDoc, err := ucl.Parse(`COMMANDS
TX_BEGIN "t1"
EDIT blk_a label = "in-tx"
TX_COMMIT
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outcomes, err := e.Run(astDoc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("outcome error: %v", o.Err)
		}
	}
	block, _ := e.Doc.GetBlock("blk_a")
	if block.Metadata.Label != "in-tx" {
		t.Errorf("label = %q, want in-tx after commit", block.Metadata.Label)
	}
}

func TestExecutorTxCommitWithoutBeginErrors(t *testing.T) {
	e := newExecutor(t)
	astDoc, err := ucl.Parse("COMMANDS\nTX_COMMIT\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outcomes, err := e.Run(astDoc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcomes[0].Err == nil {
		t.Error("expected error committing with no active transaction")
	}
}

func TestExecutorSnapshotCreateAndRestore(t *testing.T) {
	e := newExecutor(t)
	astDoc, err := ucl.Parse(`COMMANDS
SNAPSHOT create "before"
EDIT blk_a label = "mutated"
SNAPSHOT restore "before"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	outcomes, err := e.Run(astDoc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("outcome error: %v", o.Err)
		}
	}
	block, _ := e.Doc.GetBlock("blk_a")
	if block.Metadata.Label != "intro" {
		t.Errorf("label = %q, want intro restored from snapshot", block.Metadata.Label)
	}
}
