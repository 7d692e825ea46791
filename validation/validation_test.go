package validation

import (
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

func validDoc(t *testing.T) *ucm.Document {
	t.Helper()
	d := ucm.New("doc_1")
	d.Blocks["blk_a"] = &ucm.Block{
		ID:       "blk_a",
		Content:  content.TextContent{Text: "Title"},
		Metadata: ucm.Metadata{Label: "title", SemanticRole: ucm.RoleTitle},
		Children: []types.Id{},
	}
	d.Structure[types.RootID] = append(d.Structure[types.RootID], "blk_a")
	d.Structure["blk_a"] = []types.Id{}
	d.RebuildIndices()
	return d
}

func TestResultValidIgnoresWarningsAndInfo(t *testing.T) {
	r := Result{Issues: []Issue{
		{Severity: SeverityWarning},
		{Severity: SeverityInfo},
	}}
	if !r.Valid() {
		t.Error("Result with only warnings/info should be Valid")
	}
	r.Issues = append(r.Issues, Issue{Severity: SeverityError})
	if r.Valid() {
		t.Error("Result with an error issue should not be Valid")
	}
}

func TestCheckStructuralDetectsCycle(t *testing.T) {
	d := validDoc(t)
	d.Structure["blk_a"] = []types.Id{types.RootID}
	var r Result
	checkStructural(d, &r)
	found := false
	for _, i := range r.Issues {
		if i.Code == types.ErrCycleDetected {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a cycle issue, got %+v", r.Issues)
	}
}

func TestCheckStructuralDetectsOrphanAndMissingChild(t *testing.T) {
	d := validDoc(t)
	d.Blocks["blk_orphan"] = &ucm.Block{ID: "blk_orphan", Content: content.TextContent{Text: "x"}, Children: []types.Id{}}
	d.Structure["blk_a"] = append(d.Structure["blk_a"], "blk_missing")

	var r Result
	checkStructural(d, &r)
	var codes []types.ErrorCode
	for _, i := range r.Issues {
		codes = append(codes, i.Code)
	}
	if !containsCode(codes, types.ErrOrphanedBlock) {
		t.Errorf("expected orphaned block issue, got %v", codes)
	}
	if !containsCode(codes, types.ErrBlockNotFound) {
		t.Errorf("expected missing child issue, got %v", codes)
	}
}

func TestCheckStructuralDetectsDuplicateChild(t *testing.T) {
	d := validDoc(t)
	d.Structure[types.RootID] = []types.Id{"blk_a", "blk_a"}

	var r Result
	checkStructural(d, &r)
	found := false
	for _, i := range r.Issues {
		if i.Code == types.ErrDuplicateChild {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate child issue, got %+v", r.Issues)
	}
}

func TestCheckReferentialDetectsLabelCollision(t *testing.T) {
	d := validDoc(t)
	d.Blocks["blk_b"] = &ucm.Block{ID: "blk_b", Content: content.TextContent{Text: "b"}, Metadata: ucm.Metadata{Label: "title"}, Children: []types.Id{}}
	d.Structure[types.RootID] = append(d.Structure[types.RootID], "blk_b")
	d.Structure["blk_b"] = []types.Id{}

	var r Result
	checkReferential(d, &r)
	found := false
	for _, i := range r.Issues {
		if i.Code == types.ErrLabelCollision {
			found = true
		}
	}
	if !found {
		t.Errorf("expected label collision issue, got %+v", r.Issues)
	}
}

func TestCheckReferentialDetectsMissingEdgeTarget(t *testing.T) {
	d := validDoc(t)
	d.Blocks["blk_a"].Edges = []ucm.Edge{{Kind: "references", Target: "blk_missing"}}

	var r Result
	checkReferential(d, &r)
	found := false
	for _, i := range r.Issues {
		if i.Code == types.ErrEdgeNotFound {
			found = true
		}
	}
	if !found {
		t.Errorf("expected edge-not-found issue, got %+v", r.Issues)
	}
}

func TestCheckResourceDetectsLimitViolations(t *testing.T) {
	d := validDoc(t)
	d.Limits.MaxBlocks = 1
	d.Blocks["blk_b"] = &ucm.Block{ID: "blk_b", Content: content.TextContent{Text: "b"}, Children: []types.Id{}}
	d.Structure[types.RootID] = append(d.Structure[types.RootID], "blk_b")
	d.Structure["blk_b"] = []types.Id{}
	d.RebuildIndices()

	var r Result
	checkResource(d, &r)
	found := false
	for _, i := range r.Issues {
		if i.Code == types.ErrBlockCountExceeded {
			found = true
		}
	}
	if !found {
		t.Errorf("expected block count exceeded issue, got %+v", r.Issues)
	}
}

func TestCheckResourceDetectsOversizedBlock(t *testing.T) {
	d := validDoc(t)
	d.Limits.MaxBlockSize = 1
	var r Result
	checkResource(d, &r)
	found := false
	for _, i := range r.Issues {
		if i.Code == types.ErrBlockSizeExceeded {
			found = true
		}
	}
	if !found {
		t.Errorf("expected block size exceeded issue, got %+v", r.Issues)
	}
}

func TestDefaultSemanticRulesFlagMissingTitle(t *testing.T) {
	d := ucm.New("doc_1")
	var r Result
	ruleHasTitleRole(d, &r)
	if len(r.Issues) != 1 || r.Issues[0].Severity != SeverityInfo {
		t.Errorf("issues = %+v", r.Issues)
	}
}

func TestDefaultSemanticRulesFlagCodeWithoutLanguage(t *testing.T) {
	d := validDoc(t)
	d.Blocks["blk_code"] = &ucm.Block{ID: "blk_code", Content: content.CodeContent{Source: "print(1)"}, Children: []types.Id{}}
	d.Structure[types.RootID] = append(d.Structure[types.RootID], "blk_code")
	d.Structure["blk_code"] = []types.Id{}

	var r Result
	ruleCodeBlocksDeclareLanguage(d, &r)
	if len(r.Issues) != 1 || r.Issues[0].Severity != SeverityWarning {
		t.Errorf("issues = %+v", r.Issues)
	}
}

func TestDefaultSemanticRulesFlagInvalidLabelFormat(t *testing.T) {
	d := validDoc(t)
	d.Blocks["blk_a"].Metadata.Label = "bad label!"

	var r Result
	ruleLabelFormat(d, &r)
	if len(r.Issues) != 1 || r.Issues[0].Severity != SeverityError {
		t.Errorf("issues = %+v", r.Issues)
	}
}

func TestPipelineValidateAggregatesAllChecks(t *testing.T) {
	p := NewPipeline()
	d := validDoc(t)
	result := p.Validate(d)
	if !result.Valid() {
		t.Errorf("expected a valid document, got issues: %+v", result.Issues)
	}
}

func TestPipelineValidateCatchesStructuralErrorEvenWithNoSemanticRules(t *testing.T) {
	p := &Pipeline{}
	d := validDoc(t)
	d.Structure[types.RootID] = append(d.Structure[types.RootID], "blk_missing")
	result := p.Validate(d)
	if result.Valid() {
		t.Error("expected an invalid result due to missing referenced child")
	}
}

func containsCode(codes []types.ErrorCode, want types.ErrorCode) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}
