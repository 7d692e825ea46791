package exec

import (
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

func docWithLabeledBlock(t *testing.T) *ucm.Document {
	t.Helper()
	d := ucm.New("doc_1")
	d.Blocks["blk_a"] = &ucm.Block{
		ID:       "blk_a",
		Content:  content.TextContent{Text: "a"},
		Metadata: ucm.Metadata{Label: "intro"},
		Children: []types.Id{},
	}
	d.Structure[types.RootID] = append(d.Structure[types.RootID], "blk_a")
	d.Structure["blk_a"] = []types.Id{}
	d.RebuildIndices()
	return d
}

type stubAliases struct {
	expanded map[string]types.Id
}

func (s stubAliases) Expand(alias string) (types.Id, bool) {
	id, ok := s.expanded[alias]
	return id, ok
}

func TestResolveIDByLiteral(t *testing.T) {
	doc := docWithLabeledBlock(t)
	id, err := ResolveID(doc, NoAliases, "blk_a")
	if err != nil || id != "blk_a" {
		t.Errorf("ResolveID = %v, %v, want blk_a, nil", id, err)
	}
}

func TestResolveIDByLabel(t *testing.T) {
	doc := docWithLabeledBlock(t)
	id, err := ResolveID(doc, NoAliases, "intro")
	if err != nil || id != "blk_a" {
		t.Errorf("ResolveID = %v, %v, want blk_a, nil", id, err)
	}
}

func TestResolveIDByAliasRef(t *testing.T) {
	doc := docWithLabeledBlock(t)
	aliases := stubAliases{expanded: map[string]types.Id{"1": "blk_a"}}
	id, err := ResolveID(doc, aliases, "@1")
	if err != nil || id != "blk_a" {
		t.Errorf("ResolveID = %v, %v, want blk_a, nil", id, err)
	}
}

func TestResolveIDByAtLabelFallsBackToLabelIndex(t *testing.T) {
	doc := docWithLabeledBlock(t)
	id, err := ResolveID(doc, NoAliases, "@intro")
	if err != nil || id != "blk_a" {
		t.Errorf("ResolveID = %v, %v, want blk_a, nil", id, err)
	}
}

func TestResolveIDUnknownFails(t *testing.T) {
	doc := docWithLabeledBlock(t)
	if _, err := ResolveID(doc, NoAliases, "blk_missing"); err == nil {
		t.Error("expected error for unresolvable reference")
	}
}

func TestResolveIDEmptyTokenFails(t *testing.T) {
	doc := docWithLabeledBlock(t)
	if _, err := ResolveID(doc, NoAliases, ""); err == nil {
		t.Error("expected error for empty reference")
	}
}
