package agent

import (
	"errors"
	"testing"
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/traversal"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

func buildDoc(t *testing.T) *ucm.Document {
	t.Helper()
	doc := ucm.New("doc_1")
	add := func(id, parent types.Id, role ucm.SemanticRole) {
		doc.Blocks[id] = &ucm.Block{
			ID:       id,
			Content:  content.TextContent{Text: id.String()},
			Metadata: ucm.Metadata{SemanticRole: role, CreatedAt: time.Now(), ModifiedAt: time.Now()},
		}
		doc.Structure[parent] = append(doc.Structure[parent], id)
		doc.Structure[id] = []types.Id{}
	}
	add("blk_a", types.RootID, ucm.RoleHeading1)
	add("blk_b", types.RootID, ucm.RoleParagraph)
	doc.RebuildIndices()
	return doc
}

func TestGotoAndBack(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	if err := s.Goto("blk_b"); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	if s.Cursor != "blk_b" {
		t.Fatalf("cursor = %s, want blk_b", s.Cursor)
	}

	if err := s.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if s.Cursor != "blk_a" {
		t.Fatalf("cursor after Back = %s, want blk_a", s.Cursor)
	}
}

func TestBackWithEmptyHistoryErrors(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	err := s.Back()
	var ucpErr *types.Error
	if !errors.As(err, &ucpErr) || ucpErr.Code != types.ErrHistoryEmpty {
		t.Fatalf("got %v, want ErrHistoryEmpty", err)
	}
}

func TestGotoUnknownBlockErrors(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	err := s.Goto("blk_missing")
	var ucpErr *types.Error
	if !errors.As(err, &ucpErr) || ucpErr.Code != types.ErrBlockNotFound {
		t.Fatalf("got %v, want ErrBlockNotFound", err)
	}
}

func TestMaxOpsBreakerRejectsFurtherCommands(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{MaxOps: 1})

	if err := s.Goto("blk_b"); err != nil {
		t.Fatalf("first Goto should succeed: %v", err)
	}
	err := s.Goto("blk_a")
	var ucpErr *types.Error
	if !errors.As(err, &ucpErr) || ucpErr.Code != types.ErrBudgetExceeded {
		t.Fatalf("got %v, want ErrBudgetExceeded after op budget exhausted", err)
	}
}

func TestExpandReturnsReachableNodes(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, types.RootID, Breakers{})

	res, err := s.Expand(traversal.BreadthFirst, 2)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(res.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3 (root, blk_a, blk_b)", len(res.Nodes))
	}
}

func TestPathFindsShortestRoute(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	path, err := s.Path("blk_b")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	want := []types.Id{"blk_a", types.RootID, "blk_b"}
	if len(path) != len(want) {
		t.Fatalf("got %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %s, want %s", i, path[i], want[i])
		}
	}
}

func TestPathToUnreachableTargetErrors(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	_, err := s.Path("blk_missing")
	var ucpErr *types.Error
	if !errors.As(err, &ucpErr) || ucpErr.Code != types.ErrPathNotFound {
		t.Fatalf("got %v, want ErrPathNotFound", err)
	}
}

func TestSearchWithoutRAGProviderErrors(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	_, err := s.Search("anything", 5)
	var ucpErr *types.Error
	if !errors.As(err, &ucpErr) || ucpErr.Code != types.ErrNotConfigured {
		t.Fatalf("got %v, want ErrNotConfigured", err)
	}
}

type stubRAG struct{ ids []types.Id }

func (s stubRAG) SemanticSearch(query string, k int) ([]types.Id, error) { return s.ids, nil }

func TestSearchDelegatesToRAGProvider(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})
	s.RAG = stubRAG{ids: []types.Id{"blk_b"}}

	ids, err := s.Search("query", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ids) != 1 || ids[0] != "blk_b" {
		t.Fatalf("got %v, want [blk_b]", ids)
	}
}

func TestFindMatchesPredicate(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	ids, err := s.Find(func(b *ucm.Block) bool { return b.Metadata.SemanticRole == ucm.RoleHeading1 })
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(ids) != 1 || ids[0] != "blk_a" {
		t.Fatalf("got %v, want [blk_a]", ids)
	}
}

func TestViewSetsModeAndPreview(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	if err := s.View(ViewPreview, 3); err != nil {
		t.Fatalf("View: %v", err)
	}
	if s.ViewMode != ViewPreview || s.PreviewN != 3 {
		t.Errorf("got mode=%v previewN=%d, want Preview/3", s.ViewMode, s.PreviewN)
	}
}

func TestLogRecordsEveryCommand(t *testing.T) {
	doc := buildDoc(t)
	s := New(doc, "blk_a", Breakers{})

	_ = s.Goto("blk_b")
	_ = s.Back()

	log := s.Log()
	if len(log) != 2 {
		t.Fatalf("got %d log entries, want 2", len(log))
	}
	if log[0].Command != "GOTO" || log[1].Command != "BACK" {
		t.Errorf("got commands %s, %s, want GOTO, BACK", log[0].Command, log[1].Command)
	}
}
