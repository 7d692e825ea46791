package codec

import (
	"strings"
	"testing"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
)

func TestMarkdownParseHeadingsAndParagraphs(t *testing.T) {
	src := "# Title\n\nIntro paragraph.\n\n## Section\n\nBody text.\n"
	doc, err := Get("markdown")
	if err != nil {
		t.Fatalf("Get(markdown): %v", err)
	}
	d, err := doc.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// everything after "# Title" nests under it until a same-or-higher
	// level heading closes it; there is no such heading here, so the
	// whole document is one top-level block.
	top := d.Children(d.Root)
	if len(top) != 1 {
		t.Fatalf("got %d top-level blocks, want 1 (title)", len(top))
	}
	titleBlock, _ := d.GetBlock(top[0])
	if titleBlock.Metadata.SemanticRole != "heading1" {
		t.Errorf("first block role = %q, want heading1", titleBlock.Metadata.SemanticRole)
	}

	children := d.Children(top[0])
	if len(children) != 2 {
		t.Fatalf("title has %d children, want 2 (intro paragraph, section heading)", len(children))
	}
	introBlock, _ := d.GetBlock(children[0])
	if introBlock.Content.Canonical() != "Intro paragraph." {
		t.Errorf("intro text = %q", introBlock.Content.Canonical())
	}

	sectionBlock, _ := d.GetBlock(children[1])
	if sectionBlock.Metadata.SemanticRole != "heading2" {
		t.Errorf("section role = %q, want heading2", sectionBlock.Metadata.SemanticRole)
	}
	sectionChildren := d.Children(children[1])
	if len(sectionChildren) != 1 {
		t.Fatalf("section has %d children, want 1 (body)", len(sectionChildren))
	}
}

func TestMarkdownParseFencedCode(t *testing.T) {
	src := "```go\nfmt.Println(\"hi\")\n```\n"
	codec, _ := Get("markdown")
	d, err := codec.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	top := d.Children(d.Root)
	if len(top) != 1 {
		t.Fatalf("got %d blocks, want 1", len(top))
	}
	block, _ := d.GetBlock(top[0])
	code, ok := block.Content.(content.CodeContent)
	if !ok {
		t.Fatalf("content type = %T, want CodeContent", block.Content)
	}
	if code.Language != "go" || code.Source != `fmt.Println("hi")` {
		t.Errorf("got language=%q source=%q", code.Language, code.Source)
	}
}

func TestMarkdownParseListItems(t *testing.T) {
	src := "- first\n- second\n"
	codec, _ := Get("markdown")
	d, err := codec.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	top := d.Children(d.Root)
	if len(top) != 2 {
		t.Fatalf("got %d blocks, want 2", len(top))
	}
	for _, id := range top {
		b, _ := d.GetBlock(id)
		if !b.Metadata.HasTag("list_item") {
			t.Errorf("block %s missing list_item tag", id)
		}
	}
}

func TestMarkdownRenderRoundTrip(t *testing.T) {
	src := "# Title\n\nIntro paragraph.\n"
	codec, _ := Get("markdown")
	d, err := codec.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := codec.Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "# Title") || !strings.Contains(out, "Intro paragraph.") {
		t.Errorf("rendered output missing expected content: %q", out)
	}
}

func TestPlaintextRoundTrip(t *testing.T) {
	src := "First paragraph.\n\nSecond paragraph.\n"
	codec, err := Get("plaintext")
	if err != nil {
		t.Fatalf("Get(plaintext): %v", err)
	}
	d, err := codec.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	top := d.Children(d.Root)
	if len(top) != 2 {
		t.Fatalf("got %d blocks, want 2", len(top))
	}

	out, err := codec.Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "First paragraph.") || !strings.Contains(out, "Second paragraph.") {
		t.Errorf("rendered output missing expected content: %q", out)
	}
}

func TestGetUnknownCodec(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown codec name")
	}
}

func TestListIncludesBuiltins(t *testing.T) {
	names := List()
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	if !have["markdown"] || !have["plaintext"] {
		t.Errorf("List() = %v, want markdown and plaintext registered", names)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate codec registration")
		}
	}()
	Register(markdownCodec{})
}
