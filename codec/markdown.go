package codec

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*\S)\s*$`)
	fenceRe   = regexp.MustCompile("^```\\s*([A-Za-z0-9_+-]*)\\s*$")
	listRe    = regexp.MustCompile(`^(\s*)([-*]|\d+\.)\s+(.*\S)\s*$`)
)

// markdownCodec owns heading-level-to-role mapping, list flattening,
// and fenced-code language extraction for the markdown source format,
// per spec §6.
type markdownCodec struct{}

func (markdownCodec) Name() string { return "markdown" }

// idGen mints sequential scratch ids for blocks built outside a live
// allocator, e.g. during a standalone Parse call.
type idGen struct{ n int }

func (g *idGen) NextBlockID() types.Id {
	g.n++
	return types.Id(fmt.Sprintf("%s%d", types.PrefixBlock, g.n))
}

// Parse builds a fresh Document from markdown source, per spec §6's
// codec boundary: the result satisfies §3's structural invariants or
// Parse fails.
func (c markdownCodec) Parse(source string) (*ucm.Document, error) {
	doc := ucm.New("doc_1")
	alloc := &idGen{}
	ids, err := c.ParseInto(doc, alloc, doc.Root, source, 0)
	if err != nil {
		return nil, err
	}
	_ = ids
	doc.RebuildIndices()
	return doc, nil
}

// ParseInto implements engine.SectionCodec: it builds a detached
// subtree from payload under parent, using alloc to mint ids, and
// returns every id it created (not including parent itself).
func (markdownCodec) ParseInto(doc *ucm.Document, alloc interface{ NextBlockID() types.Id }, parent types.Id, payload string, baseHeadingLevel int) ([]types.Id, error) {
	lines := strings.Split(payload, "\n")
	var created []types.Id

	// stack[i] holds the block id that owns heading depth i (1-indexed
	// relative to baseHeadingLevel); stack[0] is always parent.
	stack := []types.Id{parent}

	attach := func(ownerDepth int, id types.Id, content content.Content, role ucm.SemanticRole, tags ...string) {
		for len(stack) > ownerDepth+1 {
			stack = stack[:len(stack)-1]
		}
		owner := stack[len(stack)-1]
		now := time.Now().UTC()
		block := &ucm.Block{
			ID:      id,
			Content: content,
			Metadata: ucm.Metadata{
				SemanticRole: role, Tags: tags,
				CreatedAt: now, ModifiedAt: now,
			},
			Children: []types.Id{},
		}
		doc.Blocks[id] = block
		doc.Structure[id] = []types.Id{}
		doc.Structure[owner] = append(doc.Structure[owner], id)
		if ownerBlock, ok := doc.Blocks[owner]; ok {
			ownerBlock.Children = append(ownerBlock.Children, id)
		}
		created = append(created, id)
	}

	i := 0
	for i < len(lines) {
		line := lines[i]

		if strings.TrimSpace(line) == "" {
			i++
			continue
		}

		if m := fenceRe.FindStringSubmatch(line); m != nil {
			lang := m[1]
			var body []string
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) != "```" {
				body = append(body, lines[i])
				i++
			}
			i++ // consume closing fence
			depth := len(stack) - 1
			attach(depth, alloc.NextBlockID(), content.CodeContent{Language: lang, Source: strings.Join(body, "\n")}, ucm.RoleParagraph, "code")
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			level := len(m[1]) + baseHeadingLevel
			role := headingRole(level)
			id := alloc.NextBlockID()
			attach(level-1, id, content.MarkdownContent{Text: m[2]}, role)
			stack = append(stack, id)
			i++
			continue
		}

		if m := listRe.FindStringSubmatch(line); m != nil {
			depth := len(stack) - 1
			attach(depth, alloc.NextBlockID(), content.TextContent{Text: m[3]}, ucm.RoleParagraph, "list_item")
			i++
			continue
		}

		// Paragraph: consume until a blank line or a recognized construct.
		var para []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" &&
			headingRe.FindStringSubmatch(lines[i]) == nil &&
			fenceRe.FindStringSubmatch(lines[i]) == nil &&
			listRe.FindStringSubmatch(lines[i]) == nil {
			para = append(para, lines[i])
			i++
		}
		depth := len(stack) - 1
		attach(depth, alloc.NextBlockID(), content.MarkdownContent{Text: strings.Join(para, "\n")}, ucm.RoleParagraph)
	}

	return created, nil
}

func headingRole(level int) ucm.SemanticRole {
	switch {
	case level <= 1:
		return ucm.RoleHeading1
	case level == 2:
		return ucm.RoleHeading2
	default:
		return ucm.RoleHeading3
	}
}

// Render is a right-inverse of Parse on the subset it produces:
// headings, fenced code, list items, and paragraphs.
func (c markdownCodec) Render(doc *ucm.Document) (string, error) {
	var b strings.Builder
	c.renderChildren(doc, doc.Root, &b)
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func (c markdownCodec) renderChildren(doc *ucm.Document, id types.Id, b *strings.Builder) {
	for _, childID := range doc.Children(id) {
		block, ok := doc.GetBlock(childID)
		if !ok {
			continue
		}
		c.renderBlock(doc, block, b)
		c.renderChildren(doc, childID, b)
	}
}

func (c markdownCodec) renderBlock(doc *ucm.Document, block *ucm.Block, b *strings.Builder) {
	switch block.Metadata.SemanticRole {
	case ucm.RoleHeading1:
		b.WriteString("# " + block.Content.Canonical() + "\n\n")
		return
	case ucm.RoleHeading2:
		b.WriteString("## " + block.Content.Canonical() + "\n\n")
		return
	case ucm.RoleHeading3:
		b.WriteString("### " + block.Content.Canonical() + "\n\n")
		return
	}
	if block.Metadata.HasTag("code") {
		b.WriteString(block.Content.Canonical() + "\n\n")
		return
	}
	if block.Metadata.HasTag("list_item") {
		b.WriteString("- " + block.Content.Canonical() + "\n")
		return
	}
	b.WriteString(block.Content.Canonical() + "\n\n")
}
