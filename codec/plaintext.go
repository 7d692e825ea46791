package codec

import (
	"strings"
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// plaintextCodec treats blank-line-separated chunks as paragraph
// blocks with no structural nesting, grounded on the teacher's
// PlainText format (title-then-blank-line-then-content shape, with no
// heading hierarchy to recover).
type plaintextCodec struct{}

func (plaintextCodec) Name() string { return "plaintext" }

func (c plaintextCodec) Parse(source string) (*ucm.Document, error) {
	doc := ucm.New("doc_1")
	alloc := &idGen{}
	if _, err := c.ParseInto(doc, alloc, doc.Root, source, 0); err != nil {
		return nil, err
	}
	doc.RebuildIndices()
	return doc, nil
}

func (plaintextCodec) ParseInto(doc *ucm.Document, alloc interface{ NextBlockID() types.Id }, parent types.Id, payload string, _ int) ([]types.Id, error) {
	var created []types.Id
	for _, chunk := range strings.Split(payload, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		id := alloc.NextBlockID()
		now := time.Now().UTC()
		block := &ucm.Block{
			ID:       id,
			Content:  content.TextContent{Text: chunk},
			Metadata: ucm.Metadata{SemanticRole: ucm.RoleParagraph, CreatedAt: now, ModifiedAt: now},
			Children: []types.Id{},
		}
		doc.Blocks[id] = block
		doc.Structure[id] = []types.Id{}
		doc.Structure[parent] = append(doc.Structure[parent], id)
		if parentBlock, ok := doc.Blocks[parent]; ok {
			parentBlock.Children = append(parentBlock.Children, id)
		}
		created = append(created, id)
	}
	return created, nil
}

func (plaintextCodec) Render(doc *ucm.Document) (string, error) {
	var chunks []string
	for _, id := range doc.Children(doc.Root) {
		block, ok := doc.GetBlock(id)
		if !ok || block.Content == nil {
			continue
		}
		chunks = append(chunks, block.Content.Canonical())
	}
	return strings.Join(chunks, "\n\n") + "\n", nil
}
