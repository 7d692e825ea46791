package engine

import (
	"testing"
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/idalloc"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// buildDoc constructs root -> a -> {a1, a2}, root -> b for op tests.
func buildDoc(t *testing.T) *ucm.Document {
	t.Helper()
	d := ucm.New("doc_1")
	add := func(id, parent types.Id, label string) {
		d.Blocks[id] = &ucm.Block{
			ID:       id,
			Content:  content.TextContent{Text: id.String()},
			Metadata: ucm.Metadata{Label: label, CreatedAt: time.Now(), ModifiedAt: time.Now()},
			Children: []types.Id{},
		}
		d.Structure[parent] = append(d.Structure[parent], id)
		d.Structure[id] = []types.Id{}
	}
	add("blk_a", types.RootID, "a")
	add("blk_a1", "blk_a", "")
	add("blk_a2", "blk_a", "")
	add("blk_b", types.RootID, "b")
	d.RebuildIndices()
	return d
}

func newCtx(doc *ucm.Document) *OpContext {
	return &OpContext{Doc: doc, Allocator: idalloc.New()}
}
