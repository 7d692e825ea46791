package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// Operator is one of the value operators from spec §4.6.
type Operator string

const (
	OpSet Operator = "set"
	OpAdd Operator = "add"
	OpSub Operator = "sub"
	OpInc Operator = "inc"
	OpDec Operator = "dec"
)

// Edit applies Operator to the value addressed by Path on Target,
// per spec §4.6. Path's first segment selects which part of the block
// is addressed: "label", "summary", "tags", "role", "custom" (which
// descends into Metadata.Custom), or "content" (which dispatches on
// the block's content variant, per §4.2's variant-specific editing
// operations). Condition, when set, gates execution on the pre-edit
// block; ucl/exec supplies it from a parsed condition tree.
type Edit struct {
	Target    types.Id
	Path      string
	Operator  Operator
	Value     interface{}
	Condition func(*ucm.Block) bool
}

func (e *Edit) Description() string {
	return fmt.Sprintf("%s %s on %s at %s", e.Operator, e.Target, e.Target, e.Path)
}

func (e *Edit) Validate(ctx *OpContext) []Message {
	var msgs []Message
	if _, ok := ctx.Doc.GetBlock(e.Target); !ok {
		msgs = append(msgs, errMsg(types.ErrBlockNotFound, "block %s does not exist", e.Target))
		return msgs
	}
	if e.Path == "" {
		msgs = append(msgs, errMsg(types.ErrInvalidPath, "empty edit path"))
	}
	switch e.Operator {
	case OpSet, OpAdd, OpSub, OpInc, OpDec:
	default:
		msgs = append(msgs, errMsg(types.ErrInvalidOperator, "unknown operator %q", e.Operator))
	}
	return msgs
}

func (e *Edit) Execute(ctx *OpContext) *Result {
	return runValidated(e, ctx, func() ([]types.Id, []Message) {
		block, _ := ctx.Doc.GetBlock(e.Target)
		if e.Condition != nil && !e.Condition(block) {
			return nil, nil
		}
		if ctx.DryRun {
			return []types.Id{e.Target}, nil
		}

		head, rest, _ := strings.Cut(e.Path, ".")
		var err error
		switch head {
		case "label":
			err = e.editLabel(ctx, block)
		case "summary":
			block.Metadata.Summary, err = e.applyString(block.Metadata.Summary)
		case "tags":
			err = e.editTags(block, rest)
		case "role":
			var s string
			s, err = e.applyString(string(block.Metadata.SemanticRole))
			block.Metadata.SemanticRole = ucm.SemanticRole(s)
		case "custom":
			err = e.editCustom(block, rest)
		case "content":
			err = e.editContent(block, rest)
		default:
			err = fmt.Errorf("unknown path root %q", head)
		}
		if err != nil {
			return nil, []Message{errMsg(types.ErrInvalidPath, "%v", err)}
		}

		block.Metadata.ModifiedAt = time.Now().UTC()
		ctx.Doc.RebuildIndices()
		return []types.Id{e.Target}, nil
	})
}

func (e *Edit) applyString(cur string) (string, error) {
	s, ok := e.Value.(string)
	if !ok {
		return cur, fmt.Errorf("value must be a string, got %T", e.Value)
	}
	switch e.Operator {
	case OpSet:
		return s, nil
	case OpAdd:
		return cur + s, nil
	default:
		return cur, fmt.Errorf("operator %q not supported on string fields", e.Operator)
	}
}

func (e *Edit) editLabel(ctx *OpContext, block *ucm.Block) error {
	s, ok := e.Value.(string)
	if !ok || e.Operator != OpSet {
		return fmt.Errorf("label only supports set with a string value")
	}
	if s != "" {
		if existing, found := ctx.Doc.FindByLabel(s); found && existing != block.ID {
			return fmt.Errorf("label %q already in use", s)
		}
	}
	block.Metadata.Label = s
	return nil
}

func (e *Edit) editTags(block *ucm.Block, rest string) error {
	if rest == "" {
		if tags, ok := e.Value.([]string); ok && e.Operator == OpSet {
			block.Metadata.Tags = tags
			return nil
		}
		if e.Operator == OpSet {
			return fmt.Errorf("tags only supports set with a []string value")
		}
	}
	tag, ok := e.Value.(string)
	if !ok {
		return fmt.Errorf("tag value must be a string")
	}
	switch e.Operator {
	case OpAdd:
		if !block.Metadata.HasTag(tag) {
			block.Metadata.Tags = append(block.Metadata.Tags, tag)
		}
	case OpSub:
		out := block.Metadata.Tags[:0]
		for _, t := range block.Metadata.Tags {
			if t != tag {
				out = append(out, t)
			}
		}
		block.Metadata.Tags = out
	default:
		return fmt.Errorf("operator %q not supported on tags", e.Operator)
	}
	return nil
}

func (e *Edit) editCustom(block *ucm.Block, rest string) error {
	if block.Metadata.Custom == nil {
		block.Metadata.Custom = make(map[string]interface{})
	}
	segs, err := parsePath(rest)
	if err != nil {
		return err
	}
	switch e.Operator {
	case OpSet:
		return setPath(block.Metadata.Custom, segs, e.Value)
	case OpAdd, OpSub, OpInc, OpDec:
		cur, _ := getPath(block.Metadata.Custom, segs)
		next, err := applyNumericOrCollection(e.Operator, cur, e.Value)
		if err != nil {
			return err
		}
		return setPath(block.Metadata.Custom, segs, next)
	default:
		return fmt.Errorf("unknown operator %q", e.Operator)
	}
}

// editContent mutates a block's primary payload, dispatching on its
// content variant per spec §4.2's variant-specific editing operations.
func (e *Edit) editContent(block *ucm.Block, rest string) error {
	switch c := block.Content.(type) {
	case content.TextContent:
		if rest != "text" {
			return fmt.Errorf("text content has no path %q", rest)
		}
		s, err := e.applyString(c.Text)
		if err != nil {
			return err
		}
		block.Content = content.TextContent{Text: s}
		return nil
	case content.MarkdownContent:
		if rest != "text" {
			return fmt.Errorf("markdown content has no path %q", rest)
		}
		s, err := e.applyString(c.Text)
		if err != nil {
			return err
		}
		block.Content = content.MarkdownContent{Text: s}
		return nil
	case content.CodeContent:
		if rest != "source" {
			return fmt.Errorf("code content has no path %q", rest)
		}
		s, err := e.applyString(c.Source)
		if err != nil {
			return err
		}
		block.Content = content.CodeContent{Language: c.Language, Source: s}
		return nil
	case content.MathContent:
		if rest != "expression" {
			return fmt.Errorf("math content has no path %q", rest)
		}
		s, err := e.applyString(c.Expression)
		if err != nil {
			return err
		}
		block.Content = content.MathContent{Notation: c.Notation, Expression: s}
		return nil
	case content.TableContent:
		return e.editTableRows(block, c, rest)
	default:
		return fmt.Errorf("content editing not supported for %s content", block.Content.ContentType())
	}
}

// editTableRows implements table row insertion/removal, the table
// case of §4.2's variant-specific editing operations. "rows" with
// OpAdd appends a row, "rows[n]" with OpAdd inserts before index n,
// and "rows[n]" with OpSub removes the row at index n.
func (e *Edit) editTableRows(block *ucm.Block, c content.TableContent, rest string) error {
	segs, err := parsePath(rest)
	if err != nil {
		return err
	}
	if len(segs) != 1 || segs[0].key != "rows" {
		return fmt.Errorf("table content only supports the %q path", "rows")
	}
	idx := segs[0].index

	switch e.Operator {
	case OpAdd:
		row, err := toStringRow(e.Value)
		if err != nil {
			return err
		}
		rows := append([][]string(nil), c.Rows...)
		at := len(rows)
		if idx != nil {
			at = *idx
		}
		if at < 0 || at > len(rows) {
			return fmt.Errorf("row index %d out of range", at)
		}
		rows = append(rows, nil)
		copy(rows[at+1:], rows[at:])
		rows[at] = row
		block.Content = content.TableContent{Rows: rows}
		return nil
	case OpSub:
		if idx == nil {
			return fmt.Errorf("row removal requires an index, e.g. rows[0]")
		}
		if *idx < 0 || *idx >= len(c.Rows) {
			return fmt.Errorf("row index %d out of range", *idx)
		}
		rows := append([][]string(nil), c.Rows[:*idx]...)
		rows = append(rows, c.Rows[*idx+1:]...)
		block.Content = content.TableContent{Rows: rows}
		return nil
	default:
		return fmt.Errorf("operator %q not supported on table rows", e.Operator)
	}
}

func toStringRow(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		row := make([]string, len(v))
		for i, cell := range v {
			s, ok := cell.(string)
			if !ok {
				return nil, fmt.Errorf("row cell %d must be a string", i)
			}
			row[i] = s
		}
		return row, nil
	default:
		return nil, fmt.Errorf("row value must be an array of strings, got %T", value)
	}
}

// applyNumericOrCollection implements the add/sub/inc/dec edge cases
// from spec §4.6: add on an array path appends, sub on a set-like
// array removes the element if present, inc/dec and numeric add/sub
// operate arithmetically.
func applyNumericOrCollection(op Operator, cur, value interface{}) (interface{}, error) {
	if arr, ok := cur.([]interface{}); ok {
		switch op {
		case OpAdd:
			return append(arr, value), nil
		case OpSub:
			out := arr[:0]
			for _, v := range arr {
				if v != value {
					out = append(out, v)
				}
			}
			return out, nil
		}
	}

	curNum, curIsNum := toFloat(cur)
	switch op {
	case OpInc:
		if !curIsNum {
			curNum = 0
		}
		return curNum + 1, nil
	case OpDec:
		if !curIsNum {
			curNum = 0
		}
		return curNum - 1, nil
	case OpAdd, OpSub:
		delta, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("value must be numeric for operator %q", op)
		}
		if !curIsNum {
			curNum = 0
		}
		if op == OpAdd {
			return curNum + delta, nil
		}
		return curNum - delta, nil
	}
	return nil, fmt.Errorf("unsupported operator %q at this path", op)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
