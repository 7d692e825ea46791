package exec

import (
	"fmt"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/engine"
	"github.com/Antonio7098/unified-content-protocol-sub002/types"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucl"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// lowerContext carries the state needed to turn AST nodes into
// engine.Command values: the document for id/label resolution and the
// alias resolver for "@ref" short forms.
type lowerContext struct {
	doc     *ucm.Document
	aliases AliasResolver
}

func (lc *lowerContext) resolve(token string) (types.Id, error) {
	return ResolveID(lc.doc, lc.aliases, token)
}

// Lower converts a single parsed UCL command into an engine.Command.
func Lower(cmd ucl.Command, lc *lowerContext) (engine.Command, error) {
	switch c := cmd.(type) {
	case ucl.EditCommand:
		return lowerEdit(c, lc)
	case ucl.MoveCommand:
		return lowerMove(c, lc)
	case ucl.AppendCommand:
		return lowerAppend(c, lc)
	case ucl.DeleteCommand:
		target, err := lc.resolve(c.Target)
		if err != nil {
			return nil, err
		}
		return &engine.Delete{Target: target, Mode: engine.DeleteMode(c.Mode)}, nil
	case ucl.PruneCommand:
		sel := engine.Selector{Unreachable: c.Unreachable}
		if c.Condition != nil {
			cond := c.Condition
			sel.Condition = func(b *ucm.Block) bool { return EvalCondition(cond, b) }
		}
		return &engine.Prune{Selector: sel}, nil
	case ucl.FoldCommand:
		return lowerFold(c, lc)
	case ucl.LinkCommand:
		return lowerLink(c, lc)
	case ucl.UnlinkCommand:
		source, err := lc.resolve(c.Source)
		if err != nil {
			return nil, err
		}
		target, err := lc.resolve(c.Target)
		if err != nil {
			return nil, err
		}
		return &engine.Unlink{Source: source, Kind: ucm.EdgeKind(c.Kind), Target: target}, nil
	case ucl.AtomicCommand:
		ops := make([]engine.Command, 0, len(c.Ops))
		for _, op := range c.Ops {
			lowered, err := Lower(op, lc)
			if err != nil {
				return nil, err
			}
			ops = append(ops, lowered)
		}
		return &engine.Atomic{Ops: ops}, nil
	default:
		return nil, fmt.Errorf("command %T is not an engine operation", cmd)
	}
}

func lowerEdit(c ucl.EditCommand, lc *lowerContext) (engine.Command, error) {
	target, err := lc.resolve(c.Target)
	if err != nil {
		return nil, err
	}
	op, err := lowerOperator(c.Operator)
	if err != nil {
		return nil, err
	}
	e := &engine.Edit{Target: target, Path: pathString(c.Path), Operator: op, Value: c.Value}
	if c.Condition != nil {
		cond := c.Condition
		e.Condition = func(b *ucm.Block) bool { return EvalCondition(cond, b) }
	}
	return e, nil
}

func lowerOperator(op string) (engine.Operator, error) {
	switch op {
	case "=":
		return engine.OpSet, nil
	case "+=":
		return engine.OpAdd, nil
	case "-=":
		return engine.OpSub, nil
	case "++":
		return engine.OpInc, nil
	case "--":
		return engine.OpDec, nil
	default:
		return "", types.NewError(types.ErrInvalidOperator, "unknown edit operator %q", op)
	}
}

// pathString renders a parsed path expression back to its dotted
// form, since engine.Edit addresses paths as plain dotted strings.
func pathString(p ucl.PathExpr) string {
	s := ""
	for i, seg := range p.Segments {
		if i > 0 {
			s += "."
		}
		s += seg.Name
		if seg.Index != nil && !seg.Index.IsSlice {
			s += fmt.Sprintf("[%d]", seg.Index.Index)
		}
	}
	return s
}

func lowerMove(c ucl.MoveCommand, lc *lowerContext) (engine.Command, error) {
	target, err := lc.resolve(c.Target)
	if err != nil {
		return nil, err
	}
	dest := engine.MoveDestination{}
	if c.Sibling != "" {
		sib, err := lc.resolve(c.Sibling)
		if err != nil {
			return nil, err
		}
		dest.Sibling, dest.Before = sib, c.Before
	} else {
		parent, err := lc.resolve(c.ToParent)
		if err != nil {
			return nil, err
		}
		dest.Parent, dest.Index = parent, c.AtIndex
	}
	return &engine.Move{Target: target, Destination: dest}, nil
}

func lowerAppend(c ucl.AppendCommand, lc *lowerContext) (engine.Command, error) {
	parent, err := lc.resolve(c.Parent)
	if err != nil {
		return nil, err
	}
	contentValue, err := contentFromLiteral(c.ContentType, c.Content)
	if err != nil {
		return nil, err
	}
	md := metadataFromProps(c.Props)
	return &engine.Append{Parent: parent, Content: contentValue, Metadata: md, Index: c.Index}, nil
}

func lowerFold(c ucl.FoldCommand, lc *lowerContext) (engine.Command, error) {
	target, err := lc.resolve(c.Target)
	if err != nil {
		return nil, err
	}
	return &engine.Fold{Target: target, Directive: engine.FoldDirective{
		Depth:        c.Depth,
		MaxTokens:    c.MaxTokens,
		PreserveTags: c.PreserveTags,
	}}, nil
}

func lowerLink(c ucl.LinkCommand, lc *lowerContext) (engine.Command, error) {
	source, err := lc.resolve(c.Source)
	if err != nil {
		return nil, err
	}
	target, err := lc.resolve(c.Target)
	if err != nil {
		return nil, err
	}
	return &engine.Link{
		Source: source, Kind: ucm.EdgeKind(c.Kind), Target: target,
		Confidence: c.Confidence, Note: c.Description,
	}, nil
}

func metadataFromProps(props map[string]ucl.Value) ucm.Metadata {
	md := ucm.Metadata{Custom: map[string]interface{}{}}
	for k, v := range props {
		switch k {
		case "label":
			if s, ok := v.(string); ok {
				md.Label = s
			}
		case "summary":
			if s, ok := v.(string); ok {
				md.Summary = s
			}
		case "role":
			if s, ok := v.(string); ok {
				md.SemanticRole = ucm.SemanticRole(s)
			}
		case "tags":
			if arr, ok := v.([]ucl.Value); ok {
				for _, item := range arr {
					if s, ok := item.(string); ok {
						md.Tags = append(md.Tags, s)
					}
				}
			}
		default:
			md.Custom[k] = v
		}
	}
	return md
}

func contentFromLiteral(contentType, literal string) (content.Content, error) {
	switch content.Type(contentType) {
	case content.Text:
		return content.TextContent{Text: literal}, nil
	case content.Markdown:
		return content.MarkdownContent{Text: literal}, nil
	case content.Code:
		return content.CodeContent{Source: literal}, nil
	case content.Math:
		return content.MathContent{Expression: literal}, nil
	default:
		return content.TextContent{Text: literal}, nil
	}
}
