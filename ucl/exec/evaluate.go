package exec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Antonio7098/unified-content-protocol-sub002/content"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucl"
	"github.com/Antonio7098/unified-content-protocol-sub002/ucm"
)

// EvalCondition evaluates cond against block, per spec §4.9-§4.10:
// AND/OR are evaluated left-to-right with short-circuit, and a
// missing path makes every comparison false except IS_NULL, which is
// true (the absent value counts as null).
func EvalCondition(cond *ucl.Condition, block *ucm.Block) bool {
	if cond == nil {
		return true
	}
	switch cond.Kind {
	case ucl.CondAnd:
		if !EvalCondition(cond.Left, block) {
			return false
		}
		return EvalCondition(cond.Right, block)
	case ucl.CondOr:
		if EvalCondition(cond.Left, block) {
			return true
		}
		return EvalCondition(cond.Right, block)
	case ucl.CondNot:
		return !EvalCondition(cond.Operand, block)
	}

	value, found := resolveValue(block, cond.Path)

	switch cond.Kind {
	case ucl.CondIsNull:
		return !found || value == nil
	case ucl.CondIsNotNull:
		return found && value != nil
	case ucl.CondExists:
		return found
	case ucl.CondIsEmpty:
		if !found {
			return false
		}
		return isEmptyValue(value)
	}

	if !found {
		return false
	}

	switch cond.Kind {
	case ucl.CondComparison:
		return compare(value, cond.Operator, cond.Value)
	case ucl.CondContains:
		return containsValue(value, cond.Value)
	case ucl.CondStartsWith:
		s, ok1 := value.(string)
		suffix, ok2 := cond.Value.(string)
		return ok1 && ok2 && strings.HasPrefix(s, suffix)
	case ucl.CondEndsWith:
		s, ok1 := value.(string)
		suffix, ok2 := cond.Value.(string)
		return ok1 && ok2 && strings.HasSuffix(s, suffix)
	case ucl.CondMatches:
		s, ok1 := value.(string)
		pattern, ok2 := cond.Value.(string)
		if !ok1 || !ok2 {
			return false
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		return re.MatchString(s)
	}
	return false
}

func isEmptyValue(v interface{}) bool {
	switch x := v.(type) {
	case string:
		return x == ""
	case []string:
		return len(x) == 0
	case []interface{}:
		return len(x) == 0
	case map[string]interface{}:
		return len(x) == 0
	case nil:
		return true
	default:
		return false
	}
}

func containsValue(haystack, needle interface{}) bool {
	switch h := haystack.(type) {
	case string:
		s, ok := needle.(string)
		return ok && strings.Contains(h, s)
	case []string:
		s, ok := needle.(string)
		if !ok {
			return false
		}
		for _, item := range h {
			if item == s {
				return true
			}
		}
		return false
	case []interface{}:
		for _, item := range h {
			if fmt.Sprint(item) == fmt.Sprint(needle) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func compare(a interface{}, op string, b interface{}) bool {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return compareFloat(af, op, bf)
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return compareString(as, op, bs)
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch op {
			case "=":
				return ab == bb
			case "!=":
				return ab != bb
			}
		}
	}
	return false
}

func compareFloat(a float64, op string, b float64) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "<":
		return a < b
	case "<=":
		return a <= b
	default:
		return false
	}
}

func compareString(a, op, b string) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "<":
		return a < b
	case "<=":
		return a <= b
	default:
		return false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// resolveValue addresses a path expression against a block's metadata
// or JSON content, per spec §4.9's path grammar.
func resolveValue(block *ucm.Block, path ucl.PathExpr) (interface{}, bool) {
	if path.JSONPath {
		jc, ok := block.Content.(content.JSONContent)
		if !ok {
			return nil, false
		}
		return navigate(jc.Value, path.Segments)
	}
	if len(path.Segments) == 0 {
		return nil, false
	}
	head := path.Segments[0]
	switch head.Name {
	case "id":
		return string(block.ID), true
	case "label":
		return block.Metadata.Label, true
	case "summary":
		return block.Metadata.Summary, true
	case "role":
		return string(block.Metadata.SemanticRole), true
	case "content_type":
		if block.Content == nil {
			return nil, false
		}
		return string(block.Content.ContentType()), true
	case "token_estimate":
		return block.Metadata.TokenEstimate, true
	case "tags":
		var v interface{} = toInterfaceSlice(block.Metadata.Tags)
		return navigateIndexed(v, head.Index, path.Segments[1:])
	case "custom":
		var v interface{} = block.Metadata.Custom
		return navigate(v, path.Segments[1:])
	default:
		return nil, false
	}
}

func toInterfaceSlice(tags []string) []interface{} {
	out := make([]interface{}, len(tags))
	for i, t := range tags {
		out[i] = t
	}
	return out
}

func navigateIndexed(v interface{}, idx *ucl.PathIndex, rest []ucl.PathSegment) (interface{}, bool) {
	if idx != nil {
		arr, ok := v.([]interface{})
		if !ok {
			return nil, false
		}
		v, ok = indexInto(arr, idx)
		if !ok {
			return nil, false
		}
	}
	return navigate(v, rest)
}

func navigate(root interface{}, segs []ucl.PathSegment) (interface{}, bool) {
	cur := root
	for _, s := range segs {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := m[s.Name]
		if !ok {
			return nil, false
		}
		if s.Index != nil {
			arr, ok := v.([]interface{})
			if !ok {
				return nil, false
			}
			v, ok = indexInto(arr, s.Index)
			if !ok {
				return nil, false
			}
		}
		cur = v
	}
	return cur, true
}

func indexInto(arr []interface{}, idx *ucl.PathIndex) (interface{}, bool) {
	n := len(arr)
	if idx.IsSlice {
		start, end := 0, n
		if idx.SliceStart != nil {
			start = resolveIndex(*idx.SliceStart, n)
		}
		if idx.SliceEnd != nil {
			end = resolveIndex(*idx.SliceEnd, n)
		}
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		if start > end {
			return nil, false
		}
		out := make([]interface{}, end-start)
		copy(out, arr[start:end])
		return out, true
	}
	i := resolveIndex(idx.Index, n)
	if i < 0 || i >= n {
		return nil, false
	}
	return arr[i], true
}

func resolveIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i
}
