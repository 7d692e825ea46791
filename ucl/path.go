package ucl

import "strconv"

// parsePath parses a path expression: optional leading '$' (JSONPath
// navigation into content), then a dotted sequence of identifiers
// each optionally subscripted by [int] or [start:end], per spec
// §4.9. Negative indices and open slice endpoints are preserved as-is
// for the evaluator to interpret.
func (p *Parser) parsePath() (PathExpr, error) {
	var expr PathExpr
	if p.cur.Kind == TokDollar {
		expr.JSONPath = true
		if err := p.advance(); err != nil {
			return expr, err
		}
		if p.cur.Kind == TokDot {
			if err := p.advance(); err != nil {
				return expr, err
			}
		}
	}
	for {
		name, err := p.expect(TokIdent, "path segment")
		if err != nil {
			return expr, err
		}
		seg := PathSegment{Name: name.Text}
		if p.cur.Kind == TokLBracket {
			idx, err := p.parsePathIndex()
			if err != nil {
				return expr, err
			}
			seg.Index = idx
		}
		expr.Segments = append(expr.Segments, seg)
		if p.cur.Kind != TokDot {
			break
		}
		if err := p.advance(); err != nil {
			return expr, err
		}
	}
	return expr, nil
}

func (p *Parser) parsePathIndex() (*PathIndex, error) {
	if _, err := p.expect(TokLBracket, "["); err != nil {
		return nil, err
	}

	var start *int
	if p.cur.Kind == TokNumber {
		n, err := p.signedInt()
		if err != nil {
			return nil, err
		}
		start = &n
	}

	if p.cur.Kind == TokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var end *int
		if p.cur.Kind == TokNumber {
			n, err := p.signedInt()
			if err != nil {
				return nil, err
			}
			end = &n
		}
		if _, err := p.expect(TokRBracket, "]"); err != nil {
			return nil, err
		}
		return &PathIndex{IsSlice: true, SliceStart: start, SliceEnd: end}, nil
	}

	if start == nil {
		return nil, p.unexpected("an index or slice")
	}
	if _, err := p.expect(TokRBracket, "]"); err != nil {
		return nil, err
	}
	return &PathIndex{Index: *start}, nil
}

func (p *Parser) signedInt() (int, error) {
	t, err := p.expect(TokNumber, "integer")
	if err != nil {
		return 0, err
	}
	n, parseErr := strconv.Atoi(t.Text)
	if parseErr != nil {
		return 0, p.unexpected("integer")
	}
	return n, nil
}
