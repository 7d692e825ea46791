package ucl

import "testing"

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src)
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexerIdentsKeywordsAreCaseFolded(t *testing.T) {
	toks := lexAll(t, "and or not")
	if toks[0].Kind != TokAnd || toks[1].Kind != TokOr || toks[2].Kind != TokNot {
		t.Errorf("got %v, want AND OR NOT regardless of case", toks[:3])
	}
}

func TestLexerBlockIDLiteral(t *testing.T) {
	toks := lexAll(t, "blk_42")
	if toks[0].Kind != TokBlockID || toks[0].Text != "blk_42" {
		t.Errorf("got %+v, want TokBlockID blk_42", toks[0])
	}
}

func TestLexerSectionAndCommandKeywords(t *testing.T) {
	toks := lexAll(t, "STRUCTURE EDIT")
	if toks[0].Kind != TokKeyword || toks[0].Text != "STRUCTURE" {
		t.Errorf("got %+v, want keyword STRUCTURE", toks[0])
	}
	if toks[1].Kind != TokKeyword || toks[1].Text != "EDIT" {
		t.Errorf("got %+v, want keyword EDIT", toks[1])
	}
}

func TestLexerContentTypeKeywordLowercased(t *testing.T) {
	toks := lexAll(t, "TEXT")
	if toks[0].Kind != TokIdent || toks[0].Text != "text" {
		t.Errorf("got %+v, want lowercased ident text", toks[0])
	}
}

func TestLexerNumbersIncludingNegativeAndDecimal(t *testing.T) {
	toks := lexAll(t, "-3 4.5")
	if toks[0].Kind != TokNumber || toks[0].Text != "-3" {
		t.Errorf("got %+v, want number -3", toks[0])
	}
	if toks[1].Kind != TokNumber || toks[1].Text != "4.5" {
		t.Errorf("got %+v, want number 4.5", toks[1])
	}
}

func TestLexerStringWithEscapes(t *testing.T) {
	toks := lexAll(t, `"a\nb"`)
	if toks[0].Kind != TokString || toks[0].Text != "a\nb" {
		t.Errorf("got %+v, want string %q", toks[0], "a\nb")
	}
}

func TestLexerUnterminatedStringErrors(t *testing.T) {
	lex := NewLexer(`"unterminated`)
	if _, err := lex.Next(); err == nil {
		t.Error("expected error for unterminated string literal")
	}
}

func TestLexerInvalidEscapeErrors(t *testing.T) {
	lex := NewLexer(`"bad\qescape"`)
	if _, err := lex.Next(); err == nil {
		t.Error("expected error for invalid escape sequence")
	}
}

func TestLexerBlockRef(t *testing.T) {
	toks := lexAll(t, "@my-ref")
	if toks[0].Kind != TokBlockRef || toks[0].Text != "my-ref" {
		t.Errorf("got %+v, want block ref my-ref", toks[0])
	}
}

func TestLexerOperators(t *testing.T) {
	toks := lexAll(t, "+= -= ++ -- != >= <= :: =")
	want := []TokenKind{TokPlusEq, TokMinusEq, TokIncr, TokDecr, TokNotEq, TokGtEq, TokLtEq, TokDoubleColon, TokAssign, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token[%d] = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexerUnexpectedCharacterErrors(t *testing.T) {
	lex := NewLexer("%")
	if _, err := lex.Next(); err == nil {
		t.Error("expected error for unrecognized character")
	}
}

func TestLexerSkipsLineComments(t *testing.T) {
	toks := lexAll(t, "// comment\nEDIT")
	if toks[0].Kind != TokKeyword || toks[0].Text != "EDIT" {
		t.Errorf("got %+v, want EDIT after skipped comment", toks[0])
	}
}
