package ucl

import (
	"strconv"

	"github.com/Antonio7098/unified-content-protocol-sub002/types"
)

// Parser is a recursive-descent parser with one-token lookahead over
// the lexer's token stream, per spec §4.9.
type Parser struct {
	lex  *Lexer
	cur  Token
	next Token
}

// NewParser creates a parser over source and primes its lookahead.
func NewParser(source string) (*Parser, error) {
	p := &Parser{lex: NewLexer(source)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.next
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.next = t
	return nil
}

func (p *Parser) unexpected(expected string) error {
	if p.cur.Kind == TokEOF {
		return types.NewError(types.ErrUnexpectedEOF, "unexpected end of input, expected %s", expected)
	}
	return types.NewError(types.ErrUnexpectedToken, "unexpected token %s, expected %s", p.cur, expected)
}

func (p *Parser) expectKeyword(text string) error {
	if p.cur.Kind != TokKeyword || p.cur.Text != text {
		return p.unexpected(text)
	}
	return p.advance()
}

func (p *Parser) atKeyword(text string) bool {
	return p.cur.Kind == TokKeyword && p.cur.Text == text
}

func (p *Parser) expect(kind TokenKind, expected string) (Token, error) {
	if p.cur.Kind != kind {
		return Token{}, p.unexpected(expected)
	}
	t := p.cur
	return t, p.advance()
}

// Parse consumes the full token stream and returns the document AST.
func Parse(source string) (*Document, error) {
	p, err := NewParser(source)
	if err != nil {
		return nil, err
	}
	return p.parseDocument()
}

func (p *Parser) parseDocument() (*Document, error) {
	doc := &Document{}
	if p.atKeyword("STRUCTURE") {
		s, err := p.parseStructure()
		if err != nil {
			return nil, err
		}
		doc.Structure = s
	}
	if p.atKeyword("BLOCKS") {
		b, err := p.parseBlocks()
		if err != nil {
			return nil, err
		}
		doc.Blocks = b
	}
	if p.atKeyword("COMMANDS") {
		c, err := p.parseCommands()
		if err != nil {
			return nil, err
		}
		doc.Commands = c
	}
	if p.cur.Kind != TokEOF {
		return nil, p.unexpected("end of input")
	}
	return doc, nil
}

func (p *Parser) parseStructure() (*StructureSection, error) {
	if err := p.expectKeyword("STRUCTURE"); err != nil {
		return nil, err
	}
	sec := &StructureSection{}
	for p.cur.Kind == TokIdent || p.cur.Kind == TokBlockID {
		idTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokColon, ":"); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokLBracket, "["); err != nil {
			return nil, err
		}
		var children []string
		for p.cur.Kind != TokRBracket {
			ct, err := p.expectIDLike()
			if err != nil {
				return nil, err
			}
			children = append(children, ct)
			if p.cur.Kind == TokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
			}
		}
		if _, err := p.expect(TokRBracket, "]"); err != nil {
			return nil, err
		}
		sec.Entries = append(sec.Entries, StructureEntry{ID: idTok.Text, Children: children})
	}
	return sec, nil
}

func (p *Parser) expectIDLike() (string, error) {
	if p.cur.Kind == TokIdent || p.cur.Kind == TokBlockID {
		t := p.cur.Text
		return t, p.advance()
	}
	return "", p.unexpected("identifier or block id")
}

func (p *Parser) parseBlocks() (*BlocksSection, error) {
	if err := p.expectKeyword("BLOCKS"); err != nil {
		return nil, err
	}
	sec := &BlocksSection{}
	for p.cur.Kind == TokIdent && contentTypeKeywords[p.cur.Text] {
		decl := BlockDecl{ContentType: p.cur.Text, Props: map[string]Value{}}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokHash, "#"); err != nil {
			return nil, err
		}
		id, err := p.expectIDLike()
		if err != nil {
			return nil, err
		}
		decl.ID = id

		for p.cur.Kind == TokIdent {
			key := p.cur.Text
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(TokAssign, "="); err != nil {
				return nil, err
			}
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			decl.Props[key] = v
		}

		if _, err := p.expect(TokDoubleColon, "::"); err != nil {
			return nil, err
		}
		content, err := p.expect(TokString, "content literal")
		if err != nil {
			return nil, err
		}
		decl.Content = content.Text
		sec.Decls = append(sec.Decls, decl)
	}
	return sec, nil
}

func (p *Parser) parseCommands() (*CommandsSection, error) {
	if err := p.expectKeyword("COMMANDS"); err != nil {
		return nil, err
	}
	sec := &CommandsSection{}
	for isCommandStart(p.cur) {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		sec.Commands = append(sec.Commands, cmd)
	}
	return sec, nil
}

func isCommandStart(t Token) bool {
	return t.Kind == TokKeyword && commandKeywords[t.Text]
}

func (p *Parser) parseCommand() (Command, error) {
	switch p.cur.Text {
	case "EDIT":
		return p.parseEdit()
	case "MOVE":
		return p.parseMove()
	case "APPEND":
		return p.parseAppend()
	case "DELETE":
		return p.parseDelete()
	case "PRUNE":
		return p.parsePrune()
	case "FOLD":
		return p.parseFold()
	case "LINK":
		return p.parseLink()
	case "UNLINK":
		return p.parseUnlink()
	case "SNAPSHOT":
		return p.parseSnapshot()
	case "TX_BEGIN":
		return p.parseTxBegin()
	case "TX_COMMIT":
		if err := p.advance(); err != nil {
			return nil, err
		}
		return TxCommitCommand{}, nil
	case "TX_ROLLBACK":
		if err := p.advance(); err != nil {
			return nil, err
		}
		return TxRollbackCommand{}, nil
	case "ATOMIC":
		return p.parseAtomic()
	default:
		return nil, p.unexpected("a command")
	}
}

func (p *Parser) parseAtomic() (Command, error) {
	if err := p.expectKeyword("ATOMIC"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace, "{"); err != nil {
		return nil, err
	}
	var ops []Command
	for isCommandStart(p.cur) {
		op, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if _, err := p.expect(TokRBrace, "}"); err != nil {
		return nil, err
	}
	return AtomicCommand{Ops: ops}, nil
}

func (p *Parser) parseEdit() (Command, error) {
	if err := p.expectKeyword("EDIT"); err != nil {
		return nil, err
	}
	target, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	op, err := p.parseAssignOp()
	if err != nil {
		return nil, err
	}
	cmd := EditCommand{Target: target, Path: path, Operator: op}
	if op != "++" && op != "--" {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		cmd.Value = v
	}
	if p.atKeyword("WHERE") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		cmd.Condition = cond
	}
	return cmd, nil
}

func (p *Parser) parseAssignOp() (string, error) {
	switch p.cur.Kind {
	case TokAssign:
		return "=", p.advance()
	case TokPlusEq:
		return "+=", p.advance()
	case TokMinusEq:
		return "-=", p.advance()
	case TokIncr:
		return "++", p.advance()
	case TokDecr:
		return "--", p.advance()
	default:
		return "", p.unexpected("an assignment operator")
	}
}

func (p *Parser) parseMove() (Command, error) {
	if err := p.expectKeyword("MOVE"); err != nil {
		return nil, err
	}
	target, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	cmd := MoveCommand{Target: target}
	switch {
	case p.atKeyword("TO"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		parent, err := p.expectIDLike()
		if err != nil {
			return nil, err
		}
		cmd.ToParent = parent
		if p.atKeyword("AT") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			n, err := p.expectInt()
			if err != nil {
				return nil, err
			}
			cmd.AtIndex = &n
		}
	case p.atKeyword("BEFORE"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		sib, err := p.expectIDLike()
		if err != nil {
			return nil, err
		}
		cmd.Sibling, cmd.Before = sib, true
	case p.atKeyword("AFTER"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		sib, err := p.expectIDLike()
		if err != nil {
			return nil, err
		}
		cmd.Sibling = sib
	default:
		return nil, p.unexpected("TO, BEFORE, or AFTER")
	}
	return cmd, nil
}

func (p *Parser) parseAppend() (Command, error) {
	if err := p.expectKeyword("APPEND"); err != nil {
		return nil, err
	}
	ct, err := p.expect(TokIdent, "content type")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TO"); err != nil {
		return nil, err
	}
	parent, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	cmd := AppendCommand{Parent: parent, ContentType: ct.Text, Props: map[string]Value{}}
	if p.atKeyword("AT") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.expectInt()
		if err != nil {
			return nil, err
		}
		cmd.Index = &n
	}
	for p.cur.Kind == TokIdent {
		key := p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokAssign, "="); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		cmd.Props[key] = v
	}
	if _, err := p.expect(TokDoubleColon, "::"); err != nil {
		return nil, err
	}
	content, err := p.expect(TokString, "content literal")
	if err != nil {
		return nil, err
	}
	cmd.Content = content.Text
	return cmd, nil
}

func (p *Parser) parseDelete() (Command, error) {
	if err := p.expectKeyword("DELETE"); err != nil {
		return nil, err
	}
	target, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	cmd := DeleteCommand{Target: target}
	if p.cur.Kind == TokIdent && (p.cur.Text == "cascade" || p.cur.Text == "preserve_children") {
		cmd.Mode = p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func (p *Parser) parsePrune() (Command, error) {
	if err := p.expectKeyword("PRUNE"); err != nil {
		return nil, err
	}
	cmd := PruneCommand{}
	switch {
	case p.cur.Kind == TokIdent && p.cur.Text == "unreachable":
		cmd.Unreachable = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	case p.atKeyword("WHERE"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		cmd.Condition = cond
	default:
		return nil, p.unexpected("unreachable or WHERE")
	}
	if p.cur.Kind == TokIdent && p.cur.Text == "dry_run" {
		cmd.DryRun = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func (p *Parser) parseFold() (Command, error) {
	if err := p.expectKeyword("FOLD"); err != nil {
		return nil, err
	}
	target, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	cmd := FoldCommand{Target: target}
	for p.cur.Kind == TokIdent {
		switch p.cur.Text {
		case "depth":
			if err := p.advance(); err != nil {
				return nil, err
			}
			n, err := p.expectInt()
			if err != nil {
				return nil, err
			}
			cmd.Depth = &n
		case "max_tokens":
			if err := p.advance(); err != nil {
				return nil, err
			}
			n, err := p.expectInt()
			if err != nil {
				return nil, err
			}
			cmd.MaxTokens = &n
		case "preserve_tags":
			if err := p.advance(); err != nil {
				return nil, err
			}
			tags, err := p.parseStringArray()
			if err != nil {
				return nil, err
			}
			cmd.PreserveTags = tags
		default:
			return cmd, nil
		}
	}
	return cmd, nil
}

func (p *Parser) parseLink() (Command, error) {
	if err := p.expectKeyword("LINK"); err != nil {
		return nil, err
	}
	source, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	kind, err := p.expect(TokIdent, "edge kind")
	if err != nil {
		return nil, err
	}
	target, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	cmd := LinkCommand{Source: source, Kind: kind.Text, Target: target}
	for p.cur.Kind == TokIdent {
		switch p.cur.Text {
		case "confidence":
			if err := p.advance(); err != nil {
				return nil, err
			}
			n, err := p.expect(TokNumber, "number")
			if err != nil {
				return nil, err
			}
			f, _ := strconv.ParseFloat(n.Text, 64)
			cmd.Confidence = &f
		case "description":
			if err := p.advance(); err != nil {
				return nil, err
			}
			s, err := p.expect(TokString, "string")
			if err != nil {
				return nil, err
			}
			cmd.Description = s.Text
		default:
			return cmd, nil
		}
	}
	return cmd, nil
}

func (p *Parser) parseUnlink() (Command, error) {
	if err := p.expectKeyword("UNLINK"); err != nil {
		return nil, err
	}
	source, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	kind, err := p.expect(TokIdent, "edge kind")
	if err != nil {
		return nil, err
	}
	target, err := p.expectIDLike()
	if err != nil {
		return nil, err
	}
	return UnlinkCommand{Source: source, Kind: kind.Text, Target: target}, nil
}

func (p *Parser) parseSnapshot() (Command, error) {
	if err := p.expectKeyword("SNAPSHOT"); err != nil {
		return nil, err
	}
	action, err := p.expect(TokIdent, "create, restore, or delete")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokString, "snapshot name")
	if err != nil {
		return nil, err
	}
	cmd := SnapshotCommand{Action: action.Text, Name: name.Text}
	if p.cur.Kind == TokString {
		cmd.Description = p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func (p *Parser) parseTxBegin() (Command, error) {
	if err := p.expectKeyword("TX_BEGIN"); err != nil {
		return nil, err
	}
	cmd := TxBeginCommand{}
	if p.cur.Kind == TokString {
		cmd.Name = p.cur.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func (p *Parser) parseStringArray() ([]string, error) {
	if _, err := p.expect(TokLBracket, "["); err != nil {
		return nil, err
	}
	var out []string
	for p.cur.Kind != TokRBracket {
		s, err := p.expect(TokString, "string")
		if err != nil {
			return nil, err
		}
		out = append(out, s.Text)
		if p.cur.Kind == TokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	_, err := p.expect(TokRBracket, "]")
	return out, err
}

func (p *Parser) expectInt() (int, error) {
	t, err := p.expect(TokNumber, "integer")
	if err != nil {
		return 0, err
	}
	n, parseErr := strconv.Atoi(t.Text)
	if parseErr != nil {
		return 0, types.NewError(types.ErrInvalidLiteral, "expected integer, got %q", t.Text)
	}
	return n, nil
}

// parseValue parses a literal: string, number, bool, null, array, or
// object.
func (p *Parser) parseValue() (Value, error) {
	switch p.cur.Kind {
	case TokString:
		v := p.cur.Text
		return v, p.advance()
	case TokNumber:
		v, _ := strconv.ParseFloat(p.cur.Text, 64)
		return v, p.advance()
	case TokBool:
		v := p.cur.Text == "true"
		return v, p.advance()
	case TokNull:
		return nil, p.advance()
	case TokLBracket:
		return p.parseArrayValue()
	case TokLBrace:
		return p.parseObjectValue()
	default:
		return nil, p.unexpected("a value")
	}
}

func (p *Parser) parseArrayValue() (Value, error) {
	if _, err := p.expect(TokLBracket, "["); err != nil {
		return nil, err
	}
	var out []Value
	for p.cur.Kind != TokRBracket {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if p.cur.Kind == TokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	_, err := p.expect(TokRBracket, "]")
	return out, err
}

func (p *Parser) parseObjectValue() (Value, error) {
	if _, err := p.expect(TokLBrace, "{"); err != nil {
		return nil, err
	}
	out := map[string]Value{}
	for p.cur.Kind != TokRBrace {
		key, err := p.expect(TokString, "object key")
		if err != nil {
			key, err = p.expect(TokIdent, "object key")
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(TokColon, ":"); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out[key.Text] = v
		if p.cur.Kind == TokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	_, err := p.expect(TokRBrace, "}")
	return out, err
}
