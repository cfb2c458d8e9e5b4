package dsl

import "strconv"

// Parser consumes a token sequence and produces a Program via recursive
// descent with one token of lookahead. Parsing is fail-fast: the first
// grammar violation aborts the whole parse with a *SyntaxError and no
// partial AST. Each parse creates its own Parser instance.
type Parser struct {
	tokens  []Token
	current int

	// Strict promotes skipping of unknown top-level tokens to a syntax
	// error. The default, permissive mode silently discards tokens found
	// between top-level declarations and workflows.
	Strict bool
}

// NewParser creates a parser over the given token sequence.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the whole token stream into a Program.
func Parse(source string) (*Program, error) {
	tokens, err := NewLexer(source).Tokenize()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// Parse consumes the token stream and returns the Program.
func (p *Parser) Parse() (*Program, error) {
	prog := &Program{}

	for !p.atEnd() {
		switch p.peek().Kind {
		case TokenWorkflow:
			wf, err := p.parseWorkflow()
			if err != nil {
				return nil, err
			}
			prog.Workflows = append(prog.Workflows, *wf)
		case TokenLet, TokenVar, TokenConst:
			decl, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			prog.Variables = append(prog.Variables, *decl)
		case TokenSemicolon:
			p.advance()
		default:
			if p.Strict {
				return nil, p.errorExpected("workflow or variable declaration")
			}
			// Permissive top-level recovery: unknown tokens between
			// declarations are discarded.
			p.advance()
		}
	}

	return prog, nil
}

func (p *Parser) parseVarDecl() (*VarDecl, error) {
	keyword := p.advance().Lexeme

	name, err := p.consumeIdent("variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenEqual, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &VarDecl{Keyword: keyword, Name: name, Value: value}, nil
}

func (p *Parser) parseWorkflow() (*Workflow, error) {
	if _, err := p.consume(TokenWorkflow, "'workflow'"); err != nil {
		return nil, err
	}

	nameTok, err := p.consume(TokenString, "workflow name string")
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(TokenLeftBrace, "'{'"); err != nil {
		return nil, err
	}

	wf := &Workflow{Name: nameTok.Literal}
	for !p.check(TokenRightBrace) && !p.atEnd() {
		switch p.peek().Kind {
		case TokenStep:
			step, err := p.parseStep()
			if err != nil {
				return nil, err
			}
			wf.Body = append(wf.Body, step)
		case TokenIf:
			cond, err := p.parseConditional()
			if err != nil {
				return nil, err
			}
			wf.Body = append(wf.Body, cond)
		case TokenSemicolon:
			p.advance()
		default:
			return nil, p.errorExpected("'step' or 'if'")
		}
	}

	if _, err := p.consume(TokenRightBrace, "'}'"); err != nil {
		return nil, err
	}

	return wf, nil
}

func (p *Parser) parseStep() (*Step, error) {
	if _, err := p.consume(TokenStep, "'step'"); err != nil {
		return nil, err
	}

	number, err := p.consumeNumber("step number")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenColon, "':'"); err != nil {
		return nil, err
	}
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}

	return &Step{Number: number, Command: *cmd}, nil
}

func (p *Parser) parseCommand() (*Command, error) {
	tok := p.peek()
	if tok.Kind != TokenIdent && !commandKeyword(tok.Kind) {
		return nil, p.errorExpected("command name")
	}
	p.advance()

	cmd := &Command{Name: tok.Lexeme}

	if _, err := p.consume(TokenLeftParen, "'('"); err != nil {
		return nil, err
	}
	if !p.check(TokenRightParen) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			cmd.Args = append(cmd.Args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	if _, err := p.consume(TokenRightParen, "')'"); err != nil {
		return nil, err
	}

	return cmd, nil
}

func (p *Parser) parseConditional() (*Conditional, error) {
	if _, err := p.consume(TokenIf, "'if'"); err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenLeftParen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenRightParen, "')'"); err != nil {
		return nil, err
	}

	ifSteps, err := p.parseBranch()
	if err != nil {
		return nil, err
	}

	var elseSteps []*Step
	if p.match(TokenElse) {
		elseSteps, err = p.parseBranch()
		if err != nil {
			return nil, err
		}
	}

	return &Conditional{Condition: cond, IfSteps: ifSteps, ElseSteps: elseSteps}, nil
}

// parseBranch parses a `{ Step* }` conditional branch body.
func (p *Parser) parseBranch() ([]*Step, error) {
	if _, err := p.consume(TokenLeftBrace, "'{'"); err != nil {
		return nil, err
	}
	var steps []*Step
	for !p.check(TokenRightBrace) && !p.atEnd() {
		step, err := p.parseStep()
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	if _, err := p.consume(TokenRightBrace, "'}'"); err != nil {
		return nil, err
	}
	return steps, nil
}

// parseComparison parses `Argument op Argument` with a single relational
// operator.
func (p *Parser) parseComparison() (*Comparison, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	op := ""
	switch tok.Kind {
	case TokenEqualEqual, TokenNotEqual, TokenGreater, TokenLess, TokenGreaterEqual, TokenLessEqual:
		op = tok.Lexeme
	default:
		return nil, p.errorExpected("comparison operator")
	}
	p.advance()

	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &Comparison{Op: op, Left: left, Right: right}, nil
}

// parseExpression parses a primary argument and greedily absorbs trailing
// `+` operators into a left-associative Binary chain. There is no
// precedence beyond this single operator.
func (p *Parser) parseExpression() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.match(TokenPlus) {
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: "+", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case TokenString:
		p.advance()
		return &StringLit{Value: tok.Literal}, nil

	case TokenNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorExpected("number")
		}
		return &NumberLit{Value: value}, nil

	case TokenIdent:
		p.advance()
		if p.match(TokenDot) {
			prop, err := p.consumeIdent("property name")
			if err != nil {
				return nil, err
			}
			return &PropertyAccess{Object: &Ident{Name: tok.Lexeme}, Property: prop}, nil
		}
		return &Ident{Name: tok.Lexeme}, nil

	case TokenStep:
		p.advance()
		number, err := p.consumeNumber("step number")
		if err != nil {
			return nil, err
		}
		ref := &StepRef{Number: number}
		if p.match(TokenDot) {
			prop, err := p.consumeIdent("property name")
			if err != nil {
				return nil, err
			}
			return &PropertyAccess{Object: ref, Property: prop}, nil
		}
		return ref, nil

	default:
		return nil, p.errorExpected("expression")
	}
}

// --- Token stream helpers ---

func (p *Parser) peek() Token {
	if p.current < len(p.tokens) {
		return p.tokens[p.current]
	}
	return Token{Kind: TokenEOF}
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return !p.atEnd() && p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind TokenKind, expected string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.errorExpected(expected)
}

func (p *Parser) consumeIdent(expected string) (string, error) {
	tok, err := p.consume(TokenIdent, expected)
	if err != nil {
		return "", err
	}
	return tok.Lexeme, nil
}

func (p *Parser) consumeNumber(expected string) (int, error) {
	tok, err := p.consume(TokenNumber, expected)
	if err != nil {
		return 0, err
	}
	value, convErr := strconv.Atoi(tok.Lexeme)
	if convErr != nil {
		return 0, &SyntaxError{Offset: tok.Offset, Line: tok.Line, Got: tok.Lexeme, Expected: "integer " + expected}
	}
	return value, nil
}

func (p *Parser) atEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Kind == TokenEOF
}

func (p *Parser) errorExpected(expected string) error {
	tok := p.peek()
	got := tok.Lexeme
	if tok.Kind == TokenEOF {
		got = "end of input"
	}
	return &SyntaxError{Offset: tok.Offset, Line: tok.Line, Got: got, Expected: expected}
}
