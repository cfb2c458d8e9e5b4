package dsl

import "strings"

// Lexer scans TradeFlow source text into a flat token sequence in a single
// left-to-right pass with no backtracking. Each parse creates its own Lexer;
// instances are not reused across calls.
type Lexer struct {
	source  []rune
	tokens  []Token
	start   int
	current int
	line    int
}

// NewLexer creates a lexer over the given source text.
func NewLexer(source string) *Lexer {
	return &Lexer{
		source: []rune(source),
		line:   1,
	}
}

// Tokenize scans the whole input and returns the token sequence terminated
// by an EOF token. It fails with a *LexicalError on the first unrecognized
// character, unterminated string, or malformed comment opener.
func (l *Lexer) Tokenize() ([]Token, error) {
	for !l.atEnd() {
		l.start = l.current
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Kind: TokenEOF, Offset: l.current, Line: l.line})
	return l.tokens, nil
}

func (l *Lexer) scanToken() error {
	c := l.advance()

	switch c {
	case '(':
		l.addToken(TokenLeftParen)
	case ')':
		l.addToken(TokenRightParen)
	case '{':
		l.addToken(TokenLeftBrace)
	case '}':
		l.addToken(TokenRightBrace)
	case ':':
		l.addToken(TokenColon)
	case ';':
		l.addToken(TokenSemicolon)
	case ',':
		l.addToken(TokenComma)
	case '.':
		l.addToken(TokenDot)
	case '+':
		l.addToken(TokenPlus)
	case '=':
		if l.match('=') {
			l.addToken(TokenEqualEqual)
		} else {
			l.addToken(TokenEqual)
		}
	case '!':
		if l.match('=') {
			l.addToken(TokenNotEqual)
		} else {
			return l.errorf(c, "unexpected character")
		}
	case '<':
		if l.match('=') {
			l.addToken(TokenLessEqual)
		} else {
			l.addToken(TokenLess)
		}
	case '>':
		if l.match('=') {
			l.addToken(TokenGreaterEqual)
		} else {
			l.addToken(TokenGreater)
		}
	case '/':
		return l.comment()
	case '"', '\'':
		return l.string(c)
	case ' ', '\t', '\r':
		// skip
	case '\n':
		l.line++
	default:
		switch {
		case isDigit(c):
			l.number()
		case isIdentStart(c):
			l.identifier()
		default:
			return l.errorf(c, "unexpected character")
		}
	}
	return nil
}

// comment consumes a // line comment or a /* ... */ block comment. A bare
// slash is a malformed comment opener.
func (l *Lexer) comment() error {
	switch {
	case l.match('/'):
		for !l.atEnd() && l.peek() != '\n' {
			l.advance()
		}
	case l.match('*'):
		for {
			if l.atEnd() {
				return l.errorf(0, "unterminated block comment")
			}
			c := l.advance()
			if c == '\n' {
				l.line++
			}
			if c == '*' && l.match('/') {
				return nil
			}
		}
	default:
		return l.errorf('/', "malformed comment opener")
	}
	return nil
}

// string consumes a quoted string literal, supporting both quote styles.
// A backslash escape copies the following character verbatim; no further
// escape semantics are applied.
func (l *Lexer) string(quote rune) error {
	var sb strings.Builder
	for !l.atEnd() && l.peek() != quote {
		c := l.advance()
		if c == '\\' && !l.atEnd() {
			c = l.advance()
		}
		if c == '\n' {
			l.line++
		}
		sb.WriteRune(c)
	}

	if l.atEnd() {
		return l.errorf(0, "unterminated string")
	}

	l.advance() // closing quote
	l.addTokenLiteral(TokenString, sb.String())
	return nil
}

func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}
	// fractional part
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	l.addToken(TokenNumber)
}

func (l *Lexer) identifier() {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	text := string(l.source[l.start:l.current])
	if kind, ok := keywords[text]; ok {
		l.addToken(kind)
		return
	}
	l.addToken(TokenIdent)
}

func (l *Lexer) advance() rune {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) match(expected rune) bool {
	if l.atEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) addToken(kind TokenKind) {
	l.addTokenLiteral(kind, "")
}

func (l *Lexer) addTokenLiteral(kind TokenKind, literal string) {
	l.tokens = append(l.tokens, Token{
		Kind:    kind,
		Lexeme:  string(l.source[l.start:l.current]),
		Literal: literal,
		Offset:  l.start,
		Line:    l.line,
	})
}

func (l *Lexer) errorf(c rune, message string) error {
	return &LexicalError{
		Offset:  l.start,
		Line:    l.line,
		Char:    c,
		Message: message,
	}
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c rune) bool { return isIdentStart(c) || isDigit(c) }
