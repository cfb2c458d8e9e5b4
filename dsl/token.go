package dsl

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// Keywords
	TokenWorkflow TokenKind = iota
	TokenStep
	TokenLet
	TokenVar
	TokenConst
	TokenIf
	TokenElse
	TokenPrint
	TokenLog
	TokenFetch
	TokenSendEmail
	TokenNotify

	// Literals
	TokenString
	TokenNumber
	TokenIdent

	// Operators
	TokenPlus
	TokenEqual
	TokenEqualEqual
	TokenNotEqual
	TokenGreater
	TokenLess
	TokenGreaterEqual
	TokenLessEqual
	TokenDot

	// Punctuation
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenColon
	TokenSemicolon
	TokenComma

	// End of input
	TokenEOF
)

var tokenNames = map[TokenKind]string{
	TokenWorkflow:     "workflow",
	TokenStep:         "step",
	TokenLet:          "let",
	TokenVar:          "var",
	TokenConst:        "const",
	TokenIf:           "if",
	TokenElse:         "else",
	TokenPrint:        "print",
	TokenLog:          "log",
	TokenFetch:        "fetch",
	TokenSendEmail:    "send_email",
	TokenNotify:       "notify",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenIdent:        "identifier",
	TokenPlus:         "+",
	TokenEqual:        "=",
	TokenEqualEqual:   "==",
	TokenNotEqual:     "!=",
	TokenGreater:      ">",
	TokenLess:         "<",
	TokenGreaterEqual: ">=",
	TokenLessEqual:    "<=",
	TokenDot:          ".",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenColon:        ":",
	TokenSemicolon:    ";",
	TokenComma:        ",",
	TokenEOF:          "end of input",
}

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Lexeme  string
	Literal string // decoded value for string tokens, empty otherwise
	Offset  int    // byte offset of the first character in the source
	Line    int    // 1-based line number
}

// keywords maps reserved words, including the built-in command names, to
// their token kinds. Command names are only recognized as keywords because
// they are pre-registered here; every other word lexes as a plain
// identifier.
var keywords = map[string]TokenKind{
	"workflow":   TokenWorkflow,
	"step":       TokenStep,
	"let":        TokenLet,
	"var":        TokenVar,
	"const":      TokenConst,
	"if":         TokenIf,
	"else":       TokenElse,
	"print":      TokenPrint,
	"log":        TokenLog,
	"fetch":      TokenFetch,
	"send_email": TokenSendEmail,
	"notify":     TokenNotify,
}

// commandKeyword reports whether the token kind is one of the built-in
// command names. The parser treats these as identifiers in command
// position so that `step 1: print("x")` parses.
func commandKeyword(k TokenKind) bool {
	switch k {
	case TokenPrint, TokenLog, TokenFetch, TokenSendEmail, TokenNotify:
		return true
	}
	return false
}
