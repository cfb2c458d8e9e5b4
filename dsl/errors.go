package dsl

import "fmt"

// LexicalError reports a character-level scanning failure. The first
// occurrence aborts the entire tokenization; no partial token stream is
// returned.
type LexicalError struct {
	Offset  int
	Line    int
	Char    rune
	Message string
}

// Error implements the error interface.
func (e *LexicalError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("lexical error at line %d (offset %d): %s %q", e.Line, e.Offset, e.Message, string(e.Char))
	}
	return fmt.Sprintf("lexical error at line %d (offset %d): %s", e.Line, e.Offset, e.Message)
}

// SyntaxError reports the first grammar violation encountered by the
// parser. Parsing is fail-fast: no partial AST accompanies it.
type SyntaxError struct {
	Offset   int
	Line     int
	Got      string
	Expected string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d (offset %d): expected %s, got %q", e.Line, e.Offset, e.Expected, e.Got)
}
