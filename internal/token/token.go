// Package token defines the lexical units of toylang source.
package token

// Class is the lexical class of a token, decided by its leading characters.
type Class uint8

const (
	ILLEGAL Class = iota // <illegal>

	// Delimiters
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	LPAREN    // (
	RPAREN    // )
	BACKSLASH // \
	ARROW     // =>
	ASSIGN    // =
	DOT       // .
	AT        // @
	QUESTION  // ?
	HASH      // #

	// Literals
	COMMENT // comment
	STRING  // string
	NUMBER  // number
	BOOL    // bool
	NAME    // name
)

var classNames = [...]string{
	ILLEGAL:   "<illegal>",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LPAREN:    "(",
	RPAREN:    ")",
	BACKSLASH: `\`,
	ARROW:     "=>",
	ASSIGN:    "=",
	DOT:       ".",
	AT:        "@",
	QUESTION:  "?",
	HASH:      "#",
	COMMENT:   "comment",
	STRING:    "string",
	NUMBER:    "number",
	BOOL:      "bool",
	NAME:      "name",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "<illegal>"
}

// IsLiteral returns true if the class carries a value (comment, string, number, bool, name).
func (c Class) IsLiteral() bool {
	return c >= COMMENT
}

// Classify returns the lexical class of a token value.
// Only the leading characters are inspected; callers validate the rest.
// A lone ":" is accepted as an alias of "=>".
func Classify(value string) Class {
	if value == "" {
		return ILLEGAL
	}
	switch value {
	case "=>", ":":
		return ARROW
	case "true", "false":
		return BOOL
	}
	c := value[0]
	switch {
	case c == '{':
		return LBRACE
	case c == '}':
		return RBRACE
	case c == '[':
		return LBRACKET
	case c == ']':
		return RBRACKET
	case c == '(':
		return LPAREN
	case c == ')':
		return RPAREN
	case c == '\\':
		return BACKSLASH
	case c == '=':
		return ASSIGN
	case c == '.':
		return DOT
	case c == '@':
		return AT
	case c == '?':
		return QUESTION
	case c == '#':
		return HASH
	case c == '/':
		return COMMENT
	case c == '"':
		return STRING
	case c == '-' || isDigit(c):
		return NUMBER
	case c == '_' || (c >= 'a' && c <= 'z'):
		return NAME
	}
	return ILLEGAL
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Token is one whitespace separated word of a source line.
type Token struct {
	Value string   // Raw text
	Pos   Position // Position of the first character
	Index int      // Index of the token within its line
}

// Len returns the token width in bytes.
func (t Token) Len() int {
	return len(t.Value)
}

// End returns the column of the last character of the token.
func (t Token) End() int {
	if t.Len() == 0 {
		return t.Pos.Column
	}
	return t.Pos.Column + t.Len() - 1
}

// Class returns the lexical class of the token.
func (t Token) Class() Class {
	return Classify(t.Value)
}

// Line is one logical source line after trimming.
type Line struct {
	Number int     // 1-indexed
	Text   string  // Trimmed text
	Tokens []Token // Tokens in source order
}

// IsLast reports whether i is the index of the last token on the line.
func (l Line) IsLast(i int) bool {
	return i == len(l.Tokens)-1
}
