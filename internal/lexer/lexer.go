// Package lexer splits toylang source into logical lines of tokens.
//
// A logical line ends at a line break, or straight after a function header
// marker ("=>" or a lone ":") so that a single-line function body is parsed
// as its own line. A trailing "//" comment also starts a new logical line.
// Lines are trimmed and then split on whitespace, except that a double quoted
// run is one token, and a "//" comment line or a "#" raw Rust line is a
// single token left exactly as written.
package lexer

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/kolkov/toylang/internal/token"
)

// Lexer produces logical lines from toylang source.
type Lexer struct {
	src      []byte // Source code
	offset   int    // Current byte offset
	line     int    // Current physical line (1-indexed)
	filename string
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1}
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// WithFilename sets the filename recorded in token positions.
func (l *Lexer) WithFilename(name string) *Lexer {
	l.filename = name
	return l
}

// WithFirstLine sets the number of the first physical line, for sources fed
// one line at a time.
func (l *Lexer) WithFirstLine(n int) *Lexer {
	l.line = n
	return l
}

// Next returns the next logical line. The second result is false at EOF.
func (l *Lexer) Next() (token.Line, bool) {
	if l.offset >= len(l.src) {
		return token.Line{}, false
	}
	number := l.line
	start := l.offset
	end := l.scanLine()
	return l.tokenize(number, start, end), true
}

// scanLine advances past one logical line and returns the end offset of its text.
func (l *Lexer) scanLine() int {
	inQuotes := false
	lineStart := l.offset
	for l.offset < len(l.src) {
		ch := l.src[l.offset]
		switch {
		case ch == '\n':
			end := l.offset
			if end > lineStart && l.src[end-1] == '\r' {
				end--
			}
			l.offset++
			l.line++
			return end
		case ch == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case ch == '=' && l.peek(1) == '>' && !l.isVerbatimLine(lineStart):
			l.offset += 2
			return l.offset
		case ch == ':' && l.isLoneColon(lineStart) && !l.isVerbatimLine(lineStart):
			l.offset++
			return l.offset
		case ch == '/' && l.peek(1) == '/' && l.isTrailingComment(lineStart):
			// The comment becomes the next logical line.
			return l.offset
		}
		l.offset++
	}
	end := l.offset
	if end > lineStart && l.src[end-1] == '\r' {
		end--
	}
	return end
}

func (l *Lexer) peek(n int) byte {
	if l.offset+n < len(l.src) {
		return l.src[l.offset+n]
	}
	return 0
}

// isVerbatimLine reports whether the line being scanned is a comment or raw
// Rust, which are never split.
func (l *Lexer) isVerbatimLine(lineStart int) bool {
	return isVerbatim(strings.TrimLeft(string(l.src[lineStart:l.offset]), " \t"))
}

func isVerbatim(text string) bool {
	return strings.HasPrefix(text, "//") || strings.HasPrefix(text, "#")
}

func (l *Lexer) isTrailingComment(lineStart int) bool {
	if l.offset == lineStart || !isSpace(l.src[l.offset-1]) {
		return false
	}
	return strings.TrimSpace(string(l.src[lineStart:l.offset])) != "" && !l.isVerbatimLine(lineStart)
}

func (l *Lexer) isLoneColon(lineStart int) bool {
	before := l.offset == lineStart || isSpace(l.src[l.offset-1])
	after := l.offset+1 >= len(l.src) || isSpace(l.src[l.offset+1])
	return before && after
}

// tokenize trims src[start:end] and splits it into tokens.
func (l *Lexer) tokenize(number, start, end int) token.Line {
	raw := string(l.src[start:end])
	text := strings.TrimSpace(raw)
	lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	base := start + lead

	ln := token.Line{Number: number, Text: text}
	if text == "" {
		return ln
	}
	if isVerbatim(text) {
		ln.Tokens = []token.Token{l.token(text, number, 0, base, 0)}
		return ln
	}

	from := -1
	inQuotes := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if from < 0 {
			if isSpace(ch) {
				continue
			}
			from = i
		}
		if ch == '"' {
			if inQuotes {
				// Closing quote always ends the token.
				ln.Tokens = append(ln.Tokens, l.token(text[from:i+1], number, from, base, len(ln.Tokens)))
				from = -1
				inQuotes = false
				continue
			}
			inQuotes = true
			continue
		}
		if isSpace(ch) && !inQuotes {
			ln.Tokens = append(ln.Tokens, l.token(text[from:i], number, from, base, len(ln.Tokens)))
			from = -1
		}
	}
	if from >= 0 {
		ln.Tokens = append(ln.Tokens, l.token(text[from:], number, from, base, len(ln.Tokens)))
	}
	return ln
}

func (l *Lexer) token(value string, line, col, base, index int) token.Token {
	return token.Token{
		Value: value,
		Pos:   token.At(l.filename, line, base, col),
		Index: index,
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\v' || ch == '\f'
}

// Lines returns all logical lines of src, including empty ones.
func Lines(src string) []token.Line {
	return LinesFile("", src)
}

// LinesFile is like Lines but records filename in every token position.
func LinesFile(filename, src string) []token.Line {
	l := NewFromString(src).WithFilename(filename)
	var lines []token.Line
	for {
		ln, ok := l.Next()
		if !ok {
			return lines
		}
		lines = append(lines, ln)
	}
}

// JSON renders lines of tokens as nested arrays for editor tooling:
// one array per line, each token as [value, line, start, end] with a
// 0-based line index and inclusive 0-based columns.
func JSON(lines []token.Line) ([]byte, error) {
	out := make([][][]any, 0, len(lines))
	for i, ln := range lines {
		toks := make([][]any, 0, len(ln.Tokens))
		for _, t := range ln.Tokens {
			toks = append(toks, []any{t.Value, i, t.Pos.Column - 1, t.End() - 1})
		}
		out = append(out, toks)
	}
	return json.Marshal(out)
}
