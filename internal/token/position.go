package token

import "fmt"

// Position locates a token. Line and Column are what diagnostics show;
// Offset is what orders them, since columns restart in every logical
// line split from the same physical line.
type Position struct {
	Filename string
	Line     int // 1-indexed physical line
	Column   int // 1-indexed byte column within the logical line's trimmed text
	Offset   int // 0-indexed byte offset into the source
}

// At returns the position of column col (0-indexed) of a logical line
// whose trimmed text starts at byte base of the source.
func At(filename string, line, base, col int) Position {
	return Position{Filename: filename, Line: line, Column: col + 1, Offset: base + col}
}

// String formats the position as "file:line:col", or "line:col" when there
// is no filename.
func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Known reports whether p points into the source. Synthetic tokens made
// for unterminated blocks still carry a line.
func (p Position) Known() bool {
	return p.Line > 0
}

// Less orders positions by line, then by offset.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Offset < q.Offset
}
