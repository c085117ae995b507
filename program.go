package toylang

import (
	"io"

	"github.com/kolkov/toylang/internal/compiler"
	"github.com/kolkov/toylang/internal/lexer"
	"github.com/kolkov/toylang/internal/token"
)

// Result is the outcome of a compilation.
//
// A Result is returned even when compilation fails, so that the output and
// the tree can be inspected. In that case Output must not be treated as a
// valid program.
type Result struct {
	// Output is the generated Rust source.
	Output string

	lines    []token.Line
	compiled *compiler.Program
}

// Tree writes the node tree with resolved types, one node per line.
func (r *Result) Tree(w io.Writer) error {
	return r.compiled.DumpTree(w)
}

// Types writes the resolved type of every typed node.
func (r *Result) Types(w io.Writer) error {
	return r.compiled.DumpTypes(w)
}

// Tokens returns the source tokens as JSON: one array per logical line,
// each token as [value, line, start, end] with 0-based inclusive columns.
func (r *Result) Tokens() ([]byte, error) {
	return lexer.JSON(r.lines)
}

// Unresolved returns the number of nodes whose type could not be resolved
// within the pass limit.
func (r *Result) Unresolved() int {
	return len(r.compiled.Unresolved)
}
