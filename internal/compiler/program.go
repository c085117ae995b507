package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/toylang/internal/ast"
)

// Program is a compiled toylang source.
type Program struct {
	// Output is the rendered Rust source.
	Output string

	// Store is the node store the output was rendered from.
	Store *ast.Store

	// Types holds the resolved type of every node in Store.
	Types *TypeInfo

	// Unresolved lists the nodes whose type is still Undefined or
	// disjunctive after resolution, in tree order.
	Unresolved []int
}

// DumpTree writes the tree with resolved types, one node per line.
func (p *Program) DumpTree(w io.Writer) error {
	return ast.NewPrinter(w).WithTypes(p.Types.TypeOf).Print(p.Store)
}

// DumpTypes writes one line per typed node reachable from the root:
// its index, the node and its resolved type.
func (p *Program) DumpTypes(w io.Writer) error {
	var sb strings.Builder
	ast.Walk(p.Store, 0, func(i, _ int) bool {
		if carriesType(p.Store.Kind(i)) {
			fmt.Fprintf(&sb, "%4d  %-40s %s\n", i, p.Store.Node(i).String(), p.Types.TypeOf(i))
		}
		return true
	})
	_, err := io.WriteString(w, sb.String())
	return err
}
