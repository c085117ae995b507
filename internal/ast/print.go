package ast

import (
	"fmt"
	"io"
)

// Printer provides pretty-printing for the node store.
// It outputs one node per line, indented by depth, suitable for debugging.
type Printer struct {
	w      io.Writer
	typeOf func(int) string
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithTypes makes the printer append the resolved type of each node.
func (p *Printer) WithTypes(typeOf func(int) string) *Printer {
	p.typeOf = typeOf
	return p
}

// Print writes the tree reachable from the root.
func (p *Printer) Print(s *Store) error {
	Walk(s, 0, func(i, depth int) bool {
		p.writeIndent(depth)
		p.printf("%d: %s", i, s.Node(i))
		if p.typeOf != nil && !s.Kind(i).IsLayout() && i != 0 {
			p.printf(" [%s]", p.typeOf(i))
		}
		p.printf("\n")
		return p.err == nil
	})
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent(depth int) {
	if p.err != nil {
		return
	}
	for i := 0; i < depth; i++ {
		_, p.err = io.WriteString(p.w, "    ")
	}
}
