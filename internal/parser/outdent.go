package parser

import (
	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/types"
)

// outdentIfComplete closes scopes, innermost first, for as long as the
// innermost one has all the children it expects.
func (p *Parser) outdentIfComplete() {
	for p.scopes.Depth() >= 2 {
		if !p.closeIfComplete() {
			return
		}
	}
}

// closeIfComplete applies the closing rule of the innermost scope and
// reports whether it closed anything.
func (p *Parser) closeIfComplete() bool {
	idx := p.scopes.Current()
	n := p.store.Node(idx)
	switch n.Kind {
	case ast.Println, ast.Constant, ast.Assignment, ast.StructEdit:
		if len(n.Children) >= 1 {
			p.close()
			return true
		}
	case ast.BuiltinFunctionCall:
		if len(n.Children) == len(p.store.Node(n.Def).ArgNames) {
			p.close()
			return true
		}
	case ast.FunctionCall:
		return p.closeCallIfComplete(n)
	case ast.If:
		if len(n.Children) > 2 {
			p.close()
			return true
		}
	case ast.FunctionDef:
		if p.endsWithReturnExpression(n) {
			p.close()
			return true
		}
	case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.ConstantRef,
		ast.BuiltinFunctionDef, ast.FunctionDefInProgress, ast.Parens, ast.List, ast.Struct,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.Type, ast.Rust, ast.Eol, ast.Seol,
		ast.Indent, ast.Unused:
	}
	return false
}

// closeCallIfComplete closes a user function call once it has one child per
// argument.
//
// A call through a function-typed argument closes two scopes: the call and
// its parent. In return position the parent is the enclosing function, so
// the call also ends the function body.
func (p *Parser) closeCallIfComplete(n ast.Node) bool {
	def := p.store.Node(n.Def)
	if def.Kind == ast.Arg {
		if len(n.Children) == types.DynFnArgCount(def.Type) {
			p.close()
			p.close()
			return true
		}
		return false
	}
	if len(n.Children) > 0 && len(n.Children) == len(def.ArgNames) {
		p.close()
		return true
	}
	return false
}

// endsWithReturnExpression reports whether the last child of a function
// body is a complete expression starting its own line.
func (p *Parser) endsWithReturnExpression(fn ast.Node) bool {
	c := fn.Children
	if len(c) < 2 || p.store.Kind(c[len(c)-2]) != ast.Indent {
		return false
	}
	return isReturnExpression(p.store.Kind(c[len(c)-1]))
}

// isReturnExpression reports whether a node of kind k, heading a line in a
// function body, is the function's return value.
func isReturnExpression(k ast.Kind) bool {
	switch k {
	case ast.List, ast.Int, ast.Float, ast.String, ast.Bool, ast.Constant, ast.ConstantRef,
		ast.If, ast.BuiltinFunctionCall, ast.FunctionCall:
		return true
	case ast.Root, ast.Comment, ast.Arg, ast.Assignment, ast.BuiltinFunctionDef,
		ast.FunctionDefInProgress, ast.FunctionDef, ast.Parens, ast.Struct, ast.StructEdit,
		ast.LoopForRangeInProgress, ast.LoopForRange, ast.Type, ast.Println, ast.Rust, ast.Eol,
		ast.Seol, ast.Indent, ast.Unused:
		return false
	}
	return false
}

// seolIfLast ends the statement if the current token is the last of its line.
func (p *Parser) seolIfLast() {
	if p.isLast() {
		p.seol()
	}
}

// seol appends a statement end, except after a function's return
// expression. An Int heading a statement is marked to render with an
// explicit i64 cast.
func (p *Parser) seol() {
	if head := p.statementHead(); head != ast.NoParent {
		if p.store.Kind(head) == ast.Int {
			p.store.MarkAsI64(head)
		}
		parent := p.store.Parent(head)
		if parent != ast.NoParent && p.store.Kind(parent) == ast.FunctionDef && isReturnExpression(p.store.Kind(head)) {
			return
		}
	}
	p.appendNode(ast.Node{Kind: ast.Seol})
}

// statementHead returns the node appended right after the most recent
// Indent marker, or NoParent.
func (p *Parser) statementHead() int {
	for i := p.store.Last(); i > 0; i-- {
		if p.store.Kind(i) == ast.Indent {
			if i+1 < p.store.Len() {
				return i + 1
			}
			return ast.NoParent
		}
	}
	return ast.NoParent
}
