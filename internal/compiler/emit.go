package compiler

import (
	"fmt"
	"strings"

	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/builtins"
	"github.com/kolkov/toylang/internal/types"
)

// outdentMarker on the output stack means: outdent, then write the closing
// text of the node that follows it. The root is never anyone's child, so its
// index is free to use.
const outdentMarker = 0

// emitter renders a resolved store as Rust source.
//
// The traversal keeps a stack of nodes still to write. A node with children
// pushes them, then an outdent marker and itself, so that its closing text
// is written after the last child. Only the depth of the traversal matters
// for indentation; which node is whose child was fixed during construction.
type emitter struct {
	store *ast.Store
	info  *TypeInfo
	nl    string

	out   strings.Builder
	depth int // Starts at 2: the first level is inside main

	stmtIndent string // Indent of the statement being written

	errs ErrorList
}

// Emit renders s as the body of a Rust main function, preceded by the
// struct definitions and "##" lines of the program, using info for types
// and nl as the line terminator. Malformed nodes are rendered as far as
// possible and listed in the returned errors.
func Emit(s *ast.Store, info *TypeInfo, nl string) (string, ErrorList) {
	e := &emitter{store: s, info: info, nl: nl, depth: 2}
	e.beforeMain()
	e.out.WriteString("fn main() {" + nl)

	stack := append([]int(nil), s.Children(0)...)
	for len(stack) > 0 {
		i := stack[0]
		stack = stack[1:]
		if i == outdentMarker {
			e.depth--
			e.out.WriteString(e.closeText(stack[0]))
			stack = stack[1:]
			continue
		}
		if !e.renderedByParent(i) {
			e.out.WriteString(e.text(i))
		}
		children := s.Children(i)
		if len(children) == 0 || s.Kind(i) == ast.BuiltinFunctionCall || s.Kind(i) == ast.Struct {
			continue
		}
		next := make([]int, 0, len(children)+2+len(stack))
		next = append(next, children...)
		next = append(next, outdentMarker, i)
		stack = append(next, stack...)
		e.depth++
	}

	e.depth--
	e.out.WriteString("}" + nl)
	return e.out.String(), e.errs
}

// fail records that n could not be rendered as written.
func (e *emitter) fail(n ast.Node, token string, format string, args ...any) {
	e.errs = append(e.errs, &CompileError{Line: n.Line, Token: token, Message: fmt.Sprintf(format, args...)})
}

func (e *emitter) indent() string {
	return strings.Repeat(" ", 4*(e.depth-1))
}

// renderedByParent reports whether node i is written as part of its
// parent's text rather than on its own.
func (e *emitter) renderedByParent(i int) bool {
	parent := e.store.Parent(i)
	if parent == ast.NoParent {
		return false
	}
	switch e.store.Kind(parent) {
	case ast.Assignment, ast.FunctionCall, ast.Println, ast.List, ast.If, ast.Struct:
		return true
	case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.Constant,
		ast.ConstantRef, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall, ast.FunctionDefInProgress,
		ast.FunctionDef, ast.Parens, ast.StructEdit, ast.LoopForRangeInProgress, ast.LoopForRange,
		ast.Type, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return false
	}
	return false
}

// text returns the rendering of node i, including the children of kinds
// that render their own children.
func (e *emitter) text(i int) string {
	n := e.store.Node(i)
	switch n.Kind {
	case ast.Root, ast.BuiltinFunctionDef, ast.FunctionDefInProgress, ast.LoopForRangeInProgress,
		ast.Unused:
		return ""
	case ast.Comment, ast.Float, ast.Bool, ast.Type:
		return n.Value
	case ast.Int:
		if n.AsI64 {
			return n.Value + " as i64"
		}
		return n.Value
	case ast.String:
		return n.Value + ".to_string()"
	case ast.Arg, ast.Constant, ast.ConstantRef, ast.StructEdit:
		return n.Name
	case ast.Assignment:
		return e.assignment(n)
	case ast.List:
		return e.list(i, n)
	case ast.BuiltinFunctionCall:
		return e.builtinCall(i, n)
	case ast.FunctionDef:
		return e.functionDef(i, n)
	case ast.FunctionCall:
		return e.functionCall(i, n)
	case ast.Parens:
		var sb strings.Builder
		for _, c := range operands(e.store, i) {
			sb.WriteString(e.text(c))
		}
		return "(" + sb.String() + ")"
	case ast.If:
		return e.ifExpr(i)
	case ast.Struct:
		return e.structLiteral(i, n)
	case ast.Rust:
		if n.BeforeMain {
			return ""
		}
		return n.Value
	case ast.LoopForRange:
		return fmt.Sprintf("for %s in %s..%s {%s", n.Name, n.From, n.To, e.nl)
	case ast.Println:
		return e.println(i)
	case ast.Eol:
		return e.nl
	case ast.Seol:
		return ";" + e.nl
	case ast.Indent:
		e.stmtIndent = e.indent()
		return e.stmtIndent
	}
	panic(fmt.Sprintf("compiler: unhandled kind %v", n.Kind))
}

// closeText returns what is written after the last child of node i.
func (e *emitter) closeText(i int) string {
	switch e.store.Kind(i) {
	case ast.FunctionDef:
		return e.nl + e.indent() + "}" + e.nl
	case ast.LoopForRange:
		return e.indent() + "}" + e.nl
	case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.Constant,
		ast.ConstantRef, ast.Assignment, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall,
		ast.FunctionDefInProgress, ast.FunctionCall, ast.Parens, ast.List, ast.Struct,
		ast.StructEdit, ast.If, ast.LoopForRangeInProgress, ast.Type, ast.Println, ast.Rust,
		ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return ""
	}
	return ""
}

// beforeMain writes, in source order, the definition of every struct type
// and every "##" line.
func (e *emitter) beforeMain() {
	wrote, blank := false, true
	ast.Walk(e.store, 0, func(i, _ int) bool {
		n := e.store.Node(i)
		switch {
		case n.Kind == ast.Rust && n.BeforeMain:
			e.out.WriteString(n.Value + e.nl)
			wrote, blank = true, false
		case n.Kind == ast.Struct && e.info.Defines(i):
			e.out.WriteString(e.structDef(i))
			wrote, blank = true, true
		}
		return true
	})
	if wrote && !blank {
		e.out.WriteString(e.nl)
	}
}

// -----------------------------------------------------------------------------
// Per-kind rendering
// -----------------------------------------------------------------------------

// assignment renders the left-hand side of "= name value". A struct is
// bound mutably so that its fields can be edited.
func (e *emitter) assignment(n ast.Node) string {
	if len(n.Children) == 0 {
		e.fail(n, "=", "assignment without a constant")
		return fmt.Sprintf("let _: %s = ", types.Undefined)
	}
	c := n.Children[0]
	target := e.store.Node(c)
	if target.Kind == ast.StructEdit {
		return target.Name + " = "
	}
	if v := operands(e.store, c); len(v) > 0 && e.store.Kind(v[0]) == ast.Struct {
		return fmt.Sprintf("let mut %s: %s = ", target.Name, e.info.TypeOf(c))
	}
	return fmt.Sprintf("let %s: %s = ", target.Name, e.info.TypeOf(c))
}

// list renders a literal vector, or a typed constructor when it is empty.
func (e *emitter) list(i int, n ast.Node) string {
	elems := operands(e.store, i)
	if len(elems) == 0 {
		t := e.info.TypeOf(i)
		if !types.IsVec(t) {
			t = n.Type
		}
		return fmt.Sprintf("Vec::<%s>::new()", types.VecElem(t))
	}
	parts := make([]string, len(elems))
	for j, c := range elems {
		parts[j] = e.text(c)
	}
	return "vec![ " + strings.Join(parts, ", ") + " ]"
}

func (e *emitter) builtinCall(i int, n ast.Node) string {
	def := e.store.Node(n.Def)
	args := operands(e.store, i)
	f, ok := builtins.Lookup(def.Name)
	if !ok {
		f = builtins.Function{Name: def.Name, ArgNames: def.ArgNames, Template: def.Template}
	}
	if len(args) != f.Arity() {
		// Missing arguments stay as their placeholders.
		e.fail(n, n.Name, "%s takes %d arguments, found %d", n.Name, f.Arity(), len(args))
	}
	rendered := make([]string, len(args))
	for j, a := range args {
		rendered[j] = e.text(a)
	}
	return f.Render(rendered)
}

func (e *emitter) functionDef(i int, n ast.Node) string {
	params := make([]string, len(n.ArgNames))
	for j, name := range n.ArgNames {
		t := types.Undefined
		if j < len(n.ArgTypes) {
			t = n.ArgTypes[j]
		}
		params[j] = name + ": " + t
	}
	return fmt.Sprintf("fn %s(%s) -> %s {%s", n.Name, strings.Join(params, ", "), e.info.TypeOf(i), e.nl)
}

// functionCall renders a call. An argument passed where the callee expects
// a function is borrowed.
func (e *emitter) functionCall(i int, n ast.Node) string {
	args := operands(e.store, i)
	def := e.store.Node(n.Def)
	borrow := def.Kind == ast.FunctionDef && len(def.ArgTypes) == len(args)
	parts := make([]string, len(args))
	for j, a := range args {
		parts[j] = e.text(a)
		if borrow && types.IsDynFn(def.ArgTypes[j]) {
			parts[j] = "&" + parts[j]
		}
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ifExpr renders a conditional expression. The branches are indented one
// level deeper than the statement the expression belongs to.
func (e *emitter) ifExpr(i int) string {
	ops := operands(e.store, i)
	if len(ops) != 3 {
		e.fail(e.store.Node(i), "?", "if expression needs a condition and two branches, found %d values", len(ops))
	}
	parts := make([]string, 3)
	for j := range parts {
		if j < len(ops) {
			parts[j] = e.text(ops[j])
		}
	}
	outer := e.stmtIndent
	inner := outer + "    "
	var sb strings.Builder
	sb.WriteString("if " + parts[0] + " {" + e.nl)
	sb.WriteString(inner + parts[1] + e.nl)
	sb.WriteString(outer + "} else {" + e.nl)
	sb.WriteString(inner + parts[2] + e.nl)
	sb.WriteString(outer + "}")
	return sb.String()
}

// println prints vectors and structs with the debug formatter.
func (e *emitter) println(i int) string {
	args := operands(e.store, i)
	if len(args) == 0 {
		e.fail(e.store.Node(i), "@", "println without a value")
		return `println!("{}", )`
	}
	v := e.text(args[0])
	if t := e.info.TypeOf(args[0]); types.IsVec(t) || e.info.IsStruct(t) {
		return fmt.Sprintf("println!(\"{:?}\", &%s)", v)
	}
	return fmt.Sprintf("println!(\"{}\", %s)", v)
}

// structLiteral renders a struct value as a call of its constructor.
func (e *emitter) structLiteral(i int, n ast.Node) string {
	t := e.info.TypeOf(i)
	if !types.IsResolved(t) {
		t = n.Name
	}
	fields, ok := e.store.StructFields(i)
	if !ok {
		e.fail(n, "{", "struct %s has an entry that is not a key assignment", n.Name)
	}
	args := make([]string, len(fields))
	for j, f := range fields {
		args[j] = e.text(f.Value)
	}
	return t + "::new(" + strings.Join(args, ", ") + ")"
}

// structDef renders the type and constructor of the Struct at i.
func (e *emitter) structDef(i int) string {
	name := e.info.TypeOf(i)
	fields, _ := e.store.StructFields(i)
	nl := e.nl
	var decl, params, keys []string
	for _, f := range fields {
		t := e.info.TypeOf(f.Value)
		decl = append(decl, "    pub "+f.Key+": "+t+","+nl)
		params = append(params, f.Key+": "+t)
		keys = append(keys, f.Key)
	}
	var sb strings.Builder
	sb.WriteString("#[derive(Clone, Debug)]" + nl)
	sb.WriteString("pub struct " + name + " {" + nl)
	sb.WriteString(strings.Join(decl, ""))
	sb.WriteString("}" + nl + nl)
	sb.WriteString("impl " + name + " {" + nl)
	sb.WriteString("    pub fn new(" + strings.Join(params, ", ") + ") -> " + name + " {" + nl)
	sb.WriteString("        " + name + " { " + strings.Join(keys, ", ") + " }" + nl)
	sb.WriteString("    }" + nl)
	sb.WriteString("}" + nl + nl)
	return sb.String()
}
