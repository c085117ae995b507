package parser

import (
	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/types"
)

// functionDefEnd turns the signature being built into a FunctionDef.
//
// When "=>" is reached the store holds
//
//	Assignment
//	  Constant name
//	    FunctionDefInProgress
//	      <arg types> <return type> <arg names>
//
// and afterwards the FunctionDef takes the place of the Assignment under its
// parent, the Assignment and Constant are Unused, and the FunctionDef is the
// innermost scope, ready for its body.
func (p *Parser) functionDefEnd() error {
	wip := p.scopes.Current()
	if p.store.Kind(wip) != ast.FunctionDefInProgress {
		return p.errorf(errFuncDefEndNoStart)
	}

	var children []int
	for _, c := range p.store.Children(wip) {
		if !p.store.Kind(c).IsLayout() {
			children = append(children, c)
		}
	}
	n := len(children)
	if n == 0 || n%2 == 0 {
		return p.errorf(errFuncDefArgs)
	}
	half := n / 2
	for _, c := range children[:half+1] {
		if k := p.store.Kind(c); k != ast.Type && k != ast.Parens && k != ast.List {
			return p.errorf(errFuncDefArgTypesFirst)
		}
	}
	for _, c := range children[half+1:] {
		if p.store.Kind(c) != ast.Arg {
			return p.errorf(errFuncDefArgTypesFirst)
		}
	}

	constant := p.store.Parent(wip)
	if constant == ast.NoParent || p.store.Kind(constant) != ast.Constant {
		return p.errorf(errFuncDefNotAssigned)
	}
	assignment := p.store.Parent(constant)
	if assignment == ast.NoParent || p.store.Kind(assignment) != ast.Assignment {
		return p.errorf(errFuncDefNotAssigned)
	}
	outer := p.store.Parent(assignment)

	argTypes := make([]string, half)
	argNames := make([]string, half)
	for i := range half {
		argTypes[i] = p.signatureType(children[i])
		arg := children[half+1+i]
		argNames[i] = p.store.Node(arg).Name
		p.store.SetType(arg, argTypes[i])
	}
	name := p.store.Node(constant).Name
	p.store.Replace(wip, ast.Node{
		Kind:     ast.FunctionDef,
		Name:     name,
		ArgNames: argNames,
		ArgTypes: argTypes,
		Type:     p.signatureType(children[half]),
		Line:     p.store.Node(wip).Line,
	})
	p.store.SetChildren(wip, nil)
	p.store.Tombstone(assignment)
	p.store.Tombstone(constant)
	p.store.ReplaceChild(outer, assignment, wip)
	p.logger.Debug("function definition", "index", wip, "name", name, "args", argNames, "types", argTypes)

	for range 3 {
		p.close()
	}
	p.open(wip)
	p.outdentIfComplete()
	return nil
}

// signatureType returns the type written by a signature node: a type name,
// a typed empty list, or a parenthesised function type whose last member is
// the return type.
func (p *Parser) signatureType(idx int) string {
	n := p.store.Node(idx)
	switch n.Kind {
	case ast.Type:
		return n.Value
	case ast.List:
		return n.Type
	case ast.Parens:
		if len(n.Children) == 0 {
			return types.Undefined
		}
		members := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			members = append(members, p.signatureType(c))
		}
		last := len(members) - 1
		return types.DynFn(members[:last], members[last])
	case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg, ast.Constant,
		ast.ConstantRef, ast.Assignment, ast.BuiltinFunctionDef, ast.BuiltinFunctionCall,
		ast.FunctionDefInProgress, ast.FunctionDef, ast.FunctionCall, ast.Struct, ast.StructEdit,
		ast.If, ast.LoopForRangeInProgress, ast.LoopForRange, ast.Println, ast.Rust, ast.Eol,
		ast.Seol, ast.Indent, ast.Unused:
	}
	return types.Undefined
}

// loopEnd turns the innermost loop being built into a LoopForRange.
//
// The first three children of the loop are its header: a Constant holding
// the start of the range, the Int end of the range, and the statement end.
// The header is detached and the remaining children become the loop body.
func (p *Parser) loopEnd() error {
	loop := ast.NoParent
	for i := p.store.Last(); i > 0; i-- {
		if p.store.Kind(i) == ast.LoopForRangeInProgress {
			loop = i
			break
		}
	}
	if loop == ast.NoParent || !p.scopes.Contains(loop) {
		return p.errorf(errLoopForEndNoStart)
	}

	n := p.store.Node(loop)
	if len(n.Children) < 3 {
		return p.errorf(errLoopForMalformed)
	}
	variable := p.store.Node(n.Children[0])
	to := p.store.Node(n.Children[1])
	if variable.Kind != ast.Constant || len(variable.Children) != 1 || to.Kind != ast.Int {
		return p.errorf(errLoopForMalformed)
	}
	from := p.store.Node(variable.Children[0])
	if from.Kind != ast.Int {
		return p.errorf(errLoopForMalformed)
	}

	p.store.Replace(loop, ast.Node{
		Kind: ast.LoopForRange,
		Name: variable.Name,
		From: from.Value,
		To:   to.Value,
		Line: n.Line,
	})
	p.store.SetChildren(loop, n.Children[3:])
	p.logger.Debug("loop", "index", loop, "name", variable.Name, "from", from.Value, "to", to.Value)

	for p.scopes.Contains(loop) {
		p.close()
	}
	p.outdentIfComplete()
	return nil
}
