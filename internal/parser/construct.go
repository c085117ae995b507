package parser

import (
	"strings"

	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/semantic"
	"github.com/kolkov/toylang/internal/types"
)

// add is the common append sequence of every construction routine:
//
//  1. an Indent marker if the token starts its line,
//  2. the node itself under the current scope,
//  3. the placement check,
//  4. a new scope for the node if it takes children,
//  5. closing every scope whose children are now complete.
func (p *Parser) add(n ast.Node, opens bool) (int, error) {
	if p.isFirst() {
		p.appendNode(ast.Node{Kind: ast.Indent})
	}
	idx := p.appendNode(n)
	if err := p.check(idx); err != nil {
		return idx, err
	}
	if opens {
		p.open(idx)
	}
	p.outdentIfComplete()
	return idx, nil
}

// leaf appends a node without children and ends the statement if the token
// is the last of its line.
func (p *Parser) leaf(n ast.Node) error {
	if _, err := p.add(n, false); err != nil {
		return err
	}
	p.seolIfLast()
	return nil
}

// container appends a node that takes the following tokens as children.
func (p *Parser) container(n ast.Node) error {
	_, err := p.add(n, true)
	return err
}

// -----------------------------------------------------------------------------
// Values
// -----------------------------------------------------------------------------

func (p *Parser) intLit(value string) error {
	return p.leaf(ast.Node{Kind: ast.Int, Value: value, Type: types.Int})
}

func (p *Parser) floatLit(value string) error {
	return p.leaf(ast.Node{Kind: ast.Float, Value: value, Type: types.Float})
}

func (p *Parser) stringLit(value string) error {
	if !isString(value) {
		return p.errorf(errString)
	}
	return p.leaf(ast.Node{Kind: ast.String, Value: value, Type: types.String})
}

func (p *Parser) boolLit(value string) error {
	return p.leaf(ast.Node{Kind: ast.Bool, Value: value, Type: types.Bool})
}

// comment appends a whole-line comment followed by a line end.
func (p *Parser) comment(value string) error {
	if !strings.HasPrefix(value, "//") {
		return p.errorf(errCommentSingleLine)
	}
	if _, err := p.add(ast.Node{Kind: ast.Comment, Value: value}, false); err != nil {
		return err
	}
	p.appendNode(ast.Node{Kind: ast.Eol})
	return nil
}

// rustCode appends a raw Rust line. "# code" is written in place, as its
// own statement; "## code" is written ahead of fn main.
func (p *Parser) rustCode(value string) error {
	code, beforeMain := strings.CutPrefix(value, "##")
	if !beforeMain {
		code = strings.TrimPrefix(value, "#")
	}
	code = strings.TrimSpace(code)
	if !p.isFirst() || code == "" {
		return p.errorf(errRustCode)
	}
	n := ast.Node{Kind: ast.Rust, Value: code, BeforeMain: beforeMain}
	if beforeMain {
		return p.check(p.appendNode(n))
	}
	if _, err := p.add(n, false); err != nil {
		return err
	}
	p.appendNode(ast.Node{Kind: ast.Eol})
	return nil
}

// typeName appends a type to a function signature, or sets the element
// type of the list being built.
func (p *Parser) typeName(value string) error {
	if p.currentKind() == ast.List {
		p.store.SetType(p.scopes.Current(), types.Vec(value))
		return nil
	}
	_, err := p.add(ast.Node{Kind: ast.Type, Value: value, Type: value}, false)
	return err
}

// -----------------------------------------------------------------------------
// Names
// -----------------------------------------------------------------------------

// newConstant appends the definition of a name that is not yet known.
func (p *Parser) newConstant(name string) error {
	err := p.container(ast.Node{Kind: ast.Constant, Name: name, Type: types.Undefined})
	if err != nil {
		if s := semantic.Suggest(name, p.knownNames()); s != "" {
			if pe, ok := err.(*ParseError); ok {
				pe.Message += " Did you mean \"" + s + "\"?"
			}
		}
	}
	return err
}

// constantRef appends a use of a known constant, argument or loop variable.
func (p *Parser) constantRef(sym semantic.Symbol) error {
	return p.leaf(ast.Node{
		Kind:   ast.ConstantRef,
		Name:   sym.Name,
		Type:   sym.Type,
		Target: sym.Name,
		Def:    sym.Index,
	})
}

// arg appends an argument name to the function signature being built.
func (p *Parser) arg(name string) error {
	_, err := p.add(ast.Node{
		Kind:  ast.Arg,
		Name:  name,
		Scope: p.scopes.Current(),
		Type:  types.Undefined,
	}, false)
	return err
}

// -----------------------------------------------------------------------------
// Calls
// -----------------------------------------------------------------------------

// builtinCall appends a call of the builtin defined at def.
func (p *Parser) builtinCall(def int) error {
	d := p.store.Node(def)
	return p.container(ast.Node{
		Kind: ast.BuiltinFunctionCall,
		Name: d.Name,
		Type: d.Type,
		Def:  def,
	})
}

// functionCall appends a call of a user function or of a function-typed
// argument. A call without arguments is complete as soon as it is appended.
func (p *Parser) functionCall(sym semantic.Symbol) error {
	ret := sym.Type
	if sym.IsDynFn() {
		ret = types.DynFnReturn(sym.Type)
	}
	n := ast.Node{Kind: ast.FunctionCall, Name: sym.Name, Type: ret, Def: sym.Index}
	if sym.ArgCount(p.store) == 0 {
		return p.leaf(n)
	}
	return p.container(n)
}

// functionRefOrCall turns "( name )" into a reference to the function, and
// any other use of a function name into a call.
func (p *Parser) functionRefOrCall(sym semantic.Symbol) error {
	parens := p.scopes.Current()
	if p.store.Kind(parens) != ast.Parens {
		return p.functionCall(sym)
	}
	p.store.Replace(parens, ast.Node{
		Kind:   ast.ConstantRef,
		Name:   sym.Name,
		Type:   sym.Type,
		Target: sym.Name,
		Def:    sym.Index,
		Line:   p.store.Node(parens).Line,
	})
	p.logger.Debug("function reference", "index", parens, "name", sym.Name)
	return nil
}

// -----------------------------------------------------------------------------
// Containers
// -----------------------------------------------------------------------------

func (p *Parser) assignment() error {
	return p.container(ast.Node{Kind: ast.Assignment})
}

func (p *Parser) println() error {
	return p.container(ast.Node{Kind: ast.Println})
}

func (p *Parser) ifExpression() error {
	return p.container(ast.Node{Kind: ast.If, Type: types.Undefined})
}

func (p *Parser) listStart() error {
	return p.container(ast.Node{Kind: ast.List, Type: types.Undefined})
}

func (p *Parser) parensStart() error {
	return p.container(ast.Node{Kind: ast.Parens})
}

func (p *Parser) functionDefStart() error {
	return p.container(ast.Node{Kind: ast.FunctionDefInProgress, Type: types.Undefined})
}

func (p *Parser) loopStart() error {
	return p.container(ast.Node{Kind: ast.LoopForRangeInProgress})
}

// -----------------------------------------------------------------------------
// Structs
// -----------------------------------------------------------------------------

// structStart opens a struct literal. The constant it is assigned to names
// its type.
func (p *Parser) structStart() error {
	name := types.Undefined
	if cur := p.store.Node(p.scopes.Current()); cur.Kind == ast.Constant {
		name = structName(cur.Name)
	}
	return p.container(ast.Node{Kind: ast.Struct, Name: name, Type: types.Undefined})
}

// structEnd closes the innermost struct literal, which must have at least
// one field and no key twice.
func (p *Parser) structEnd() error {
	st := p.scopes.Current()
	if p.store.Kind(st) != ast.Struct {
		for _, i := range p.scopes.Indices() {
			if p.store.Kind(i) == ast.Struct {
				return p.errorf(errStruct)
			}
		}
		return p.errorf(errStructEndNoStart)
	}
	fields, ok := p.store.StructFields(st)
	if !ok || len(fields) == 0 {
		return p.errorf(errStruct)
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Key] {
			return p.errorf(errStructDuplicateKey, f.Key)
		}
		seen[f.Key] = true
	}
	p.logger.Debug("struct", "index", st, "name", p.store.Node(st).Name, "fields", len(fields))
	p.close()
	p.outdentIfComplete()
	p.seolIfLast()
	return nil
}

// structEdit appends the target of "= name.key value", which must name a
// key of a struct defined earlier.
func (p *Parser) structEdit(value string) error {
	base, key, _ := strings.Cut(value, ".")
	if !isName(base) || !isName(key) {
		return p.errorf(errStructEdit)
	}
	sym, ok := p.symbols.Lookup(base, p.scopes.Indices())
	if !ok {
		return p.errorf(errStructEditUndefined, base, base)
	}
	st, ok := p.symbols.StructOf(sym)
	if !ok {
		return p.errorf(errStructEditUndefined, base, base)
	}
	field, ok := p.store.FieldOf(st, key)
	if !ok {
		fields, _ := p.store.StructFields(st)
		keys := make([]string, len(fields))
		for i, f := range fields {
			keys[i] = f.Key
		}
		if s := semantic.Suggest(key, keys); s != "" {
			return p.errorf(errStructEditKeyHint, base, key, s)
		}
		return p.errorf(errStructEditKey, base, key)
	}
	return p.container(ast.Node{
		Kind:   ast.StructEdit,
		Name:   value,
		Target: field.Key,
		Def:    st,
		Type:   types.Undefined,
	})
}

// -----------------------------------------------------------------------------
// Closers
// -----------------------------------------------------------------------------

// listEnd closes the innermost list. An untyped list must have elements;
// an untyped list of lists takes its type from its first element.
func (p *Parser) listEnd() error {
	list := p.scopes.Current()
	if p.store.Kind(list) != ast.List {
		return p.errorf(errListEndNoStart)
	}
	n := p.store.Node(list)
	if n.Type == types.Undefined {
		if len(n.Children) == 0 {
			return p.errorf(errList)
		}
		if first := p.store.Node(n.Children[0]); first.Kind == ast.List {
			p.store.SetType(list, types.Vec(first.Type))
		}
	}
	p.close()
	p.outdentIfComplete()
	p.seolIfLast()
	return nil
}

// parensEnd closes the innermost parenthesis or function reference.
func (p *Parser) parensEnd() error {
	if k := p.currentKind(); k != ast.Parens && k != ast.ConstantRef {
		return p.errorf(errParensEndNoStart)
	}
	p.close()
	p.outdentIfComplete()
	p.seolIfLast()
	return nil
}
