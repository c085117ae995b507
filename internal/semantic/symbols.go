package semantic

import (
	"slices"

	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/types"
)

// SymbolKind defines the category of a symbol.
type SymbolKind int

const (
	SymbolConstant SymbolKind = iota // Constant or a later reference to it
	SymbolArg                        // Function argument
	SymbolFunction                   // User-defined function
	SymbolBuiltin                    // Built-in function
	SymbolLoopVar                    // Range loop variable
)

// String returns a human-readable name for the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case SymbolConstant:
		return "constant"
	case SymbolArg:
		return "arg"
	case SymbolFunction:
		return "function"
	case SymbolBuiltin:
		return "builtin"
	case SymbolLoopVar:
		return "loop variable"
	default:
		return "unknown"
	}
}

// Symbol is the declaration a name resolves to.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Index int    // Node index of the declaration
	Type  string // Construction-time type of the declaration
}

// IsDynFn reports whether the symbol is an argument holding a borrowed function.
func (s Symbol) IsDynFn() bool {
	return s.Kind == SymbolArg && types.IsDynFn(s.Type)
}

// ArgCount returns the number of arguments a call to the symbol takes.
func (s Symbol) ArgCount(store *ast.Store) int {
	switch s.Kind {
	case SymbolFunction, SymbolBuiltin:
		return len(store.Node(s.Index).ArgNames)
	case SymbolArg:
		return types.DynFnArgCount(s.Type)
	}
	return 0
}

// SymbolTable resolves names against a node store.
type SymbolTable struct {
	store *ast.Store
}

// NewSymbolTable creates a symbol table reading from store.
func NewSymbolTable(store *ast.Store) *SymbolTable {
	return &SymbolTable{store: store}
}

// Lookup returns the first declaration of name in store order.
// Arguments are only considered when their defining function is in open,
// the chain of currently open scopes.
func (st *SymbolTable) Lookup(name string, open []int) (Symbol, bool) {
	for i := 1; i < st.store.Len(); i++ {
		n := st.store.Node(i)
		if n.Name != name {
			continue
		}
		if sym, ok := st.symbolFor(i, n, open); ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

func (st *SymbolTable) symbolFor(i int, n ast.Node, open []int) (Symbol, bool) {
	sym := Symbol{Name: n.Name, Index: i, Type: n.Type}
	switch n.Kind {
	case ast.Constant, ast.ConstantRef:
		if st.isStructKey(i) {
			return Symbol{}, false
		}
		sym.Kind = SymbolConstant
	case ast.Arg:
		if !slices.Contains(open, n.Scope) {
			return Symbol{}, false
		}
		sym.Kind = SymbolArg
	case ast.FunctionDef:
		sym.Kind = SymbolFunction
	case ast.BuiltinFunctionDef:
		sym.Kind = SymbolBuiltin
	case ast.LoopForRange:
		sym.Kind = SymbolLoopVar
		sym.Type = types.Int
	case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Assignment,
		ast.BuiltinFunctionCall, ast.FunctionDefInProgress, ast.FunctionCall, ast.Parens,
		ast.List, ast.Struct, ast.StructEdit, ast.If, ast.LoopForRangeInProgress, ast.Type,
		ast.Println, ast.Rust, ast.Eol, ast.Seol, ast.Indent, ast.Unused:
		return Symbol{}, false
	}
	return sym, true
}

// isStructKey reports whether the node at i is a key inside a struct
// literal. Keys are only visible through their struct.
func (st *SymbolTable) isStructKey(i int) bool {
	parent := st.store.Parent(i)
	if parent == ast.NoParent {
		return false
	}
	if st.store.Kind(parent) == ast.Struct {
		return true
	}
	grand := st.store.Parent(parent)
	return st.store.Kind(parent) == ast.Assignment && grand != ast.NoParent && st.store.Kind(grand) == ast.Struct
}

// StructOf returns the Struct that sym, a constant, holds as its value.
func (st *SymbolTable) StructOf(sym Symbol) (int, bool) {
	if sym.Kind != SymbolConstant || st.store.Kind(sym.Index) != ast.Constant {
		return 0, false
	}
	for _, c := range st.store.Children(sym.Index) {
		if st.store.Kind(c) == ast.Struct {
			return c, true
		}
	}
	return 0, false
}

// Names returns every declared name in store order, without duplicates.
func (st *SymbolTable) Names() []string {
	var names []string
	for i := 1; i < st.store.Len(); i++ {
		n := st.store.Node(i)
		switch n.Kind {
		case ast.Constant, ast.FunctionDef, ast.BuiltinFunctionDef, ast.LoopForRange:
			if n.Name != "" && !slices.Contains(names, n.Name) && !st.isStructKey(i) {
				names = append(names, n.Name)
			}
		case ast.Root, ast.Comment, ast.Int, ast.Float, ast.String, ast.Bool, ast.Arg,
			ast.ConstantRef, ast.Assignment, ast.BuiltinFunctionCall, ast.FunctionDefInProgress,
			ast.FunctionCall, ast.Parens, ast.List, ast.Struct, ast.StructEdit, ast.If,
			ast.LoopForRangeInProgress, ast.Type, ast.Println, ast.Rust, ast.Eol, ast.Seol,
			ast.Indent, ast.Unused:
		}
	}
	return names
}
