package parser

import (
	"fmt"
	"strings"

	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/builtins"
	"github.com/kolkov/toylang/internal/semantic"
	"github.com/kolkov/toylang/internal/token"
)

// parseToken dispatches the current token to its construction routine.
//
// Order: builtin function names and function-typed arguments first, then
// builtin type names, then the leading characters of the token.
func (p *Parser) parseToken() error {
	value := p.tok.Value
	if value == "" {
		return nil
	}
	if def, ok := p.builtinDefs[value]; ok {
		return p.builtinCall(def)
	}
	if p.currentKind() != ast.FunctionDefInProgress {
		if sym, ok := p.symbols.Lookup(value, p.scopes.Indices()); ok && sym.IsDynFn() {
			return p.functionCall(sym)
		}
	}
	if builtins.IsType(value) {
		return p.typeName(value)
	}
	return p.byFirstChars(value)
}

// byFirstChars dispatches on the lexical class of the token.
func (p *Parser) byFirstChars(value string) error {
	switch token.Classify(value) {
	case token.LBRACE:
		if len(value) > 1 {
			return p.errorf(errStruct)
		}
		return p.structStart()
	case token.RBRACE:
		if len(value) > 1 {
			return p.errorf(errStruct)
		}
		return p.structEnd()
	case token.LBRACKET:
		if len(value) > 1 {
			return p.errorf(errList)
		}
		return p.listStart()
	case token.RBRACKET:
		if len(value) > 1 {
			return p.errorf(errList)
		}
		return p.listEnd()
	case token.LPAREN:
		if len(value) > 1 {
			return p.unknown(value)
		}
		return p.parensStart()
	case token.RPAREN:
		if len(value) > 1 {
			return p.unknown(value)
		}
		return p.parensEnd()
	case token.BACKSLASH:
		if len(value) > 1 {
			return p.unknown(value)
		}
		return p.functionDefStart()
	case token.ARROW:
		return p.functionDefEnd()
	case token.ASSIGN:
		if len(value) > 1 {
			return p.errorf(errAssign)
		}
		return p.assignment()
	case token.DOT:
		switch value {
		case "..":
			return p.loopStart()
		case ".":
			return p.loopEnd()
		}
		return p.errorf(errLoopFor)
	case token.AT:
		if len(value) > 1 {
			return p.unknown(value)
		}
		return p.println()
	case token.QUESTION:
		if len(value) > 1 {
			return p.unknown(value)
		}
		return p.ifExpression()
	case token.HASH:
		return p.rustCode(value)
	case token.COMMENT:
		return p.comment(value)
	case token.STRING:
		return p.stringLit(value)
	case token.NUMBER:
		return p.number(value)
	case token.BOOL:
		return p.boolLit(value)
	case token.NAME:
		return p.name(value)
	case token.ILLEGAL:
		return p.unknown(value)
	}
	panic(fmt.Sprintf("parser: unhandled token class for %q", value))
}

// number parses an integer or float literal.
func (p *Parser) number(value string) error {
	if value[0] == '-' && (len(value) == 1 || value[1] < '0' || value[1] > '9') {
		return p.errorf(errIntNegative)
	}
	if isFloat(value) {
		return p.floatLit(value)
	}
	if looksFloat(value) {
		return p.errorf(errFloat)
	}
	if msg := intError(value); msg != "" {
		return p.errorf("%s", msg)
	}
	return p.intLit(value)
}

// name resolves an identifier to a new argument, a new constant, a
// reference, or a call.
func (p *Parser) name(value string) error {
	if strings.Contains(value, ".") {
		return p.structEdit(value)
	}
	if !isName(value) {
		return p.unknown(value)
	}

	switch p.currentKind() {
	case ast.FunctionDefInProgress:
		return p.arg(value)
	case ast.Assignment:
		// A key of a struct literal shadows any constant of the same name.
		if p.store.Kind(p.store.Parent(p.scopes.Current())) == ast.Struct {
			return p.newConstant(value)
		}
	case ast.LoopForRangeInProgress:
		if len(p.store.Children(p.scopes.Current())) == 0 {
			return p.newConstant(value)
		}
	}

	sym, ok := p.symbols.Lookup(value, p.scopes.Indices())
	if !ok {
		return p.newConstant(value)
	}
	switch sym.Kind {
	case semantic.SymbolConstant, semantic.SymbolArg, semantic.SymbolLoopVar:
		return p.constantRef(sym)
	case semantic.SymbolFunction:
		return p.functionRefOrCall(sym)
	case semantic.SymbolBuiltin:
		return p.builtinCall(sym.Index)
	}
	panic(fmt.Sprintf("parser: unhandled symbol kind %v", sym.Kind))
}

// unknown reports a token that no routine accepts, with a suggestion when
// a known name is close to it.
func (p *Parser) unknown(value string) error {
	if s := semantic.Suggest(value, p.knownNames()); s != "" {
		return p.errorf(errUnknownTokenSuggest, value, s)
	}
	return p.errorf(errUnknownToken, value)
}
