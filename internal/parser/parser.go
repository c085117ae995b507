package parser

import (
	"log/slog"
	"slices"

	"github.com/kolkov/toylang/internal/ast"
	"github.com/kolkov/toylang/internal/builtins"
	"github.com/kolkov/toylang/internal/semantic"
	"github.com/kolkov/toylang/internal/token"
)

// Options configures a Parser.
type Options struct {
	// Logger receives a debug trace of every append and scope change.
	// Nil discards the trace.
	Logger *slog.Logger
}

// Parser is the compilation context of the construction phase. It owns the
// node store and the scope stack for one compilation.
type Parser struct {
	store       *ast.Store
	scopes      *ScopeStack
	symbols     *semantic.SymbolTable
	builtinDefs map[string]int // Builtin function name -> BuiltinFunctionDef index
	logger      *slog.Logger

	lines []token.Line // Every line seen so far
	line  token.Line   // Current line
	tok   token.Token  // Current token
	pos   int          // Index of tok within line

	errors ErrorList // Accumulated errors
}

// New creates a Parser with an empty store. Builtin function definitions
// are added to the store as detached nodes so that calls can refer to them
// by index.
func New(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store := ast.NewStore()
	p := &Parser{
		store:       store,
		scopes:      NewScopeStack(),
		symbols:     semantic.NewSymbolTable(store),
		builtinDefs: make(map[string]int),
		logger:      logger,
	}
	for _, f := range builtins.Functions() {
		p.builtinDefs[f.Name] = store.AppendDetached(ast.Node{
			Kind:     ast.BuiltinFunctionDef,
			Name:     f.Name,
			ArgNames: f.ArgNames,
			ArgTypes: f.ArgTypes,
			Type:     f.Return,
			Template: f.Template,
		})
	}
	return p
}

// Parse builds the node store for lines.
// The store is returned even when there are errors, so that output can still
// be rendered for debugging; the error is then an ErrorList.
func Parse(lines []token.Line, opts Options) (*ast.Store, error) {
	p := New(opts)
	for _, ln := range lines {
		p.ParseLine(ln)
	}
	return p.Store(), p.Finish()
}

// Store returns the node store built so far.
func (p *Parser) Store() *ast.Store {
	return p.store
}

// Pending reports whether a construct is still open, that is whether more
// lines are needed to complete the input.
func (p *Parser) Pending() bool {
	return p.scopes.Depth() > 1
}

// Errors returns the errors recorded so far.
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// ParseLine parses one line. If any token fails, every change the line made
// to the store and the scope stack is undone and the error is recorded and
// returned.
func (p *Parser) ParseLine(line token.Line) error {
	p.lines = append(p.lines, line)
	p.line = line
	if len(line.Tokens) == 0 {
		return nil
	}

	snap := p.scopes.Snapshot()
	p.store.Checkpoint()
	for i, tok := range line.Tokens {
		p.pos, p.tok = i, tok
		if err := p.parseToken(); err != nil {
			p.store.Rollback()
			p.scopes.Restore(snap)
			pe, ok := err.(*ParseError)
			if !ok {
				pe = tokenError(p.line, p.tok, "%s", err)
			}
			p.logger.Debug("line rejected", "line", line.Number, "token", tok.Value, "error", pe.Message)
			p.errors = append(p.errors, pe)
			return pe
		}
	}
	p.store.Commit()
	return nil
}

// Finish reports an unterminated construct if any scope besides the root is
// still open, and returns the sorted errors of the whole parse.
func (p *Parser) Finish() error {
	if p.Pending() {
		open := p.store.Node(p.scopes.Current())
		line, tok := p.lineAt(open.Line)
		p.errors = append(p.errors, tokenError(line, tok, errUnterminated, open.Kind))
	}
	p.errors.Sort()
	return p.errors.Err()
}

// lineAt returns the first line with the given number and its first token.
func (p *Parser) lineAt(number int) (token.Line, token.Token) {
	for _, ln := range p.lines {
		if ln.Number == number && len(ln.Tokens) > 0 {
			return ln, ln.Tokens[0]
		}
	}
	return token.Line{Number: number}, token.Token{Pos: token.Position{Line: number, Column: 1}}
}

// -----------------------------------------------------------------------------
// Error handling
// -----------------------------------------------------------------------------

// errorf creates a ParseError for the current token.
func (p *Parser) errorf(format string, args ...any) error {
	return tokenError(p.line, p.tok, format, args...)
}

// check runs the placement check for the node at idx against its parent.
func (p *Parser) check(idx int) error {
	parent := p.store.Parent(idx)
	if parent == ast.NoParent {
		return nil
	}
	if err := semantic.CheckPlacement(p.store.Kind(idx), p.store.Kind(parent)); err != nil {
		return p.errorf("%s", err.Error())
	}
	return nil
}

// -----------------------------------------------------------------------------
// Store and scope helpers
// -----------------------------------------------------------------------------

// knownNames lists the declared names followed by the builtin function and
// type names that are not declared in the store.
func (p *Parser) knownNames() []string {
	names := p.symbols.Names()
	for _, n := range builtins.Names() {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}

// appendNode adds n under the current scope.
func (p *Parser) appendNode(n ast.Node) int {
	n.Line = p.line.Number
	parent := p.scopes.Current()
	idx := p.store.Append(parent, n)
	p.logger.Debug("append", "index", idx, "kind", n.Kind, "parent", parent, "token", p.tok.Value)
	return idx
}

// open makes idx the innermost scope.
func (p *Parser) open(idx int) {
	p.scopes.Open(idx)
	p.logger.Debug("open", "index", idx, "depth", p.scopes.Depth())
}

// close pops the innermost scope.
func (p *Parser) close() {
	idx := p.scopes.Current()
	p.scopes.Close()
	p.logger.Debug("close", "index", idx, "depth", p.scopes.Depth())
}

// currentKind returns the kind of the innermost open scope.
func (p *Parser) currentKind() ast.Kind {
	return p.store.Kind(p.scopes.Current())
}

// isFirst reports whether the current token starts its line.
func (p *Parser) isFirst() bool {
	return p.pos == 0
}

// isLast reports whether the current token ends its line.
func (p *Parser) isLast() bool {
	return p.line.IsLast(p.pos)
}
