package compiler

import (
	"fmt"
	"log/slog"

	"github.com/kolkov/toylang/internal/ast"
)

// CompileError reports a node that cannot be rendered. A store built by the
// parser without errors never produces one.
type CompileError struct {
	Line    int
	Token   string // Source token of the node, for locating it on the line
	Message string
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ErrorList is the list of nodes that could not be rendered, in output order.
type ErrorList []*CompileError

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Unwrap gives errors.As access to every entry.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// Err returns an error if there are any errors, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Options configures Compile.
type Options struct {
	// MaxPasses bounds type resolution. Zero means DefaultMaxPasses.
	MaxPasses int

	// Newline terminates every emitted line. Empty means "\n".
	Newline string

	// Logger receives a summary of the resolution and emission phases.
	// Nil discards it.
	Logger *slog.Logger
}

// Compile resolves the types of a finished store and renders it.
//
// Nodes that cannot be rendered are written as placeholders and reported in
// the returned ErrorList; the Program is returned either way.
func Compile(s *ast.Store, opts Options) (*Program, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	nl := opts.Newline
	if nl == "" {
		nl = "\n"
	}

	// Phase 1: fill in the types construction could not know.
	info := InferTypes(s, opts.MaxPasses)
	unresolved := info.Unresolved(s)
	logger.Debug("types resolved", "passes", info.Passes, "unresolved", len(unresolved))
	for _, i := range unresolved {
		logger.Debug("unresolved type", "index", i, "node", s.Node(i).String(), "type", info.TypeOf(i))
	}

	// Phase 2: render.
	out, errs := Emit(s, info, nl)
	logger.Debug("emitted", "bytes", len(out), "errors", len(errs))

	prog := &Program{Output: out, Store: s, Types: info, Unresolved: unresolved}
	return prog, errs.Err()
}
