package toylang

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kolkov/toylang/internal/compiler"
	"github.com/kolkov/toylang/internal/parser"
	"github.com/kolkov/toylang/internal/token"
)

// Diagnostic is one error against the source.
type Diagnostic struct {
	Filename string // From Config.Filename, may be empty
	Line     int    // 1-based line number
	Column   int    // 1-based column within Source
	Width    int    // Width of the offending token, at least 1
	Source   string // Text of the offending line, trimmed
	Message  string // Error description
}

// Error returns "file:line:column: message", or "line:column: message"
// without a filename.
func (d Diagnostic) Error() string {
	if d.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", d.Filename, d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// String renders the diagnostic with the source line and a caret span
// under the offending token:
//
//	main.toy:2:5: Invalid int: ...
//	= b 1a
//	    ^^
func (d Diagnostic) String() string {
	if d.Source == "" {
		return d.Error()
	}
	col := max(d.Column, 1)
	width := max(d.Width, 1)
	return fmt.Sprintf("%s\n%s\n%s%s", d.Error(), d.Source, strings.Repeat(" ", col-1), strings.Repeat("^", width))
}

// CompileError is returned when the source has errors. Every line that
// failed is reported, in source order.
type CompileError struct {
	Diagnostics []Diagnostic
}

func (e *CompileError) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return "no errors"
	case 1:
		return e.Diagnostics[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", e.Diagnostics[0].Error(), len(e.Diagnostics)-1)
	}
}

// Report renders every diagnostic with its source line, separated by blank
// lines.
func (e *CompileError) Report() string {
	parts := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		parts[i] = d.String()
	}
	return strings.Join(parts, "\n\n")
}

// toCompileError converts internal errors into a *CompileError, or returns
// nil if all of errs are nil. lines locate errors that only know their line.
func toCompileError(filename string, lines []token.Line, errs ...error) error {
	ce := &CompileError{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var pl parser.ErrorList
		var pe *parser.ParseError
		var cl compiler.ErrorList
		var cerr *compiler.CompileError
		switch {
		case errors.As(err, &pl):
			for _, e := range pl {
				ce.Diagnostics = append(ce.Diagnostics, fromParseError(filename, e))
			}
		case errors.As(err, &pe):
			ce.Diagnostics = append(ce.Diagnostics, fromParseError(filename, pe))
		case errors.As(err, &cl):
			for _, e := range cl {
				ce.Diagnostics = append(ce.Diagnostics, fromEmitError(filename, lines, e))
			}
		case errors.As(err, &cerr):
			ce.Diagnostics = append(ce.Diagnostics, fromEmitError(filename, lines, cerr))
		default:
			ce.Diagnostics = append(ce.Diagnostics, Diagnostic{Filename: filename, Message: err.Error()})
		}
	}
	if len(ce.Diagnostics) == 0 {
		return nil
	}
	return ce
}

func fromParseError(filename string, pe *parser.ParseError) Diagnostic {
	return Diagnostic{
		Filename: filename,
		Line:     pe.Pos.Line,
		Column:   pe.Pos.Column,
		Width:    max(pe.Width, 1),
		Source:   pe.Source,
		Message:  pe.Message,
	}
}

// fromEmitError points the diagnostic at the first token on the error's
// line that spells the offending node, or at the start of the line.
func fromEmitError(filename string, lines []token.Line, e *compiler.CompileError) Diagnostic {
	d := Diagnostic{Filename: filename, Line: e.Line, Column: 1, Width: 1, Message: e.Message}
	for _, ln := range lines {
		if ln.Number != e.Line {
			continue
		}
		if d.Source == "" {
			d.Source = ln.Text
		}
		for _, tok := range ln.Tokens {
			if e.Token != "" && tok.Value == e.Token {
				d.Source, d.Column, d.Width = ln.Text, tok.Pos.Column, max(tok.Len(), 1)
				return d
			}
		}
	}
	return d
}
