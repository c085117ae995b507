package toylang

import (
	"github.com/kolkov/toylang/internal/compiler"
	"github.com/kolkov/toylang/internal/lexer"
	"github.com/kolkov/toylang/internal/parser"
	"github.com/kolkov/toylang/internal/token"
)

// Version is the toylang version string.
const Version = "0.1.0"

// Compile translates toylang source into Rust.
//
// If the source has errors, the returned error is a *CompileError listing
// every failed line, and the Result holds the output rendered from the lines
// that succeeded, for debugging.
//
// Example:
//
//	res, err := toylang.Compile("= a + 1 2", nil)
//	// res.Output: "fn main() {\n    let a: i64 = 1 + 2;\n}\n"
func Compile(src string, config *Config) (*Result, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	lines := lexer.LinesFile(cfg.Filename, src)
	store, parseErr := parser.Parse(lines, parser.Options{Logger: cfg.Logger})

	compiled, emitErr := compiler.Compile(store, compilerOptions(cfg))
	res := &Result{Output: compiled.Output, lines: lines, compiled: compiled}
	if err := toCompileError(cfg.Filename, lines, parseErr, emitErr); err != nil {
		return res, err
	}
	return res, nil
}

// MustCompile is like Compile but panics if the source has errors.
// It simplifies tests and examples with known-good source.
//
// Example:
//
//	fmt.Print(toylang.MustCompile(`= square \ i64 i64 n => * n n`, nil).Output)
func MustCompile(src string, config *Config) *Result {
	res, err := Compile(src, config)
	if err != nil {
		panic(err)
	}
	return res
}

func compilerOptions(cfg Config) compiler.Options {
	return compiler.Options{
		MaxPasses: cfg.MaxPasses,
		Newline:   cfg.Newline,
		Logger:    cfg.Logger,
	}
}

// -----------------------------------------------------------------------------
// Interactive sessions
// -----------------------------------------------------------------------------

// Session compiles source fed one physical line at a time. A line that
// fails is rejected on its own and leaves the session as it was.
//
// Example:
//
//	s := toylang.NewSession(nil)
//	s.Feed(`= a \ i64 i64 x =>`)
//	s.Pending() // true: the function body is still open
//	s.Feed("* x 2")
//	res, _ := s.Compile()
type Session struct {
	cfg    Config
	parser *parser.Parser
	lines  []token.Line
	next   int // Number of the next physical line
}

// NewSession starts an empty session.
func NewSession(config *Config) *Session {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	return &Session{
		cfg:    cfg,
		parser: parser.New(parser.Options{Logger: cfg.Logger}),
		next:   1,
	}
}

// Feed parses one physical line. It returns a *CompileError for the
// logical lines that were rejected.
func (s *Session) Feed(line string) error {
	l := lexer.NewFromString(line).WithFilename(s.cfg.Filename).WithFirstLine(s.next)
	s.next++

	var errs []error
	for {
		ln, ok := l.Next()
		if !ok {
			break
		}
		s.lines = append(s.lines, ln)
		if err := s.parser.ParseLine(ln); err != nil {
			errs = append(errs, err)
		}
	}
	return toCompileError(s.cfg.Filename, s.lines, errs...)
}

// Pending reports whether a construct opened by an earlier line is still
// waiting for more lines.
func (s *Session) Pending() bool {
	return s.parser.Pending()
}

// Compile renders every accepted line so far. Lines rejected by Feed are
// not reported again. As with the package Compile, a Result is returned
// alongside a *CompileError.
func (s *Session) Compile() (*Result, error) {
	compiled, err := compiler.Compile(s.parser.Store(), compilerOptions(s.cfg))
	res := &Result{Output: compiled.Output, lines: s.lines, compiled: compiled}
	if err := toCompileError(s.cfg.Filename, s.lines, err); err != nil {
		return res, err
	}
	return res, nil
}
