// toylang - compiles toylang prefix source into Rust
//
// Uses manual argument parsing so that flags and file names can be mixed
// the same way as the rest of the toolchain (-odir and -o dir both work).
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/kolkov/toylang"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: toylang [-o dir] [-crlf] [-e 'src' | file ...]"
	longUsage  = `Compile arguments:
  -e src            compile src given on the command line
  -o dir            write <name>.rs for each input file into dir
                    (default: print to stdout)
  -crlf             end output lines with CRLF
  -passes N         maximum type resolution passes (default 10)

Debugging arguments:
  -d                print the node tree to stderr
  -dt               print resolved types to stderr
  -tokens           print source tokens as JSON to stderr
  -v                log parser and compiler steps to stderr

Other:
  -r                start an interactive session
  -h, --help        show this help message
  -version          show toylang version and exit
`
)

type options struct {
	outDir     string
	source     *string
	files      []string
	newline    string
	maxPasses  int
	debugTree  bool
	debugTypes bool
	tokens     bool
	verbose    bool
	repl       bool
}

//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func parseArgs(args []string) (options, error) {
	opts := options{newline: "\n"}

	var i int
	for i = 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			opts.files = append(opts.files, arg)
			continue
		}

		switch arg {
		case "-e":
			if i+1 >= len(args) {
				return opts, errors.New("flag needs an argument: -e")
			}
			i++
			src := args[i]
			opts.source = &src
		case "-o":
			if i+1 >= len(args) {
				return opts, errors.New("flag needs an argument: -o")
			}
			i++
			opts.outDir = args[i]
		case "-passes":
			if i+1 >= len(args) {
				return opts, errors.New("flag needs an argument: -passes")
			}
			i++
			n, err := parsePasses(args[i])
			if err != nil {
				return opts, err
			}
			opts.maxPasses = n
		case "-crlf":
			opts.newline = "\r\n"
		case "-d":
			opts.debugTree = true
		case "-dt":
			opts.debugTypes = true
		case "-tokens":
			opts.tokens = true
		case "-v":
			opts.verbose = true
		case "-r":
			opts.repl = true
		default:
			if strings.HasPrefix(arg, "-o") {
				opts.outDir = arg[2:]
				continue
			}
			return opts, errors.Errorf("flag provided but not defined: %s", arg)
		}
	}
	opts.files = append(opts.files, args[i:]...)

	if opts.source != nil && len(opts.files) > 0 {
		return opts, errors.New("-e cannot be combined with input files")
	}
	return opts, nil
}

func parsePasses(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.Errorf("invalid number of passes: %s", s)
	}
	return n, nil
}

func main() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "-h", "--help":
			fmt.Printf("toylang %s - toylang to Rust compiler\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("toylang version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			fmt.Printf("  lang:   %s\n", toylang.Version)
			os.Exit(0)
		}
	}

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		errorExitf("%v\n%s", err, shortUsage)
	}

	if opts.repl {
		if err := runREPL(opts); err != nil {
			errorExit(err)
		}
		return
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	if !run(opts, os.Stdin, stdout, os.Stderr) {
		stdout.Flush()
		os.Exit(1)
	}
}

// run compiles every input and reports whether all of them succeeded.
func run(opts options, stdin io.Reader, stdout, stderr io.Writer) bool {
	inputs, err := collectInputs(opts, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "toylang: %v\n", err)
		return false
	}

	ok := true
	for _, in := range inputs {
		if err := compileInput(opts, in, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "toylang: %v\n", err)
			ok = false
		}
	}
	return ok
}

type input struct {
	name string // Shown in diagnostics, empty for -e
	src  string
}

func collectInputs(opts options, stdin io.Reader) ([]input, error) {
	if opts.source != nil {
		return []input{{src: *opts.source}}, nil
	}
	if len(opts.files) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read standard input")
		}
		return []input{{name: "<stdin>", src: string(data)}}, nil
	}

	inputs := make([]input, 0, len(opts.files))
	for _, f := range opts.files {
		if f == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, errors.Wrap(err, "cannot read standard input")
			}
			inputs = append(inputs, input{name: "<stdin>", src: string(data)})
			continue
		}
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot read source file %s", f)
		}
		inputs = append(inputs, input{name: f, src: string(data)})
	}
	return inputs, nil
}

func compileInput(opts options, in input, stdout, stderr io.Writer) error {
	cfg := config(opts, stderr)
	cfg.Filename = in.name

	res, err := toylang.Compile(in.src, cfg)
	if res != nil {
		if dumpErr := dump(opts, res, stderr); dumpErr != nil {
			return dumpErr
		}
	}
	if err != nil {
		var ce *toylang.CompileError
		if errors.As(err, &ce) {
			fmt.Fprintln(stderr, ce.Report())
			return errors.Errorf("%d error(s) in %s", len(ce.Diagnostics), displayName(in.name))
		}
		return err
	}
	if n := res.Unresolved(); n > 0 {
		fmt.Fprintf(stderr, "toylang: warning: %d unresolved type(s) in %s\n", n, displayName(in.name))
	}

	if opts.outDir == "" {
		_, err := io.WriteString(stdout, res.Output)
		return errors.Wrap(err, "cannot write output")
	}
	path := filepath.Join(opts.outDir, outputName(in.name))
	if err := os.WriteFile(path, []byte(res.Output), 0o644); err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	return nil
}

func config(opts options, stderr io.Writer) *toylang.Config {
	cfg := &toylang.Config{
		Newline:   opts.newline,
		MaxPasses: opts.maxPasses,
	}
	if opts.verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return cfg
}

func dump(opts options, res *toylang.Result, stderr io.Writer) error {
	if opts.tokens {
		data, err := res.Tokens()
		if err != nil {
			return errors.Wrap(err, "cannot encode tokens")
		}
		fmt.Fprintf(stderr, "%s\n", data)
	}
	if opts.debugTree {
		if err := res.Tree(stderr); err != nil {
			return errors.Wrap(err, "cannot print tree")
		}
	}
	if opts.debugTypes {
		if err := res.Types(stderr); err != nil {
			return errors.Wrap(err, "cannot print types")
		}
	}
	return nil
}

// outputName maps a source path to the name of its Rust file.
func outputName(name string) string {
	base := filepath.Base(name)
	if name == "" || name == "<stdin>" {
		base = "main"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".rs"
}

func displayName(name string) string {
	if name == "" {
		return "-e source"
	}
	return name
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "toylang: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "toylang: %v\n", err)
	os.Exit(1)
}
