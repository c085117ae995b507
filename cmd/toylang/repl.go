package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/kolkov/toylang"
)

const (
	historyFile = ".toylang_history"
	promptMain  = "toy> "
	promptCont  = "...> "
	replHelp    = `Enter one statement per line. Rust is printed once a statement is complete.
  :program   print the whole program so far
  :tree      print the node tree
  :types     print resolved types
  :quit      leave the session`
)

// repl feeds lines into a session and prints the Rust each complete
// statement adds to the body of main.
type repl struct {
	session *toylang.Session
	out     io.Writer
	errOut  io.Writer
	shown   int // Body lines already printed
}

func newREPL(opts options, out, errOut io.Writer) *repl {
	cfg := config(opts, errOut)
	cfg.Filename = "<repl>"
	return &repl{session: toylang.NewSession(cfg), out: out, errOut: errOut}
}

func runREPL(opts options) error {
	fmt.Printf("toylang %s - type :help for commands\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	r := newREPL(opts, os.Stdout, os.Stderr)
	for {
		prompt := promptMain
		if r.session.Pending() {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "cannot read input")
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !r.handle(line) {
			return nil
		}
	}
}

// handle processes one input line and reports whether the session goes on.
func (r *repl) handle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ":") {
		return r.command(trimmed)
	}

	if err := r.session.Feed(line); err != nil {
		r.report(err)
		return true
	}
	if r.session.Pending() {
		return true
	}
	res, err := r.session.Compile()
	if err != nil {
		r.report(err)
		return true
	}
	body := bodyLines(res.Output)
	for _, l := range body[min(r.shown, len(body)):] {
		fmt.Fprintln(r.out, l)
	}
	r.shown = len(body)
	return true
}

func (r *repl) command(cmd string) bool {
	switch cmd {
	case ":quit", ":q":
		return false
	case ":help":
		fmt.Fprintln(r.out, replHelp)
		return true
	}

	res, err := r.session.Compile()
	if err != nil {
		r.report(err)
		return true
	}
	switch cmd {
	case ":program":
		fmt.Fprint(r.out, res.Output)
	case ":tree":
		err = res.Tree(r.out)
	case ":types":
		err = res.Types(r.out)
	default:
		fmt.Fprintf(r.errOut, "unknown command %s. Type :help for commands.\n", cmd)
	}
	if err != nil {
		r.report(err)
	}
	return true
}

func (r *repl) report(err error) {
	var ce *toylang.CompileError
	if errors.As(err, &ce) {
		fmt.Fprintln(r.errOut, ce.Report())
		return
	}
	fmt.Fprintf(r.errOut, "toylang: %v\n", err)
}

// bodyLines returns the lines between "fn main() {" and its closing brace.
func bodyLines(out string) []string {
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\n")
	if len(lines) < 2 {
		return nil
	}
	body := lines[1 : len(lines)-1]
	for i, l := range body {
		body[i] = strings.TrimSuffix(l, "\r")
	}
	return body
}
