// Package toylang compiles the toylang prefix language into Rust source.
//
// toylang is a small line-oriented language: every line is one statement,
// and operators come before their operands, so no parentheses are needed
// to group expressions:
//
//	= a + 1 2                  // let a: i64 = 1 + 2;
//	= b / * - + 1 2 3 4 5      // let b: i64 = 1 + 2 - 3 * 4 / 5;
//	= sq \ i64 i64 n => * n n  // fn sq(n: i64) -> i64 { n * n }
//	@ sq 3                     // println!("{}", sq(3));
//
// The whole program becomes the body of a Rust main function. Numeric
// types are inferred: arithmetic takes the type of its first operand, so
// "+ 1 2.5" is i64 and "+ 2.5 1" is f64.
//
// Flat structs are assigned to a constant, which names their type, and
// their keys are edited with "name.key":
//
//	= point { = x 1 = y 2.5 }  // let mut point: Point = Point::new(1, 2.5);
//	= point.x 5                // point.x = 5;
//
// The struct definition is written ahead of main, once for every distinct
// set of keys and types. A line starting with "#" is copied into the output
// as raw Rust; with "##" it goes ahead of main instead.
//
// # Quick Start
//
//	res, err := toylang.Compile(src, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(res.Output)
//
// With configuration:
//
//	res, err := toylang.Compile(src, &toylang.Config{
//	    Filename: "main.toy",
//	    Newline:  "\r\n",
//	})
//
// # Interactive Use
//
// A [Session] accepts one line at a time and reports through
// [Session.Pending] whether an open function body or loop still needs
// more lines. The toylang command uses it for its REPL.
//
// # Error Handling
//
// Errors are reported per line. A line that fails leaves no trace in the
// output, and compilation continues with the next line so that every
// error in the source is reported at once. The error is a [CompileError]
// holding one [Diagnostic] per failed line; [Diagnostic.String] renders
// the source line with a caret under the offending token.
//
// A [Result] is still returned alongside a [CompileError], with the output
// of the lines that succeeded. It is meant for debugging and must not be
// used as a valid program.
//
// # Thread Safety
//
// Compile has no shared state and may be called concurrently.
// A [Session] must not be used from more than one goroutine at a time.
package toylang
