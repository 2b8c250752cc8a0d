package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"mython/mython"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCLI dispatches to the language's primary CLI contract — a positional
// `mython <input> <output>` invocation, exit 1 on argument mismatch or any
// lex/parse/runtime error — plus three additive subcommands, `lex` (dump
// the token stream of a script), `check` (parse a script without running
// it) and `repl` (an interactive Bubble Tea REPL), none of which spec.md's
// core contract requires.
func runCLI(args []string) error {
	if len(args) >= 2 {
		switch args[1] {
		case "lex":
			return runLex(args[2:])
		case "check":
			return runCheck(args[2:])
		case "repl":
			return runREPL()
		case "help", "-h", "--help":
			printUsage(args[0])
			return nil
		}
	}
	return runProgram(args)
}

func runProgram(args []string) error {
	if len(args) != 3 {
		printUsage(args[0])
		return fmt.Errorf("invalid command")
	}
	inPath, outPath := args[1], args[2]

	inFile, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("can't open file %s", inPath)
	}
	defer inFile.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("can't open file %s", outPath)
	}
	defer outFile.Close()

	interp := mython.NewInterpreter(mython.Config{})
	return interp.Run(inFile, outFile)
}

func runLex(args []string) error {
	fs := flag.NewFlagSet("lex", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("mython lex: script path required")
	}
	source, err := os.ReadFile(remaining[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	lex := mython.NewLexer(string(source))
	for {
		tok, err := lex.NextToken()
		if err != nil {
			return err
		}
		fmt.Println(mython.DescribeToken(tok))
		if mython.IsEOFToken(tok) {
			return nil
		}
	}
}

// runCheck parses (but does not evaluate) a script, reporting a LexError
// or ParseError if the source is malformed. It exercises the same parser
// the `<in_file> <out_file>` contract does, without the side effects of
// actually running the program.
func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("mython check: script path required")
	}
	source, err := os.ReadFile(remaining[0])
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if _, err := mython.Parse(string(source)); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

// flagErrorSink discards flag.FlagSet's own usage/error output; runCLI's
// callers report failures themselves via the returned error.
type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

func printUsage(prog string) {
	fmt.Fprintln(os.Stderr, "Mython interpreter!")
	fmt.Fprintf(os.Stderr, "Usage: %s <in_file> <out_file>\n", filepath.Base(prog))
	fmt.Fprintln(os.Stderr, "       mython lex <script>")
	fmt.Fprintln(os.Stderr, "       mython check <script>")
	fmt.Fprintln(os.Stderr, "       mython repl")
}
