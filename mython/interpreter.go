package mython

import (
	"io"
)

// Config configures an Interpreter. It exists as the same kind of small,
// defaulted options struct the teacher's Engine takes, trimmed to the
// single knob this language actually has: the output stream to use when
// a Run or RunSource call passes a nil writer.
type Config struct {
	// Out, if non-nil, is used as the default output stream when Run or
	// RunSource is given a nil writer. A non-nil writer argument always
	// takes precedence.
	Out io.Writer
}

// Interpreter runs mython programs end to end: lex, parse, evaluate.
type Interpreter struct {
	cfg Config
}

// NewInterpreter returns an Interpreter configured by cfg.
func NewInterpreter(cfg Config) *Interpreter {
	return &Interpreter{cfg: cfg}
}

// Run reads a full program from input, parses it, and evaluates it
// against a fresh top-level environment, writing Print output to output.
// It returns normally on success and returns a *LexError, *ParseError or
// *RuntimeError on failure — the three fatal categories from §7. Errors
// from reading input or writing output are returned as they are, and a
// return statement outside any method body surfaces as an error whose
// message says so.
func (in *Interpreter) Run(input io.Reader, output io.Writer) error {
	source, err := io.ReadAll(input)
	if err != nil {
		return err
	}
	return in.RunSource(string(source), output)
}

// RunSource is Run without the io.Reader indirection, for callers (such
// as the tests) that already hold the source as a string.
func (in *Interpreter) RunSource(source string, output io.Writer) error {
	program, err := Parse(source)
	if err != nil {
		return err
	}
	if output == nil {
		output = in.cfg.Out
	}
	ctx := NewContext(output)
	env := NewEnv()
	_, err = program.Eval(env, ctx)
	return err
}

// Eval parses and evaluates source against env and ctx, returning the
// evaluated program's result handle. Because env is supplied by the
// caller, successive calls can share one persistent environment.
func Eval(source string, env *Env, ctx *Context) (Value, error) {
	program, err := Parse(source)
	if err != nil {
		return Value{}, err
	}
	return program.Eval(env, ctx)
}
