package mython

// Node is the uniform contract every AST node implements: evaluate(env,
// ctx) → handle, where env is mutated in place and ctx carries the output
// stream.
type Node interface {
	Eval(env *Env, ctx *Context) (Value, error)
}

// CompareFunc is one of the six comparison predicates from §4.2, bound
// into a Comparison node by the parser.
type CompareFunc func(l, r Value, ctx *Context) (bool, error)

// NumericConst evaluates to an owned Number handle.
type NumericConst struct {
	N int64
}

// StringConst evaluates to an owned String handle.
type StringConst struct {
	S string
}

// BoolConst evaluates to an owned Bool handle.
type BoolConst struct {
	B bool
}

// NoneLiteral evaluates to the empty handle.
type NoneLiteral struct{}

// VariableValue looks up Name in env and follows Tail through nested
// instance attribute tables.
type VariableValue struct {
	Name string
	Tail []string
}

// Assignment evaluates Rhs and binds the result to Name in env.
type Assignment struct {
	Name string
	Rhs  Node
}

// FieldAssignment evaluates Object (which must resolve to an Instance)
// and assigns the evaluated Rhs into its Field.
type FieldAssignment struct {
	Object *VariableValue
	Field  string
	Rhs    Node
}

// Print evaluates each of Args in order and prints them space-separated,
// newline-terminated.
type Print struct {
	Args []Node
}

// Stringify evaluates Arg and returns an owned String handle holding its
// printed representation.
type Stringify struct {
	Arg Node
}

// BinaryOp is embedded by the four arithmetic node kinds.
type BinaryOp struct {
	Lhs, Rhs Node
}

// Add evaluates Number+Number, String+String, or dispatches to
// Instance.__add__ on the left operand.
type Add struct{ BinaryOp }

// Sub evaluates Number-Number only.
type Sub struct{ BinaryOp }

// Mult evaluates Number*Number only.
type Mult struct{ BinaryOp }

// Div evaluates Number/Number only, rejecting a Number-typed zero divisor
// before dividing.
type Div struct{ BinaryOp }

// Or short-circuits: evaluates Rhs only if Lhs is falsy. The result is a
// Bool carrying the truthiness of the last operand evaluated — not the
// operand's own value.
type Or struct{ BinaryOp }

// And short-circuits: evaluates Rhs only if Lhs is truthy. The result is
// a Bool carrying the truthiness of the last operand evaluated.
type And struct{ BinaryOp }

// Not returns Bool(¬truthy(Arg)).
type Not struct {
	Arg Node
}

// Comparison evaluates Lhs and Rhs and returns Bool(Cmp(lval, rval, ctx)).
type Comparison struct {
	Cmp      CompareFunc
	Lhs, Rhs Node
}

// MethodCall evaluates Object (must resolve to an Instance), evaluates
// Args left to right, and dispatches Method on the instance.
type MethodCall struct {
	Object Node
	Method string
	Args   []Node
}

// NewInstance creates an instance of Class, invoking __init__ with the
// evaluated Args when the class defines one of matching arity. The node
// owns the instance's lifetime: the first Eval allocates it, and every
// later Eval of the same node (a constructor expression inside a method
// body invoked more than once) re-invokes __init__ on and returns a
// handle to that same instance, never a fresh one.
type NewInstance struct {
	Class *Class
	Args  []Node

	instance *Instance
}

// Compound evaluates each child statement in order, discarding results,
// and returns the empty handle.
type Compound struct {
	Statements []Node
}

// MethodBody evaluates Body, catching a non-local return transfer from
// anywhere within it and returning the carried handle; on normal
// completion it returns the empty handle.
type MethodBody struct {
	Body Node
}

// Return evaluates Expr and transfers control non-locally to the nearest
// enclosing MethodBody, carrying the resulting handle.
type Return struct {
	Expr Node
}

// ClassDefinition binds env[class.Name] to the class handle.
type ClassDefinition struct {
	Class *Class
}

// IfElse evaluates Cond; if truthy, evaluates Then; otherwise, if Else is
// non-nil, evaluates it.
type IfElse struct {
	Cond Node
	Then Node
	Else Node
}
