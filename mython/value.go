package mython

import (
	"bytes"
	"fmt"
	"io"
)

// Kind identifies which of the closed set of runtime value kinds a Value
// holds.
type Kind int

const (
	// KindAbsent is the zero value of Kind and represents the empty
	// handle: "no value here", as opposed to a handle explicitly holding
	// None. The two are indistinguishable for truthiness and printing,
	// and in practice the language only ever produces KindAbsent — the
	// AST's None literal returns the empty handle directly, mirroring
	// the reference implementation, which has no runtime object for None
	// at all.
	KindAbsent Kind = iota
	KindNone
	KindBool
	KindNumber
	KindString
	KindClass
	KindInstance
)

// Value is a tagged runtime value: the empty handle, None, Bool, Number,
// String, a Class descriptor, or an Instance.
type Value struct {
	kind  Kind
	b     bool
	n     int64
	s     string
	class *Class
	inst  *Instance
}

// Absent returns the empty handle.
func Absent() Value { return Value{} }

// NoneValue returns a handle explicitly holding None.
func NoneValue() Value { return Value{kind: KindNone} }

// BoolValue returns a handle holding a Bool.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue returns a handle holding a Number.
func NumberValue(n int64) Value { return Value{kind: KindNumber, n: n} }

// StringValue returns a handle holding a String.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// ClassValue returns a handle holding a Class descriptor.
func ClassValue(c *Class) Value { return Value{kind: KindClass, class: c} }

// InstanceValue returns a handle holding an Instance.
func InstanceValue(i *Instance) Value { return Value{kind: KindInstance, inst: i} }

// Kind reports the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v is the empty handle.
func (v Value) IsEmpty() bool { return v.kind == KindAbsent }

// AsInstance returns the held Instance and true, or nil and false.
func (v Value) AsInstance() (*Instance, bool) {
	if v.kind == KindInstance {
		return v.inst, true
	}
	return nil, false
}

// AsClass returns the held Class and true, or nil and false.
func (v Value) AsClass() (*Class, bool) {
	if v.kind == KindClass {
		return v.class, true
	}
	return nil, false
}

// Truthy implements the §4.2 truthiness rule.
func Truthy(v Value) bool {
	switch v.kind {
	case KindAbsent, KindNone:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0
	case KindString:
		return v.s != ""
	default:
		return false
	}
}

// PrintValue writes v's printed representation to w, per §4.2, dispatching
// to a zero-argument __str__ method when v is an Instance whose class (or
// an ancestor) defines one.
func PrintValue(w io.Writer, v Value, ctx *Context) error {
	switch v.kind {
	case KindAbsent, KindNone:
		_, err := io.WriteString(w, "None")
		return err
	case KindBool:
		if v.b {
			_, err := io.WriteString(w, "True")
			return err
		}
		_, err := io.WriteString(w, "False")
		return err
	case KindNumber:
		_, err := fmt.Fprintf(w, "%d", v.n)
		return err
	case KindString:
		_, err := io.WriteString(w, v.s)
		return err
	case KindClass:
		_, err := fmt.Fprintf(w, "Class %s", v.class.Name)
		return err
	case KindInstance:
		if v.inst.HasMethod("__str__", 0) {
			result, err := v.inst.Call("__str__", nil, ctx)
			if err != nil {
				return err
			}
			return PrintValue(w, result, ctx)
		}
		// No __str__: print an opaque, instance-unique identity token.
		// The reference implementation prints the object's raw address;
		// Go has no safe equivalent, so the pointer value stands in as
		// the same kind of opaque identity.
		_, err := fmt.Fprintf(w, "%p", v.inst)
		return err
	default:
		return nil
	}
}

// StringifyValue renders v's printed representation to a string, per the
// Stringify node's contract.
func StringifyValue(v Value, ctx *Context) (string, error) {
	var buf bytes.Buffer
	if err := PrintValue(&buf, v, ctx); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func naturalEqual(l, r Value) (bool, bool) {
	switch {
	case l.kind == KindBool && r.kind == KindBool:
		return l.b == r.b, true
	case l.kind == KindNumber && r.kind == KindNumber:
		return l.n == r.n, true
	case l.kind == KindString && r.kind == KindString:
		return l.s == r.s, true
	default:
		return false, false
	}
}

func naturalLess(l, r Value) (bool, bool) {
	switch {
	case l.kind == KindBool && r.kind == KindBool:
		return !l.b && r.b, true
	case l.kind == KindNumber && r.kind == KindNumber:
		return l.n < r.n, true
	case l.kind == KindString && r.kind == KindString:
		return l.s < r.s, true
	default:
		return false, false
	}
}

// Equal implements §4.2's Equal(l, r, ctx).
func Equal(l, r Value, ctx *Context) (bool, error) {
	if eq, ok := naturalEqual(l, r); ok {
		return eq, nil
	}
	if inst, ok := l.AsInstance(); ok && inst.HasMethod("__eq__", 1) {
		result, err := inst.Call("__eq__", []Value{r}, ctx)
		if err != nil {
			return false, err
		}
		return Truthy(result), nil
	}
	if l.IsEmpty() && r.IsEmpty() {
		return true, nil
	}
	return false, newRuntimeError("cannot compare objects")
}

// Less implements §4.2's Less(l, r, ctx).
func Less(l, r Value, ctx *Context) (bool, error) {
	if lt, ok := naturalLess(l, r); ok {
		return lt, nil
	}
	if inst, ok := l.AsInstance(); ok && inst.HasMethod("__lt__", 1) {
		result, err := inst.Call("__lt__", []Value{r}, ctx)
		if err != nil {
			return false, err
		}
		return Truthy(result), nil
	}
	return false, newRuntimeError("cannot compare objects")
}

// NotEqual returns ¬Equal(l, r, ctx).
func NotEqual(l, r Value, ctx *Context) (bool, error) {
	eq, err := Equal(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Greater returns ¬Less(l, r, ctx) ∧ ¬Equal(l, r, ctx).
func Greater(l, r Value, ctx *Context) (bool, error) {
	lt, err := Less(l, r, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !lt && !eq, nil
}

// LessOrEqual returns ¬Greater(l, r, ctx).
func LessOrEqual(l, r Value, ctx *Context) (bool, error) {
	gt, err := Greater(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !gt, nil
}

// GreaterOrEqual returns ¬Less(l, r, ctx).
func GreaterOrEqual(l, r Value, ctx *Context) (bool, error) {
	lt, err := Less(l, r, ctx)
	if err != nil {
		return false, err
	}
	return !lt, nil
}
