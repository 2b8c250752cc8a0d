package mython

import (
	"strings"
	"testing"
)

func run(t *testing.T, source string) string {
	t.Helper()
	var out strings.Builder
	interp := NewInterpreter(Config{})
	if err := interp.RunSource(source, &out); err != nil {
		t.Fatalf("RunSource(%q): %v", source, err)
	}
	return out.String()
}

func runErr(t *testing.T, source string) error {
	t.Helper()
	var out strings.Builder
	interp := NewInterpreter(Config{})
	return interp.RunSource(source, &out)
}

// Scenario 1: print 1 + 2 -> 3\n
func TestScenarioAddition(t *testing.T) {
	if got := run(t, "print 1 + 2\n"); got != "3\n" {
		t.Fatalf("got %q, want %q", got, "3\n")
	}
}

// Scenario 2: if/else on a comparison
func TestScenarioIfElse(t *testing.T) {
	source := "x = 10\nif x > 5:\n  print \"big\"\nelse:\n  print \"small\"\n"
	if got := run(t, source); got != "big\n" {
		t.Fatalf("got %q, want %q", got, "big\n")
	}
}

// Scenario 3: __str__ dispatch through Print
func TestScenarioStrDispatch(t *testing.T) {
	source := "class P:\n  def __str__():\n    return \"P\"\np = P()\nprint p\n"
	if got := run(t, source); got != "P\n" {
		t.Fatalf("got %q, want %q", got, "P\n")
	}
}

// Scenario 4: single inheritance, self dispatch, non-local return locality
func TestScenarioInheritanceAndSelf(t *testing.T) {
	source := "class A:\n  def f():\n    return 1\nclass B(A):\n  def g():\n    return self.f() + 10\nprint B().g()\n"
	if got := run(t, source); got != "11\n" {
		t.Fatalf("got %q, want %q", got, "11\n")
	}
}

// Scenario 5: __add__ dispatch
func TestScenarioAddDispatch(t *testing.T) {
	source := "class C:\n  def __add__(o):\n    return 42\nprint C() + C()\n"
	if got := run(t, source); got != "42\n" {
		t.Fatalf("got %q, want %q", got, "42\n")
	}
}

// Scenario 6: Or returns a Bool of the last-evaluated operand's
// truthiness, not the operand's own value — a documented quirk preserved
// from the source this language was distilled from.
func TestScenarioOrReturnsBoolNotOperand(t *testing.T) {
	source := "x = 0\ny = x or \"fallback\"\nprint y\n"
	if got := run(t, source); got != "True\n" {
		t.Fatalf("got %q, want %q", got, "True\n")
	}
}

func TestAndShortCircuitsSideEffects(t *testing.T) {
	source := "class Counter:\n  def bump():\n    self.n = self.n + 1\n    return True\nc = Counter()\nc.n = 0\nx = False and c.bump()\nprint c.n\n"
	if got := run(t, source); got != "0\n" {
		t.Fatalf("got %q, want %q (bump should not have run)", got, "0\n")
	}
}

func TestOrShortCircuitsSideEffects(t *testing.T) {
	source := "class Counter:\n  def bump():\n    self.n = self.n + 1\n    return True\nc = Counter()\nc.n = 0\nx = True or c.bump()\nprint c.n\n"
	if got := run(t, source); got != "0\n" {
		t.Fatalf("got %q, want %q (bump should not have run)", got, "0\n")
	}
}

func TestReturnLocalityAcrossNestedCalls(t *testing.T) {
	source := "" +
		"class Inner:\n" +
		"  def g():\n" +
		"    return 5\n" +
		"class Outer:\n" +
		"  def f(i):\n" +
		"    x = i.g()\n" +
		"    return x + 100\n" +
		"o = Outer()\n" +
		"i = Inner()\n" +
		"print o.f(i)\n"
	if got := run(t, source); got != "105\n" {
		t.Fatalf("got %q, want %q", got, "105\n")
	}
}

func TestPrintLawSpaceSeparatedNewlineTerminated(t *testing.T) {
	source := "print 1, \"a\", True\n"
	if got := run(t, source); got != "1 a True\n" {
		t.Fatalf("got %q, want %q", got, "1 a True\n")
	}
}

func TestStringifyPrintConsistency(t *testing.T) {
	source := "print str(1 + 2)\nprint 1 + 2\n"
	if got := run(t, source); got != "3\n3\n" {
		t.Fatalf("got %q, want %q", got, "3\n3\n")
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	err := runErr(t, "print 1 / 0\n")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("error = %T, want *RuntimeError", err)
	}
}

func TestDivZeroCheckOnlyFiresForNumberRHS(t *testing.T) {
	// Div's zero-check only fires when the RHS parses as a Number; a
	// non-number RHS falls through to the generic type error instead.
	err := runErr(t, "print 1 / \"x\"\n")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("error = %T, want *RuntimeError", err)
	}
	if re.Msg != "can divide only numbers" {
		t.Fatalf("error = %q, want the generic divide-only-numbers message", re.Msg)
	}
}

func TestUnboundVariableIsRuntimeError(t *testing.T) {
	err := runErr(t, "print x\n")
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("error = %T, want *RuntimeError", err)
	}
}

func TestMissingMethodIsRuntimeError(t *testing.T) {
	err := runErr(t, "class A:\n  def f():\n    return 1\nprint A().g()\n")
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("error = %T, want *RuntimeError", err)
	}
}

// A NewInstance node owns its constructed instance's lifetime: every
// evaluation of the same constructor expression returns a handle to the
// same underlying instance, re-running __init__ on it rather than
// allocating a fresh instance each time.
func TestNewInstanceNodeOwnsInstanceLifetime(t *testing.T) {
	source := "" +
		"class Box:\n" +
		"  def set(v):\n" +
		"    self.v = v\n" +
		"  def get():\n" +
		"    return self.v\n" +
		"class Factory:\n" +
		"  def make():\n" +
		"    return Box()\n" +
		"f = Factory()\n" +
		"a = f.make()\n" +
		"a.set(1)\n" +
		"b = f.make()\n" +
		"b.set(2)\n" +
		"print a.get()\n"
	if got := run(t, source); got != "2\n" {
		t.Fatalf("got %q, want %q (a and b alias the make() call site's one instance)", got, "2\n")
	}
}

func TestComparisonTotalityOnPrimitives(t *testing.T) {
	ctx := NewContext(&strings.Builder{})
	pairs := []struct{ a, b Value }{
		{NumberValue(1), NumberValue(2)},
		{NumberValue(2), NumberValue(2)},
		{NumberValue(3), NumberValue(2)},
		{StringValue("a"), StringValue("b")},
		{BoolValue(false), BoolValue(true)},
	}
	for _, pr := range pairs {
		lt, err := Less(pr.a, pr.b, ctx)
		if err != nil {
			t.Fatalf("Less: %v", err)
		}
		eq, err := Equal(pr.a, pr.b, ctx)
		if err != nil {
			t.Fatalf("Equal: %v", err)
		}
		gt, err := Less(pr.b, pr.a, ctx)
		if err != nil {
			t.Fatalf("Less (rev): %v", err)
		}
		count := 0
		if lt && !eq {
			count++
		}
		if eq {
			count++
		}
		if gt && !eq {
			count++
		}
		if count != 1 {
			t.Fatalf("pair %v/%v: exactly one of lt/eq/gt should hold, got lt=%v eq=%v gt=%v", pr.a, pr.b, lt, eq, gt)
		}
	}
}
