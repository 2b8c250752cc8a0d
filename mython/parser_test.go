package mython

import "testing"

func mustParse(t *testing.T, source string) *Compound {
	t.Helper()
	node, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	comp, ok := node.(*Compound)
	if !ok {
		t.Fatalf("Parse(%q) = %T, want *Compound", source, node)
	}
	return comp
}

func TestParseAssignmentProducesAssignmentNode(t *testing.T) {
	comp := mustParse(t, "x = 1 + 2\n")
	if len(comp.Statements) != 1 {
		t.Fatalf("statements = %d, want 1", len(comp.Statements))
	}
	assign, ok := comp.Statements[0].(*Assignment)
	if !ok {
		t.Fatalf("statement = %T, want *Assignment", comp.Statements[0])
	}
	if assign.Name != "x" {
		t.Fatalf("assign.Name = %q, want %q", assign.Name, "x")
	}
	if _, ok := assign.Rhs.(*Add); !ok {
		t.Fatalf("assign.Rhs = %T, want *Add", assign.Rhs)
	}
}

func TestParseFieldAssignmentProducesFieldAssignmentNode(t *testing.T) {
	comp := mustParse(t, "obj.field = 1\n")
	if _, ok := comp.Statements[0].(*FieldAssignment); !ok {
		t.Fatalf("statement = %T, want *FieldAssignment", comp.Statements[0])
	}
}

func TestParseBareCallIsExpressionStatement(t *testing.T) {
	comp := mustParse(t, "obj.method()\n")
	if _, ok := comp.Statements[0].(*MethodCall); !ok {
		t.Fatalf("statement = %T, want *MethodCall", comp.Statements[0])
	}
}

func TestParseClassRequiresParentAlreadyDefined(t *testing.T) {
	_, err := Parse("class B(A):\n  def f():\n    return 1\n")
	if err == nil {
		t.Fatalf("expected ParseError, got nil")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("error = %T, want *ParseError", err)
	}
}

func TestParseClassDefBindsNewInstanceToConcreteClass(t *testing.T) {
	comp := mustParse(t, "class A:\n  def f():\n    return 1\na = A()\n")
	assign, ok := comp.Statements[1].(*Assignment)
	if !ok {
		t.Fatalf("statement[1] = %T, want *Assignment", comp.Statements[1])
	}
	newInst, ok := assign.Rhs.(*NewInstance)
	if !ok {
		t.Fatalf("assign.Rhs = %T, want *NewInstance", assign.Rhs)
	}
	if newInst.Class == nil || newInst.Class.Name != "A" {
		t.Fatalf("newInst.Class = %+v, want class A", newInst.Class)
	}
}

func TestParseOperatorPrecedenceMultBindsTighterThanAdd(t *testing.T) {
	comp := mustParse(t, "x = 1 + 2 * 3\n")
	assign := comp.Statements[0].(*Assignment)
	add, ok := assign.Rhs.(*Add)
	if !ok {
		t.Fatalf("top node = %T, want *Add", assign.Rhs)
	}
	if _, ok := add.Rhs.(*Mult); !ok {
		t.Fatalf("add.Rhs = %T, want *Mult", add.Rhs)
	}
	if _, ok := add.Lhs.(*NumericConst); !ok {
		t.Fatalf("add.Lhs = %T, want *NumericConst", add.Lhs)
	}
}

func TestParseComparisonBindsLooserThanAdditive(t *testing.T) {
	comp := mustParse(t, "x = 1 + 1 == 2\n")
	assign := comp.Statements[0].(*Assignment)
	cmp, ok := assign.Rhs.(*Comparison)
	if !ok {
		t.Fatalf("top node = %T, want *Comparison", assign.Rhs)
	}
	if _, ok := cmp.Lhs.(*Add); !ok {
		t.Fatalf("cmp.Lhs = %T, want *Add", cmp.Lhs)
	}
}

func TestParseAndBindsTighterThanOr(t *testing.T) {
	comp := mustParse(t, "x = True or False and False\n")
	assign := comp.Statements[0].(*Assignment)
	or, ok := assign.Rhs.(*Or)
	if !ok {
		t.Fatalf("top node = %T, want *Or", assign.Rhs)
	}
	if _, ok := or.Rhs.(*And); !ok {
		t.Fatalf("or.Rhs = %T, want *And", or.Rhs)
	}
}

func TestParseIfElseWithoutElseLeavesElseNil(t *testing.T) {
	comp := mustParse(t, "if True:\n  print 1\n")
	ifelse, ok := comp.Statements[0].(*IfElse)
	if !ok {
		t.Fatalf("statement = %T, want *IfElse", comp.Statements[0])
	}
	if ifelse.Else != nil {
		t.Fatalf("ifelse.Else = %v, want nil", ifelse.Else)
	}
}

func TestParseMethodDefWrapsBodyInMethodBody(t *testing.T) {
	comp := mustParse(t, "class A:\n  def f():\n    return 1\n")
	classDef, ok := comp.Statements[0].(*ClassDefinition)
	if !ok {
		t.Fatalf("statement = %T, want *ClassDefinition", comp.Statements[0])
	}
	m := classDef.Class.GetMethod("f")
	if m == nil {
		t.Fatalf("class has no method f")
	}
	if m.Body == nil {
		t.Fatalf("method body = nil, want a *MethodBody")
	}
}

func TestParseUnexpectedTokenReportsPositionInError(t *testing.T) {
	_, err := Parse("x = \n")
	if err == nil {
		t.Fatalf("expected ParseError, got nil")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if perr.Pos.Line != 1 {
		t.Fatalf("perr.Pos.Line = %d, want 1", perr.Pos.Line)
	}
}

func TestParseStrCallProducesStringifyNode(t *testing.T) {
	comp := mustParse(t, "x = str(1)\n")
	assign := comp.Statements[0].(*Assignment)
	if _, ok := assign.Rhs.(*Stringify); !ok {
		t.Fatalf("assign.Rhs = %T, want *Stringify", assign.Rhs)
	}
}

func TestParseNotBindsToSingleComparison(t *testing.T) {
	comp := mustParse(t, "x = not 1 == 2\n")
	assign := comp.Statements[0].(*Assignment)
	not, ok := assign.Rhs.(*Not)
	if !ok {
		t.Fatalf("top node = %T, want *Not", assign.Rhs)
	}
	if _, ok := not.Arg.(*Comparison); !ok {
		t.Fatalf("not.Arg = %T, want *Comparison", not.Arg)
	}
}
