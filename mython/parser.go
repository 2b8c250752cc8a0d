package mython

import "fmt"

// Parser is a single-pass recursive-descent parser over a token stream
// produced by Lexer. It builds the closed AST node set from §4.3
// directly, resolving class references as it encounters `class`
// statements — a class must be defined before any constructor call
// names it, and a class's parent must already be defined when the
// `class Child(Parent):` line is parsed. A bare class name used as a
// value is an ordinary variable lookup at run time.
//
// The grammar the parser accepts:
//
//	program    := statement*
//	statement  := classdef | ifelse | print | return | simple
//	classdef   := "class" IDENT ["(" IDENT ")"] ":" NEWLINE INDENT methoddef+ DEDENT
//	methoddef  := "def" IDENT "(" [IDENT ("," IDENT)*] ")" ":" NEWLINE block
//	ifelse     := "if" expr ":" NEWLINE block ["else" ":" NEWLINE block]
//	print      := "print" [expr ("," expr)*] NEWLINE
//	return     := "return" [expr] NEWLINE
//	simple     := IDENT ("." IDENT)* "=" expr NEWLINE | expr NEWLINE
//	block      := INDENT statement+ DEDENT
//	expr       := or
//	or         := and ("or" and)*
//	and        := not ("and" not)*
//	not        := "not" not | comparison
//	comparison := additive [("==" | "!=" | "<" | ">" | "<=" | ">=") additive]
//	additive   := term (("+" | "-") term)*
//	term       := postfix (("*" | "/") postfix)*
//	postfix    := primary ("." IDENT "(" args ")")*
//	primary    := NUMBER | STRING | "True" | "False" | "None"
//	            | "str" "(" expr ")"
//	            | "(" expr ")"
//	            | IDENT ("." IDENT)* ["(" args ")"]
type Parser struct {
	source  string
	lex     *Lexer
	cur     Token
	classes map[string]*Class
}

// NewParser returns a Parser primed with the first token of source.
func NewParser(source string) (*Parser, error) {
	p := &Parser{
		source:  source,
		lex:     NewLexer(source),
		classes: make(map[string]*Class),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse lexes and parses source into a top-level Compound of class
// definitions and statements.
func Parse(source string) (Node, error) {
	p, err := NewParser(source)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// ParseProgram parses the whole token stream into a top-level Compound.
func (p *Parser) ParseProgram() (Node, error) {
	var stmts []Node
	for p.cur.Type != tokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &Compound{Statements: stmts}, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Pos: p.cur.Pos, Source: p.source}
}

func (p *Parser) expect(tt TokenType) error {
	if p.cur.Type != tt {
		return p.errorf("expected %s, got %s %q", tt, p.cur.Type, p.cur.Literal)
	}
	return nil
}

func (p *Parser) expectAdvance(tt TokenType) error {
	if err := p.expect(tt); err != nil {
		return err
	}
	return p.advance()
}

func (p *Parser) isChar(ch string) bool {
	return p.cur.Type == tokenChar && p.cur.Literal == ch
}

func (p *Parser) expectCharAdvance(ch string) error {
	if !p.isChar(ch) {
		return p.errorf("expected %q, got %s %q", ch, p.cur.Type, p.cur.Literal)
	}
	return p.advance()
}

func (p *Parser) parseStatement() (Node, error) {
	switch p.cur.Type {
	case tokenClass:
		return p.parseClassDef()
	case tokenIf:
		return p.parseIfElse()
	case tokenPrint:
		return p.parsePrint()
	case tokenReturn:
		return p.parseReturn()
	default:
		return p.parseSimpleStatement()
	}
}

// parseBlock consumes an INDENT, one or more statements, and the matching
// DEDENT, returning the statements as a Compound.
func (p *Parser) parseBlock() (Node, error) {
	if err := p.expectAdvance(tokenIndent); err != nil {
		return nil, err
	}
	var stmts []Node
	for p.cur.Type != tokenDedent {
		if p.cur.Type == tokenEOF {
			return nil, p.errorf("unexpected end of input inside block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &Compound{Statements: stmts}, nil
}

func (p *Parser) parseClassDef() (Node, error) {
	if err := p.advance(); err != nil { // consume "class"
		return nil, err
	}
	if err := p.expect(tokenIdent); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}

	var parent *Class
	if p.isChar("(") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokenIdent); err != nil {
			return nil, err
		}
		parentName := p.cur.Literal
		cls, ok := p.classes[parentName]
		if !ok {
			return nil, p.errorf("undefined parent class %s", parentName)
		}
		parent = cls
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectCharAdvance(")"); err != nil {
			return nil, err
		}
	}

	if err := p.expectCharAdvance(":"); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(tokenNewline); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(tokenIndent); err != nil {
		return nil, err
	}

	cls := &Class{Name: name, Parent: parent}
	p.classes[name] = cls

	var methods []*Method
	for p.cur.Type == tokenDef {
		m, err := p.parseMethodDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	cls.Methods = methods

	if err := p.expectAdvance(tokenDedent); err != nil {
		return nil, err
	}
	return &ClassDefinition{Class: cls}, nil
}

func (p *Parser) parseMethodDef() (*Method, error) {
	if err := p.advance(); err != nil { // consume "def"
		return nil, err
	}
	if err := p.expect(tokenIdent); err != nil {
		return nil, err
	}
	name := p.cur.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expectCharAdvance("("); err != nil {
		return nil, err
	}
	var params []string
	if !p.isChar(")") {
		if err := p.expect(tokenIdent); err != nil {
			return nil, err
		}
		params = append(params, p.cur.Literal)
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.isChar(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(tokenIdent); err != nil {
				return nil, err
			}
			params = append(params, p.cur.Literal)
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectCharAdvance(")"); err != nil {
		return nil, err
	}
	if err := p.expectCharAdvance(":"); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(tokenNewline); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &Method{Name: name, Params: params, Body: &MethodBody{Body: body}}, nil
}

func (p *Parser) parseIfElse() (Node, error) {
	if err := p.advance(); err != nil { // consume "if"
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectCharAdvance(":"); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(tokenNewline); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock Node
	if p.cur.Type == tokenElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectCharAdvance(":"); err != nil {
			return nil, err
		}
		if err := p.expectAdvance(tokenNewline); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &IfElse{Cond: cond, Then: thenBlock, Else: elseBlock}, nil
}

func (p *Parser) parsePrint() (Node, error) {
	if err := p.advance(); err != nil { // consume "print"
		return nil, err
	}
	var args []Node
	if p.cur.Type != tokenNewline {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.isChar(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if err := p.expectAdvance(tokenNewline); err != nil {
		return nil, err
	}
	return &Print{Args: args}, nil
}

func (p *Parser) parseReturn() (Node, error) {
	if err := p.advance(); err != nil { // consume "return"
		return nil, err
	}
	var expr Node = &NoneLiteral{}
	if p.cur.Type != tokenNewline {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr = e
	}
	if err := p.expectAdvance(tokenNewline); err != nil {
		return nil, err
	}
	return &Return{Expr: expr}, nil
}

// parseSimpleStatement handles a top-level or dotted assignment, or a
// bare expression evaluated for its side effects (typically a method
// call).
func (p *Parser) parseSimpleStatement() (Node, error) {
	if p.cur.Type == tokenIdent {
		name := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		var tail []string
		for p.isChar(".") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(tokenIdent); err != nil {
				return nil, err
			}
			tail = append(tail, p.cur.Literal)
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.isChar("=") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectAdvance(tokenNewline); err != nil {
				return nil, err
			}
			if len(tail) == 0 {
				return &Assignment{Name: name, Rhs: rhs}, nil
			}
			field := tail[len(tail)-1]
			return &FieldAssignment{
				Object: &VariableValue{Name: name, Tail: tail[:len(tail)-1]},
				Field:  field,
				Rhs:    rhs,
			}, nil
		}
		// Not an assignment: fold the identifier and its dotted tail into
		// an expression and let normal expression parsing (operators,
		// further postfix calls) continue from there.
		node, err := p.finishIdentExpr(name, tail)
		if err != nil {
			return nil, err
		}
		node, err = p.continuePostfix(node)
		if err != nil {
			return nil, err
		}
		node, err = p.continueBinaryFrom(node)
		if err != nil {
			return nil, err
		}
		if err := p.expectAdvance(tokenNewline); err != nil {
			return nil, err
		}
		return node, nil
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(tokenNewline); err != nil {
		return nil, err
	}
	return expr, nil
}

// --- expression grammar, precedence low to high: or, and, not,
// comparison, additive, term, postfix, primary ---

func (p *Parser) parseExpr() (Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == tokenOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{BinaryOp{Lhs: left, Rhs: right}}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == tokenAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &And{BinaryOp{Lhs: left, Rhs: right}}
	}
	return left, nil
}

func (p *Parser) parseNot() (Node, error) {
	if p.cur.Type == tokenNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{Arg: arg}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	var cmp CompareFunc
	switch {
	case p.cur.Type == tokenEq:
		cmp = Equal
	case p.cur.Type == tokenNotEq:
		cmp = NotEqual
	case p.cur.Type == tokenLessOrEq:
		cmp = LessOrEqual
	case p.cur.Type == tokenGreaterOrEq:
		cmp = GreaterOrEqual
	case p.isChar("<"):
		cmp = Less
	case p.isChar(">"):
		cmp = Greater
	default:
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return &Comparison{Cmp: cmp, Lhs: left, Rhs: right}, nil
}

func (p *Parser) parseAdditive() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isChar("+") || p.isChar("-") {
		op := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			left = &Add{BinaryOp{Lhs: left, Rhs: right}}
		} else {
			left = &Sub{BinaryOp{Lhs: left, Rhs: right}}
		}
	}
	return left, nil
}

func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parsePostfixExpr()
	if err != nil {
		return nil, err
	}
	for p.isChar("*") || p.isChar("/") {
		op := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePostfixExpr()
		if err != nil {
			return nil, err
		}
		if op == "*" {
			left = &Mult{BinaryOp{Lhs: left, Rhs: right}}
		} else {
			left = &Div{BinaryOp{Lhs: left, Rhs: right}}
		}
	}
	return left, nil
}

func (p *Parser) parsePostfixExpr() (Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.continuePostfix(node)
}

// continuePostfix chains further `.method(args)` calls onto node, used
// both by the normal expression path and by statements that started out
// looking like an assignment target.
func (p *Parser) continuePostfix(node Node) (Node, error) {
	for p.isChar(".") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokenIdent); err != nil {
			return nil, err
		}
		method := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if !p.isChar("(") {
			return nil, p.errorf("expected method call after '.%s'", method)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		node = &MethodCall{Object: node, Method: method, Args: args}
	}
	return node, nil
}

// continueBinaryFrom lets a statement that began as an identifier chain
// (parsed outside the normal precedence ladder, to distinguish assignment
// targets) still take part in `*`, `/`, `+`, `-`, comparison, `and`, `or`
// operators, e.g. a bare expression statement like `x + 1`.
func (p *Parser) continueBinaryFrom(node Node) (Node, error) {
	for p.isChar("*") || p.isChar("/") {
		op := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePostfixExpr()
		if err != nil {
			return nil, err
		}
		if op == "*" {
			node = &Mult{BinaryOp{Lhs: node, Rhs: right}}
		} else {
			node = &Div{BinaryOp{Lhs: node, Rhs: right}}
		}
	}
	for p.isChar("+") || p.isChar("-") {
		op := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == "+" {
			node = &Add{BinaryOp{Lhs: node, Rhs: right}}
		} else {
			node = &Sub{BinaryOp{Lhs: node, Rhs: right}}
		}
	}
	var cmp CompareFunc
	switch {
	case p.cur.Type == tokenEq:
		cmp = Equal
	case p.cur.Type == tokenNotEq:
		cmp = NotEqual
	case p.cur.Type == tokenLessOrEq:
		cmp = LessOrEqual
	case p.cur.Type == tokenGreaterOrEq:
		cmp = GreaterOrEqual
	case p.isChar("<"):
		cmp = Less
	case p.isChar(">"):
		cmp = Greater
	}
	if cmp != nil {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		node = &Comparison{Cmp: cmp, Lhs: node, Rhs: right}
	}
	for p.cur.Type == tokenAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		node = &And{BinaryOp{Lhs: node, Rhs: right}}
	}
	for p.cur.Type == tokenOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		node = &Or{BinaryOp{Lhs: node, Rhs: right}}
	}
	return node, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	switch {
	case p.cur.Type == tokenNumber:
		n := p.cur.Number
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &NumericConst{N: n}, nil
	case p.cur.Type == tokenString:
		s := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &StringConst{S: s}, nil
	case p.cur.Type == tokenTrue:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &BoolConst{B: true}, nil
	case p.cur.Type == tokenFalse:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &BoolConst{B: false}, nil
	case p.cur.Type == tokenNone:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &NoneLiteral{}, nil
	case p.isChar("("):
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectCharAdvance(")"); err != nil {
			return nil, err
		}
		return expr, nil
	case p.cur.Type == tokenIdent:
		name := p.cur.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		if name == "str" && p.isChar("(") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectCharAdvance(")"); err != nil {
				return nil, err
			}
			return &Stringify{Arg: arg}, nil
		}
		var tail []string
		for p.isChar(".") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(tokenIdent); err != nil {
				return nil, err
			}
			tail = append(tail, p.cur.Literal)
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		return p.finishIdentExpr(name, tail)
	default:
		return nil, p.errorf("unexpected token %s %q", p.cur.Type, p.cur.Literal)
	}
}

// finishIdentExpr builds the expression node for an identifier and its
// already-collected dotted tail: a NewInstance if it's a bare class name
// applied to "(", a MethodCall if the tail's last segment is applied to
// "(", or a plain VariableValue otherwise.
func (p *Parser) finishIdentExpr(name string, tail []string) (Node, error) {
	if p.isChar("(") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if len(tail) == 0 {
			cls, ok := p.classes[name]
			if !ok {
				return nil, p.errorf("unknown class %s", name)
			}
			return &NewInstance{Class: cls, Args: args}, nil
		}
		method := tail[len(tail)-1]
		obj := &VariableValue{Name: name, Tail: tail[:len(tail)-1]}
		return &MethodCall{Object: obj, Method: method, Args: args}, nil
	}
	return &VariableValue{Name: name, Tail: tail}, nil
}

func (p *Parser) parseArgs() ([]Node, error) {
	var args []Node
	if !p.isChar(")") {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.isChar(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if err := p.expectCharAdvance(")"); err != nil {
		return nil, err
	}
	return args, nil
}
