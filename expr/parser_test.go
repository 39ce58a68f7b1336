package expr

import "testing"

func TestParseExpressionPrecedence(t *testing.T) {
	n, err := parseExpression("1 + 2 * 3")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	add, ok := n.(binaryExpr)
	if !ok || add.op != "+" {
		t.Fatalf("top node = %#v, want + binaryExpr", n)
	}
	if _, ok := add.left.(numberLit); !ok {
		t.Fatalf("left = %#v, want numberLit", add.left)
	}
	mul, ok := add.right.(binaryExpr)
	if !ok || mul.op != "*" {
		t.Fatalf("right = %#v, want * binaryExpr", add.right)
	}
}

func TestParseTernary(t *testing.T) {
	n, err := parseExpression("a ? b : c")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	cond, ok := n.(conditionalExpr)
	if !ok {
		t.Fatalf("node = %#v, want conditionalExpr", n)
	}
	if cond.test.(identifier).name != "a" {
		t.Fatalf("test = %#v, want identifier a", cond.test)
	}
}

func TestParseMemberAndCallChain(t *testing.T) {
	n, err := parseExpression(`user.profile.greet("hi")`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	call, ok := n.(callExpr)
	if !ok {
		t.Fatalf("node = %#v, want callExpr", n)
	}
	if len(call.args) != 1 {
		t.Fatalf("args = %d, want 1", len(call.args))
	}
	member, ok := call.callee.(memberExpr)
	if !ok || member.property != "greet" {
		t.Fatalf("callee = %#v, want memberExpr.greet", call.callee)
	}
}

func TestParseComputedMemberAccess(t *testing.T) {
	n, err := parseExpression("items[0]")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	m, ok := n.(memberExpr)
	if !ok || m.computed == nil {
		t.Fatalf("node = %#v, want computed memberExpr", n)
	}
}

func TestParseBareArrowFunction(t *testing.T) {
	n, err := parseExpression("x => x + 1")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	af, ok := n.(arrowFunc)
	if !ok || len(af.params) != 1 || af.params[0] != "x" {
		t.Fatalf("node = %#v, want arrowFunc(x)", n)
	}
}

func TestParseParenthesizedArrowFunction(t *testing.T) {
	n, err := parseExpression("(a, b) => a + b")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	af, ok := n.(arrowFunc)
	if !ok || len(af.params) != 2 {
		t.Fatalf("node = %#v, want arrowFunc(a, b)", n)
	}
}

func TestParseParenthesizedExpressionIsNotMistakenForArrow(t *testing.T) {
	n, err := parseExpression("(1 + 2) * 3")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	mul, ok := n.(binaryExpr)
	if !ok || mul.op != "*" {
		t.Fatalf("node = %#v, want * binaryExpr", n)
	}
}

func TestParseArrayAndObjectLiterals(t *testing.T) {
	n, err := parseExpression(`[1, ...rest, {a: 1, b}]`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	arr, ok := n.(arrayLit)
	if !ok || len(arr.elements) != 3 {
		t.Fatalf("node = %#v, want 3-element arrayLit", n)
	}
	if !arr.elements[1].spread {
		t.Fatal("element 1 should be spread")
	}
	obj, ok := arr.elements[2].node.(objectLit)
	if !ok || len(obj.props) != 2 {
		t.Fatalf("element 2 = %#v, want 2-prop objectLit", arr.elements[2].node)
	}
	if obj.props[1].key != "b" {
		t.Fatalf("shorthand prop key = %q, want b", obj.props[1].key)
	}
}

func TestParseStatementsSplitsOnSemicolon(t *testing.T) {
	n, err := parseStatements("f(1); g(2)")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	seq, ok := n.(sequenceExpr)
	if !ok || len(seq.stmts) != 2 {
		t.Fatalf("node = %#v, want 2-statement sequenceExpr", n)
	}
}

func TestParseTrailingTokenIsAnError(t *testing.T) {
	if _, err := parseExpression("1 2"); err == nil {
		t.Fatal("expected trailing-token error")
	}
}
