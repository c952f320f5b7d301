package xformgen_test

import (
	"testing"

	"github.com/njchilds90/xformgen"
)

// ============================================================
// Num / Sym tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := xformgen.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := xformgen.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
	if n.LaTeX() != `\frac{1}{3}` {
		t.Errorf("want \\frac{1}{3}, got %s", n.LaTeX())
	}
}

func TestSym_Diff(t *testing.T) {
	if got := xformgen.String(xformgen.S("x").Diff("x")); got != "1" {
		t.Errorf("d/dx(x) should be 1, got %s", got)
	}
	if got := xformgen.String(xformgen.S("y").Diff("x")); got != "0" {
		t.Errorf("d/dx(y) should be 0, got %s", got)
	}
}

func TestSymbols(t *testing.T) {
	syms := xformgen.Symbols("px,py, sx,sy, rot")
	want := []string{"px", "py", "sx", "sy", "rot"}
	if len(syms) != len(want) {
		t.Fatalf("want %d symbols, got %d", len(want), len(syms))
	}
	for i, s := range syms {
		if s.Name() != want[i] {
			t.Errorf("symbol %d: want %s, got %s", i, want[i], s.Name())
		}
	}
}

// ============================================================
// Add / Mul / Pow tests
// ============================================================

func TestAdd_LikeTerms(t *testing.T) {
	x := xformgen.S("x")
	if got := xformgen.String(xformgen.AddOf(x, x)); got != "2*x" {
		t.Errorf("want '2*x', got %s", got)
	}
}

func TestAdd_LikeProducts(t *testing.T) {
	x, y := xformgen.S("x"), xformgen.S("y")
	expr := xformgen.AddOf(xformgen.MulOf(xformgen.N(2), x, y), xformgen.MulOf(y, x))
	if got := xformgen.String(expr); got != "3*x*y" {
		t.Errorf("want '3*x*y', got %s", got)
	}
}

func TestAdd_ConstantLast(t *testing.T) {
	expr := xformgen.AddOf(xformgen.N(3), xformgen.S("x"))
	if got := xformgen.String(expr); got != "x + 3" {
		t.Errorf("want 'x + 3', got %s", got)
	}
}

func TestMinus_PrintsSubtraction(t *testing.T) {
	expr := xformgen.Minus(xformgen.S("x"), xformgen.S("y"))
	if got := xformgen.String(expr); got != "x - y" {
		t.Errorf("want 'x - y', got %s", got)
	}
}

func TestMul_MergesPowers(t *testing.T) {
	x := xformgen.S("x")
	if got := xformgen.String(xformgen.MulOf(x, x)); got != "x^2" {
		t.Errorf("want x^2, got %s", got)
	}
	if got := xformgen.String(xformgen.MulOf(x, xformgen.Inv(x))); got != "1" {
		t.Errorf("x/x should be 1, got %s", got)
	}
}

func TestMul_ZeroCollapse(t *testing.T) {
	expr := xformgen.MulOf(xformgen.N(0), xformgen.S("x"))
	if got := xformgen.String(expr); got != "0" {
		t.Errorf("0*x should be 0, got %s", got)
	}
}

func TestMul_Denominator(t *testing.T) {
	x, y := xformgen.S("x"), xformgen.S("y")
	if got := xformgen.String(xformgen.MulOf(x, xformgen.Inv(y))); got != "x/y" {
		t.Errorf("want x/y, got %s", got)
	}
	if got := xformgen.String(xformgen.Inv(xformgen.S("w"))); got != "1/w" {
		t.Errorf("want 1/w, got %s", got)
	}
}

func TestPow_NumericEval(t *testing.T) {
	expr := xformgen.PowOf(xformgen.N(2), xformgen.N(3))
	if got := xformgen.String(expr); got != "8" {
		t.Errorf("2^3 should be 8, got %s", got)
	}
	expr = xformgen.PowOf(xformgen.N(2), xformgen.N(-2))
	if got := xformgen.String(expr); got != "1/4" {
		t.Errorf("2^-2 should be 1/4, got %s", got)
	}
}

func TestPow_Diff_PowerRule(t *testing.T) {
	expr := xformgen.PowOf(xformgen.S("x"), xformgen.N(3))
	if got := xformgen.String(xformgen.Diff(expr, "x")); got != "3*x^2" {
		t.Errorf("d/dx(x^3) should be 3*x^2, got %s", got)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_TrigDiff(t *testing.T) {
	x := xformgen.S("x")
	if got := xformgen.String(xformgen.Diff(xformgen.SinOf(x), "x")); got != "cos(x)" {
		t.Errorf("d/dx(sin(x)) should be cos(x), got %s", got)
	}
	if got := xformgen.String(xformgen.Diff(xformgen.CosOf(x), "x")); got != "-sin(x)" {
		t.Errorf("d/dx(cos(x)) should be -sin(x), got %s", got)
	}
}

func TestFunc_Parity(t *testing.T) {
	x := xformgen.S("x")
	if got := xformgen.String(xformgen.SinOf(xformgen.Neg(x))); got != "-sin(x)" {
		t.Errorf("sin(-x) should be -sin(x), got %s", got)
	}
	if got := xformgen.String(xformgen.CosOf(xformgen.Neg(x))); got != "cos(x)" {
		t.Errorf("cos(-x) should be cos(x), got %s", got)
	}
}

func TestFunc_ExactValues(t *testing.T) {
	if got := xformgen.String(xformgen.SinOf(xformgen.N(0))); got != "0" {
		t.Errorf("sin(0) should be 0, got %s", got)
	}
	if got := xformgen.String(xformgen.CosOf(xformgen.N(0))); got != "1" {
		t.Errorf("cos(0) should be 1, got %s", got)
	}
	if got := xformgen.String(xformgen.SinOf(xformgen.N(1))); got != "sin(1)" {
		t.Errorf("sin(1) should stay symbolic, got %s", got)
	}
}

// ============================================================
// Expand / IsZero tests
// ============================================================

func TestExpand_Distribution(t *testing.T) {
	x := xformgen.S("x")
	expr := xformgen.MulOf(xformgen.AddOf(x, xformgen.N(1)), xformgen.AddOf(x, xformgen.N(2)))
	if got := xformgen.String(xformgen.Expand(expr)); got != "3*x + x^2 + 2" {
		t.Errorf("want '3*x + x^2 + 2', got %s", got)
	}
}

func TestExpand_Square(t *testing.T) {
	x := xformgen.S("x")
	expr := xformgen.PowOf(xformgen.AddOf(x, xformgen.N(1)), xformgen.N(2))
	if got := xformgen.String(xformgen.Expand(expr)); got != "2*x + x^2 + 1" {
		t.Errorf("want '2*x + x^2 + 1', got %s", got)
	}
}

func TestIsZero(t *testing.T) {
	x, y := xformgen.S("x"), xformgen.S("y")
	if !xformgen.IsZero(xformgen.Minus(xformgen.MulOf(x, y), xformgen.MulOf(y, x))) {
		t.Error("x*y - y*x should be zero")
	}
	lhs := xformgen.PowOf(xformgen.AddOf(x, y), xformgen.N(2))
	rhs := xformgen.AddOf(xformgen.PowOf(x, xformgen.N(2)), xformgen.MulOf(xformgen.N(2), x, y), xformgen.PowOf(y, xformgen.N(2)))
	if !xformgen.EqualExpr(lhs, rhs) {
		t.Error("(x+y)^2 should equal x^2 + 2xy + y^2")
	}
	if xformgen.IsZero(x) {
		t.Error("x is not zero")
	}
}

func TestSubAll(t *testing.T) {
	x, y := xformgen.S("x"), xformgen.S("y")
	expr := xformgen.AddOf(xformgen.MulOf(xformgen.N(2), x), y, xformgen.N(5))
	got := xformgen.SubAll(expr, map[string]xformgen.Expr{"x": xformgen.N(0), "y": xformgen.N(0)})
	if xformgen.String(got) != "5" {
		t.Errorf("want 5, got %s", xformgen.String(got))
	}
}

func TestFreeSymbols(t *testing.T) {
	expr := xformgen.AddOf(xformgen.S("x"), xformgen.MulOf(xformgen.SinOf(xformgen.S("y")), xformgen.N(2)))
	syms := xformgen.FreeSymbols(expr)
	if len(syms) != 2 {
		t.Errorf("expected 2 free symbols, got %d", len(syms))
	}
	if !xformgen.HasSymbol(expr, "y") {
		t.Error("expected y in free symbols")
	}
}

// ============================================================
// Trig tests
// ============================================================

func TestTrigSimplify_Pythagorean(t *testing.T) {
	x := xformgen.S("x")
	expr := xformgen.AddOf(xformgen.PowOf(xformgen.SinOf(x), xformgen.N(2)), xformgen.PowOf(xformgen.CosOf(x), xformgen.N(2)))
	if got := xformgen.String(xformgen.TrigSimplify(expr)); got != "1" {
		t.Errorf("sin^2+cos^2 should be 1, got %s", got)
	}
}

func TestTrigSimplify_Scaled(t *testing.T) {
	x, r := xformgen.S("x"), xformgen.S("r")
	expr := xformgen.MulOf(xformgen.N(3), r, xformgen.AddOf(
		xformgen.PowOf(xformgen.SinOf(x), xformgen.N(2)),
		xformgen.PowOf(xformgen.CosOf(x), xformgen.N(2)),
	))
	if got := xformgen.String(xformgen.TrigSimplify(expr)); got != "3*r" {
		t.Errorf("want 3*r, got %s", got)
	}
}

func TestTrigExpand_DoubleAngle(t *testing.T) {
	x := xformgen.S("x")
	got := xformgen.TrigExpand(xformgen.CosOf(xformgen.MulOf(xformgen.N(2), x)))
	want := xformgen.Minus(xformgen.PowOf(xformgen.CosOf(x), xformgen.N(2)), xformgen.PowOf(xformgen.SinOf(x), xformgen.N(2)))
	if !xformgen.EqualExpr(got, want) {
		t.Errorf("cos(2x): want %s, got %s", want, got)
	}
}

func TestTrigExpand_Sum(t *testing.T) {
	a, b := xformgen.S("a"), xformgen.S("b")
	got := xformgen.TrigExpand(xformgen.SinOf(xformgen.AddOf(a, b)))
	want := xformgen.AddOf(
		xformgen.MulOf(xformgen.SinOf(a), xformgen.CosOf(b)),
		xformgen.MulOf(xformgen.CosOf(a), xformgen.SinOf(b)),
	)
	if !xformgen.EqualExpr(got, want) {
		t.Errorf("sin(a+b): want %s, got %s", want, got)
	}
}

func TestMul_SymbolsBeforeFunctions(t *testing.T) {
	rot, sx := xformgen.S("rot"), xformgen.S("sx")
	if got := xformgen.String(xformgen.MulOf(xformgen.CosOf(rot), sx)); got != "sx*cos(rot)" {
		t.Errorf("want sx*cos(rot), got %s", got)
	}
	expr := xformgen.MulOf(xformgen.AddOf(rot, xformgen.N(1)), xformgen.SinOf(rot), sx)
	if got := xformgen.String(expr); got != "sx*sin(rot)*(rot + 1)" {
		t.Errorf("want sx*sin(rot)*(rot + 1), got %s", got)
	}
}
