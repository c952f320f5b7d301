package xformgen

import "sort"

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// Minus returns a - b.
func Minus(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// Inv returns 1/e.
func Inv(e Expr) Expr { return PowOf(e, N(-1)) }

// Sub substitutes value for every occurrence of varName and re-simplifies.
func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

// SubAll substitutes several variables one after another.
func SubAll(expr Expr, values map[string]Expr) Expr {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		expr = expr.Sub(name, values[name])
	}
	return expr.Simplify()
}

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

func DiffN(expr Expr, varName string, n int) Expr {
	result := expr
	for i := 0; i < n; i++ {
		result = Diff(result, varName)
	}
	return result
}

// IsZero reports whether e expands to exactly the number zero. No
// trigonometric identities are applied.
func IsZero(e Expr) bool {
	n, ok := Expand(e).(*Num)
	return ok && n.IsZero()
}

// EqualExpr reports whether a - b expands to zero.
func EqualExpr(a, b Expr) bool { return IsZero(Minus(a, b)) }

// ============================================================
// Expand
// ============================================================

// Expand distributes products over sums, including integer powers of sums
// up to degree 10, and expands function arguments.
func Expand(e Expr) Expr { return expandExpr(e.Simplify()).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = distribute(result, expandExpr(f))
		}
		return result
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok {
			if exp, ok2 := n.smallInt(); ok2 && exp >= 0 && exp <= 10 {
				result := Expr(N(1))
				for i := 0; i < exp; i++ {
					result = distribute(result, base)
				}
				return result
			}
		}
		return PowOf(base, expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

// distribute multiplies two expanded expressions term by term.
func distribute(a, b Expr) Expr {
	ta, tb := termsOf(a), termsOf(b)
	products := make([]Expr, 0, len(ta)*len(tb))
	for _, x := range ta {
		for _, y := range tb {
			products = append(products, MulOf(x, y))
		}
	}
	return AddOf(products...)
}

func termsOf(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// ============================================================
// Free Symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

// HasSymbol reports whether varName occurs in e.
func HasSymbol(e Expr, varName string) bool {
	_, ok := FreeSymbols(e)[varName]
	return ok
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}
