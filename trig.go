package xformgen

// ============================================================
// Trig identities
// ============================================================

// TrigExpand rewrites sin and cos of sums and integer multiples with the
// angle-addition identities and expands the result:
// cos(2*t) becomes cos(t)^2 - sin(t)^2.
func TrigExpand(e Expr) Expr {
	return Expand(trigExpandExpr(Expand(e)))
}

func trigExpandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = trigExpandExpr(t)
		}
		return AddOf(newTerms...)
	case *Mul:
		newFactors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			newFactors[i] = trigExpandExpr(f)
		}
		return MulOf(newFactors...)
	case *Pow:
		return PowOf(trigExpandExpr(v.base), v.exp)
	case *Func:
		arg := trigExpandExpr(v.arg)
		if v.name == "sin" || v.name == "cos" {
			return angleExpand(v.name, arg)
		}
		return funcOf(v.name, arg).Simplify()
	}
	return e
}

// angleExpand applies sin(u+w) and cos(u+w) recursively. Integer multiples
// n*u are treated as (n-1)*u + u.
func angleExpand(name string, arg Expr) Expr {
	var u, w Expr
	if add, ok := arg.(*Add); ok {
		u = add.terms[0]
		w = AddOf(add.terms[1:]...)
	} else {
		coeff, rest := extractCoefficient(arg)
		n, ok := coeff.smallInt()
		if !ok || n < 2 || n > 12 {
			return funcOf(name, arg).Simplify()
		}
		u = MulOf(N(int64(n-1)), rest)
		w = rest
	}
	sinU, cosU := angleExpand("sin", u), angleExpand("cos", u)
	sinW, cosW := angleExpand("sin", w), angleExpand("cos", w)
	if name == "sin" {
		return AddOf(MulOf(sinU, cosW), MulOf(cosU, sinW))
	}
	return AddOf(MulOf(cosU, cosW), Neg(MulOf(sinU, sinW)))
}

// TrigSimplify applies sin(u)^2 + cos(u)^2 = 1 to the expanded expression,
// including scaled pairs k*R*sin(u)^2 + k*R*cos(u)^2 = k*R.
func TrigSimplify(e Expr) Expr {
	curr := Expand(e)
	for i := 0; i < 16; i++ {
		next := trigFindPythagorean(curr)
		if next.Equal(curr) {
			break
		}
		curr = next
	}
	return curr
}

func trigFindPythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	type trigTerm struct {
		funcName string
		key      string
		coeff    *Num
		rest     Expr
		idx      int
	}
	var trigTerms []trigTerm
	for idx, t := range add.terms {
		coeff, inner := extractCoefficient(t)
		factors := []Expr{inner}
		if m, ok2 := inner.(*Mul); ok2 {
			factors = m.factors
		}
		for fi, f := range factors {
			p, ok2 := f.(*Pow)
			if !ok2 {
				continue
			}
			fn, ok3 := p.base.(*Func)
			if !ok3 || (fn.name != "sin" && fn.name != "cos") || !isNumEqual(p.exp, 2) {
				continue
			}
			others := make([]Expr, 0, len(factors)-1)
			others = append(others, factors[:fi]...)
			others = append(others, factors[fi+1:]...)
			rest := MulOf(others...)
			trigTerms = append(trigTerms, trigTerm{
				funcName: fn.name,
				key:      fn.arg.String() + "|" + rest.String(),
				coeff:    coeff,
				rest:     rest,
				idx:      idx,
			})
		}
	}
	for i := 0; i < len(trigTerms); i++ {
		for j := i + 1; j < len(trigTerms); j++ {
			ti, tj := trigTerms[i], trigTerms[j]
			if ti.idx == tj.idx || ti.key != tj.key || ti.funcName == tj.funcName || ti.coeff.val.Cmp(tj.coeff.val) != 0 {
				continue
			}
			newTerms := []Expr{}
			for idx, t := range add.terms {
				if idx != ti.idx && idx != tj.idx {
					newTerms = append(newTerms, t)
				}
			}
			newTerms = append(newTerms, MulOf(ti.coeff, ti.rest))
			return AddOf(newTerms...)
		}
	}
	return e
}
