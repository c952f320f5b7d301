package xformgen

// Complex is a pair of expressions multiplied like a complex number. It is
// used to write a 2D rotation as (x + iy)(cos t + i sin t).
type Complex struct {
	Re, Im Expr
}

func NewComplex(re, im Expr) Complex {
	return Complex{Re: re.Simplify(), Im: im.Simplify()}
}

// Mul returns c*o = (r1*r2 - i1*i2, r1*i2 + i1*r2). Neither operand changes,
// so products chain: a.Mul(b).Mul(c).
func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Re: Expand(Minus(MulOf(c.Re, o.Re), MulOf(c.Im, o.Im))),
		Im: Expand(AddOf(MulOf(c.Re, o.Im), MulOf(c.Im, o.Re))),
	}
}

// Matrix returns a new 2x1 column [re; im].
func (c Complex) Matrix() *Matrix { return Column(c.Re, c.Im) }

func (c Complex) String() string {
	return "(" + c.Re.String() + " + (" + c.Im.String() + ")i)"
}
