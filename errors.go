package xformgen

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("xformgen: dimension mismatch")

	// ErrNonAffine is returned by FindA when an output expression has a
	// nonzero second derivative in one of the input variables.
	ErrNonAffine = errors.New("xformgen: expression is not affine in variable")

	// ErrNonzeroOffset is returned by FindLinear when an output expression
	// has a constant term.
	ErrNonzeroOffset = errors.New("xformgen: expression has a nonzero constant term")

	// ErrNotVariable is returned when an input vector entry is not a symbol.
	ErrNotVariable = errors.New("xformgen: input entry is not a symbol")

	// ErrDuplicateVariable is returned when an input vector repeats a symbol.
	ErrDuplicateVariable = errors.New("xformgen: input symbol repeated")

	// ErrTargetTooSmall is returned by EmbedInIdentity when the target size
	// cannot hold the source block.
	ErrTargetTooSmall = errors.New("xformgen: target size smaller than matrix")
)

// NonAffineError describes the entry that failed the affine check.
type NonAffineError struct {
	Row       int    // index of the output expression in C
	Var       string // input variable
	Expr      Expr   // expanded output expression
	Curvature Expr   // second derivative with respect to Var
}

func (e *NonAffineError) Error() string {
	return fmt.Sprintf("%v: C[%d] = %s, d2/d%s^2 = %s", ErrNonAffine, e.Row, e.Expr, e.Var, e.Curvature)
}

func (e *NonAffineError) Is(target error) bool { return target == ErrNonAffine }
