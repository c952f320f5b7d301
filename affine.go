package xformgen

import "fmt"

// FindA returns the coefficient matrix A with C = A*B, given a vector B of
// distinct variables and a vector C of expressions affine in each of them.
//
// A[i][k] is the partial derivative of the i-th entry of C with respect to
// the k-th entry of B, with entries taken in row-major order. An entry with
// a nonzero second derivative yields a *NonAffineError. Constant terms of C
// are not captured; see FindAffine.
func FindA(B, C *Matrix) (*Matrix, error) {
	vars, err := variables(B, C)
	if err != nil {
		return nil, err
	}
	outs := C.Entries()
	A := NewMatrix(len(outs), len(vars))
	for i, c := range outs {
		expanded := Expand(c)
		for k, v := range vars {
			d0 := Expand(Diff(expanded, v))
			d1 := Diff(d0, v)
			if !IsZero(d1) {
				return nil, &NonAffineError{Row: i, Var: v, Expr: expanded, Curvature: d1}
			}
			A.data[i][k] = d0
		}
	}
	return A, nil
}

// FindAffine returns A and the offset vector b with C = A*B + b, where b is
// C evaluated at B = 0. Products of two different input variables make the
// decomposition impossible and are reported as ErrNonAffine.
func FindAffine(B, C *Matrix) (A, offset *Matrix, err error) {
	if A, err = FindA(B, C); err != nil {
		return nil, nil, err
	}
	vars, _ := variables(B, C)
	zero := make(map[string]Expr, len(vars))
	for _, v := range vars {
		zero[v] = N(0)
	}
	outs := C.Entries()
	offset = NewMatrix(len(outs), 1)
	for i, c := range outs {
		b := Expand(SubAll(c, zero))
		terms := []Expr{b}
		for k, v := range vars {
			terms = append(terms, MulOf(A.data[i][k], S(v)))
		}
		if residual := Expand(Minus(AddOf(terms...), c)); !IsZero(residual) {
			return nil, nil, fmt.Errorf("%w: C[%d] = %s mixes input variables (residual %s)", ErrNonAffine, i, Expand(c), residual)
		}
		offset.data[i][0] = b
	}
	return A, offset, nil
}

// FindLinear is FindA restricted to strictly linear maps: any nonzero
// constant term is rejected with ErrNonzeroOffset.
func FindLinear(B, C *Matrix) (*Matrix, error) {
	A, offset, err := FindAffine(B, C)
	if err != nil {
		return nil, err
	}
	for i, b := range offset.Entries() {
		if !IsZero(b) {
			return nil, fmt.Errorf("%w: C[%d] has constant term %s", ErrNonzeroOffset, i, b)
		}
	}
	return A, nil
}

// variables validates B against C and returns B's symbol names in order.
func variables(B, C *Matrix) ([]string, error) {
	if B.Cols() != C.Cols() {
		return nil, fmt.Errorf("%w: B has %d columns, C has %d", ErrDimensionMismatch, B.Cols(), C.Cols())
	}
	entries := B.Entries()
	names := make([]string, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		s, ok := e.(*Sym)
		if !ok {
			return nil, fmt.Errorf("%w: B[%d] = %s", ErrNotVariable, i, e)
		}
		if seen[s.name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVariable, s.name)
		}
		seen[s.name] = true
		names[i] = s.name
	}
	return names, nil
}

// EmbedInIdentity returns a new n×n identity matrix whose top-left block is
// replaced by A.
func EmbedInIdentity(A *Matrix, n int) (*Matrix, error) {
	if n < 0 || A.Rows() > n || A.Cols() > n {
		return nil, fmt.Errorf("%w: cannot embed %dx%d in %dx%d", ErrTargetTooSmall, A.Rows(), A.Cols(), n, n)
	}
	M := Identity(n)
	if err := M.SetBlock(0, 0, A); err != nil {
		return nil, err
	}
	return M, nil
}
