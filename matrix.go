package xformgen

import (
	"fmt"
	"strings"
)

// ============================================================
// Matrix: symbolic matrix
// ============================================================

// Matrix is a dense grid of expressions. Operations return new matrices;
// only Set and SetBlock mutate the receiver.
type Matrix struct {
	rows, cols int
	data       [][]Expr
}

func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("xformgen: negative matrix shape %dx%d", rows, cols))
	}
	data := make([][]Expr, rows)
	for i := range data {
		data[i] = make([]Expr, cols)
		for j := range data[i] {
			data[i][j] = N(0)
		}
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// Zeros is an alias of NewMatrix that reads better at call sites.
func Zeros(rows, cols int) *Matrix { return NewMatrix(rows, cols) }

func MatrixFromSlice(rows, cols int, entries []Expr) *Matrix {
	if len(entries) != rows*cols {
		panic(fmt.Sprintf("xformgen: MatrixFromSlice needs %d entries, got %d", rows*cols, len(entries)))
	}
	m := NewMatrix(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.data[i][j] = entries[i*cols+j].Simplify()
		}
	}
	return m
}

// MatrixFromRows builds a matrix from row literals. All rows must have the
// same length.
func MatrixFromRows(rows ...[]Expr) *Matrix {
	if len(rows) == 0 {
		return NewMatrix(0, 0)
	}
	cols := len(rows[0])
	entries := make([]Expr, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			panic(fmt.Sprintf("xformgen: MatrixFromRows row %d has %d entries, want %d", i, len(r), cols))
		}
		entries = append(entries, r...)
	}
	return MatrixFromSlice(len(rows), cols, entries)
}

// Column builds an n×1 column vector.
func Column(entries ...Expr) *Matrix { return MatrixFromSlice(len(entries), 1, entries) }

// Diagonal builds a square matrix with the given diagonal.
func Diagonal(entries ...Expr) *Matrix {
	m := NewMatrix(len(entries), len(entries))
	for i, e := range entries {
		m.data[i][i] = e.Simplify()
	}
	return m
}

func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i][i] = N(1)
	}
	return m
}

func (m *Matrix) checkBounds(row, col int) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("xformgen: matrix index out of range [%d,%d] for %dx%d", row, col, m.rows, m.cols))
	}
}

func (m *Matrix) Get(row, col int) Expr {
	m.checkBounds(row, col)
	return m.data[row][col]
}
func (m *Matrix) Set(row, col int, val Expr) {
	m.checkBounds(row, col)
	m.data[row][col] = val
}
func (m *Matrix) Rows() int          { return m.rows }
func (m *Matrix) Cols() int          { return m.cols }
func (m *Matrix) Shape() (int, int) { return m.rows, m.cols }

// Entries returns the entries in row-major order.
func (m *Matrix) Entries() []Expr {
	out := make([]Expr, 0, m.rows*m.cols)
	for i := 0; i < m.rows; i++ {
		out = append(out, m.data[i]...)
	}
	return out
}

func (m *Matrix) Clone() *Matrix {
	result := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		copy(result.data[i], m.data[i])
	}
	return result
}

// SetBlock overwrites the block starting at (row, col) with src.
func (m *Matrix) SetBlock(row, col int, src *Matrix) error {
	if row < 0 || col < 0 || row+src.rows > m.rows || col+src.cols > m.cols {
		return fmt.Errorf("%w: %dx%d block at [%d,%d] does not fit %dx%d",
			ErrDimensionMismatch, src.rows, src.cols, row, col, m.rows, m.cols)
	}
	for i := 0; i < src.rows; i++ {
		copy(m.data[row+i][col:col+src.cols], src.data[i])
	}
	return nil
}

// String is the single-line form, e.g. Matrix([[1, 0], [0, 1]]).
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.WriteString("Matrix([")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.data[i][j].String())
		}
		sb.WriteString("]")
	}
	sb.WriteString("])")
	return sb.String()
}

func (m *Matrix) LaTeX() string {
	var sb strings.Builder
	sb.WriteString("\\begin{pmatrix}")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			sb.WriteString(" \\\\ ")
		}
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(" & ")
			}
			sb.WriteString(m.data[i][j].LaTeX())
		}
	}
	sb.WriteString("\\end{pmatrix}")
	return sb.String()
}

func (m *Matrix) MatSub(other *Matrix) (*Matrix, error) {
	if m.rows != other.rows || m.cols != other.cols {
		return nil, fmt.Errorf("%w: MatSub %dx%d - %dx%d", ErrDimensionMismatch, m.rows, m.cols, other.rows, other.cols)
	}
	result := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = Minus(m.data[i][j], other.data[i][j])
		}
	}
	return result, nil
}

// MatMul returns m*other with every entry expanded.
func (m *Matrix) MatMul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, fmt.Errorf("%w: MatMul %dx%d * %dx%d", ErrDimensionMismatch, m.rows, m.cols, other.rows, other.cols)
	}
	result := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			terms := make([]Expr, m.cols)
			for k := 0; k < m.cols; k++ {
				terms[k] = MulOf(m.data[i][k], other.data[k][j])
			}
			result.data[i][j] = Expand(AddOf(terms...))
		}
	}
	return result, nil
}

// MatMulChain multiplies left to right: MatMulChain(a, b, c) = a*b*c.
func MatMulChain(ms ...*Matrix) (*Matrix, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w: empty product", ErrDimensionMismatch)
	}
	result := ms[0]
	for _, m := range ms[1:] {
		var err error
		if result, err = result.MatMul(m); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (m *Matrix) Transpose() *Matrix {
	result := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[j][i] = m.data[i][j]
		}
	}
	return result
}

func (m *Matrix) apply(fn func(Expr) Expr) *Matrix {
	result := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[i][j] = fn(m.data[i][j])
		}
	}
	return result
}

func (m *Matrix) ApplySub(varName string, value Expr) *Matrix {
	return m.apply(func(e Expr) Expr { return Sub(e, varName, value) })
}

func (m *Matrix) ApplyDiff(varName string) *Matrix {
	return m.apply(func(e Expr) Expr { return Diff(e, varName) })
}

func (m *Matrix) Expand() *Matrix { return m.apply(Expand) }

func (m *Matrix) TrigSimplify() *Matrix { return m.apply(TrigSimplify) }

// Equal reports whether both matrices have the same shape and every pair of
// entries is algebraically equal (see EqualExpr).
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if !EqualExpr(m.data[i][j], other.data[i][j]) {
				return false
			}
		}
	}
	return true
}
