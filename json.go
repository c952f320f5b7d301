package xformgen

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"unicode"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ExprJSON returns the generic JSON tree of e.
func ExprJSON(e Expr) map[string]interface{} { return e.toJSON() }

func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (Expr, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return e, nil
	}

	subObjArray := func(field string) ([]Expr, error) {
		raw, ok := data[field].([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		s, ok := data[field].(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		r := new(big.Rat)
		if _, ok := r.SetString(val); !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return &Num{val: r}, nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if !isIdentifier(name) {
			return nil, fmt.Errorf("sym: invalid name %q", name)
		}
		return S(name), nil

	case "add":
		terms, err := subObjArray("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subObjArray("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		base, err := subObj("base")
		if err != nil {
			return nil, err
		}
		exp, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if !knownFuncs[name] {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		arg, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		return funcOf(name, arg).Simplify(), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

// isIdentifier reports whether name is a letter or underscore followed by
// letters, digits or underscores, so that it cannot print like a compound
// expression.
func isIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return name != ""
}

// ============================================================
// Matrix JSON: {"rows": r, "cols": c, "entries": [expr, ...]}
// ============================================================

// MatrixJSON is the wire form of a matrix, entries in row-major order.
type MatrixJSON struct {
	Name    string                   `json:"name,omitempty"`
	Rows    int                      `json:"rows"`
	Cols    int                      `json:"cols"`
	Entries []map[string]interface{} `json:"entries"`
	String  string                   `json:"string,omitempty"`
}

func (m *Matrix) ToJSON() MatrixJSON {
	entries := make([]map[string]interface{}, 0, m.rows*m.cols)
	for _, e := range m.Entries() {
		entries = append(entries, e.toJSON())
	}
	return MatrixJSON{Rows: m.rows, Cols: m.cols, Entries: entries, String: m.String()}
}

// matrixDim checks a decoded dimension before anything is allocated for it.
func matrixDim(field string, v float64) (int, error) {
	if v != math.Trunc(v) || v < 1 || v > maxToolSize {
		return 0, fmt.Errorf("matrix.%s must be an integer in [1, %d], got %v", field, maxToolSize, v)
	}
	return int(v), nil
}

// MatrixFromJSON decodes the generic form produced by encoding/json.
func MatrixFromJSON(raw map[string]interface{}) (*Matrix, error) {
	rowsF, ok := raw["rows"].(float64)
	if !ok {
		return nil, fmt.Errorf("matrix.rows must be a number")
	}
	colsF, ok := raw["cols"].(float64)
	if !ok {
		return nil, fmt.Errorf("matrix.cols must be a number")
	}
	rows, err := matrixDim("rows", rowsF)
	if err != nil {
		return nil, err
	}
	cols, err := matrixDim("cols", colsF)
	if err != nil {
		return nil, err
	}
	entriesRaw, ok := raw["entries"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("matrix.entries must be an array")
	}
	if len(entriesRaw) != rows*cols {
		return nil, fmt.Errorf("matrix entries count mismatch: want %d, got %d", rows*cols, len(entriesRaw))
	}
	entries := make([]Expr, rows*cols)
	for i, er := range entriesRaw {
		m, ok := er.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("matrix entry %d must be expression", i)
		}
		e, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("matrix entry %d: %w", i, err)
		}
		entries[i] = e
	}
	return MatrixFromSlice(rows, cols, entries), nil
}
