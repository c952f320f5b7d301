package xformgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// Tool Interface
// ============================================================

// maxToolSize bounds matrix sizes requested over the tool interface.
const maxToolSize = 64

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func HandleToolCall(req ToolRequest) ToolResponse {
	getExpr := func(key string) (Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return FromJSON(val)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getMatrix := func(key string) (*Matrix, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be matrix object", key)
		}
		return MatrixFromJSON(raw)
	}
	getComplex := func(key string) (Complex, error) {
		v, ok := req.Params[key].(map[string]interface{})
		if !ok {
			return Complex{}, fmt.Errorf("param %s must be {re, im} object", key)
		}
		re, ok1 := v["re"].(map[string]interface{})
		im, ok2 := v["im"].(map[string]interface{})
		if !ok1 || !ok2 {
			return Complex{}, fmt.Errorf("param %s needs re and im expressions", key)
		}
		reE, err := FromJSON(re)
		if err != nil {
			return Complex{}, fmt.Errorf("%s.re: %w", key, err)
		}
		imE, err := FromJSON(im)
		if err != nil {
			return Complex{}, fmt.Errorf("%s.im: %w", key, err)
		}
		return NewComplex(reE, imE), nil
	}
	respond := func(e Expr) ToolResponse {
		return ToolResponse{Result: e.toJSON(), LaTeX: LaTeX(e), String: String(e)}
	}
	respondMatrix := func(mat *Matrix) ToolResponse {
		return ToolResponse{Result: mat.ToJSON(), LaTeX: mat.LaTeX(), String: mat.String()}
	}
	fail := func(err error) ToolResponse { return ToolResponse{Error: err.Error()} }

	switch req.Tool {
	case "expand":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(Expand(e))

	case "diff":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		return respond(Diff(e, v))

	case "substitute":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		v, err := getString("var")
		if err != nil {
			return fail(err)
		}
		val, err := getExpr("value")
		if err != nil {
			return fail(err)
		}
		return respond(Sub(e, v, val))

	case "trig_simplify":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(TrigSimplify(e))

	case "trig_expand":
		e, err := getExpr("expr")
		if err != nil {
			return fail(err)
		}
		return respond(TrigExpand(e))

	case "complex_mul":
		a, err := getComplex("a")
		if err != nil {
			return fail(err)
		}
		b, err := getComplex("b")
		if err != nil {
			return fail(err)
		}
		p := a.Mul(b)
		return ToolResponse{
			Result: map[string]interface{}{"re": p.Re.toJSON(), "im": p.Im.toJSON()},
			String: p.String(),
			LaTeX:  p.Matrix().LaTeX(),
		}

	case "find_a":
		b, err := getMatrix("b")
		if err != nil {
			return fail(err)
		}
		c, err := getMatrix("c")
		if err != nil {
			return fail(err)
		}
		a, err := FindA(b, c)
		if err != nil {
			return fail(err)
		}
		return respondMatrix(a)

	case "find_affine":
		b, err := getMatrix("b")
		if err != nil {
			return fail(err)
		}
		c, err := getMatrix("c")
		if err != nil {
			return fail(err)
		}
		a, offset, err := FindAffine(b, c)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			Result: map[string]interface{}{"a": a.ToJSON(), "offset": offset.ToJSON()},
			String: a.String() + " + " + offset.String(),
			LaTeX:  a.LaTeX() + " + " + offset.LaTeX(),
		}

	case "embed_identity":
		a, err := getMatrix("matrix")
		if err != nil {
			return fail(err)
		}
		nF, ok := req.Params["n"].(float64)
		if !ok {
			return ToolResponse{Error: "param n must be a number"}
		}
		if nF > maxToolSize {
			return ToolResponse{Error: fmt.Sprintf("param n must be <= %d", maxToolSize)}
		}
		m, err := EmbedInIdentity(a, int(nF))
		if err != nil {
			return fail(err)
		}
		return respondMatrix(m)

	case "matrix_mul":
		m1, err := getMatrix("a")
		if err != nil {
			return fail(err)
		}
		m2, err := getMatrix("b")
		if err != nil {
			return fail(err)
		}
		p, err := m1.MatMul(m2)
		if err != nil {
			return fail(err)
		}
		return respondMatrix(p)

	case "build_transforms":
		p := DefaultParams()
		for key, dst := range map[string]*string{
			"px": &p.PosX, "py": &p.PosY, "sx": &p.ScaleX, "sy": &p.ScaleY,
			"rot": &p.Rot, "w": &p.Width, "h": &p.Height, "ax": &p.AxisX, "ay": &p.AxisY,
		} {
			if _, ok := req.Params[key]; !ok {
				continue
			}
			s, err := getString(key)
			if err != nil {
				return fail(err)
			}
			if !isIdentifier(s) {
				return ToolResponse{Error: fmt.Sprintf("param %s: invalid symbol name %q", key, s)}
			}
			*dst = s
		}
		if nF, ok := req.Params["size"].(float64); ok {
			if nF > maxToolSize {
				return ToolResponse{Error: fmt.Sprintf("param size must be <= %d", maxToolSize)}
			}
			p.Size = int(nF)
		}
		tr, err := BuildTransforms(p)
		if err != nil {
			return fail(err)
		}
		named := tr.Named()
		out := make([]MatrixJSON, len(named))
		strs := make([]string, len(named))
		for i, nm := range named {
			out[i] = nm.Matrix.ToJSON()
			out[i].Name = nm.Name
			strs[i] = nm.Name + " = " + nm.Matrix.String()
		}
		return ToolResponse{Result: out, String: strings.Join(strs, "\n")}

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool for agent registration.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("expand", "Algebraically expand expression", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("diff", "First derivative d/dvar", []string{"expr", "var"}, map[string]string{"expr": "object", "var": "string"}),
		ts("substitute", "Substitute var with value", []string{"expr", "var", "value"}, map[string]string{"expr": "object", "var": "string", "value": "object"}),
		ts("trig_simplify", "Apply sin²+cos²=1", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("trig_expand", "Expand sin/cos of sums and integer multiples", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("complex_mul", "Multiply pairs {re, im} as complex numbers", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
		ts("find_a", "Coefficient matrix A with C = A*B. b, c = {rows,cols,entries}", []string{"b", "c"}, map[string]string{"b": "object", "c": "object"}),
		ts("find_affine", "A and offset with C = A*B + offset", []string{"b", "c"}, map[string]string{"b": "object", "c": "object"}),
		ts("embed_identity", "Place matrix in the top-left of an n×n identity", []string{"matrix", "n"}, map[string]string{"matrix": "object", "n": "integer"}),
		ts("matrix_mul", "Matrix multiply a*b", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
		ts("build_transforms", "Derive modelmat, viewmat, projmat. Optional symbol names and size", []string{},
			map[string]string{"px": "string", "py": "string", "sx": "string", "sy": "string", "rot": "string", "w": "string", "h": "string", "ax": "string", "ay": "string", "size": "integer"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
