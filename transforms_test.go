package xformgen_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/njchilds90/xformgen"
)

// ============================================================
// BuildTransforms tests
// ============================================================

func TestBuildTransforms_Model(t *testing.T) {
	tr, err := xformgen.BuildTransforms(xformgen.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Matrix([[sx*cos(rot), -sy*sin(rot), 0, px], [sx*sin(rot), sy*cos(rot), 0, py], [0, 0, 1, 0], [0, 0, 0, 1]])"
	if got := tr.Model.String(); got != want {
		t.Errorf("modelmat:\nwant %s\ngot  %s", want, got)
	}
}

func TestBuildTransforms_View(t *testing.T) {
	tr, err := xformgen.BuildTransforms(xformgen.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	px, py, sx, sy := xformgen.S("px"), xformgen.S("py"), xformgen.S("sx"), xformgen.S("sy")
	c, s := xformgen.CosOf(xformgen.S("rot")), xformgen.SinOf(xformgen.S("rot"))
	zero, one := xformgen.N(0), xformgen.N(1)
	want := xformgen.MatrixFromRows(
		[]xformgen.Expr{xformgen.MulOf(sx, c), xformgen.Neg(xformgen.MulOf(sx, s)), zero,
			xformgen.MulOf(sx, xformgen.Minus(xformgen.MulOf(px, c), xformgen.MulOf(py, s)))},
		[]xformgen.Expr{xformgen.MulOf(sy, s), xformgen.MulOf(sy, c), zero,
			xformgen.MulOf(sy, xformgen.AddOf(xformgen.MulOf(px, s), xformgen.MulOf(py, c)))},
		[]xformgen.Expr{zero, zero, one, zero},
		[]xformgen.Expr{zero, zero, zero, one},
	)
	if !tr.View.Equal(want) {
		t.Errorf("viewmat:\nwant %s\ngot  %s", want, tr.View)
	}
}

func TestBuildTransforms_Projection(t *testing.T) {
	tr, err := xformgen.BuildTransforms(xformgen.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Matrix([[1/w, 0, 0, 0], [0, 1/h, 0, 0], [0, 0, 1, 0], [0, 0, 0, 1]])"
	if got := tr.Projection.String(); got != want {
		t.Errorf("projmat: want %s, got %s", want, got)
	}
}

func TestBuildTransforms_Size3(t *testing.T) {
	p := xformgen.DefaultParams()
	p.Size = 3
	tr, err := xformgen.BuildTransforms(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, nm := range tr.All() {
		if r, c := nm.Matrix.Shape(); r != 3 || c != 3 {
			t.Errorf("%s: want 3x3, got %dx%d", nm.Name, r, c)
		}
	}
	if got := tr.Model.Get(0, 2).String(); got != "px" {
		t.Errorf("translation column: want px, got %s", got)
	}
}

func TestBuildTransforms_TooSmall(t *testing.T) {
	p := xformgen.DefaultParams()
	p.Size = 2
	if _, err := xformgen.BuildTransforms(p); !errors.Is(err, xformgen.ErrTargetTooSmall) {
		t.Errorf("want ErrTargetTooSmall, got %v", err)
	}
}

func TestBuildTransforms_Names(t *testing.T) {
	tr, err := xformgen.BuildTransforms(xformgen.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var names []string
	for _, nm := range tr.All() {
		names = append(names, nm.Name)
	}
	want := "scamat posmat rotmat modelmat viewmat projmat"
	if got := strings.Join(names, " "); got != want {
		t.Errorf("want %s, got %s", want, got)
	}
	if len(tr.Named()) != 3 {
		t.Errorf("Named should return 3 matrices, got %d", len(tr.Named()))
	}
}

// ============================================================
// Pretty / Report tests
// ============================================================

func TestPretty_Block(t *testing.T) {
	m := xformgen.MatrixFromRows(
		[]xformgen.Expr{xformgen.S("a"), xformgen.S("b")},
		[]xformgen.Expr{xformgen.S("c"), xformgen.S("dd")},
	)
	want := "⎡a  b ⎤\n⎢     ⎥\n⎣c  dd⎦"
	if got := xformgen.Pretty(m); got != want {
		t.Errorf("want\n%s\ngot\n%s", want, got)
	}
}

func TestPretty_SingleRow(t *testing.T) {
	m := xformgen.MatrixFromRows([]xformgen.Expr{xformgen.S("x"), xformgen.S("y")})
	if got := xformgen.Pretty(m); got != "[x  y]" {
		t.Errorf("want [x  y], got %s", got)
	}
}

func TestPretty_WideRunes(t *testing.T) {
	m := xformgen.Column(xformgen.S("角"), xformgen.S("ab"))
	want := "⎡角⎤\n⎢  ⎥\n⎣ab⎦"
	if got := xformgen.Pretty(m); got != want {
		t.Errorf("want\n%s\ngot\n%s", want, got)
	}
}

func TestReport_Text(t *testing.T) {
	var buf bytes.Buffer
	err := xformgen.Report(&buf, []xformgen.NamedMatrix{{Name: "m", Matrix: xformgen.Identity(2)}}, xformgen.FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "m\nMatrix([[1, 0], [0, 1]])\n⎡1  0⎤\n⎢    ⎥\n⎣0  1⎦\n\n"
	if buf.String() != want {
		t.Errorf("want\n%q\ngot\n%q", want, buf.String())
	}
}

func TestReport_LaTeX(t *testing.T) {
	var buf bytes.Buffer
	err := xformgen.Report(&buf, []xformgen.NamedMatrix{{Name: "m", Matrix: xformgen.Identity(2)}}, xformgen.FormatLaTeX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "m\n") || !strings.Contains(buf.String(), `\begin{pmatrix}`) {
		t.Errorf("unexpected LaTeX report: %q", buf.String())
	}
}

func TestReport_JSON(t *testing.T) {
	tr, err := xformgen.BuildTransforms(xformgen.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := xformgen.Report(&buf, tr.Named(), xformgen.FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("want 3 matrices, got %d", len(out))
	}
	if out[2]["name"] != "projmat" {
		t.Errorf("want projmat last, got %v", out[2]["name"])
	}
	m, err := xformgen.MatrixFromJSON(out[0])
	if err != nil {
		t.Fatalf("MatrixFromJSON: %v", err)
	}
	if !m.Equal(tr.Model) {
		t.Errorf("decoded modelmat differs: %s", m)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "text", "latex", "json"} {
		if _, err := xformgen.ParseFormat(s); err != nil {
			t.Errorf("%q: unexpected error %v", s, err)
		}
	}
	if _, err := xformgen.ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}
