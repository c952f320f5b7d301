package xformgen

import "fmt"

// Params names the symbols of the generated transforms.
type Params struct {
	PosX, PosY     string // translation
	ScaleX, ScaleY string // scale
	Rot            string // rotation angle
	Width, Height  string // viewport size used by the projection
	AxisX, AxisY   string // rotation basis, eliminated by FindA
	Size           int    // homogeneous matrix size, at least 3
}

// DefaultParams returns the symbol names used by the renderer shaders.
func DefaultParams() Params {
	return Params{
		PosX: "px", PosY: "py",
		ScaleX: "sx", ScaleY: "sy",
		Rot:   "rot",
		Width: "w", Height: "h",
		AxisX: "ax", AxisY: "ay",
		Size: 4,
	}
}

// Transforms holds the derived matrices.
type Transforms struct {
	Scale      *Matrix // scamat
	Position   *Matrix // posmat
	Rotation   *Matrix // rotmat
	Projection *Matrix // projmat
	Model      *Matrix // posmat * rotmat * scamat
	View       *Matrix // scamat * rotmat * posmat
}

// NamedMatrix pairs a matrix with the label it is printed under.
type NamedMatrix struct {
	Name   string
	Matrix *Matrix
}

// Named returns the printed set: modelmat, viewmat, projmat.
func (t *Transforms) Named() []NamedMatrix {
	return []NamedMatrix{
		{Name: "modelmat", Matrix: t.Model},
		{Name: "viewmat", Matrix: t.View},
		{Name: "projmat", Matrix: t.Projection},
	}
}

// All returns the building blocks followed by the printed set.
func (t *Transforms) All() []NamedMatrix {
	return append([]NamedMatrix{
		{Name: "scamat", Matrix: t.Scale},
		{Name: "posmat", Matrix: t.Position},
		{Name: "rotmat", Matrix: t.Rotation},
	}, t.Named()...)
}

// RotationBlock derives the 2x2 rotation by angle rot from the complex
// product (ax + i*ay)(cos rot + i*sin rot).
func RotationBlock(axisX, axisY, rot string) (*Matrix, error) {
	ax, ay := S(axisX), S(axisY)
	angle := S(rot)
	C := NewComplex(ax, ay).Mul(NewComplex(CosOf(angle), SinOf(angle))).Matrix()
	B := Column(ax, ay)
	return FindA(B, C)
}

// BuildTransforms derives every matrix for p. It performs no output.
func BuildTransforms(p Params) (*Transforms, error) {
	if p.Size < 3 {
		return nil, fmt.Errorf("%w: homogeneous size %d, need at least 3", ErrTargetTooSmall, p.Size)
	}
	n := p.Size
	ones := func(head ...Expr) []Expr {
		out := append([]Expr{}, head...)
		for len(out) < n {
			out = append(out, N(1))
		}
		return out
	}

	scale := Diagonal(ones(S(p.ScaleX), S(p.ScaleY))...)
	pos := Identity(n)
	pos.Set(0, n-1, S(p.PosX))
	pos.Set(1, n-1, S(p.PosY))
	proj := Diagonal(ones(Inv(S(p.Width)), Inv(S(p.Height)))...)

	A, err := RotationBlock(p.AxisX, p.AxisY, p.Rot)
	if err != nil {
		return nil, fmt.Errorf("rotation: %w", err)
	}
	rot, err := EmbedInIdentity(A, n)
	if err != nil {
		return nil, fmt.Errorf("rotation: %w", err)
	}

	model, err := MatMulChain(pos, rot, scale)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	view, err := MatMulChain(scale, rot, pos)
	if err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	return &Transforms{
		Scale:      scale,
		Position:   pos,
		Rotation:   rot,
		Projection: proj,
		Model:      model,
		View:       view,
	}, nil
}
