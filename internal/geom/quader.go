package geom

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrInvalidQuader = errors.New("geom: lower corner exceeds higher corner")

// AAQuader is an axis-aligned box. Lower <= Higher holds on every axis for
// boxes built through New; Unchecked trusts the caller.
type AAQuader struct {
	Lower, Higher mgl32.Vec3
}

func New(lower, higher mgl32.Vec3) (AAQuader, error) {
	for i := 0; i < 3; i++ {
		if lower[i] > higher[i] {
			return AAQuader{}, fmt.Errorf("%w: %v > %v", ErrInvalidQuader, lower, higher)
		}
	}
	return AAQuader{lower, higher}, nil
}

func Unchecked(lower, higher mgl32.Vec3) AAQuader {
	return AAQuader{lower, higher}
}

// CenterSize builds a box of the given extent around center.
func CenterSize(center, size mgl32.Vec3) AAQuader {
	half := size.Mul(0.5)
	return AAQuader{center.Sub(half), center.Add(half)}
}

// Unit is the box of a single block at the origin.
func Unit() AAQuader {
	return AAQuader{mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}}
}

func (q AAQuader) String() string {
	return fmt.Sprintf("[%v .. %v]", q.Lower, q.Higher)
}

func (q AAQuader) Size() mgl32.Vec3 {
	return q.Higher.Sub(q.Lower)
}

func (q AAQuader) Center() mgl32.Vec3 {
	return q.Lower.Add(q.Higher).Mul(0.5)
}

func (q AAQuader) Volume() float32 {
	s := q.Size()
	return s.X() * s.Y() * s.Z()
}

func (q *AAQuader) Translate(d mgl32.Vec3) {
	q.Lower = q.Lower.Add(d)
	q.Higher = q.Higher.Add(d)
}

func (q AAQuader) Translated(d mgl32.Vec3) AAQuader {
	q.Translate(d)
	return q
}

// Scale grows or shrinks the box around its center. The sign of f is
// ignored so the corners stay ordered.
func (q AAQuader) Scale(f float32) AAQuader {
	if f < 0 {
		f = -f
	}
	half := q.Size().Mul(0.5 * f)
	c := q.Center()
	return AAQuader{c.Sub(half), c.Add(half)}
}

// Intersects reports whether the interiors of the two boxes overlap.
func (q AAQuader) Intersects(o AAQuader) bool {
	for i := 0; i < 3; i++ {
		if q.Higher[i] <= o.Lower[i] || o.Higher[i] <= q.Lower[i] {
			return false
		}
	}
	return true
}

// ImpactVolume returns, per axis, the signed distance q has to be moved
// along that axis to stop overlapping o, choosing the shorter side. Axes
// without overlap yield 0.
func (q AAQuader) ImpactVolume(o AAQuader) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		out[i] = impact1(q.Lower[i], q.Higher[i], o.Lower[i], o.Higher[i])
	}
	return out
}

func impact1(lo, hi, olo, ohi float32) float32 {
	l2r := ohi - lo
	r2l := hi - olo
	if l2r <= 0 || r2l <= 0 {
		return 0
	}
	if l2r < r2l {
		return l2r
	}
	return -r2l
}
