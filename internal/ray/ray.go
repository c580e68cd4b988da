package ray

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/geom"
)

var ErrDegenerateDirection = errors.New("ray: direction has no length")

// Ray is an origin with a unit length direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func New(origin, dir mgl32.Vec3) (Ray, error) {
	l := dir.Len()
	if l == 0 || math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
		return Ray{}, fmt.Errorf("%w: %v", ErrDegenerateDirection, dir)
	}
	return Ray{Origin: origin, Direction: dir.Mul(1 / l)}, nil
}

func (r *Ray) Translate(d mgl32.Vec3) {
	r.Origin = r.Origin.Add(d)
}

func (r Ray) Translated(d mgl32.Vec3) Ray {
	r.Translate(d)
	return r
}

// At returns the point at parameter t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// HitInfo is the parametric interval a ray spends inside a box and the
// outward normal of the face it leaves through. When the ray leaves through
// an edge or a corner, ExitStep sums the normals of every face it crosses at
// End and ExitNormal is the first of them in z, y, x order.
type HitInfo struct {
	Start, End float32
	ExitNormal coord.BlockVector
	ExitStep   coord.BlockVector
}

var inf = float32(math.Inf(1))

// slab returns the parametric interval of one axis and the traversal sign.
func slab(origin, dir, lo, hi float32) (float32, float32, int64) {
	startDist := lo - origin
	endDist := hi - origin
	if dir != 0 {
		if endDist*dir > startDist*dir {
			return startDist / dir, endDist / dir, 1
		}
		return endDist / dir, startDist / dir, -1
	}
	if startDist*endDist < 0 {
		return -inf, inf, 0
	}
	return inf, -inf, 0
}

// Intersect runs the slab test against box. There is a hit iff the entry
// parameter is below the exit parameter; hits behind the origin count.
func (r Ray) Intersect(box geom.AAQuader) (HitInfo, bool) {
	xs, xe, xo := slab(r.Origin.X(), r.Direction.X(), box.Lower.X(), box.Higher.X())
	ys, ye, yo := slab(r.Origin.Y(), r.Direction.Y(), box.Lower.Y(), box.Higher.Y())
	zs, ze, zo := slab(r.Origin.Z(), r.Direction.Z(), box.Lower.Z(), box.Higher.Z())

	start := max32(xs, max32(ys, zs))
	end := min32(xe, min32(ye, ze))
	if !(start < end) {
		return HitInfo{}, false
	}

	var n, step coord.BlockVector
	for _, a := range [3]struct {
		exit float32
		n    coord.BlockVector
	}{
		{ze, coord.Vec(0, 0, zo)},
		{ye, coord.Vec(0, yo, 0)},
		{xe, coord.Vec(xo, 0, 0)},
	} {
		if a.n.IsZero() || a.exit != end {
			continue
		}
		if n.IsZero() {
			n = a.n
		}
		step = step.Add(a.n)
	}
	return HitInfo{Start: start, End: end, ExitNormal: n, ExitStep: step}, true
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
