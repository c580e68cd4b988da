package ray

import (
	"fmt"

	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/geom"
)

// GridSnap walks the blocks a ray passes through, in order. It never ends;
// callers stop it by distance or by what they find.
type GridSnap struct {
	ray     Ray
	start   coord.BlockPosition
	current coord.BlockPosition
	// face steps still owed from a ray leaving through an edge or corner
	queued []coord.BlockVector
}

// GridSnap starts at the block containing the origin. The ray used for
// stepping is shifted by half its direction so an origin lying exactly on a
// block boundary does not produce an empty first interval.
func (r Ray) GridSnap() *GridSnap {
	start := coord.BlockPositionFromVec(r.Origin)
	return &GridSnap{
		ray:     r.Translated(r.Direction.Mul(0.5)),
		start:   start,
		current: start,
	}
}

// Next returns the current block and advances to the following one. A ray
// leaving through an edge or a corner crosses the tied faces one at a time,
// so consecutive blocks always share a face. A ray that misses the block it
// is in, or leaves it through no face, is a broken invariant and panics.
func (g *GridSnap) Next() coord.BlockPosition {
	cur := g.current
	if len(g.queued) > 0 {
		g.current = cur.Add(g.queued[0])
		g.queued = g.queued[1:]
		return cur
	}
	box := geom.Unchecked(cur.LowerCorner(), cur.HigherCorner())
	hit, ok := g.ray.Intersect(box)
	if !ok {
		panic(fmt.Sprintf("ray: grid traversal lost the ray at %v", cur))
	}
	if hit.ExitNormal.IsZero() {
		panic(fmt.Sprintf("ray: zero exit normal at %v", cur))
	}
	g.current = cur.Add(hit.ExitNormal)
	rest := hit.ExitStep.Sub(hit.ExitNormal)
	for _, v := range [3]coord.BlockVector{
		coord.Vec(0, 0, rest.Z),
		coord.Vec(0, rest.Y, 0),
		coord.Vec(rest.X, 0, 0),
	} {
		if !v.IsZero() {
			g.queued = append(g.queued, v)
		}
	}
	return cur
}

// Reset restarts the walk at the origin block.
func (g *GridSnap) Reset() {
	g.current = g.start
	g.queued = g.queued[:0]
}
