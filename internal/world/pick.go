package world

import (
	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/geom"
	"github.com/icexin/voxelcore/internal/ray"
)

// PickResult is the first solid block hit by a ray. Prev is the cell the ray
// was in just before, where a new block would be placed.
type PickResult struct {
	Position coord.BlockPosition
	Block    block.Block
	Prev     coord.BlockPosition
	HasPrev  bool
	Distance float32
}

// Face returns the face of the hit block the ray entered through.
func (p PickResult) Face() (coord.Face, bool) {
	if !p.HasPrev {
		return 0, false
	}
	return coord.FaceOf(p.Prev.Sub(p.Position))
}

// Pick walks r through the grid until it finds a non-air block or gets
// farther than maxDistance. Unloaded cells count as empty, and so do cells
// the ray only grazes along an edge or a corner.
func (m *Manager) Pick(r ray.Ray, maxDistance float32) (PickResult, bool) {
	g := r.GridSnap()
	var (
		prev    coord.BlockPosition
		hasPrev bool
	)
	for {
		pos := g.Next()
		hit, ok := r.Intersect(geom.Unchecked(pos.LowerCorner(), pos.HigherCorner()))
		if !ok {
			prev, hasPrev = pos, true
			continue
		}
		if hit.Start > maxDistance {
			return PickResult{}, false
		}
		if b, loaded := m.Block(pos); loaded && !b.IsAir() {
			dist := hit.Start
			if dist < 0 {
				dist = 0
			}
			return PickResult{
				Position: pos,
				Block:    b,
				Prev:     prev,
				HasPrev:  hasPrev,
				Distance: dist,
			}, true
		}
		prev, hasPrev = pos, true
	}
}
