package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/coord"
)

// faceGeometry places a quad on one side of the unit cube. The quad spans
// start, start+ax1, start+ax2 and start+ax1+ax2.
type faceGeometry struct {
	high     bool // start at the higher corner
	ax1, ax2 mgl32.Vec3
	side     block.Side
}

var cubeFaces = [6]faceGeometry{
	coord.FacePosX: {true, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}, block.Right},
	coord.FacePosY: {true, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, -1}, block.Top},
	coord.FacePosZ: {true, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{-1, 0, 0}, block.Front},
	coord.FaceNegX: {false, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, block.Left},
	coord.FaceNegY: {false, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, block.Bottom},
	coord.FaceNegZ: {false, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, block.Back},
}

// SideOf maps a cube face to the texture side drawn on it.
func SideOf(f coord.Face) block.Side {
	return cubeFaces[f].side
}

// atlasOrigin returns the lower uv corner of texture i in an r x r atlas.
func atlasOrigin(i uint32, r uint32) mgl32.Vec2 {
	fr := float32(r)
	return mgl32.Vec2{float32(i%r) / fr, float32(i/r) / fr}
}

func (m *Mesh) appendFace(pos coord.BlockPosition, f coord.Face, tex uint32, r uint32) {
	g := cubeFaces[f]
	start := pos.LowerCorner()
	if g.high {
		start = pos.HigherCorner()
	}
	normal := f.Normal().Vec3()
	span := 1 / float32(r)
	uv0 := atlasOrigin(tex, r)
	uv1 := mgl32.Vec2{span, 0}
	uv2 := mgl32.Vec2{0, span}

	next := uint32(len(m.Positions))
	m.Positions = append(m.Positions,
		start,
		start.Add(g.ax1),
		start.Add(g.ax2),
		start.Add(g.ax1).Add(g.ax2),
	)
	m.Normals = append(m.Normals, normal, normal, normal, normal)
	m.UVs = append(m.UVs,
		uv0,
		uv0.Add(uv1),
		uv0.Add(uv2),
		uv0.Add(uv1).Add(uv2),
	)
	m.Indices = append(m.Indices,
		next, next+2, next+1,
		next+1, next+2, next+3,
	)
	m.Faces = append(m.Faces, Face{Block: pos, Face: f, Texture: tex})
}
