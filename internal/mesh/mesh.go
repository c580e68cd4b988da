package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/icexin/voxelcore/internal/coord"
)

// Face records one emitted quad.
type Face struct {
	Block   coord.BlockPosition
	Face    coord.Face
	Texture uint32
}

// Mesh is the render-ready geometry of one chunk in world space. Every face
// contributes four vertices and six indices.
type Mesh struct {
	Position coord.ChunkPosition
	Version  int64

	Faces     []Face
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Empty meshes are valid and draw nothing.
func (m *Mesh) Empty() bool {
	return len(m.Faces) == 0
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}
