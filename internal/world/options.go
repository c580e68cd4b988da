package world

import (
	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/mesh"
	"github.com/icexin/voxelcore/internal/metrics"
)

// Options configures a Manager. Radii are in chunk units and measured from
// chunk centers; keeping LoadRadius <= UnloadRadius is up to the operator.
type Options struct {
	LoadRadius      float32
	UnloadRadius    float32
	MissingNeighbor mesh.MissingPolicy
	AtlasResolution uint32

	Catalogue *block.Catalogue
	Sink      MeshSink
	Metrics   *metrics.Metrics
}

func DefaultOptions() Options {
	return Options{
		LoadRadius:      2,
		UnloadRadius:    4,
		AtlasResolution: mesh.DefaultAtlasResolution,
	}
}

// MeshSink receives rebuilt meshes, typically to upload them to a GPU.
type MeshSink interface {
	Upload(m *mesh.Mesh)
	Release(pos coord.ChunkPosition)
}

type discardSink struct{}

func (discardSink) Upload(*mesh.Mesh)           {}
func (discardSink) Release(coord.ChunkPosition) {}
