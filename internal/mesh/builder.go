package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/chunk"
	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/logger"
)

// MissingPolicy decides how a face bordering an unloaded chunk is treated.
type MissingPolicy int

const (
	// MissingTransparent draws faces that border unloaded chunks.
	MissingTransparent MissingPolicy = iota
	// MissingOpaque culls them.
	MissingOpaque
)

func (p MissingPolicy) String() string {
	switch p {
	case MissingTransparent:
		return "transparent"
	case MissingOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("MissingPolicy(%d)", int(p))
	}
}

func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "", "transparent":
		return MissingTransparent, nil
	case "opaque":
		return MissingOpaque, nil
	}
	return 0, fmt.Errorf("mesh: unknown missing neighbor policy %q", s)
}

// NeighborLookup resolves loaded chunks by position.
type NeighborLookup interface {
	Chunk(pos coord.ChunkPosition) (*chunk.Chunk, bool)
}

const DefaultAtlasResolution = 16

type Builder struct {
	Catalogue       *block.Catalogue
	AtlasResolution uint32
	Missing         MissingPolicy
}

func NewBuilder(cat *block.Catalogue) *Builder {
	return &Builder{
		Catalogue:       cat,
		AtlasResolution: DefaultAtlasResolution,
	}
}

// Build extracts the visible cube faces of c. Faces on the chunk border
// consult the neighbor chunk through nb, which may be nil.
func (b *Builder) Build(c *chunk.Chunk, nb NeighborLookup) *Mesh {
	r := b.AtlasResolution
	if r == 0 {
		r = DefaultAtlasResolution
	}
	m := &Mesh{Position: c.Position}
	c.Data.Iterate(func(l coord.Local, blk block.Block) bool {
		look, ok := b.Catalogue.Look(blk.Type).(block.LookCube)
		if !ok {
			return true
		}
		pos := c.Position.Add(l.Vector())
		for _, f := range coord.Faces {
			if b.covered(c, l, f, nb) {
				continue
			}
			m.appendFace(pos, f, look.Textures.Get(SideOf(f)), r)
		}
		return true
	})
	logger.Log.Debug("chunk mesh built",
		zap.Stringer("chunk", c.Position),
		zap.Int("faces", m.FaceCount()))
	return m
}

// covered reports whether the cell next to l across face f hides that face.
func (b *Builder) covered(c *chunk.Chunk, l coord.Local, f coord.Face, nb NeighborLookup) bool {
	adj := l.Vector().Add(f.Normal())
	if nl, ok := coord.ToLocal(adj); ok {
		return b.Catalogue.IsOpaque(c.Data.At(nl).Type)
	}
	var (
		other *chunk.Chunk
		found bool
	)
	if nb != nil {
		other, found = nb.Chunk(c.Position.Neighbor(f))
	}
	if !found {
		return b.Missing == MissingOpaque
	}
	return b.Catalogue.IsOpaque(other.Data.At(c.Position.Add(adj).ChunkRelative()).Type)
}
