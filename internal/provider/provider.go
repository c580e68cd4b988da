package provider

import (
	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/chunk"
	"github.com/icexin/voxelcore/internal/coord"
)

// BlockUpdate is a single block edit travelling between the world and its
// provider.
type BlockUpdate struct {
	Position coord.BlockPosition
	Block    block.Block
}

func (u BlockUpdate) Chunk() coord.ChunkPosition {
	return u.Position.Chunk()
}

// Provider supplies chunk contents and exchanges block edits with whatever
// owns the world (a local generator, a save file or a server).
type Provider interface {
	// LoadChunk returns storage owned by the caller from now on.
	LoadChunk(pos coord.ChunkPosition) *chunk.Data
	// PollUpdate returns the next edit made elsewhere, if any.
	PollUpdate() (BlockUpdate, bool)
	// ApplyUpdate publishes a local edit.
	ApplyUpdate(u BlockUpdate)
}
