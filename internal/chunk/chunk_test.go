package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/coord"
)

func TestSetGet(t *testing.T) {
	d := NewData()
	assert.True(t, d.IsEmpty())

	v := coord.Vec(3, 15, 0)
	prev, ok := d.Set(v, block.Stone)
	require.True(t, ok)
	assert.Equal(t, block.Air, prev)

	got, ok := d.Get(v)
	require.True(t, ok)
	assert.Equal(t, block.Stone, got)
	assert.False(t, d.IsEmpty())

	prev, ok = d.Clear(v)
	require.True(t, ok)
	assert.Equal(t, block.Stone, prev)
	assert.True(t, d.IsEmpty())
}

func TestOutOfRange(t *testing.T) {
	d := Filled(block.Dirt)
	for _, v := range []coord.BlockVector{
		coord.Vec(16, 0, 0),
		coord.Vec(0, -1, 0),
		coord.Vec(0, 0, 1<<20),
	} {
		_, ok := d.Get(v)
		assert.False(t, ok, "get %v", v)
		_, ok = d.Set(v, block.Stone)
		assert.False(t, ok, "set %v", v)
	}
	assert.Equal(t, coord.ChunkVolume, d.Count(func(b block.Block) bool { return b == block.Dirt }))
}

func TestIterate(t *testing.T) {
	d := NewData()
	d.Set(coord.Vec(1, 2, 3), block.Grass)

	n := 0
	var found coord.BlockVector
	d.Iterate(func(l coord.Local, b block.Block) bool {
		assert.Equal(t, n, l.Index())
		if b == block.Grass {
			found = l.Vector()
		}
		n++
		return true
	})
	assert.Equal(t, coord.ChunkVolume, n)
	assert.Equal(t, coord.Vec(1, 2, 3), found)

	n = 0
	d.Iterate(func(coord.Local, block.Block) bool {
		n++
		return n < 10
	})
	assert.Equal(t, 10, n)
}

func TestClone(t *testing.T) {
	d := NewData()
	c := d.Clone()
	c.Set(coord.Vec(0, 0, 0), block.Wood)
	assert.True(t, d.IsEmpty())
	assert.False(t, c.IsEmpty())
}

func TestChunkBlock(t *testing.T) {
	c := New(coord.ChunkPosition{X: -1}, nil)
	c.Data.Set(coord.Vec(15, 0, 0), block.Log)

	b, ok := c.Block(coord.Pos(-1, 0, 0))
	require.True(t, ok)
	assert.Equal(t, block.Log, b)

	_, ok = c.Block(coord.Pos(0, 0, 0))
	assert.False(t, ok)
}
