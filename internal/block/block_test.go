package block

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockEquality(t *testing.T) {
	assert.Equal(t, Grass, New(TypeGrass))
	assert.NotEqual(t, Grass, Block{Type: TypeGrass, Info: Powered})
	assert.True(t, Air.IsAir())
	assert.False(t, Stone.IsAir())
}

func TestInfo(t *testing.T) {
	i := Powered | BlockMesh
	assert.True(t, i.Has(Powered))
	assert.True(t, i.Has(Powered|BlockMesh))
	assert.False(t, Powered.Has(Powered|BlockMesh))
	assert.True(t, Powered.HasAny(Powered|BlockMesh))
	assert.Equal(t, "powered|blockmesh", i.String())
	assert.Equal(t, "-", Info(0).String())
}

func TestDefaultCatalogue(t *testing.T) {
	c := DefaultCatalogue()
	require.Equal(t, 6, c.Len())

	assert.False(t, c.IsOpaque(TypeAir))
	assert.True(t, c.IsOpaque(TypeStone))
	assert.False(t, c.IsOpaque(999))

	grass, ok := c.Look(TypeGrass).(LookCube)
	require.True(t, ok)
	assert.Equal(t, uint32(0), grass.Textures.Get(Top))
	assert.Equal(t, uint32(3), grass.Textures.Get(Left))
	assert.Equal(t, uint32(2), grass.Textures.Get(Bottom))

	log, ok := c.Look(TypeLog).(LookCube)
	require.True(t, ok)
	assert.Equal(t, TopSideBottom[uint32](21, 20, 21), log.Textures)

	_, ok = c.Lookup(999)
	assert.False(t, ok)
	assert.IsType(t, FeelEmpty{}, c.Feel(999))
}

func TestColliders(t *testing.T) {
	c := DefaultCatalogue()
	assert.Empty(t, c.Colliders(TypeAir, mgl32.Vec3{}))

	boxes := c.Colliders(TypeStone, mgl32.Vec3{2, -1, 3})
	require.Len(t, boxes, 1)
	assert.Equal(t, mgl32.Vec3{2, -1, 3}, boxes[0].Lower)
	assert.Equal(t, mgl32.Vec3{3, 0, 4}, boxes[0].Higher)
}
