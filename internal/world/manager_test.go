package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/chunk"
	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/geom"
	"github.com/icexin/voxelcore/internal/mesh"
	"github.com/icexin/voxelcore/internal/metrics"
	"github.com/icexin/voxelcore/internal/physics"
	"github.com/icexin/voxelcore/internal/provider"
	"github.com/icexin/voxelcore/internal/ray"
)

// flatGen fills the ground layer of chunks with stone below height.
type flatGen struct {
	height int64
}

func (g flatGen) Generate(pos coord.ChunkPosition) *chunk.Data {
	d := chunk.NewData()
	if pos.Y != 0 {
		return d
	}
	for x := int64(0); x < coord.ChunkSize; x++ {
		for z := int64(0); z < coord.ChunkSize; z++ {
			for y := int64(0); y < g.height; y++ {
				d.Set(coord.Vec(x, y, z), block.Stone)
			}
		}
	}
	return d
}

type recordingProvider struct {
	*provider.InMemory
	applied []provider.BlockUpdate
}

func (p *recordingProvider) ApplyUpdate(u provider.BlockUpdate) {
	p.applied = append(p.applied, u)
}

type recordingSink struct {
	uploads  map[coord.ChunkPosition]*mesh.Mesh
	released []coord.ChunkPosition
}

func (s *recordingSink) Upload(m *mesh.Mesh) {
	s.uploads[m.Position] = m
}

func (s *recordingSink) Release(pos coord.ChunkPosition) {
	delete(s.uploads, pos)
	s.released = append(s.released, pos)
}

type fixture struct {
	mgr  *Manager
	prov *recordingProvider
	sink *recordingSink
	reg  *prometheus.Registry
	m    *metrics.Metrics
}

func newFixture(t *testing.T, height int64) *fixture {
	t.Helper()
	mem, err := provider.NewInMemory(flatGen{height: height}, 16)
	require.NoError(t, err)
	f := &fixture{
		prov: &recordingProvider{InMemory: mem},
		sink: &recordingSink{uploads: map[coord.ChunkPosition]*mesh.Mesh{}},
		reg:  prometheus.NewRegistry(),
	}
	f.m = metrics.New(f.reg)
	opts := DefaultOptions()
	opts.Sink = f.sink
	opts.Metrics = f.m
	f.mgr = NewManager(f.prov, opts)
	return f
}

func origin() coord.ChunkPosition {
	return coord.ChunkPosition{}
}

func TestScopeUpdate(t *testing.T) {
	f := newFixture(t, 4)
	ref := origin().Center()

	stats := f.mgr.ScopeUpdate(ref)
	assert.Equal(t, 33, stats.Loaded)
	assert.Equal(t, 0, stats.Unloaded)
	assert.Equal(t, ref, f.mgr.Reference())

	for dx := int64(-3); dx <= 3; dx++ {
		for dy := int64(-3); dy <= 3; dy++ {
			for dz := int64(-3); dz <= 3; dz++ {
				pos := coord.ChunkPosition{X: dx, Y: dy, Z: dz}
				within := dx*dx+dy*dy+dz*dz <= 4
				assert.Equal(t, within, f.mgr.IsLoaded(pos), "%v", pos)
			}
		}
	}

	again := f.mgr.ScopeUpdate(ref)
	assert.Equal(t, ScopeStats{}, again)

	far := coord.ChunkPosition{X: 5}.Center()
	stats = f.mgr.ScopeUpdate(far)
	assert.Greater(t, stats.Unloaded, 0)
	for _, pos := range f.mgr.Loaded() {
		assert.LessOrEqual(t, pos.Center().Sub(far).Len(), float32(4*coord.ChunkSize), "%v", pos)
	}
	assert.True(t, f.mgr.IsLoaded(coord.ChunkPosition{X: 5}))
	assert.True(t, f.mgr.IsLoaded(coord.ChunkPosition{X: 1}), "within unload radius stays")
	assert.False(t, f.mgr.IsLoaded(coord.ChunkPosition{X: -1}))
	assert.Contains(t, f.sink.released, coord.ChunkPosition{X: -1})

	assert.Equal(t, float64(len(f.mgr.Loaded())), testutil.ToFloat64(f.m.ChunksLoaded))
}

func TestEnsureLoadedMarksNeighbors(t *testing.T) {
	f := newFixture(t, 4)
	_, loaded := f.mgr.EnsureLoaded(origin())
	require.True(t, loaded)
	assert.Equal(t, []coord.ChunkPosition{origin()}, f.mgr.Pending())
	assert.Equal(t, 1, f.mgr.DrainRemesh())

	_, loaded = f.mgr.EnsureLoaded(coord.ChunkPosition{X: 1})
	require.True(t, loaded)
	assert.Equal(t, []coord.ChunkPosition{origin(), {X: 1}}, f.mgr.Pending())

	_, loaded = f.mgr.EnsureLoaded(origin())
	assert.False(t, loaded)

	c, ok := f.mgr.Neighbor(origin(), coord.FacePosX)
	require.True(t, ok)
	assert.Equal(t, coord.ChunkPosition{X: 1}, c.Position)
	_, ok = f.mgr.Neighbor(origin(), coord.FaceNegX)
	assert.False(t, ok)
}

func TestDrainRemeshIdempotent(t *testing.T) {
	f := newFixture(t, 4)
	f.mgr.ScopeUpdate(origin().Center())

	n := f.mgr.DrainRemesh()
	assert.Equal(t, 33, n)
	assert.Empty(t, f.mgr.Pending())
	assert.Len(t, f.sink.uploads, 33)
	assert.Equal(t, 0, f.mgr.DrainRemesh())
	assert.Equal(t, float64(33), testutil.ToFloat64(f.m.Remesh))

	m := f.sink.uploads[origin()]
	require.NotNil(t, m)
	assert.Equal(t, int64(1), m.Version)
	assert.False(t, m.Empty())
	assert.True(t, f.sink.uploads[coord.ChunkPosition{Y: 1}].Empty())
}

func TestSetBlock(t *testing.T) {
	f := newFixture(t, 4)
	f.mgr.ScopeUpdate(origin().Center())
	f.mgr.DrainRemesh()

	res, err := f.mgr.SetBlock(coord.Pos(100, 0, 0), block.Stone)
	assert.Equal(t, EditNotLoaded, res)
	assert.ErrorIs(t, err, ErrChunkNotLoaded)

	res, err = f.mgr.SetBlock(coord.Pos(5, 2, 5), block.Stone)
	require.NoError(t, err)
	assert.Equal(t, EditUnchanged, res)
	assert.Empty(t, f.mgr.Pending())

	res, err = f.mgr.SetBlock(coord.Pos(5, 2, 5), block.Air)
	require.NoError(t, err)
	assert.Equal(t, EditApplied, res)
	assert.Equal(t, []coord.ChunkPosition{origin()}, f.mgr.Pending())
	b, ok := f.mgr.Block(coord.Pos(5, 2, 5))
	require.True(t, ok)
	assert.Equal(t, block.Air, b)

	require.Len(t, f.prov.applied, 1)
	assert.Equal(t, provider.BlockUpdate{Position: coord.Pos(5, 2, 5), Block: block.Air}, f.prov.applied[0])

	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.BlockEdits.WithLabelValues(metrics.EditApplied)))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.BlockEdits.WithLabelValues(metrics.EditUnchanged)))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.BlockEdits.WithLabelValues(metrics.EditNotLoaded)))
}

func TestSetBlockOnBoundary(t *testing.T) {
	f := newFixture(t, 4)
	f.mgr.ScopeUpdate(origin().Center())
	f.mgr.DrainRemesh()

	res, err := f.mgr.SetBlock(coord.Pos(-1, 3, 0), block.Air)
	require.NoError(t, err)
	require.Equal(t, EditApplied, res)
	assert.ElementsMatch(t, []coord.ChunkPosition{
		{X: -1},
		{X: 0},
		{X: -1, Z: -1},
	}, f.mgr.Pending())

	// the freshly exposed face of the neighbor shows up after a drain
	before := f.sink.uploads[origin()].FaceCount()
	f.mgr.DrainRemesh()
	assert.Equal(t, before+1, f.sink.uploads[origin()].FaceCount())
}

func TestUnloadMarksNeighbors(t *testing.T) {
	f := newFixture(t, 4)
	opts := DefaultOptions()
	opts.LoadRadius = 1
	opts.UnloadRadius = 1
	opts.Sink = f.sink
	f.mgr = NewManager(f.prov, opts)

	f.mgr.ScopeUpdate(origin().Center())
	f.mgr.DrainRemesh()

	f.mgr.ScopeUpdate(coord.ChunkPosition{X: 1}.Center())
	assert.False(t, f.mgr.IsLoaded(coord.ChunkPosition{X: -1}))
	assert.Contains(t, f.mgr.Pending(), origin())
	assert.NotContains(t, f.mgr.Pending(), coord.ChunkPosition{X: -1})
	_, ok := f.sink.uploads[coord.ChunkPosition{X: -1}]
	assert.False(t, ok)
}

func TestApplyExternalUpdates(t *testing.T) {
	f := newFixture(t, 4)
	f.mgr.EnsureLoaded(origin())
	f.mgr.DrainRemesh()

	f.prov.Inject(provider.BlockUpdate{Position: coord.Pos(1, 8, 1), Block: block.Wood})
	f.prov.Inject(provider.BlockUpdate{Position: coord.Pos(1, 0, 1), Block: block.Stone})
	f.prov.Inject(provider.BlockUpdate{Position: coord.Pos(500, 0, 1), Block: block.Stone})

	assert.Equal(t, 1, f.mgr.ApplyExternalUpdates())
	b, _ := f.mgr.Block(coord.Pos(1, 8, 1))
	assert.Equal(t, block.Wood, b)
	assert.Empty(t, f.prov.applied, "external edits are not echoed")
	assert.Equal(t, []coord.ChunkPosition{origin()}, f.mgr.Pending())
}

func TestPick(t *testing.T) {
	f := newFixture(t, 4)
	f.mgr.ScopeUpdate(origin().Center())

	r, err := ray.New(mgl32.Vec3{0.5, 10.5, 0.5}, mgl32.Vec3{0, -1, 0})
	require.NoError(t, err)

	hit, ok := f.mgr.Pick(r, 20)
	require.True(t, ok)
	assert.Equal(t, coord.Pos(0, 3, 0), hit.Position)
	assert.Equal(t, block.Stone, hit.Block)
	assert.True(t, hit.HasPrev)
	assert.Equal(t, coord.Pos(0, 4, 0), hit.Prev)
	assert.InDelta(t, 6.5, hit.Distance, 1e-5)
	face, ok := hit.Face()
	require.True(t, ok)
	assert.Equal(t, coord.FacePosY, face)

	_, ok = f.mgr.Pick(r, 5)
	assert.False(t, ok)

	up, err := ray.New(mgl32.Vec3{0.5, 10.5, 0.5}, mgl32.Vec3{0, 1, 0})
	require.NoError(t, err)
	_, ok = f.mgr.Pick(up, 40)
	assert.False(t, ok)
}

func TestPickAlongDiagonal(t *testing.T) {
	f := newFixture(t, 4)
	f.mgr.ScopeUpdate(origin().Center())

	r, err := ray.New(mgl32.Vec3{8.5, 8.5, 8.5}, mgl32.Vec3{0, -1, 1})
	require.NoError(t, err)

	var (
		hit PickResult
		ok  bool
	)
	require.NotPanics(t, func() { hit, ok = f.mgr.Pick(r, 20) })
	require.True(t, ok)
	assert.Equal(t, block.Stone, hit.Block)
	assert.Equal(t, int64(8), hit.Position.X())
	assert.Equal(t, int64(3), hit.Position.Y())
	assert.Contains(t, []int64{12, 13}, hit.Position.Z())
	assert.InDelta(t, 4.5*math.Sqrt2, hit.Distance, 1e-3)
	require.True(t, hit.HasPrev)
	face, ok := hit.Face()
	require.True(t, ok)
	assert.Contains(t, []coord.Face{coord.FacePosY, coord.FaceNegZ}, face)
	assert.Equal(t, hit.Position.Neighbor(face), hit.Prev)
}

func TestTick(t *testing.T) {
	f := newFixture(t, 4)
	eng := physics.NewEngine(f.mgr.Catalogue(), physics.DefaultParams(), f.m)
	h := eng.Spawn(physics.BodySpec{
		Position: mgl32.Vec3{8.5, 9, 8.5},
		Collider: geom.CenterSize(mgl32.Vec3{0, 0.9, 0}, mgl32.Vec3{0.6, 1.8, 0.6}),
		InvMass:  1,
	})

	f.prov.Inject(provider.BlockUpdate{Position: coord.Pos(3, 3, 3), Block: block.Air})

	first := f.mgr.Tick(mgl32.Vec3{8.5, 9, 8.5}, eng)
	assert.Equal(t, 0, first.External, "chunk was not loaded when the edit arrived")
	// (8.5, 9, 8.5) is off the chunk center, so the chunks two steps below
	// on each axis fall just outside the load radius
	assert.Equal(t, 30, first.Scope.Loaded)
	assert.Equal(t, 30, first.Remeshed)

	for i := 0; i < 100; i++ {
		s := f.mgr.Tick(mgl32.Vec3{8.5, 9, 8.5}, eng)
		assert.Equal(t, 0, s.Remeshed)
	}
	b, _ := eng.Body(h)
	assert.InDelta(t, 4, b.Position.Y(), 1e-4)
	assert.True(t, b.OnGround)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.RigidBodies))
}
