package world

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/chunk"
	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/logger"
	"github.com/icexin/voxelcore/internal/mesh"
	"github.com/icexin/voxelcore/internal/metrics"
	"github.com/icexin/voxelcore/internal/provider"
)

var ErrChunkNotLoaded = errors.New("world: chunk not loaded")

type EditResult int

const (
	EditApplied EditResult = iota
	EditUnchanged
	EditNotLoaded
)

func (r EditResult) String() string {
	switch r {
	case EditApplied:
		return metrics.EditApplied
	case EditUnchanged:
		return metrics.EditUnchanged
	case EditNotLoaded:
		return metrics.EditNotLoaded
	}
	return fmt.Sprintf("EditResult(%d)", int(r))
}

// ScopeStats reports what one scope update changed.
type ScopeStats struct {
	Loaded   int
	Unloaded int
}

// Manager owns every loaded chunk. All block edits go through SetBlock so
// the pending remesh set stays correct. Neighbors are looked up by position
// in the registry; chunks never point at each other.
type Manager struct {
	opts     Options
	provider provider.Provider
	mesher   *mesh.Builder
	sink     MeshSink
	metrics  *metrics.Metrics

	chunks   map[coord.ChunkPosition]*chunk.Chunk
	pending  map[coord.ChunkPosition]struct{}
	versions map[coord.ChunkPosition]int64
	ref      mgl32.Vec3
}

func NewManager(p provider.Provider, opts Options) *Manager {
	if opts.Catalogue == nil {
		opts.Catalogue = block.DefaultCatalogue()
	}
	if opts.Sink == nil {
		opts.Sink = discardSink{}
	}
	if opts.LoadRadius > opts.UnloadRadius {
		logger.Log.Warn("load radius exceeds unload radius, chunks will thrash",
			zap.Float32("load", opts.LoadRadius),
			zap.Float32("unload", opts.UnloadRadius))
	}
	mesher := mesh.NewBuilder(opts.Catalogue)
	mesher.Missing = opts.MissingNeighbor
	if opts.AtlasResolution != 0 {
		mesher.AtlasResolution = opts.AtlasResolution
	}
	return &Manager{
		opts:     opts,
		provider: p,
		mesher:   mesher,
		sink:     opts.Sink,
		metrics:  opts.Metrics,
		chunks:   make(map[coord.ChunkPosition]*chunk.Chunk),
		pending:  make(map[coord.ChunkPosition]struct{}),
		versions: make(map[coord.ChunkPosition]int64),
	}
}

func (m *Manager) Catalogue() *block.Catalogue {
	return m.opts.Catalogue
}

// Chunk returns the loaded chunk at pos.
func (m *Manager) Chunk(pos coord.ChunkPosition) (*chunk.Chunk, bool) {
	c, ok := m.chunks[pos]
	return c, ok
}

// Neighbor returns the loaded chunk adjacent to pos across f.
func (m *Manager) Neighbor(pos coord.ChunkPosition, f coord.Face) (*chunk.Chunk, bool) {
	return m.Chunk(pos.Neighbor(f))
}

func (m *Manager) IsLoaded(pos coord.ChunkPosition) bool {
	_, ok := m.chunks[pos]
	return ok
}

func (m *Manager) Reference() mgl32.Vec3 {
	return m.ref
}

// Loaded returns the positions of all loaded chunks in a stable order.
func (m *Manager) Loaded() []coord.ChunkPosition {
	out := make([]coord.ChunkPosition, 0, len(m.chunks))
	for pos := range m.chunks {
		out = append(out, pos)
	}
	sortPositions(out)
	return out
}

// Pending returns the chunks waiting for a mesh rebuild.
func (m *Manager) Pending() []coord.ChunkPosition {
	out := make([]coord.ChunkPosition, 0, len(m.pending))
	for pos := range m.pending {
		out = append(out, pos)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []coord.ChunkPosition) {
	sort.Slice(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
}

func (m *Manager) markPending(pos coord.ChunkPosition) {
	if m.IsLoaded(pos) {
		m.pending[pos] = struct{}{}
	}
}

// EnsureLoaded returns the chunk at pos, loading it from the provider when
// needed. The second result reports whether a load happened.
func (m *Manager) EnsureLoaded(pos coord.ChunkPosition) (*chunk.Chunk, bool) {
	if c, ok := m.chunks[pos]; ok {
		return c, false
	}
	c := chunk.New(pos, m.provider.LoadChunk(pos))
	m.chunks[pos] = c
	m.markPending(pos)
	for _, f := range coord.Faces {
		m.markPending(pos.Neighbor(f))
	}
	m.metrics.ChunkLoaded(len(m.chunks))
	return c, true
}

func (m *Manager) unload(pos coord.ChunkPosition) {
	delete(m.chunks, pos)
	delete(m.pending, pos)
	delete(m.versions, pos)
	m.sink.Release(pos)
	for _, f := range coord.Faces {
		m.markPending(pos.Neighbor(f))
	}
	m.metrics.ChunkUnloaded(len(m.chunks))
}

func distance(pos coord.ChunkPosition, ref mgl32.Vec3) float32 {
	return pos.Center().Sub(ref).Len()
}

// ScopeUpdate loads every chunk whose center lies within the load radius of
// ref, nearest first, then unloads chunks beyond the unload radius.
func (m *Manager) ScopeUpdate(ref mgl32.Vec3) ScopeStats {
	m.ref = ref
	var stats ScopeStats

	loadDist := m.opts.LoadRadius * coord.ChunkSize
	center := coord.ChunkPositionFromVec(ref)
	n := int64(math.Ceil(float64(m.opts.LoadRadius))) + 1

	var needed []coord.ChunkPosition
	for dx := -n; dx <= n; dx++ {
		for dy := -n; dy <= n; dy++ {
			for dz := -n; dz <= n; dz++ {
				pos := center.Offset(dx, dy, dz)
				if distance(pos, ref) > loadDist || m.IsLoaded(pos) {
					continue
				}
				needed = append(needed, pos)
			}
		}
	}
	sort.SliceStable(needed, func(i, j int) bool {
		return distance(needed[i], ref) < distance(needed[j], ref)
	})
	for _, pos := range needed {
		if _, loaded := m.EnsureLoaded(pos); loaded {
			stats.Loaded++
		}
	}

	unloadDist := m.opts.UnloadRadius * coord.ChunkSize
	for _, pos := range m.Loaded() {
		if distance(pos, ref) > unloadDist {
			m.unload(pos)
			stats.Unloaded++
		}
	}

	if stats.Loaded > 0 || stats.Unloaded > 0 {
		logger.Log.Info("chunk scope updated",
			zap.Stringer("center", center),
			zap.Int("loaded", stats.Loaded),
			zap.Int("unloaded", stats.Unloaded),
			zap.Int("total", len(m.chunks)))
	}
	return stats
}

// Block returns the block at a global position, if its chunk is loaded.
func (m *Manager) Block(pos coord.BlockPosition) (block.Block, bool) {
	l, cp := pos.Local()
	c, ok := m.chunks[cp]
	if !ok {
		return block.Block{}, false
	}
	return c.Data.At(l), true
}

// SetBlock writes b at pos and forwards the edit to the provider.
func (m *Manager) SetBlock(pos coord.BlockPosition, b block.Block) (EditResult, error) {
	res, err := m.setBlock(pos, b)
	if res == EditApplied {
		m.provider.ApplyUpdate(provider.BlockUpdate{Position: pos, Block: b})
	}
	return res, err
}

func (m *Manager) setBlock(pos coord.BlockPosition, b block.Block) (EditResult, error) {
	l, cp := pos.Local()
	c, ok := m.chunks[cp]
	if !ok {
		logger.Log.Warn("block edit ignored, chunk not loaded",
			zap.Stringer("pos", pos), zap.Stringer("chunk", cp))
		m.metrics.BlockEdit(metrics.EditNotLoaded)
		return EditNotLoaded, fmt.Errorf("set block %v: %w", pos, ErrChunkNotLoaded)
	}
	if c.Data.At(l) == b {
		logger.Log.Debug("block edit unchanged", zap.Stringer("pos", pos))
		m.metrics.BlockEdit(metrics.EditUnchanged)
		return EditUnchanged, nil
	}
	c.Data.SetAt(l, b)
	m.markPending(cp)
	for _, f := range coord.Faces {
		if l.OnBoundary(f) {
			m.markPending(cp.Neighbor(f))
		}
	}
	logger.Log.Debug("block edit applied",
		zap.Stringer("pos", pos), zap.Stringer("block", b))
	m.metrics.BlockEdit(metrics.EditApplied)
	return EditApplied, nil
}

// ApplyExternalUpdates applies every edit the provider has queued. Edits
// for chunks that are not loaded are skipped. Returns the number applied.
func (m *Manager) ApplyExternalUpdates() int {
	n := 0
	for {
		u, ok := m.provider.PollUpdate()
		if !ok {
			return n
		}
		if res, _ := m.setBlock(u.Position, u.Block); res == EditApplied {
			n++
		}
	}
}

// DrainRemesh rebuilds the mesh of every pending chunk and hands it to the
// sink. Returns the number of meshes built.
func (m *Manager) DrainRemesh() int {
	if len(m.pending) == 0 {
		return 0
	}
	n := 0
	for _, pos := range m.Pending() {
		c, ok := m.chunks[pos]
		if !ok {
			continue
		}
		mm := m.mesher.Build(c, m)
		m.versions[pos]++
		mm.Version = m.versions[pos]
		m.sink.Upload(mm)
		m.metrics.Remeshed(mm.FaceCount())
		n++
	}
	m.pending = make(map[coord.ChunkPosition]struct{})
	return n
}
