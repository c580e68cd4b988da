package provider

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/icexin/voxelcore/internal/chunk"
	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/logger"
)

const DefaultCacheSize = 256

// Generator produces the pristine contents of a chunk.
type Generator interface {
	Generate(pos coord.ChunkPosition) *chunk.Data
}

// InMemory is a single player provider. Nothing is saved and nobody else
// edits the world except through Inject.
type InMemory struct {
	gen     Generator
	cache   *lru.Cache
	updates []BlockUpdate

	hits, misses int
}

// NewInMemory keeps up to cacheSize generated chunks around; cacheSize <= 0
// disables the cache.
func NewInMemory(gen Generator, cacheSize int) (*InMemory, error) {
	p := &InMemory{gen: gen}
	if cacheSize > 0 {
		c, err := lru.New(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("provider: chunk cache: %w", err)
		}
		p.cache = c
	}
	return p, nil
}

func (p *InMemory) LoadChunk(pos coord.ChunkPosition) *chunk.Data {
	if p.cache != nil {
		if v, ok := p.cache.Get(pos); ok {
			p.hits++
			return v.(*chunk.Data).Clone()
		}
	}
	p.misses++
	data := p.gen.Generate(pos)
	if p.cache != nil {
		p.cache.Add(pos, data.Clone())
	}
	return data
}

func (p *InMemory) PollUpdate() (BlockUpdate, bool) {
	if len(p.updates) == 0 {
		return BlockUpdate{}, false
	}
	u := p.updates[0]
	p.updates = p.updates[1:]
	return u, true
}

func (p *InMemory) ApplyUpdate(u BlockUpdate) {
	logger.Log.Debug("block update dropped, nothing to persist to",
		zap.Stringer("pos", u.Position),
		zap.Stringer("block", u.Block))
}

// Inject queues an edit as if it came from another participant.
func (p *InMemory) Inject(u BlockUpdate) {
	p.updates = append(p.updates, u)
}

// CacheStats returns hit and miss counts of LoadChunk.
func (p *InMemory) CacheStats() (hits, misses int) {
	return p.hits, p.misses
}

func (p *InMemory) Cached() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}
