package terrain

import (
	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/chunk"
	"github.com/icexin/voxelcore/internal/coord"
)

const (
	DefaultSeed      int64 = 264958643553465476
	DefaultDirtDepth       = 3
)

// Generator builds chunk contents from a seed. Generate is a pure function
// of the seed and the chunk position. Build one with NewGenerator.
type Generator struct {
	seed      int64
	layers    []Layer
	kind      SamplerKind
	dirtDepth int
	samplers  []Sampler
}

func NewGenerator(seed int64, kind SamplerKind, layers []Layer, dirtDepth int) (*Generator, error) {
	if len(layers) == 0 {
		layers = DefaultLayers
	}
	g := &Generator{
		seed:      seed,
		layers:    append([]Layer(nil), layers...),
		kind:      kind,
		dirtDepth: dirtDepth,
	}
	for i := range g.layers {
		s, err := NewSampler(kind, layerSeed(seed, i))
		if err != nil {
			return nil, err
		}
		g.samplers = append(g.samplers, s)
	}
	return g, nil
}

// DefaultGenerator uses hash sampling and the default layers.
func DefaultGenerator(seed int64) *Generator {
	g, _ := NewGenerator(seed, SamplerHash, DefaultLayers, DefaultDirtDepth)
	return g
}

func (g *Generator) Seed() int64 {
	return g.seed
}

func (g *Generator) Kind() SamplerKind {
	return g.kind
}

func layerSeed(seed int64, i int) int64 {
	return int64(hash2(uint64(seed), int64(i), 0x5eed))
}

// Heights returns the summed height field of the chunk column at pos.
func (g *Generator) Heights(pos coord.ChunkPosition) *HeightField {
	var field HeightField
	origin := pos.Origin()
	for i, l := range g.layers {
		WriteNoise(&field, g.samplers[i], origin.X(), origin.Z(), l.Step, l.Amplitude)
	}
	return &field
}

func (g *Generator) Generate(pos coord.ChunkPosition) *chunk.Data {
	data := chunk.NewData()
	if pos.Y != 0 {
		return data
	}
	field := g.Heights(pos)
	for x := int64(0); x < coord.ChunkSize; x++ {
		for z := int64(0); z < coord.ChunkSize; z++ {
			h := field[x][z]
			depth := 0
			for y := int64(coord.ChunkSize - 1); y >= 0; y-- {
				if h < float64(y)-0.5 {
					continue
				}
				b := block.Stone
				switch {
				case depth == 0:
					b = block.Grass
				case depth <= g.dirtDepth:
					b = block.Dirt
				}
				data.Set(coord.Vec(x, y, z), b)
				depth++
			}
		}
	}
	return data
}
