package terrain

import (
	"errors"
	"fmt"
	"math"

	perlin "github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

var ErrUnknownSampler = errors.New("terrain: unknown sampler")

// Sampler returns a deterministic value in [0, 1] for a grid point given in
// world block coordinates.
type Sampler interface {
	Sample(gx, gz int64) float64
}

type SamplerKind string

const (
	SamplerHash    SamplerKind = "hash"
	SamplerSimplex SamplerKind = "simplex"
	SamplerPerlin  SamplerKind = "perlin"
)

func NewSampler(kind SamplerKind, seed int64) (Sampler, error) {
	switch kind {
	case SamplerHash, "":
		return HashSampler{Seed: seed}, nil
	case SamplerSimplex:
		return NewSimplexSampler(seed), nil
	case SamplerPerlin:
		return NewPerlinSampler(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSampler, kind)
	}
}

// HashSampler is integer value noise: each grid point gets an independent
// pseudo random value.
type HashSampler struct {
	Seed int64
}

func (h HashSampler) Sample(gx, gz int64) float64 {
	v := hash2(uint64(h.Seed), gx, gz)
	return float64(v>>11) / float64(1<<53)
}

func hash2(seed uint64, x, z int64) uint64 {
	h := seed ^ uint64(x)*0x9e3779b97f4a7c15 ^ uint64(z)*0xc2b2ae3d27d4eb4f
	h = (h ^ (h >> 30)) * 0xbf58476d1ce4e5b9
	h = (h ^ (h >> 27)) * 0x94d049bb133111eb
	return h ^ (h >> 31)
}

// Grid points sit on integer coordinates, which are lattice points of both
// gradient noises; sampling them scaled by a non-integer factor avoids
// reading the same value everywhere.
const latticeScale = 0.0618034

// SimplexSampler sums a few octaves of OpenSimplex noise.
type SimplexSampler struct {
	noise       opensimplex.Noise
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

func NewSimplexSampler(seed int64) *SimplexSampler {
	return &SimplexSampler{
		noise:       opensimplex.New(seed),
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
	}
}

func (s *SimplexSampler) Sample(gx, gz int64) float64 {
	x, y := float64(gx)*latticeScale, float64(gz)*latticeScale
	var (
		freq  = 1.0
		amp   = 1.0
		max   = 1.0
		total = s.noise.Eval2(x, y)
	)
	for i := 0; i < s.Octaves; i++ {
		freq *= s.Lacunarity
		amp *= s.Persistence
		max += amp
		total += s.noise.Eval2(x*freq, y*freq) * amp
	}
	return clamp01((1 + total/max) / 2)
}

// PerlinSampler wraps classic Perlin noise.
type PerlinSampler struct {
	p *perlin.Perlin
}

func NewPerlinSampler(seed int64) *PerlinSampler {
	return &PerlinSampler{p: perlin.NewPerlin(2, 2, 3, seed)}
}

func (s *PerlinSampler) Sample(gx, gz int64) float64 {
	v := s.p.Noise2D(float64(gx)*latticeScale, float64(gz)*latticeScale)
	return clamp01((1 + v) / 2)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
