package terrain

import (
	"github.com/icexin/voxelcore/internal/coord"
)

// HeightField is one value per column of a chunk, indexed [x][z].
type HeightField [coord.ChunkSize][coord.ChunkSize]float64

// Layer is one octave of the terrain: grid samples Step blocks apart scaled
// to [0, Amplitude].
type Layer struct {
	Step      int64   `yaml:"step"`
	Amplitude float64 `yaml:"amplitude"`
}

var DefaultLayers = []Layer{
	{Step: 64, Amplitude: 8},
	{Step: 16, Amplitude: 2},
	{Step: 4, Amplitude: 0.8},
	{Step: 2, Amplitude: 0.2},
}

func floorMod(x, n int64) int64 {
	return ((x % n) + n) % n
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// WriteNoise adds one layer of coherent noise to field for the 16x16 columns
// starting at world column (x0, z0). Samples are taken on the world grid of
// spacing step and interpolated bilinearly; the phase inside a cell is the
// floored remainder of the world coordinate, so adjacent chunks agree on
// their shared edges.
func WriteNoise(field *HeightField, s Sampler, x0, z0, step int64, amplitude float64) {
	if step <= 0 {
		step = 1
	}
	for lx := int64(0); lx < coord.ChunkSize; lx++ {
		wx := x0 + lx
		px := floorMod(wx, step)
		gx := wx - px
		tx := float64(px) / float64(step)
		for lz := int64(0); lz < coord.ChunkSize; lz++ {
			wz := z0 + lz
			pz := floorMod(wz, step)
			gz := wz - pz
			tz := float64(pz) / float64(step)

			v00 := s.Sample(gx, gz)
			v10 := s.Sample(gx+step, gz)
			v01 := s.Sample(gx, gz+step)
			v11 := s.Sample(gx+step, gz+step)
			v := lerp(lerp(v00, v10, tx), lerp(v01, v11, tx), tz)
			field[lx][lz] += v * amplitude
		}
	}
}
