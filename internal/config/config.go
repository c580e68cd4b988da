package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/icexin/voxelcore/internal/mesh"
	"github.com/icexin/voxelcore/internal/physics"
	"github.com/icexin/voxelcore/internal/provider"
	"github.com/icexin/voxelcore/internal/terrain"
)

// Config is the root of the YAML configuration.
type Config struct {
	World   WorldConfig    `yaml:"world"`
	Terrain TerrainConfig  `yaml:"terrain"`
	Mesh    MeshConfig     `yaml:"mesh"`
	Physics physics.Params `yaml:"physics"`
	Log     LogConfig      `yaml:"log"`
}

type WorldConfig struct {
	Seed            int64   `yaml:"seed"`
	LoadRadius      float32 `yaml:"load_radius"`
	UnloadRadius    float32 `yaml:"unload_radius"`
	MissingNeighbor string  `yaml:"missing_neighbor"`
	ChunkCache      int     `yaml:"chunk_cache"`
}

type TerrainConfig struct {
	Sampler   string          `yaml:"sampler"`
	DirtDepth int             `yaml:"dirt_depth"`
	Layers    []terrain.Layer `yaml:"layers"`
}

type MeshConfig struct {
	AtlasResolution uint32 `yaml:"atlas_resolution"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:            terrain.DefaultSeed,
			LoadRadius:      2,
			UnloadRadius:    4,
			MissingNeighbor: mesh.MissingTransparent.String(),
			ChunkCache:      provider.DefaultCacheSize,
		},
		Terrain: TerrainConfig{
			Sampler:   string(terrain.SamplerHash),
			DirtDepth: terrain.DefaultDirtDepth,
			Layers:    append([]terrain.Layer(nil), terrain.DefaultLayers...),
		},
		Mesh:    MeshConfig{AtlasResolution: mesh.DefaultAtlasResolution},
		Physics: physics.DefaultParams(),
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls
// back to $VOXEL_CONFIG; with neither set the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if lvl := os.Getenv("VOXEL_LOG_LEVEL"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var ErrInvalid = errors.New("config: invalid")

func (c *Config) Validate() error {
	if c.World.LoadRadius < 0 || c.World.UnloadRadius < 0 {
		return fmt.Errorf("%w: negative radius", ErrInvalid)
	}
	if _, err := mesh.ParseMissingPolicy(c.World.MissingNeighbor); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := terrain.NewSampler(terrain.SamplerKind(c.Terrain.Sampler), 0); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Terrain.DirtDepth < 0 {
		return fmt.Errorf("%w: dirt_depth %d", ErrInvalid, c.Terrain.DirtDepth)
	}
	for i, l := range c.Terrain.Layers {
		if l.Step <= 0 {
			return fmt.Errorf("%w: layer %d step %d", ErrInvalid, i, l.Step)
		}
	}
	if c.Mesh.AtlasResolution == 0 {
		return fmt.Errorf("%w: atlas_resolution must be positive", ErrInvalid)
	}
	return nil
}

// MissingPolicy returns the parsed world.missing_neighbor value.
func (c *Config) MissingPolicy() mesh.MissingPolicy {
	p, _ := mesh.ParseMissingPolicy(c.World.MissingNeighbor)
	return p
}

// Generator builds the terrain generator described by the config.
func (c *Config) Generator() (*terrain.Generator, error) {
	return terrain.NewGenerator(c.World.Seed, terrain.SamplerKind(c.Terrain.Sampler), c.Terrain.Layers, c.Terrain.DirtDepth)
}
