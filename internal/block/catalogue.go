package block

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/icexin/voxelcore/internal/geom"
)

type Side int

const (
	Top Side = iota
	Front
	Back
	Left
	Right
	Bottom
)

// Sides holds one value per cube side, indexed by Side.
type Sides[T any] [6]T

func Uniform[T any](v T) Sides[T] {
	return Sides[T]{v, v, v, v, v, v}
}

func TopSideBottom[T any](top, side, bottom T) Sides[T] {
	return Sides[T]{top, side, side, side, side, bottom}
}

func (s Sides[T]) Get(side Side) T {
	return s[side]
}

// Look describes how a block type is drawn. Exactly one of LookEmpty,
// LookCube and LookDynamic.
type Look interface {
	look()
}

type LookEmpty struct{}

// LookCube draws a full cube with one atlas texture index per side.
type LookCube struct {
	Textures Sides[uint32]
}

// LookDynamic is drawn by the host; the mesher skips it.
type LookDynamic struct{}

func (LookEmpty) look()   {}
func (LookCube) look()    {}
func (LookDynamic) look() {}

// Feel describes how a block type collides.
type Feel interface {
	feel()
}

type FeelEmpty struct{}

// FeelColliders lists boxes in block-local space, [0,1]^3 for a full cube.
type FeelColliders struct {
	Boxes []geom.AAQuader
}

type FeelCustom struct{}

func (FeelEmpty) feel()     {}
func (FeelColliders) feel() {}
func (FeelCustom) feel()    {}

// Type is one entry of the block catalogue.
type Type struct {
	Name string
	Look Look
	Feel Feel
}

// Catalogue is the read-only table of block types, indexed by type id.
type Catalogue struct {
	types []Type
}

func NewCatalogue(types ...Type) *Catalogue {
	return &Catalogue{types: append([]Type(nil), types...)}
}

func solidCube(tex Sides[uint32]) (Look, Feel) {
	return LookCube{Textures: tex}, FeelColliders{Boxes: []geom.AAQuader{geom.Unit()}}
}

func cubeType(name string, tex Sides[uint32]) Type {
	look, feel := solidCube(tex)
	return Type{Name: name, Look: look, Feel: feel}
}

// DefaultCatalogue returns the built-in block table.
func DefaultCatalogue() *Catalogue {
	return NewCatalogue(
		Type{Name: "air", Look: LookEmpty{}, Feel: FeelEmpty{}},
		cubeType("stone", Uniform[uint32](1)),
		cubeType("dirt", Uniform[uint32](2)),
		cubeType("grass", TopSideBottom[uint32](0, 3, 2)),
		cubeType("log", TopSideBottom[uint32](21, 20, 21)),
		cubeType("wood", Uniform[uint32](4)),
	)
}

func (c *Catalogue) Len() int {
	return len(c.types)
}

func (c *Catalogue) Lookup(id uint16) (Type, bool) {
	if int(id) >= len(c.types) {
		return Type{}, false
	}
	return c.types[id], true
}

// Look returns LookEmpty for unknown ids.
func (c *Catalogue) Look(id uint16) Look {
	t, ok := c.Lookup(id)
	if !ok || t.Look == nil {
		return LookEmpty{}
	}
	return t.Look
}

// Feel returns FeelEmpty for unknown ids.
func (c *Catalogue) Feel(id uint16) Feel {
	t, ok := c.Lookup(id)
	if !ok || t.Feel == nil {
		return FeelEmpty{}
	}
	return t.Feel
}

func (c *Catalogue) IsOpaque(id uint16) bool {
	_, ok := c.Look(id).(LookCube)
	return ok
}

// Colliders returns the collision boxes of the type translated to the world
// cell whose lower corner is at origin.
func (c *Catalogue) Colliders(id uint16, origin mgl32.Vec3) []geom.AAQuader {
	f, ok := c.Feel(id).(FeelColliders)
	if !ok {
		return nil
	}
	out := make([]geom.AAQuader, len(f.Boxes))
	for i, b := range f.Boxes {
		out[i] = b.Translated(origin)
	}
	return out
}
