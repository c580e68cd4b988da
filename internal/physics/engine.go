package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/geom"
	"github.com/icexin/voxelcore/internal/logger"
	"github.com/icexin/voxelcore/internal/metrics"
)

// BlockSource gives read access to loaded blocks.
type BlockSource interface {
	Block(pos coord.BlockPosition) (block.Block, bool)
}

type Params struct {
	Damping       float32 `yaml:"damping"`
	FlyingDamping float32 `yaml:"flying_damping"`
	GravityBias   float32 `yaml:"gravity_bias"`
}

func DefaultParams() Params {
	return Params{
		Damping:       0.9,
		FlyingDamping: 0.8,
		GravityBias:   0.08,
	}
}

// Engine steps rigid bodies against the static voxel world. Bodies live in a
// dense slice; index maps handles to slots.
type Engine struct {
	params    Params
	catalogue *block.Catalogue
	metrics   *metrics.Metrics

	bodies  []RigidBody
	handles []Handle
	index   map[Handle]int
}

func NewEngine(cat *block.Catalogue, params Params, m *metrics.Metrics) *Engine {
	return &Engine{
		params:    params,
		catalogue: cat,
		metrics:   m,
		index:     make(map[Handle]int),
	}
}

func (e *Engine) Spawn(bs BodySpec) Handle {
	h := Handle(uuid.New())
	e.index[h] = len(e.bodies)
	e.bodies = append(e.bodies, RigidBody{
		Position: bs.Position,
		InvMass:  bs.InvMass,
		Flying:   bs.Flying,
		Collider: bs.Collider,
	})
	e.handles = append(e.handles, h)
	e.metrics.Bodies(len(e.bodies))
	logger.Log.Debug("rigid body spawned", zap.Stringer("handle", h))
	return h
}

// Despawn removes the body by moving the last body into its slot.
func (e *Engine) Despawn(h Handle) bool {
	i, ok := e.index[h]
	if !ok {
		return false
	}
	last := len(e.bodies) - 1
	if i != last {
		e.bodies[i] = e.bodies[last]
		e.handles[i] = e.handles[last]
		e.index[e.handles[i]] = i
	}
	e.bodies = e.bodies[:last]
	e.handles = e.handles[:last]
	delete(e.index, h)
	e.metrics.Bodies(len(e.bodies))
	return true
}

func (e *Engine) Body(h Handle) (RigidBody, bool) {
	i, ok := e.index[h]
	if !ok {
		return RigidBody{}, false
	}
	return e.bodies[i], true
}

// ApplyForce accumulates f until the next step.
func (e *Engine) ApplyForce(h Handle, f mgl32.Vec3) bool {
	i, ok := e.index[h]
	if !ok {
		return false
	}
	e.bodies[i].Force = e.bodies[i].Force.Add(f)
	return true
}

func (e *Engine) SetFlying(h Handle, flying bool) bool {
	i, ok := e.index[h]
	if !ok {
		return false
	}
	e.bodies[i].Flying = flying
	return true
}

func (e *Engine) Len() int {
	return len(e.bodies)
}

// Each calls fn for every body, in storage order.
func (e *Engine) Each(fn func(h Handle, b RigidBody)) {
	for i := range e.bodies {
		fn(e.handles[i], e.bodies[i])
	}
}

// Step advances every body by one tick and pushes it out of solid blocks.
func (e *Engine) Step(world BlockSource) {
	for i := range e.bodies {
		b := &e.bodies[i]
		e.integrate(b)
		e.resolve(b, world)
	}
}

func (e *Engine) integrate(b *RigidBody) {
	damp := e.params.Damping
	if b.Flying {
		damp = e.params.FlyingDamping
	}
	b.Velocity = b.Velocity.Mul(damp).Add(b.Force.Mul(b.InvMass))
	if !b.Flying {
		b.Velocity[1] -= e.params.GravityBias
	}
	b.Position = b.Position.Add(b.Velocity)
	b.Force = mgl32.Vec3{}
	b.OnGround = false
}

// overlappedCells lists the blocks whose unit cube intersects box.
func overlappedCells(box geom.AAQuader) []coord.BlockPosition {
	var lo, hi [3]int64
	for i := 0; i < 3; i++ {
		lo[i] = int64(math.Floor(float64(box.Lower[i])))
		hi[i] = int64(math.Ceil(float64(box.Higher[i]))) - 1
		if hi[i] < lo[i] {
			hi[i] = lo[i]
		}
	}
	var out []coord.BlockPosition
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				out = append(out, coord.Pos(x, y, z))
			}
		}
	}
	return out
}

const (
	// contactEpsilon is the overlap below which touching boxes do not collide.
	contactEpsilon = 1e-5
	maxCorrections = 8
)

// resolve pushes b out of solid blocks one axis at a time, looking up the
// overlapped cells again after every correction.
func (e *Engine) resolve(b *RigidBody, world BlockSource) {
	for i := 0; i < maxCorrections; i++ {
		if !e.correct(b, world) {
			return
		}
	}
	logger.Log.Debug("collision left unresolved",
		zap.Int("corrections", maxCorrections),
		zap.Float32("x", b.Position.X()),
		zap.Float32("y", b.Position.Y()),
		zap.Float32("z", b.Position.Z()))
}

// correct applies the first single axis correction it finds and reports
// whether the body moved.
func (e *Engine) correct(b *RigidBody, world BlockSource) bool {
	collider := b.WorldCollider()
	for _, cell := range overlappedCells(collider) {
		blk, ok := world.Block(cell)
		if !ok {
			continue
		}
		for _, box := range e.catalogue.Colliders(blk.Type, cell.LowerCorner()) {
			imp := collider.ImpactVolume(box)
			if abs(imp[0]) <= contactEpsilon || abs(imp[1]) <= contactEpsilon || abs(imp[2]) <= contactEpsilon {
				continue
			}
			axis := pushAxis(imp, b.Velocity)
			b.Position[axis] += imp[axis]
			if (imp[axis] > 0 && b.Velocity[axis] < 0) || (imp[axis] < 0 && b.Velocity[axis] > 0) {
				b.Velocity[axis] = 0
			}
			if axis == 1 && imp[axis] > 0 {
				b.OnGround = true
			}
			return true
		}
	}
	return false
}

// pushAxis picks the axis the body moves into the most. Without any motion
// along the overlapped axes the shallowest overlap wins.
func pushAxis(imp, vel mgl32.Vec3) int {
	best, score := -1, float32(0)
	for i := 0; i < 3; i++ {
		s := abs(imp[i]) * abs(vel[i])
		if s > score {
			best, score = i, s
		}
	}
	if best >= 0 {
		return best
	}
	best = 0
	for i := 1; i < 3; i++ {
		if abs(imp[i]) < abs(imp[best]) {
			best = i
		}
	}
	return best
}

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
