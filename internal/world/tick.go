package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/icexin/voxelcore/internal/physics"
)

// TickStats summarizes one simulation tick.
type TickStats struct {
	External int
	Scope    ScopeStats
	Remeshed int
}

// Tick runs one simulation step: queued external edits, the load scope
// around ref, physics, then mesh rebuilds so no mesh is stale for this tick.
// eng may be nil.
func (m *Manager) Tick(ref mgl32.Vec3, eng *physics.Engine) TickStats {
	var s TickStats
	s.External = m.ApplyExternalUpdates()
	s.Scope = m.ScopeUpdate(ref)
	if eng != nil {
		eng.Step(m)
	}
	s.Remeshed = m.DrainRemesh()
	return s
}
