package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ChunkLoaded(1)
		m.ChunkUnloaded(0)
		m.Remeshed(10)
		m.BlockEdit(EditApplied)
		m.Bodies(3)
	})
}

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ChunkLoaded(1)
	m.ChunkLoaded(2)
	m.ChunkUnloaded(1)
	m.Remeshed(12)
	m.BlockEdit(EditApplied)
	m.BlockEdit(EditApplied)
	m.BlockEdit(EditNotLoaded)
	m.Bodies(4)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ChunkLoads))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ChunkUnloads))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ChunksLoaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Remesh))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BlockEdits.WithLabelValues(EditApplied)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BlockEdits.WithLabelValues(EditNotLoaded)))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.RigidBodies))

	n, err := testutil.GatherAndCount(reg, "voxel_block_edits_total")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}
