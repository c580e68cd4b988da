package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/icexin/voxelcore/internal/logger"
)

const namespace = "voxel"

// Edit results used as the label of BlockEdits.
const (
	EditApplied   = "applied"
	EditUnchanged = "unchanged"
	EditNotLoaded = "not_loaded"
)

// Metrics groups the collectors of the simulation core. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ChunksLoaded prometheus.Gauge
	ChunkLoads   prometheus.Counter
	ChunkUnloads prometheus.Counter
	Remesh       prometheus.Counter
	MeshFaces    prometheus.Histogram
	BlockEdits   *prometheus.CounterVec
	RigidBodies  prometheus.Gauge
}

// New creates the collectors and registers them with reg; reg may be nil
// for unregistered collectors (tests).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ChunksLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_loaded",
			Help:      "Number of chunks currently held by the chunk manager.",
		}),
		ChunkLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_loads_total",
			Help:      "Chunks loaded from the provider.",
		}),
		ChunkUnloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_unloads_total",
			Help:      "Chunks dropped by scope updates.",
		}),
		Remesh: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remesh_total",
			Help:      "Chunk meshes rebuilt.",
		}),
		MeshFaces: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mesh_faces",
			Help:      "Faces per rebuilt chunk mesh.",
			Buckets:   []float64{0, 64, 256, 512, 1024, 2048, 4096, 8192},
		}),
		BlockEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_edits_total",
			Help:      "Block edits by outcome.",
		}, []string{"result"}),
		RigidBodies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rigid_bodies",
			Help:      "Rigid bodies simulated by the physics engine.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.ChunksLoaded, m.ChunkLoads, m.ChunkUnloads,
			m.Remesh, m.MeshFaces, m.BlockEdits, m.RigidBodies,
		)
	}
	return m
}

func (m *Metrics) ChunkLoaded(total int) {
	if m == nil {
		return
	}
	m.ChunkLoads.Inc()
	m.ChunksLoaded.Set(float64(total))
}

func (m *Metrics) ChunkUnloaded(total int) {
	if m == nil {
		return
	}
	m.ChunkUnloads.Inc()
	m.ChunksLoaded.Set(float64(total))
}

func (m *Metrics) Remeshed(faces int) {
	if m == nil {
		return
	}
	m.Remesh.Inc()
	m.MeshFaces.Observe(float64(faces))
}

func (m *Metrics) BlockEdit(result string) {
	if m == nil {
		return
	}
	m.BlockEdits.WithLabelValues(result).Inc()
}

func (m *Metrics) Bodies(n int) {
	if m == nil {
		return
	}
	m.RigidBodies.Set(float64(n))
}

// StartHTTP serves the collectors of g on addr in the background.
func StartHTTP(addr string, g prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	go func() {
		logger.Log.Info("metrics endpoint listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Log.Error("metrics endpoint stopped", zap.Error(err))
		}
	}()
}
