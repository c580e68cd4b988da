package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/config"
	"github.com/icexin/voxelcore/internal/coord"
	"github.com/icexin/voxelcore/internal/geom"
	"github.com/icexin/voxelcore/internal/logger"
	"github.com/icexin/voxelcore/internal/mesh"
	"github.com/icexin/voxelcore/internal/metrics"
	"github.com/icexin/voxelcore/internal/physics"
	"github.com/icexin/voxelcore/internal/provider"
	"github.com/icexin/voxelcore/internal/ray"
	"github.com/icexin/voxelcore/internal/world"
)

var (
	configPath  = flag.String("config", "", "config file (defaults to $VOXEL_CONFIG)")
	seed        = flag.Int64("seed", 0, "world seed, overrides the config when non zero")
	ticks       = flag.Int("ticks", 600, "ticks to simulate, 0 runs forever")
	tickRate    = flag.Int("rate", 60, "ticks per second, 0 runs unthrottled")
	pprofPort   = flag.String("pprof", "", "http pprof port")
	metricsAddr = flag.String("metrics", "", "prometheus listen address")
)

// meshStats stands in for a GPU: it keeps the face count of every live mesh.
type meshStats struct {
	faces map[coord.ChunkPosition]int
}

func (s *meshStats) Upload(m *mesh.Mesh) {
	s.faces[m.Position] = m.FaceCount()
}

func (s *meshStats) Release(pos coord.ChunkPosition) {
	delete(s.faces, pos)
}

func (s *meshStats) Total() int {
	n := 0
	for _, f := range s.faces {
		n += f
	}
	return n
}

type Sim struct {
	cfg    *config.Config
	world  *world.Manager
	engine *physics.Engine
	sink   *meshStats
	player physics.Handle
}

func NewSim(cfg *config.Config, m *metrics.Metrics) (*Sim, error) {
	gen, err := cfg.Generator()
	if err != nil {
		return nil, err
	}
	prov, err := provider.NewInMemory(gen, cfg.World.ChunkCache)
	if err != nil {
		return nil, err
	}
	cat := block.DefaultCatalogue()
	sink := &meshStats{faces: make(map[coord.ChunkPosition]int)}
	opts := world.Options{
		LoadRadius:      cfg.World.LoadRadius,
		UnloadRadius:    cfg.World.UnloadRadius,
		MissingNeighbor: cfg.MissingPolicy(),
		AtlasResolution: cfg.Mesh.AtlasResolution,
		Catalogue:       cat,
		Sink:            sink,
		Metrics:         m,
	}
	s := &Sim{
		cfg:    cfg,
		world:  world.NewManager(prov, opts),
		engine: physics.NewEngine(cat, cfg.Physics, m),
		sink:   sink,
	}
	s.player = s.engine.Spawn(physics.BodySpec{
		Position: mgl32.Vec3{0.5, coord.ChunkSize, 0.5},
		Collider: geom.CenterSize(mgl32.Vec3{0, 0.9, 0}, mgl32.Vec3{0.6, 1.8, 0.6}),
		InvMass:  1,
	})
	return s, nil
}

// Update walks the player along +x and digs the block in front of it every
// second.
func (s *Sim) Update(tick int) world.TickStats {
	s.engine.ApplyForce(s.player, mgl32.Vec3{0.01, 0, 0})
	body, _ := s.engine.Body(s.player)
	eye := body.Position.Add(mgl32.Vec3{0, 1.6, 0})

	if tick%60 == 59 {
		s.dig(eye)
	}
	return s.world.Tick(eye, s.engine)
}

func (s *Sim) dig(eye mgl32.Vec3) {
	r := ray.FromAngles(eye, 0, -45)
	hit, ok := s.world.Pick(r, 8)
	if !ok {
		return
	}
	if _, err := s.world.SetBlock(hit.Position, block.Air); err != nil {
		logger.Log.Warn("dig failed", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		return err
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if *metricsAddr != "" {
		metrics.StartHTTP(*metricsAddr, reg)
	}

	sim, err := NewSim(cfg, m)
	if err != nil {
		return err
	}
	logger.Log.Info("simulation starting",
		zap.Int64("seed", cfg.World.Seed),
		zap.String("sampler", cfg.Terrain.Sampler),
		zap.Float32("load_radius", cfg.World.LoadRadius),
		zap.Float32("unload_radius", cfg.World.UnloadRadius))

	var tick <-chan time.Time
	if *tickRate > 0 {
		t := time.NewTicker(time.Second / time.Duration(*tickRate))
		defer t.Stop()
		tick = t.C
	}
	start := time.Now()
	for i := 0; *ticks == 0 || i < *ticks; i++ {
		if tick != nil {
			<-tick
		}
		st := sim.Update(i)
		if st.Remeshed > 0 {
			body, _ := sim.engine.Body(sim.player)
			logger.Log.Debug("tick",
				zap.Int("tick", i),
				zap.Int("remeshed", st.Remeshed),
				zap.Stringer("chunk", coord.ChunkPositionFromVec(body.Position)))
		}
	}
	body, _ := sim.engine.Body(sim.player)
	logger.Log.Info("simulation finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chunks", len(sim.world.Loaded())),
		zap.Int("faces", sim.sink.Total()),
		zap.Bool("on_ground", body.OnGround),
		zap.Float32("x", body.Position.X()),
		zap.Float32("y", body.Position.Y()),
		zap.Float32("z", body.Position.Z()))
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	flag.Parse()
	go func() {
		if *pprofPort != "" {
			log.Fatal(http.ListenAndServe(*pprofPort, nil))
		}
	}()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
