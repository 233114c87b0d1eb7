package mesi

import (
	"github.com/golang/glog"
	"github.com/kal667/mesisim/cmn"
	"go.uber.org/atomic"
)

// Simulator is the explicit, lifecycle-scoped owner of a fleet of
// per-core caches, their statistics, and the coherence engine that
// operates across them. There is no package-level singleton: every run
// gets its own Simulator value.
type Simulator struct {
	cfg     Config
	caches  []*Cache
	stats   []*CacheStat
	engine  *engine
	flushed atomic.Bool
}

// NewSimulator validates cfg and builds a fresh fleet of NumCores
// caches plus their statistics. It is the sole constructor: there is no
// way to obtain a Simulator without passing through validation.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		glog.Errorf("mesi: rejecting invalid configuration: %v", err)
		return nil, err
	}

	caches := make([]*Cache, cfg.NumCores)
	stats := make([]*CacheStat, cfg.NumCores)
	for i := 0; i < cfg.NumCores; i++ {
		caches[i] = newCache(i, cfg)
		stats[i] = &CacheStat{}
	}

	s := &Simulator{
		cfg:    cfg,
		caches: caches,
		stats:  stats,
	}
	s.engine = &engine{fleet: caches}
	return s, nil
}

// Config returns the geometry this Simulator was built with.
func (s *Simulator) Config() Config { return s.cfg }

// NumCores returns the fleet size.
func (s *Simulator) NumCores() int { return len(s.caches) }

// Stat returns the read-only statistics view for one core.
func (s *Simulator) Stat(core int) *CacheStat { return s.stats[core] }

// Cache exposes the read-only geometry/contents of one core's cache,
// primarily for tests asserting coherence and capacity invariants.
func (s *Simulator) Cache(core int) *Cache { return s.caches[core] }

// Flush walks every (core, set, line) exactly once and charges a
// writeback for every line still in Modified state, modeling
// end-of-run drain of dirty blocks. Idempotent: a second call is
// a no-op, guarded by an atomic flag rather than relying on callers to
// invoke it exactly once.
func (s *Simulator) Flush() {
	if !s.flushed.CAS(false, true) {
		return
	}
	wordsPerBlock := uint64(s.cfg.wordsPerBlock())
	for i, c := range s.caches {
		stat := s.stats[i]
		for idx := range c.sets {
			c.sets[idx].forEach(func(l *Line) {
				if l.state == cmn.Modified {
					stat.copiesBack.Add(wordsPerBlock)
				}
			})
		}
	}
}

// Close releases the Simulator. It is not strictly necessary in this
// in-memory implementation - there are no file descriptors or
// goroutines to tear down - but it gives callers an explicit
// construct/destroy lifecycle rather than relying on the garbage
// collector alone.
func (s *Simulator) Close() {
	s.caches = nil
	s.stats = nil
	s.engine = nil
}
