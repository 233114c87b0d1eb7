package mesi

import "go.uber.org/atomic"

// CacheStat holds one core's monotonic counters for the duration of a
// run. Backed by atomics so a concurrently running reporter can take a
// consistent snapshot while PerformAccess is (sequentially) mutating
// them.
type CacheStat struct {
	accesses      atomic.Uint64
	misses        atomic.Uint64
	replacements  atomic.Uint64
	demandFetches atomic.Uint64
	copiesBack    atomic.Uint64
	broadcasts    atomic.Uint64
}

func (s *CacheStat) Accesses() uint64      { return s.accesses.Load() }
func (s *CacheStat) Misses() uint64        { return s.misses.Load() }
func (s *CacheStat) Replacements() uint64  { return s.replacements.Load() }
func (s *CacheStat) DemandFetches() uint64 { return s.demandFetches.Load() }
func (s *CacheStat) CopiesBack() uint64    { return s.copiesBack.Load() }
func (s *CacheStat) Broadcasts() uint64    { return s.broadcasts.Load() }

// MissRate returns misses/accesses, or 0 when there have been no
// accesses yet.
func (s *CacheStat) MissRate() float64 {
	a := s.Accesses()
	if a == 0 {
		return 0
	}
	return float64(s.Misses()) / float64(a)
}

// HitRate returns 1 - MissRate(), or 0 when there have been no
// accesses yet.
func (s *CacheStat) HitRate() float64 {
	a := s.Accesses()
	if a == 0 {
		return 0
	}
	return 1 - s.MissRate()
}
