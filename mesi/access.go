package mesi

import "github.com/kal667/mesisim/cmn"

// Access is one memory-access event: the requesting core, a byte
// address, and the operation.
type Access struct {
	Core uint
	Addr uint64
	Op   cmn.Op
}

// PerformAccess drives one access to completion against the fleet:
// decode, local lookup, then either a local hit transition (possibly
// broadcasting an invalidate) or a miss (peer probe, install, optional
// eviction + writeback accounting).
func (s *Simulator) PerformAccess(core uint, addr uint64, op cmn.Op) error {
	if int(core) >= len(s.caches) {
		return newInvariantError("core %d out of range (fleet size %d)", core, len(s.caches))
	}
	if op != cmn.Load && op != cmn.Store {
		return newInvariantError("unknown op %v", op)
	}
	c := s.caches[core]
	stat := s.stats[core]
	stat.accesses.Inc()

	index, tag := c.decode(addr)
	wordsPerBlock := uint64(s.cfg.wordsPerBlock())

	line, pos := c.lookup(index, tag)
	if line == nil {
		return s.handleMiss(c, stat, index, tag, op, wordsPerBlock)
	}
	return s.handleHit(c, stat, index, pos, line, op)
}

// handleHit resolves a tag match with a valid resident line.
func (s *Simulator) handleHit(c *Cache, stat *CacheStat, index, pos int, line *Line, op cmn.Op) error {
	if line.state == cmn.Invalid {
		// A resident-but-Invalid line behaves like a miss: fall through
		// to the miss path, reusing its slot.
		return s.handleInvalidResident(c, stat, index, pos, line, op)
	}

	switch op {
	case cmn.Load:
		c.sets[index].touch(pos)
	case cmn.Store:
		if line.state == cmn.Shared {
			s.engine.invalidatePeerShared(c.coreID, line.tag, index)
			stat.broadcasts.Inc()
		}
		line.state = cmn.Modified
		c.sets[index].touch(pos)
	default:
		return newInvariantError("unknown op %v", op)
	}
	return nil
}

// handleInvalidResident covers the edge case of a line physically
// present in the set but logically Invalid: treated as a miss, reusing
// the slot rather than growing the set.
func (s *Simulator) handleInvalidResident(c *Cache, stat *CacheStat, index, pos int, line *Line, op cmn.Op) error {
	stat.misses.Inc()
	stat.broadcasts.Inc()
	wordsPerBlock := uint64(s.cfg.wordsPerBlock())
	stat.demandFetches.Add(wordsPerBlock)

	state := s.deriveInstallState(c.coreID, line.tag, index, op)
	line.state = state
	c.sets[index].touch(pos)
	return nil
}

// handleMiss covers the case of no resident valid line for this tag: a
// set with room installs directly, a full set must evict its LRU tail
// first.
func (s *Simulator) handleMiss(c *Cache, stat *CacheStat, index int, tag uint64, op cmn.Op, wordsPerBlock uint64) error {
	stat.misses.Inc()
	stat.broadcasts.Inc()
	stat.demandFetches.Add(wordsPerBlock)

	state := s.deriveInstallState(c.coreID, tag, index, op)

	if c.sets[index].len() < c.associativity {
		c.install(index, tag, state)
		return nil
	}

	stat.replacements.Inc()
	victim := c.sets[index].tail()
	if victim.state == cmn.Modified {
		stat.copiesBack.Add(wordsPerBlock)
	}
	c.evictThenInstall(index, tag, state)
	return nil
}

// deriveInstallState runs the peer-probe protocol for a miss
// installation and returns the state the new line should be installed
// in.
func (s *Simulator) deriveInstallState(coreID int, tag uint64, index int, op cmn.Op) cmn.State {
	switch op {
	case cmn.Load:
		return s.engine.probeLoadMiss(coreID, tag, index)
	case cmn.Store:
		s.engine.probeStoreMiss(coreID, tag, index)
		return cmn.Modified
	default:
		return cmn.Invalid
	}
}
