package mesi

// set is the bounded, MRU-ordered sequence of lines backing one (core,
// index) bucket. lines[0] is MRU; lines[len-1] is the eviction
// candidate. Associativity is always small in practice, so a plain
// slice with linear scans is cheaper and simpler than a pointer-linked
// list, and it sidesteps prev/next pointer bookkeeping entirely.
type set struct {
	lines []*Line
}

// lookup returns the line tagged tag, scanning head-to-tail until a
// match is found or the set is exhausted - unconditionally, never
// stopping short on a sentinel position.
func (s *set) lookup(tag uint64) (*Line, int) {
	for i, l := range s.lines {
		if l.tag == tag {
			return l, i
		}
	}
	return nil, -1
}

// insertHead adds l as the new MRU entry. Callers must ensure
// len(s.lines) < associativity before calling; full sets go through
// evictThenInstall instead.
func (s *set) insertHead(l *Line) {
	s.lines = append([]*Line{l}, s.lines...)
}

// unlinkAt removes the line at position i.
func (s *set) unlinkAt(i int) {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// touch moves the line at position i to MRU. A no-op when the set has
// only one line.
func (s *set) touch(i int) {
	if len(s.lines) <= 1 {
		return
	}
	l := s.lines[i]
	s.unlinkAt(i)
	s.insertHead(l)
}

// tail returns the LRU (eviction-candidate) line, or nil if the set is
// empty.
func (s *set) tail() *Line {
	if len(s.lines) == 0 {
		return nil
	}
	return s.lines[len(s.lines)-1]
}

// evictTail removes and returns the LRU line.
func (s *set) evictTail() *Line {
	n := len(s.lines)
	victim := s.lines[n-1]
	s.lines = s.lines[:n-1]
	return victim
}

// len reports the number of lines currently resident, including any
// left in the Invalid state by a peer invalidation.
func (s *set) len() int { return len(s.lines) }

// forEach visits every line in the set, MRU-first. Used by flush and by
// invariant checks in tests.
func (s *set) forEach(fn func(*Line)) {
	for _, l := range s.lines {
		fn(l)
	}
}

// assertDistinctTags is a development-time invariant check that no two
// resident lines share a tag; it is exercised by tests, not by the hot
// access path.
func (s *set) assertDistinctTags() bool {
	seen := make(map[uint64]struct{}, len(s.lines))
	for _, l := range s.lines {
		if _, dup := seen[l.tag]; dup {
			return false
		}
		seen[l.tag] = struct{}{}
	}
	return true
}
