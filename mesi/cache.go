package mesi

import "github.com/kal667/mesisim/cmn"

// Cache is one core's unified, set-associative store. It owns its sets
// and exclusively owns every Line living in them; peer caches only ever
// reach in through the coherence engine (coherence.go), never directly.
type Cache struct {
	coreID         int
	nSets          int
	associativity  int
	blockSizeBytes int
	indexMask      uint64
	indexShift     uint
	sets           []set
}

func newCache(coreID int, cfg Config) *Cache {
	nSets := cfg.nSets()
	indexShift := uint(cmn.Log2(cfg.BlockSizeBytes))
	indexMask := uint64(nSets-1) << indexShift
	return &Cache{
		coreID:         coreID,
		nSets:          nSets,
		associativity:  cfg.Associativity,
		blockSizeBytes: cfg.BlockSizeBytes,
		indexMask:      indexMask,
		indexShift:     indexShift,
		sets:           make([]set, nSets),
	}
}

// CoreID returns the core this cache belongs to.
func (c *Cache) CoreID() int { return c.coreID }

// decode splits addr into (index, tag): index = (addr & indexMask) >>
// indexShift, tag = addr >> (indexShift + log2(nSets)).
func (c *Cache) decode(addr uint64) (index int, tag uint64) {
	index = int((addr & c.indexMask) >> c.indexShift)
	tag = addr >> (c.indexShift + uint(cmn.Log2(c.nSets)))
	return index, tag
}

// lookup returns the line tagged tag within the set at index, and its
// position for touch/unlink, or (nil, -1) on a miss.
func (c *Cache) lookup(index int, tag uint64) (*Line, int) {
	return c.sets[index].lookup(tag)
}

// LookupForTest exposes lookup for tests and invariant checks outside
// the package; it intentionally does not expose the internal slot
// position.
func (c *Cache) LookupForTest(index int, tag uint64) (*Line, bool) {
	l, pos := c.lookup(index, tag)
	return l, pos >= 0
}

// NSets returns the number of sets, for tests walking every (set, line).
func (c *Cache) NSets() int { return c.nSets }

// Associativity returns the ways per set.
func (c *Cache) Associativity() int { return c.associativity }

// SetLen returns the number of resident lines in the set at index.
func (c *Cache) SetLen(index int) int { return c.sets[index].len() }

// ForEachLine visits every resident line in the set at index, MRU-first.
func (c *Cache) ForEachLine(index int, fn func(*Line)) {
	c.sets[index].forEach(fn)
}

// DistinctTags reports whether every resident line in the set at index
// has a distinct tag.
func (c *Cache) DistinctTags(index int) bool {
	return c.sets[index].assertDistinctTags()
}

// install adds a new line at MRU within the set at index. The caller
// must have verified the set has room (len < associativity); a full
// set goes through evictThenInstall instead.
func (c *Cache) install(index int, tag uint64, state cmn.State) *Line {
	l := &Line{tag: tag, state: state}
	c.sets[index].insertHead(l)
	return l
}

// evictThenInstall evicts the LRU line of the set at index and installs
// a new one in its place at MRU, returning the evicted line so the
// caller can charge a writeback if it was Modified.
func (c *Cache) evictThenInstall(index int, tag uint64, state cmn.State) (evicted *Line, installed *Line) {
	evicted = c.sets[index].evictTail()
	installed = c.install(index, tag, state)
	return evicted, installed
}
