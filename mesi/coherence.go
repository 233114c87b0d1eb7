package mesi

import "github.com/kal667/mesisim/cmn"

// engine is the cross-core MESI coherence primitive. It holds no state
// of its own; it operates on the fleet of caches handed to it for the
// duration of a single access.
type engine struct {
	fleet []*Cache
}

// peerTransition searches every core other than requestingCore for a
// line tagged tag in the set at index; any match currently in state
// from is moved to state to. All peers are visited unconditionally -
// the engine never short-circuits on the first match - so one logical
// broadcast drives every affected peer atomically. It reports whether
// any peer matched.
func (e *engine) peerTransition(requestingCore int, from, to cmn.State, tag uint64, index int) bool {
	matched := false
	for _, peer := range e.fleet {
		if peer.coreID == requestingCore {
			continue
		}
		if l, _ := peer.lookup(index, tag); l != nil && l.state == from {
			l.state = to
			matched = true
		}
	}
	return matched
}

// probeLoadMiss issues the fixed Load-miss peer-probe sequence:
// Modified->Shared, Exclusive->Shared, Shared->Shared (a presence
// query), in that order, and reports the installed state for the
// requester: Shared if any peer held the block, Exclusive otherwise.
func (e *engine) probeLoadMiss(requestingCore int, tag uint64, index int) cmn.State {
	fromModified := e.peerTransition(requestingCore, cmn.Modified, cmn.Shared, tag, index)
	fromExclusive := e.peerTransition(requestingCore, cmn.Exclusive, cmn.Shared, tag, index)
	fromShared := e.peerTransition(requestingCore, cmn.Shared, cmn.Shared, tag, index)
	if fromModified || fromExclusive || fromShared {
		return cmn.Shared
	}
	return cmn.Exclusive
}

// probeStoreMiss issues the fixed Store-miss (write-allocate)
// peer-probe sequence: Modified->Invalid, Shared->Invalid,
// Exclusive->Invalid. The requester always installs Modified.
func (e *engine) probeStoreMiss(requestingCore int, tag uint64, index int) {
	e.peerTransition(requestingCore, cmn.Modified, cmn.Invalid, tag, index)
	e.peerTransition(requestingCore, cmn.Shared, cmn.Invalid, tag, index)
	e.peerTransition(requestingCore, cmn.Exclusive, cmn.Invalid, tag, index)
}

// invalidatePeerShared invalidates every peer copy of (tag, index)
// currently Shared, for the write-hit-on-Shared upgrade path.
// It reports whether any peer was invalidated; the driver charges the
// broadcast either way.
func (e *engine) invalidatePeerShared(requestingCore int, tag uint64, index int) bool {
	return e.peerTransition(requestingCore, cmn.Shared, cmn.Invalid, tag, index)
}
