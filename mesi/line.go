// Package mesi implements the coupled per-core set-associative cache and
// cross-core MESI coherence engine that is the core of the simulator.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package mesi

import "github.com/kal667/mesisim/cmn"

// Line is one cached block: an address tag and its MESI state. A Line's
// identity is (owning core, set index, tag) - it never moves between
// cores or sets, only between positions within its set's LRU ordering.
type Line struct {
	tag   uint64
	state cmn.State
}

func (l *Line) Tag() uint64      { return l.tag }
func (l *Line) State() cmn.State { return l.state }
