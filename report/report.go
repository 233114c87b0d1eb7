// Package report renders a Simulator's per-core and aggregate statistics
// as JSON or as a human-readable table, external to the mesi core.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/kal667/mesisim/mesi"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CoreReport is one core's slice of the final statistics.
type CoreReport struct {
	Core         int     `json:"core"`
	Accesses     uint64  `json:"accesses"`
	Misses       uint64  `json:"misses"`
	MissRate     float64 `json:"miss_rate"`
	HitRate      float64 `json:"hit_rate"`
	Replacements uint64  `json:"replacements"`
}

// Report is the full end-of-run output: one CoreReport per core plus
// the aggregate interconnect-traffic counters.
type Report struct {
	Cores            []CoreReport `json:"cores"`
	DemandFetchWords uint64       `json:"demand_fetch_words"`
	Broadcasts       uint64       `json:"broadcasts"`
	CopiesBackWords  uint64       `json:"copies_back_words"`
}

// Build assembles a Report from the Simulator's current statistics. It
// does not call sim.Flush(); callers that want end-of-run writebacks
// charged should flush first.
func Build(sim *mesi.Simulator) Report {
	var rep Report
	rep.Cores = make([]CoreReport, sim.NumCores())
	for i := 0; i < sim.NumCores(); i++ {
		st := sim.Stat(i)
		rep.Cores[i] = CoreReport{
			Core:         i,
			Accesses:     st.Accesses(),
			Misses:       st.Misses(),
			MissRate:     st.MissRate(),
			HitRate:      st.HitRate(),
			Replacements: st.Replacements(),
		}
		rep.DemandFetchWords += st.DemandFetches()
		rep.Broadcasts += st.Broadcasts()
		rep.CopiesBackWords += st.CopiesBack()
	}
	return rep
}

// MarshalJSON renders the report via jsoniter.
func (r Report) MarshalJSON() ([]byte, error) {
	type alias Report
	return json.Marshal(alias(r))
}

// WriteTable renders the report as an aligned table, the CLI's default
// human-readable output.
func (r Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CORE\tACCESSES\tMISSES\tMISS RATE\tHIT RATE\tREPLACEMENTS")
	for _, c := range r.Cores {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.4f\t%.4f\t%d\n",
			c.Core, c.Accesses, c.Misses, c.MissRate, c.HitRate, c.Replacements)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TRAFFIC")
	fmt.Fprintf(w, "  demand fetch (words): %d\n", r.DemandFetchWords)
	fmt.Fprintf(w, "  broadcasts:           %d\n", r.Broadcasts)
	fmt.Fprintf(w, "  copies back (words):  %d\n", r.CopiesBackWords)
	return nil
}
