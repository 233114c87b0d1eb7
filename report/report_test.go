package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/kal667/mesisim/cmn"
	"github.com/kal667/mesisim/mesi"
	"github.com/kal667/mesisim/report"
)

func TestBuildAggregatesAcrossCores(t *testing.T) {
	cfg := mesi.Config{NumCores: 2, CacheSizeBytes: 16, BlockSizeBytes: 16, Associativity: 1}
	sim, err := mesi.NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}

	if err := sim.PerformAccess(0, 0x00, cmn.Load); err != nil {
		t.Fatalf("access: %v", err)
	}
	if err := sim.PerformAccess(1, 0x00, cmn.Load); err != nil {
		t.Fatalf("access: %v", err)
	}
	sim.Flush()

	rep := report.Build(sim)
	if len(rep.Cores) != 2 {
		t.Fatalf("len(Cores) = %d, want 2", len(rep.Cores))
	}
	if rep.DemandFetchWords != rep.Cores[0].Misses*4+rep.Cores[1].Misses*4 {
		t.Fatalf("DemandFetchWords mismatch: %+v", rep)
	}
	if rep.Broadcasts != 2 {
		t.Fatalf("Broadcasts = %d, want 2", rep.Broadcasts)
	}
}

func TestReportJSONRoundTrip(t *testing.T) {
	cfg := mesi.Config{NumCores: 1, CacheSizeBytes: 32, BlockSizeBytes: 16, Associativity: 2}
	sim, err := mesi.NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	if err := sim.PerformAccess(0, 0x00, cmn.Store); err != nil {
		t.Fatalf("access: %v", err)
	}
	sim.Flush()

	rep := report.Build(sim)
	b, err := rep.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var roundTripped report.Report
	if err := json.Unmarshal(b, &roundTripped); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if roundTripped.Broadcasts != rep.Broadcasts || roundTripped.CopiesBackWords != rep.CopiesBackWords {
		t.Fatalf("round trip mismatch: got %+v, want %+v", roundTripped, rep)
	}
}

func TestWriteTableProducesNonEmptyOutput(t *testing.T) {
	cfg := mesi.DefaultConfig()
	sim, err := mesi.NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	rep := report.Build(sim)

	var buf bytes.Buffer
	if err := rep.WriteTable(&buf); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty table output")
	}
}
