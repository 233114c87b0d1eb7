package trace_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kal667/mesisim/cmn"
	"github.com/kal667/mesisim/mesi"
	"github.com/kal667/mesisim/trace"
)

func TestReadAllParsesWellFormedTrace(t *testing.T) {
	input := `
# a comment
0 0x00 L
0 0x10 S

1 16 load
`
	events, err := trace.ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := []mesi.Access{
		{Core: 0, Addr: 0x00, Op: cmn.Load},
		{Core: 0, Addr: 0x10, Op: cmn.Store},
		{Core: 1, Addr: 16, Op: cmn.Load},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, ev := range events {
		if ev != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, ev, want[i])
		}
	}
}

func TestReadAllRejectsMalformedLine(t *testing.T) {
	input := "0 0x00 L\nbogus line here\n0 0x10 S\n"
	_, err := trace.ReadAll(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected a decode error")
	}
	var decErr *trace.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *trace.DecodeError, got %T: %v", err, err)
	}
	if decErr.Line != 1 {
		t.Fatalf("DecodeError.Line = %d, want 1", decErr.Line)
	}
}

func TestReadAllRejectsUnknownOp(t *testing.T) {
	_, err := trace.ReadAll(strings.NewReader("0 0x00 F\n"))
	if err == nil {
		t.Fatal("expected a decode error for unknown op")
	}
}

func TestReadAllEmptyInput(t *testing.T) {
	events, err := trace.ReadAll(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
}
