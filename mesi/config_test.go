package mesi_test

import (
	"testing"

	"github.com/kal667/mesisim/mesi"
)

func TestValidateRejectsNonPowerOfTwoBlockSize(t *testing.T) {
	cfg := mesi.Config{NumCores: 1, CacheSizeBytes: 48, BlockSizeBytes: 12, Associativity: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-power-of-two block size")
	}
}

func TestValidateRejectsZeroAssociativity(t *testing.T) {
	cfg := mesi.Config{NumCores: 1, CacheSizeBytes: 32, BlockSizeBytes: 16, Associativity: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero associativity")
	}
}

func TestValidateRejectsTooManyCores(t *testing.T) {
	cfg := mesi.Config{NumCores: mesi.MaxCores + 1, CacheSizeBytes: 32, BlockSizeBytes: 16, Associativity: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for num_cores beyond MaxCores")
	}
}

func TestValidateRejectsMismatchedAssociativity(t *testing.T) {
	// 3 blocks total (48/16), associativity 2 does not divide evenly.
	cfg := mesi.Config{NumCores: 1, CacheSizeBytes: 48, BlockSizeBytes: 16, Associativity: 2}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for associativity not dividing block count")
	}
}

func TestValidateAcceptsDefaultConfig(t *testing.T) {
	if err := mesi.DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() should validate, got %v", err)
	}
}

func TestNewSimulatorRejectsInvalidConfig(t *testing.T) {
	_, err := mesi.NewSimulator(mesi.Config{})
	if err == nil {
		t.Fatal("expected NewSimulator to reject the zero-value config")
	}
}
