package config

import (
	"strings"
	"testing"

	"github.com/danieldk/morphotag/params"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
model = "morph.bin"
estimator = "ML"
delta = 0.25
`), true)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Model != "morph.bin" {
		t.Errorf("got Model %q, want morph.bin", cfg.Model)
	}
	if cfg.Estimator != ML {
		t.Errorf("got Estimator %q, want ML", cfg.Estimator)
	}
	if cfg.Delta != 0.25 {
		t.Errorf("got Delta %v, want 0.25", cfg.Delta)
	}
	// Everything else keeps the documented default.
	if cfg.MaxTrainPasses != 50 {
		t.Errorf("got MaxTrainPasses %v, want the default of 50", cfg.MaxTrainPasses)
	}
}

func TestParseStrictRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader(`typo_key = 1`), true)
	if err == nil {
		t.Fatal("expected an error for an unrecognized key in strict mode")
	}
}

func TestParseNonStrictAllowsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader(`typo_key = 1`), false)
	if err != nil {
		t.Fatalf("non-strict parse should tolerate unknown keys, got %v", err)
	}
}

func TestDegreeResolution(t *testing.T) {
	cfg := Default()
	cfg.SubLabelOrder = "ZEROTH"
	cfg.ModelOrder = "FIRST"

	if cfg.SubLabelDegree() != params.Zeroth {
		t.Errorf("got %v, want Zeroth", cfg.SubLabelDegree())
	}
	if cfg.ModelDegree() != params.First {
		t.Errorf("got %v, want First", cfg.ModelDegree())
	}
}
