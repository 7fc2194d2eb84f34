package cli

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/pbn/internal/colour"
	"github.com/jmylchreest/pbn/internal/pipeline"
	"github.com/jmylchreest/pbn/internal/seed"
)

func TestAlgorithmValue(t *testing.T) {
	var v algorithmValue
	if err := v.Set("mediancut"); err != nil {
		t.Fatalf("Set(mediancut) error = %v", err)
	}
	if v.String() != "mediancut" {
		t.Errorf("String() = %q, want mediancut", v.String())
	}
	if err := v.Set("octree"); err == nil {
		t.Error("Set(octree) error = nil, want error")
	}
	if v.String() != "mediancut" {
		t.Errorf("failed Set changed value to %q", v.String())
	}
	if v.Type() != "algorithm" {
		t.Errorf("Type() = %q", v.Type())
	}
}

func TestProcessFlagsConfig(t *testing.T) {
	var f processFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs, pipeline.DefaultConfig())

	if err := fs.Parse([]string{"-c", "12", "-a", "uniform", "--levels", "4", "--alpha-threshold", "0", "--seed", "9"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg := f.config()
	if cfg.Colours != 12 || cfg.Algorithm != colour.AlgorithmUniform || cfg.Levels != 4 || cfg.AlphaThreshold != 0 || cfg.Seed != 9 {
		t.Errorf("config() = %+v", cfg)
	}
	if cfg.MaxIterations != colour.DefaultMaxIterations || cfg.Convergence != colour.DefaultConvergence {
		t.Errorf("k-means defaults not kept: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestDefaultConfigReportsBadEnvironment(t *testing.T) {
	t.Setenv(pipeline.EnvColours, "lots")

	got, err := defaultConfig()
	if err == nil {
		t.Fatal("defaultConfig() error = nil, want error for malformed PBN_COLOURS")
	}
	if got != pipeline.DefaultConfig() {
		t.Errorf("defaultConfig() = %+v, want built-in defaults", got)
	}

	var f processFlags
	f.registerDefaults(pflag.NewFlagSet("test", pflag.ContinueOnError))
	if _, err := f.validate(); err == nil {
		t.Error("validate() error = nil, want the environment error")
	}
}

func TestDefaultConfigAppliesEnvironment(t *testing.T) {
	t.Setenv(pipeline.EnvColours, "24")

	got, err := defaultConfig()
	if err != nil {
		t.Fatalf("defaultConfig() error = %v", err)
	}
	if got.Colours != 24 {
		t.Errorf("Colours = %d, want 24", got.Colours)
	}
}

func TestResolveSeedMode(t *testing.T) {
	tests := []struct {
		name    string
		flags   processFlags
		want    seed.Mode
		wantErr bool
	}{
		{name: "default", want: seed.ModeRandom},
		{name: "seed implies manual", flags: processFlags{seed: 5}, want: seed.ModeManual},
		{name: "explicit mode wins", flags: processFlags{seed: 5, seedMode: "content"}, want: seed.ModeContent},
		{name: "unknown mode", flags: processFlags{seedMode: "dice"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.resolveSeedMode()
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveSeedMode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveSeedMode() = %q, want %q", got, tt.want)
			}
		})
	}
}
