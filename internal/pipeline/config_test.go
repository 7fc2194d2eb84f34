package pipeline

import (
	"testing"

	"github.com/jmylchreest/pbn/internal/colour"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "one colour", mutate: func(c *Config) { c.Colours = 1 }},
		{name: "max colours", mutate: func(c *Config) { c.Colours = colour.MaxPaletteSize }},
		{name: "zero colours", mutate: func(c *Config) { c.Colours = 0 }, wantErr: true},
		{name: "too many colours", mutate: func(c *Config) { c.Colours = colour.MaxPaletteSize + 1 }, wantErr: true},
		{name: "negative threshold", mutate: func(c *Config) { c.AlphaThreshold = -1 }, wantErr: true},
		{name: "threshold too large", mutate: func(c *Config) { c.AlphaThreshold = 256 }, wantErr: true},
		{name: "unknown algorithm", mutate: func(c *Config) { c.Algorithm = "octree" }, wantErr: true},
		{name: "bad levels", mutate: func(c *Config) { c.Levels = 1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigWithEnv(t *testing.T) {
	t.Setenv(EnvColours, "32")
	t.Setenv(EnvAlgorithm, "mediancut")
	t.Setenv(EnvAlphaThreshold, "10")

	cfg, err := DefaultConfig().WithEnv()
	if err != nil {
		t.Fatalf("WithEnv() error = %v", err)
	}
	if cfg.Colours != 32 || cfg.Algorithm != colour.AlgorithmMedianCut || cfg.AlphaThreshold != 10 {
		t.Errorf("WithEnv() = %+v", cfg)
	}
	if cfg.Levels != colour.DefaultLevels {
		t.Errorf("Levels = %d, want default to be kept", cfg.Levels)
	}
}

func TestConfigWithEnvInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvColours, "many"},
		{EnvAlphaThreshold, "half"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := DefaultConfig().WithEnv(); err == nil {
				t.Errorf("WithEnv() error = nil for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestInputRejectedError(t *testing.T) {
	err := &InputRejectedError{Colours: 200, Limit: 128, Reason: "too many colours"}
	want := "input rejected: too many colours (200 colours, limit 128)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
