package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsLoadAndValidate(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.Sim.DayLength != 10.0 {
		t.Errorf("day_length = %v, want 10.0", cfg.Sim.DayLength)
	}
	if cfg.Population.Initial != 10 {
		t.Errorf("population.initial = %d, want 10", cfg.Population.Initial)
	}
	if cfg.Food.Batch != 100 {
		t.Errorf("food.batch = %d, want 100", cfg.Food.Batch)
	}
}

func TestDerivedCostPerDistance(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// With day 10, night 2, movement speed 150 the derived cost is
	// 1/(12*150): a founder-speed agent moving for a full cycle spends
	// exactly the base energy.
	want := float32(1.0 / 12.0 / 150.0)
	got := cfg.Derived.CostPerDistance32
	if got < want*0.999 || got > want*1.001 {
		t.Errorf("derived cost per distance = %v, want %v", got, want)
	}

	// An explicit cost overrides the derivation.
	cfg.Energy.CostPerDistance = 0.01
	cfg.computeDerived()
	if cfg.Derived.CostPerDistance32 != 0.01 {
		t.Errorf("explicit cost per distance = %v, want 0.01", cfg.Derived.CostPerDistance32)
	}
}

func TestWorldDefaultsToScreen(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Derived.WorldW32 != float32(cfg.Screen.Width) {
		t.Errorf("world width = %v, want screen width %d", cfg.Derived.WorldW32, cfg.Screen.Width)
	}
	if cfg.Derived.WorldH32 != float32(cfg.Screen.Height) {
		t.Errorf("world height = %v, want screen height %d", cfg.Derived.WorldH32, cfg.Screen.Height)
	}
}

func TestValidateRejectsNonPositive(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"zero day length", "sim:\n  day_length: 0\n", "sim.day_length"},
		{"negative night length", "sim:\n  night_length: -2\n", "sim.night_length"},
		{"zero movement speed", "movement:\n  speed: 0\n", "movement.speed"},
		{"zero base energy", "energy:\n  base: 0\n", "energy.base"},
		{"zero population", "population:\n  initial: 0\n", "population.initial"},
		{"negative mutation intensity", "traits:\n  mutation_intensity: -0.1\n", "traits.mutation_intensity"},
		{"zero contact radius", "food:\n  contact_radius: 0\n", "food.contact_radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("writing config: %v", err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatalf("Load accepted invalid config %q", tt.yaml)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %s", err, tt.field)
			}
		})
	}
}

func TestUserConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "sim:\n  day_length: 30\npopulation:\n  initial: 50\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sim.DayLength != 30 {
		t.Errorf("day_length = %v, want 30", cfg.Sim.DayLength)
	}
	if cfg.Population.Initial != 50 {
		t.Errorf("population.initial = %d, want 50", cfg.Population.Initial)
	}
	// Untouched fields keep their defaults.
	if cfg.Sim.NightLength != 2.0 {
		t.Errorf("night_length = %v, want default 2.0", cfg.Sim.NightLength)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.Sim.DayLength = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if loaded.Sim.DayLength != 42 {
		t.Errorf("round-tripped day_length = %v, want 42", loaded.Sim.DayLength)
	}
}
