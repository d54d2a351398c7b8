package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_OverridesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	raw := []byte(`
fair_id: winter_expo
grid_size: 16
students: 12
obstacles:
  - [1, 1]
  - [2, 2]
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tune, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tune.FairID != "winter_expo" || tune.GridSize != 16 || tune.Students != 12 {
		t.Fatalf("overrides lost: %+v", tune)
	}
	// Unset keys fall back to defaults.
	if tune.TickRateHz != 5 || tune.Recruiters != 4 || tune.TurnDelayMs != 800 {
		t.Fatalf("defaults missing: %+v", tune)
	}
	if len(tune.Obstacles) != 2 || tune.Obstacles[1] != [2]int{2, 2} {
		t.Fatalf("obstacles: %v", tune.Obstacles)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	tune, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
	if d := Defaults(); tune.FairID != d.FairID || tune.GridSize != d.GridSize || tune.Students != d.Students {
		t.Fatalf("missing file did not yield defaults: %+v", tune)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("grid_size: [not an int"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.FairID != "fair_1" || d.GridSize != 10 || d.Students != 8 || d.Recruiters != 4 {
		t.Fatalf("defaults: %+v", d)
	}
	if d.CooldownTicks != 5 || d.EndDelayTicks != 10 || d.RetentionSeconds != 300 || d.CleanupEveryTicks != 60 {
		t.Fatalf("lifecycle defaults: %+v", d)
	}
	if len(d.Obstacles) != 0 {
		t.Fatalf("defaults should not pin an obstacle layout")
	}
}
