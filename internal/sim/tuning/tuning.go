package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	FairID     string `yaml:"fair_id"`
	TickRateHz int    `yaml:"tick_rate_hz"`
	GridSize   int    `yaml:"grid_size"`

	Students   int `yaml:"students"`
	Recruiters int `yaml:"recruiters"`

	CooldownTicks     int `yaml:"cooldown_ticks"`
	EndDelayTicks     int `yaml:"end_delay_ticks"`
	RetentionSeconds  int `yaml:"retention_seconds"`
	CleanupEveryTicks int `yaml:"cleanup_every_ticks"`

	TurnDelayMs int `yaml:"turn_delay_ms"`

	// Obstacle positions; empty means the standard booth layout.
	Obstacles [][2]int `yaml:"obstacles"`
}

func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.applyDefaults()
	return t, nil
}

func Defaults() Tuning {
	t := Tuning{}
	t.applyDefaults()
	return t
}

func (t *Tuning) applyDefaults() {
	if t.FairID == "" {
		t.FairID = "fair_1"
	}
	if t.TickRateHz <= 0 {
		t.TickRateHz = 5
	}
	if t.GridSize <= 0 {
		t.GridSize = 10
	}
	if t.Students <= 0 {
		t.Students = 8
	}
	if t.Recruiters <= 0 {
		t.Recruiters = 4
	}
	if t.CooldownTicks <= 0 {
		t.CooldownTicks = 5
	}
	if t.EndDelayTicks <= 0 {
		t.EndDelayTicks = 10
	}
	if t.RetentionSeconds <= 0 {
		t.RetentionSeconds = 300
	}
	if t.CleanupEveryTicks <= 0 {
		t.CleanupEveryTicks = 60
	}
	if t.TurnDelayMs <= 0 {
		t.TurnDelayMs = 800
	}
}
