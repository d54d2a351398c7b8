package world

import "time"

type WorldConfig struct {
	ID         string
	TickRateHz int
	GridSize   int
	Seed       int64 // 0 means seed from the clock

	// Post-conversation refractory period.
	CooldownTicks int
	// Delay between a conversation completing and its close, so the
	// rendering layer can show the pair disengaging.
	EndDelayTicks int
	// Closed-conversation retention before cleanup evicts them.
	RetentionMax      time.Duration
	CleanupEveryTicks int
}

// DefaultObstacles is the standard booth layout for the 10x10 fair floor.
var DefaultObstacles = [10]Vec2i{
	{X: 2, Y: 2},
	{X: 2, Y: 3},
	{X: 3, Y: 7},
	{X: 4, Y: 8},
	{X: 5, Y: 5},
	{X: 6, Y: 2},
	{X: 6, Y: 6},
	{X: 7, Y: 8},
	{X: 8, Y: 3},
	{X: 8, Y: 7},
}

func (c *WorldConfig) applyDefaults() {
	if c.ID == "" {
		c.ID = "fair_1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 5
	}
	if c.GridSize <= 0 {
		c.GridSize = 10
	}
	if c.CooldownTicks <= 0 {
		c.CooldownTicks = 5
	}
	if c.EndDelayTicks <= 0 {
		c.EndDelayTicks = 10
	}
	if c.RetentionMax <= 0 {
		c.RetentionMax = 5 * time.Minute
	}
	if c.CleanupEveryTicks <= 0 {
		c.CleanupEveryTicks = 60
	}
}
