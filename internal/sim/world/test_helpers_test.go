package world

import "testing"

// newTestWorld builds a deterministic world with no default obstacles.
func newTestWorld(t *testing.T, size int) *World {
	t.Helper()
	return New(WorldConfig{
		ID:       "test",
		GridSize: size,
		Seed:     42,
	})
}

// pinAgent surrounds a position with obstacles so the agent there can
// never move. Out-of-bounds neighbors are already walls.
func pinAgent(t *testing.T, w *World, a *Agent, except ...Vec2i) {
	t.Helper()
	skip := make(map[Vec2i]bool, len(except))
	for _, p := range except {
		skip[p] = true
	}
	for _, d := range neighborOffsets {
		p := Vec2i{X: a.Pos.X + d.X, Y: a.Pos.Y + d.Y}
		if skip[p] || !w.InBounds(p.X, p.Y) {
			continue
		}
		if c := w.CellAt(p.X, p.Y); c.Kind == CellWalkable {
			w.AddObstacle(p.X, p.Y)
		}
	}
}
