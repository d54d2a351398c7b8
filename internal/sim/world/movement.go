package world

// systemMovement advances every agent not locked in a conversation.
// Runs after the pairing scan so freshly paired agents stay put.
func (w *World) systemMovement() {
	for _, a := range w.agents {
		w.moveAgentRandomly(a)
	}
}

// moveAgentRandomly takes one random-walk step: filter the four cardinal
// neighbors to walkable cells and pick uniformly among them. Staying put
// because nothing is walkable is not an error.
func (w *World) moveAgentRandomly(a *Agent) bool {
	if a.InConversation {
		return false
	}
	var walkable []Vec2i
	for _, d := range neighborOffsets {
		x, y := a.Pos.X+d.X, a.Pos.Y+d.Y
		if c := w.CellAt(x, y); c != nil && c.Kind == CellWalkable {
			walkable = append(walkable, Vec2i{X: x, Y: y})
		}
	}
	if len(walkable) == 0 {
		return false
	}
	p := walkable[w.rng.Intn(len(walkable))]
	return w.moveAgent(a, p.X, p.Y)
}

// moveAgent re-validates conversation status and walkability before
// committing. The re-check guards against lifecycle updates interleaved
// earlier in the same frame.
func (w *World) moveAgent(a *Agent, x, y int) bool {
	if a.InConversation {
		return false
	}
	dst := w.CellAt(x, y)
	if dst == nil || dst.Kind != CellWalkable {
		return false
	}
	if src := w.CellAt(a.Pos.X, a.Pos.Y); src != nil && src.Agent == a {
		src.Kind = CellWalkable
		src.Agent = nil
	}
	dst.Kind = CellAgent
	dst.Agent = a
	a.Pos = Vec2i{X: x, Y: y}
	return true
}
