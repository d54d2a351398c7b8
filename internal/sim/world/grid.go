package world

import "fmt"

// Vec2i is an integer grid position.
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type CellKind uint8

const (
	CellWalkable CellKind = iota
	CellObstacle
	CellAgent
)

func (k CellKind) String() string {
	switch k {
	case CellObstacle:
		return "OBSTACLE"
	case CellAgent:
		return "AGENT"
	default:
		return "WALKABLE"
	}
}

// Cell is one tile of the fair floor. A cell holds at most one occupant;
// Agent and Obstacle are never both set.
type Cell struct {
	Kind     CellKind
	Agent    *Agent
	Obstacle *Obstacle
}

// Obstacle is a static blocker (a booth or a wall segment).
type Obstacle struct {
	ID  string
	Pos Vec2i
}

// neighborOffsets is the fixed cardinal scan order: up, down, left,
// right. Pairing and movement both depend on this order being stable.
var neighborOffsets = [4]Vec2i{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < w.size && y >= 0 && y < w.size
}

// CellAt returns the cell at (x, y), or nil outside the grid.
func (w *World) CellAt(x, y int) *Cell {
	if !w.InBounds(x, y) {
		return nil
	}
	return &w.cells[y*w.size+x]
}

// AgentAt returns the agent occupying (x, y), or nil.
func (w *World) AgentAt(x, y int) *Agent {
	c := w.CellAt(x, y)
	if c == nil {
		return nil
	}
	return c.Agent
}

// AddObstacle places a static obstacle. Returns false when the position
// is out of bounds or already occupied.
func (w *World) AddObstacle(x, y int) bool {
	c := w.CellAt(x, y)
	if c == nil || c.Kind != CellWalkable {
		return false
	}
	o := &Obstacle{
		ID:  fmt.Sprintf("obstacle_%d_%d", x, y),
		Pos: Vec2i{X: x, Y: y},
	}
	c.Kind = CellObstacle
	c.Obstacle = o
	return true
}

// AddAgent places a new agent with zero-valued stats. Returns nil when
// the position is out of bounds or occupied.
func (w *World) AddAgent(x, y int, kind AgentKind) *Agent {
	return w.AddAgentWithStats(x, y, kind, Stats{})
}

// AddAgentWithStats places a new agent with the given attribute bag.
// IDs are sequential from 1 in placement order.
func (w *World) AddAgentWithStats(x, y int, kind AgentKind, stats Stats) *Agent {
	c := w.CellAt(x, y)
	if c == nil || c.Kind != CellWalkable {
		return nil
	}
	w.nextAgentID++
	a := &Agent{
		ID:    w.nextAgentID,
		Kind:  kind,
		Name:  fmt.Sprintf("%s_%d", kind, w.nextAgentID),
		Pos:   Vec2i{X: x, Y: y},
		Stats: stats,
	}
	c.Kind = CellAgent
	c.Agent = a
	w.agents = append(w.agents, a)
	w.agentsByID[a.ID] = a
	return a
}

// Agents returns the live agent list in placement order. World-loop
// goroutine only.
func (w *World) Agents() []*Agent { return w.agents }

// ActiveConversations returns the open conversations. World-loop
// goroutine only.
func (w *World) ActiveConversations() []*Conversation {
	out := make([]*Conversation, 0, len(w.active))
	for _, c := range w.active {
		out = append(out, c)
	}
	return out
}
