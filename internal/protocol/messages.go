package protocol

// SUBSCRIBE (observer -> server)
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
}

// Bootstrap (observer HTTP GET)
type BootstrapResponse struct {
	ProtocolVersion string      `json:"protocol_version"`
	FairID          string      `json:"fair_id"`
	Tick            uint64      `json:"tick"`
	WorldParams     WorldParams `json:"world_params"`
}

type WorldParams struct {
	TickRateHz int   `json:"tick_rate_hz"`
	GridSize   int   `json:"grid_size"`
	Seed       int64 `json:"seed"`
}

// TICK (server -> observer), one per frame.
type TickMsg struct {
	Type            string        `json:"type"`
	ProtocolVersion string        `json:"protocol_version"`
	Snapshot        StateSnapshot `json:"snapshot"`
}

// StateSnapshot is the read-only copy of the world handed to the
// rendering layer each frame.
type StateSnapshot struct {
	FairID        string                 `json:"fair_id"`
	Tick          uint64                 `json:"tick"`
	GridSize      int                    `json:"grid_size"`
	Cells         []CellSnapshot         `json:"cells"`
	Agents        []AgentSnapshot        `json:"agents"`
	Conversations []ConversationSnapshot `json:"conversations"`
}

// CellSnapshot covers the non-walkable cells; anything absent is
// walkable floor.
type CellSnapshot struct {
	X              int    `json:"x"`
	Y              int    `json:"y"`
	Kind           string `json:"kind"`
	AgentID        int    `json:"agent_id,omitempty"`
	ObstacleID     string `json:"obstacle_id,omitempty"`
	InConversation bool   `json:"in_conversation,omitempty"`
}

type AgentSnapshot struct {
	ID             int        `json:"id"`
	Kind           string     `json:"kind"`
	Name           string     `json:"name,omitempty"`
	X              int        `json:"x"`
	Y              int        `json:"y"`
	InConversation bool       `json:"in_conversation"`
	PartnerID      int        `json:"partner_id,omitempty"`
	ConversationID string     `json:"conversation_id,omitempty"`
	CooldownTicks  int        `json:"cooldown_ticks,omitempty"`
	Stats          StatsBlock `json:"stats"`
}

type StatsBlock struct {
	GPA                float64  `json:"gpa,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	ExperienceYears    int      `json:"experience_years,omitempty"`
	Companies          []string `json:"companies,omitempty"`
	Networking         int      `json:"networking,omitempty"`
	Energy             int      `json:"energy,omitempty"`
	Company            string   `json:"company,omitempty"`
	Requirements       []string `json:"requirements,omitempty"`
	ExperienceRequired int      `json:"experience_required,omitempty"`
	JobOffers          int      `json:"job_offers,omitempty"`
	RecruitersSpokenTo int      `json:"recruiters_spoken_to,omitempty"`
}

type ConversationSnapshot struct {
	ID           string  `json:"id"`
	Participants [2]int  `json:"participants"`
	Type         string  `json:"conversation_type"`
	DurationMs   int64   `json:"duration_ms"`
	Quality      float64 `json:"quality"`
	Messages     int     `json:"messages"`
	Complete     bool    `json:"complete"`
}
