package world

type AgentKind string

const (
	KindStudent   AgentKind = "STUDENT"
	KindRecruiter AgentKind = "RECRUITER"
)

// Agent is a simulated fair attendee occupying exactly one grid cell.
// Position is replaced atomically by moveAgent; conversation fields are
// written only by the conversation lifecycle code.
type Agent struct {
	ID   int
	Kind AgentKind
	Name string

	Pos Vec2i

	InConversation bool
	PartnerID      int    // 0 when idle
	ConversationID string // "" when idle
	CooldownTicks  int    // blocks re-pairing while > 0

	Stats Stats
}

// Stats is the attribute bag read by the scoring engine. It is written
// wholesale at creation (or by the host's resume pipeline) and
// incrementally by scoring via the two counters.
type Stats struct {
	// Student attributes.
	GPA             float64  `json:"gpa,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	Companies       []string `json:"companies,omitempty"`
	Networking      int      `json:"networking,omitempty"`
	Energy          int      `json:"energy,omitempty"`

	// Recruiter attributes.
	Company            string   `json:"company,omitempty"`
	Requirements       []string `json:"requirements,omitempty"`
	ExperienceRequired int      `json:"experience_required,omitempty"`

	// Counters maintained by the scoring engine.
	JobOffers          int `json:"job_offers,omitempty"`
	RecruitersSpokenTo int `json:"recruiters_spoken_to,omitempty"`
}

func (a *Agent) idle() bool {
	return !a.InConversation && a.CooldownTicks == 0
}

// AgentView is the read-only slice of an agent handed to the dialogue
// collaborator when a conversation starts.
type AgentView struct {
	ID   int
	Kind AgentKind
	Name string
}

func viewOf(a *Agent) AgentView {
	return AgentView{ID: a.ID, Kind: a.Kind, Name: a.Name}
}
