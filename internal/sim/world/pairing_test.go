package world

import (
	"math"
	"testing"
)

func TestPairing_AdjacentStudentRecruiter(t *testing.T) {
	w := newTestWorld(t, 10)
	s := w.AddAgentWithStats(4, 4, KindStudent, Stats{
		GPA:             3.8,
		Skills:          []string{"Python", "SQL"},
		ExperienceYears: 2,
		Energy:          80,
	})
	r := w.AddAgentWithStats(4, 5, KindRecruiter, Stats{
		Company:            "Initech",
		Requirements:       []string{"Python"},
		ExperienceRequired: 1,
	})
	if s == nil || r == nil {
		t.Fatalf("placement failed")
	}

	w.ProcessFrame()

	if len(w.active) != 1 {
		t.Fatalf("active conversations = %d, want 1", len(w.active))
	}
	var c *Conversation
	for _, v := range w.active {
		c = v
	}
	if c.Type != TypeStudentRecruiter {
		t.Fatalf("conversation type = %s, want %s", c.Type, TypeStudentRecruiter)
	}
	if c.Participants != [2]int{s.ID, r.ID} {
		t.Fatalf("participants = %v, want [%d %d]", c.Participants, s.ID, r.ID)
	}
	if c.Quality == 0.3 {
		t.Fatalf("cross-kind pair got the same-kind flat quality")
	}

	for _, a := range []*Agent{s, r} {
		if !a.InConversation {
			t.Fatalf("agent %d not marked in conversation", a.ID)
		}
		if a.ConversationID != c.ID {
			t.Fatalf("agent %d conversation id = %q, want %q", a.ID, a.ConversationID, c.ID)
		}
	}
	if s.PartnerID != r.ID || r.PartnerID != s.ID {
		t.Fatalf("partner ids = %d/%d, want %d/%d", s.PartnerID, r.PartnerID, r.ID, s.ID)
	}

	// Paired agents must not have moved this frame.
	if s.Pos != (Vec2i{X: 4, Y: 4}) || r.Pos != (Vec2i{X: 4, Y: 5}) {
		t.Fatalf("paired agents moved: %v %v", s.Pos, r.Pos)
	}
}

func TestPairing_ClaimedAgentNotReclaimed(t *testing.T) {
	w := newTestWorld(t, 5)
	// A1 scans up first, so it claims A2; A3 is left unpaired because
	// its only neighbor is already taken.
	a1 := w.AddAgent(2, 2, KindStudent)
	a2 := w.AddAgent(2, 1, KindStudent) // up from a1
	a3 := w.AddAgent(2, 3, KindStudent) // down from a1

	w.ProcessFrame()

	if len(w.active) != 1 {
		t.Fatalf("active conversations = %d, want 1", len(w.active))
	}
	var c *Conversation
	for _, v := range w.active {
		c = v
	}
	if c.Participants != [2]int{a1.ID, a2.ID} {
		t.Fatalf("participants = %v, want [%d %d]", c.Participants, a1.ID, a2.ID)
	}
	if a3.InConversation {
		t.Fatalf("third agent should have been left unpaired")
	}
	if c.Type != TypeStudentStudent {
		t.Fatalf("conversation type = %s, want %s", c.Type, TypeStudentStudent)
	}
}

func TestPairing_DiagonalIsNotAdjacent(t *testing.T) {
	w := newTestWorld(t, 5)
	w.AddAgent(1, 1, KindStudent)
	w.AddAgent(2, 2, KindRecruiter)

	// One frame: the pairing scan runs before movement, so at scan time
	// the agents are still diagonal.
	w.ProcessFrame()
	if got := len(w.conversations); got != 0 {
		t.Fatalf("diagonal agents paired: %d conversations", got)
	}
}

func TestPairing_CooldownBlocksRepair(t *testing.T) {
	w := newTestWorld(t, 5)
	a := w.AddAgent(2, 2, KindStudent)
	b := w.AddAgent(2, 3, KindStudent)
	a.CooldownTicks = 3

	w.ProcessFrame()
	if len(w.active) != 0 {
		t.Fatalf("cooling-down agent was paired")
	}
	_ = b
}

func TestConversationQuality(t *testing.T) {
	w := newTestWorld(t, 5)
	approx := func(got, want float64) {
		t.Helper()
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("quality = %v, want %v", got, want)
		}
	}

	s1 := &Agent{Kind: KindStudent}
	s2 := &Agent{Kind: KindStudent}
	approx(w.conversationQuality(s1, s2), 0.3)

	// Half the requirements met, half the required experience.
	s := &Agent{Kind: KindStudent, Stats: Stats{
		Skills:          []string{"Python"},
		ExperienceYears: 2,
	}}
	r := &Agent{Kind: KindRecruiter, Stats: Stats{
		Requirements:       []string{"Python", "SQL"},
		ExperienceRequired: 4,
	}}
	approx(w.conversationQuality(s, r), 0.3+0.5*0.5+0.2*0.5)
	// Argument order must not matter.
	approx(w.conversationQuality(r, s), w.conversationQuality(s, r))

	// No requirements listed: neutral overlap, full sufficiency.
	r2 := &Agent{Kind: KindRecruiter}
	approx(w.conversationQuality(s, r2), 0.3+0.5*0.5+0.2*1.0)

	// Full match caps at 1.0.
	sFull := &Agent{Kind: KindStudent, Stats: Stats{
		Skills:          []string{"Python", "SQL"},
		ExperienceYears: 10,
	}}
	approx(w.conversationQuality(sFull, r), 1.0)
}
