package world

import (
	"fmt"
	"time"
)

// checkForConversations is a greedy single-pass matcher: agents in
// ascending-id order, neighbors in the fixed cardinal order. The first
// eligible adjacent agent claims the pair. Both agents' flags are set
// before the outer loop continues, so a claimed agent can never be
// re-claimed within the same frame.
func (w *World) checkForConversations(nowTick uint64) {
	for _, a := range w.agents {
		if !a.idle() {
			continue
		}
		for _, d := range neighborOffsets {
			b := w.AgentAt(a.Pos.X+d.X, a.Pos.Y+d.Y)
			if b == nil || b == a || !b.idle() {
				continue
			}
			w.startConversation(a, b, nowTick)
			break
		}
	}
}

func (w *World) startConversation(a, b *Agent, nowTick uint64) *Conversation {
	if a.ID == b.ID {
		panic(fmt.Sprintf("world: conversation with self-paired agent %d", a.ID))
	}
	w.nextConvNum++
	c := &Conversation{
		ID:           fmt.Sprintf("C%06d", w.nextConvNum),
		Participants: [2]int{a.ID, b.ID},
		Type:         conversationType(a.Kind, b.Kind),
		StartTime:    time.Now(),
		Quality:      w.conversationQuality(a, b),
		Active:       true,
	}
	w.conversations[c.ID] = c
	w.active[c.ID] = c

	for _, p := range []*Agent{a, b} {
		p.InConversation = true
		p.PartnerID = c.other(p.ID)
		p.ConversationID = c.ID
	}

	// Fire-and-forget: the runner owns its own goroutine and reports
	// back only through the conversation's complete flag.
	if w.dialogue != nil {
		w.dialogue.StartDialogue(c, viewOf(a), viewOf(b))
	}
	return c
}

// conversationQuality scores participant compatibility once, at
// creation. Same-kind pairs get a flat low score; cross-kind pairs are
// scored on requirement overlap and experience sufficiency.
func (w *World) conversationQuality(a, b *Agent) float64 {
	if a.Kind == b.Kind {
		return 0.3
	}
	student, recruiter := a, b
	if student.Kind != KindStudent {
		student, recruiter = b, a
	}

	overlap := 0.5 // neutral default when the recruiter lists nothing
	if n := len(recruiter.Stats.Requirements); n > 0 {
		overlap = float64(matchingSkills(student.Stats.Skills, recruiter.Stats.Requirements)) / float64(n)
	}
	sufficiency := 1.0
	if req := recruiter.Stats.ExperienceRequired; req > 0 {
		sufficiency = float64(student.Stats.ExperienceYears) / float64(req)
		if sufficiency > 1 {
			sufficiency = 1
		}
	}
	q := 0.3 + 0.5*overlap + 0.2*sufficiency
	if q > 1 {
		q = 1
	}
	return q
}

func matchingSkills(skills, requirements []string) int {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[s] = true
	}
	n := 0
	for _, r := range requirements {
		if have[r] {
			n++
		}
	}
	return n
}

// handleConversations ticks every active conversation: refresh duration,
// schedule the delayed close once the dialogue task signals completion,
// close conversations whose delay has elapsed, then re-sync agent flags
// and periodically garbage-collect closed records.
func (w *World) handleConversations(nowTick uint64) {
	for _, c := range w.active {
		c.Duration = time.Since(c.StartTime)
		if c.Complete() && !c.endingScheduled {
			c.endingScheduled = true
			c.endAtTick = nowTick + uint64(w.cfg.EndDelayTicks)
		}
		if c.endingScheduled && nowTick >= c.endAtTick {
			w.endConversation(c.ID)
		}
	}

	w.synchronizeAgentStates()

	for _, a := range w.agents {
		if a.CooldownTicks > 0 {
			a.CooldownTicks--
		}
	}

	if nowTick%uint64(w.cfg.CleanupEveryTicks) == 0 {
		w.cleanupConversations(w.cfg.RetentionMax)
	}
}

// endConversation closes a conversation and releases both participants
// into cooldown. Idempotent: a missing or already-inactive conversation
// is treated as already handled.
func (w *World) endConversation(id string) {
	c := w.conversations[id]
	if c == nil || !c.Active {
		return
	}
	if c.Participants[0] == c.Participants[1] {
		panic(fmt.Sprintf("world: conversation %s has duplicate participant %d", id, c.Participants[0]))
	}
	c.Active = false
	c.EndTime = time.Now()
	c.Duration = c.EndTime.Sub(c.StartTime)
	c.closedAt = c.EndTime
	w.completedTotal++

	a := w.agentsByID[c.Participants[0]]
	b := w.agentsByID[c.Participants[1]]

	// Only student <-> recruiter pairs get scored.
	if a != nil && b != nil && a.Kind != b.Kind {
		student, recruiter := a, b
		if student.Kind != KindStudent {
			student, recruiter = b, a
		}
		res := CalculateInteractionScore(w.rng, student, recruiter, c)
		if res.Offer {
			w.offersTotal++
		}
		if w.ilog != nil {
			_ = w.ilog.WriteInteraction(InteractionEntry{
				Tick:           w.tick.Load(),
				ConversationID: c.ID,
				StudentID:      student.ID,
				RecruiterID:    recruiter.ID,
				Score:          res.Composite,
				Experience:     res.Experience,
				Networking:     res.Networking,
				Skills:         res.Skills,
				Energy:         res.Energy,
				Luck:           res.Luck,
				Personality:    res.Personality,
				Offer:          res.Offer,
				Messages:       c.Messages(),
				DurationMs:     c.Duration.Milliseconds(),
				Quality:        c.Quality,
			})
		}
	}

	for _, p := range []*Agent{a, b} {
		if p == nil {
			continue
		}
		p.InConversation = false
		p.PartnerID = 0
		p.ConversationID = ""
		p.CooldownTicks = w.cfg.CooldownTicks
	}
	delete(w.active, id)
}

// synchronizeAgentStates authoritatively rebuilds every agent's
// conversation fields from the active set. Defensive re-sync against
// drift if anything outside the lifecycle code touched the flags.
func (w *World) synchronizeAgentStates() {
	for _, a := range w.agents {
		a.InConversation = false
		a.PartnerID = 0
		a.ConversationID = ""
	}
	for _, c := range w.active {
		if !c.Active {
			continue
		}
		for _, id := range c.Participants {
			a := w.agentsByID[id]
			if a == nil {
				continue
			}
			a.InConversation = true
			a.PartnerID = c.other(id)
			a.ConversationID = c.ID
		}
	}
}

// cleanupConversations evicts closed records older than maxAge from the
// historical map. Active conversations are never touched.
func (w *World) cleanupConversations(maxAge time.Duration) {
	now := time.Now()
	for id, c := range w.conversations {
		if c.Active {
			continue
		}
		if now.Sub(c.closedAt) > maxAge {
			delete(w.conversations, id)
		}
	}
}
