package world

import (
	"sort"

	"careerfair.ai/internal/protocol"
)

func (w *World) buildSnapshot(nowTick uint64) protocol.StateSnapshot {
	snap := protocol.StateSnapshot{
		FairID:   w.cfg.ID,
		Tick:     nowTick,
		GridSize: w.size,
	}

	for y := 0; y < w.size; y++ {
		for x := 0; x < w.size; x++ {
			c := &w.cells[y*w.size+x]
			if c.Kind == CellWalkable {
				continue
			}
			cs := protocol.CellSnapshot{X: x, Y: y, Kind: c.Kind.String()}
			if c.Agent != nil {
				cs.AgentID = c.Agent.ID
				cs.InConversation = c.Agent.InConversation
			}
			if c.Obstacle != nil {
				cs.ObstacleID = c.Obstacle.ID
			}
			snap.Cells = append(snap.Cells, cs)
		}
	}

	for _, a := range w.agents {
		snap.Agents = append(snap.Agents, protocol.AgentSnapshot{
			ID:             a.ID,
			Kind:           string(a.Kind),
			Name:           a.Name,
			X:              a.Pos.X,
			Y:              a.Pos.Y,
			InConversation: a.InConversation,
			PartnerID:      a.PartnerID,
			ConversationID: a.ConversationID,
			CooldownTicks:  a.CooldownTicks,
			Stats: protocol.StatsBlock{
				GPA:                a.Stats.GPA,
				Skills:             a.Stats.Skills,
				ExperienceYears:    a.Stats.ExperienceYears,
				Companies:          a.Stats.Companies,
				Networking:         a.Stats.Networking,
				Energy:             a.Stats.Energy,
				Company:            a.Stats.Company,
				Requirements:       a.Stats.Requirements,
				ExperienceRequired: a.Stats.ExperienceRequired,
				JobOffers:          a.Stats.JobOffers,
				RecruitersSpokenTo: a.Stats.RecruitersSpokenTo,
			},
		})
	}

	for _, c := range w.active {
		snap.Conversations = append(snap.Conversations, protocol.ConversationSnapshot{
			ID:           c.ID,
			Participants: c.Participants,
			Type:         string(c.Type),
			DurationMs:   c.Duration.Milliseconds(),
			Quality:      c.Quality,
			Messages:     c.Messages(),
			Complete:     c.Complete(),
		})
	}
	sort.Slice(snap.Conversations, func(i, j int) bool {
		return snap.Conversations[i].ID < snap.Conversations[j].ID
	})

	return snap
}
