package world

import (
	"sync/atomic"
	"time"
)

// Conversation pairs two adjacent agents for a turn-based exchange.
//
// The record is owned by the world loop except for the two atomic fields,
// which are the only state the fire-and-forget dialogue task may touch:
// it bumps the message counter per turn and sets the complete flag once.
// The world loop only ever reads them, so no further locking is needed.
type Conversation struct {
	ID           string
	Participants [2]int
	Type         ConvType

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Quality is a [0,1] compatibility score fixed at creation.
	Quality float64

	Active          bool
	endingScheduled bool
	endAtTick       uint64
	closedAt        time.Time

	complete atomic.Bool
	messages atomic.Int32
}

// MarkComplete signals that the dialogue task has finished producing
// turns. Called from the dialogue goroutine; idempotent.
func (c *Conversation) MarkComplete() { c.complete.Store(true) }

func (c *Conversation) Complete() bool { return c.complete.Load() }

// AddMessage records one produced turn and returns the new total.
// Called from the dialogue goroutine.
func (c *Conversation) AddMessage() int { return int(c.messages.Add(1)) }

func (c *Conversation) Messages() int { return int(c.messages.Load()) }

func (c *Conversation) other(agentID int) int {
	if c.Participants[0] == agentID {
		return c.Participants[1]
	}
	return c.Participants[0]
}

func conversationType(a, b AgentKind) ConvType {
	switch {
	case a == KindStudent && b == KindStudent:
		return TypeStudentStudent
	case a == KindRecruiter && b == KindRecruiter:
		return TypeRecruiterRecruiter
	default:
		return TypeStudentRecruiter
	}
}
