// Package dialogue produces the turn-by-turn exchange for an open
// conversation. Each conversation runs as its own fire-and-forget
// goroutine; the only way results flow back into the simulation is the
// message counter and complete flag on the conversation record. The
// runner swallows its own failures: a conversation it starts is always
// eventually marked complete.
package dialogue

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"careerfair.ai/internal/sim/world"
)

type Runner struct {
	turnDelay time.Duration
	log       *log.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

type Options struct {
	// TurnDelay is the pause between generated turns. Zero means the
	// default conversational pacing.
	TurnDelay time.Duration
	Seed      int64 // 0 means seed from the clock
	Logger    *log.Logger
}

func NewRunner(opts Options) *Runner {
	if opts.TurnDelay <= 0 {
		opts.TurnDelay = 800 * time.Millisecond
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		turnDelay: opts.TurnDelay,
		log:       opts.Logger,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// StartDialogue satisfies world.DialogueRunner.
func (r *Runner) StartDialogue(conv *world.Conversation, a, b world.AgentView) {
	go r.run(conv, a, b)
}

func (r *Runner) run(conv *world.Conversation, a, b world.AgentView) {
	defer conv.MarkComplete()

	speakers := [2]world.AgentView{a, b}
	for turn := 0; ; turn++ {
		speaker := speakers[turn%2]
		n := conv.AddMessage()

		if r.log != nil {
			r.log.Printf("%s #%d %s: %s", conv.ID, n, speaker.Name, r.line(speaker, n))
		}

		if world.ShouldForceEnd(n, conv.Type) {
			return
		}
		if r.shouldEnd(n, conv.Type, speaker.Kind == world.KindRecruiter) {
			return
		}
		time.Sleep(r.turnDelay)
	}
}

func (r *Runner) shouldEnd(messages int, convType world.ConvType, isRecruiter bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return world.ShouldConversationEnd(r.rng, messages, convType, isRecruiter)
}

var studentLines = []string{
	"Hi! I'm really excited about what your team is building.",
	"I worked on something similar for a class project last semester.",
	"What does the intern-to-offer pipeline look like?",
	"I mostly write Go and Python, with some SQL on the side.",
	"Could I send you my resume after this?",
}

var recruiterLines = []string{
	"Great to meet you. Tell me about your latest project.",
	"We're hiring across the whole platform org this cycle.",
	"What kind of problems do you want to work on?",
	"Strong fundamentals matter more to us than framework trivia.",
	"Make sure to apply through the portal so I can flag you.",
}

func (r *Runner) line(speaker world.AgentView, n int) string {
	pool := studentLines
	if speaker.Kind == world.KindRecruiter {
		pool = recruiterLines
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return pool[r.rng.Intn(len(pool))]
}
