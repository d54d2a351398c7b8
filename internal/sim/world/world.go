package world

import (
	"math/rand"
	"sync/atomic"
	"time"

	"careerfair.ai/internal/protocol"
)

// World is a single-threaded authoritative simulation of the fair floor.
// All state must be accessed only from the world loop goroutine; tests
// drive ProcessFrame directly from one goroutine instead.
type World struct {
	cfg WorldConfig

	tick atomic.Uint64

	size    int
	cells   []Cell
	agents  []*Agent // insertion order, ascending id
	agentsByID map[int]*Agent

	// conversations holds every record until cleanup evicts it;
	// active indexes only the currently open subset.
	conversations map[string]*Conversation
	active        map[string]*Conversation
	nextConvNum   uint64

	completedTotal uint64
	offersTotal    uint64

	nextAgentID int
	rng         *rand.Rand

	dialogue DialogueRunner
	ilog     InteractionLogger

	observers map[string]*observerState

	setup         chan SetupRequest
	snapshotReq   chan snapshotReq
	observerJoin  chan ObserverJoinRequest
	observerLeave chan string
	stop          chan struct{}

	metrics atomic.Value // WorldMetrics
}

// DialogueRunner produces conversation turns off the world loop. The
// implementation must never fail outward: whatever happens internally it
// eventually marks the conversation complete.
type DialogueRunner interface {
	StartDialogue(conv *Conversation, a, b AgentView)
}

// InteractionLogger receives one entry per scored conversation.
// Implemented in internal/persistence/*.
type InteractionLogger interface {
	WriteInteraction(entry InteractionEntry) error
}

type InteractionEntry struct {
	Tick           uint64  `json:"tick"`
	ConversationID string  `json:"conversation_id"`
	StudentID      int     `json:"student_id"`
	RecruiterID    int     `json:"recruiter_id"`
	Score          float64 `json:"score"`
	Experience     float64 `json:"experience"`
	Networking     float64 `json:"networking"`
	Skills         float64 `json:"skills"`
	Energy         float64 `json:"energy"`
	Luck           float64 `json:"luck"`
	Personality    float64 `json:"personality"`
	Offer          bool    `json:"offer"`
	Messages       int     `json:"messages"`
	DurationMs     int64   `json:"duration_ms"`
	Quality        float64 `json:"quality"`
}

func New(cfg WorldConfig) *World {
	cfg.applyDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &World{
		cfg:           cfg,
		size:          cfg.GridSize,
		cells:         make([]Cell, cfg.GridSize*cfg.GridSize),
		agentsByID:    map[int]*Agent{},
		conversations: map[string]*Conversation{},
		active:        map[string]*Conversation{},
		rng:           rand.New(rand.NewSource(seed)),
		observers:     map[string]*observerState{},
		setup:         make(chan SetupRequest, 64),
		snapshotReq:   make(chan snapshotReq, 8),
		observerJoin:  make(chan ObserverJoinRequest, 8),
		observerLeave: make(chan string, 8),
		stop:          make(chan struct{}),
	}
	w.metrics.Store(WorldMetrics{})
	return w
}

func (w *World) Config() WorldConfig { return w.cfg }

func (w *World) ID() string {
	if w == nil {
		return ""
	}
	return w.cfg.ID
}

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

func (w *World) GridSize() int { return w.size }

func (w *World) SetDialogueRunner(d DialogueRunner) { w.dialogue = d }

func (w *World) SetInteractionLogger(l InteractionLogger) { w.ilog = l }

// PlaceDefaultObstacles applies the standard booth layout. Positions
// already occupied are skipped, matching AddObstacle's soft failure.
func (w *World) PlaceDefaultObstacles() {
	for _, p := range DefaultObstacles {
		w.AddObstacle(p.X, p.Y)
	}
}

// ProcessFrame advances exactly one tick: pairing scan, conversation
// upkeep, then movement. It never suspends; the host calls it at
// whatever cadence it likes (Run uses a ticker).
func (w *World) ProcessFrame() {
	stepStart := time.Now()
	nowTick := w.tick.Load()

	w.checkForConversations(nowTick)
	w.handleConversations(nowTick)
	w.systemMovement()

	w.stepObservers(nowTick)
	w.tick.Add(1)
	w.storeMetrics(nowTick, float64(time.Since(stepStart).Microseconds())/1000.0)
}

// Snapshot builds a read-only copy of the world for the rendering/UI
// layer. World-loop goroutine only; remote callers go through
// RequestSnapshot.
func (w *World) Snapshot() protocol.StateSnapshot {
	return w.buildSnapshot(w.tick.Load())
}
