package world

import (
	"encoding/json"

	"careerfair.ai/internal/protocol"
)

// observerState is one connected UI/rendering session.
type observerState struct {
	SessionID string
	Out       chan []byte
}

type ObserverJoinRequest struct {
	SessionID string
	Out       chan []byte
}

func (w *World) ObserverJoin() chan<- ObserverJoinRequest { return w.observerJoin }

func (w *World) ObserverLeave() chan<- string { return w.observerLeave }

func (w *World) handleObserverJoin(req ObserverJoinRequest) {
	if req.SessionID == "" || req.Out == nil {
		return
	}
	w.observers[req.SessionID] = &observerState{SessionID: req.SessionID, Out: req.Out}
}

func (w *World) handleObserverLeave(sessionID string) {
	delete(w.observers, sessionID)
}

// stepObservers pushes the per-frame snapshot to every connected
// observer. Slow consumers get the newest frame; stale ones are dropped.
func (w *World) stepObservers(nowTick uint64) {
	if len(w.observers) == 0 {
		return
	}
	msg := protocol.TickMsg{
		Type:            protocol.TypeTick,
		ProtocolVersion: protocol.Version,
		Snapshot:        w.buildSnapshot(nowTick),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for _, o := range w.observers {
		sendLatest(o.Out, b)
	}
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
