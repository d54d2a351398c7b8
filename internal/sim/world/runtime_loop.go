package world

import (
	"context"
	"errors"
	"time"

	"careerfair.ai/internal/protocol"
)

// SetupRequest places an agent or an obstacle at a frame boundary while
// the loop is running. Resp (optional) receives the outcome.
type SetupRequest struct {
	Obstacle bool
	X, Y     int
	Kind     AgentKind
	Name     string
	Stats    Stats
	Resp     chan SetupResponse
}

type SetupResponse struct {
	OK      bool
	AgentID int
}

type snapshotReq struct {
	resp chan protocol.StateSnapshot
}

func (w *World) Setup() chan<- SetupRequest { return w.setup }

// Run drives the frame loop from a ticker until the context is done or
// Stop is called. Setup, observer, and snapshot requests are drained
// between frames so a frame never observes a half-applied change.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingSetups []SetupRequest

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.setup:
			pendingSetups = append(pendingSetups, req)
		case req := <-w.snapshotReq:
			req.resp <- w.buildSnapshot(w.tick.Load())
		case req := <-w.observerJoin:
			w.handleObserverJoin(req)
		case id := <-w.observerLeave:
			w.handleObserverLeave(id)
		case <-ticker.C:
			for _, req := range pendingSetups {
				w.applySetup(req)
			}
			pendingSetups = pendingSetups[:0]
			w.ProcessFrame()
		}
	}
}

func (w *World) Stop() { close(w.stop) }

func (w *World) applySetup(req SetupRequest) {
	resp := SetupResponse{}
	if req.Obstacle {
		resp.OK = w.AddObstacle(req.X, req.Y)
	} else if a := w.AddAgentWithStats(req.X, req.Y, req.Kind, req.Stats); a != nil {
		a.Name = req.Name
		resp.OK = true
		resp.AgentID = a.ID
	}
	if req.Resp != nil {
		select {
		case req.Resp <- resp:
		default:
		}
	}
}

// RequestSnapshot fetches a state snapshot from outside the world loop.
// Only valid while Run is active.
func (w *World) RequestSnapshot(ctx context.Context) (protocol.StateSnapshot, error) {
	req := snapshotReq{resp: make(chan protocol.StateSnapshot, 1)}
	select {
	case w.snapshotReq <- req:
	case <-ctx.Done():
		return protocol.StateSnapshot{}, ctx.Err()
	}
	select {
	case snap := <-req.resp:
		return snap, nil
	case <-ctx.Done():
		return protocol.StateSnapshot{}, ctx.Err()
	}
}

// RequestAddAgent is the blocking setup helper used by the admin HTTP
// surface.
func (w *World) RequestAddAgent(ctx context.Context, x, y int, kind AgentKind, name string, stats Stats) (int, error) {
	resp := make(chan SetupResponse, 1)
	select {
	case w.setup <- SetupRequest{X: x, Y: y, Kind: kind, Name: name, Stats: stats, Resp: resp}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case r := <-resp:
		if !r.OK {
			return 0, errors.New("invalid placement")
		}
		return r.AgentID, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (w *World) RequestAddObstacle(ctx context.Context, x, y int) error {
	resp := make(chan SetupResponse, 1)
	select {
	case w.setup <- SetupRequest{Obstacle: true, X: x, Y: y, Resp: resp}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case r := <-resp:
		if !r.OK {
			return errors.New("invalid placement")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
