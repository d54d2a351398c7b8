package world

import (
	"context"
	"testing"
	"time"
)

func TestRun_SetupAndSnapshotRequests(t *testing.T) {
	w := New(WorldConfig{ID: "test", GridSize: 5, Seed: 42, TickRateHz: 100})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	id, err := w.RequestAddAgent(ctx, 2, 2, KindStudent, "probe", Stats{GPA: 3.0})
	if err != nil {
		t.Fatalf("add agent: %v", err)
	}
	if id != 1 {
		t.Fatalf("agent id = %d, want 1", id)
	}
	if err := w.RequestAddObstacle(ctx, 0, 0); err != nil {
		t.Fatalf("add obstacle: %v", err)
	}
	// Occupied cell rejoins as a conflict, not a hang.
	if err := w.RequestAddObstacle(ctx, 0, 0); err == nil {
		t.Fatalf("duplicate obstacle accepted")
	}

	snap, err := w.RequestSnapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Agents) != 1 || snap.Agents[0].Name != "probe" {
		t.Fatalf("snapshot agents = %+v", snap.Agents)
	}

	// The ticker must actually be advancing the world.
	deadline := time.Now().Add(2 * time.Second)
	for w.CurrentTick() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("tick stuck at %d", w.CurrentTick())
		}
		time.Sleep(5 * time.Millisecond)
	}

	w.Stop()
	if err := <-done; err != nil {
		t.Fatalf("run returned %v", err)
	}
}

func TestRun_ContextCancelStopsLoop(t *testing.T) {
	w := New(WorldConfig{ID: "test", GridSize: 5, Seed: 1, TickRateHz: 100})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("run did not stop on cancel")
	}
}
