package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"careerfair.ai/internal/persistence/indexdb"
	persistlog "careerfair.ai/internal/persistence/log"
	"careerfair.ai/internal/sim/dialogue"
	"careerfair.ai/internal/sim/roster"
	"careerfair.ai/internal/sim/tuning"
	"careerfair.ai/internal/sim/world"
	"careerfair.ai/internal/transport/observer"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		fairID     = flag.String("fair", "", "fair id (default from tuning)")
		seed       = flag.Int64("seed", 0, "simulation seed (0 = from clock)")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite interaction index")
		chatty     = flag.Bool("log_dialogue", false, "log generated conversation turns")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", *tuningPath)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}
	if *fairID != "" {
		tune.FairID = *fairID
	}

	w := world.New(world.WorldConfig{
		ID:                tune.FairID,
		TickRateHz:        tune.TickRateHz,
		GridSize:          tune.GridSize,
		Seed:              *seed,
		CooldownTicks:     tune.CooldownTicks,
		EndDelayTicks:     tune.EndDelayTicks,
		RetentionMax:      time.Duration(tune.RetentionSeconds) * time.Second,
		CleanupEveryTicks: tune.CleanupEveryTicks,
	})

	placeObstacles(w, tune)
	populate(w, tune, *seed, logger)

	var dialogueLog *log.Logger
	if *chatty {
		dialogueLog = log.New(os.Stdout, "[dialogue] ", log.LstdFlags)
	}
	w.SetDialogueRunner(dialogue.NewRunner(dialogue.Options{
		TurnDelay: time.Duration(tune.TurnDelayMs) * time.Millisecond,
		Seed:      *seed,
		Logger:    dialogueLog,
	}))

	fairDir := filepath.Join(*dataDir, "fairs", tune.FairID)
	ilog := persistlog.NewInteractionLogger(fairDir)
	defer ilog.Close()

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.Open(filepath.Join(fairDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index db: %v", err)
		}
		defer idx.Close()
	}
	w.SetInteractionLogger(multiInteractionLogger{a: ilog, b: idx})

	ctx, cancel := signalContext()
	defer cancel()

	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", metricsHandler(w, tune.FairID))

	mux.HandleFunc("/admin/v1/state", func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		resp := struct {
			FairID  string             `json:"fair_id"`
			Tick    uint64             `json:"tick"`
			Metrics world.WorldMetrics `json:"metrics"`
		}{
			FairID:  tune.FairID,
			Tick:    w.CurrentTick(),
			Metrics: w.Metrics(),
		}
		_ = json.NewEncoder(rw).Encode(resp)
	})
	mux.HandleFunc("/admin/v1/snapshot", func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		ctx2, cancel2 := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel2()
		snap, err := w.RequestSnapshot(ctx2)
		rw.Header().Set("Content-Type", "application/json")
		if err != nil {
			rw.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(rw).Encode(map[string]any{"ok": false, "error": err.Error()})
			return
		}
		_ = json.NewEncoder(rw).Encode(snap)
	})
	mux.HandleFunc("/admin/v1/agents", addAgentHandler(w))
	mux.HandleFunc("/admin/v1/obstacles", addObstacleHandler(w))
	mux.HandleFunc("/admin/v1/conversations", conversationsHandler(idx))

	obsSrv := observer.NewServer(w, logger)
	mux.HandleFunc("/v1/observer/bootstrap", obsSrv.BootstrapHandler())
	mux.HandleFunc("/v1/observer/ws", obsSrv.WSHandler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("fair=%s grid=%dx%d listening on %s", tune.FairID, tune.GridSize, tune.GridSize, *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func placeObstacles(w *world.World, tune tuning.Tuning) {
	if len(tune.Obstacles) == 0 {
		w.PlaceDefaultObstacles()
		return
	}
	for _, p := range tune.Obstacles {
		w.AddObstacle(p[0], p[1])
	}
}

// populate fills the floor with the tuned head-counts before the loop
// starts. Placement retries a bounded number of times per agent; a full
// floor is tolerated.
func populate(w *world.World, tune tuning.Tuning, seed int64, logger *log.Logger) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	place := func(kind world.AgentKind, name string, stats world.Stats) bool {
		for try := 0; try < 50; try++ {
			x, y := rng.Intn(tune.GridSize), rng.Intn(tune.GridSize)
			if a := w.AddAgentWithStats(x, y, kind, stats); a != nil {
				a.Name = name
				return true
			}
		}
		return false
	}
	placed := 0
	for i := 1; i <= tune.Students; i++ {
		name, stats := roster.NewStudent(rng, i)
		if place(world.KindStudent, name, stats) {
			placed++
		}
	}
	for i := 1; i <= tune.Recruiters; i++ {
		name, stats := roster.NewRecruiter(rng, i)
		if place(world.KindRecruiter, name, stats) {
			placed++
		}
	}
	logger.Printf("populated %d/%d agents", placed, tune.Students+tune.Recruiters)
}

func addAgentHandler(w *world.World) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		var req struct {
			X     int         `json:"x"`
			Y     int         `json:"y"`
			Kind  string      `json:"kind"`
			Name  string      `json:"name"`
			Stats world.Stats `json:"stats"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(rw, "bad request", http.StatusBadRequest)
			return
		}
		kind := world.AgentKind(strings.ToUpper(req.Kind))
		if kind != world.KindStudent && kind != world.KindRecruiter {
			http.Error(rw, "kind must be STUDENT or RECRUITER", http.StatusBadRequest)
			return
		}
		ctx2, cancel2 := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel2()
		id, err := w.RequestAddAgent(ctx2, req.X, req.Y, kind, req.Name, req.Stats)
		rw.Header().Set("Content-Type", "application/json")
		if err != nil {
			rw.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(rw).Encode(map[string]any{"ok": false, "error": err.Error()})
			return
		}
		_ = json.NewEncoder(rw).Encode(map[string]any{"ok": true, "agent_id": id})
	}
}

func addObstacleHandler(w *world.World) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		var req struct {
			X int `json:"x"`
			Y int `json:"y"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(rw, "bad request", http.StatusBadRequest)
			return
		}
		ctx2, cancel2 := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel2()
		err := w.RequestAddObstacle(ctx2, req.X, req.Y)
		rw.Header().Set("Content-Type", "application/json")
		if err != nil {
			rw.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(rw).Encode(map[string]any{"ok": false, "error": err.Error()})
			return
		}
		_ = json.NewEncoder(rw).Encode(map[string]any{"ok": true})
	}
}

func conversationsHandler(idx *indexdb.SQLiteIndex) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		if idx == nil {
			http.Error(rw, "index db disabled", http.StatusServiceUnavailable)
			return
		}
		recent, err := idx.RecentInteractions(50)
		rw.Header().Set("Content-Type", "application/json")
		if err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(rw).Encode(map[string]any{"ok": false, "error": err.Error()})
			return
		}
		_ = json.NewEncoder(rw).Encode(recent)
	}
}

func metricsHandler(w *world.World, fairID string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		m := w.Metrics()
		tick := w.CurrentTick()
		if m.Tick != 0 {
			tick = m.Tick
		}

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP careerfair_tick Current simulation tick.\n")
		fmt.Fprintf(rw, "# TYPE careerfair_tick gauge\n")
		fmt.Fprintf(rw, "careerfair_tick{fair=%q} %d\n", fairID, tick)

		fmt.Fprintf(rw, "# HELP careerfair_agents Agents on the floor.\n")
		fmt.Fprintf(rw, "# TYPE careerfair_agents gauge\n")
		fmt.Fprintf(rw, "careerfair_agents{fair=%q,kind=%q} %d\n", fairID, "student", m.Students)
		fmt.Fprintf(rw, "careerfair_agents{fair=%q,kind=%q} %d\n", fairID, "recruiter", m.Recruiters)

		fmt.Fprintf(rw, "# HELP careerfair_active_conversations Currently open conversations.\n")
		fmt.Fprintf(rw, "# TYPE careerfair_active_conversations gauge\n")
		fmt.Fprintf(rw, "careerfair_active_conversations{fair=%q} %d\n", fairID, m.ActiveConversations)

		fmt.Fprintf(rw, "# HELP careerfair_conversations_total Conversations closed since start.\n")
		fmt.Fprintf(rw, "# TYPE careerfair_conversations_total counter\n")
		fmt.Fprintf(rw, "careerfair_conversations_total{fair=%q} %d\n", fairID, m.CompletedTotal)

		fmt.Fprintf(rw, "# HELP careerfair_offers_total Job offers extended since start.\n")
		fmt.Fprintf(rw, "# TYPE careerfair_offers_total counter\n")
		fmt.Fprintf(rw, "careerfair_offers_total{fair=%q} %d\n", fairID, m.OffersTotal)

		fmt.Fprintf(rw, "# HELP careerfair_observers Connected observer sessions.\n")
		fmt.Fprintf(rw, "# TYPE careerfair_observers gauge\n")
		fmt.Fprintf(rw, "careerfair_observers{fair=%q} %d\n", fairID, m.Observers)

		fmt.Fprintf(rw, "# HELP careerfair_step_ms Last frame duration in milliseconds.\n")
		fmt.Fprintf(rw, "# TYPE careerfair_step_ms gauge\n")
		fmt.Fprintf(rw, "careerfair_step_ms{fair=%q} %.3f\n", fairID, m.StepMS)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

type multiInteractionLogger struct {
	a world.InteractionLogger
	b world.InteractionLogger
}

func (m multiInteractionLogger) WriteInteraction(entry world.InteractionEntry) error {
	if m.a != nil {
		_ = m.a.WriteInteraction(entry)
	}
	if m.b != nil {
		_ = m.b.WriteInteraction(entry)
	}
	return nil
}
