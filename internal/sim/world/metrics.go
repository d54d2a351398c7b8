package world

// WorldMetrics is the operational view exposed on /metrics and the
// admin state endpoint. Updated once per frame via atomic.Value.
type WorldMetrics struct {
	Tick                uint64  `json:"tick"`
	Agents              int     `json:"agents"`
	Students            int     `json:"students"`
	Recruiters          int     `json:"recruiters"`
	ActiveConversations int     `json:"active_conversations"`
	CompletedTotal      uint64  `json:"completed_total"`
	OffersTotal         uint64  `json:"offers_total"`
	Observers           int     `json:"observers"`
	SetupQueueDepth     int     `json:"setup_queue_depth"`
	StepMS              float64 `json:"step_ms"`
}

func (w *World) Metrics() WorldMetrics {
	m, _ := w.metrics.Load().(WorldMetrics)
	return m
}

func (w *World) storeMetrics(nowTick uint64, stepMS float64) {
	students, recruiters := 0, 0
	for _, a := range w.agents {
		if a.Kind == KindStudent {
			students++
		} else {
			recruiters++
		}
	}
	w.metrics.Store(WorldMetrics{
		Tick:                nowTick + 1,
		Agents:              len(w.agents),
		Students:            students,
		Recruiters:          recruiters,
		ActiveConversations: len(w.active),
		CompletedTotal:      w.completedTotal,
		OffersTotal:         w.offersTotal,
		Observers:           len(w.observers),
		SetupQueueDepth:     len(w.setup),
		StepMS:              stepMS,
	})
}
