package monitor

// agentStats is the mutable per-agent accumulator behind the exported
// AgentPerformance snapshot.
type agentStats struct {
	perf         AgentPerformance
	errorCount   int
	latencyCount int
}

// Tracker maintains overall progress and the per-agent performance
// table, updated incrementally from each new record. Like History it is
// unsynchronized; the Monitor serializes all access.
type Tracker struct {
	seeds    []AgentSpec
	agents   map[string]*agentStats
	order    []string // display order: seeds first, then first-seen
	progress int
}

// NewTracker creates a tracker pre-seeded with the given agents at idle.
func NewTracker(seeds []AgentSpec) *Tracker {
	if seeds == nil {
		seeds = DefaultAgents()
	}
	t := &Tracker{seeds: seeds}
	t.reset()
	return t
}

func (t *Tracker) reset() {
	t.agents = make(map[string]*agentStats, len(t.seeds))
	t.order = t.order[:0]
	t.progress = 0
	for _, spec := range t.seeds {
		t.agents[spec.Name] = &agentStats{perf: AgentPerformance{
			Name:   spec.Name,
			Status: AgentIdle,
		}}
		t.order = append(t.order, spec.Name)
	}
}

// Observe folds one new record into the aggregate state.
func (t *Tracker) Observe(rec ActivityRecord) {
	if rec.Progress != nil {
		t.progress = *rec.Progress
	}

	// The generic default actor is not an agent; only resolvable
	// agents get a performance row.
	if rec.Agent == "" || rec.Agent == DefaultAgent {
		return
	}

	s, ok := t.agents[rec.Agent]
	if !ok {
		s = &agentStats{perf: AgentPerformance{Name: rec.Agent, Status: AgentIdle}}
		t.agents[rec.Agent] = s
		t.order = append(t.order, rec.Agent)
	}

	s.perf.TasksCompleted++
	s.perf.LastActivity = rec.Timestamp

	if rec.Metadata.DurationMs != nil {
		s.latencyCount++
		x := float64(*rec.Metadata.DurationMs)
		s.perf.AvgResponseTime += (x - s.perf.AvgResponseTime) / float64(s.latencyCount)
	}

	switch {
	case rec.Level == LevelError || rec.Status == StatusError:
		s.errorCount++
		s.perf.Status = AgentError
	case rec.Status == StatusCompleted:
		s.perf.Status = AgentComplete
	default:
		s.perf.Status = AgentActive
	}

	s.perf.SuccessRate = 100 * float64(s.perf.TasksCompleted-s.errorCount) / float64(s.perf.TasksCompleted)
}

// Progress returns the most recently observed overall progress.
func (t *Tracker) Progress() int {
	return t.progress
}

// Clear resets progress and re-seeds the agent table at idle.
func (t *Tracker) Clear() {
	t.reset()
}

// Agents returns a snapshot of the performance table in display order.
func (t *Tracker) Agents() []AgentPerformance {
	out := make([]AgentPerformance, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.agents[name].perf)
	}
	return out
}
