package monitor

import (
	"math"
	"testing"
	"time"
)

func TestTracker_SeedsKnownAgentsIdle(t *testing.T) {
	tr := NewTracker(nil)

	agents := tr.Agents()
	if len(agents) != len(DefaultAgents()) {
		t.Fatalf("Agents() = %d entries, want %d", len(agents), len(DefaultAgents()))
	}
	for _, a := range agents {
		if a.Status != AgentIdle {
			t.Errorf("agent %q Status = %q, want idle", a.Name, a.Status)
		}
		if a.TasksCompleted != 0 {
			t.Errorf("agent %q TasksCompleted = %d, want 0", a.Name, a.TasksCompleted)
		}
	}
}

func TestTracker_ObserveUpdatesAgent(t *testing.T) {
	tr := NewTracker(nil)
	now := time.Now()

	tr.Observe(ActivityRecord{
		Agent:     "Privacy Agent",
		Level:     LevelInfo,
		Status:    StatusInProgress,
		Timestamp: now,
		Metadata:  Metadata{DurationMs: int64Ptr(100)},
	})
	tr.Observe(ActivityRecord{
		Agent:     "Privacy Agent",
		Level:     LevelSuccess,
		Status:    StatusCompleted,
		Timestamp: now.Add(time.Second),
		Metadata:  Metadata{DurationMs: int64Ptr(300)},
	})

	perf := findAgent(t, tr, "Privacy Agent")
	if perf.TasksCompleted != 2 {
		t.Errorf("TasksCompleted = %d, want 2", perf.TasksCompleted)
	}
	if math.Abs(perf.AvgResponseTime-200) > 1e-9 {
		t.Errorf("AvgResponseTime = %v, want 200", perf.AvgResponseTime)
	}
	if perf.Status != AgentComplete {
		t.Errorf("Status = %q, want complete", perf.Status)
	}
	if !perf.LastActivity.Equal(now.Add(time.Second)) {
		t.Errorf("LastActivity = %v, want %v", perf.LastActivity, now.Add(time.Second))
	}
	if perf.SuccessRate != 100 {
		t.Errorf("SuccessRate = %v, want 100", perf.SuccessRate)
	}
}

func TestTracker_ErrorsLowerSuccessRate(t *testing.T) {
	tr := NewTracker(nil)

	tr.Observe(ActivityRecord{Agent: "Data Generator", Level: LevelInfo, Status: StatusInProgress})
	tr.Observe(ActivityRecord{Agent: "Data Generator", Level: LevelError, Status: StatusError})

	perf := findAgent(t, tr, "Data Generator")
	if perf.Status != AgentError {
		t.Errorf("Status = %q, want error", perf.Status)
	}
	if perf.SuccessRate != 50 {
		t.Errorf("SuccessRate = %v, want 50", perf.SuccessRate)
	}
}

func TestTracker_UnknownAgentCreatedLazily(t *testing.T) {
	tr := NewTracker(nil)
	tr.Observe(ActivityRecord{Agent: "Custom Bot", Status: StatusInProgress})

	perf := findAgent(t, tr, "Custom Bot")
	if perf.TasksCompleted != 1 {
		t.Errorf("TasksCompleted = %d, want 1", perf.TasksCompleted)
	}
}

func TestTracker_DefaultActorNotTracked(t *testing.T) {
	tr := NewTracker(nil)
	before := len(tr.Agents())

	tr.Observe(ActivityRecord{Agent: DefaultAgent, Status: StatusInProgress})

	if got := len(tr.Agents()); got != before {
		t.Errorf("Agents() grew to %d after default-actor record, want %d", got, before)
	}
}

func TestTracker_ProgressCarriesForward(t *testing.T) {
	tr := NewTracker(nil)

	tr.Observe(ActivityRecord{Agent: DefaultAgent, Progress: intPtr(30)})
	if tr.Progress() != 30 {
		t.Fatalf("Progress() = %d, want 30", tr.Progress())
	}

	// A record without progress leaves the prior value unchanged.
	tr.Observe(ActivityRecord{Agent: DefaultAgent})
	if tr.Progress() != 30 {
		t.Errorf("Progress() = %d after progress-less record, want 30", tr.Progress())
	}

	tr.Observe(ActivityRecord{Agent: DefaultAgent, Progress: intPtr(65)})
	if tr.Progress() != 65 {
		t.Errorf("Progress() = %d, want 65", tr.Progress())
	}
}

func TestTracker_ClearResets(t *testing.T) {
	tr := NewTracker(nil)
	tr.Observe(ActivityRecord{Agent: "Bias Detector", Progress: intPtr(50), Status: StatusInProgress})

	tr.Clear()

	if tr.Progress() != 0 {
		t.Errorf("Progress() after Clear = %d, want 0", tr.Progress())
	}
	perf := findAgent(t, tr, "Bias Detector")
	if perf.TasksCompleted != 0 || perf.Status != AgentIdle {
		t.Errorf("agent after Clear = %+v, want re-seeded idle", perf)
	}
}

func findAgent(t *testing.T, tr *Tracker, name string) AgentPerformance {
	t.Helper()
	for _, a := range tr.Agents() {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("agent %q not found", name)
	return AgentPerformance{}
}
