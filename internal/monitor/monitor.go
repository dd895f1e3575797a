package monitor

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FilterAll is the agent filter value that passes every record.
const FilterAll = "all"

// Options configures a Monitor. Zero values select the defaults.
type Options struct {
	// Capacity bounds the rolling history (default DefaultCapacity).
	Capacity int
	// Agents overrides the built-in roster (default DefaultAgents).
	Agents []AgentSpec
	// Logger receives classification diagnostics (default slog.Default).
	Logger *slog.Logger
}

// Monitor is the owned state object of the activity stream: it ingests
// frames, maintains the bounded history and aggregate tracker, and
// exposes snapshot reads and the pause/resume/clear control surface.
//
// One mutex serializes every operation, so each frame's
// classify→extract→build→append→aggregate sequence is atomic with
// respect to any other frame, and readers always see record boundaries.
type Monitor struct {
	mu         sync.Mutex
	classifier *Classifier
	builder    *builder
	history    *History
	tracker    *Tracker
	paused     bool
	logger     *slog.Logger
	now        func() time.Time
}

// New creates a running (not paused) monitor.
func New(opts Options) *Monitor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		classifier: NewClassifier(),
		builder:    newBuilder(opts.Agents),
		history:    NewHistory(opts.Capacity),
		tracker:    NewTracker(opts.Agents),
		logger:     logger,
		now:        time.Now,
	}
}

// Ingest classifies one frame and folds the resulting record into the
// history and aggregate state. While paused, frames are discarded with
// no buffering. Ingest never fails: an unclassifiable frame falls
// through to the default rule, and an internal failure degrades to a
// synthetic error-level record describing it.
func (m *Monitor) Ingest(f Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.paused {
		return
	}

	rec := m.buildRecord(f)
	m.history.Append(rec)
	m.tracker.Observe(rec)

	m.logger.Debug("frame classified",
		"stage", rec.Stage,
		"status", rec.Status,
		"agent", rec.Agent,
	)
}

// IngestRaw decodes one wire message and ingests it.
func (m *Monitor) IngestRaw(raw []byte) {
	m.Ingest(DecodeFrame(raw))
}

// buildRecord runs classification and record building, converting a
// panic anywhere below into a synthetic error-level record so the
// stream is never interrupted.
func (m *Monitor) buildRecord(f Frame) (rec ActivityRecord) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("frame handling panicked", "panic", fmt.Sprint(r))
			rec = ActivityRecord{
				ID:        uuid.New().String(),
				Timestamp: m.now(),
				Stage:     StageError,
				Status:    StatusError,
				Level:     LevelError,
				Agent:     DefaultAgent,
				Message:   "frame handling failed",
				Metadata:  Metadata{Error: strPtr(fmt.Sprint(r))},
			}
		}
	}()
	match := m.classifier.Classify(f)
	return m.builder.Build(f, match, m.now())
}

// Pause stops recording: inbound frames are discarded until Resume.
// Pausing an already paused monitor is a no-op.
func (m *Monitor) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = true
}

// Resume restarts recording from the next frame; frames delivered while
// paused are not replayed.
func (m *Monitor) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = false
}

// Paused reports whether the monitor is discarding frames.
func (m *Monitor) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Clear empties the history and resets progress and the per-agent
// table. It is valid in either control state and does not change it.
func (m *Monitor) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history.Clear()
	m.tracker.Clear()
}

// Records returns the retained records, most recent first.
func (m *Monitor) Records() []ActivityRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Snapshot()
}

// Progress returns the current overall progress, 0-100.
func (m *Monitor) Progress() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Progress()
}

// Agents returns the per-agent performance table in display order.
func (m *Monitor) Agents() []AgentPerformance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracker.Agents()
}

// Search returns records whose message or agent contains term,
// case-insensitively. An empty term passes everything.
func (m *Monitor) Search(term string) []ActivityRecord {
	return m.Query(term, FilterAll)
}

// FilterByAgent returns records attributed to the named agent, or all
// records for FilterAll.
func (m *Monitor) FilterByAgent(agent string) []ActivityRecord {
	return m.Query("", agent)
}

// Query combines the search term and agent filter with logical AND,
// evaluated against the current snapshot. It never mutates the store;
// an empty result is a valid outcome distinct from an empty store.
func (m *Monitor) Query(term, agent string) []ActivityRecord {
	records := m.Records()

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]ActivityRecord, 0, len(records))
	for _, rec := range records {
		if agent != "" && agent != FilterAll && rec.Agent != agent {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(rec.Message), term) &&
			!strings.Contains(strings.ToLower(rec.Agent), term) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
