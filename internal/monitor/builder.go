package monitor

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// builder assembles ActivityRecords from classifier and extractor
// output. It owns the agent roster used for name resolution.
type builder struct {
	agents []AgentSpec
}

func newBuilder(agents []AgentSpec) *builder {
	if agents == nil {
		agents = DefaultAgents()
	}
	return &builder{agents: agents}
}

// Build produces the canonical record for one classified frame. It
// never fails; fields that cannot be extracted are left absent.
func (b *builder) Build(f Frame, m match, now time.Time) ActivityRecord {
	rec := ActivityRecord{
		ID:        uuid.New().String(),
		Timestamp: now,
		Stage:     m.rule.stage,
		Message:   b.message(f, m),
	}

	rec.Progress = extractProgress(f)

	rec.Metadata.JobID = extractJobID(f)
	rec.Metadata.DurationMs = extractDuration(f)
	extractFields(f, m.rule.fields, &rec.Metadata)
	if m.rule.stage == StageError {
		rec.Metadata.Error = b.errorDetail(f)
	}

	rec.Agent = b.resolveAgent(f, m)
	rec.Level = b.resolveLevel(f, m)
	rec.Status = b.resolveStatus(f, rec, m)

	return rec
}

// message picks the display string: payload message, then raw text,
// then the rule name as a last resort.
func (b *builder) message(f Frame, m match) string {
	if f.Text != "" {
		return f.Text
	}
	if m.rule.name != "" {
		return m.rule.name
	}
	return "activity"
}

// resolveAgent applies the priority order: explicit payload field,
// known agent substring in the message, rule hint, generic default.
func (b *builder) resolveAgent(f Frame, m match) string {
	if s, ok := stringField(f.Data, "agent"); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	lower := strings.ToLower(f.Text)
	for _, spec := range b.agents {
		for _, alias := range spec.Aliases {
			if strings.Contains(lower, alias) {
				return spec.Name
			}
		}
	}
	if m.rule.agent != "" {
		return m.rule.agent
	}
	return DefaultAgent
}

// resolveLevel applies the priority order: explicit marker, rule level,
// info.
func (b *builder) resolveLevel(f Frame, m match) Level {
	if lvl, ok := markerLevel(f); ok {
		return lvl
	}
	if m.rule.level != "" {
		return m.rule.level
	}
	return LevelInfo
}

// resolveStatus applies the priority order: explicit payload field,
// then progress, rule semantics, and severity.
func (b *builder) resolveStatus(f Frame, rec ActivityRecord, m match) Status {
	if s, ok := stringField(f.Data, "status"); ok {
		if st := Status(strings.ToLower(strings.TrimSpace(s))); st.known() {
			return st
		}
	}
	switch {
	case rec.Progress != nil && *rec.Progress == 100,
		m.rule.status == StatusCompleted:
		return StatusCompleted
	case rec.Level == LevelError || m.rule.status == StatusError:
		return StatusError
	case m.rule.status == StatusConnected,
		m.rule.status == StatusReady,
		m.rule.status == StatusFallback:
		return m.rule.status
	case m.rule.status != "":
		return m.rule.status
	default:
		return StatusInProgress
	}
}

// errorDetail describes what went wrong for error-stage records.
func (b *builder) errorDetail(f Frame) *string {
	if s, ok := stringField(f.Data, "error"); ok && s != "" {
		return strPtr(s)
	}
	if f.Text != "" {
		return strPtr(f.Text)
	}
	return nil
}
