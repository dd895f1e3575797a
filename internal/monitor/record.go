// Package monitor classifies the event stream of a synthetic data
// generation pipeline into canonical activity records and maintains
// the bounded history and per-agent statistics behind the live view.
package monitor

import "time"

// Stage identifies the pipeline stage an event belongs to.
type Stage string

const (
	StageInitialization      Stage = "initialization"
	StageDomainAnalysis      Stage = "domain_analysis"
	StagePrivacyAssessment   Stage = "privacy_assessment"
	StageBiasDetection       Stage = "bias_detection"
	StageRelationshipMapping Stage = "relationship_mapping"
	StageQualityPlanning     Stage = "quality_planning"
	StageDataGeneration      Stage = "data_generation"
	StageQualityValidation   Stage = "quality_validation"
	StageFinalAssembly       Stage = "final_assembly"
	StageCompletion          Stage = "completion"
	StageError               Stage = "error"
	StageSystem              Stage = "system"
)

// Status describes how far along the event's stage is.
type Status string

const (
	StatusStarted    Status = "started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
	StatusConnected  Status = "connected"
	StatusReady      Status = "ready"
	StatusFallback   Status = "fallback"
)

// known reports whether s is one of the defined status values. Payload
// fields carrying anything else are ignored.
func (s Status) known() bool {
	switch s {
	case StatusStarted, StatusInProgress, StatusCompleted, StatusError,
		StatusConnected, StatusReady, StatusFallback:
		return true
	}
	return false
}

// Level is the display severity of a record.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Metadata carries the optional semantic fields extracted from a frame.
// A nil field means extraction did not produce a value; fields are never
// guessed.
type Metadata struct {
	Domain            *string `json:"domain,omitempty"`
	PrivacyScore      *int    `json:"privacyScore,omitempty"`
	BiasScore         *int    `json:"biasScore,omitempty"`
	QualityScore      *int    `json:"qualityScore,omitempty"`
	RelationshipCount *int    `json:"relationshipCount,omitempty"`
	RecordCount       *int    `json:"recordCount,omitempty"`
	JobID             *string `json:"jobId,omitempty"`
	Error             *string `json:"error,omitempty"`
	DurationMs        *int64  `json:"durationMs,omitempty"`
}

// ActivityRecord is one classified event. Records are immutable once
// built; they leave the system only through eviction or Clear.
type ActivityRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Stage     Stage     `json:"type"`
	Status    Status    `json:"status"`
	Level     Level     `json:"level"`
	Agent     string    `json:"agent"`
	Message   string    `json:"message"`
	Progress  *int      `json:"progress,omitempty"`
	Metadata  Metadata  `json:"metadata"`
}

// AgentState is the lifecycle state of one pipeline agent.
type AgentState string

const (
	AgentIdle     AgentState = "idle"
	AgentActive   AgentState = "active"
	AgentComplete AgentState = "complete"
	AgentError    AgentState = "error"
)

// AgentPerformance is the per-agent rollup maintained by the tracker.
type AgentPerformance struct {
	Name            string     `json:"name"`
	Status          AgentState `json:"status"`
	TasksCompleted  int        `json:"tasksCompleted"`
	AvgResponseTime float64    `json:"avgResponseTime"` // milliseconds
	SuccessRate     float64    `json:"successRate"`     // percent, 0-100
	LastActivity    time.Time  `json:"lastActivity"`
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
