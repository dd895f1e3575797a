package monitor

import "regexp"

// DefaultAgent is the actor attributed to records no known agent claims.
const DefaultAgent = "Pipeline"

// AgentSpec declares one known pipeline agent: its display name and the
// substrings that identify it inside a message. Aliases are matched
// case-insensitively in declaration order, so more specific aliases
// belong earlier in the list.
type AgentSpec struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// DefaultAgents is the built-in roster of the generation pipeline, in
// display order. The tracker pre-seeds these at idle so the status view
// shows the full pipeline before the first frame arrives.
func DefaultAgents() []AgentSpec {
	return []AgentSpec{
		{Name: "Domain Analyzer", Aliases: []string{"domain analysis agent", "domain analyzer"}},
		{Name: "Privacy Agent", Aliases: []string{"privacy assessment agent", "privacy agent"}},
		{Name: "Bias Detector", Aliases: []string{"bias detection agent", "bias detector"}},
		{Name: "Relationship Mapper", Aliases: []string{"relationship mapping agent", "relationship mapper"}},
		{Name: "Quality Planner", Aliases: []string{"quality planning agent", "quality planner"}},
		{Name: "Data Generator", Aliases: []string{"data generation agent", "data generator"}},
		{Name: "Quality Validator", Aliases: []string{"quality validation agent", "quality validator"}},
		{Name: "Assembly Agent", Aliases: []string{"final assembly agent", "assembly agent"}},
	}
}

// fieldKind names one extractable metadata field. A rule lists the
// kinds it may legitimately carry; the extractor never scans for a
// field the matched rule did not declare.
type fieldKind int

const (
	fieldDomain fieldKind = iota
	fieldPrivacyScore
	fieldBiasScore
	fieldQualityScore
	fieldRelationshipCount
	fieldRecordCount
)

// rule is one entry of the ordered classification table. A rule matches
// when the structured step equals its step name, or when its pattern
// matches the text line. Earlier rules win; specific stage rules must
// precede the generic marker rules at the bottom of the table.
type rule struct {
	name    string
	step    string
	pattern *regexp.Regexp
	stage   Stage
	status  Status
	level   Level
	agent   string
	fields  []fieldKind
}

// defaultRule handles frames nothing else recognizes. Its level is
// resolved from generic markers at build time; stage and status stay
// generic so the record is still displayable.
var defaultRule = rule{
	name:   "fallback",
	stage:  StageSystem,
	status: StatusInProgress,
	level:  LevelInfo,
}

// ruleTable is evaluated top to bottom, first match wins. Connectivity
// and stage rules come first, generic success/error markers last, so a
// named stage is never shadowed by a bare marker.
var ruleTable = []rule{
	{
		name:    "connected",
		step:    "connected",
		pattern: regexp.MustCompile(`(?i)\bconnect(?:ed|ion established)\b`),
		stage:   StageSystem,
		status:  StatusConnected,
		level:   LevelSuccess,
	},
	{
		name:    "ready",
		step:    "ready",
		pattern: regexp.MustCompile(`(?i)\b(?:pipeline|system|generator)\s+ready\b`),
		stage:   StageSystem,
		status:  StatusReady,
		level:   LevelInfo,
	},
	{
		name:    "disconnected",
		step:    "disconnected",
		pattern: regexp.MustCompile(`(?i)\bdisconnect(?:ed|ion)\b|\bconnection (?:lost|closed)\b`),
		stage:   StageSystem,
		status:  StatusFallback,
		level:   LevelWarning,
	},
	{
		name:    "initialization",
		step:    "initialization",
		pattern: regexp.MustCompile(`(?i)\binitializ|\bstarting generation\b`),
		stage:   StageInitialization,
		status:  StatusStarted,
		level:   LevelInfo,
	},
	{
		name:    "domain_analysis",
		step:    "domain_analysis",
		pattern: regexp.MustCompile(`(?i)\bdomain[_ ]analysis\b|\bdomain analyzer\b|\banalyzing domain\b`),
		stage:   StageDomainAnalysis,
		status:  StatusInProgress,
		level:   LevelInfo,
		agent:   "Domain Analyzer",
		fields:  []fieldKind{fieldDomain},
	},
	{
		name:    "privacy_assessment",
		step:    "privacy_assessment",
		pattern: regexp.MustCompile(`(?i)\bprivacy\b`),
		stage:   StagePrivacyAssessment,
		status:  StatusInProgress,
		level:   LevelInfo,
		agent:   "Privacy Agent",
		fields:  []fieldKind{fieldPrivacyScore},
	},
	{
		name:    "bias_detection",
		step:    "bias_detection",
		pattern: regexp.MustCompile(`(?i)\bbias[_ ]detect|\bbias\b`),
		stage:   StageBiasDetection,
		status:  StatusInProgress,
		level:   LevelInfo,
		agent:   "Bias Detector",
		fields:  []fieldKind{fieldBiasScore},
	},
	{
		name:    "relationship_mapping",
		step:    "relationship_mapping",
		pattern: regexp.MustCompile(`(?i)\brelationship`),
		stage:   StageRelationshipMapping,
		status:  StatusInProgress,
		level:   LevelInfo,
		agent:   "Relationship Mapper",
		fields:  []fieldKind{fieldRelationshipCount},
	},
	{
		name:    "quality_planning",
		step:    "quality_planning",
		pattern: regexp.MustCompile(`(?i)\bquality[_ ]plan`),
		stage:   StageQualityPlanning,
		status:  StatusInProgress,
		level:   LevelInfo,
		agent:   "Quality Planner",
	},
	{
		name:    "data_generation",
		step:    "data_generation",
		pattern: regexp.MustCompile(`(?i)\bdata[_ ]generat|\bgenerat(?:ing|ed)\b`),
		stage:   StageDataGeneration,
		status:  StatusInProgress,
		level:   LevelInfo,
		agent:   "Data Generator",
		fields:  []fieldKind{fieldRecordCount},
	},
	{
		name:    "quality_validation",
		step:    "quality_validation",
		pattern: regexp.MustCompile(`(?i)\bquality[_ ]validat|\bvalidating\b|\bquality score\b`),
		stage:   StageQualityValidation,
		status:  StatusInProgress,
		level:   LevelInfo,
		agent:   "Quality Validator",
		fields:  []fieldKind{fieldQualityScore},
	},
	{
		name:    "final_assembly",
		step:    "final_assembly",
		pattern: regexp.MustCompile(`(?i)\bfinal[_ ]assembly\b|\bassembling\b`),
		stage:   StageFinalAssembly,
		status:  StatusInProgress,
		level:   LevelInfo,
		agent:   "Assembly Agent",
		fields:  []fieldKind{fieldRecordCount},
	},
	{
		name:    "completion",
		step:    "completion",
		pattern: regexp.MustCompile(`(?i)\bgeneration complete\b|\ball (?:stages|steps) complete\b|🎉`),
		stage:   StageCompletion,
		status:  StatusCompleted,
		level:   LevelSuccess,
	},
	// Generic markers: kept last so they never shadow a stage rule.
	{
		name:    "error",
		step:    "error",
		pattern: regexp.MustCompile(`(?i)\berror\b|\bfailed\b|❌|✗`),
		stage:   StageError,
		status:  StatusError,
		level:   LevelError,
	},
	{
		name:    "success",
		pattern: regexp.MustCompile(`(?i)\bsuccess|✅|✓`),
		stage:   StageSystem,
		status:  StatusInProgress,
		level:   LevelSuccess,
	},
	{
		name:    "warning",
		pattern: regexp.MustCompile(`(?i)\bwarn(?:ing)?\b|⚠`),
		stage:   StageSystem,
		status:  StatusInProgress,
		level:   LevelWarning,
	},
}
