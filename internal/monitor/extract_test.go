package monitor

import "testing"

func TestExtractProgress(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  *int
	}{
		{"text token", Frame{Text: "🔄 [45%] working"}, intPtr(45)},
		{"zero", Frame{Text: "[0%] starting"}, intPtr(0)},
		{"hundred", Frame{Text: "[100%] done"}, intPtr(100)},
		{"out of range degrades to absent", Frame{Text: "[150%] weird"}, nil},
		{"no token", Frame{Text: "45% of rows processed"}, nil},
		{"structured overrides text", Frame{Data: map[string]any{"progress": float64(80)}, Text: "[20%]"}, intPtr(80)},
		{"structured out of range", Frame{Data: map[string]any{"progress": float64(120)}, Text: "plain"}, nil},
		{"structured string coercion", Frame{Data: map[string]any{"progress": "55"}}, intPtr(55)},
		{"structured garbage degrades", Frame{Data: map[string]any{"progress": "n/a"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractProgress(tt.frame)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("extractProgress() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("extractProgress() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestExtractJobID(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  string // empty means absent
	}{
		{"token after job", Frame{Text: "started job gen-42f for tenant acme"}, "gen-42f"},
		{"hash prefix", Frame{Text: "resuming job #1234"}, "1234"},
		{"structured field", Frame{Data: map[string]any{"jobId": "abc"}, Text: "no token here"}, "abc"},
		{"absent is not an error", Frame{Text: "nothing to see"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJobID(tt.frame)
			if tt.want == "" {
				if got != nil {
					t.Errorf("extractJobID() = %q, want absent", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("extractJobID() = nil, want %q", tt.want)
			}
			if *got != tt.want {
				t.Errorf("extractJobID() = %q, want %q", *got, tt.want)
			}
		})
	}
}

func TestExtractFields_RuleGated(t *testing.T) {
	// Scores are only pulled when the rule declares them.
	f := Frame{Text: "✅ Privacy Agent: 60% privacy score"}

	var withRule Metadata
	extractFields(f, []fieldKind{fieldPrivacyScore}, &withRule)
	if withRule.PrivacyScore == nil || *withRule.PrivacyScore != 60 {
		t.Errorf("PrivacyScore = %v, want 60", withRule.PrivacyScore)
	}

	var withoutRule Metadata
	extractFields(f, nil, &withoutRule)
	if withoutRule.PrivacyScore != nil {
		t.Errorf("PrivacyScore = %d, want absent when rule does not declare it", *withoutRule.PrivacyScore)
	}
}

func TestExtractFields_Coercion(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		kinds []fieldKind
		check func(t *testing.T, m Metadata)
	}{
		{
			name:  "bias score from text",
			frame: Frame{Text: "bias score: 12"},
			kinds: []fieldKind{fieldBiasScore},
			check: func(t *testing.T, m Metadata) {
				if m.BiasScore == nil || *m.BiasScore != 12 {
					t.Errorf("BiasScore = %v, want 12", m.BiasScore)
				}
			},
		},
		{
			name:  "quality score percent form",
			frame: Frame{Text: "97% quality score achieved"},
			kinds: []fieldKind{fieldQualityScore},
			check: func(t *testing.T, m Metadata) {
				if m.QualityScore == nil || *m.QualityScore != 97 {
					t.Errorf("QualityScore = %v, want 97", m.QualityScore)
				}
			},
		},
		{
			name:  "relationship count",
			frame: Frame{Text: "mapped 7 relationships between tables"},
			kinds: []fieldKind{fieldRelationshipCount},
			check: func(t *testing.T, m Metadata) {
				if m.RelationshipCount == nil || *m.RelationshipCount != 7 {
					t.Errorf("RelationshipCount = %v, want 7", m.RelationshipCount)
				}
			},
		},
		{
			name:  "domain from structured payload",
			frame: Frame{Data: map[string]any{"domain": "healthcare"}},
			kinds: []fieldKind{fieldDomain},
			check: func(t *testing.T, m Metadata) {
				if m.Domain == nil || *m.Domain != "healthcare" {
					t.Errorf("Domain = %v, want healthcare", m.Domain)
				}
			},
		},
		{
			name:  "malformed structured value degrades to absent",
			frame: Frame{Data: map[string]any{"privacyScore": "sixty"}},
			kinds: []fieldKind{fieldPrivacyScore},
			check: func(t *testing.T, m Metadata) {
				if m.PrivacyScore != nil {
					t.Errorf("PrivacyScore = %d, want absent", *m.PrivacyScore)
				}
			},
		},
		{
			name:  "score above 100 degrades to absent",
			frame: Frame{Data: map[string]any{"qualityScore": float64(430)}},
			kinds: []fieldKind{fieldQualityScore},
			check: func(t *testing.T, m Metadata) {
				if m.QualityScore != nil {
					t.Errorf("QualityScore = %d, want absent", *m.QualityScore)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Metadata
			extractFields(tt.frame, tt.kinds, &m)
			tt.check(t, m)
		})
	}
}

func TestExtractDuration(t *testing.T) {
	f := Frame{Data: map[string]any{"durationMs": float64(230)}}
	got := extractDuration(f)
	if got == nil || *got != 230 {
		t.Errorf("extractDuration() = %v, want 230", got)
	}
	if extractDuration(Frame{Text: "no duration"}) != nil {
		t.Error("extractDuration() should be absent without payload field")
	}
}
