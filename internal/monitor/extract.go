package monitor

import (
	"regexp"
	"strconv"
	"strings"
)

// Text token patterns. Progress tokens look like "[45%]"; job ids are
// the token following the word "job".
var (
	progressPattern = regexp.MustCompile(`\[(\d{1,3})%\]`)
	jobIDPattern    = regexp.MustCompile(`(?i)\bjob\s+#?([A-Za-z0-9_-]+)`)

	fieldPatterns = map[fieldKind]*regexp.Regexp{
		fieldDomain:            regexp.MustCompile(`(?i)\bdomain(?:\s+identified)?\s*[:=]\s*([A-Za-z][\w-]*)`),
		fieldPrivacyScore:      regexp.MustCompile(`(?i)(\d{1,3})\s*%\s*privacy(?:\s+score)?`),
		fieldBiasScore:         regexp.MustCompile(`(?i)(\d{1,3})\s*%\s*bias(?:\s+score)?|bias score\s*[:=]?\s*(\d{1,3})`),
		fieldQualityScore:      regexp.MustCompile(`(?i)(\d{1,3})\s*%\s*quality(?:\s+score)?|quality score\s*[:=]?\s*(\d{1,3})`),
		fieldRelationshipCount: regexp.MustCompile(`(?i)(\d+)\s+relationship`),
		fieldRecordCount:       regexp.MustCompile(`(?i)(\d+)\s+(?:records|rows)\b`),
	}

	// payloadKeys maps extractable fields to their structured payload key.
	payloadKeys = map[fieldKind]string{
		fieldDomain:            "domain",
		fieldPrivacyScore:      "privacyScore",
		fieldBiasScore:         "biasScore",
		fieldQualityScore:      "qualityScore",
		fieldRelationshipCount: "relationshipCount",
		fieldRecordCount:       "recordCount",
	}
)

// extractProgress pulls a 0-100 progress value from the frame. A
// structured progress field wins over a text token; out-of-range or
// malformed values degrade to absent.
func extractProgress(f Frame) *int {
	if n, ok := numberField(f.Data, "progress"); ok {
		if v := int(n); v >= 0 && v <= 100 {
			return intPtr(v)
		}
		return nil
	}
	m := progressPattern.FindStringSubmatch(f.Text)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v < 0 || v > 100 {
		return nil
	}
	return intPtr(v)
}

// extractJobID finds a job identifier; absence is not an error.
func extractJobID(f Frame) *string {
	if s, ok := stringField(f.Data, "jobId"); ok && s != "" {
		return strPtr(s)
	}
	m := jobIDPattern.FindStringSubmatch(f.Text)
	if m == nil {
		return nil
	}
	return strPtr(m[1])
}

// extractFields fills metadata for the field kinds the matched rule
// declared. Structured payload values win over text captures; any value
// that fails coercion or range checks is simply left absent.
func extractFields(f Frame, kinds []fieldKind, meta *Metadata) {
	for _, kind := range kinds {
		switch kind {
		case fieldDomain:
			if s, ok := stringField(f.Data, payloadKeys[kind]); ok && s != "" {
				meta.Domain = strPtr(strings.TrimSpace(s))
			} else if m := fieldPatterns[kind].FindStringSubmatch(f.Text); m != nil {
				meta.Domain = strPtr(m[1])
			}
		case fieldPrivacyScore:
			meta.PrivacyScore = extractScore(f, kind, 0, 100)
		case fieldBiasScore:
			meta.BiasScore = extractScore(f, kind, 0, 100)
		case fieldQualityScore:
			meta.QualityScore = extractScore(f, kind, 0, 100)
		case fieldRelationshipCount:
			meta.RelationshipCount = extractScore(f, kind, 0, -1)
		case fieldRecordCount:
			meta.RecordCount = extractScore(f, kind, 0, -1)
		}
	}
}

// extractScore resolves one integer field from payload or text capture,
// enforcing [min, max] (max < 0 means unbounded above).
func extractScore(f Frame, kind fieldKind, min, max int) *int {
	if n, ok := numberField(f.Data, payloadKeys[kind]); ok {
		return boundedInt(int(n), min, max)
	}
	m := fieldPatterns[kind].FindStringSubmatch(f.Text)
	if m == nil {
		return nil
	}
	// Alternated patterns leave the unused capture group empty.
	capture := ""
	for _, g := range m[1:] {
		if g != "" {
			capture = g
			break
		}
	}
	v, err := strconv.Atoi(capture)
	if err != nil {
		return nil
	}
	return boundedInt(v, min, max)
}

func boundedInt(v, min, max int) *int {
	if v < min || (max >= 0 && v > max) {
		return nil
	}
	return intPtr(v)
}

// extractDuration reads a latency-like field from the structured payload.
func extractDuration(f Frame) *int64 {
	if n, ok := numberField(f.Data, "durationMs"); ok && n >= 0 {
		return int64Ptr(int64(n))
	}
	return nil
}

// parseFloat is the lenient numeric coercion used for string-encoded
// payload numbers ("60", "60%", " 60 ").
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
