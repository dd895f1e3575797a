package monitor

import "regexp"

// Generic severity markers. Error outranks warning outranks success
// when a message carries more than one.
var (
	errorMarker   = regexp.MustCompile(`❌|✗|(?i)\berror\b|\bfail(?:ed|ure)?\b`)
	warningMarker = regexp.MustCompile(`⚠|(?i)\bwarn(?:ing)?\b`)
	successMarker = regexp.MustCompile(`✅|✔|✓|(?i)\bsuccess(?:ful|fully)?\b`)
)

// Classifier matches frames against the ordered rule table. It has no
// mutable state: identical frames always select the same rule.
type Classifier struct {
	rules []rule
}

// NewClassifier returns a classifier over the built-in rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: ruleTable}
}

// match is the outcome of classification: the winning rule and whether
// it was selected by an explicit structured step rather than text.
type match struct {
	rule   rule
	byStep bool
}

// Classify evaluates the rule table top to bottom and returns the first
// hit, or the default rule when nothing matches. An explicit step in
// the structured payload takes precedence over text inference.
func (c *Classifier) Classify(f Frame) match {
	step := f.Type
	if s, ok := stringField(f.Data, "step"); ok && s != "" {
		step = s
	}
	if step != "" {
		for _, r := range c.rules {
			if r.step != "" && r.step == step {
				return match{rule: r, byStep: true}
			}
		}
	}
	if f.Text != "" {
		for _, r := range c.rules {
			if r.pattern != nil && r.pattern.MatchString(f.Text) {
				return match{rule: r}
			}
		}
	}
	return match{rule: defaultRule}
}

// markerLevel derives a severity from explicit markers in the payload
// or message. The bool is false when no marker is present.
func markerLevel(f Frame) (Level, bool) {
	if s, ok := stringField(f.Data, "level"); ok {
		switch Level(s) {
		case LevelInfo, LevelSuccess, LevelWarning, LevelError:
			return Level(s), true
		}
	}
	if f.Text == "" {
		return "", false
	}
	switch {
	case errorMarker.MatchString(f.Text):
		return LevelError, true
	case warningMarker.MatchString(f.Text):
		return LevelWarning, true
	case successMarker.MatchString(f.Text):
		return LevelSuccess, true
	}
	return "", false
}
