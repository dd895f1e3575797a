package monitor

import (
	"encoding/json"
	"strings"
)

// Frame is one raw message delivered by the transport collaborator:
// either a structured envelope {type, data} or a bare text line.
type Frame struct {
	// Type is the structured event type, empty for bare text lines.
	Type string
	// Data holds the structured payload when the envelope carried an
	// object; nil otherwise.
	Data map[string]any
	// Text is the raw display line: the bare line itself, or the
	// string/message carried by a structured envelope.
	Text string
}

// frameEnvelope is the wire shape of a structured frame.
type frameEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// DecodeFrame interprets one raw message. It never fails: anything that
// is not a structured envelope is treated as a text line.
func DecodeFrame(raw []byte) Frame {
	text := strings.TrimSpace(string(raw))

	var env frameEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Type == "" {
		return Frame{Text: text}
	}

	f := Frame{Type: env.Type}
	if len(env.Data) == 0 {
		return f
	}

	// data is either an object with named fields or a plain string.
	var obj map[string]any
	if err := json.Unmarshal(env.Data, &obj); err == nil {
		f.Data = obj
		if msg, ok := stringField(obj, "message"); ok {
			f.Text = strings.TrimSpace(msg)
		}
		return f
	}
	var s string
	if err := json.Unmarshal(env.Data, &s); err == nil {
		f.Text = strings.TrimSpace(s)
	}
	return f
}

// stringField reads a string-valued key from a payload object.
func stringField(data map[string]any, key string) (string, bool) {
	if data == nil {
		return "", false
	}
	v, ok := data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// numberField reads a numeric key from a payload object, accepting the
// float64 that encoding/json produces as well as string-encoded numbers.
// The bool is false when the key is missing or not coercible.
func numberField(data map[string]any, key string) (float64, bool) {
	if data == nil {
		return 0, false
	}
	v, ok := data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		return parseFloat(n)
	default:
		return 0, false
	}
}
