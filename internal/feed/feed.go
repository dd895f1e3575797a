// Package feed serves a scripted synthetic-data generation run over a
// websocket, so the monitor can be exercised without the real
// generation service.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one scripted frame: either a structured envelope or a bare
// text line, emitted after its delay.
type Event struct {
	Type  string
	Data  map[string]any
	Text  string
	Delay time.Duration
}

// envelope is the wire shape of a structured frame.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// SampleRun is a full pipeline run: every stage, extracted scores and
// counts, one recoverable error, and completion.
func SampleRun() []Event {
	structured := func(typ string, data map[string]any, d time.Duration) Event {
		return Event{Type: typ, Data: data, Delay: d}
	}
	text := func(line string, d time.Duration) Event {
		return Event{Text: line, Delay: d}
	}

	return []Event{
		structured("ready", map[string]any{"message": "Generator ready"}, 200*time.Millisecond),
		structured("initialization", map[string]any{
			"message":  "🚀 Starting generation for job gen-7c21",
			"jobId":    "gen-7c21",
			"progress": 0,
		}, 300*time.Millisecond),
		text("🔄 [10%] domain_analysis: 🔍 Domain Analysis Agent analyzing schema", 400*time.Millisecond),
		structured("domain_analysis", map[string]any{
			"message":    "✅ Domain identified: healthcare",
			"domain":     "healthcare",
			"progress":   18,
			"durationMs": 820,
		}, 500*time.Millisecond),
		text("🔄 [25%] privacy_assessment: 🔒 Privacy Agent evaluating re-identification risk", 400*time.Millisecond),
		text("✅ Privacy Agent: 60% privacy score", 500*time.Millisecond),
		text("🔄 [38%] bias_detection: ⚖️ Bias Detection Agent analyzing for fairness...", 400*time.Millisecond),
		structured("bias_detection", map[string]any{
			"message":    "✅ Bias Detection Agent: bias score: 9",
			"biasScore":  9,
			"progress":   45,
			"durationMs": 1120,
		}, 500*time.Millisecond),
		text("🔄 [52%] relationship_mapping: 🔗 Relationship Mapping Agent mapped 7 relationships", 400*time.Millisecond),
		text("🔄 [60%] quality_planning: 📋 Quality Planning Agent drafting validation plan", 400*time.Millisecond),
		text("🔄 [68%] data_generation: 🧪 Data Generation Agent generating 500 rows", 500*time.Millisecond),
		text("⚠️ Data Generation Agent retrying batch 4", 300*time.Millisecond),
		structured("error", map[string]any{
			"message": "❌ Data Generation Agent: batch 4 failed, regenerating",
			"error":   "constraint violation in batch 4",
		}, 300*time.Millisecond),
		structured("data_generation", map[string]any{
			"message":     "✅ Data Generation Agent generated 500 rows",
			"recordCount": 500,
			"progress":    82,
			"durationMs":  2740,
		}, 500*time.Millisecond),
		text("🔄 [90%] quality_validation: 🧐 Quality Validation Agent validating output", 400*time.Millisecond),
		text("✅ Quality Validation Agent: 97% quality score", 400*time.Millisecond),
		text("🔄 [96%] final_assembly: 📦 Final Assembly Agent assembling dataset", 400*time.Millisecond),
		structured("completion", map[string]any{
			"message":  "🎉 Generation complete: 500 records for job gen-7c21",
			"progress": 100,
		}, 500*time.Millisecond),
	}
}

// Handler streams the scripted events to each websocket client. With
// loop enabled the run repeats until the client disconnects.
func Handler(events []Event, loop bool, logger *slog.Logger) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // local development tool
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()
		logger.Info("feed client connected", "remote", r.RemoteAddr)

		for {
			if err := playRun(r.Context(), conn, events); err != nil {
				logger.Info("feed client gone", "remote", r.RemoteAddr, "reason", err)
				return
			}
			if !loop {
				deadline := time.Now().Add(time.Second)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "run complete"), deadline)
				return
			}
		}
	}
}

func playRun(ctx context.Context, conn *websocket.Conn, events []Event) error {
	for _, ev := range events {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(ev.Delay):
		}

		var payload []byte
		if ev.Type != "" {
			data, err := json.Marshal(envelope{Type: ev.Type, Data: eventData(ev)})
			if err != nil {
				continue
			}
			payload = data
		} else {
			payload = []byte(ev.Text)
		}

		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return err
		}
	}
	return nil
}

func eventData(ev Event) any {
	if ev.Data != nil {
		return ev.Data
	}
	if ev.Text != "" {
		return ev.Text
	}
	return nil
}
