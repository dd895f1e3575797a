package feed_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthgrid/tabwatch/internal/feed"
	"github.com/synthgrid/tabwatch/internal/monitor"
	"github.com/synthgrid/tabwatch/internal/stream"
)

// TestSampleRun_ClassifiesEndToEnd plays the scripted run through the
// real websocket transport into a monitor and checks the aggregate
// outcome of a complete generation.
func TestSampleRun_ClassifiesEndToEnd(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Zero the pacing so the test runs instantly.
	events := feed.SampleRun()
	for i := range events {
		events[i].Delay = 0
	}

	srv := httptest.NewServer(feed.Handler(events, false, logger))
	t.Cleanup(srv.Close)

	m := monitor.New(monitor.Options{Logger: logger})
	c := stream.New(strings.Replace(srv.URL, "http://", "ws://", 1), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, c.Run(ctx, m.Ingest))

	// connected + scripted events + disconnected
	records := m.Records()
	require.Len(t, records, len(events)+2)

	assert.Equal(t, 100, m.Progress())

	// The completion record sits just behind the disconnect frame.
	completion := records[1]
	assert.Equal(t, monitor.StageCompletion, completion.Stage)
	assert.Equal(t, monitor.StatusCompleted, completion.Status)
	assert.Equal(t, monitor.LevelSuccess, completion.Level)

	byName := map[string]monitor.AgentPerformance{}
	for _, a := range m.Agents() {
		byName[a.Name] = a
	}

	dg := byName["Data Generator"]
	assert.Equal(t, monitor.AgentActive, dg.Status, "success after the failed batch reactivates the agent")
	assert.Greater(t, dg.TasksCompleted, 1)
	assert.Less(t, dg.SuccessRate, 100.0, "the failed batch lowers the rate")
	assert.Greater(t, byName["Bias Detector"].AvgResponseTime, 0.0)

	// Scores extracted along the way.
	var sawPrivacy, sawQuality, sawRecords bool
	for _, rec := range records {
		if rec.Metadata.PrivacyScore != nil {
			sawPrivacy = true
		}
		if rec.Metadata.QualityScore != nil {
			sawQuality = true
		}
		if rec.Metadata.RecordCount != nil {
			sawRecords = true
		}
	}
	assert.True(t, sawPrivacy, "privacy score extracted")
	assert.True(t, sawQuality, "quality score extracted")
	assert.True(t, sawRecords, "record count extracted")
}
