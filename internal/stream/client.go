// Package stream delivers generation pipeline frames from one
// long-lived websocket connection to a frame handler, in arrival order.
// Reconnection is the caller's concern; the client reports connectivity
// transitions and returns when the connection ends.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/synthgrid/tabwatch/internal/monitor"
)

// Handler receives each decoded frame. Handlers are invoked from the
// read loop, one frame at a time, never concurrently.
type Handler func(monitor.Frame)

// Client reads frames from a generation stream endpoint.
type Client struct {
	endpoint string
	logger   *slog.Logger
}

// New creates a client for the given ws:// or wss:// endpoint.
func New(endpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{endpoint: endpoint, logger: logger}
}

// Run connects and delivers frames to h until the connection closes or
// ctx is cancelled. Connectivity transitions are delivered as synthetic
// system frames so the monitor records them like any other event.
// A server-initiated close or cancellation returns nil; transport
// failures are returned after the disconnect frame is delivered.
func (c *Client) Run(ctx context.Context, h Handler) error {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("websocket connect: %w", err)
	}

	// Track connection state for proper cleanup
	var mu sync.Mutex
	closed := false
	closeConn := func() {
		mu.Lock()
		defer mu.Unlock()
		if !closed {
			closed = true
			conn.Close()
		}
	}
	defer closeConn()

	// Unblock the read loop when the caller gives up.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			closeConn()
		case <-done:
		}
	}()

	c.logger.Info("stream connected", "endpoint", c.endpoint)
	h(monitor.Frame{Type: "connected", Text: "Connected to generation stream"})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h(monitor.Frame{Type: "disconnected", Text: "Generation stream disconnected"})
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info("stream closed by server")
				return nil
			}
			c.logger.Warn("stream read failed", "error", err)
			return fmt.Errorf("read frame: %w", err)
		}
		h(monitor.DecodeFrame(data))
	}
}
