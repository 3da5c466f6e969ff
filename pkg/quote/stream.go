// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quote

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamMessage is one frame of a quote stream.
type StreamMessage struct {
	Quote *QuoteResponse `json:"quote,omitempty"`
	Final bool           `json:"final,omitempty"`
	Error string         `json:"error,omitempty"`
}

// handleStream upgrades the connection and pushes a fresh quote every
// interval. The stream ends with a final frame once the decay window
// has fully closed or the order expires, or earlier when the client
// disconnects.
func (s *Service) handleStream(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := s.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("stream upgrade failed", "order", id, "error", err)
		return
	}
	defer conn.Close()

	s.metrics.ActiveStreams.Inc()
	defer s.metrics.ActiveStreams.Dec()
	s.log.Debug("quote stream opened", "order", id, "remote", c.Request.RemoteAddr)

	// Reader goroutine only detects client close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.StreamInterval)
	defer ticker.Stop()

	for {
		resolved, err := s.resolver.Resolve(order)
		if err != nil {
			// Expiry and misconfiguration both end the stream for good.
			conn.WriteJSON(StreamMessage{Final: true, Error: err.Error()})
			return
		}

		msg := StreamMessage{Quote: s.buildResponse(resolved)}
		if resolved.ResolvedAt >= order.DecayEndTime {
			// Fully decayed; the price cannot move again.
			msg.Final = true
		}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
		if msg.Final {
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
