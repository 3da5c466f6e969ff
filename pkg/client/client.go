// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client is a Go client for the Dutch quote service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/luxfi/dutch/core"
	"github.com/luxfi/dutch/pkg/quote"
)

// Client talks to a dutchd quote server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new client for the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RegisterOrder submits an order and returns its canonical ID
func (c *Client) RegisterOrder(ctx context.Context, order *core.DutchOrder) (string, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/orders", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("order registration failed: %s", resp.Status)
	}

	var created struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.OrderID, nil
}

// GetQuote fetches one priced snapshot of an order
func (c *Client) GetQuote(ctx context.Context, orderID string) (*quote.QuoteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/orders/"+orderID+"/quote", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request failed: %s", resp.Status)
	}

	var q quote.QuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// StreamQuotes subscribes to an order's quote stream and invokes fn for
// each frame. Returning false from fn, a final frame, or context
// cancellation ends the stream.
func (c *Client) StreamQuotes(ctx context.Context, orderID string, fn func(quote.StreamMessage) bool) error {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") +
		"/api/v1/orders/" + orderID + "/stream"

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("stream dial failed: %w", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg quote.StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if !fn(msg) || msg.Final {
			return nil
		}
	}
}
