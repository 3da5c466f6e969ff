// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package quote keeps a book of resting Dutch orders and serves live
// decayed prices for them.
package quote

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/luxfi/dutch/core"
	"github.com/luxfi/dutch/pkg/ids"
	"github.com/luxfi/dutch/pkg/log"
	"github.com/luxfi/dutch/pkg/metric"
	"github.com/luxfi/dutch/pkg/resolver"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("order already registered")
)

// Config controls quote presentation and streaming cadence.
type Config struct {
	// DisplayDecimals converts raw base-unit amounts into display
	// amounts; 18 matches the common ERC-20 default.
	DisplayDecimals int32

	// StreamInterval is the push cadence for quote streams.
	StreamInterval time.Duration
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		DisplayDecimals: 18,
		StreamInterval:  time.Second,
	}
}

// Service is an in-memory book of resting orders with live pricing.
type Service struct {
	mu       sync.RWMutex
	orders   map[ids.ID]*core.DutchOrder
	cfg      Config
	resolver *resolver.Resolver
	metrics  *metric.Metrics
	log      log.Logger
}

// NewService creates a quote service
func NewService(cfg Config, r *resolver.Resolver, m *metric.Metrics, logger log.Logger) *Service {
	if cfg.StreamInterval <= 0 {
		cfg.StreamInterval = time.Second
	}
	return &Service{
		orders:   make(map[ids.ID]*core.DutchOrder),
		cfg:      cfg,
		resolver: r,
		metrics:  m,
		log:      logger,
	}
}

// Register validates and prices the order once, then adds it to the
// book under its canonical hash. Misconfigured orders are rejected here
// so the book only ever holds quotable orders.
func (s *Service) Register(order *core.DutchOrder) (ids.ID, error) {
	if _, err := s.resolver.Resolve(order); err != nil {
		return ids.Empty, err
	}

	id := order.Hash()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[id]; exists {
		return ids.Empty, ErrDuplicateOrder
	}
	s.orders[id] = order
	s.metrics.OrdersRegistered.Inc()

	s.log.Info("order registered",
		"order", id,
		"decay_start", order.DecayStartTime,
		"decay_end", order.DecayEndTime,
		"outputs", len(order.Outputs))

	return id, nil
}

// Get returns a registered order
func (s *Service) Get(id ids.ID) (*core.DutchOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List returns all registered orders
func (s *Service) List() []*core.DutchOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*core.DutchOrder, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	return orders
}

// Remove drops an order from the book
func (s *Service) Remove(id ids.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[id]; !exists {
		return ErrOrderNotFound
	}
	delete(s.orders, id)
	s.metrics.OrdersRemoved.Inc()

	s.log.Info("order removed", "order", id)
	return nil
}

// Quote prices a registered order at the current instant.
func (s *Service) Quote(id ids.ID) (*QuoteResponse, error) {
	started := time.Now()

	order, err := s.Get(id)
	if err != nil {
		s.metrics.QuotesServed.WithLabelValues("not_found").Inc()
		return nil, err
	}

	resolved, err := s.resolver.Resolve(order)
	if err != nil {
		s.metrics.QuotesServed.WithLabelValues("rejected").Inc()
		return nil, err
	}

	s.metrics.QuoteLatency.Observe(time.Since(started).Seconds())
	s.metrics.QuotesServed.WithLabelValues("ok").Inc()

	return s.buildResponse(resolved), nil
}

// QuoteResponse is one priced snapshot of an order.
type QuoteResponse struct {
	QuoteID    string     `json:"quote_id"`
	OrderID    string     `json:"order_id"`
	ResolvedAt uint64     `json:"resolved_at"`
	Input      LegQuote   `json:"input"`
	Outputs    []LegQuote `json:"outputs"`
}

// LegQuote carries one resolved leg, raw and display-scaled.
type LegQuote struct {
	Token         string `json:"token"`
	Amount        string `json:"amount"`
	DisplayAmount string `json:"display_amount"`
	MaxAmount     string `json:"max_amount,omitempty"`
	Recipient     string `json:"recipient,omitempty"`
}

func (s *Service) buildResponse(resolved *core.ResolvedOrder) *QuoteResponse {
	resp := &QuoteResponse{
		QuoteID:    uuid.NewString(),
		OrderID:    resolved.OrderID.String(),
		ResolvedAt: resolved.ResolvedAt,
		Input: LegQuote{
			Token:         resolved.Input.Token.Hex(),
			Amount:        resolved.Input.Amount.Dec(),
			DisplayAmount: s.display(resolved.Input.Amount.Dec()),
			MaxAmount:     resolved.Input.MaxAmount.Dec(),
		},
		Outputs: make([]LegQuote, len(resolved.Outputs)),
	}
	for i, out := range resolved.Outputs {
		resp.Outputs[i] = LegQuote{
			Token:         out.Token.Hex(),
			Amount:        out.Amount.Dec(),
			DisplayAmount: s.display(out.Amount.Dec()),
			Recipient:     out.Recipient.Hex(),
		}
	}
	return resp
}

// display rescales a raw base-unit amount into token units.
func (s *Service) display(raw string) string {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return d.Shift(-s.cfg.DisplayDecimals).String()
}
