// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// dutch-watch subscribes to an order's quote stream and prints each
// decaying price as it arrives.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/luxfi/dutch/core"
	"github.com/luxfi/dutch/pkg/client"
	"github.com/luxfi/dutch/pkg/quote"
)

var (
	serverURL = flag.String("server", "http://localhost:8080", "dutchd base URL")
	orderID   = flag.String("order", "", "Order ID to watch")
	orderFile = flag.String("order-file", "", "JSON order to register before watching")
)

func main() {
	flag.Parse()

	if *orderID == "" && *orderFile == "" {
		fmt.Println("Error: --order or --order-file is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	c := client.New(*serverURL)

	id := *orderID
	if *orderFile != "" {
		data, err := os.ReadFile(*orderFile)
		if err != nil {
			fmt.Printf("Error reading order file: %v\n", err)
			os.Exit(1)
		}
		var order core.DutchOrder
		if err := json.Unmarshal(data, &order); err != nil {
			fmt.Printf("Error parsing order: %v\n", err)
			os.Exit(1)
		}
		id, err = c.RegisterOrder(ctx, &order)
		if err != nil {
			fmt.Printf("Error registering order: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registered order %s\n", id)
	}

	err := c.StreamQuotes(ctx, id, func(msg quote.StreamMessage) bool {
		if msg.Error != "" {
			fmt.Printf("stream closed: %s\n", msg.Error)
			return false
		}
		q := msg.Quote
		fmt.Printf("t=%d in=%s (cap %s)", q.ResolvedAt, q.Input.DisplayAmount, q.Input.MaxAmount)
		for i, out := range q.Outputs {
			fmt.Printf(" out[%d]=%s", i, out.DisplayAmount)
		}
		if msg.Final {
			fmt.Print(" [final]")
		}
		fmt.Println()
		return true
	})
	if err != nil && ctx.Err() == nil {
		fmt.Printf("Stream error: %v\n", err)
		os.Exit(1)
	}
}
