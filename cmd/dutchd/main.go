// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/luxfi/dutch/pkg/log"
	"github.com/luxfi/dutch/pkg/metric"
	"github.com/luxfi/dutch/pkg/quote"
	"github.com/luxfi/dutch/pkg/resolver"
)

var (
	port            = flag.String("port", "8080", "Quote API port")
	opsPort         = flag.String("ops-port", "9090", "Metrics/health port")
	env             = flag.String("env", "development", "Environment (development/production)")
	logLevel        = flag.String("log-level", "info", "Log level")
	displayDecimals = flag.Int("display-decimals", 18, "Token decimals for display amounts")
	streamInterval  = flag.Duration("stream-interval", time.Second, "Quote stream push interval")

	// Version info
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	flag.Parse()

	fmt.Printf("Dutch quote daemon (dutchd) %s (commit: %s)\n", Version, GitCommit)

	logger := log.NewWithLevel(*logLevel)
	defer logger.Sync()

	metrics, err := metric.NewMetrics()
	if err != nil {
		logger.Fatal("failed to create metrics", "error", err)
	}

	cfg := quote.Config{
		DisplayDecimals: int32(*displayDecimals),
		StreamInterval:  *streamInterval,
	}
	svc := quote.NewService(cfg, resolver.New(logger), metrics, logger)

	apiServer := &http.Server{
		Addr:    ":" + *port,
		Handler: quote.NewRouter(svc, *env),
	}

	opsRouter := mux.NewRouter()
	opsRouter.Handle("/metrics", metrics.Handler())
	opsRouter.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	opsServer := &http.Server{
		Addr:    ":" + *opsPort,
		Handler: opsRouter,
	}

	go func() {
		logger.Info("quote API listening", "port", *port)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("quote API failed", "error", err)
		}
	}()

	go func() {
		logger.Info("ops listener up", "port", *opsPort)
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ops listener failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("quote API shutdown", "error", err)
	}
	if err := opsServer.Shutdown(ctx); err != nil {
		logger.Error("ops listener shutdown", "error", err)
	}
}
