package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"FlowVigil/internal/config"
	"FlowVigil/internal/engine/manager"
	"FlowVigil/internal/sink"
)

func main() {
	log.Println("Starting fv-agent...")

	// 1. Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Connect the record transport
	publisher, err := sink.NewPublisher(cfg.NATS, cfg.Agent.Name)
	if err != nil {
		log.Fatalf("Failed to create NATS publisher: %v", err)
	}

	// 3. Build and start the aging engine
	mgr, err := manager.New(cfg, publisher)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	mgr.RegisterMetrics(prometheus.DefaultRegisterer)

	if err := mgr.Start(); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	// 4. Serve metrics and the debug traffic matrix
	httpServer := startMetricsServer(cfg.Metrics.Addr, mgr)

	// 5. Wait for a shutdown signal for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	log.Println("Shutdown signal received, stopping engine...")
	mgr.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)

	log.Println("Shutdown complete.")
}

func startMetricsServer(addr string, mgr *manager.Manager) *http.Server {
	if addr == "" {
		addr = ":9135"
	}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/debug/vn", mgr.VnStats()).Methods("GET")

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}
	go func() {
		log.Printf("Metrics server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Metrics server error: %v", err)
		}
	}()
	return srv
}
