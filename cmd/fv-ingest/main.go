package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"FlowVigil/internal/config"
	"FlowVigil/internal/sink"
)

func main() {
	log.Println("Starting fv-ingest...")

	// 1. Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Connect the record store
	writer, err := sink.NewWriter(cfg.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to create ClickHouse writer: %v", err)
	}

	// 3. Subscribe to the record stream and buffer into the store
	sub, err := sink.NewSubscriber(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to create NATS subscriber: %v", err)
	}
	if err := sub.Start(writer.Append); err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	// 4. Wait for a shutdown signal for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	log.Println("Shutdown signal received, draining...")
	sub.Close()
	writer.Close()
	log.Println("Shutdown complete.")
}
