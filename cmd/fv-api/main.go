package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/grpc"

	v1 "FlowVigil/api/gen/v1"
	"FlowVigil/internal/config"
	"FlowVigil/internal/query"
)

// ---- Grafana-specific structs ----
type QueryRequest struct {
	Targets []struct {
		Target string `json:"target"`
	} `json:"targets"`
	Range struct {
		From time.Time `json:"from"`
		To   time.Time `json:"to"`
	} `json:"range"`
}

type TimeSeriesResponse struct {
	Target     string      `json:"target"`
	Datapoints [][]float64 `json:"datapoints"` // [ [value, timestamp_ms], ... ]
}

// ---- gRPC service implementation ----
type FlowQueryServer struct {
	v1.UnimplementedFlowQueryServiceServer
	querier query.Querier
}

func (s *FlowQueryServer) HealthCheck(ctx context.Context, req *v1.HealthCheckRequest) (*v1.HealthCheckResponse, error) {
	log.Println("Received HealthCheck request")
	return &v1.HealthCheckResponse{Status: "ok"}, nil
}

func (s *FlowQueryServer) SummarizeVnFlows(ctx context.Context, req *v1.VnSummaryRequest) (*v1.VnSummaryResponse, error) {
	log.Printf("Received SummarizeVnFlows request for %q -> %q, end: %d", req.SourceVn, req.DestVn, req.EndTime)
	return s.querier.SummarizeVnFlows(ctx, req)
}

func (s *FlowQueryServer) TraceFlow(ctx context.Context, req *v1.TraceFlowRequest) (*v1.TraceFlowResponse, error) {
	log.Printf("Received TraceFlow request for flow %s, end: %d", req.FlowUuid, req.EndTime)
	return s.querier.TraceFlow(ctx, req)
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	querier, err := query.NewClickHouseQuerier(cfg.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to create querier: %v", err)
	}

	service := &FlowQueryServer{querier: querier}

	// Run gRPC server
	grpcServer := grpc.NewServer()
	v1.RegisterFlowQueryServiceServer(grpcServer, service)

	lis, err := net.Listen("tcp", cfg.API.GrpcListenAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.API.GrpcListenAddr, err)
	}
	go func() {
		log.Printf("gRPC API server starting on %s", cfg.API.GrpcListenAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	// Run HTTP server for Grafana
	httpServer := &http.Server{
		Addr:    cfg.API.HttpListenAddr,
		Handler: newHTTPHandler(service),
	}

	go func() {
		log.Printf("HTTP server (Grafana) starting on %s", cfg.API.HttpListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Servers shutting down...")

	grpcServer.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)

	log.Println("All servers exited.")
}

// ---- HTTP handler for Grafana ----
//
// A target selects a network pair: "frontend->backend" totals one
// direction, a bare "frontend" totals every destination.
func newHTTPHandler(s *FlowQueryServer) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/query", func(w http.ResponseWriter, r *http.Request) {
		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		endTime := req.Range.To
		if endTime.IsZero() {
			endTime = time.Now()
		}

		var response []TimeSeriesResponse
		for _, target := range req.Targets {
			sourceVN, destVN := splitTarget(target.Target)
			sumReq := &v1.VnSummaryRequest{
				SourceVn: sourceVN,
				DestVn:   destVN,
				EndTime:  endTime.UnixMicro(),
			}

			sumResp, err := s.SummarizeVnFlows(r.Context(), sumReq)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			var totalBytes float64
			for _, summary := range sumResp.Summaries {
				totalBytes += float64(summary.TotalBytes)
			}

			ts := TimeSeriesResponse{
				Target: target.Target,
				Datapoints: [][]float64{
					{totalBytes, float64(endTime.Unix() * 1000)},
				},
			}
			response = append(response, ts)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}).Methods("POST")

	return r
}

func splitTarget(target string) (string, string) {
	parts := strings.SplitN(target, "->", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(target), ""
}
