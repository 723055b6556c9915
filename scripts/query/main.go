package main

import (
	"context"
	"flag"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	v1 "FlowVigil/api/gen/v1"
)

func main() {
	// Command-line flags
	serverAddr := flag.String("addr", "localhost:50051", "The gRPC server address")
	mode := flag.String("mode", "summary", "Query mode: 'health', 'summary' or 'trace'")
	sourceVN := flag.String("src", "", "Source virtual network filter for summary mode")
	destVN := flag.String("dst", "", "Destination virtual network filter for summary mode")
	flowUUID := flag.String("flow", "", "Flow UUID for trace mode")
	defaultEnd := time.Now().UTC().Format(time.RFC3339)
	endTimeStr := flag.String("end", defaultEnd, "End time in RFC3339 format (e.g., 2025-09-12T15:10:00Z).")

	flag.Parse()

	// Set up a connection to the server.
	conn, err := grpc.NewClient(*serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()

	client := v1.NewFlowQueryServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	switch *mode {
	case "health":
		doHealthCheck(ctx, client)
	case "summary":
		doSummaryQuery(ctx, client, *sourceVN, *destVN, *endTimeStr)
	case "trace":
		if *flowUUID == "" {
			log.Fatal("Error: -flow flag is required for trace mode")
		}
		doTraceQuery(ctx, client, *flowUUID, *endTimeStr)
	default:
		log.Fatalf("Unknown mode: %s. Use 'health', 'summary' or 'trace'", *mode)
	}
}

func doHealthCheck(ctx context.Context, client v1.FlowQueryServiceClient) {
	resp, err := client.HealthCheck(ctx, &v1.HealthCheckRequest{})
	if err != nil {
		log.Fatalf("could not perform health check: %v", err)
	}
	log.Printf("Service status: %s", resp.Status)
}

// doSummaryQuery totals traffic per virtual network pair.
func doSummaryQuery(ctx context.Context, client v1.FlowQueryServiceClient, sourceVN, destVN, endTime string) {
	log.Printf("Executing summary query for %q -> %q", sourceVN, destVN)
	log.Printf("Query params - End time: %s", endTime)

	req := &v1.VnSummaryRequest{
		SourceVn: sourceVN,
		DestVn:   destVN,
		EndTime:  parseAndConvert(endTime),
	}

	resp, err := client.SummarizeVnFlows(ctx, req)
	if err != nil {
		log.Fatalf("could not perform summary query: %v", err)
	}

	log.Println("---", "Network Pair Summaries", "---")
	if len(resp.Summaries) == 0 {
		log.Println("No data returned.")
		return
	}
	for _, summary := range resp.Summaries {
		log.Printf("  %s -> %s", summary.SourceVn, summary.DestVn)
		log.Printf("    Total Flows:   %d", summary.FlowCount)
		log.Printf("    Total Packets: %d", summary.TotalPackets)
		log.Printf("    Total Bytes:   %d", summary.TotalBytes)
	}
	log.Println("------------------------------")
}

// doTraceQuery reconstructs one flow's lifecycle.
func doTraceQuery(ctx context.Context, client v1.FlowQueryServiceClient, flowUUID, endTime string) {
	log.Printf("Executing trace query for flow %s", flowUUID)
	log.Printf("Query params - End time: %s", endTime)

	req := &v1.TraceFlowRequest{
		FlowUuid: flowUUID,
		EndTime:  parseAndConvert(endTime),
	}

	resp, err := client.TraceFlow(ctx, req)
	if err != nil {
		log.Fatalf("could not perform trace query: %v", err)
	}

	log.Println("---", "Flow Lifecycle Result", "---")
	if !resp.Found {
		log.Println("Flow not found.")
		return
	}
	log.Printf("  First Seen:    %s", time.UnixMicro(resp.FirstSeen).UTC().Format(time.RFC3339))
	log.Printf("  Last Seen:     %s", time.UnixMicro(resp.LastSeen).UTC().Format(time.RFC3339))
	log.Printf("  Records:       %d", resp.RecordCount)
	log.Printf("  Total Packets: %d", resp.TotalPackets)
	log.Printf("  Total Bytes:   %d", resp.TotalBytes)
	if last := resp.LastRecord; last != nil {
		log.Printf("  Last Record:   %s:%d -> %s:%d proto=%d on %s -> %s",
			last.SourceIp, last.SourcePort, last.DestIp, last.DestPort,
			last.Protocol, last.SourceVn, last.DestVn)
		if last.TeardownTime != 0 {
			log.Printf("  Torn Down:     %s", time.UnixMicro(last.TeardownTime).UTC().Format(time.RFC3339))
		}
	}
	log.Println("-----------------------------")
}

func parseAndConvert(endTimeStr string) int64 {
	t, err := time.Parse(time.RFC3339, endTimeStr)
	if err != nil {
		log.Fatalf("Failed to parse time string: %v", err)
	}
	return t.UnixMicro()
}
