package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	v1 "FlowVigil/api/gen/v1"
	"FlowVigil/internal/config"
)

// Querier defines the interface for querying exported flow records.
type Querier interface {
	SummarizeVnFlows(ctx context.Context, req *v1.VnSummaryRequest) (*v1.VnSummaryResponse, error)
	TraceFlow(ctx context.Context, req *v1.TraceFlowRequest) (*v1.TraceFlowResponse, error)
}

// clickhouseQuerier implements the Querier interface for ClickHouse.
type clickhouseQuerier struct {
	conn clickhouse.Conn
}

// NewClickHouseQuerier creates a new querier for ClickHouse.
func NewClickHouseQuerier(cfg config.ClickHouseConfig) (Querier, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &clickhouseQuerier{conn: conn}, nil
}

func connect(cfg config.ClickHouseConfig) (clickhouse.Conn, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

// SummarizeVnFlows totals traffic per network pair. Flows are exported
// repeatedly with absolute counters, so the inner query reduces each
// flow to its latest export before summing.
func (q *clickhouseQuerier) SummarizeVnFlows(ctx context.Context, req *v1.VnSummaryRequest) (*v1.VnSummaryResponse, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			SourceVN,
			DestVN,
			SUM(LatestBytes) AS TotalBytes,
			SUM(LatestPackets) AS TotalPackets,
			COUNT(*) AS FlowCount
		FROM (
			SELECT
				SourceVN,
				DestVN,
				argMax(Bytes, ExportedAt) AS LatestBytes,
				argMax(Packets, ExportedAt) AS LatestPackets
			FROM flow_records
	`)

	var whereClauses []string
	args := []interface{}{}

	if req.EndTime != 0 {
		whereClauses = append(whereClauses, "ExportedAt <= ?")
		args = append(args, time.UnixMicro(req.EndTime).UTC())
	}
	if req.SourceVn != "" {
		whereClauses = append(whereClauses, "SourceVN = ?")
		args = append(args, req.SourceVn)
	}
	if req.DestVn != "" {
		whereClauses = append(whereClauses, "DestVN = ?")
		args = append(args, req.DestVn)
	}

	if len(whereClauses) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(whereClauses, " AND "))
	}

	queryBuilder.WriteString(`
			GROUP BY SourceVN, DestVN, FlowUUID
		)
		GROUP BY SourceVN, DestVN
		ORDER BY SourceVN, DestVN
	`)

	rows, err := q.conn.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var summaries []*v1.VnFlowSummary
	for rows.Next() {
		var summary v1.VnFlowSummary
		if err := rows.Scan(&summary.SourceVn, &summary.DestVn, &summary.TotalBytes, &summary.TotalPackets, &summary.FlowCount); err != nil {
			return nil, fmt.Errorf("failed to scan summary result: %w", err)
		}
		summaries = append(summaries, &summary)
	}

	return &v1.VnSummaryResponse{Summaries: summaries}, nil
}

// TraceFlow reconstructs the lifecycle of a single flow from its export
// history.
func (q *clickhouseQuerier) TraceFlow(ctx context.Context, req *v1.TraceFlowRequest) (*v1.TraceFlowResponse, error) {
	if req.FlowUuid == "" {
		return nil, fmt.Errorf("flow_uuid is required")
	}

	whereClauses := []string{"FlowUUID = ?"}
	args := []interface{}{req.FlowUuid}
	if req.EndTime != 0 {
		whereClauses = append(whereClauses, "ExportedAt <= ?")
		args = append(args, time.UnixMicro(req.EndTime).UTC())
	}
	where := " WHERE " + strings.Join(whereClauses, " AND ")

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			COUNT(*) AS Records,
			min(ExportedAt) AS FirstSeen,
			max(ExportedAt) AS LastSeen,
			max(Bytes) AS TotalBytes,
			max(Packets) AS TotalPackets
		FROM flow_records
	`)
	queryBuilder.WriteString(where)

	var result v1.TraceFlowResponse
	var firstSeen, lastSeen time.Time

	row := q.conn.QueryRow(ctx, queryBuilder.String(), args...)
	if err := row.Scan(&result.RecordCount, &firstSeen, &lastSeen, &result.TotalBytes, &result.TotalPackets); err != nil {
		return nil, fmt.Errorf("failed to scan flow trace result: %w", err)
	}
	if result.RecordCount == 0 {
		return &v1.TraceFlowResponse{Found: false}, nil
	}

	result.Found = true
	result.FirstSeen = firstSeen.UnixMicro()
	result.LastSeen = lastSeen.UnixMicro()

	last, err := q.lastRecord(ctx, where, args)
	if err != nil {
		return nil, err
	}
	result.LastRecord = last

	return &result, nil
}

func (q *clickhouseQuerier) lastRecord(ctx context.Context, where string, args []interface{}) (*v1.FlowRecord, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			Agent, FlowUUID, ReverseUUID,
			SourceIP, DestIP, Protocol, SourcePort, DestPort,
			SourceVN, DestVN,
			Bytes, DiffBytes, Packets, DiffPackets,
			DirectionIng, SetupTime, TeardownTime, VMName
		FROM flow_records
	`)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(" ORDER BY ExportedAt DESC LIMIT 1")

	var rec v1.FlowRecord
	var protocol uint8
	var srcPort, dstPort uint16
	var setupTime time.Time
	var teardownTime *time.Time

	row := q.conn.QueryRow(ctx, queryBuilder.String(), args...)
	err := row.Scan(
		&rec.Agent, &rec.FlowUuid, &rec.ReverseUuid,
		&rec.SourceIp, &rec.DestIp, &protocol, &srcPort, &dstPort,
		&rec.SourceVn, &rec.DestVn,
		&rec.Bytes, &rec.DiffBytes, &rec.Packets, &rec.DiffPackets,
		&rec.DirectionIng, &setupTime, &teardownTime, &rec.VmName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan flow record: %w", err)
	}

	rec.Protocol = uint32(protocol)
	rec.SourcePort = uint32(srcPort)
	rec.DestPort = uint32(dstPort)
	rec.SetupTime = setupTime.UnixMicro()
	if teardownTime != nil {
		rec.TeardownTime = teardownTime.UnixMicro()
	}
	return &rec, nil
}
