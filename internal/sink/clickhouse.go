package sink

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	v1 "FlowVigil/api/gen/v1"
	"FlowVigil/internal/config"
)

const createTableStatement = `
CREATE TABLE IF NOT EXISTS flow_records (
    ExportedAt   DateTime64(6),
    Agent        String,
    FlowUUID     String,
    ReverseUUID  String,
    SourceIP     String,
    DestIP       String,
    Protocol     UInt8,
    SourcePort   UInt16,
    DestPort     UInt16,
    SourceVN     String,
    DestVN       String,
    Bytes        UInt64,
    DiffBytes    UInt64,
    Packets      UInt64,
    DiffPackets  UInt64,
    DirectionIng Bool,
    SetupTime    DateTime64(6),
    TeardownTime Nullable(DateTime64(6)),
    VMName       String
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(ExportedAt)
ORDER BY (SourceVN, DestVN, ExportedAt);
`

// maxPendingRecords forces a flush before the interval when the ingest
// stream runs hot.
const maxPendingRecords = 5000

type pendingRecord struct {
	rec *v1.FlowRecord
	at  time.Time
}

// Writer batches flow records into the ClickHouse flow_records table.
type Writer struct {
	conn     driver.Conn
	interval time.Duration

	mu  sync.Mutex
	buf []pendingRecord

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWriter connects to ClickHouse, ensures the table exists and starts
// the background flusher.
func NewWriter(cfg config.ClickHouseConfig) (*Writer, error) {
	conn, err := connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	if err := conn.Exec(context.Background(), createTableStatement); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	log.Println("Successfully connected to ClickHouse and ensured table exists.")

	interval := 5 * time.Second
	if cfg.FlushInterval != "" {
		interval, err = time.ParseDuration(cfg.FlushInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to parse flush_interval: %w", err)
		}
	}

	w := &Writer{conn: conn, interval: interval, done: make(chan struct{})}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
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

// Append queues one record for the next batch.
func (w *Writer) Append(rec *v1.FlowRecord) {
	w.mu.Lock()
	w.buf = append(w.buf, pendingRecord{rec: rec, at: time.Now()})
	full := len(w.buf) >= maxPendingRecords
	w.mu.Unlock()

	if full {
		if err := w.Flush(); err != nil {
			log.Printf("Failed to flush flow records: %v", err)
		}
	}
}

// Flush writes every queued record as one batch insert. When the insert
// fails the records return to the head of the buffer for the next attempt.
func (w *Writer) Flush() error {
	w.mu.Lock()
	pending := w.buf
	w.buf = nil
	w.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	batch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO flow_records")
	if err != nil {
		w.requeue(pending)
		return fmt.Errorf("failed to prepare batch: %w", err)
	}
	for _, p := range pending {
		rec := p.rec
		var teardown *time.Time
		if rec.TeardownTime != 0 {
			td := time.UnixMicro(rec.TeardownTime).UTC()
			teardown = &td
		}
		err = batch.Append(
			p.at,
			rec.Agent,
			rec.FlowUuid,
			rec.ReverseUuid,
			rec.SourceIp,
			rec.DestIp,
			uint8(rec.Protocol),
			uint16(rec.SourcePort),
			uint16(rec.DestPort),
			rec.SourceVn,
			rec.DestVn,
			rec.Bytes,
			rec.DiffBytes,
			rec.Packets,
			rec.DiffPackets,
			rec.DirectionIng,
			time.UnixMicro(rec.SetupTime).UTC(),
			teardown,
			rec.VmName,
		)
		if err != nil {
			return fmt.Errorf("failed to append record to batch: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		w.requeue(pending)
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Wrote %d flow records to ClickHouse", len(pending))
	return nil
}

// requeue puts an unwritten batch back at the head of the buffer, keeping
// arrival order for the retry. Oldest records are dropped once the buffer
// exceeds its cap.
func (w *Writer) requeue(pending []pendingRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(pending, w.buf...)
	if excess := len(w.buf) - maxPendingRecords; excess > 0 {
		log.Printf("Dropping %d flow records after repeated failed flushes", excess)
		w.buf = w.buf[excess:]
	}
}

func (w *Writer) run() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			if err := w.Flush(); err != nil {
				log.Printf("Failed to flush flow records: %v", err)
			}
		}
	}
}

// Close stops the flusher, writes any remaining records and closes the
// connection.
func (w *Writer) Close() {
	close(w.done)
	w.wg.Wait()
	if err := w.Flush(); err != nil {
		log.Printf("Failed to flush flow records on close: %v", err)
	}
	w.conn.Close()
}
