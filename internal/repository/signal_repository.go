package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/repository"
	pkgkafka "github.com/nicgenovese/polymarket-signal-service/pkg/kafka"
)

// FileSink writes each batch to a timestamped JSON file under dir.
type FileSink struct {
	dir string
}

// NewFileSink creates the sink and its target directory.
func NewFileSink(dir string) (repository.SignalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sink dir: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) Save(_ context.Context, batch *models.SignalBatch) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	name := fmt.Sprintf("signals_%s.json", batch.GeneratedAt.UTC().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *FileSink) Close() error {
	return nil
}

// KafkaSink publishes each signal of a batch as one message keyed by
// market id.
type KafkaSink struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSink creates a Kafka-backed sink.
func NewKafkaSink(producer *pkgkafka.Producer, topic string) repository.SignalSink {
	return &KafkaSink{producer: producer, topic: topic}
}

func (s *KafkaSink) Save(ctx context.Context, batch *models.SignalBatch) error {
	msgs := make([]pkgkafka.Message, len(batch.Signals))
	for i, sig := range batch.Signals {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(sig.MarketID),
			Value: sig,
		}
	}
	return s.producer.PublishBatch(ctx, s.topic, msgs)
}

func (s *KafkaSink) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}

// ClickHouseSink inserts batches into a signals table.
type ClickHouseSink struct {
	db    *sql.DB
	table string
}

// NewClickHouseSink creates a ClickHouse-backed sink. The db handle is
// owned by the caller.
func NewClickHouseSink(db *sql.DB, table string) repository.SignalSink {
	return &ClickHouseSink{db: db, table: table}
}

// SchemaStatements returns the DDL the sink's table needs.
func SchemaStatements(table string) []string {
	return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		signal_id String,
		created_at DateTime,
		market_id String,
		market_question String,
		action String,
		side String,
		confidence Int32,
		entry_price Float64,
		target_price Nullable(Float64),
		stop_loss Nullable(Float64),
		position_size Float64,
		opportunity_score Float64,
		volume Float64,
		liquidity Float64
	) ENGINE = MergeTree() ORDER BY (created_at, signal_id)`, table)}
}

func (s *ClickHouseSink) Save(ctx context.Context, batch *models.SignalBatch) error {
	if len(batch.Signals) == 0 {
		return nil
	}

	values := make([]string, 0, len(batch.Signals))
	args := make([]interface{}, 0, len(batch.Signals)*14)
	for _, sig := range batch.Signals {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			sig.ID,
			sig.CreatedAt,
			sig.MarketID,
			sig.Question,
			string(sig.Action),
			string(sig.Side),
			sig.Confidence,
			sig.EntryPrice,
			nullable(sig.TargetPrice),
			nullable(sig.StopLoss),
			sig.PositionSize,
			sig.Data.OpportunityScore,
			sig.Data.Volume,
			sig.Data.Liquidity,
		)
	}

	q := fmt.Sprintf("INSERT INTO %s (signal_id, created_at, market_id, market_question, action, side, confidence, entry_price, target_price, stop_loss, position_size, opportunity_score, volume, liquidity) VALUES %s",
		s.table, strings.Join(values, ","))

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert signals: %w", err)
	}
	return nil
}

func (s *ClickHouseSink) Close() error {
	return nil
}

func nullable(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
