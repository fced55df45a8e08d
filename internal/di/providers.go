package di

import (
	"context"
	"fmt"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/acp"
	"github.com/nicgenovese/polymarket-signal-service/internal/analyzer"
	"github.com/nicgenovese/polymarket-signal-service/internal/domain/repository"
	"github.com/nicgenovese/polymarket-signal-service/internal/handler/api"
	internalrepo "github.com/nicgenovese/polymarket-signal-service/internal/repository"
	"github.com/nicgenovese/polymarket-signal-service/internal/service/gamma"
	"github.com/nicgenovese/polymarket-signal-service/internal/signals"
	"github.com/nicgenovese/polymarket-signal-service/internal/usecase"
	"github.com/nicgenovese/polymarket-signal-service/pkg/cache"
	pkgch "github.com/nicgenovese/polymarket-signal-service/pkg/clickhouse"
	"github.com/nicgenovese/polymarket-signal-service/pkg/config"
	xhttp "github.com/nicgenovese/polymarket-signal-service/pkg/http"
	pkgkafka "github.com/nicgenovese/polymarket-signal-service/pkg/kafka"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
	"github.com/nicgenovese/polymarket-signal-service/pkg/metrics"
	"github.com/nicgenovese/polymarket-signal-service/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the market-list cache, or nil when disabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Gamma.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Gamma.Cache.Backend {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return cache.NewRedisCache(
			cache.WithRedisHost(cfg.Redis.Host),
			cache.WithRedisPort(cfg.Redis.Port),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
		)
	case "layered":
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Redis.Host),
			cache.WithRedisPort(cfg.Redis.Port),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(rc), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Gamma.Cache.Backend)
	}
}

// ProvideMarketSource creates the gamma API client.
func ProvideMarketSource(cfg *config.Config, cacheSvc cache.Service, log *logger.Logger) repository.MarketSource {
	opts := []gamma.Option{
		gamma.WithLimit(cfg.Gamma.Limit),
		gamma.WithLogger(log),
	}
	if cacheSvc != nil {
		opts = append(opts, gamma.WithCache(cacheSvc, cfg.Gamma.Cache.TTL))
	}
	return gamma.NewClient(cfg.Gamma.BaseURL, cfg.Gamma.Timeout, opts...)
}

// ProvideScanner creates the market scanner.
func ProvideScanner(source repository.MarketSource, m repository.Metrics, log *logger.Logger) *analyzer.Scanner {
	return analyzer.NewScanner(source, m, log)
}

// ProvideSequence creates the process-wide signal sequence.
func ProvideSequence() signals.Sequence {
	return &signals.Counter{}
}

// ProvidePipeline creates the signal pipeline.
func ProvidePipeline(scanner *analyzer.Scanner, seq signals.Sequence, m repository.Metrics, log *logger.Logger) *usecase.Pipeline {
	return usecase.NewPipeline(scanner, seq, m, log)
}

// ProvideSink creates the signal sink named by config: file, kafka, or
// clickhouse.
func ProvideSink(cfg *config.Config) (repository.SignalSink, error) {
	switch cfg.Sink.Type {
	case "file":
		return internalrepo.NewFileSink(cfg.Sink.Dir)
	case "kafka":
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
			pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
			pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
			pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
			pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
			pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
			pkgkafka.WithHashByKey(true),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		return internalrepo.NewKafkaSink(producer, cfg.Kafka.Topic), nil
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		table := cfg.ClickHouse.Database + "." + cfg.ClickHouse.Table

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, internalrepo.SchemaStatements(table)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}

		return internalrepo.NewClickHouseSink(client.DB(), table), nil
	default:
		return nil, fmt.Errorf("unknown sink type: %s", cfg.Sink.Type)
	}
}

// ProvideProcessor creates the batch processor.
func ProvideProcessor(sink repository.SignalSink, m repository.Metrics, log *logger.Logger) *usecase.SignalProcessor {
	return usecase.NewSignalProcessor(sink, m, log)
}

// ProvideACPService creates the marketplace-facing service.
func ProvideACPService(pipeline *usecase.Pipeline, log *logger.Logger) *acp.Service {
	return acp.NewService(pipeline, log)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(log *logger.Logger, svc *acp.Service) xhttp.Handler {
	return api.NewSignalsHandler(log, svc)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	pipeline *usecase.Pipeline,
	processor *usecase.SignalProcessor,
	handler xhttp.Handler,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, log, pipeline, processor, handler, cacheSvc)
}
