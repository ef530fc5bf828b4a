package di

import (
	"context"
	"fmt"
	"time"

	"AgriPulse/internal/domain/repository"
	"AgriPulse/internal/handler/api"
	mid "AgriPulse/internal/middleware"
	internalrepo "AgriPulse/internal/repository"
	"AgriPulse/internal/services/analytics"
	"AgriPulse/internal/service/agmarknet"
	icache "AgriPulse/internal/service/cache"
	"AgriPulse/internal/service/ratelimit"
	"AgriPulse/internal/usecase"
	pkgcache "AgriPulse/pkg/cache"
	pkgch "AgriPulse/pkg/clickhouse"
	"AgriPulse/pkg/config"
	xhttp "AgriPulse/pkg/http"
	pkgkafka "AgriPulse/pkg/kafka"
	applogger "AgriPulse/pkg/logger"
	"AgriPulse/pkg/metrics"
	"AgriPulse/pkg/server"
	"AgriPulse/pkg/util"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideClickHouseClient creates a ClickHouse client and initializes the
// price schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvidePriceStore creates the ClickHouse price store and runs schema DDL.
func ProvidePriceStore(chClient *pkgch.Client, logger *applogger.Logger) (repository.PriceStore, error) {
	store := internalrepo.NewCHPriceStore(chClient)
	store.SetLogger(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClock provides the wall clock.
func ProvideClock() util.Clock {
	return util.SystemClock()
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
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
	return producer, nil
}

// ProvideKafkaConsumer creates the price-ingest consumer, or nil when the
// consumer is disabled in config.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	consumer.WithConsumerHook(pkgkafka.NoopHook{})
	return consumer, nil
}

// ProvideAlertNotifier creates the Kafka publisher for alert triggers.
func ProvideAlertNotifier(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertNotifier {
	return internalrepo.NewKafkaAlertNotifier(producer, cfg.Kafka.AlertsTopic)
}

// ProvideFeedSource creates the rate-limited Agmarknet client.
func ProvideFeedSource(cfg *config.Config, logger *applogger.Logger) repository.FeedSource {
	return agmarknet.New(agmarknet.Config{
		BaseURL:    cfg.Agmarknet.BaseURL,
		ResourceID: cfg.Agmarknet.ResourceID,
		APIKey:     cfg.Agmarknet.APIKey,
		Timeout:    cfg.Agmarknet.Timeout,
		MaxRPS:     cfg.Agmarknet.MaxRPS,
	}, ratelimit.New(), logger)
}

// ProvideFeedCache creates the TTL cache in front of the government feed,
// with Redis as a second level when enabled.
func ProvideFeedCache(cfg *config.Config, logger *applogger.Logger) *icache.FeedCache {
	opts := []icache.FeedCacheOption{}
	if cfg.Agmarknet.CacheTTL > 0 {
		opts = append(opts, icache.WithTTL(cfg.Agmarknet.CacheTTL))
	}
	if cfg.Redis.Enabled {
		l2, err := pkgcache.NewRedisCache(
			pkgcache.WithRedisHost(cfg.Redis.Host),
			pkgcache.WithRedisPort(cfg.Redis.Port),
			pkgcache.WithRedisPassword(cfg.Redis.Password),
			pkgcache.WithRedisDB(cfg.Redis.DB),
		)
		if err != nil {
			// Redis is an optimization; run on the local level alone.
			logger.Warn("redis unavailable, feed cache runs local-only", applogger.Error(err))
		} else {
			opts = append(opts, icache.WithL2(l2))
		}
	}
	return icache.NewFeedCache(opts...)
}

// ProvideObservationProcessor creates the shared ingestion processor.
func ProvideObservationProcessor(store repository.PriceStore, m repository.Metrics, logger *applogger.Logger) *usecase.ObservationProcessor {
	return usecase.NewObservationProcessor(store, m, logger)
}

// ProvideKafkaPricesHandler registers the handler for the prices topic.
func ProvideKafkaPricesHandler(proc *usecase.ObservationProcessor, m repository.Metrics, cfg *config.Config) *usecase.KafkaPricesHandler {
	return usecase.NewKafkaPricesHandler(cfg.Kafka.PricesTopic, proc, m)
}

// ProvideFeedCollector creates the periodic feed sweep with a buffering
// pipeline between the sweep and the store.
func ProvideFeedCollector(cfg *config.Config, source repository.FeedSource, proc *usecase.ObservationProcessor, m repository.Metrics, logger *applogger.Logger) *usecase.FeedCollector {
	pipe := mid.NewIngestPipeline(proc, m,
		mid.WithBatchSize(cfg.Collector.BatchSize),
		mid.WithBufferSize(64),
	)
	return usecase.NewFeedCollector(usecase.FeedCollectorConfig{
		Interval:    cfg.Collector.Interval,
		Commodities: cfg.Collector.Commodities,
		States:      cfg.Collector.States,
		FetchLimit:  cfg.Collector.FetchLimit,
	}, source, proc, pipe, m, logger)
}

func newRandom() analytics.RandomSource {
	return analytics.NewSystemRandom(time.Now().UnixNano())
}

// ProvideTrendEngine creates the trend use case.
func ProvideTrendEngine(store repository.PriceStore, clock util.Clock, m repository.Metrics, logger *applogger.Logger) *usecase.TrendEngine {
	return usecase.NewTrendEngine(store, clock, newRandom(), m, logger)
}

// ProvidePredictionEngine creates the prediction use case.
func ProvidePredictionEngine(store repository.PriceStore, clock util.Clock, m repository.Metrics, logger *applogger.Logger) *usecase.PredictionEngine {
	return usecase.NewPredictionEngine(store, clock, newRandom(), m, logger)
}

// ProvideComparisonEngine creates the market comparison use case.
func ProvideComparisonEngine(store repository.PriceStore, clock util.Clock, m repository.Metrics, logger *applogger.Logger) *usecase.ComparisonEngine {
	return usecase.NewComparisonEngine(store, clock, m, logger)
}

// ProvideAlertService creates the alert evaluation use case.
func ProvideAlertService(store repository.PriceStore, notifier repository.AlertNotifier, m repository.Metrics, clock util.Clock, logger *applogger.Logger) *usecase.AlertService {
	return usecase.NewAlertService(store, notifier, m, clock, logger)
}

// ProvideFeedService creates the cached feed use case.
func ProvideFeedService(source repository.FeedSource, cache *icache.FeedCache, m repository.Metrics, logger *applogger.Logger) *usecase.FeedService {
	return usecase.NewFeedService(source, cache, m, logger)
}

// ProvideHTTPHandler assembles the HTTP surface.
func ProvideHTTPHandler(
	cfg *config.Config,
	logger *applogger.Logger,
	trends *usecase.TrendEngine,
	predictions *usecase.PredictionEngine,
	comparison *usecase.ComparisonEngine,
	alerts *usecase.AlertService,
	feed *usecase.FeedService,
	store repository.PriceStore,
) xhttp.Handler {
	market := api.NewMarketEchoHandler(logger, trends, predictions, comparison, alerts, feed, store)
	ticker := api.NewTickerHandler(logger, store, cfg.Ticker.Interval)
	return xhttp.Handlers(market, ticker)
}

// kafkaLogSink adapts the Kafka producer to the log collector sink.
type kafkaLogSink struct {
	p *pkgkafka.Producer
}

func (s kafkaLogSink) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return s.p.Publish(ctx, topic, nil, payload)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.FeedCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaPricesHandler,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	handler xhttp.Handler,
) *server.App {
	if cfg.Kafka.LogsTopic != "" && producer != nil {
		logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogsTopic,
			Publisher:      kafkaLogSink{p: producer},
		})
	}
	return server.New(cfg, logger, collector, consumer, kh, producer, chClient, handler)
}
