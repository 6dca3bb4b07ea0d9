package di

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	domsvc "MacroPulse/internal/domain/service"
	"MacroPulse/internal/handler/api"
	"MacroPulse/internal/handler/ws"
	"MacroPulse/internal/registry"
	internalrepo "MacroPulse/internal/repository"
	"MacroPulse/internal/services/market"
	"MacroPulse/internal/usecase"
	"MacroPulse/pkg/cache"
	pkgch "MacroPulse/pkg/clickhouse"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	pkgkafka "MacroPulse/pkg/kafka"
	applogger "MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"
	"MacroPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideRand creates the injected random source; seed 0 falls back to the
// clock so production runs differ while tests can pin a seed.
func ProvideRand(cfg *config.Config) *rand.Rand {
	seed := cfg.Simulator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ProvideSimulator creates the price simulator.
func ProvideSimulator(rng *rand.Rand) domsvc.PriceSimulator {
	return market.NewRandomWalkSimulator(rng)
}

// ProvideClassifier creates the regime classifier.
func ProvideClassifier() domsvc.RegimeClassifier {
	return market.NewRuleClassifier()
}

// ProvideSignalGenerator creates the signal generator.
func ProvideSignalGenerator() domsvc.SignalGenerator {
	return market.NewRuleSignalGenerator()
}

// ProvideRegistry builds the asset registry from config. A registry missing
// any required symbol fails here, before anything starts serving.
func ProvideRegistry(cfg *config.Config) (*registry.Registry, error) {
	assets := make([]models.Asset, 0, len(cfg.Assets))
	prices := make(map[string]float64, len(cfg.Assets))
	for _, a := range cfg.Assets {
		assets = append(assets, models.Asset{
			Symbol:     a.Symbol,
			Name:       a.Name,
			Volatility: a.Volatility,
		})
		prices[a.Symbol] = a.StartPrice
	}
	return registry.New(assets, prices)
}

// ProvideClickHouseClient creates a ClickHouse client when the history
// backend is enabled; nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.ticks (ts DateTime, symbol String, price Float64, chg_pct Float64, volume Int64, vol_spike UInt8, regime String) ENGINE=MergeTree ORDER BY (symbol, ts)", db),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideTickStore creates the ClickHouse tick store, nil when disabled.
func ProvideTickStore(client *pkgch.Client, cfg *config.Config) domrepo.TickStore {
	if client == nil {
		return nil
	}
	return internalrepo.NewClickHouseTickStore(client.DB(), cfg.ClickHouse.Database+".ticks")
}

// ProvideKafkaProducer creates a Kafka producer when publishing is enabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the snapshot publisher, nil when disabled.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSnapshotPublisher(producer, cfg.Kafka.Topic)
}

// ProvideSink creates the snapshot sink over the enabled backends.
func ProvideSink(pub domrepo.Publisher, store domrepo.TickStore, m domrepo.Metrics, l *applogger.Logger) *usecase.SnapshotSink {
	return usecase.NewSnapshotSink(pub, store, m, l)
}

// ProvideAggregator creates the snapshot aggregator.
func ProvideAggregator(
	reg *registry.Registry,
	sim domsvc.PriceSimulator,
	classifier domsvc.RegimeClassifier,
	signals domsvc.SignalGenerator,
	sink *usecase.SnapshotSink,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.SnapshotAggregator {
	return usecase.NewSnapshotAggregator(reg, sim, classifier, signals, sink, m, l)
}

// ProvideCache creates the snapshot response cache.
func ProvideCache(cfg *config.Config) (cache.BytesCache, error) {
	if cfg.Cache.Backend == "redis" {
		c, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideHub creates the websocket stream hub.
func ProvideHub(l *applogger.Logger, agg *usecase.SnapshotAggregator, cfg *config.Config) *ws.Hub {
	return ws.NewHub(l, agg, cfg.Stream.Interval)
}

// ProvideHTTPHandler groups all route registrars.
func ProvideHTTPHandler(
	l *applogger.Logger,
	agg *usecase.SnapshotAggregator,
	store domrepo.TickStore,
	c cache.BytesCache,
	hub *ws.Hub,
	cfg *config.Config,
) xhttp.Handler {
	handlers := xhttp.Handlers{
		api.NewMarketEchoHandler(l, agg, store, c, cfg.Server.PollCacheTTL),
	}
	if cfg.Stream.Enabled {
		handlers = append(handlers, hub)
	}
	return handlers
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	hub *ws.Hub,
	sink *usecase.SnapshotSink,
	chClient *pkgch.Client,
	c cache.BytesCache,
) *server.App {
	return server.New(cfg, l, handler, hub, sink, chClient, c)
}
