// Package container wires the service together with samber/do.
package container

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlinks/internal/events"
	"github.com/serroba/shortlinks/internal/handlers"
	"github.com/serroba/shortlinks/internal/health"
	"github.com/serroba/shortlinks/internal/messaging"
	"github.com/serroba/shortlinks/internal/metrics"
	"github.com/serroba/shortlinks/internal/middleware"
	"github.com/serroba/shortlinks/internal/shortener"
	"github.com/serroba/shortlinks/internal/store"
	"github.com/serroba/shortlinks/internal/sweeper"
	"go.uber.org/zap"
)

// ConsumerGroupName is the Redis Streams consumer group of the audit consumer.
const ConsumerGroupName = "shortlinks-audit"

var errEventsDisabled = errors.New("lifecycle events are disabled")

// RedisClient owns the shared Redis connection pool.
type RedisClient struct {
	*redis.Client
}

func (c *RedisClient) Shutdown() error {
	return c.Close()
}

// PostgresPool owns the shared PostgreSQL connection pool.
type PostgresPool struct {
	*pgxpool.Pool
}

func (p *PostgresPool) Shutdown() error {
	p.Close()

	return nil
}

// LoggerPackage provides the zap logger.
func LoggerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// MetricsPackage provides the Prometheus registry and the service counters.
func MetricsPackage(i *do.Injector) {
	do.Provide(i, func(_ *do.Injector) (*prometheus.Registry, error) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		return reg, nil
	})

	do.Provide(i, func(i *do.Injector) (*metrics.Metrics, error) {
		return metrics.New(do.MustInvoke[*prometheus.Registry](i)), nil
	})
}

// RedisPackage provides the Redis client.
func RedisPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*RedisClient, error) {
		opts := do.MustInvoke[*Options](i)

		return &RedisClient{Client: redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		})}, nil
	})
}

// PostgresPackage provides the PostgreSQL pool.
func PostgresPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*PostgresPool, error) {
		opts := do.MustInvoke[*Options](i)

		pool, err := pgxpool.New(context.Background(), opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return &PostgresPool{Pool: pool}, nil
	})
}

// RepositoryPackage provides the short URL repository for the configured backend.
func RepositoryPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (shortener.Repository, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Backend {
		case BackendRedis:
			client := do.MustInvoke[*RedisClient](i)

			return store.NewRedisStore(client.Client, opts.Retention), nil
		case BackendPostgres:
			pool := do.MustInvoke[*PostgresPool](i)
			pg := store.NewPostgresStore(pool.Pool)

			if err := pg.Migrate(context.Background()); err != nil {
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}

			if !opts.Cache {
				return pg, nil
			}

			client := do.MustInvoke[*RedisClient](i)

			return store.NewRedisCacheRepository(pg, client.Client, opts.CacheTTL), nil
		default:
			return store.NewMemoryStore(), nil
		}
	})
}

// ShortenerPackage provides the code allocator and the shortening service.
func ShortenerPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*shortener.Allocator, error) {
		opts := do.MustInvoke[*Options](i)

		generator, err := shortener.NewNanoIDGenerator(opts.CodeLength)
		if err != nil {
			return nil, err
		}

		return shortener.NewAllocator(do.MustInvoke[shortener.Repository](i), generator, opts.MaxAttempts), nil
	})

	do.Provide(i, func(i *do.Injector) (*shortener.Service, error) {
		return shortener.NewService(
			do.MustInvoke[shortener.Repository](i),
			do.MustInvoke[*shortener.Allocator](i),
			do.MustInvoke[*Options](i).TTL,
		), nil
	})
}

// SweeperPackage provides the janitor. Only invoke it when the repository is a shortener.Sweeper.
func SweeperPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*sweeper.Janitor, error) {
		s, ok := do.MustInvoke[shortener.Repository](i).(shortener.Sweeper)
		if !ok {
			return nil, errors.New("repository does not need sweeping")
		}

		opts := do.MustInvoke[*Options](i)

		return sweeper.NewJanitor(
			s,
			opts.SweepInterval,
			opts.Retention,
			do.MustInvoke[*metrics.Metrics](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// PublisherGroupPackage provides the lifecycle event publishers.
func PublisherGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*gochannel.GoChannel, error) {
		return messaging.NewInProcess(watermillLogger(i)), nil
	})

	do.Provide(i, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		opts := do.MustInvoke[*Options](i)

		var publisher message.Publisher

		switch opts.Events {
		case EventsMemory:
			publisher = do.MustInvoke[*gochannel.GoChannel](i)
		case EventsRedis:
			p, err := messaging.NewRedisStreamPublisher(do.MustInvoke[*RedisClient](i).Client, watermillLogger(i))
			if err != nil {
				return nil, err
			}

			publisher = p
		default:
			return nil, errEventsDisabled
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(i, func(i *do.Injector) (events.Publishers, error) {
		if do.MustInvoke[*Options](i).Events == EventsNone {
			return events.NopPublishers(), nil
		}

		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return events.NewPublishers(group.Publisher()), nil
	})
}

// ConsumerGroupPackage provides the audit consumers of the lifecycle stream.
// With in-process events it shares the publisher's channel, so register
// PublisherGroupPackage as well.
func ConsumerGroupPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		var subscriber message.Subscriber

		switch opts.Events {
		case EventsMemory:
			subscriber = do.MustInvoke[*gochannel.GoChannel](i)
		case EventsRedis:
			s, err := messaging.NewRedisStreamSubscriber(
				do.MustInvoke[*RedisClient](i).Client,
				ConsumerGroupName,
				watermillLogger(i),
			)
			if err != nil {
				return nil, err
			}

			subscriber = s
		default:
			return nil, errEventsDisabled
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		events.RegisterConsumers(group, subscriber, events.NewLogSink(logger), logger)

		return group, nil
	})
}

// HTTPPackage provides the router and the API with every route registered.
func HTTPPackage(i *do.Injector) {
	do.Provide(i, func(i *do.Injector) (*chi.Mux, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		reg := do.MustInvoke[*prometheus.Registry](i)

		opts := do.MustInvoke[*Options](i)

		router := chi.NewMux()
		router.Use(chimiddleware.RequestID)
		router.Use(middleware.AccessLog(logger))
		router.Use(chimiddleware.Recoverer)
		router.Use(middleware.CORS(opts.CORSOrigins))
		router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		return router, nil
	})

	do.Provide(i, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)

		handlers.UseErrorModel()

		api := humachi.New(router, huma.DefaultConfig("Short Links", "1.0.0"))
		api.UseMiddleware(middleware.RequestOrigin(api))

		urlHandler := handlers.NewURLHandler(
			do.MustInvoke[*shortener.Service](i),
			opts.PublicBaseURL(),
			do.MustInvoke[events.Publishers](i),
			do.MustInvoke[*metrics.Metrics](i),
			do.MustInvoke[*zap.Logger](i),
		)

		handlers.RegisterRoutes(api, urlHandler)
		health.RegisterRoutes(api, health.NewHandler(healthCheckers(i, opts)))

		return api, nil
	})
}

func healthCheckers(i *do.Injector, opts *Options) map[string]health.Checker {
	checkers := make(map[string]health.Checker)

	if opts.UsesRedis() {
		checkers["redis"] = health.NewRedisChecker(do.MustInvoke[*RedisClient](i).Client)
	}

	if opts.Backend == BackendPostgres {
		checkers["postgres"] = health.NewPostgresChecker(do.MustInvoke[*PostgresPool](i).Pool)
	}

	return checkers
}

func watermillLogger(i *do.Injector) watermill.LoggerAdapter {
	return messaging.NewZapLogger(do.MustInvoke[*zap.Logger](i))
}

// RegisterServer registers every package the HTTP server needs.
func RegisterServer(i *do.Injector, options *Options) {
	do.ProvideValue(i, options)
	LoggerPackage(i)
	MetricsPackage(i)
	RedisPackage(i)
	PostgresPackage(i)
	RepositoryPackage(i)
	ShortenerPackage(i)
	SweeperPackage(i)
	PublisherGroupPackage(i)
	ConsumerGroupPackage(i)
	HTTPPackage(i)
}
