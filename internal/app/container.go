package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/areamatch"
	"service-dispatch/internal/config"
	"service-dispatch/internal/gateway/customers"
	"service-dispatch/internal/http/handlers"
	"service-dispatch/internal/http/router"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/service/orders"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

// registerCounter exposes a named prometheus counter to the container and the
// default registry. Re-registration (tests build several containers in one
// process) falls back to the already registered collector.
func registerCounter(container *dig.Container, name string, ctor func() prometheus.Counter) error {
	provider := func() prometheus.Counter {
		c := ctor()
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
					return existing
				}
			}
		}
		return c
	}
	if err := container.Provide(provider, dig.Name(name)); err != nil {
		return fmt.Errorf("provide counter %s: %w", name, err)
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	if err := provideAll(container,
		func() context.Context { return ctx },
		func() *log.Logger { return log.Default() },
		NewLogger,
		config.Load,
	); err != nil {
		return err
	}
	if err := registerCounter(container, "rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal); err != nil {
		return err
	}
	if err := registerCounter(container, "dispatch_fallback_total", metrics.NewDispatchFallbackTotal); err != nil {
		return err
	}
	if err := registerCounter(container, "dispatch_retries_total", metrics.NewDispatchRetriesTotal); err != nil {
		return err
	}
	return registerCounter(container, "gateway_retries_total", metrics.NewGatewayRetriesTotal)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

type dispatchServiceIn struct {
	dig.In

	Cfg       *config.Config
	Logger    logx.Logger
	Resolver  dispatch.AddressResolver
	Fallbacks prometheus.Counter `name:"dispatch_fallback_total"`
	Retries   prometheus.Counter `name:"dispatch_retries_total"`
}

type resolverIn struct {
	dig.In

	Cfg            *config.Config
	Pool           *pgxpool.Pool
	Logger         logx.Logger
	GatewayRetries prometheus.Counter `name:"gateway_retries_total"`
}

// newAddressResolver picks the address source: the shared storefront table
// when no customers API is configured, the REST gateway otherwise.
func newAddressResolver(in resolverIn) dispatch.AddressResolver {
	api := in.Cfg.CustomerAPI
	if api.BaseURL == "" {
		return repository.NewAddressRepo(in.Pool)
	}
	gw := customers.NewHTTPGateway(&http.Client{Timeout: api.Timeout}, api.BaseURL)
	return customers.NewRetryingGateway(gw, in.Logger, in.GatewayRetries, customers.RetryConfig{
		MaxAttempts: api.MaxAttempts,
		BaseDelay:   api.BaseDelay,
		MaxDelay:    api.MaxDelay,
	})
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewPartnerRepo,
		repository.NewOrderRepo,
		repository.NewDispatchRepo,
		func(repo *repository.DispatchRepo) dispatchtx.Runner { return repo },
		func(cfg *config.Config) *areamatch.Matcher {
			return areamatch.New(cfg.Dispatch.AreaThreshold)
		},
		newAddressResolver,
		func(in dispatchServiceIn, partners *repository.PartnerRepo, matcher *areamatch.Matcher, runner dispatchtx.Runner) *dispatch.Service {
			svc := dispatch.NewService(
				partners,
				in.Resolver,
				runner,
				matcher,
				in.Cfg.Dispatch.MaxAttempts,
				in.Cfg.Dispatch.OperationTimeout,
				in.Logger,
			)
			return svc.WithMetrics(in.Fallbacks, in.Retries)
		},
		func(cfg *config.Config, reader *repository.OrderRepo, runner dispatchtx.Runner, logger logx.Logger) *orders.Service {
			return orders.NewService(reader, runner, cfg.Dispatch.OperationTimeout, logger)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDispatchUsecase,
		handlers.NewOrdersUsecase,
		handlers.NewOrderHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
	)
}
