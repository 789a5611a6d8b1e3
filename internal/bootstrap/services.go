package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/jobpilot/jobreview/config"
	"github.com/jobpilot/jobreview/internal/adapters/memory"
	redisstate "github.com/jobpilot/jobreview/internal/adapters/redis"
	"github.com/jobpilot/jobreview/internal/core"
	"github.com/jobpilot/jobreview/internal/data"
	"github.com/jobpilot/jobreview/internal/observability/statsd"
	"github.com/jobpilot/jobreview/internal/service"
)

// ErrRedisRequired is returned when the Redis state backend is selected without a client.
var ErrRedisRequired = errors.New("redis state backend selected but no redis client was provided")

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs          *data.JobAdRepo
	Listing       *service.ListingService
	Decisions     *service.DecisionService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	// MetricsSink is nil when metrics are disabled or the client failed to start.
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// sink returns the metrics sink as an interface, nil when metrics are off.
func (o ObservabilityContainer) sink() statsd.Sink {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink
}

// Close releases the metrics socket.
func (o ObservabilityContainer) Close() error {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Dynamo data.DynamoAPI
	// Redis is required only for the redis state backend.
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// stateAdapters are the per-session stores chosen by the state backend.
type stateAdapters struct {
	States core.ListStateStore
	Claims core.DecisionClaimer
}

// buildObservability configures the metrics adapter.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  statsd.DefaultPrefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}

// buildStateAdapters selects in-process or Redis-backed session state.
func buildStateAdapters(cfg config.StateConfig, client redis.UniversalClient) (stateAdapters, error) {
	switch cfg.Backend {
	case config.StateBackendRedis:
		if client == nil {
			return stateAdapters{}, ErrRedisRequired
		}
		return stateAdapters{
			States: redisstate.NewListStateStore(client, cfg.SessionTTL),
			Claims: data.NewRedisClaimRepo(client),
		}, nil
	default:
		return stateAdapters{
			States: memory.NewListStateStore(cfg.SessionTTL),
			Claims: memory.NewClaimer(),
		}, nil
	}
}

// NewServices wires the repository, state adapters and review services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	observability := buildObservability(logger, cfg.Observability)
	sink := observability.sink()

	repo, err := data.NewJobAdRepo(data.JobAdRepoOptions{
		Client:    deps.Dynamo,
		TableName: cfg.Dynamo.TableName,
		IndexName: cfg.Dynamo.UnprocessedIndex,
		Metrics:   sink,
		Logger:    logger,
	})
	if err != nil {
		_ = observability.Close()
		return ServiceContainer{}, fmt.Errorf("build job ad repo: %w", err)
	}

	state, err := buildStateAdapters(cfg.State, deps.Redis)
	if err != nil {
		_ = observability.Close()
		return ServiceContainer{}, err
	}

	listings := service.NewListingService(service.ListingServiceOptions{
		Repo:    repo,
		States:  state.States,
		Config:  service.ListingServiceConfig{PageSize: cfg.Listing.PageSize},
		Logger:  logger,
		Metrics: sink,
	})
	decisions := service.NewDecisionService(service.DecisionServiceOptions{
		Repo:     repo,
		Listings: listings,
		Claims:   state.Claims,
		Config:   service.DecisionServiceConfig{ClaimTTL: cfg.State.DecisionClaimTTL},
		Logger:   logger,
		Metrics:  sink,
	})

	logger.Info("services initialised",
		"state_backend", cfg.State.Backend,
		"page_size", listings.PageSize(),
		"metrics_enabled", observability.MetricsSink != nil,
	)

	return ServiceContainer{
		Jobs:          repo,
		Listing:       listings,
		Decisions:     decisions,
		Observability: observability,
	}, nil
}
