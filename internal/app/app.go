// Package app wires configuration, credentials, the API client and the stores
// shared by the console server and the CLI.
package app

import (
	"context"
	"fmt"
	"net/http"

	"order-console/internal/core/apiclient"
	"order-console/internal/core/auth"
	"order-console/internal/core/cache"
	"order-console/internal/core/config"
	"order-console/internal/core/events"
	"order-console/internal/core/logger"
	"order-console/internal/core/metrics"
	"order-console/internal/core/server"
	"order-console/internal/core/state"
	orderadapter "order-console/internal/features/orders/adapters"
	orderhandler "order-console/internal/features/orders/handler"
	orderservice "order-console/internal/features/orders/service"
	recadapter "order-console/internal/features/recommendations/adapters"
	rechandler "order-console/internal/features/recommendations/handler"
	recservice "order-console/internal/features/recommendations/service"
	sessionhandler "order-console/internal/features/session/handler"

	"go.uber.org/zap"
)

// App is the main application that wires together all components.
type App struct {
	cfg *config.AppConfig

	// Metrics is nil when metrics are disabled.
	Metrics *metrics.Sink
	Session *auth.Session
	Client  *apiclient.Client

	Orders          *orderservice.OrderStore
	Recommendations *recservice.RecommendationStore

	cache cache.Cache
}

// New builds the application from cfg. The Redis token store is used when
// cfg.Session.RedisURL is set; otherwise tokens live in memory.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	a := &App{cfg: cfg}

	emitter := events.Multi{events.NewZapEmitter(logger.Get)}
	if cfg.MetricsEnabled {
		a.Metrics = metrics.New()
		emitter = append(emitter, a.Metrics)
	}

	store, err := a.tokenStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Session = auth.NewSession(store)
	a.Session.OnInvalidated(func() {
		logger.Get().Warn("Session invalidated, login required")
	})

	if cfg.API.Token != "" {
		if err := a.Session.Login(ctx, auth.Tokens{AccessToken: cfg.API.Token}); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("install API token: %w", err)
		}
	}

	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Proxy:   cfg.Proxy,
	}, apiclient.WithCredentials(a.Session), apiclient.WithEmitter(emitter))
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create API client: %w", err)
	}
	a.Client = client

	a.Orders = orderservice.NewOrderStore(orderadapter.NewAPIOrderGateway(client), state.WithEmitter(emitter))
	a.Recommendations = recservice.NewRecommendationStore(recadapter.NewAPIRecommendationGateway(client), state.WithEmitter(emitter))

	return a, nil
}

func (a *App) tokenStore(ctx context.Context) (auth.TokenStore, error) {
	if a.cfg.Session.RedisURL == "" {
		logger.Get().Debug("Using in-memory token store")
		return auth.NewMemoryTokenStore(), nil
	}

	redisCache, err := cache.NewRedisAdapter(a.cfg.Session.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("create token cache: %w", err)
	}
	if err := redisCache.Ping(ctx); err != nil {
		_ = redisCache.Close()
		return nil, fmt.Errorf("connect token cache: %w", err)
	}
	a.cache = redisCache

	logger.Get().Info("Using Redis token store", zap.String("key", a.cfg.Session.Key))
	return auth.NewCacheTokenStore(redisCache, a.cfg.Session.Key, a.cfg.Session.TTL), nil
}

// Server creates the console server with every feature's routes mounted.
func (a *App) Server() *server.Server {
	var metricsHandler http.Handler
	if a.Metrics != nil {
		metricsHandler = a.Metrics.Handler()
	}
	srv := server.New(a.cfg, metricsHandler)

	orderhandler.NewOrderHandler(a.Orders).Register(srv.App)
	rechandler.NewRecommendationHandler(a.Recommendations).Register(srv.App)
	sessionhandler.NewSessionHandler(a.Session).Register(srv.App)

	return srv
}

// Close releases the token cache connection, if any.
func (a *App) Close() error {
	if a.cache == nil {
		return nil
	}
	err := a.cache.Close()
	a.cache = nil
	if err != nil {
		return fmt.Errorf("close token cache: %w", err)
	}
	return nil
}
