package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/stepwise/internal/logging"
	"github.com/aretw0/stepwise/pkg/adapters/file"
	httpAdapter "github.com/aretw0/stepwise/pkg/adapters/http"
	"github.com/aretw0/stepwise/pkg/adapters/memory"
	"github.com/aretw0/stepwise/pkg/adapters/redis"
	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/observability"
	"github.com/aretw0/stepwise/pkg/persistence/middleware"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/aretw0/stepwise/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LockPrefix namespaces the distributed session locks in redis.
const LockPrefix = "stepwise:lock:"

// SessionOptions selects where playback sessions live:
// redis when RedisAddr is set, else files under Dir, else memory.
type SessionOptions struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration // redis only; zero keeps sessions forever
	Dir           string

	// EncryptionKey seals stored scenarios when set (hex, 32 bytes).
	// FallbackKeys are tried on load, for key rotation.
	EncryptionKey string
	FallbackKeys  []string
}

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Port     string
	Sessions SessionOptions
	Debug    bool
}

// sessionBackend is a session store plus what is needed to share and release it.
type sessionBackend struct {
	store  ports.SessionStore
	locker ports.DistributedLocker
	close  func() error
}

func openSessions(ctx context.Context, opts SessionOptions) (*sessionBackend, error) {
	mw, err := encryptionMiddleware(opts)
	if err != nil {
		return nil, err
	}
	b, err := openStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	if mw != nil {
		b.store = mw(b.store)
	}
	return b, nil
}

func encryptionMiddleware(opts SessionOptions) (middleware.Middleware, error) {
	if opts.EncryptionKey == "" {
		return nil, nil
	}
	active, err := hex.DecodeString(opts.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("session key is not hex: %w", err)
	}
	cfg := middleware.EncryptionConfig{ActiveKey: active}
	for _, k := range opts.FallbackKeys {
		key, err := hex.DecodeString(k)
		if err != nil {
			return nil, fmt.Errorf("fallback session key is not hex: %w", err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(cfg)
}

func openStore(ctx context.Context, opts SessionOptions) (*sessionBackend, error) {
	switch {
	case opts.RedisAddr != "":
		var storeOpts []redis.Option
		if opts.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(opts.TTL))
		}
		store := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, storeOpts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis %s unreachable: %w", opts.RedisAddr, err)
		}
		return &sessionBackend{
			store:  store,
			locker: redis.NewLocker(store.Client(), LockPrefix),
			close:  store.Close,
		}, nil
	case opts.Dir != "":
		return &sessionBackend{store: file.New(opts.Dir), close: func() error { return nil }}, nil
	default:
		return &sessionBackend{store: memory.NewStore(), close: func() error { return nil }}, nil
	}
}

func newSessionManager(b *sessionBackend, logger *slog.Logger, hooks domain.LifecycleHooks) *session.Manager {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithLifecycleHooks(hooks),
	}
	if b.locker != nil {
		opts = append(opts, session.WithLocker(b.locker))
	}
	return session.NewManager(b.store, opts...)
}

// Serve starts the HTTP API and blocks until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	backend, err := openSessions(ctx, opts.Sessions)
	if err != nil {
		return err
	}
	defer backend.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)
	streams := httpAdapter.NewStreamManager(logger)

	stepHooks := []domain.LifecycleHooks{metrics.Hooks(), streams.Hooks()}
	if opts.Debug {
		stepHooks = append(stepHooks, observability.LogHooks(logger))
	}
	mgr := newSessionManager(backend, logger, observability.Chain(stepHooks...))

	handler := httpAdapter.NewHandler(
		createEngine(logger, opts.Debug, metrics.Hooks()),
		mgr,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	srv := &http.Server{
		Addr:              ":" + opts.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting stepwise server", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}
