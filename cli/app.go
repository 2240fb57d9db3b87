// Package cli is the bm-social command line client. The App owns the
// session context and every long-lived resource for one invocation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/octabyte/bm-social/api"
	"github.com/octabyte/bm-social/authoring"
	"github.com/octabyte/bm-social/config"
	"github.com/octabyte/bm-social/db/redis"
	"github.com/octabyte/bm-social/enums"
	"github.com/octabyte/bm-social/otel"
	"github.com/octabyte/bm-social/otel/metrics"
	"github.com/octabyte/bm-social/queue"
	"github.com/octabyte/bm-social/session"
	"github.com/octabyte/bm-social/utils/logger"
)

type App struct {
	cfg    *config.Config
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	sessions *session.Context
	client   *api.Client
	closers  []func() error
}

type Option func(*App)

// WithConfig skips loading the configuration from the environment.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.cfg = cfg
	}
}

func NewApp(in io.Reader, out, errOut io.Writer, opts ...Option) *App {
	a := &App{in: bufio.NewReader(in), out: out, errOut: errOut}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// setup loads configuration and starts logging and telemetry. It runs
// before every command.
func (a *App) setup(ctx context.Context) error {
	if a.cfg == nil {
		cfg, err := config.Load(".env")
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	if err := logger.Init(&logger.Config{
		Level:       a.cfg.Log.Level,
		Env:         a.cfg.Log.Env,
		ServiceName: config.DefaultServiceName,
		Encoding:    "console",
	}); err != nil {
		return err
	}
	a.closers = append(a.closers, func() error {
		logger.Sync()
		return nil
	})

	shutdown, err := otel.InitOpenTelemetry(ctx, otel.OtelConfig{
		Enabled:     a.cfg.Otel.Enabled,
		Endpoint:    a.cfg.Otel.Endpoint,
		ServiceName: config.DefaultServiceName,
		Environment: a.cfg.Log.Env,
		SampleRate:  a.cfg.Otel.SampleRate,
	})
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() error {
		shutdown()
		return nil
	})

	return metrics.Init(config.DefaultServiceName)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, a.closers[i]())
	}
	a.closers = nil
	return err
}

func (a *App) sessionContext(ctx context.Context) (*session.Context, error) {
	if a.sessions != nil {
		return a.sessions, nil
	}

	var store session.Store
	switch a.cfg.SessionBackend {
	case enums.SessionBackendMemory:
		store = session.NewMemoryStore()
	case enums.SessionBackendRedis:
		client, err := redis.NewRedisClient(ctx, redis.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		store = session.NewRedisStore(client, a.cfg.Profile)
	default:
		store = session.NewFileStore(a.cfg.SessionPath)
	}

	a.sessions = session.NewContext(store)
	return a.sessions, nil
}

func (a *App) apiClient(ctx context.Context) (*api.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	sessions, err := a.sessionContext(ctx)
	if err != nil {
		return nil, err
	}
	client, err := api.New(a.cfg.APIURL, sessions,
		api.WithTimeout(a.cfg.HTTPTimeout),
		api.WithServiceName(config.DefaultServiceName),
	)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// notifiers returns the post-created subscribers configured for this run.
// A broker that cannot be reached is logged and skipped.
func (a *App) notifiers() []authoring.Notifier {
	if a.cfg.Queue.URI == "" {
		return nil
	}
	notifier, err := queue.DialPostNotifier(a.cfg.Queue.URI, a.cfg.Queue.Name)
	if err != nil {
		logger.LogWarnf("post events disabled: %v", err)
		return nil
	}
	a.closers = append(a.closers, notifier.Close)
	return []authoring.Notifier{notifier}
}

func (a *App) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
