package app

import (
	"context"
	"time"

	"github.com/matheus3301/hirechat/internal/api"
	"github.com/matheus3301/hirechat/internal/bus"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/lock"
	"github.com/matheus3301/hirechat/internal/logging"
	"github.com/matheus3301/hirechat/internal/outbox"
	"github.com/matheus3301/hirechat/internal/profile"
	"github.com/matheus3301/hirechat/internal/router"
	"github.com/matheus3301/hirechat/internal/store"
	intsync "github.com/matheus3301/hirechat/internal/sync"
	"github.com/matheus3301/hirechat/internal/tui"
	"github.com/matheus3301/hirechat/internal/tui/model"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Program names the lock holder and the log file.
const Program = "hirechat"

// csrfTimeout bounds the token lookup done at startup.
const csrfTimeout = 10 * time.Second

// Params holds the command-line options passed to the fx module.
type Params struct {
	Profile     string
	StartURL    string // overrides the profile's start_url
	MetricsAddr string // empty disables the metrics server
	Debug       bool
}

// Module returns the fx module for the interactive client, composing all
// providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("hirechat",
		fx.Supply(p),
		fx.Provide(
			provideSettings,
			provideLogger,
			provideBus,
			provideLock,
			provideStore,
			provideRegistry,
			provideMetrics,
			provideClient,
			providePoller,
			provideRouter,
			provideSyncEngine,
			provideReconciler,
			provideSendLog,
			provideViewModel,
			provideMetricsServer,
			provideTUI,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideSettings(p Params) (*Settings, error) {
	return LoadSettings(p.Profile)
}

// provideLogger takes the settings so the profile name is validated before
// it becomes a path.
func provideLogger(p Params, s *Settings) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Path:    profile.LogPath(s.Name, Program),
		Profile: s.Name,
		Debug:   p.Debug,
	})
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideLock(s *Settings, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(s.Name); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", s.Name))
	l, err := lock.Acquire(profile.Dir(s.Name), Program)
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

// provideStore takes the lock so the cache is never opened without it.
func provideStore(s *Settings, _ *lock.Lock, logger *zap.Logger) (*store.DB, error) {
	return OpenStore(profile.CachePath(s.Name), logger)
}

// OpenStore opens a profile's cache, migrating it if needed.
func OpenStore(path string, logger *zap.Logger) (*store.DB, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	schema := db.Schema()
	if schema.Applied {
		logger.Info("migrations applied", zap.Uint("version", schema.Version))
	} else {
		logger.Debug("migrations up to date", zap.Uint("version", schema.Version))
	}
	logger.Info("store initialized", zap.String("path", db.Path()))
	return db, nil
}

func provideRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func provideMetrics(reg *prometheus.Registry) *chat.Metrics {
	return chat.NewMetrics(reg)
}

func provideClient(s *Settings, logger *zap.Logger) (*api.Client, error) {
	return NewClient(s, logger)
}

func providePoller() *chat.Poller {
	return chat.NewPoller()
}

func provideRouter(p Params, s *Settings, client *api.Client, poller *chat.Poller, b *bus.Bus) (*router.Router, error) {
	raw := p.StartURL
	if raw == "" {
		raw = s.Profile.StartURL
	}
	d := s.Dashboard()
	loc, err := StartLocation(client.BaseURL(), d, raw)
	if err != nil {
		return nil, err
	}
	return router.New(d, loc, poller, b), nil
}

func provideSyncEngine(db *store.DB, b *bus.Bus, logger *zap.Logger) *intsync.Engine {
	return intsync.NewEngine(db, b, logger)
}

func provideReconciler(db *store.DB, logger *zap.Logger) *intsync.Reconciler {
	return intsync.NewReconciler(db, logger)
}

func provideSendLog(db *store.DB, logger *zap.Logger) *outbox.Log {
	return outbox.NewLog(db, logger)
}

func provideViewModel(s *Settings, rec *intsync.Reconciler, db *store.DB) *model.ViewModel {
	return model.NewViewModel(s.Surface, rec, db)
}

func provideMetricsServer(p Params, reg *prometheus.Registry, logger *zap.Logger) *MetricsServer {
	return NewMetricsServer(p.MetricsAddr, reg, logger)
}

func provideTUI(
	s *Settings,
	r *router.Router,
	client *api.Client,
	poller *chat.Poller,
	sendLog *outbox.Log,
	metrics *chat.Metrics,
	vm *model.ViewModel,
	b *bus.Bus,
	logger *zap.Logger,
) *tui.App {
	return tui.New(tui.Options{
		Profile: s.Name,
		Router:  r,
		Chat: chat.Options{
			Interval: s.Interval,
			Client:   client,
			Poller:   poller,
			SendLog:  sendLog,
			Bus:      b,
			Metrics:  metrics,
			Logger:   logger,
		},
		Model:  vm,
		Bus:    b,
		Logger: logger,
	})
}

func registerLifecycle(
	lc fx.Lifecycle,
	p Params,
	s *Settings,
	lk *lock.Lock,
	db *store.DB,
	client *api.Client,
	engine *intsync.Engine,
	rec *intsync.Reconciler,
	metricsSrv *MetricsServer,
	ui *tui.App,
	logger *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := startCache(engine, rec, s, logger); err != nil {
				return err
			}

			if header, _ := client.CSRF(); header == "" {
				discoverCSRF(ctx, client, s.Dashboard().Path, logger)
			}

			if p.MetricsAddr != "" {
				if err := metricsSrv.Start(); err != nil {
					return err
				}
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ui.Stop()
			if p.MetricsAddr != "" {
				if err := metricsSrv.Stop(ctx); err != nil {
					logger.Warn("error stopping metrics server", zap.Error(err))
				}
			}
			engine.Stop()
			if err := db.Close(); err != nil {
				logger.Warn("error closing store", zap.Error(err))
			}
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("client stopped")
			_ = logger.Sync()
			return nil
		},
	})
}

// startCache starts mirroring chat events into the cache and seeds the
// configured conversations. A failed hook gets no OnStop, so the engine is
// stopped here when seeding fails.
func startCache(engine *intsync.Engine, rec *intsync.Reconciler, s *Settings, logger *zap.Logger) error {
	engine.Start(context.Background())
	n, err := rec.Seed(s.Surface, s.Profile.Conversations)
	if err != nil {
		engine.Stop()
		return err
	}
	logger.Info("configured conversations seeded", zap.Int("count", n))
	return nil
}

// discoverCSRF reads the anti-forgery token from the dashboard page. Sends
// without one are rejected by the server, but reading still works, so a
// failure only warns.
func discoverCSRF(ctx context.Context, client *api.Client, page string, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, csrfTimeout)
	defer cancel()
	header, _, err := client.DiscoverCSRF(ctx, page)
	if err != nil {
		logger.Warn("csrf discovery failed", zap.String("page", page), zap.Error(err))
		return
	}
	logger.Info("csrf token discovered", zap.String("header", header))
}
