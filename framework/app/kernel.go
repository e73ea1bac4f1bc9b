package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/go-fluentdoc/framework/codec"
	"github.com/km-arc/go-fluentdoc/framework/config"
	"github.com/km-arc/go-fluentdoc/framework/container"
	"github.com/km-arc/go-fluentdoc/framework/inspect"
	"github.com/km-arc/go-fluentdoc/framework/logging"
	"github.com/km-arc/go-fluentdoc/framework/materialize"
	"github.com/km-arc/go-fluentdoc/framework/providers"
)

// Version of the fluentdoc runtime.
const Version = "0.1.0"

// Application is the composition root. It embeds the Container and the
// ProviderRegistry so callers can bind, resolve and register providers on
// it directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	config *config.Config
	logger *zap.Logger
}

// New loads configuration from envFiles and the environment, builds the
// logger and registers the framework providers.
func New(envFiles ...string) (*Application, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	return NewWith(cfg, logger)
}

// NewWith is like New but takes an already loaded configuration and logger.
func NewWith(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := container.New(container.WithLogger(logger))
	app := &Application{
		Container: c,
		Providers: container.NewProviderRegistry(c),
		config:    cfg,
		logger:    logger,
	}

	core := []container.ServiceProvider{
		&providers.ContainerServiceProvider{},
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Logger: logger},
		&providers.CodecServiceProvider{},
		&providers.MaterializeServiceProvider{},
		&providers.MetricsServiceProvider{},
		&providers.RoutingServiceProvider{},
		&providers.InspectServiceProvider{},
	}
	for _, p := range core {
		if err := app.Register(p); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config { return a.config }

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Codecs resolves the codec factory.
func (a *Application) Codecs() (*codec.Factory, error) {
	return container.Resolve[*codec.Factory](a.Container)
}

// Materializer resolves the document materializer.
func (a *Application) Materializer() (*materialize.Materializer, error) {
	return container.Resolve[*materialize.Materializer](a.Container)
}

// Run boots the application if needed and, when inspection is enabled,
// serves the inspection endpoints until ctx is done. Otherwise it blocks
// until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return fmt.Errorf("app: boot: %w", err)
		}
	}

	a.logger.Info("application started",
		zap.String("env", a.config.App.Env),
		zap.String("version", Version))

	if !a.config.Inspect.Enabled {
		<-ctx.Done()
		return nil
	}

	srv, err := container.Resolve[*inspect.Server](a.Container)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return srv.Run(ctx)
}

func (a *Application) Environment() string { return a.config.App.Env }
func (a *Application) IsLocal() bool       { return a.config.IsLocal() }
func (a *Application) IsProduction() bool  { return a.config.IsProduction() }
func (a *Application) IsTesting() bool     { return a.config.IsTesting() }
func (a *Application) IsDebug() bool       { return a.config.App.Debug }
