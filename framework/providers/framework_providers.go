package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-fluentdoc/framework/codec"
	"github.com/km-arc/go-fluentdoc/framework/config"
	"github.com/km-arc/go-fluentdoc/framework/container"
	"github.com/km-arc/go-fluentdoc/framework/inspect"
	"github.com/km-arc/go-fluentdoc/framework/materialize"
	"github.com/km-arc/go-fluentdoc/framework/metrics"
	"github.com/km-arc/go-fluentdoc/framework/routing"
)

// ── ContainerServiceProvider ──────────────────────────────────────────────────

// ContainerServiceProvider makes the container itself injectable.
//
// Bound contracts:
//   - *container.Container  → the container (instance)
//   - container.Locator     → a *container.ServiceLocator over it (instance)
type ContainerServiceProvider struct {
	container.BaseProvider
}

func (p *ContainerServiceProvider) Register(app *container.Container) error {
	if err := container.BindInstance(app, app); err != nil {
		return err
	}
	_, err := container.NewServiceLocator(app)
	return err
}

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound contracts:
//   - *config.Config  (instance)
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	return container.BindInstance(app, p.Config)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound contracts:
//   - *zap.Logger  (instance)
type LoggingServiceProvider struct {
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	return container.BindInstance(app, p.Logger)
}

// Boot reports the final set of registrations.
func (p *LoggingServiceProvider) Boot(app *container.Container) error {
	p.Logger.Debug("providers booted",
		zap.String("container", app.ID()),
		zap.Int("bindings", len(app.Bindings())))
	return nil
}

// ── CodecServiceProvider ──────────────────────────────────────────────────────

// CodecServiceProvider registers the builtin value codecs.
//
// Bound contracts:
//   - *codec.Factory                         (singleton)
//   - *codec.EnumCodec                       (transient, needs "enumType")
//   - *codec.BoolCodec, *codec.SignedCodec[T], ...  (transient)
type CodecServiceProvider struct {
	container.BaseProvider
}

func (p *CodecServiceProvider) Register(app *container.Container) error {
	return codec.Register(app)
}

// ── MaterializeServiceProvider ────────────────────────────────────────────────

// MaterializeServiceProvider registers document materialization.
//
// Bound contracts:
//   - materialize.Activator      (singleton)
//   - *materialize.Mapper        (singleton)
//   - *materialize.Materializer  (singleton)
type MaterializeServiceProvider struct {
	container.BaseProvider
}

func (p *MaterializeServiceProvider) Register(app *container.Container) error {
	return materialize.Register(app)
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider registers the prometheus collector and, on Boot,
// starts counting resolutions.
//
// Bound contracts:
//   - *metrics.Collector  (singleton)
type MetricsServiceProvider struct{}

func (p *MetricsServiceProvider) Register(app *container.Container) error {
	return container.BindSingleton[*metrics.Collector](app, container.Implement[*metrics.Collector](
		container.Func(metrics.NewCollector),
	))
}

func (p *MetricsServiceProvider) Boot(app *container.Container) error {
	collector, err := container.Resolve[*metrics.Collector](app)
	if err != nil {
		return err
	}
	return collector.Observe(app)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound contracts:
//   - *routing.Router  (singleton)
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return container.BindSingleton[*routing.Router](app, container.Implement[*routing.Router](
		container.Func(routing.New, "logger"),
	))
}

// ── InspectServiceProvider ────────────────────────────────────────────────────

// InspectServiceProvider registers the inspection endpoints and server, and
// mounts the endpoints on the router at Boot when inspection is enabled.
//
// Bound contracts:
//   - *inspect.Handler  (singleton)
//   - *inspect.Server   (singleton factory)
type InspectServiceProvider struct{}

func (p *InspectServiceProvider) Register(app *container.Container) error {
	err := container.BindSingleton[*inspect.Handler](app, container.Implement[*inspect.Handler](
		container.Func(inspect.NewHandler, "container", "metrics"),
	))
	if err != nil {
		return err
	}
	return container.BindFactory(app, container.Singleton, func(c *container.Container) (*inspect.Server, error) {
		cfg, err := container.Resolve[*config.Config](c)
		if err != nil {
			return nil, err
		}
		router, err := container.Resolve[*routing.Router](c)
		if err != nil {
			return nil, err
		}
		logger, err := container.Resolve[*zap.Logger](c)
		if err != nil {
			return nil, err
		}
		return inspect.NewServer(cfg.Inspect, router, logger), nil
	})
}

func (p *InspectServiceProvider) Boot(app *container.Container) error {
	cfg, err := container.Resolve[*config.Config](app)
	if err != nil {
		return err
	}
	if !cfg.Inspect.Enabled {
		return nil
	}
	handler, err := container.Resolve[*inspect.Handler](app)
	if err != nil {
		return err
	}
	router, err := container.Resolve[*routing.Router](app)
	if err != nil {
		return err
	}
	handler.Routes(router)
	return nil
}
