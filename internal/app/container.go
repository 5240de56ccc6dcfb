package app

import (
	"context"
	"sync"

	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/config"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/gateway"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/telephony"
	telephonyMock "github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/telephony/mock"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/internal/telephony/twilio"
	"github.com/Michel-Lamontagne-Ing/telephonieexcel-backend/pkg/logger"
)

// Container wires together shared dependencies.
type Container struct {
	Config *config.Config
	Logger *logger.Logger

	// lazily initialised components
	components struct {
		once     sync.Once
		provider telephony.Provider
		gateway  *gateway.Service
	}
}

// Build constructs a container for the given configuration path.
func Build(_ context.Context, configPath string) (*Container, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, err
	}

	return New(cfg, lg, nil), nil
}

// New constructs a container from pre-built dependencies. A nil provider
// selects one from configuration; tests pass a fake instead.
func New(cfg *config.Config, lg *logger.Logger, provider telephony.Provider) *Container {
	c := &Container{Config: cfg, Logger: lg}
	c.components.provider = provider
	return c
}

func (c *Container) initComponents() {
	c.components.once.Do(func() {
		if c.components.provider == nil {
			c.components.provider = newProvider(c.Config.Provider)
		}
		c.components.gateway = gateway.NewService(
			c.Config.Provider,
			c.Config.Voice,
			c.components.provider,
			c.Logger,
		)
	})
}

func newProvider(cfg config.ProviderConfig) telephony.Provider {
	if cfg.Name == "mock" {
		return telephonyMock.NewProvider()
	}
	return twilio.NewClient(cfg)
}

// Provider exposes the telephony provider.
func (c *Container) Provider() telephony.Provider {
	c.initComponents()
	return c.components.provider
}

// Gateway exposes the call dispatch gateway service.
func (c *Container) Gateway() *gateway.Service {
	c.initComponents()
	return c.components.gateway
}

// Close releases held resources.
func (c *Container) Close(context.Context) error {
	if c.Logger != nil {
		c.Logger.Sync()
	}
	return nil
}
