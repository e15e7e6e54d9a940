package container

import (
	"buret/adapters/datareadiness/coercer"
	"buret/adapters/excel"
	"buret/adapters/stats/welch"
	"buret/app"
	"buret/internal"
	"buret/internal/config"
	"buret/internal/errors"
	"buret/ports"
)

// Container holds all application dependencies, resolved once at startup
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Reader   ports.TableReader
	Coercer  *coercer.IntCoercer
	StatTest ports.StatTest // nil when disabled

	AnalysisService *app.AnalysisService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.InternalError("config cannot be nil")
	}
	if logger == nil {
		logger = internal.NewLogger(cfg.Log.Level)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	c.Reader = excel.NewDataReader(cfg.Input.Sheet, logger)

	coercionConfig := coercer.DefaultCoercionConfig()
	coercionConfig.MaxWarningSamples = cfg.Input.MaxWarningSamples
	c.Coercer = coercer.NewIntCoercer(coercionConfig)

	if cfg.Stats.WelchEnabled {
		c.StatTest = welch.NewWelchTTest()
	}
	logger.Debug("container ready (stat test enabled: %t)", c.StatTest != nil)

	c.AnalysisService = app.NewAnalysisService(c.Reader, c.Coercer, c.StatTest, logger)
	return c, nil
}
