package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/metrics"
	"github.com/andrescamacho/factory-planner-go/internal/adapters/persistence"
	"github.com/andrescamacho/factory-planner-go/internal/application/common"
	"github.com/andrescamacho/factory-planner-go/internal/application/mediator"
	"github.com/andrescamacho/factory-planner-go/internal/application/production/commands"
	"github.com/andrescamacho/factory-planner-go/internal/application/production/queries"
	"github.com/andrescamacho/factory-planner-go/internal/domain/production"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/database"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/logging"
)

// sessionOptions selects which optional infrastructure a command needs
type sessionOptions struct {
	// needDatabase opens the plan history even if database.enabled is false
	needDatabase bool

	// metricsFile overrides metrics.file from configuration
	metricsFile string
}

// session holds the wired application for the duration of one command
type session struct {
	cfg      *config.Config
	logger   *logging.SlogLogger
	catalog  *catalog.Loaded
	mediator mediator.Mediator
	db       *gorm.DB
}

// loadConfig loads configuration from --config, applying global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// newSession wires configuration, logging, catalog, metrics, persistence and the
// mediator. Call Close when the command is done.
func newSession(opts sessionOptions) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if opts.metricsFile != "" {
		cfg.Metrics.File = opts.metricsFile
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	s := &session{cfg: cfg, logger: logger}

	s.catalog, err = catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var commandMetrics *metrics.CommandMetricsCollector
	if cfg.Metrics.Enabled || cfg.Metrics.File != "" {
		commandMetrics, err = initMetrics(cfg.Metrics)
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	var planRepo production.PlanRepository
	if cfg.Database.Enabled || cfg.Planner.Save || opts.needDatabase {
		s.db, err = database.Open(&cfg.Database)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		planRepo = persistence.NewGormPlanRepository(s.db)
	}

	m := mediator.NewMediator()
	m.Use(common.LoggingMiddleware())
	m.Use(metrics.PrometheusMiddleware(commandMetrics))

	if err := mediator.RegisterHandler[*commands.PlanProductionCommand](m,
		commands.NewPlanProductionHandler(s.catalog.Catalog, s.catalog.Profiles, planRepo, nil)); err != nil {
		s.Close()
		return nil, err
	}
	if planRepo != nil {
		if err := mediator.RegisterHandler[*queries.GetPlanQuery](m, queries.NewGetPlanHandler(planRepo)); err != nil {
			s.Close()
			return nil, err
		}
		if err := mediator.RegisterHandler[*queries.ListPlansQuery](m, queries.NewListPlansHandler(planRepo)); err != nil {
			s.Close()
			return nil, err
		}
	}
	s.mediator = m

	logger.Log("DEBUG", "session started", map[string]interface{}{
		"catalog":  s.catalog.Source,
		"items":    s.catalog.Catalog.Len(),
		"database": s.db != nil,
		"metrics":  metrics.IsEnabled(),
	})

	return s, nil
}

func initMetrics(cfg config.MetricsConfig) (*metrics.CommandMetricsCollector, error) {
	metrics.InitRegistry(cfg.Namespace)

	commandMetrics := metrics.NewCommandMetricsCollector()
	if err := commandMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	planMetrics := metrics.NewPlanMetricsCollector()
	if err := planMetrics.Register(); err != nil {
		return nil, fmt.Errorf("failed to register plan metrics: %w", err)
	}
	metrics.SetGlobalPlanCollector(planMetrics)

	return commandMetrics, nil
}

// Context returns a background context carrying the session logger
func (s *session) Context() context.Context {
	return common.WithLogger(context.Background(), s.logger)
}

// Close exports metrics and releases the database and log file
func (s *session) Close() {
	if s.cfg.Metrics.File != "" && metrics.IsEnabled() {
		if err := metrics.WriteTextfile(s.cfg.Metrics.File); err != nil {
			s.logger.Log("ERROR", "metrics export failed", map[string]interface{}{"error": err.Error()})
		}
	}
	metrics.ResetRegistry()

	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			s.logger.Log("WARN", "failed to close database", map[string]interface{}{"error": err.Error()})
		}
	}

	_ = s.logger.Close()
}
