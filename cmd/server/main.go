package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/fivemlab/commute-expense/internal/application/port"
	"github.com/fivemlab/commute-expense/internal/application/service"
	"github.com/fivemlab/commute-expense/internal/auth"
	"github.com/fivemlab/commute-expense/internal/config"
	"github.com/fivemlab/commute-expense/internal/infrastructure/external/slack"
	"github.com/fivemlab/commute-expense/internal/infrastructure/persistence/repository"
	httpserver "github.com/fivemlab/commute-expense/internal/interfaces/http"
	"github.com/fivemlab/commute-expense/pkg/database"
	"github.com/fivemlab/commute-expense/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting commute expense service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	submissionRepo := repository.NewSubmissionRepository(db.DB, logger)
	profileRepo := repository.NewProfileRepository(db.DB, logger)
	userRepo := repository.NewUserRepository(db.DB, logger)

	// Initialize session tokens
	tokens, err := auth.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	// Initialize Slack notifier
	var notifier *slack.Notifier
	if cfg.Slack.WebhookURL != "" {
		notifier = slack.NewNotifier(cfg.Slack.WebhookURL, cfg.Slack.AppURL, cfg.Slack.Timeout, logger)
	} else {
		logger.Info("Slack webhook not configured, submission notices disabled")
	}

	// Initialize services
	serviceLogger := &zapLoggerAdapter{logger: logger}
	accountService := service.NewAccountService(userRepo, profileRepo, tokens, cfg.Auth.AdminEmails, serviceLogger)
	submissionService := service.NewSubmissionService(submissionRepo, profileRepo, notifierOrNil(notifier), serviceLogger)
	approvalService := service.NewApprovalService(submissionRepo, serviceLogger)
	exportService := service.NewExportService(submissionRepo, serviceLogger)

	// Initialize HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		tokens,
		accountService,
		submissionService,
		approvalService,
		exportService,
		serviceLogger,
	)

	// Start server, shut down on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// notifierOrNil keeps the port interface nil when notifications are
// disabled; a typed nil would dodge the service's nil check.
func notifierOrNil(n *slack.Notifier) port.Notifier {
	if n == nil {
		return nil
	}
	return n
}

// zapLoggerAdapter adapts zap.Logger to the service and http Logger
// interfaces.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Infow(msg, keysAndValues...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Sugar().Errorw(msg, keysAndValues...)
}
