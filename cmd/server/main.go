package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/condoops/bank-reconciliation/internal/application/service"
	"github.com/condoops/bank-reconciliation/internal/config"
	"github.com/condoops/bank-reconciliation/internal/infrastructure/persistence/repository"
	httpserver "github.com/condoops/bank-reconciliation/internal/interfaces/http"
	"github.com/condoops/bank-reconciliation/pkg/database"
	"github.com/condoops/bank-reconciliation/pkg/utils"
)

func main() {
	// Optional .env for local overrides; silently absent in production.
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

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

	logger.Info("Starting bank reconciliation service",
		zap.Int("port", cfg.Server.Port),
		zap.Int("min_house_number", cfg.Reconciliation.MinHouseNumber),
		zap.Int("max_house_number", cfg.Reconciliation.MaxHouseNumber))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Repositories
	depositRepo := repository.NewDepositRepository(db.DB, logger)
	voucherRepo := repository.NewVoucherRepository(db.DB, logger)
	statusRepo := repository.NewStatusRepository(db.DB, logger)
	houseRepo := repository.NewHouseRepository(db.DB, logger)
	recordRepo := repository.NewRecordRepository(db.DB, logger)
	houseRecordRepo := repository.NewHouseRecordRepository(db.DB, logger)
	auditRepo := repository.NewApprovalAuditRepository(db.DB, logger)
	periodRepo := repository.NewPeriodRepository(db.DB, logger)
	chargeRepo := repository.NewChargeRepository(db.DB, logger)
	txManager := repository.NewTxManager(db)

	sugar := logger.Sugar()

	// Services
	allocationService := service.NewAllocationService(chargeRepo, sugarLogger{sugar})
	matchingService := service.NewMatchingService(depositRepo, voucherRepo, cfg.Reconciliation, sugarLogger{sugar})
	reconciliationService := service.NewReconciliationService(
		depositRepo, voucherRepo, statusRepo,
		houseRepo, recordRepo, houseRecordRepo,
		auditRepo, periodRepo, allocationService,
		txManager, cfg.Reconciliation, sugarLogger{sugar},
	)
	reportService := service.NewReportService(matchingService, sugarLogger{sugar})

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		matchingService,
		reconciliationService,
		reportService,
		sugarLogger{sugar},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

// sugarLogger adapts *zap.SugaredLogger to the services' Logger interface.
type sugarLogger struct {
	s *zap.SugaredLogger
}

func (l sugarLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l sugarLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}

func (l sugarLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}
