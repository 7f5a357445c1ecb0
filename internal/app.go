// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "starpoint/internal/api"
	"starpoint/internal/api/handler"
	"starpoint/internal/config"
	"starpoint/internal/export"
	"starpoint/internal/repository"
	"starpoint/internal/repository/sqlite"
	"starpoint/internal/service"
	"starpoint/internal/util"
	"starpoint/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	DepositRepository    repository.DepositRepository
	WithdrawalRepository repository.WithdrawalRepository
	UserRepository       repository.UserRepository

	// Services
	LedgerService service.LedgerService
	ReportService service.ReportService
	Exporter      *export.Exporter

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components. Config and Logger are
// only loaded when the caller has not set them already.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	if app.Config == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		app.Config = cfg
	}

	// 2. Initialize Logger
	if app.Logger == nil {
		util.InitLogger(app.Config.LogLevel)
		app.Logger = util.GetLogger()
	}
	app.Logger.Info("Application configuration loaded successfully.", "db", app.Config.DB.Path)

	location, err := app.Config.Ledger.Location()
	if err != nil {
		return err
	}

	// 3. Open the ledger store and bring its schema up to date
	database, err := db.NewSQLiteDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	repaired, err := db.Migrate(ctx, app.DB)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	app.Logger.Info("Database ready.", "repaired_timestamps", repaired)

	// 4. Initialize Repositories
	app.DepositRepository = sqlite.NewDepositRepository(app.DB)
	app.WithdrawalRepository = sqlite.NewWithdrawalRepository(app.DB)
	app.UserRepository = sqlite.NewUserRepository(app.DB)

	// 5. Initialize Services
	app.LedgerService = service.NewLedgerService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor
		app.DepositRepository,
		app.WithdrawalRepository,
		app.UserRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		service.LedgerOptions{
			Rule:         app.Config.Ledger.PointsRule(),
			HistoryLimit: app.Config.Ledger.HistoryLimit,
			Location:     location,
			Logger:       app.Logger,
		},
	)
	app.ReportService = service.NewReportService(
		app.DB,
		app.DB,
		app.DepositRepository,
		app.WithdrawalRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)

	if _, err := app.LedgerService.NormalizeStoredUsers(ctx); err != nil {
		return fmt.Errorf("failed to normalize stored users: %w", err)
	}

	app.Exporter = export.NewExporter(app.ReportService, func(ctx context.Context) ([]byte, error) {
		return db.BackupBytes(ctx, app.DB)
	}, location, app.Logger)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	ledgerHandler := handler.NewLedgerHandler(app.LedgerService, app.ReportService, app.Exporter, app.Logger)
	app.HTTPHandler = router.NewRouter(ledgerHandler, app.Logger)

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	return nil
}
