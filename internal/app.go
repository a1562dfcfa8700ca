// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "rarebit-ledger/internal/api"
	"rarebit-ledger/internal/api/handler"
	"rarebit-ledger/internal/config"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/repository/postgres"
	"rarebit-ledger/internal/service"
	"rarebit-ledger/internal/util"
	"rarebit-ledger/pkg/blob"
	"rarebit-ledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Images blob.Store

	// Repositories
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository
	ItemRepository        repository.ItemRepository
	ClientRepository      repository.ClientRepository
	CategoryRepository    repository.CategoryRepository
	ProfileRepository     repository.ProfileRepository

	// Services
	LedgerService   service.LedgerService
	ItemService     service.ItemService
	ClientService   service.ClientService
	ReportService   service.ReportService
	SettingsService service.SettingsService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize blob storage (optional; item image uploads are disabled
	// without credentials).
	if app.Config.Cloudinary.CloudName != "" {
		store, err := blob.NewStore(app.Config.Cloudinary)
		if err != nil {
			return fmt.Errorf("failed to initialize image storage: %w", err)
		}
		app.Images = store
		app.Logger.Info("Image storage initialized.")
	} else {
		app.Logger.Warn("Image storage not configured; uploads disabled.")
	}

	// 5. Initialize Repositories
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.ItemRepository = postgres.NewItemRepository(app.DB)
	app.ClientRepository = postgres.NewClientRepository(app.DB)
	app.CategoryRepository = postgres.NewCategoryRepository(app.DB)
	app.ProfileRepository = postgres.NewProfileRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.LedgerService = service.NewLedgerService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.WalletRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.ItemService = service.NewItemService(app.DB, app.ItemRepository, app.LedgerService, app.Images, app.Logger)
	app.ClientService = service.NewClientService(app.DB, app.ClientRepository, app.ItemRepository)
	app.ReportService = service.NewReportService(app.DB, app.ItemRepository)
	app.SettingsService = service.NewSettingsService(app.DB, app.CategoryRepository, app.ProfileRepository)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.RouterConfig{
		Wallets:            handler.NewWalletHandler(app.LedgerService, app.Logger),
		Items:              handler.NewItemHandler(app.ItemService, app.Logger),
		Clients:            handler.NewClientHandler(app.ClientService, app.ReportService, app.Logger),
		Reports:            handler.NewReportHandler(app.ReportService, app.Logger),
		Settings:           handler.NewSettingsHandler(app.SettingsService, app.Logger),
		Uploads:            handler.NewUploadHandler(app.Images, app.Logger),
		CORSAllowedOrigins: app.Config.CORSAllowedOrigins,
		Logger:             app.Logger,
	})
	app.Logger.Info("HTTP router and handlers initialized.")

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
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
