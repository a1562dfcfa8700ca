// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"rarebit-ledger/internal/api/handler"
)

// RouterConfig bundles the handlers and settings the router needs.
type RouterConfig struct {
	Wallets            *handler.WalletHandler
	Items              *handler.ItemHandler
	Clients            *handler.ClientHandler
	Reports            *handler.ReportHandler
	Settings           *handler.SettingsHandler
	Uploads            *handler.UploadHandler
	CORSAllowedOrigins []string
	Logger             *slog.Logger
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// All API routes require an acting user
	r.Group(func(r chi.Router) {
		r.Use(handler.RequireUser)

		r.Route("/wallets", func(r chi.Router) {
			r.Get("/", cfg.Wallets.ListWallets)
			r.Post("/", cfg.Wallets.UpsertWallet)
			r.Delete("/{walletID}", cfg.Wallets.DeleteWallet)
			r.Get("/{walletID}/balance", cfg.Wallets.GetWalletBalance)
			r.Post("/{walletID}/adjust", cfg.Wallets.AdjustBalance)
			r.Get("/{walletID}/transactions", cfg.Wallets.ListWalletTransactions)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.Wallets.ListTransactions)
			r.Post("/", cfg.Wallets.CreateTransaction)
			r.Put("/{transactionID}", cfg.Wallets.UpdateTransaction)
			r.Delete("/{transactionID}", cfg.Wallets.DeleteTransaction)
		})

		// Transfer is a separate top-level endpoint as it involves two wallets
		r.Post("/transfers", cfg.Wallets.Transfer)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", cfg.Items.ListItems)
			r.Post("/", cfg.Items.SaveItem)
			r.Get("/{itemID}", cfg.Items.GetItem)
			r.Delete("/{itemID}", cfg.Items.DeleteItem)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", cfg.Clients.ListClients)
			r.Post("/", cfg.Clients.SaveClient)
			r.Get("/{clientID}", cfg.Clients.GetClientDetail)
			r.Delete("/{clientID}", cfg.Clients.DeleteClient)
			r.Get("/{clientID}/history.csv", cfg.Clients.ClientHistoryCSV)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", cfg.Reports.Dashboard)
			r.Get("/sales", cfg.Reports.Sales)
			r.Get("/sales.csv", cfg.Reports.SalesCSV)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", cfg.Settings.ListCategories)
			r.Post("/", cfg.Settings.CreateCategory)
			r.Delete("/{categoryID}", cfg.Settings.DeleteCategory)
		})

		r.Get("/profile", cfg.Settings.GetProfile)
		r.Put("/profile", cfg.Settings.SaveProfile)

		r.Post("/uploads/item-image", cfg.Uploads.UploadItemImage)
	})

	return r
}
