package main

import (
	"log"
	"net/http"

	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/config"
	"fintrack/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)
	mux.HandleFunc("/api/auth/forgot-password", deps.AuthHandler.HandleForgotPassword)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("/api/settings/profile", protected(deps.AuthHandler.HandleProfile))

	mux.Handle("/api/accounts", protected(deps.AccountHandler.HandleAccounts))
	mux.Handle("/api/accounts/{id}", protected(deps.AccountHandler.HandleAccountByID))

	mux.Handle("/api/categories", protected(deps.CategoryHandler.HandleCategories))
	mux.Handle("/api/categories/{id}", protected(deps.CategoryHandler.HandleCategoryByID))

	mux.Handle("/api/transactions", protected(deps.TransactionHandler.HandleTransactions))
	mux.Handle("/api/transactions/notes", protected(deps.TransactionHandler.HandleNoteSuggestions))
	mux.Handle("/api/transactions/shortcut", protected(deps.TransactionHandler.HandleShortcut))
	mux.Handle("/api/transactions/{id}", protected(deps.TransactionHandler.HandleTransactionByID))

	mux.Handle("/api/budgets", protected(deps.BudgetHandler.HandleBudgets))
	mux.Handle("/api/budgets/{id}", protected(deps.BudgetHandler.HandleBudgetByID))

	mux.Handle("/api/portfolios", protected(deps.PortfolioHandler.HandlePortfolios))
	mux.Handle("/api/portfolios/{id}", protected(deps.PortfolioHandler.HandlePortfolioByID))
	mux.Handle("/api/portfolios/{id}/holdings", protected(deps.PortfolioHandler.HandlePortfolioHoldings))
	mux.Handle("/api/holdings/{id}", protected(deps.PortfolioHandler.HandleHoldingByID))

	mux.Handle("/api/manual-assets", protected(deps.ManualAssetHandler.HandleManualAssets))
	mux.Handle("/api/manual-assets/{id}", protected(deps.ManualAssetHandler.HandleManualAssetByID))

	mux.Handle("/api/market-data", protected(deps.MarketDataHandler.HandleMarketData))

	mux.Handle("/api/asset-groups", protected(deps.AssetHandler.HandleGroups))
	mux.Handle("/api/asset-groups/{id}", protected(deps.AssetHandler.HandleGroupByID))
	mux.Handle("/api/asset-groups/{id}/items", protected(deps.AssetHandler.HandleGroupItems))
	mux.Handle("/api/asset-items/{id}", protected(deps.AssetHandler.HandleItemByID))
	mux.Handle("/api/asset-items/{id}/children", protected(deps.AssetHandler.HandleItemChildren))
	mux.Handle("/api/asset-items/{id}/collapse", protected(deps.AssetHandler.HandleCollapse))
	mux.Handle("/api/asset-items/{id}/expand", protected(deps.AssetHandler.HandleExpand))
	mux.Handle("/api/asset-items/{id}/valuations", protected(deps.AssetHandler.HandleItemValuations))
	mux.Handle("/api/asset-valuations", protected(deps.AssetHandler.HandleValuations))
	mux.Handle("/api/asset-valuations/apply-depreciation", protected(deps.AssetHandler.HandleApplyDepreciation))
	mux.Handle("/api/asset-valuations/sheet", protected(deps.AssetHandler.HandleSheet))

	mux.Handle("/api/dashboard/summary", protected(deps.DashboardHandler.HandleSummary))

	mux.Handle("/api/reports/cashflow", protected(deps.ReportHandler.HandleCashflow))
	mux.Handle("/api/reports/trends", protected(deps.ReportHandler.HandleCashflow))
	mux.Handle("/api/reports/spending-by-category", protected(deps.ReportHandler.HandleSpendingByCategory))
	mux.Handle("/api/reports/monthly-expenses", protected(deps.ReportHandler.HandleMonthlyExpenses))
	mux.Handle("/api/reports/category-analysis", protected(deps.ReportHandler.HandleCategoryAnalysis))

	// Apply global middleware
	handler := middleware.RequestID(middleware.Logging(middleware.Tracing(middleware.Telemetry(middleware.CORS(cfg.Server.AllowedHosts)(mux)))))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
