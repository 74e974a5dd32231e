package main

import (
	"log"

	"fintrack/internal/domain/account"
	"fintrack/internal/domain/asset"
	"fintrack/internal/domain/budget"
	"fintrack/internal/domain/category"
	"fintrack/internal/domain/dashboard"
	"fintrack/internal/domain/manualasset"
	"fintrack/internal/domain/marketdata"
	"fintrack/internal/domain/portfolio"
	"fintrack/internal/domain/report"
	"fintrack/internal/domain/transaction"
	"fintrack/internal/infrastructure/postgres"
	"fintrack/internal/infrastructure/quotes"
	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/auth"
	"fintrack/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	AccountHandler     *httphandlers.AccountHandler
	CategoryHandler    *httphandlers.CategoryHandler
	TransactionHandler *httphandlers.TransactionHandler
	BudgetHandler      *httphandlers.BudgetHandler
	PortfolioHandler   *httphandlers.PortfolioHandler
	ManualAssetHandler *httphandlers.ManualAssetHandler
	MarketDataHandler  *httphandlers.MarketDataHandler
	AssetHandler       *httphandlers.AssetHandler
	DashboardHandler   *httphandlers.DashboardHandler
	ReportHandler      *httphandlers.ReportHandler

	// Auth
	JWT *auth.JWT

	// Market data service (for the scheduler job provider)
	MarketDataService *marketdata.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)
	portfolioRepo := postgres.NewPortfolioRepository(db)
	manualAssetRepo := postgres.NewManualAssetRepository(db)
	assetRepo := postgres.NewAssetRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Initialize market data components
	quoteCache := marketdata.NewCache()
	quoteClient := quotes.NewClientWithBaseURL(cfg.MarketData.QuoteURL)
	marketDataService := marketdata.NewService(quoteCache, quoteClient, portfolioRepo)

	// Initialize domain services
	accountService := account.NewService(accountRepo)
	categoryService := category.NewService(categoryRepo)
	transactionService := transaction.NewService(transactionRepo, categoryRepo)
	budgetService := budget.NewService(budgetRepo)
	portfolioService := portfolio.NewService(portfolioRepo, quoteCache)
	manualAssetService := manualasset.NewService(manualAssetRepo)
	assetService := asset.NewService(assetRepo)
	dashboardService := dashboard.NewService(dashboardRepo)
	reportService := report.NewService(reportRepo)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        httphandlers.NewAuthHandler(userRepo, jwt),
		AccountHandler:     httphandlers.NewAccountHandler(accountService),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryService),
		TransactionHandler: httphandlers.NewTransactionHandler(transactionService),
		BudgetHandler:      httphandlers.NewBudgetHandler(budgetService),
		PortfolioHandler:   httphandlers.NewPortfolioHandler(portfolioService),
		ManualAssetHandler: httphandlers.NewManualAssetHandler(manualAssetService),
		MarketDataHandler:  httphandlers.NewMarketDataHandler(marketDataService),
		AssetHandler:       httphandlers.NewAssetHandler(assetService),
		DashboardHandler:   httphandlers.NewDashboardHandler(dashboardService),
		ReportHandler:      httphandlers.NewReportHandler(reportService),
		JWT:                jwt,
		MarketDataService:  marketDataService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
