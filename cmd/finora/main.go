package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Nelly255/Finora/internal/ai"
	"github.com/Nelly255/Finora/internal/auth"
	database "github.com/Nelly255/Finora/internal/db"
	"github.com/Nelly255/Finora/internal/finance/application"
	"github.com/Nelly255/Finora/internal/finance/infrastructure"
	"github.com/Nelly255/Finora/internal/finance/interfaces"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Path not found")
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		logger.Info().Msg("no .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

type Server struct {
	router              *http.ServeMux
	authService         *auth.Service
	dbService           *database.DBService
	transactionHandler  *interfaces.TransactionHandler
	categoryHandler     *interfaces.CategoryHandler
	budgetHandler       *interfaces.BudgetHandler
	subscriptionHandler *interfaces.SubscriptionHandler
	goalHandler         *interfaces.SavingsGoalHandler
	assetHandler        *interfaces.AssetHandler
	dashboardHandler    *interfaces.DashboardHandler
	reportHandler       *interfaces.ReportHandler
	importHandler       *interfaces.ImportHandler
	aiHandler           *ai.Handler
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	publicRoutes.Handle("GET /api/health", http.HandlerFunc(s.handleHealth))

	protectedRoutes := http.NewServeMux()
	protect := s.authService.JWTAccessTokenMiddleware()
	handle := func(pattern string, handlerFunc http.HandlerFunc) {
		protectedRoutes.Handle(pattern, protect(handlerFunc))
	}

	// TRANSACTIONS API
	handle("POST /api/protected/transactions", s.transactionHandler.CreateTransaction)
	handle("POST /api/protected/transactions/bulk", s.transactionHandler.CreateTransactionsBulk)
	handle("GET /api/protected/transactions", s.transactionHandler.GetUserTransactions)
	handle("PUT /api/protected/transactions/{transactionID}", s.transactionHandler.UpdateTransaction)
	handle("DELETE /api/protected/transactions/{transactionID}", s.transactionHandler.DeleteTransaction)
	handle("GET /api/protected/transactions/summary", s.transactionHandler.GetTransactionSummary)
	handle("GET /api/protected/transactions/summary/categories", s.transactionHandler.GetTransactionSummaryByCategory)

	// CATEGORIES API
	handle("GET /api/protected/categories/predefined", s.categoryHandler.GetPredefinedCategories)
	handle("GET /api/protected/categories", s.categoryHandler.GetUserCategories)
	handle("POST /api/protected/categories", s.categoryHandler.CreateUserCategory)
	handle("PUT /api/protected/categories/{categoryID}", s.categoryHandler.RenameUserCategory)
	handle("DELETE /api/protected/categories/{categoryID}", s.categoryHandler.DeleteUserCategory)

	// BUDGETS API
	handle("POST /api/protected/budgets", s.budgetHandler.CreateBudget)
	handle("GET /api/protected/budgets", s.budgetHandler.GetBudgets)
	handle("GET /api/protected/budgets/status", s.budgetHandler.GetBudgetStatus)
	handle("PUT /api/protected/budgets/{budgetID}", s.budgetHandler.UpdateBudget)
	handle("DELETE /api/protected/budgets/{budgetID}", s.budgetHandler.DeleteBudget)

	// SUBSCRIPTIONS API
	handle("POST /api/protected/subscriptions", s.subscriptionHandler.CreateSubscription)
	handle("GET /api/protected/subscriptions", s.subscriptionHandler.GetUserSubscriptions)
	handle("PUT /api/protected/subscriptions/{subscriptionID}", s.subscriptionHandler.UpdateSubscription)
	handle("DELETE /api/protected/subscriptions/{subscriptionID}", s.subscriptionHandler.DeleteSubscription)

	// SAVINGS GOALS API
	handle("POST /api/protected/goals", s.goalHandler.CreateGoal)
	handle("GET /api/protected/goals", s.goalHandler.GetUserGoals)
	handle("POST /api/protected/goals/{goalID}/contributions", s.goalHandler.Contribute)
	handle("PUT /api/protected/goals/{goalID}", s.goalHandler.UpdateGoal)
	handle("DELETE /api/protected/goals/{goalID}", s.goalHandler.DeleteGoal)

	// ASSETS API
	handle("POST /api/protected/assets", s.assetHandler.CreateAsset)
	handle("GET /api/protected/assets", s.assetHandler.GetUserAssets)
	handle("GET /api/protected/assets/{assetID}/depreciation", s.assetHandler.GetDepreciationSchedule)
	handle("PUT /api/protected/assets/{assetID}", s.assetHandler.UpdateAsset)
	handle("DELETE /api/protected/assets/{assetID}", s.assetHandler.DeleteAsset)

	// DASHBOARD API
	handle("GET /api/protected/dashboard", s.dashboardHandler.GetOverview)
	handle("GET /api/protected/dashboard/health", s.dashboardHandler.GetHealthScore)
	handle("GET /api/protected/dashboard/alerts", s.dashboardHandler.GetAlerts)

	// REPORTS API
	handle("GET /api/protected/reports/transactions.csv", s.reportHandler.ExportCSV)
	handle("GET /api/protected/reports/monthly", s.reportHandler.MonthlyReport)

	// IMPORTS API
	handle("POST /api/protected/imports/statement", s.importHandler.ImportStatement)

	// AI API, registered only when a model backend is configured
	if s.aiHandler != nil {
		handle("POST /api/protected/ai/summary", s.aiHandler.GenerateSummary)
		handle("POST /api/protected/ai/chat", s.aiHandler.FollowUp)
		handle("GET /api/protected/ai/chat/ws", s.aiHandler.Chat)
	}

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func StartSubscriptionScheduler(subscriptionService *application.SubscriptionService) error {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		posted, err := subscriptionService.ProcessDue(time.Now())
		if err != nil {
			logger.Error().Err(err).Msg("subscription posting failed")
			return
		}
		logger.Info().Int("posted", posted).Msg("subscription charges posted")
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func StartUsagePruneScheduler(limiter *ai.RateLimiter) error {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		if err := limiter.Prune(context.Background()); err != nil {
			logger.Error().Err(err).Msg("ai usage pruning failed")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}

func main() {
	if err := checkConfiguration(); err != nil {
		logger.Fatal().Err(err).Msg("missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not initialize database")
	}
	defer dbService.Close()

	jwtManager := auth.NewJWTManager()
	authService := auth.NewService(jwtManager)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo, categoryService)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)

	budgetRepo := infrastructure.NewBudgetRepository(dbService.DB)
	budgetService := application.NewBudgetService(budgetRepo, transactionRepo, categoryService)
	budgetHandler := interfaces.NewBudgetHandler(budgetService, respondJSON, respondError)

	subscriptionRepo := infrastructure.NewSubscriptionRepository(dbService.DB)
	subscriptionService := application.NewSubscriptionService(subscriptionRepo, transactionService, categoryService)
	subscriptionHandler := interfaces.NewSubscriptionHandler(subscriptionService, respondJSON, respondError)

	goalRepo := infrastructure.NewSavingsGoalRepository(dbService.DB)
	goalService := application.NewSavingsGoalService(goalRepo)
	goalHandler := interfaces.NewSavingsGoalHandler(goalService, respondJSON, respondError)

	assetRepo := infrastructure.NewAssetRepository(dbService.DB)
	assetService := application.NewAssetService(assetRepo)
	assetHandler := interfaces.NewAssetHandler(assetService, respondJSON, respondError)

	dashboardHandler := interfaces.NewDashboardHandler(transactionService, budgetService, respondJSON, respondError)
	reportHandler := interfaces.NewReportHandler(transactionService, categoryService, budgetService, respondError)
	importHandler := interfaces.NewImportHandler(transactionService, respondJSON, respondError)

	usageStore := ai.NewPostgresUsageStore(dbService.DB)
	limiter := ai.NewRateLimiter(usageStore, ai.DefaultDailyLimit)

	var aiHandler *ai.Handler
	if os.Getenv("OPENAI_API_KEY") != "" {
		aiHandler = ai.NewHandler(ai.NewOpenAIClient(), limiter, transactionService, respondJSON, respondError)
	} else {
		logger.Info().Msg("OPENAI_API_KEY not set, AI endpoints disabled")
	}

	server := &Server{
		authService:         authService,
		dbService:           dbService,
		transactionHandler:  transactionHandler,
		categoryHandler:     categoryHandler,
		budgetHandler:       budgetHandler,
		subscriptionHandler: subscriptionHandler,
		goalHandler:         goalHandler,
		assetHandler:        assetHandler,
		dashboardHandler:    dashboardHandler,
		reportHandler:       reportHandler,
		importHandler:       importHandler,
		aiHandler:           aiHandler,
	}
	server.RegisterRoutes()

	if err := StartSubscriptionScheduler(subscriptionService); err != nil {
		logger.Fatal().Err(err).Msg("subscription scheduler didn't start")
	}
	if err := StartUsagePruneScheduler(limiter); err != nil {
		logger.Fatal().Err(err).Msg("usage prune scheduler didn't start")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, loggingMiddleware(server.router)); err != nil {
		logger.Fatal().Err(err).Msg("server failed to start")
	}
}
