package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/finpilot/finai-service/internal/alerts"
	"github.com/finpilot/finai-service/internal/assistant"
	"github.com/finpilot/finai-service/internal/cache"
	"github.com/finpilot/finai-service/internal/config"
	"github.com/finpilot/finai-service/internal/handler"
	"github.com/finpilot/finai-service/internal/integrations/gemini"
	"github.com/finpilot/finai-service/internal/integrations/googleauth"
	"github.com/finpilot/finai-service/internal/middleware"
	"github.com/finpilot/finai-service/internal/repository"
	"github.com/finpilot/finai-service/internal/service"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := repository.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// LLM response cache: Redis when configured, in-process otherwise
	var llmCache cache.Repository
	if cfg.RedisAddr != "" {
		llmCache = cache.NewRedisCache(cfg.RedisAddr)
		logger.Infof("Using Redis LLM cache at %s", cfg.RedisAddr)
	} else {
		llmCache = cache.NewMemoryCache()
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	llm := gemini.NewClient(cfg, logger, llmCache)
	google := googleauth.NewClient(cfg, logger)
	predictor := assistant.NewPredictor(cfg.ModelPath, cfg.FeaturesPath, logger)

	var gateway assistant.Gateway
	if llm.Configured() {
		gateway = llm
	} else {
		logger.Warn("GEMINI_API_KEY not set, assistant chat will use local fallbacks")
	}
	router := assistant.NewRouter(predictor, gateway, logger)

	svc := service.NewService(repo, logger, cfg, router, predictor, llm, google)
	h := handler.NewHandler(svc)

	// Budget overspend alerts
	scheduler := alerts.NewScheduler(repo, alerts.NewSender(cfg, logger), cfg, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatalf("Failed to start alert scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")
	// Public routes
	r.HandleFunc("/api/auth/signup", h.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/api/auth/google", h.GoogleLogin).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	authRouter.HandleFunc("/budgets", h.UpsertBudget).Methods("POST")
	authRouter.HandleFunc("/analysis/analyze-spending", h.AnalyzeSpending).Methods("POST")
	authRouter.HandleFunc("/analysis/chat", h.Chat).Methods("POST")
	authRouter.HandleFunc("/analysis/salary-plan", h.SalaryPlan).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
