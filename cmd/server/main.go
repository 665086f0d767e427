package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/restodine/admin-service/config"
	"github.com/restodine/admin-service/internal/auth"
	"github.com/restodine/admin-service/internal/middleware"
	"github.com/restodine/admin-service/internal/notify"
	"github.com/restodine/admin-service/pkg/broker"
	"github.com/restodine/admin-service/pkg/cache"
	"github.com/restodine/admin-service/pkg/database/postgres"
	"github.com/restodine/admin-service/pkg/logger"
	"github.com/restodine/admin-service/pkg/search"

	backupH "github.com/restodine/admin-service/internal/backup"
	backupHandlerPkg "github.com/restodine/admin-service/internal/backup/handler"

	catHandlerPkg "github.com/restodine/admin-service/internal/category/handler"
	catRepoPkg "github.com/restodine/admin-service/internal/category/repository"
	catUCPkg "github.com/restodine/admin-service/internal/category/usecase"

	menuHandlerPkg "github.com/restodine/admin-service/internal/menu/handler"
	menuRepoPkg "github.com/restodine/admin-service/internal/menu/repository"
	menuUCPkg "github.com/restodine/admin-service/internal/menu/usecase"

	recipeHandlerPkg "github.com/restodine/admin-service/internal/recipe/handler"
	recipeRepoPkg "github.com/restodine/admin-service/internal/recipe/repository"

	receiptHandlerPkg "github.com/restodine/admin-service/internal/receipt/handler"
	receiptRepoPkg "github.com/restodine/admin-service/internal/receipt/repository"
	receiptUCPkg "github.com/restodine/admin-service/internal/receipt/usecase"

	"github.com/restodine/admin-service/internal/stock"
	stockHandlerPkg "github.com/restodine/admin-service/internal/stock/handler"
	stockListenerPkg "github.com/restodine/admin-service/internal/stock/listener"
	stockRepoPkg "github.com/restodine/admin-service/internal/stock/repository"
	stockUCPkg "github.com/restodine/admin-service/internal/stock/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	menuRepo := menuRepoPkg.NewPGRepository(db)
	recipeRepo := recipeRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)
	receiptRepo := receiptRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search disabled)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	notifier := notify.NewLogNotifier(appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	menuUC := menuUCPkg.NewMenuUseCase(menuRepo, redisClient, esClient, appLogger)
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, redisClient, appLogger)
	receiptUC := receiptUCPkg.NewReceiptUseCase(receiptRepo, appLogger)
	backupSvc := backupH.NewService(menuRepo, catRepo, recipeRepo, appLogger)

	// 6.3 Stock alert monitor + notification flow
	monitor := stock.NewMonitor(
		stockUC, notifier, appLogger,
		time.Duration(cfg.Alerts.ScanIntervalSeconds)*time.Second,
		time.Duration(cfg.Alerts.ExpiryWindowDays)*24*time.Hour,
	)
	alertFlow := stock.NewNotificationFlow(monitor)

	// 6.5 Kafka listener deducting recipe ingredients on completed orders
	stockListener := stockListenerPkg.NewStockListener(kafkaConsumer, stockUC, recipeRepo, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go stockListener.Start(ctx)
	go monitor.Start(ctx)

	// 7. Initialize Handlers
	catHandler := catHandlerPkg.NewCategoryHandler(catUC, appLogger)
	menuHandler := menuHandlerPkg.NewMenuHandler(menuUC, notifier, appLogger)
	recipeHandler := recipeHandlerPkg.NewRecipeHandler(recipeRepo, appLogger)
	stockHandler := stockHandlerPkg.NewStockHandler(stockUC, alertFlow, appLogger)
	receiptHandler := receiptHandlerPkg.NewReceiptHandler(receiptUC, appLogger)
	backupHandler := backupHandlerPkg.NewBackupHandler(backupSvc, appLogger)

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(appLogger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "api_key", auth.MerchantHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.Auth))
		r.Use(auth.MerchantContext)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catHandler.ListCategories)
			r.Post("/", catHandler.CreateCategory)
			r.Get("/{categoryId}", catHandler.GetCategory)
			r.Put("/{categoryId}", catHandler.UpdateCategory)
			r.Delete("/{categoryId}", catHandler.DeleteCategory)
		})

		r.Route("/menu-items", func(r chi.Router) {
			r.Get("/", menuHandler.ListItems)
			r.Post("/", menuHandler.CreateItem)
			r.Get("/{itemId}", menuHandler.GetItem)
			r.Put("/{itemId}", menuHandler.UpdateItem)
			r.Delete("/{itemId}", menuHandler.DeleteItem)
			r.Get("/{itemId}/recipe", recipeHandler.GetRecipe)
			r.Put("/{itemId}/recipe", recipeHandler.SaveRecipe)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", stockHandler.ListIngredients)
			r.Post("/", stockHandler.CreateIngredient)
			r.Post("/{ingredientId}/adjustments", stockHandler.AdjustStock)
		})
		r.Get("/adjustments", stockHandler.ListAdjustments)

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", stockHandler.ListAlerts)
			r.Post("/{alertId}/action", stockHandler.AlertAction)
		})

		r.Route("/receipts", func(r chi.Router) {
			r.Get("/", receiptHandler.ListReceipts)
			r.Post("/", receiptHandler.CreateReceipt)
			r.Get("/{receiptId}", receiptHandler.GetReceipt)
			r.Post("/{receiptId}/print", receiptHandler.PrintReceipt)
		})

		r.Route("/backup", func(r chi.Router) {
			r.Get("/export", backupHandler.Export)
			r.Post("/restore", backupHandler.Restore)
		})
	})

	// 9. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
