package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/pressly/goose/v3"
	_ "github.com/lib/pq"

	api "shedstock-backend/internal/api/http"
	"shedstock-backend/internal/config"
	"shedstock-backend/internal/logger"
	"shedstock-backend/internal/repository/postgres"
	"shedstock-backend/internal/security"
	"shedstock-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrationsDir := flag.String("migrations", "migrations", "Path to SQL migrations")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting shedstock backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set migration dialect: %v", err)
	}
	if err := goose.Up(db, *migrationsDir); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Database migrations applied")

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	emailService := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	handlers := &api.Handlers{
		Auth:           service.NewAuthService(store.UserRepository, tokenManager),
		Inventory:      service.NewInventoryService(store, store.ItemRepository, store.ShedRepository, emailService, cfg.Notifier.AdminEmail),
		Reconciliation: service.NewReconciliationService(store, store.StockRecordRepository),
		Transfer:       service.NewTransferService(store, store.MovementRepository, store.ItemRepository),
		Sheds:          service.NewShedService(store.ShedRepository),
		Observations:   service.NewObservationService(store.ObservationRepository, store.ItemRepository),
	}

	router := api.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
