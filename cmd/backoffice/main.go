package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/estatedesk/backoffice/internal/core/ports/services"
	coresvc "github.com/estatedesk/backoffice/internal/core/services"
	"github.com/estatedesk/backoffice/internal/handlers"
	"github.com/estatedesk/backoffice/internal/middleware"
	"github.com/estatedesk/backoffice/internal/platform/config"
	"github.com/estatedesk/backoffice/internal/platform/database"
	"github.com/estatedesk/backoffice/internal/repositories/database/pgsql"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title EstateDesk Backoffice API
// @version 1.0
// @description Sales back office for the Living Water Subdivision and Havahills Estate projects.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	container := buildServices(cfg, dbPool)
	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories into services and bundles them for the
// handler layer.
func buildServices(cfg *config.Config, dbPool *pgxpool.Pool) *services.ServiceContainer {
	propertyRepo := pgsql.NewPropertyRepository(dbPool)
	clientRepo := pgsql.NewClientRepository(dbPool)
	documentRepo := pgsql.NewDocumentRepository(dbPool)
	balanceRepo := pgsql.NewBalanceRepository(dbPool)
	paymentRepo := pgsql.NewPaymentRepository(dbPool)
	ticketRepo := pgsql.NewTicketRepository(dbPool)
	userRepo := pgsql.NewUserRepository(dbPool)

	committer := coresvc.NewReservationService(propertyRepo)
	balanceSvc := coresvc.NewBalanceService(balanceRepo)

	return &services.ServiceContainer{
		Inventory: coresvc.NewInventoryService(propertyRepo),
		Deal:      coresvc.NewDealService(propertyRepo, committer, cfg.DealSessionTTL),
		Property:  coresvc.NewPropertyService(propertyRepo, clientRepo, documentRepo, balanceRepo),
		Client:    coresvc.NewClientService(clientRepo),
		Document:  coresvc.NewDocumentService(documentRepo),
		Balance:   balanceSvc,
		Payment:   coresvc.NewPaymentService(paymentRepo, coresvc.WithBalanceSvc(balanceSvc)),
		Ticket:    coresvc.NewTicketService(ticketRepo),
		User:      coresvc.NewUserService(userRepo),
	}
}

// runMigrations applies all pending "up" migrations before the server starts
// accepting traffic. It uses a throwaway database/sql connection via the pgx
// stdlib driver so golang-migrate and the main pool stay compatible.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		_ = migrationDB.Close()
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		_ = migrationDB.Close()
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		_ = migrationDB.Close()
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}
