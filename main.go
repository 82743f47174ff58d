package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/talentbridge/command-center-backend/api"
	"github.com/talentbridge/command-center-backend/config"
	"github.com/talentbridge/command-center-backend/database"
	"github.com/talentbridge/command-center-backend/models"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()

	// In deployment, secrets live in Parameter Store rather than the
	// process environment.
	if prefix := config.GetString(cfg, "SSM_PARAMETER_PREFIX", ""); prefix != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := config.OverlayFromSSM(ctx, cfg, prefix); err != nil {
			cancel()
			fmt.Printf("Error overlaying SSM parameters: %v\n", err)
			os.Exit(1)
		}
		cancel()
	}

	setLogLevel(cfg)

	connStr := config.GetString(cfg, "DATABASE_DSN", "")
	if connStr == "" {
		fmt.Println("DATABASE_DSN is not set. Exiting...")
		os.Exit(1)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	// Extensions and migration run on the elevated connection when one is
	// configured; the serving connection stays least-privilege.
	if err := migrate(cfg, db, newLogger); err != nil {
		fmt.Printf("Error migrating database: %v\n", err)
		os.Exit(1)
	}

	// Route reads through the replica when one is configured.
	if replicaDSN := config.GetString(cfg, "READ_REPLICA_DSN", ""); replicaDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  replicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			fmt.Printf("Error registering read replica: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Read replica registered.")
	}

	currentDB := database.New(db)

	// If generating models, run generation and exit
	if strings.ToLower(os.Getenv("GENERATE_MODELS")) == "true" {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if os.Getenv("GENERATE_COLUMN_REPORT") == "true" {
		fmt.Println("Generating column mismatch report...")
		models.GenerateColumnMismatchReportStandalone(db)
		return
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// migrate enables required extensions and applies the schema. When
// SERVICE_ROLE_DSN is set, a dedicated elevated connection performs the DDL
// and is closed afterward.
func migrate(cfg map[string]string, db *gorm.DB, gormLogger logger.Interface) error {
	migrateDB := db
	if serviceDSN := config.GetString(cfg, "SERVICE_ROLE_DSN", ""); serviceDSN != "" {
		elevated, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  serviceDSN,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
			Logger:      gormLogger,
		})
		if err != nil {
			return fmt.Errorf("connecting with service role: %w", err)
		}
		defer func() {
			if sqlDB, err := elevated.DB(); err == nil {
				sqlDB.Close()
			}
		}()
		migrateDB = elevated
	}

	if err := migrateDB.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("enabling pgcrypto extension: %w", err)
	}
	if err := migrateDB.Exec(`CREATE EXTENSION IF NOT EXISTS "vector"`).Error; err != nil {
		return fmt.Errorf("enabling vector extension: %w", err)
	}

	if err := migrateDB.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// setLogLevel applies LOG_LEVEL to the global zerolog logger.
func setLogLevel(cfg map[string]string) {
	levelName := config.GetString(cfg, "LOG_LEVEL", "info")
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		zlog.Warn().Str("level", levelName).Msg("Unknown LOG_LEVEL, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
