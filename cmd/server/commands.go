// cmd/server/commands.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/database"
	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/router"
)

const (
	storeFlag = "store"
	portFlag  = "port"
)

var serveFlags = map[string]cobraflags.Flag{
	storeFlag: &cobraflags.StringFlag{
		Name:  storeFlag,
		Value: "",
		Usage: "Store driver (postgres, memory). Overrides STORE_DRIVER",
	},
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "HTTP port. Overrides SERVER_PORT",
	},
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "store-backend",
		Short: "Fashion store catalog API",
		Long: `Fashion store catalog API.

Without a subcommand the HTTP server is started.

Examples:
  store-backend                     # Serve using the configured store
  store-backend serve --store memory
  store-backend migrate             # Create tables, collation and indexes
  store-backend seed                # Insert the admin account and sample catalog`,
		SilenceUsage: true,
		RunE:         serveCommand,
	}
	cobraflags.RegisterMap(rootCmd, serveFlags)

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	return rootCmd
}

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  serveCommand,
	}
	cobraflags.RegisterMap(serveCmd, serveFlags)
	return serveCmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return withDatabase(cfg, logger, database.RunMigrations)
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the admin account and, on an empty catalog, sample data",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			return withDatabase(cfg, logger, func(db *gorm.DB) error {
				return database.SeedInitialData(db, cfg.Admin)
			})
		},
	}
}

// setup loads the configuration, the translations and the logger shared by
// every command.
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if driver := serveFlags[storeFlag].GetString(); driver != "" {
		cfg.Database.Driver = driver
	}
	if port := serveFlags[portFlag].GetString(); port != "" {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if err := i18n.Initialize(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize i18n: %w", err)
	}

	return cfg, newLogger(cfg), nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.StandardLogger()
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func withDatabase(cfg *config.Config, logger *logrus.Logger, fn func(db *gorm.DB) error) error {
	if cfg.Database.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("command requires the %s store, got %s", config.StoreDriverPostgres, cfg.Database.Driver)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close(db)

	logger.WithField("database", cfg.Database.Database).Debug("Database connected")
	return fn(db)
}

func serveCommand(_ *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var stores router.Stores
	switch cfg.Database.Driver {
	case config.StoreDriverMemory:
		logger.Warn("Using the in-memory store, data is lost on restart")
		if stores, err = router.MemoryStores(cfg.Admin); err != nil {
			return err
		}
	default:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		stores = router.PostgresStores(db)
	}

	r, err := router.Initialize(stores, cfg, logger, router.Options{})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"port":  cfg.Server.Port,
			"store": cfg.Database.Driver,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}
