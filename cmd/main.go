package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library_management/internal/handlers"
	"library_management/internal/logger"
	"library_management/internal/repository"
	"library_management/internal/repository/db"
	"library_management/internal/server"
	"library_management/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}
	log.SetLevel(viper.GetString("log.level"))
	log.Infow("config loaded", "file", viper.ConfigFileUsed(), "log_level", log.Level())

	// JSON documents are the source of truth for books and users
	store, err := repository.OpenFileStore(viper.GetString("data.catalog_path"), viper.GetString("data.users_path"))
	if err != nil {
		log.Fatalw("failed to load library data", "err", err)
	}
	if store.UsersRecovered() {
		log.Warnw("user document missing or unreadable; starting with no users",
			"path", viper.GetString("data.users_path"))
	}

	// open history DB
	historyDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := historyDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(store, historyDB)
	services := service.NewService(repos, serviceOptions(log), log.Named("service"))
	apiHandler := handlers.NewHandler(services, log.Named("http"))

	// start HTTP server
	srv := server.NewServer(server.Options{
		ReadHeaderTimeout: viper.GetDuration("server.read_header_timeout"),
		WriteTimeout:      viper.GetDuration("server.write_timeout"),
		IdleTimeout:       viper.GetDuration("server.idle_timeout"),
	})
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.SetDefault("port", "8080")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("data.catalog_path", "data/data.json")
	viper.SetDefault("data.users_path", "data/users.json")
	viper.SetDefault("db.path", "library.db")
	viper.SetDefault("auth.token_ttl", time.Hour)
	viper.SetDefault("auth.hash_passwords", false)

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// serviceOptions reads the auth section. Without a configured key a random one
// is used, so sessions do not survive a restart.
func serviceOptions(log *logger.Logger) service.Options {
	key := viper.GetString("auth.signing_key")
	if key == "" {
		log.Warnw("auth.signing_key not set; using a random per-process key")
		key = uuid.NewString()
	}
	return service.Options{
		SigningKey:    key,
		TokenTTL:      viper.GetDuration("auth.token_ttl"),
		HashPasswords: viper.GetBool("auth.hash_passwords"),
	}
}

// openDB initializes the SQLite history database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	log.Infow("opening history database", "path", dbPath)
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
