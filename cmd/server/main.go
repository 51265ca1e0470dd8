// The server command runs the reference auth backend used for local
// development and end-to-end testing of the client: it serves the
// registration and login endpoints over plain HTTP with PostgreSQL
// persistence.
package main

import (
	"flag"
	"os"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/identityhub/idhub/internal/db"
	"github.com/identityhub/idhub/internal/logger"
	"github.com/identityhub/idhub/internal/repository"
	"github.com/identityhub/idhub/internal/server/handler/http"
	"github.com/identityhub/idhub/internal/service"
)

func main() {
	var (
		addr string
		dsn  string
	)
	flag.StringVar(&addr, "a", "localhost:8080", "listen address (ip:port)")
	flag.StringVar(&dsn, "d", "", "postgres connection string")
	flag.Parse()

	// Environment variables override flags.
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		addr = serverAddress
	}
	if databaseDSN := os.Getenv("DATABASE_DSN"); databaseDSN != "" {
		dsn = databaseDSN
	}

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init("info"); err != nil {
		panic(err)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(dsn)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Wire repository, service and handlers.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	authService := service.NewAuthService(authRepo)
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}

	router := http.NewRouter(authHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
