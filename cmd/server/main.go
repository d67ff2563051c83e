// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/rmsantos/fivestack/internal/catalog"
	"github.com/rmsantos/fivestack/internal/config"
	"github.com/rmsantos/fivestack/internal/database"
	"github.com/rmsantos/fivestack/internal/handlers"
	"github.com/rmsantos/fivestack/internal/middleware"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	ctx := context.Background()

	pool, err := database.Connect(ctx)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := database.InitSchema(ctx, pool); err != nil {
		logger.Fatalf("init schema: %v", err)
	}
	store := database.NewPostgresStore(pool)

	rdb, err := catalog.ConnectRedis(ctx)
	if err != nil {
		// the catalog degrades to its in-process cache without redis
		logger.WithError(err).Warn("redis unavailable, agent catalog will cache in memory")
	}
	agents := catalog.NewService(config.GetEnv("AGENT_API_URL", ""), rdb)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.HandleFunc("/lobbies", handlers.LobbiesHandler(logger, store))
	mux.HandleFunc("/players", handlers.PlayersHandler(logger, store))
	mux.HandleFunc("/agents", catalog.Handler(logger, agents))

	handler := middleware.CORS(middleware.Log(logger)(mux))

	addr := config.ListenAddr()
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", addr)
		errc <- server.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		logger.Errorf("server exited: %v", err)
	case sig := <-sigs:
		logger.Infof("terminating: %v", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}
