package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/playroot/daily-arcade-go/internal/api"
	"github.com/playroot/daily-arcade-go/internal/logger"
	"github.com/playroot/daily-arcade-go/internal/store"
)

type serverConfig struct {
	Addr     string `env:"ARCADE_ADDR" envDefault:":8080"`
	DBPath   string `env:"ARCADE_DB_PATH" envDefault:"arcade.db"`
	LogLevel string `env:"ARCADE_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"ARCADE_LOG_JSON" envDefault:"false"`
}

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal("parse environment", "error", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.Get()

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", "path", cfg.DBPath, "error", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("run migrations", "error", err)
	}

	srv := api.NewServer(db, log)
	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Routes(),
	}

	go func() {
		log.Info("server started", "addr", cfg.Addr, "version", api.Version)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", "error", err)
	}

	log.Info("server exited")
}
