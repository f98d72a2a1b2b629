package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"mapban/internal/application"
	httpdelivery "mapban/internal/delivery/http"
	"mapban/internal/repository"
	"mapban/pkg/config"
	"mapban/pkg/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		log.Error("failed to init db", "error", err.Error())
		return
	}
	defer db.Close()

	log.Info("Running migrations...")
	if err := repository.RunMigrations(db, migrationFS); err != nil {
		log.Error("failed to run migrations", "error", err.Error())
		return
	}
	log.Info("Migrations applied successfully")

	repos := repository.NewRepository(db)
	services := application.NewService(repos, cfg.BaseURL, log)

	server := httpdelivery.NewServer(services, log)

	go func() {
		if err := server.Run(cfg.Port); err != nil {
			log.Error("server run error", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	if err := server.Stop(context.Background()); err != nil {
		log.Error("server shutdown error", "error", err.Error())
	}
	log.Info("Server stopped")
}
