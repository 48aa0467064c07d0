package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/logger"
	"jobboard/internal/metrics"
	job_postgres "jobboard/internal/repository/job/postgres"
	user_postgres "jobboard/internal/repository/user/postgres"
	"jobboard/internal/router"
	"jobboard/internal/services"
	"jobboard/internal/session"
)

func main() {
	// A .env file is optional outside local development.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jobRepo := job_postgres.NewJobRepository(db, log)
	userRepo := user_postgres.NewUserRepository(db, log)

	if cfg.App.Seed {
		if err := database.Seed(context.Background(), userRepo, jobRepo, log); err != nil {
			log.Error("Failed to seed database", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessionStore session.Store
	switch cfg.Session.Store {
	case "redis":
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port))
		redisStore, err := session.NewRedisStore(cfg.Redis, sessionTTL)
		if err != nil {
			log.Error("Failed to create Redis session store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()
		sessionStore = redisStore
	default:
		sessionStore = session.NewMemoryStore(sessionTTL)
	}

	provider := metrics.NewProvider()
	provider.SetServiceHealth(true)

	engine := router.New(router.Deps{
		Config:      cfg,
		Log:         log,
		JobService:  services.NewJobService(jobRepo, log),
		AuthService: services.NewAuthService(userRepo, log),
		Sessions:    session.NewManager(sessionStore, cfg.Session.CookieName, sessionTTL, log),
		Metrics:     provider,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTPServer.Address, cfg.HTTPServer.Port),
		Handler: engine,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	go func() {
		log.Info("Server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	<-quit
	log.Info("Shutting down server...")

	provider.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	log.Info("Server exited")
}
