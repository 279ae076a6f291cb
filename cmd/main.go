package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/matchday-predictor/config"
	"github.com/Dosada05/matchday-predictor/db"
	"github.com/Dosada05/matchday-predictor/handlers"
	"github.com/Dosada05/matchday-predictor/repositories"
	api "github.com/Dosada05/matchday-predictor/routes"
	"github.com/Dosada05/matchday-predictor/scraper"
	"github.com/Dosada05/matchday-predictor/services"
	"github.com/Dosada05/matchday-predictor/storage"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := config.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("log_level", cfg.LogLevel.String()))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Статическая конфигурация турнира и лиг
	tournamentCfg, err := config.LoadTournament(cfg.TournamentConfigPath)
	if err != nil {
		logger.Error("failed to load tournament configuration", slog.String("path", cfg.TournamentConfigPath), slog.Any("error", err))
		os.Exit(1)
	}
	leagues, err := config.LoadLeagues(cfg.LeaguesConfigPath)
	if err != nil {
		logger.Error("failed to load leagues configuration", slog.String("path", cfg.LeaguesConfigPath), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("static configuration loaded",
		slog.Int("groups", len(tournamentCfg.GroupStage.Groups)),
		slog.Int("leagues", len(leagues)))

	// Хранилище снапшотов (Cloudflare R2 или память)
	var blobs storage.BlobStore
	if cfg.R2Enabled() {
		blobs, err = storage.NewCloudflareR2Store(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 store", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 store initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		blobs = storage.NewMemoryStore("")
		logger.Warn("R2 credentials not set, snapshots are kept in memory")
	}

	// Индекс имён снапшотов
	var refs repositories.SnapshotRefRepository
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			logger.Error("failed to connect to database", slog.String("driver", cfg.DatabaseDriver), slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		}()
		if err := db.Migrate(ctx, dbConn, cfg.DatabaseDriver); err != nil {
			logger.Error("failed to migrate database", slog.Any("error", err))
			os.Exit(1)
		}
		if cfg.DatabaseDriver == db.DriverSQLite {
			refs = repositories.NewSQLiteSnapshotRefRepository(dbConn)
		} else {
			refs = repositories.NewPostgresSnapshotRefRepository(dbConn)
		}
		logger.Info("database connection established", slog.String("driver", cfg.DatabaseDriver))
	} else {
		refs = repositories.NewMemorySnapshotRefRepository()
		logger.Warn("DATABASE_URL not set, snapshot names are kept in memory")
	}

	// Инициализация сервисов
	snapshotService := services.NewSnapshotService(blobs, refs, logger)
	tournamentService := services.NewTournamentService(tournamentCfg, snapshotService, logger)
	fetcher := scraper.NewFetcher(nil, logger)
	leagueService := services.NewLeagueService(leagues, fetcher, snapshotService, cfg.ScheduleMaxAge, logger)
	logger.Info("Services initialized")

	// Планировщик обновления расписаний лиг
	go func() {
		ticker := time.NewTicker(cfg.ScheduleRefreshInterval)
		defer ticker.Stop()
		logger.Info("Schedule refresh scheduler started", slog.Duration("interval", cfg.ScheduleRefreshInterval))

		if err := leagueService.RefreshAll(ctx); err != nil {
			logger.Error("Scheduler: initial run failed", slog.Any("error", err))
		}

		for {
			select {
			case <-ctx.Done():
				logger.Info("Scheduler stopped")
				return
			case <-ticker.C:
				logger.Info("Scheduler: refreshing league schedules")
				if err := leagueService.RefreshAll(ctx); err != nil {
					logger.Error("Scheduler: periodic run failed", slog.Any("error", err))
				}
			}
		}
	}()

	// Инициализация обработчиков HTTP
	fifaHandler := handlers.NewFifaHandler(tournamentService, snapshotService)
	leagueHandler := handlers.NewLeagueHandler(leagueService)

	router := chi.NewRouter()
	api.SetupRoutes(router, logger, cfg.AllowedOrigins, fifaHandler, leagueHandler)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
		// Запросы к /api могут ждать скрейпинга до минуты
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		stop()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
