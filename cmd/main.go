// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"shirupic/internal/ai"
	"shirupic/internal/config"
	"shirupic/internal/handlers"
	"shirupic/internal/middleware"
	"shirupic/internal/repository"
	"shirupic/internal/service"
	"shirupic/internal/storage"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	// 2. Initialize Database Connection (GORM)
	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Object Store (S3)
	objStore, err := storage.NewS3ObjectStore(cfg)
	if err != nil {
		slog.Error("Error initializing object store", slog.Any("error", err))
		os.Exit(1)
	}

	// 3. Dependency Injection
	wordRepo := repository.NewGormWordRepository()
	histRepo := repository.NewGormHistoryRepository()
	dwRepo := repository.NewGormDetectedWordRepository()

	aiClient := ai.NewOpenAIClient(cfg)
	verifier := service.NewGoogleIDTokenVerifier(cfg)

	authService := service.NewAuthService(verifier, cfg)
	wordService := service.NewWordService(db, wordRepo)
	historyService := service.NewHistoryService(db, histRepo, dwRepo, objStore)

	authHandler := handlers.NewAuthHandler(authService, logger)
	wordHandler := handlers.NewWordHandler(wordService, logger)
	historyHandler := handlers.NewHistoryHandler(historyService, logger)
	imageHandler := handlers.NewImageHandler(aiClient, historyService, logger)
	ttsHandler := handlers.NewTTSHandler(aiClient, logger)

	// 4. Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api", func(r chi.Router) {
		// --- Public routes ---
		r.Post("/auth/google", authHandler.GoogleLogin)
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"success","message":"ShiruPic APIが動作しています"}`))
		})

		// --- Protected routes (require Bearer token) ---
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuthMiddleware(cfg))

			r.Get("/auth/verify", authHandler.VerifyToken)

			// Wordbook routes
			r.Route("/wordbook", func(r chi.Router) {
				r.Get("/", wordHandler.GetWords)
				r.Post("/add", wordHandler.AddWord)
				r.Put("/{word_id}", wordHandler.UpdateWord)
				r.Delete("/{word_id}", wordHandler.DeleteWord)
			})

			// Image analysis
			r.Post("/image/analyze", imageHandler.AnalyzeImage)

			// Text to speech
			r.Post("/tts/speak", ttsHandler.Speak)

			// History routes
			r.Route("/history", func(r chi.Router) {
				r.Get("/", historyHandler.GetHistories)
				r.Get("/{history_id}", historyHandler.GetHistory)
				r.Delete("/{history_id}", historyHandler.DeleteHistory)
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sqlDB, err := db.DB()
		if err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"ShiruPic APIサーバーが起動しました"}`))
	})

	// 5. Start Server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
