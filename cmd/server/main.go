// Complaintdesk - conversational complaint intake assistant server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/qdrant/go-client/qdrant"
	openai "github.com/sashabaranov/go-openai"

	"github.com/nkapoor/complaintdesk/internal/api"
	"github.com/nkapoor/complaintdesk/internal/chat"
	"github.com/nkapoor/complaintdesk/internal/complaints"
	"github.com/nkapoor/complaintdesk/internal/config"
	"github.com/nkapoor/complaintdesk/internal/engine"
	"github.com/nkapoor/complaintdesk/internal/middleware"
	"github.com/nkapoor/complaintdesk/internal/rag"
	"github.com/nkapoor/complaintdesk/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	aiCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		aiCfg.BaseURL = cfg.OpenAI.BaseURL
	}
	aiClient := openai.NewClientWithConfig(aiCfg)

	vectorClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		APIKey: cfg.Qdrant.APIKey,
		UseTLS: cfg.Qdrant.UseTLS,
	})
	if err != nil {
		slog.Error("Failed to initialize vector store client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := vectorClient.Close(); closeErr != nil {
			slog.Error("Failed to close vector store client", "error", closeErr)
		}
	}()
	slog.Info("Vector store client initialized", "collection", cfg.Qdrant.Collection)

	// Assemble the dialogue engine with its collaborators.
	retriever := rag.NewRetriever(aiClient, vectorClient, cfg.Qdrant.Collection,
		openai.EmbeddingModel(cfg.OpenAI.EmbeddingModel))
	generator := rag.NewGenerator(aiClient, retriever, cfg.OpenAI.ChatModel,
		float32(cfg.OpenAI.Temperature), cfg.RetrievalLimit)
	gateway := complaints.NewClient(cfg.ComplaintAPIURL)
	dialogue := engine.New(generator, gateway, cfg.HistoryWindow)

	// Initialize handlers.
	sm := chat.NewSessionManager()
	chatHandler := chat.NewHandler(dialogue, sm)
	wsHandler := chat.NewWebSocketHandler(dialogue, sm)
	complaintHandler := api.NewComplaintHandler(repo)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	allowedOrigins := []string{"*"}
	if cfg.FrontendURL != "" {
		allowedOrigins = []string{cfg.FrontendURL}
	}
	r.Use(middleware.CORS(allowedOrigins))

	complaintHandler.RegisterRoutes(r)
	chatHandler.RegisterRoutes(r)
	r.Get("/ws/chat", wsHandler.ServeHTTP)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // chat turns block on model calls; no write deadline
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
