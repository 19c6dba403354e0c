// Complaintdesk - knowledge base ingestion CLI
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/qdrant/go-client/qdrant"
	openai "github.com/sashabaranov/go-openai"

	"github.com/nkapoor/complaintdesk/internal/config"
	"github.com/nkapoor/complaintdesk/internal/ingest"
)

func main() {
	var (
		file      = flag.String("file", "", "path to the knowledge base document (PDF or plain text)")
		chunkSize = flag.Int("chunk-size", 1000, "target chunk size in characters")
		overlap   = flag.Int("overlap", 200, "chunk overlap in characters")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *file == "" {
		slog.Error("Missing required -file flag")
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

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

	pipeline := ingest.NewPipeline(
		aiClient,
		vectorClient,
		ingest.NewChunker(*chunkSize, *overlap),
		cfg.Qdrant.Collection,
		openai.EmbeddingModel(cfg.OpenAI.EmbeddingModel),
	)

	count, err := pipeline.Run(context.Background(), *file)
	if err != nil {
		slog.Error("Ingestion failed", "file", *file, "error", err)
		os.Exit(1)
	}

	slog.Info("Ingestion complete", "file", *file, "collection", cfg.Qdrant.Collection, "chunks", count)
}
