// Package rag provides retrieval-augmented response generation: semantic
// search over the knowledge base plus language-model answer composition.
package rag

import (
	"context"
	"log/slog"

	"github.com/qdrant/go-client/qdrant"
	openai "github.com/sashabaranov/go-openai"
)

// payloadTextKey is the payload field the ingestion pipeline stores the
// chunk text under.
const payloadTextKey = "text"

// Embedder creates embedding vectors. *openai.Client satisfies it.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// PointQuerier runs nearest-neighbor queries. *qdrant.Client satisfies it.
type PointQuerier interface {
	Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
}

// Retriever searches the vector knowledge base. Retrieval is best-effort
// context for generation, never a hard dependency: every failure path
// yields an empty result instead of an error.
type Retriever struct {
	embedder   Embedder
	points     PointQuerier
	collection string
	model      openai.EmbeddingModel
}

// NewRetriever creates a retriever over the given collection. The
// embedding model must match the one used at ingestion time.
func NewRetriever(embedder Embedder, points PointQuerier, collection string, model openai.EmbeddingModel) *Retriever {
	return &Retriever{
		embedder:   embedder,
		points:     points,
		collection: collection,
		model:      model,
	}
}

// Search returns the text payloads of the top limit passages most similar
// to the query, ordered by decreasing similarity.
func (r *Retriever) Search(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		limit = 3
	}

	resp, err := r.embedder.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{query},
		Model: r.model,
	})
	if err != nil || len(resp.Data) == 0 {
		slog.Warn("knowledge base embedding failed", "error", err)
		return nil
	}

	points, err := r.points.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collection,
		Query:          qdrant.NewQueryDense(resp.Data[0].Embedding),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		slog.Warn("knowledge base search failed", "error", err)
		return nil
	}

	var texts []string
	for _, p := range points {
		if v, ok := p.Payload[payloadTextKey]; ok {
			if text := v.GetStringValue(); text != "" {
				texts = append(texts, text)
			}
		}
	}
	return texts
}
