package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	openai "github.com/sashabaranov/go-openai"
)

// Collections is the subset of the vector store client the pipeline
// needs. *qdrant.Client satisfies it.
type Collections interface {
	DeleteCollection(ctx context.Context, collection string) error
	CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error
	Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
}

// Embedder creates embedding vectors. *openai.Client satisfies it.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Pipeline ingests a document into the vector knowledge base.
type Pipeline struct {
	embedder   Embedder
	vectors    Collections
	chunker    *Chunker
	collection string
	model      openai.EmbeddingModel
}

// NewPipeline creates an ingestion pipeline for the given collection.
func NewPipeline(embedder Embedder, vectors Collections, chunker *Chunker, collection string, model openai.EmbeddingModel) *Pipeline {
	return &Pipeline{
		embedder:   embedder,
		vectors:    vectors,
		chunker:    chunker,
		collection: collection,
		model:      model,
	}
}

// Run rebuilds the collection from the document at path: extract text,
// chunk, embed every chunk, recreate the collection, and upsert all
// points. Returns the number of chunks ingested.
func (p *Pipeline) Run(ctx context.Context, path string) (int, error) {
	text, err := ExtractText(path)
	if err != nil {
		return 0, fmt.Errorf("extract document text: %w", err)
	}

	chunks := p.chunker.Split(text)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document produced no chunks: %s", path)
	}
	slog.Info("document chunked", "path", path, "chunks", len(chunks))

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	dimension := 0
	for i, chunk := range chunks {
		resp, err := p.embedder.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{chunk},
			Model: p.model,
		})
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		if len(resp.Data) == 0 {
			return 0, fmt.Errorf("embed chunk %d: empty embedding response", i)
		}
		vector := resp.Data[0].Embedding
		if dimension == 0 {
			dimension = len(vector)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.NewString()),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(map[string]any{"text": chunk}),
		})
	}
	slog.Info("embeddings created", "points", len(points), "dimension", dimension)

	// Recreate the collection so re-ingestion replaces stale passages.
	if err := p.vectors.DeleteCollection(ctx, p.collection); err != nil {
		slog.Warn("delete collection failed, continuing", "collection", p.collection, "error", err)
	}
	if err := p.vectors.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: p.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	}); err != nil {
		return 0, fmt.Errorf("create collection: %w", err)
	}

	if _, err := p.vectors.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: p.collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	}); err != nil {
		return 0, fmt.Errorf("upsert points: %w", err)
	}

	return len(points), nil
}
