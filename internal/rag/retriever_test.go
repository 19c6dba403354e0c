package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/qdrant/go-client/qdrant"
	openai "github.com/sashabaranov/go-openai"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) CreateEmbeddings(_ context.Context, _ openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	if f.err != nil {
		return openai.EmbeddingResponse{}, f.err
	}
	return openai.EmbeddingResponse{
		Data: []openai.Embedding{{Embedding: f.vector}},
	}, nil
}

type fakeQuerier struct {
	points  []*qdrant.ScoredPoint
	err     error
	lastReq *qdrant.QueryPoints
}

func (f *fakeQuerier) Query(_ context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	f.lastReq = req
	return f.points, f.err
}

func scoredPoint(text string) *qdrant.ScoredPoint {
	return &qdrant.ScoredPoint{
		Payload: qdrant.NewValueMap(map[string]any{"text": text}),
	}
}

func TestSearchReturnsPayloadTexts(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{points: []*qdrant.ScoredPoint{
		scoredPoint("refund policy"),
		scoredPoint("escalation policy"),
	}}
	r := NewRetriever(&fakeEmbedder{vector: []float32{0.1, 0.2}}, q, "kb", openai.SmallEmbedding3)

	got := r.Search(context.Background(), "refunds", 3)

	if len(got) != 2 || got[0] != "refund policy" || got[1] != "escalation policy" {
		t.Fatalf("unexpected passages: %v", got)
	}
	if q.lastReq.CollectionName != "kb" {
		t.Fatalf("collection = %q", q.lastReq.CollectionName)
	}
	if q.lastReq.Limit == nil || *q.lastReq.Limit != 3 {
		t.Fatalf("limit = %v", q.lastReq.Limit)
	}
}

func TestSearchEmbeddingFailureYieldsEmpty(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	r := NewRetriever(&fakeEmbedder{err: errors.New("boom")}, q, "kb", openai.SmallEmbedding3)

	if got := r.Search(context.Background(), "anything", 3); got != nil {
		t.Fatalf("expected empty result, got %v", got)
	}
	if q.lastReq != nil {
		t.Fatal("vector query must be skipped when embedding fails")
	}
}

func TestSearchQueryFailureYieldsEmpty(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{err: errors.New("unreachable")}
	r := NewRetriever(&fakeEmbedder{vector: []float32{0.5}}, q, "kb", openai.SmallEmbedding3)

	if got := r.Search(context.Background(), "anything", 3); got != nil {
		t.Fatalf("retrieval failure must not surface, got %v", got)
	}
}

func TestSearchDefaultsLimit(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{}
	r := NewRetriever(&fakeEmbedder{vector: []float32{0.5}}, q, "kb", openai.SmallEmbedding3)

	r.Search(context.Background(), "anything", 0)

	if q.lastReq.Limit == nil || *q.lastReq.Limit != 3 {
		t.Fatalf("limit = %v, want default 3", q.lastReq.Limit)
	}
}
