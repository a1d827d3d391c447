package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls  int
	vector []float32
	err    error
}

func (p *countingProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.vector, nil
}

func vectorLength(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestNormalizeVector(t *testing.T) {
	normalized := NormalizeVector([]float32{3, 4})

	assert.InDelta(t, 1.0, vectorLength(normalized), 1e-6)
	assert.InDelta(t, 0.6, float64(normalized[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(normalized[1]), 1e-6)
}

func TestNormalizeVector_ZeroVector(t *testing.T) {
	vec := []float32{0, 0, 0}
	assert.Equal(t, vec, NormalizeVector(vec))
}

func TestOllamaProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "all-minilm", req["model"])
		assert.Equal(t, "Vendor shall deliver.", req["prompt"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{3, 4},
		})
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "all-minilm", 0)
	vec, err := p.Generate(context.Background(), "Vendor shall deliver.")

	require.NoError(t, err)
	require.Len(t, vec, 2)
	assert.InDelta(t, 1.0, vectorLength(vec), 1e-6)
}

func TestOllamaProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "all-minilm", 0)
	_, err := p.Generate(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestCachedProvider_MemoizesByText(t *testing.T) {
	inner := &countingProvider{vector: []float32{1, 0}}
	p := NewCachedProvider(inner)
	ctx := context.Background()

	first, err := p.Generate(ctx, "Vendor shall deliver.")
	require.NoError(t, err)

	second, err := p.Generate(ctx, "Vendor shall deliver.")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)

	_, err = p.Generate(ctx, "A different clause entirely.")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("unreachable")}
	p := NewCachedProvider(inner)
	ctx := context.Background()

	_, err := p.Generate(ctx, "Vendor shall deliver.")
	require.Error(t, err)

	inner.err = nil
	inner.vector = []float32{1, 0}

	vec, err := p.Generate(ctx, "Vendor shall deliver.")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
	assert.Equal(t, 2, inner.calls)
}

func TestEmbedTexts(t *testing.T) {
	inner := &countingProvider{vector: []float32{1, 0}}

	vectors, err := EmbedTexts(context.Background(), inner, []string{"one", "two"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, 2, inner.calls)
}

func TestEmbedTexts_EmptyInput(t *testing.T) {
	inner := &countingProvider{vector: []float32{1, 0}}

	vectors, err := EmbedTexts(context.Background(), inner, nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Equal(t, 0, inner.calls)
}

func TestEmbedTexts_FailureAbortsBatch(t *testing.T) {
	inner := &countingProvider{err: errors.New("unreachable")}

	vectors, err := EmbedTexts(context.Background(), inner, []string{"one", "two"})
	require.Error(t, err)
	assert.Nil(t, vectors)
	assert.Equal(t, 1, inner.calls)
}
