package embedding

import "context"

// EmbeddingProvider maps text to a unit-normalized vector. Deterministic for
// a fixed model: the same text always embeds to the same vector.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// EmbedTexts embeds a batch sequentially. An empty input yields an empty
// output, not an error; any failure aborts the batch so the caller can take
// its degraded path.
func EmbedTexts(ctx context.Context, p EmbeddingProvider, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := p.Generate(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}
