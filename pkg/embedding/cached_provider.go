package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedProvider memoizes embeddings by content hash. Providers are
// deterministic for a fixed model, so a hit is always safe to reuse.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *cache.Cache
}

func NewCachedProvider(inner EmbeddingProvider) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache.New(1*time.Hour, 10*time.Minute),
	}
}

func (p *CachedProvider) Generate(ctx context.Context, text string) ([]float32, error) {
	key := hashText(text)
	if x, found := p.cache.Get(key); found {
		return x.([]float32), nil
	}

	vec, err := p.inner.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, vec, cache.DefaultExpiration)
	return vec, nil
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
