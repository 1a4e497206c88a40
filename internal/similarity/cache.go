package similarity

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"resume-screener/internal/shared/cache"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/telemetry"
	"resume-screener/internal/shared/util"
)

const cacheKeyPrefix = "screener:emb:"

// kv is the consumer interface for the embedding cache.
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CachedEmbedder caches embeddings in a key-value store. Cache failures
// degrade to calling the inner embedder.
type CachedEmbedder struct {
	inner Embedder
	store kv
	model string
}

// NewCachedEmbedder decorates inner with a cache keyed by model and text.
func NewCachedEmbedder(inner Embedder, store kv, model string) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, store: store, model: model}
}

// Embed implements Embedder.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKeyPrefix + util.HashKey(c.model, text)

	if vec, ok := c.get(ctx, key); ok {
		metrics.EmbeddingCacheTotal.WithLabelValues("hit").Inc()
		return vec, nil
	}
	metrics.EmbeddingCacheTotal.WithLabelValues("miss").Inc()

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(ctx, key, vectorToBytes(vec)); err != nil {
		telemetry.Warn("embedding.cache.set_failed", map[string]any{"key": key, "err": err})
	}
	return vec, nil
}

func (c *CachedEmbedder) get(ctx context.Context, key string) ([]float32, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			telemetry.Warn("embedding.cache.get_failed", map[string]any{"key": key, "err": err})
		}
		return nil, false
	}
	vec, err := bytesToVector(data)
	if err != nil || len(vec) == 0 {
		return nil, false
	}
	return vec, true
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding cache data: len=%d", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
