package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wutims/draftengine/internal/diag"
)

const (
	cacheKeyPrefix = "draftengine:llm:rerank:"
	cacheTTL       = 10 * time.Minute
)

var cacheLogger = diag.New("llm.Cache")

// responseCache stores a completed RerankerResult keyed by a hash of
// the prompt that produced it, so identical draft states within the
// TTL window skip the model call entirely. A nil client makes every
// lookup a miss and every store a no-op.
type responseCache struct {
	client *redis.Client
}

// NewResponseCache wraps a Redis client for reranker response caching.
// Passing a nil client is valid and simply disables caching.
func NewResponseCache(client *redis.Client) *responseCache {
	return &responseCache{client: client}
}

func (c *responseCache) get(prompt string) (RerankerResult, bool) {
	if c == nil || c.client == nil {
		return RerankerResult{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := c.client.Get(ctx, cacheKey(prompt)).Bytes()
	if err != nil {
		if err != redis.Nil {
			cacheLogger.Error("cache get failed: %v", err)
		}
		return RerankerResult{}, false
	}
	var result RerankerResult
	if err := json.Unmarshal(raw, &result); err != nil {
		cacheLogger.Error("cache entry unreadable, treating as miss: %v", err)
		return RerankerResult{}, false
	}
	return result, true
}

func (c *responseCache) set(prompt string, result RerankerResult) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		cacheLogger.Error("cache encode failed: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, cacheKey(prompt), raw, cacheTTL).Err(); err != nil {
		cacheLogger.Error("cache set failed: %v", err)
	}
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
