package llm

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// ResponseCache stores model replies by key. Implementations treat every
// failure as a miss.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// CachedClient wraps a Client and memoizes successful replies. Errors are
// never cached.
type CachedClient struct {
	inner Client
	cache ResponseCache
}

// NewCachedClient wraps client with cache. A nil cache returns client unchanged.
func NewCachedClient(client Client, cache ResponseCache) Client {
	if cache == nil || client == nil {
		return client
	}
	return &CachedClient{inner: client, cache: cache}
}

// CacheKey derives the cache key for a model and prompt.
func CacheKey(kind, model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return fmt.Sprintf("llm:%s:%x", kind, sum[:16])
}

// GenerateContent implements Client.
func (c *CachedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cached(ctx, "text", prompt, tier, c.inner.GenerateContent)
}

// GenerateJSON implements Client.
func (c *CachedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.cached(ctx, "json", prompt, tier, c.inner.GenerateJSON)
}

func (c *CachedClient) cached(ctx context.Context, kind, prompt string, tier ModelTier,
	generate func(context.Context, string, ModelTier) (string, error)) (string, error) {
	key := CacheKey(kind, c.inner.GetModel(tier), prompt)
	if data, ok := c.cache.Get(ctx, key); ok {
		return string(data), nil
	}

	reply, err := generate(ctx, prompt, tier)
	if err != nil {
		return "", err
	}
	c.cache.Set(ctx, key, []byte(reply))
	return reply, nil
}

// GetModel implements Client.
func (c *CachedClient) GetModel(tier ModelTier) string {
	return c.inner.GetModel(tier)
}

// Close implements Client.
func (c *CachedClient) Close() error {
	return c.inner.Close()
}
