package judge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
)

// Store is the key/value cache Cached reads through. pkg/cache satisfies it.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type cached struct {
	next   Judge
	store  Store
	logger *slog.Logger
}

// Cached serves repeated prompts from store. Cache failures are logged and
// never fail the judgment; failed judgments are not cached.
func Cached(next Judge, store Store, logger *slog.Logger) Judge {
	return &cached{
		next:   next,
		store:  store,
		logger: logger.With("system", "judge-cache"),
	}
}

func (c *cached) Judge(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(prompt)

	if v, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.WarnContext(ctx, "judgment cache read failed", "error", err)
	} else if ok {
		return v, nil
	}

	v, err := c.next.Judge(ctx, prompt)
	if err != nil {
		return "", err
	}

	if err := c.store.Set(ctx, key, v); err != nil {
		c.logger.WarnContext(ctx, "judgment cache write failed", "error", err)
	}
	return v, nil
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "judge:" + hex.EncodeToString(sum[:])
}
