package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of
// propagating failures
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging instead of propagating failures
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidatePaperCache drops the per-paper entries plus every listing that
// may contain the paper
func InvalidatePaperCache(ctx context.Context, cm *CacheManager, paperID uint) {
	SafeDelete(ctx, cm.Paper, fmt.Sprintf("id:%d", paperID))
	SafeInvalidatePattern(ctx, cm.Paper, "list:*")
	SafeInvalidatePattern(ctx, cm.Paper, "subjects:*")
	SafeInvalidatePattern(ctx, cm.Stats, "papers:*")
}

// InvalidateMaterialCache drops the per-material entries plus listings
func InvalidateMaterialCache(ctx context.Context, cm *CacheManager, materialID uint) {
	SafeDelete(ctx, cm.Material, fmt.Sprintf("id:%d", materialID))
	SafeInvalidatePattern(ctx, cm.Material, "list:*")
	SafeInvalidatePattern(ctx, cm.Material, "subjects:*")
	SafeInvalidatePattern(ctx, cm.Stats, "materials:*")
}

// InvalidateProfileCache drops one user's cached profile
func InvalidateProfileCache(ctx context.Context, cm *CacheManager, userID string) {
	SafeDelete(ctx, cm.Profile, fmt.Sprintf("id:%s", userID))
}
