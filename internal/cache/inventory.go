package cache

import (
	"context"
	"fmt"
	"time"
)

// Key inventory. Every cache key used by the application is minted here so
// invalidation stays in one place.

const (
	// PostTTL covers single post detail payloads.
	PostTTL = 5 * time.Minute
	// CandidateTTL covers pre-filter feed candidate sets. Short because
	// engagement counters churn.
	CandidateTTL = 30 * time.Second
	// UserTTL covers author profile lookups used during enrichment.
	UserTTL = 10 * time.Minute
)

// PostKey returns the cache key for a single post.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// UserKey returns the cache key for a user profile.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CandidateKey returns the cache key for a global feed candidate set.
// orderBy is "latest", "most-liked", or "unordered". Scoped candidate sets
// (author or favorites) are not cached.
func CandidateKey(orderBy string) string {
	if orderBy == "" {
		orderBy = "unordered"
	}
	return fmt.Sprintf("feed:candidates:%s", orderBy)
}

// InvalidatePost drops the cached detail for a post along with all global
// candidate sets, since counters or content changed.
func InvalidatePost(ctx context.Context, id uint) {
	Invalidate(ctx, PostKey(id))
	InvalidateCandidates(ctx)
}

// InvalidateCandidates drops every global candidate set.
func InvalidateCandidates(ctx context.Context) {
	Invalidate(ctx,
		CandidateKey("latest"),
		CandidateKey("most-liked"),
		CandidateKey("unordered"),
	)
}

// InvalidateUser drops the cached profile for a user.
func InvalidateUser(ctx context.Context, id uint) {
	Invalidate(ctx, UserKey(id))
}
