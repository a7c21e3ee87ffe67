package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%d"
	postKeyPrefix = "post:%d"
	feedFirstPage = "feed:page:1"
)

// TTLs per cached entity.
const (
	UserTTL = 5 * time.Minute
	PostTTL = 30 * time.Minute
	FeedTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// FeedKey returns the cache key for the first feed page. Only page 1 is
// cached; deeper pages always hit the database.
func FeedKey() string {
	return feedFirstPage
}

// Aside implements the cache-aside pattern: on a hit, dest is filled from
// the cached JSON; on a miss, fetch must populate dest and the result is
// stored under key. A nil client degrades to calling fetch directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// A corrupt entry falls through to a fresh fetch.
		client.Del(ctx, key)
	}

	if err := fetch(); err != nil {
		return err
	}

	if encoded, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateFeed(ctx context.Context) {
	Invalidate(ctx, FeedKey())
}
