package util

import (
	"context"
	"fmt"
	"time"

	"github.com/pijatjogja/pijatjogja-api/config"
)

// CacheSession stores the session token to admin-id mapping in Redis with the
// session's remaining lifetime as TTL. Best-effort: a nil client is a no-op.
func CacheSession(token string, adminID uint, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	return rdb.Set(ctx, sessionKey(token), fmt.Sprintf("%d", adminID), ttl).Err()
}

// DropSession removes the cached session token.
func DropSession(token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Del(context.Background(), sessionKey(token)).Err()
}

// AddSessionToAdminSet adds the session token to the per-admin Redis set so
// all of an admin's sessions can be invalidated together.
func AddSessionToAdminSet(adminID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	setKey := adminSessionsKey(adminID)
	if err := rdb.SAdd(ctx, setKey, token).Err(); err != nil {
		return err
	}
	// The set has no TTL and relies on explicit cleanup.
	return rdb.Persist(ctx, setKey).Err()
}

// RemoveSessionTokenFromAdminSet removes a single session token from the
// per-admin set. If the set becomes empty after removal, it is deleted.
func RemoveSessionTokenFromAdminSet(adminID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	setKey := adminSessionsKey(adminID)
	// Atomically remove the token and delete the set if it became empty
	script := `
		local removed = redis.call('SREM', KEYS[1], ARGV[1])
		if removed > 0 then
			local count = redis.call('SCARD', KEYS[1])
			if count == 0 then
				redis.call('DEL', KEYS[1])
			end
		end
		return removed
	`
	return rdb.Eval(ctx, script, []string{setKey}, token).Err()
}

// InvalidateAdminSessions deletes all session:<token> keys for the given admin
// and removes the per-admin set. Best-effort: callers may ignore the error.
func InvalidateAdminSessions(adminID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	ctx := context.Background()
	setKey := adminSessionsKey(adminID)

	tokens, err := rdb.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if err := rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
			return err
		}
	}
	return rdb.Del(ctx, setKey).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func adminSessionsKey(adminID uint) string {
	return fmt.Sprintf("admin_sessions:%d", adminID)
}
