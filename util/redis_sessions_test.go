package util

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/pijatjogja/pijatjogja-api/config"
)

func withMockRedis(t *testing.T) redismock.ClientMock {
	t.Helper()
	client, mock := redismock.NewClientMock()
	config.SetRedisClientForTesting(client)
	t.Cleanup(func() {
		config.SetRedisClientForTesting(nil)
		_ = client.Close()
	})
	return mock
}

func TestCacheSession_SetsKeyWithTTL(t *testing.T) {
	mock := withMockRedis(t)

	mock.ExpectSet("session:token-abc", "42", time.Hour).SetVal("OK")

	assert.NoError(t, CacheSession("token-abc", 42, time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheSession_NilClientIsNoop(t *testing.T) {
	config.SetRedisClientForTesting(nil)
	assert.NoError(t, CacheSession("token-abc", 42, time.Hour))
}

func TestDropSession_DeletesKey(t *testing.T) {
	mock := withMockRedis(t)

	mock.ExpectDel("session:token-abc").SetVal(1)

	assert.NoError(t, DropSession("token-abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSessionToAdminSet_AddsAndPersists(t *testing.T) {
	mock := withMockRedis(t)

	mock.ExpectSAdd("admin_sessions:42", "token-abc").SetVal(1)
	mock.ExpectPersist("admin_sessions:42").SetVal(true)

	assert.NoError(t, AddSessionToAdminSet(42, "token-abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateAdminSessions_DeletesAllTokens(t *testing.T) {
	mock := withMockRedis(t)

	mock.ExpectSMembers("admin_sessions:42").SetVal([]string{"token-one", "token-two"})
	mock.ExpectDel("session:token-one").SetVal(1)
	mock.ExpectDel("session:token-two").SetVal(1)
	mock.ExpectDel("admin_sessions:42").SetVal(1)

	assert.NoError(t, InvalidateAdminSessions(42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionKeys(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("abc"))
	assert.Equal(t, "admin_sessions:7", adminSessionsKey(7))
}
