package util

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/model"
)

func TestAdminEmailCache_SetAndGet(t *testing.T) {
	InitAdminEmailCache(10)

	AdminEmailCacheSet(1, "admin@pijatjogja.id")

	email, ok := AdminEmailCacheGet(1)
	assert.True(t, ok)
	assert.Equal(t, "admin@pijatjogja.id", email)

	_, ok = AdminEmailCacheGet(2)
	assert.False(t, ok)
}

func TestAdminEmailCache_UpdateExisting(t *testing.T) {
	InitAdminEmailCache(10)

	AdminEmailCacheSet(1, "old@pijatjogja.id")
	AdminEmailCacheSet(1, "new@pijatjogja.id")

	email, ok := AdminEmailCacheGet(1)
	assert.True(t, ok)
	assert.Equal(t, "new@pijatjogja.id", email)
}

func TestAdminEmailCache_EvictsLeastRecentlyUsed(t *testing.T) {
	InitAdminEmailCache(2)

	AdminEmailCacheSet(1, "one@pijatjogja.id")
	AdminEmailCacheSet(2, "two@pijatjogja.id")

	// Touch 1 so 2 becomes the eviction candidate
	_, _ = AdminEmailCacheGet(1)

	AdminEmailCacheSet(3, "three@pijatjogja.id")

	_, ok := AdminEmailCacheGet(2)
	assert.False(t, ok)

	email, ok := AdminEmailCacheGet(1)
	assert.True(t, ok)
	assert.Equal(t, "one@pijatjogja.id", email)
}

func TestAdminEmailCache_UninitializedIsNoop(t *testing.T) {
	adminCache = nil

	AdminEmailCacheSet(1, "ignored@pijatjogja.id")
	_, ok := AdminEmailCacheGet(1)
	assert.False(t, ok)
}

func TestLookupAdminEmail_DBFallback(t *testing.T) {
	InitAdminEmailCache(10)

	dsn := fmt.Sprintf("file:admincache_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&model.Admin{}))

	admin := model.Admin{Name: "Admin", Email: "db@pijatjogja.id", Password: "hash"}
	assert.NoError(t, db.Create(&admin).Error)

	email := LookupAdminEmail(db, admin.ID)
	assert.Equal(t, "db@pijatjogja.id", email)

	// The miss populated the cache
	cached, ok := AdminEmailCacheGet(admin.ID)
	assert.True(t, ok)
	assert.Equal(t, "db@pijatjogja.id", cached)

	assert.Equal(t, "", LookupAdminEmail(db, 9999))
	assert.Equal(t, "", LookupAdminEmail(db, 0))
}
