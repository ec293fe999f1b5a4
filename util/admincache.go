package util

import (
	"container/list"
	"sync"

	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/model"
)

// LRU cache for adminID -> email, used to enrich security events without a
// database round-trip on every request.
type adminEntry struct {
	adminID uint
	email   string
}

type adminLRU struct {
	mu       sync.Mutex
	ll       *list.List
	cache    map[uint]*list.Element
	capacity int
}

var adminCache *adminLRU

// InitAdminEmailCache initializes the LRU cache with given capacity.
// If capacity <= 0, a default of 1000 is used.
func InitAdminEmailCache(capacity int) {
	if capacity <= 0 {
		capacity = 1000
	}
	adminCache = &adminLRU{
		ll:       list.New(),
		cache:    make(map[uint]*list.Element),
		capacity: capacity,
	}
}

// AdminEmailCacheGet returns email and true if present in cache.
func AdminEmailCacheGet(adminID uint) (string, bool) {
	if adminCache == nil {
		return "", false
	}
	adminCache.mu.Lock()
	defer adminCache.mu.Unlock()
	if ele, ok := adminCache.cache[adminID]; ok {
		adminCache.ll.MoveToFront(ele)
		if e, ok := ele.Value.(adminEntry); ok {
			return e.email, true
		}
	}
	return "", false
}

// AdminEmailCacheSet sets the email for an adminID in the cache.
func AdminEmailCacheSet(adminID uint, email string) {
	if adminCache == nil {
		return
	}
	adminCache.mu.Lock()
	defer adminCache.mu.Unlock()
	if ele, ok := adminCache.cache[adminID]; ok {
		adminCache.ll.MoveToFront(ele)
		ele.Value = adminEntry{adminID: adminID, email: email}
		return
	}
	ele := adminCache.ll.PushFront(adminEntry{adminID: adminID, email: email})
	adminCache.cache[adminID] = ele
	if adminCache.ll.Len() > adminCache.capacity {
		oldest := adminCache.ll.Back()
		if oldest != nil {
			adminCache.ll.Remove(oldest)
			if e, ok := oldest.Value.(adminEntry); ok {
				delete(adminCache.cache, e.adminID)
			}
		}
	}
}

// LookupAdminEmail resolves an admin's email through the cache, falling back
// to the database and populating the cache on a miss.
func LookupAdminEmail(db *gorm.DB, adminID uint) string {
	if adminID == 0 {
		return ""
	}
	if email, ok := AdminEmailCacheGet(adminID); ok {
		return email
	}
	if db == nil {
		return ""
	}
	var admin model.Admin
	if err := db.Select("email").First(&admin, adminID).Error; err != nil {
		return ""
	}
	AdminEmailCacheSet(adminID, admin.Email)
	return admin.Email
}
