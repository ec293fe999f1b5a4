package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/config"
	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

const (
	dbContextKey      = "db"
	adminIDContextKey = "admin_id"
)

// DatabaseMiddleware injects the shared gorm DB handle into the request context.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the gorm DB stored in the request context, or nil.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbContextKey)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// GetAdminID returns the authenticated admin's ID from the request context.
func GetAdminID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(adminIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// AdminAuth validates the session-token header and aborts with 401 unless the
// token belongs to a live session of an active admin. The session is resolved
// from Redis first and falls back to the database, so the middleware works
// when Redis is unavailable.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("session-token")
		if token == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session token not provided",
				Err: fmt.Errorf("session token not provided"),
			})
			c.Abort()
			return
		}

		if adminID, ok := adminIDFromRedis(token); ok {
			c.Set(adminIDContextKey, adminID)
			c.Next()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		adminID, err := adminIDFromSession(db, token)
		if err != nil {
			util.LogSecurityEvent(util.SecurityEvent{
				EventType: util.EventUnauthorizedAccess,
				IP:        c.ClientIP(),
				UserAgent: c.Request.UserAgent(),
				Message:   fmt.Sprintf("Rejected session token on %s", c.Request.URL.Path),
			})
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Invalid or expired session token",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Set(adminIDContextKey, adminID)
		c.Next()
	}
}

func adminIDFromRedis(token string) (uint, bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return 0, false
	}
	val, err := rdb.Get(context.Background(), fmt.Sprintf("session:%s", token)).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func adminIDFromSession(db *gorm.DB, token string) (uint, error) {
	var session model.Session
	err := db.Where("session_token = ? AND expires_at > ?", token, time.Now()).First(&session).Error
	if err != nil {
		return 0, fmt.Errorf("session not found: %w", err)
	}

	var admin model.Admin
	if err := db.First(&admin, session.AdminID).Error; err != nil {
		return 0, fmt.Errorf("admin not found: %w", err)
	}
	if !admin.IsActive {
		return 0, fmt.Errorf("admin account is inactive")
	}

	return admin.ID, nil
}
