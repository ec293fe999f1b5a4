package model

import (
	"time"

	"gorm.io/gorm"
)

// Session is a persisted admin login session.
type Session struct {
	gorm.Model
	AdminID      uint      `json:"admin_id" gorm:"column:admin_id;index"`
	SessionToken string    `json:"session_token" gorm:"column:session_token;type:varchar(512);index"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"column:expires_at"`
	ClientIP     string    `json:"client_ip" gorm:"column:client_ip;type:varchar(45)"`
	Browser      string    `json:"browser" gorm:"column:browser;type:varchar(512)"`
}
