package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Admin is a back-office operator account.
type Admin struct {
	gorm.Model
	Name           string `json:"name" gorm:"column:name"`
	Email          string `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex"`
	Password       string `json:"-" gorm:"column:password"`
	PasswordSalt   string `json:"-" gorm:"column:password_salt"`
	IsActive       bool   `json:"is_active" gorm:"column:is_active;default:true"`
	FailedAttempts int    `json:"-" gorm:"column:failed_attempts;default:0"`
	LockedUntil    *int64 `json:"-" gorm:"column:locked_until"`
}

// SeedAdmin creates the given admin account if no account with the same email
// exists yet. The password must already be hashed by the caller.
func SeedAdmin(db *gorm.DB, admin Admin) error {
	var existing Admin
	err := db.Where("email = ?", admin.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin %s: %w", admin.Email, err)
	}
	return nil
}
