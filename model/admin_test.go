package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeedAdmin_CreatesAccount(t *testing.T) {
	db := setupTestDB(t, "admin", &Admin{})

	admin := Admin{
		Name:     "Admin PijatJogja",
		Email:    "admin@pijatjogja.id",
		Password: "argon2id$deadbeef",
		IsActive: true,
	}
	assert.NoError(t, SeedAdmin(db, admin))

	var found Admin
	assert.NoError(t, db.Where("email = ?", admin.Email).First(&found).Error)
	assert.Equal(t, "Admin PijatJogja", found.Name)
	assert.True(t, found.IsActive)
}

func TestSeedAdmin_SkipsExistingEmail(t *testing.T) {
	db := setupTestDB(t, "admin", &Admin{})

	original := Admin{Name: "Original", Email: "admin@pijatjogja.id", Password: "hash-one"}
	assert.NoError(t, db.Create(&original).Error)

	assert.NoError(t, SeedAdmin(db, Admin{Name: "Replacement", Email: "admin@pijatjogja.id", Password: "hash-two"}))

	var count int64
	assert.NoError(t, db.Model(&Admin{}).Where("email = ?", "admin@pijatjogja.id").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var found Admin
	assert.NoError(t, db.Where("email = ?", "admin@pijatjogja.id").First(&found).Error)
	assert.Equal(t, "Original", found.Name)
}

func TestAdminModel_Lockout(t *testing.T) {
	db := setupTestDB(t, "admin", &Admin{})

	admin := Admin{Name: "Locked", Email: "locked@pijatjogja.id", Password: "hash"}
	assert.NoError(t, db.Create(&admin).Error)

	lockUntil := time.Now().Add(15 * time.Minute).Unix()
	admin.FailedAttempts = 5
	admin.LockedUntil = &lockUntil
	assert.NoError(t, db.Save(&admin).Error)

	var found Admin
	assert.NoError(t, db.First(&found, admin.ID).Error)
	assert.Equal(t, 5, found.FailedAttempts)
	assert.NotNil(t, found.LockedUntil)
	assert.Equal(t, lockUntil, *found.LockedUntil)
}
