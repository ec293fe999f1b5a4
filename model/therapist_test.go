package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"
)

func TestTherapistModel_Create(t *testing.T) {
	db := setupTestDB(t, "therapist", &Therapist{})

	therapist := Therapist{
		FullName: "Siti Aminah",
		WhatsApp: "081234567890",
		Status:   TherapistActive,
	}

	err := db.Create(&therapist).Error
	assert.NoError(t, err)
	assert.Len(t, therapist.ID, 36)
	assert.NotZero(t, therapist.JoinedAt)
}

func TestTherapistModel_UniqueRegistrationID(t *testing.T) {
	db := setupTestDB(t, "therapist", &Therapist{})

	registrationID := "registration-0001"
	first := Therapist{RegistrationID: &registrationID, FullName: "Siti Aminah", Status: TherapistActive}
	assert.NoError(t, db.Create(&first).Error)

	duplicate := Therapist{RegistrationID: &registrationID, FullName: "Siti Aminah", Status: TherapistActive}
	assert.Error(t, db.Create(&duplicate).Error)

	var count int64
	assert.NoError(t, db.Model(&Therapist{}).Where("registration_id = ?", registrationID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTherapistModel_OnConflictDoNothingSkipsDuplicate(t *testing.T) {
	db := setupTestDB(t, "therapist", &Therapist{})

	registrationID := "registration-0002"
	first := Therapist{RegistrationID: &registrationID, FullName: "Siti Aminah", Status: TherapistActive}
	assert.NoError(t, db.Create(&first).Error)

	duplicate := Therapist{RegistrationID: &registrationID, FullName: "Siti Aminah", Status: TherapistActive}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "registration_id"}},
		DoNothing: true,
	}).Create(&duplicate).Error
	assert.NoError(t, err)

	var count int64
	assert.NoError(t, db.Model(&Therapist{}).Where("registration_id = ?", registrationID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTherapistModel_NullRegistrationIDsDoNotCollide(t *testing.T) {
	db := setupTestDB(t, "therapist", &Therapist{})

	// Manually added therapists have no originating registration; the unique
	// index must not treat two NULLs as duplicates.
	assert.NoError(t, db.Create(&Therapist{FullName: "Manual One", Status: TherapistActive}).Error)
	assert.NoError(t, db.Create(&Therapist{FullName: "Manual Two", Status: TherapistActive}).Error)

	var count int64
	assert.NoError(t, db.Model(&Therapist{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestValidTherapistStatus(t *testing.T) {
	assert.True(t, ValidTherapistStatus(TherapistActive))
	assert.True(t, ValidTherapistStatus(TherapistInactive))
	assert.True(t, ValidTherapistStatus(TherapistSuspended))
	assert.False(t, ValidTherapistStatus("RETIRED"))
	assert.False(t, ValidTherapistStatus("active"))
	assert.False(t, ValidTherapistStatus(""))
}
