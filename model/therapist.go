package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Therapist statuses, all mutually reachable. ACTIVE is assigned at creation.
const (
	TherapistActive    = "ACTIVE"
	TherapistInactive  = "INACTIVE"
	TherapistSuspended = "SUSPENDED"
)

// Therapist represents an active marketplace partner
// @Description Therapist partner record, optionally linked to the registration that produced it
type Therapist struct {
	ID string `json:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	// RegistrationID backs a unique index so a registration can never be
	// provisioned into more than one therapist, even under concurrent approvals.
	RegistrationID *string   `json:"registration_id" gorm:"column:registration_id;type:varchar(36);uniqueIndex"`
	FullName       string    `json:"full_name" gorm:"column:full_name" example:"Siti Aminah"`
	WhatsApp       string    `json:"whatsapp" gorm:"column:whatsapp" example:"081234567890"`
	Address        string    `json:"address" gorm:"column:address"`
	Gender         string    `json:"gender" gorm:"column:gender"`
	Experience     string    `json:"experience" gorm:"column:experience"`
	WorkArea       string    `json:"work_area" gorm:"column:work_area"`
	Availability   string    `json:"availability" gorm:"column:availability"`
	Message        string    `json:"message" gorm:"column:message;type:text"`
	Status         string    `json:"status" gorm:"column:status;type:varchar(16);default:ACTIVE;index" example:"ACTIVE"`
	JoinedAt       time.Time `json:"joined_at" gorm:"column:joined_at;autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (t *Therapist) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ValidTherapistStatus reports whether s is one of the known therapist statuses.
func ValidTherapistStatus(s string) bool {
	switch s {
	case TherapistActive, TherapistInactive, TherapistSuspended:
		return true
	}
	return false
}
