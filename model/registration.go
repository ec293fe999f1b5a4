package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration statuses. PENDING is the only initial state.
const (
	RegistrationPending  = "PENDING"
	RegistrationApproved = "APPROVED"
	RegistrationRejected = "REJECTED"
)

// Review actions accepted by the registration review endpoint.
const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
	ActionPending = "PENDING"
)

// Registration represents a therapist registration submitted through the public form
// @Description Therapist partner registration
type Registration struct {
	ID           string    `json:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	FullName     string    `json:"full_name" gorm:"column:full_name" example:"Siti Aminah"`
	WhatsApp     string    `json:"whatsapp" gorm:"column:whatsapp" example:"081234567890"`
	Address      string    `json:"address" gorm:"column:address" example:"Jl. Malioboro 10, Yogyakarta"`
	Gender       string    `json:"gender" gorm:"column:gender" example:"Perempuan"`
	Experience   string    `json:"experience" gorm:"column:experience" example:"3 tahun"`
	WorkArea     string    `json:"work_area" gorm:"column:work_area" example:"Sleman"`
	Availability string    `json:"availability" gorm:"column:availability" example:"Senin-Jumat 09.00-17.00"`
	Message      string    `json:"message" gorm:"column:message;type:text"`
	Status       string    `json:"status" gorm:"column:status;type:varchar(16);default:PENDING;index" example:"PENDING"`
	Notes        string    `json:"notes" gorm:"column:notes;type:text"`
	SubmittedAt  time.Time `json:"submitted_at" gorm:"column:submitted_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Registration) TableName() string {
	return "therapist_registrations"
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// StatusForAction maps a review action to the registration status it produces.
// The second return value is false for unknown actions.
func StatusForAction(action string) (string, bool) {
	switch action {
	case ActionApprove:
		return RegistrationApproved, true
	case ActionReject:
		return RegistrationRejected, true
	case ActionPending:
		return RegistrationPending, true
	}
	return "", false
}
