package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Known WhatsApp template types.
const (
	TemplateRegistrationReceived = "registration_received"
	TemplateRegistrationApproved = "registration_approved"
	TemplateRegistrationRejected = "registration_rejected"
)

// WhatsAppTemplate holds the editable text of an outgoing WhatsApp message.
// Sending is handled by an external collaborator; this service only stores the text.
type WhatsAppTemplate struct {
	gorm.Model
	Type     string `json:"type" gorm:"column:type;type:varchar(64);uniqueIndex"`
	Title    string `json:"title" gorm:"column:title"`
	Message  string `json:"message" gorm:"column:message;type:text"`
	IsActive bool   `json:"is_active" gorm:"column:is_active;default:true"`
}

func (WhatsAppTemplate) TableName() string {
	return "whatsapp_templates"
}

// SeedWhatsAppTemplates inserts the default template set, skipping types that
// already exist so admin edits survive restarts.
func SeedWhatsAppTemplates(db *gorm.DB) error {
	templates := []WhatsAppTemplate{
		{
			Type:     TemplateRegistrationReceived,
			Title:    "Pendaftaran Diterima",
			Message:  "Halo {{nama}}, pendaftaran Anda sebagai mitra terapis PijatJogja sudah kami terima. Tim kami akan menghubungi Anda dalam 1x24 jam.",
			IsActive: true,
		},
		{
			Type:     TemplateRegistrationApproved,
			Title:    "Pendaftaran Disetujui",
			Message:  "Selamat {{nama}}! Pendaftaran Anda telah disetujui. Selamat bergabung sebagai mitra terapis PijatJogja.",
			IsActive: true,
		},
		{
			Type:     TemplateRegistrationRejected,
			Title:    "Pendaftaran Ditolak",
			Message:  "Halo {{nama}}, mohon maaf pendaftaran Anda belum dapat kami setujui. Silakan lengkapi persyaratan dan daftar kembali.",
			IsActive: true,
		},
	}

	for _, tpl := range templates {
		var existing WhatsAppTemplate
		err := db.Where("type = ?", tpl.Type).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&tpl).Error; err != nil {
			return fmt.Errorf("failed to seed template %s: %w", tpl.Type, err)
		}
	}
	return nil
}
