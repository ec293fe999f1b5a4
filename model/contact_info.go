package model

import "gorm.io/gorm"

// ContactInfo is a public contact channel shown on the marketing page
// (WhatsApp number, Instagram handle, service hours and so on).
type ContactInfo struct {
	gorm.Model
	Type           string `json:"type" gorm:"column:type;type:varchar(64);index"`
	Label          string `json:"label" gorm:"column:label"`
	Value          string `json:"value" gorm:"column:value"`
	DefaultMessage string `json:"default_message" gorm:"column:default_message;type:text"`
	IsActive       bool   `json:"is_active" gorm:"column:is_active;default:true"`
}

func (ContactInfo) TableName() string {
	return "contact_infos"
}

// SeedContactInfos inserts the default contact channels when the table is empty.
func SeedContactInfos(db *gorm.DB) error {
	var count int64
	if err := db.Model(&ContactInfo{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []ContactInfo{
		{
			Type:           "whatsapp",
			Label:          "WhatsApp",
			Value:          "6281234567890",
			DefaultMessage: "Halo PijatJogja, saya ingin bertanya tentang layanan pijat.",
			IsActive:       true,
		},
		{
			Type:     "instagram",
			Label:    "Instagram",
			Value:    "@pijatjogja",
			IsActive: true,
		},
		{
			Type:     "service_hours",
			Label:    "Jam Layanan",
			Value:    "08.00 - 21.00 WIB",
			IsActive: true,
		},
	}
	return db.Create(&defaults).Error
}
