package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content is an editable block of page content (hero text, pricing section,
// FAQ entry). Key identifies the block; Order controls display position.
type Content struct {
	gorm.Model
	Key         string         `json:"key" gorm:"column:key;type:varchar(128);uniqueIndex"`
	Title       string         `json:"title" gorm:"column:title"`
	Content     string         `json:"content" gorm:"column:content;type:text"`
	Type        string         `json:"type" gorm:"column:type;type:varchar(64);index"`
	Order       int            `json:"order" gorm:"column:display_order;default:0"`
	IsPublished bool           `json:"is_published" gorm:"column:is_published;default:true"`
	Metadata    datatypes.JSON `json:"metadata" gorm:"column:metadata;type:json"`
}

func (Content) TableName() string {
	return "contents"
}
