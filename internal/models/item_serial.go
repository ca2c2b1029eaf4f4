package models

import (
	"time"

	"gorm.io/gorm"
)

type ItemSerial struct {
	gorm.Model
	AuditItemID uint      `gorm:"uniqueIndex:idx_item_sn;not null" json:"auditItemId"`
	AuditItem   AuditItem `json:"-"`

	// SN is unique per parent item; imports upsert on (audit_item_id, sn).
	SN      string     `gorm:"uniqueIndex:idx_item_sn;size:255;not null" json:"sn"`
	Found   bool       `gorm:"not null;default:false" json:"found"`
	FoundAt *time.Time `json:"foundAt"`
}
