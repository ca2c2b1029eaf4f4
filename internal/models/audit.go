package models

import "gorm.io/gorm"

type Audit struct {
	gorm.Model
	Name  string `gorm:"size:255;not null" json:"name"`
	Notes string `gorm:"type:text" json:"notes"`

	Items  []AuditItem `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Events []ScanEvent `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
