package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FoundStatus string

const (
	// FoundStatusUnset is the initial tri-state value; items imported from a
	// count sheet start here.
	FoundStatusUnset   FoundStatus = ""
	FoundStatusFound   FoundStatus = "FOUND"
	FoundStatusMissing FoundStatus = "MISSING"
)

type AuditItem struct {
	gorm.Model
	AuditID uint  `gorm:"index;not null" json:"auditId"`
	Audit   Audit `json:"-"`

	Item        string `gorm:"size:255" json:"item"`
	Description string `gorm:"type:text" json:"description"`
	PrefVendor  string `gorm:"size:255" json:"prefVendor"`

	OnHand        *float64 `json:"onHand"`
	PhysicalCount *float64 `json:"physicalCount"`
	// CountVariance = OnHand - PhysicalCount, null if either input is null.
	// Recomputed on every write, never taken from client or spreadsheet input.
	CountVariance *float64 `json:"countVariance"`

	ExpectedBin string `gorm:"size:100" json:"expectedBin"`
	SerialsRaw  string `gorm:"type:text" json:"serialsRaw"`
	AssetID     string `gorm:"size:100;index" json:"assetId"`
	Notes       string `gorm:"type:text" json:"notes"`

	CurrentOnHandValue   decimal.NullDecimal `gorm:"type:decimal(20,4)" json:"currentOnHandValue"`
	CurrentValueVariance decimal.NullDecimal `gorm:"type:decimal(20,4)" json:"currentValueVariance"`

	Found       bool        `gorm:"not null;default:false" json:"found"`
	FoundStatus FoundStatus `gorm:"type:varchar(20)" json:"foundStatus"`
	FoundAt     *time.Time  `json:"foundAt"`
	FoundBin    string      `gorm:"size:100" json:"foundBin"`

	ReviewFlag   bool   `gorm:"not null;default:false" json:"reviewFlag"`
	ReviewReason string `gorm:"size:255" json:"reviewReason"`

	Serials []ItemSerial `gorm:"constraint:OnDelete:CASCADE" json:"serials"`
}

// ComputeCountVariance applies the count sheet formula: on hand minus physical
// count, null if either side is unknown.
func ComputeCountVariance(onHand, physicalCount *float64) *float64 {
	if onHand == nil || physicalCount == nil {
		return nil
	}
	v := *onHand - *physicalCount
	return &v
}
