package models

import "time"

type ScanType string

const (
	ScanTypeAssetID ScanType = "ASSET_ID"
	ScanTypeSerial  ScanType = "SERIAL"
)

type ScanStatus string

const (
	ScanFound        ScanStatus = "FOUND"
	ScanAlreadyFound ScanStatus = "ALREADY_FOUND"
	ScanNotFound     ScanStatus = "NOT_FOUND"
)

// ScanEvent is the append-only trail: one row per scanned token, matched or
// not. Rows are never updated; they go away only when the audit is deleted.
type ScanEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	AuditID     uint  `gorm:"index;not null" json:"auditId"`
	AuditItemID *uint `gorm:"index" json:"auditItemId"`

	Token  string     `gorm:"size:255;not null" json:"token"`
	Type   ScanType   `gorm:"type:varchar(20);not null" json:"type"`
	Status ScanStatus `gorm:"type:varchar(20);not null" json:"status"`

	CurrentBin  string `gorm:"size:100" json:"currentBin"`
	ExpectedBin string `gorm:"size:100" json:"expectedBin"`
	FoundBin    string `gorm:"size:100" json:"foundBin"`
	Message     string `gorm:"type:text" json:"message"`
}
