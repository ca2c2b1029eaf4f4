package scan

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stock-audit/internal/models"

	"gorm.io/gorm"
)

// Result is the per-token outcome returned to the scan console.
type Result struct {
	Token       string            `json:"token"`
	Type        models.ScanType   `json:"type"`
	Status      models.ScanStatus `json:"status"`
	AuditItemID *uint             `json:"auditItemId,omitempty"`
	Message     string            `json:"message,omitempty"`
}

func buildBinNote(expectedBin, foundBin string) string {
	if expectedBin == "" {
		expectedBin = "(blank)"
	}
	return fmt.Sprintf("Bin mismatch: expected %s; found %s", expectedBin, foundBin)
}

func buildReviewReason(expectedBin, foundBin string) string {
	if expectedBin == "" {
		expectedBin = "(blank)"
	}
	return fmt.Sprintf("Expected bin: %s | Found bin: %s", expectedBin, foundBin)
}

// appendNote adds a note line unless the exact text is already there, so
// re-scanning the same mismatching bin does not pile up duplicates.
func appendNote(existing, noteToAdd string) string {
	if strings.TrimSpace(existing) == "" {
		return noteToAdd
	}
	if strings.Contains(existing, noteToAdd) {
		return existing
	}
	return existing + "\n" + noteToAdd
}

func logEvent(tx *gorm.DB, ev models.ScanEvent) error {
	return tx.Create(&ev).Error
}

// markItemFound applies the shared row mutation for a completed match: the
// found fields always, the review fields and a bin note only when the
// operator's declared bin contradicts the expected one.
func markItemFound(tx *gorm.DB, item *models.AuditItem, currentBin string, now time.Time) (binMismatch bool, err error) {
	binMismatch = currentBin != "" && item.ExpectedBin != "" && currentBin != item.ExpectedBin

	updates := map[string]interface{}{
		"found":        true,
		"found_status": models.FoundStatusFound,
		"found_at":     now,
		"found_bin":    currentBin,
	}

	if binMismatch {
		updates["review_flag"] = true
		updates["review_reason"] = buildReviewReason(item.ExpectedBin, currentBin)
		updates["notes"] = appendNote(item.Notes, buildBinNote(item.ExpectedBin, currentBin))
	}

	return binMismatch, tx.Model(item).Updates(updates).Error
}

// Process resolves every extracted token against the audit's inventory,
// asset IDs first, then serials. Each token runs in its own transaction, so
// a failure mid-request leaves earlier tokens committed and later ones
// untouched, but never a half-applied single token. Every token writes
// exactly one ScanEvent regardless of outcome.
func Process(db *gorm.DB, auditID uint, toks Tokens, currentBin string) ([]Result, error) {
	results := make([]Result, 0, len(toks.AssetIDs)+len(toks.Serials))
	now := time.Now()

	for _, assetID := range toks.AssetIDs {
		res, err := processAssetID(db, auditID, assetID, currentBin, now)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	for _, sn := range toks.Serials {
		res, err := processSerial(db, auditID, sn, currentBin, now)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

func processAssetID(db *gorm.DB, auditID uint, assetID, currentBin string, now time.Time) (Result, error) {
	res := Result{Token: assetID, Type: models.ScanTypeAssetID}

	err := db.Transaction(func(tx *gorm.DB) error {
		var item models.AuditItem
		err := tx.Where("audit_id = ? AND asset_id = ?", auditID, assetID).
			Order("id asc").
			First(&item).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.Status = models.ScanNotFound
			res.Message = "No row with this Asset ID in this audit."
			return logEvent(tx, models.ScanEvent{
				AuditID:    auditID,
				Token:      assetID,
				Type:       models.ScanTypeAssetID,
				Status:     models.ScanNotFound,
				CurrentBin: currentBin,
				Message:    res.Message,
			})
		}
		if err != nil {
			return err
		}

		res.AuditItemID = &item.ID

		if item.FoundStatus == models.FoundStatusFound {
			res.Status = models.ScanAlreadyFound
			return logEvent(tx, models.ScanEvent{
				AuditID:     auditID,
				AuditItemID: &item.ID,
				Token:       assetID,
				Type:        models.ScanTypeAssetID,
				Status:      models.ScanAlreadyFound,
				CurrentBin:  currentBin,
				ExpectedBin: item.ExpectedBin,
				FoundBin:    item.FoundBin,
			})
		}

		binMismatch, err := markItemFound(tx, &item, currentBin, now)
		if err != nil {
			return err
		}

		res.Status = models.ScanFound
		if binMismatch {
			res.Message = "Found (wrong bin → flagged review + note added)."
		} else {
			res.Message = "Found."
		}

		return logEvent(tx, models.ScanEvent{
			AuditID:     auditID,
			AuditItemID: &item.ID,
			Token:       assetID,
			Type:        models.ScanTypeAssetID,
			Status:      models.ScanFound,
			CurrentBin:  currentBin,
			ExpectedBin: item.ExpectedBin,
			FoundBin:    currentBin,
			Message:     res.Message,
		})
	})

	return res, err
}

func processSerial(db *gorm.DB, auditID uint, sn, currentBin string, now time.Time) (Result, error) {
	res := Result{Token: sn, Type: models.ScanTypeSerial}

	err := db.Transaction(func(tx *gorm.DB) error {
		var serialRow models.ItemSerial
		err := tx.
			Joins("JOIN audit_items ON audit_items.id = item_serials.audit_item_id").
			Where("item_serials.sn = ? AND audit_items.audit_id = ? AND audit_items.deleted_at IS NULL", sn, auditID).
			Order("item_serials.id asc").
			First(&serialRow).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.Status = models.ScanNotFound
			res.Message = "No row with this Serial in this audit."
			return logEvent(tx, models.ScanEvent{
				AuditID:    auditID,
				Token:      sn,
				Type:       models.ScanTypeSerial,
				Status:     models.ScanNotFound,
				CurrentBin: currentBin,
				Message:    res.Message,
			})
		}
		if err != nil {
			return err
		}

		// mark this SN found if not already
		if !serialRow.Found {
			if err := tx.Model(&serialRow).Updates(map[string]interface{}{
				"found":    true,
				"found_at": now,
			}).Error; err != nil {
				return err
			}
			serialRow.Found = true
		}

		var item models.AuditItem
		if err := tx.Preload("Serials").First(&item, serialRow.AuditItemID).Error; err != nil {
			return err
		}

		res.AuditItemID = &item.ID

		if item.FoundStatus == models.FoundStatusFound {
			res.Status = models.ScanAlreadyFound
			return logEvent(tx, models.ScanEvent{
				AuditID:     auditID,
				AuditItemID: &item.ID,
				Token:       sn,
				Type:        models.ScanTypeSerial,
				Status:      models.ScanAlreadyFound,
				CurrentBin:  currentBin,
				ExpectedBin: item.ExpectedBin,
				FoundBin:    item.FoundBin,
			})
		}

		allSerialsFound := len(item.Serials) > 0
		for _, s := range item.Serials {
			if s.ID == serialRow.ID {
				continue
			}
			if !s.Found {
				allSerialsFound = false
				break
			}
		}

		if !allSerialsFound {
			res.Status = models.ScanFound
			res.Message = "Serial matched; waiting for other serials in the row."
			return logEvent(tx, models.ScanEvent{
				AuditID:     auditID,
				AuditItemID: &item.ID,
				Token:       sn,
				Type:        models.ScanTypeSerial,
				Status:      models.ScanFound,
				CurrentBin:  currentBin,
				ExpectedBin: item.ExpectedBin,
				FoundBin:    currentBin,
				Message:     res.Message,
			})
		}

		binMismatch, err := markItemFound(tx, &item, currentBin, now)
		if err != nil {
			return err
		}

		res.Status = models.ScanFound
		if binMismatch {
			res.Message = "Serial matched; all serials found (wrong bin → flagged review + note added)."
		} else {
			res.Message = "Serial matched; all serials found (row marked found)."
		}

		return logEvent(tx, models.ScanEvent{
			AuditID:     auditID,
			AuditItemID: &item.ID,
			Token:       sn,
			Type:        models.ScanTypeSerial,
			Status:      models.ScanFound,
			CurrentBin:  currentBin,
			ExpectedBin: item.ExpectedBin,
			FoundBin:    currentBin,
			Message:     res.Message,
		})
	})

	return res, err
}
