package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"stock-audit/internal/config"
	"stock-audit/internal/database"
	"stock-audit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListAuditItems returns the full grid for one audit, oldest rows first.
func ListAuditItems(c *gin.Context) {
	audit, ok := loadAudit(c)
	if !ok {
		return
	}

	var items []models.AuditItem
	if err := database.DB.
		Where("audit_id = ?", audit.ID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		config.LogError("handlers", "ListAuditItems", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

// patchItemRequest is the full editable field set of a grid row. The shape
// is strict: unknown keys and wrong types are rejected, not coerced.
type patchItemRequest struct {
	Item        string `json:"item"`
	Description string `json:"description"`
	PrefVendor  string `json:"prefVendor"`

	OnHand        *float64 `json:"onHand"`
	PhysicalCount *float64 `json:"physicalCount"`

	ExpectedBin string `json:"expectedBin"`
	SerialsRaw  string `json:"serialsRaw"`
	AssetID     string `json:"assetId"`
	Notes       string `json:"notes"`

	CurrentOnHandValue   decimal.NullDecimal `json:"currentOnHandValue"`
	CurrentValueVariance decimal.NullDecimal `json:"currentValueVariance"`

	FoundStatus  string `json:"foundStatus"`
	FoundBin     string `json:"foundBin"`
	ReviewFlag   bool   `json:"reviewFlag"`
	ReviewReason string `json:"reviewReason"`
}

// PatchAuditItem saves one grid row. Count variance, the found fields and
// the review reason are derived server side, never taken from the client.
func PatchAuditItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil || itemID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid item id"})
		return
	}

	var item models.AuditItem
	if err := database.DB.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Item not found"})
		return
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	var req patchItemRequest
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	foundStatus := models.FoundStatus(req.FoundStatus)
	switch foundStatus {
	case models.FoundStatusUnset, models.FoundStatusFound, models.FoundStatusMissing:
		// ok
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid foundStatus"})
		return
	}

	item.Item = req.Item
	item.Description = req.Description
	item.PrefVendor = req.PrefVendor

	item.OnHand = req.OnHand
	item.PhysicalCount = req.PhysicalCount
	item.CountVariance = models.ComputeCountVariance(req.OnHand, req.PhysicalCount)

	item.ExpectedBin = req.ExpectedBin
	item.SerialsRaw = req.SerialsRaw
	item.AssetID = req.AssetID
	item.Notes = req.Notes

	item.CurrentOnHandValue = req.CurrentOnHandValue
	item.CurrentValueVariance = req.CurrentValueVariance

	// found flag, timestamp and bin all follow from the status
	item.FoundStatus = foundStatus
	item.Found = foundStatus == models.FoundStatusFound
	if item.Found {
		now := time.Now()
		item.FoundAt = &now
		item.FoundBin = req.FoundBin
	} else {
		item.FoundAt = nil
		item.FoundBin = ""
	}

	item.ReviewFlag = req.ReviewFlag
	if req.ReviewFlag {
		if req.ReviewReason != "" {
			item.ReviewReason = req.ReviewReason
		} else {
			item.ReviewReason = "Needs review"
		}
	} else {
		item.ReviewReason = ""
	}

	if err := database.DB.Save(&item).Error; err != nil {
		config.LogError("handlers", "PatchAuditItem", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": item.ID})
}
