package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"stock-audit/internal/config"
	"stock-audit/internal/database"
	"stock-audit/internal/models"
	"stock-audit/internal/xlsx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// ImportAudit loads a count sheet into the audit: one AuditItem per data
// row, one ItemSerial per distinct serial token. Serial upserts are
// idempotent; item rows are not, re-importing the same file duplicates them.
func ImportAudit(c *gin.Context) {
	audit, ok := loadAudit(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "No file uploaded."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		config.LogError("handlers", "ImportAudit", err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	rows, err := xlsx.ParseWorkbook(file)
	if err != nil {
		var missing *xlsx.MissingHeadersError
		if errors.As(err, &missing) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": missing.Error()})
			return
		}
		config.LogError("handlers", "ImportAudit", err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Failed to parse spreadsheet"})
		return
	}

	for _, row := range rows {
		item := row.Item
		item.AuditID = audit.ID

		if err := database.DB.Create(&item).Error; err != nil {
			config.LogError("handlers", "ImportAudit", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save imported row"})
			return
		}

		for _, sn := range row.Serials {
			serial := models.ItemSerial{AuditItemID: item.ID, SN: sn}
			if err := database.DB.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "audit_item_id"}, {Name: "sn"}},
				DoNothing: true,
			}).Create(&serial).Error; err != nil {
				config.LogError("handlers", "ImportAudit", err)
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save serial"})
				return
			}
		}
	}

	c.Redirect(http.StatusSeeOther, "/audits/"+strconv.FormatUint(uint64(audit.ID), 10))
}

// ExportAudit streams the audit back out as an .xlsx attachment.
func ExportAudit(c *gin.Context) {
	audit, ok := loadAudit(c)
	if !ok {
		return
	}

	var items []models.AuditItem
	if err := database.DB.
		Where("audit_id = ?", audit.ID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		config.LogError("handlers", "ExportAudit", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to load items"})
		return
	}

	f, err := xlsx.BuildWorkbook(items)
	if err != nil {
		config.LogError("handlers", "ExportAudit", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to build workbook"})
		return
	}

	fileName := xlsx.ExportFileName(audit.Name, audit.ID)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Cache-Control", "no-store")

	if err := f.Write(c.Writer); err != nil {
		config.LogError("handlers", "ExportAudit", err)
	}
}
