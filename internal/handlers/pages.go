package handlers

import (
	"net/http"
	"strconv"

	"stock-audit/internal/database"
	"stock-audit/internal/models"

	"github.com/gin-gonic/gin"
)

// IndexPage lists audits, newest first, with the "new audit" form.
func IndexPage(c *gin.Context) {
	var audits []models.Audit
	database.DB.Order("created_at desc").Find(&audits)

	render(c, http.StatusOK, "index.html", gin.H{
		"audits": audits,
	})
}

func loadAuditPage(c *gin.Context) (models.Audit, bool) {
	var audit models.Audit

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.String(http.StatusBadRequest, "Invalid audit id")
		return audit, false
	}

	if err := database.DB.First(&audit, id).Error; err != nil {
		c.String(http.StatusNotFound, "Audit not found")
		return audit, false
	}

	return audit, true
}

// ShowAudit renders the editable item grid for one audit.
func ShowAudit(c *gin.Context) {
	audit, ok := loadAuditPage(c)
	if !ok {
		return
	}

	var items []models.AuditItem
	database.DB.
		Where("audit_id = ?", audit.ID).
		Order("created_at asc").
		Find(&items)

	render(c, http.StatusOK, "audit_detail.html", gin.H{
		"audit": audit,
		"items": items,
	})
}

// ShowScanConsole renders the scan input page for one audit.
func ShowScanConsole(c *gin.Context) {
	audit, ok := loadAuditPage(c)
	if !ok {
		return
	}

	render(c, http.StatusOK, "scan.html", gin.H{
		"audit": audit,
	})
}

// ShowTrail lists the most recent scan events of one audit.
func ShowTrail(c *gin.Context) {
	audit, ok := loadAuditPage(c)
	if !ok {
		return
	}

	var events []models.ScanEvent
	database.DB.
		Where("audit_id = ?", audit.ID).
		Order("created_at desc").
		Limit(200).
		Find(&events)

	render(c, http.StatusOK, "trail.html", gin.H{
		"audit":  audit,
		"events": events,
	})
}
