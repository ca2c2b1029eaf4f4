package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"stock-audit/internal/config"
	"stock-audit/internal/database"
	"stock-audit/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateAudit handles the "new audit" form: name required, notes optional.
func CreateAudit(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	notes := strings.TrimSpace(c.PostForm("notes"))

	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Name is required"})
		return
	}

	audit := models.Audit{Name: name, Notes: notes}
	if err := database.DB.Create(&audit).Error; err != nil {
		config.LogError("handlers", "CreateAudit", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to save audit"})
		return
	}

	// 303: redirect after form POST
	c.Redirect(http.StatusSeeOther, "/audits/"+strconv.FormatUint(uint64(audit.ID), 10))
}

// DeleteAudit removes an audit; items, serials and scan events go with it
// through the FK cascade.
func DeleteAudit(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing id"})
		return
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid id"})
		return
	}

	// hard delete so ON DELETE CASCADE fires on the child tables
	res := database.DB.Unscoped().Delete(&models.Audit{}, id)
	if res.Error != nil {
		config.LogError("handlers", "DeleteAudit", res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to delete audit"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Audit not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// loadAudit resolves the :id path param, writing the error response itself
// when the audit does not exist.
func loadAudit(c *gin.Context) (models.Audit, bool) {
	var audit models.Audit

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid audit id"})
		return audit, false
	}

	if err := database.DB.First(&audit, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Audit not found"})
		return audit, false
	}

	return audit, true
}
