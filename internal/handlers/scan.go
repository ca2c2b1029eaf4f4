package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"stock-audit/internal/config"
	"stock-audit/internal/database"
	"stock-audit/internal/scan"

	"github.com/gin-gonic/gin"
)

type scanRequest struct {
	Text       string `json:"text"`
	CurrentBin string `json:"currentBin"`
}

// Scan runs one scanner submission through token extraction and
// reconciliation and returns the per-token outcomes.
func Scan(c *gin.Context) {
	audit, ok := loadAudit(c)
	if !ok {
		return
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	var req scanRequest
	if err := dec.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request body: " + err.Error()})
		return
	}

	toks := scan.ExtractTokens(req.Text)
	currentBin := strings.TrimSpace(req.CurrentBin)

	results, err := scan.Process(database.DB, audit.ID, toks, currentBin)
	if err != nil {
		config.LogError("handlers", "Scan", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Scan failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"auditId": audit.ID,
		"tokens":  toks,
		"results": results,
	})
}
