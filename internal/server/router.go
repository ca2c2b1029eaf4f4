package server

import (
	"net/http"

	"stock-audit/internal/config"
	"stock-audit/internal/handlers"
	"stock-audit/internal/middleware"
	"stock-audit/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.LoadHTMLGlob("web/templates/*.html")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("stock_audit_session", store))

	r.Use(middleware.InjectUser())

	// AUTH
	r.GET("/register", handlers.ShowRegister)
	r.POST("/register", handlers.Register)
	r.GET("/login", handlers.ShowLogin)
	r.POST("/login", handlers.Login)
	r.GET("/logout", handlers.Logout)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	// PAGES
	auth.GET("/", handlers.IndexPage)
	auth.GET("/audits/:id", handlers.ShowAudit)
	auth.GET("/audits/:id/scan", handlers.ShowScanConsole)
	auth.GET("/audits/:id/trail", handlers.ShowTrail)

	// AUDITS
	auth.POST("/audits", handlers.CreateAudit)
	auth.DELETE("/audits",
		middleware.RequireRole(models.RoleAdmin),
		handlers.DeleteAudit,
	)

	// ITEM GRID
	auth.GET("/audits/:id/items", handlers.ListAuditItems)
	auth.PATCH("/audit-items/:itemId",
		middleware.RequireRole(models.RoleAdmin, models.RoleOperator),
		handlers.PatchAuditItem,
	)

	// SCANNING
	auth.POST("/audits/:id/scan",
		middleware.RequireRole(models.RoleAdmin, models.RoleOperator),
		handlers.Scan,
	)

	// SPREADSHEETS
	auth.POST("/audits/:id/import",
		middleware.RequireRole(models.RoleAdmin, models.RoleOperator),
		handlers.ImportAudit,
	)
	auth.GET("/audits/:id/export", handlers.ExportAudit)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
