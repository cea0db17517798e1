package devserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sekolahdigital/tamuadmin/internal/middleware"
)

// RouteDeps carries everything route registration needs.
type RouteDeps struct {
	DB          *gorm.DB
	JWTSecret   string
	TokenExpiry time.Duration
}

// RegisterRoutes wires the full API surface under /api. Everything except
// login sits behind bearer authentication.
func RegisterRoutes(engine *gin.Engine, deps *RouteDeps) {
	auth := newAuthHandler(deps.DB, deps.JWTSecret, deps.TokenExpiry)
	dash := newDashboardHandler(deps.DB)

	api := engine.Group("/api")
	api.POST("/login", auth.Login)

	protected := api.Group("")
	protected.Use(middleware.BearerAuth(deps.JWTSecret))

	protected.POST("/logout", auth.Logout)
	protected.GET("/dashboard", dash.Dashboard)
	protected.POST("/sync-manual", dash.SyncManual)

	registerResource(protected, "/siswa", newSiswaHandler(deps.DB))
	registerResource(protected, "/jabatan", newJabatanHandler(deps.DB))
	registerResource(protected, "/pegawai", newPegawaiHandler(deps.DB))
	registerResource(protected, "/orangtua", newOrangTuaHandler(deps.DB))
	registerResource(protected, "/bukutamu", newBukuTamuHandler(deps.DB))
}

func registerResource[T any, F any](g *gin.RouterGroup, path string, h *resourceHandler[T, F]) {
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Get)
	g.POST(path, h.Create)
	g.PUT(path+"/:id", h.Update)
	g.DELETE(path+"/:id", h.Delete)
}
