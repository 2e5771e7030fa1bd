package routers

import (
	"time"

	"github.com/keepnotes/keep-note-service/internal/app"
	"github.com/keepnotes/keep-note-service/internal/middleware"
	"github.com/keepnotes/keep-note-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
)

func NewRouter(appContainer *app.App) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo())
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		noteHandler := api_router.NewNoteHandler(appContainer)
		syncHandler := api_router.NewSyncHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.GET("/health", healthHandler.Check)
		api.GET("/colors", noteHandler.Colors)

		api.GET("/notes", noteHandler.List)
		api.GET("/notes/:uuid", noteHandler.Get)
		api.POST("/notes", noteHandler.Create)
		api.PUT("/notes/:uuid", noteHandler.Update)
		api.DELETE("/notes/:uuid", noteHandler.Delete)

		api.POST("/sync", syncHandler.Trigger)
		api.POST("/sync/restore", syncHandler.Restore)
		api.GET("/sync/status", syncHandler.Status)
		api.POST("/sync/signin", syncHandler.SignIn)
		api.POST("/sync/signout", syncHandler.SignOut)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
