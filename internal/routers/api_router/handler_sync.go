package api_router

import (
	"github.com/keepnotes/keep-note-service/internal/app"
	"github.com/keepnotes/keep-note-service/internal/dto"
	pkgapp "github.com/keepnotes/keep-note-service/pkg/app"
	"github.com/keepnotes/keep-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// SyncHandler 远端同步接口处理器
type SyncHandler struct {
	*Handler
}

// NewSyncHandler 创建同步处理器实例
func NewSyncHandler(a *app.App) *SyncHandler {
	return &SyncHandler{Handler: NewHandler(a)}
}

// Trigger 触发一次全量上传同步
// 在途同步未结束或同步未启用时 started 为 false
func (h *SyncHandler) Trigger(c *gin.Context) {
	started := h.App.SyncService.SyncToRemote(c.Request.Context())
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(dto.SyncResultDTO{Started: started}))
}

// Restore 用远端备份整体替换本地集合
func (h *SyncHandler) Restore(c *gin.Context) {
	started := h.App.SyncService.RestoreFromRemote(c.Request.Context())
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(dto.SyncResultDTO{Started: started}))
}

// Status 返回当前同步状态
func (h *SyncHandler) Status(c *gin.Context) {
	status := h.App.SyncService.Status()
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(dto.SyncStatusFromBroadcast(status)))
}

// SignIn 登录远端账户
func (h *SyncHandler) SignIn(c *gin.Context) {
	ok, err := h.App.SyncService.SignIn(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(gin.H{"signedIn": ok}))
}

// SignOut 退出远端账户
func (h *SyncHandler) SignOut(c *gin.Context) {
	_, err := h.App.SyncService.SignOut()
	if err != nil {
		respondError(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(gin.H{"signedIn": h.App.SyncService.IsSignedIn()}))
}
