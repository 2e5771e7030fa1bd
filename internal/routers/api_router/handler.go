// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"github.com/keepnotes/keep-note-service/internal/app"
	"github.com/keepnotes/keep-note-service/internal/domain"
	"github.com/keepnotes/keep-note-service/internal/service"
	pkgapp "github.com/keepnotes/keep-note-service/pkg/app"
	"github.com/keepnotes/keep-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// respondError 将服务层错误映射为响应码
func respondError(c *gin.Context, err error) {
	response := pkgapp.NewResponse(c)

	switch {
	case errors.Is(err, domain.ErrNoteNotFound):
		response.ToResponse(code.ErrorNoteNotFound)
	case errors.Is(err, service.ErrInvalidColor):
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
	default:
		response.ToResponse(code.ErrorServerInternal.WithDetails(err.Error()))
	}
}
