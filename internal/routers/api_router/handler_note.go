package api_router

import (
	"github.com/keepnotes/keep-note-service/internal/app"
	"github.com/keepnotes/keep-note-service/internal/domain"
	"github.com/keepnotes/keep-note-service/internal/dto"
	pkgapp "github.com/keepnotes/keep-note-service/pkg/app"
	"github.com/keepnotes/keep-note-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoteHandler 笔记接口处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建笔记处理器实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// List 获取笔记列表
// 缺省排除已归档笔记，支持置顶 / 归档过滤与关键词搜索
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	var params dto.NoteListRequest
	if valid, errs := pkgapp.BindAndValid(c, &params); !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	list, err := h.App.NoteService.List(c.Request.Context(), &params)
	if err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Get 获取单条笔记
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	note, err := h.App.NoteService.Get(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Create 创建笔记
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	var params dto.NoteCreateRequest
	if valid, errs := pkgapp.BindAndValid(c, &params); !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	note, err := h.App.NoteService.Create(c.Request.Context(), &params)
	if err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.SuccessCreated.WithData(note))
}

// Update 部分更新笔记
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	var params dto.NoteUpdateRequest
	if valid, errs := pkgapp.BindAndValid(c, &params); !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	note, err := h.App.NoteService.Update(c.Request.Context(), c.Param("uuid"), &params)
	if err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Delete 删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	if err := h.App.NoteService.Delete(c.Request.Context(), c.Param("uuid")); err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(dto.DeleteResultDTO{Success: true}))
}

// Colors 返回固定调色板
func (h *NoteHandler) Colors(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(domain.NoteColors))
}
