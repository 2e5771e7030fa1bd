// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"encoding/json"

	"github.com/keepnotes/keep-note-service/internal/domain"
	"github.com/keepnotes/keep-note-service/pkg/timex"

	"github.com/jinzhu/copier"
)

// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID         int64           `json:"id"`
	Uuid       string          `json:"uuid"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	Color      string          `json:"color"`
	IsPinned   bool            `json:"isPinned"`
	IsArchived bool            `json:"isArchived"`
	Labels     []string        `json:"labels"`
	UserID     *int64          `json:"userId"`
	CreatedAt  timex.Time      `json:"createdAt"`
	UpdatedAt  timex.Time      `json:"updatedAt"`
}

// NoteFromDomain 将领域模型转换为 DTO
func NoteFromDomain(note *domain.Note) *NoteDTO {
	if note == nil {
		return nil
	}
	out := &NoteDTO{}
	_ = copier.Copy(out, note)
	out.Color = string(note.Color)
	return out
}

// NoteListFromDomain 批量转换
func NoteListFromDomain(notes []*domain.Note) []*NoteDTO {
	list := make([]*NoteDTO, 0, len(notes))
	for _, n := range notes {
		list = append(list, NoteFromDomain(n))
	}
	return list
}

// NoteCreateRequest 创建笔记的请求参数
// id 与时间戳由服务端分配，Uuid 允许客户端提供以保持本地身份
type NoteCreateRequest struct {
	Uuid       string          `json:"uuid" form:"uuid"`
	Title      string          `json:"title" form:"title"`
	Content    json.RawMessage `json:"content" form:"content"`
	Color      string          `json:"color" form:"color"`
	IsPinned   bool            `json:"isPinned" form:"isPinned"`
	IsArchived bool            `json:"isArchived" form:"isArchived"`
	Labels     []string        `json:"labels" form:"labels"`
}

// NoteUpdateRequest 部分更新笔记的请求参数，nil 字段不修改
type NoteUpdateRequest struct {
	Title      *string         `json:"title" form:"title"`
	Content    json.RawMessage `json:"content" form:"content"`
	Color      *string         `json:"color" form:"color"`
	IsPinned   *bool           `json:"isPinned" form:"isPinned"`
	IsArchived *bool           `json:"isArchived" form:"isArchived"`
	Labels     []string        `json:"labels" form:"labels"`
}

// NoteListRequest 列表查询参数
type NoteListRequest struct {
	IsPinned        *bool  `json:"isPinned" form:"isPinned"`
	IsArchived      *bool  `json:"isArchived" form:"isArchived"`
	IncludeArchived bool   `json:"includeArchived" form:"includeArchived"`
	Search          string `json:"search" form:"search"`
}

// DeleteResultDTO 删除操作的响应
type DeleteResultDTO struct {
	Success bool `json:"success"`
}
