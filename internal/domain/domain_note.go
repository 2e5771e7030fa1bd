// Package domain 定义领域模型和接口
package domain

import (
	"encoding/json"
	"strings"

	"github.com/keepnotes/keep-note-service/pkg/timex"

	"github.com/google/uuid"
)

// EmptyContent 空内容占位，内容缺省时使用空对象而不是 null
var EmptyContent = json.RawMessage(`{}`)

// Note 笔记领域模型
// Uuid 是跨本地存储和远端备份的自然键，创建后不再变更
type Note struct {
	ID         int64           `json:"id"`
	Uuid       string          `json:"uuid"`
	Title      string          `json:"title"`
	Content    json.RawMessage `json:"content"`
	Color      Color           `json:"color"`
	IsPinned   bool            `json:"isPinned"`
	IsArchived bool            `json:"isArchived"`
	Labels     []string        `json:"labels"`
	UserID     *int64          `json:"userId"`
	CreatedAt  timex.Time      `json:"createdAt"`
	UpdatedAt  timex.Time      `json:"updatedAt"`
}

// NewNote 创建一个空笔记，ID 由存储层分配
func NewNote() *Note {
	now := timex.Now()
	return &Note{
		ID:         0,
		Uuid:       uuid.NewString(),
		Title:      "",
		Content:    EmptyContent,
		Color:      ColorDefault,
		IsPinned:   false,
		IsArchived: false,
		Labels:     []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch 刷新修改时间
func (n *Note) Touch() {
	n.UpdatedAt = timex.Now()
}

// Normalize 补齐缺省字段
func (n *Note) Normalize() {
	if len(n.Content) == 0 {
		n.Content = EmptyContent
	}
	if !IsValidColor(n.Color) {
		n.Color = ColorDefault
	}
	if n.Labels == nil {
		n.Labels = []string{}
	}
}

// MatchesSearch 判断笔记标题或序列化后的内容是否包含查询词（不区分大小写）
func (n *Note) MatchesSearch(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(string(n.Content)), q)
}
