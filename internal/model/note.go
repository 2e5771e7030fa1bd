package model

import "github.com/keepnotes/keep-note-service/pkg/timex"

const TableNameNote = "note"

// Note mapped from table <note>
// Content 与 Labels 以 JSON 文本存储，结构由客户端编辑器负责
type Note struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	Uuid       string     `gorm:"column:uuid;not null;uniqueIndex:idx_note_uuid" json:"uuid" form:"uuid"`
	Title      string     `gorm:"column:title;index:idx_note_title" json:"title" form:"title"`
	Content    string     `gorm:"column:content;type:text" json:"content" form:"content"`
	Color      string     `gorm:"column:color;default:default" json:"color" form:"color"`
	IsPinned   bool       `gorm:"column:is_pinned;default:false;index:idx_note_is_pinned" json:"isPinned" form:"isPinned"`
	IsArchived bool       `gorm:"column:is_archived;default:false;index:idx_note_is_archived" json:"isArchived" form:"isArchived"`
	Labels     string     `gorm:"column:labels;type:text" json:"labels" form:"labels"`
	UID        *int64     `gorm:"column:uid" json:"uid" form:"uid"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;index:idx_note_created_at" json:"createdAt" form:"createdAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;index:idx_note_updated_at" json:"updatedAt" form:"updatedAt"`
}

// TableName Note's table name
func (*Note) TableName() string {
	return TableNameNote
}
