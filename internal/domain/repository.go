package domain

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNoteNotFound 按 Uuid 查询不到笔记
var ErrNoteNotFound = errors.New("note not found")

// FilterOptions 存储层过滤条件，nil / 空值表示不应用该条件
type FilterOptions struct {
	IsPinned   *bool
	IsArchived *bool
	Color      Color
}

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetAll 获取全部笔记，不保证顺序
	GetAll(ctx context.Context) ([]*Note, error)

	// GetByUuid 根据 Uuid 获取笔记，不存在时返回 ErrNoteNotFound
	GetByUuid(ctx context.Context, uuid string) (*Note, error)

	// Put 按 Uuid 插入或整体覆盖笔记，返回持久化后的记录
	Put(ctx context.Context, note *Note) (*Note, error)

	// Delete 根据 Uuid 删除笔记，不存在时静默返回
	Delete(ctx context.Context, uuid string) error

	// Search 标题或序列化内容的子串匹配（不区分大小写），空查询返回全部
	Search(ctx context.Context, query string) ([]*Note, error)

	// Filter 按给定条件过滤，条件之间为与关系
	Filter(ctx context.Context, opts FilterOptions) ([]*Note, error)

	// Clear 清空全部笔记，仅用于远端恢复
	Clear(ctx context.Context) error

	// Count 获取笔记数量
	Count(ctx context.Context) (int64, error)
}
