package dao

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/keepnotes/keep-note-service/internal/domain"
	"github.com/keepnotes/keep-note-service/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

func (r *noteRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.Db.WithContext(ctx)
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	note := &domain.Note{
		ID:         m.ID,
		Uuid:       m.Uuid,
		Title:      m.Title,
		Color:      domain.Color(m.Color),
		IsPinned:   m.IsPinned,
		IsArchived: m.IsArchived,
		UserID:     m.UID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Content != "" {
		note.Content = json.RawMessage(m.Content)
	}
	if m.Labels != "" {
		// 标签列以 JSON 文本存储，坏数据按空列表处理
		_ = json.Unmarshal([]byte(m.Labels), &note.Labels)
	}
	note.Normalize()
	return note
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) *model.Note {
	if note == nil {
		return nil
	}
	labels, _ := json.Marshal(note.Labels)
	content := note.Content
	if len(content) == 0 {
		content = domain.EmptyContent
	}
	return &model.Note{
		ID:         note.ID,
		Uuid:       note.Uuid,
		Title:      note.Title,
		Content:    string(content),
		Color:      string(note.Color),
		IsPinned:   note.IsPinned,
		IsArchived: note.IsArchived,
		Labels:     string(labels),
		UID:        note.UserID,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

func (r *noteRepository) toDomainList(rows []*model.Note) []*domain.Note {
	notes := make([]*domain.Note, 0, len(rows))
	for _, m := range rows {
		notes = append(notes, r.toDomain(m))
	}
	return notes
}

func (r *noteRepository) GetAll(ctx context.Context) ([]*domain.Note, error) {
	var rows []*model.Note
	if err := r.db(ctx).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "note repository: get all")
	}
	return r.toDomainList(rows), nil
}

func (r *noteRepository) GetByUuid(ctx context.Context, uuid string) (*domain.Note, error) {
	var row model.Note
	err := r.db(ctx).Where("uuid = ?", uuid).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, errors.Wrap(err, "note repository: get by uuid")
	}
	return r.toDomain(&row), nil
}

// Put 按 Uuid 插入或整体覆盖，uuid 冲突时后写者胜
func (r *noteRepository) Put(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	row := r.toModel(note)
	row.ID = 0

	err := r.db(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "content", "color", "is_pinned", "is_archived",
			"labels", "uid", "created_at", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return nil, errors.Wrap(err, "note repository: put")
	}

	// 冲突更新路径下 row.ID 不可靠，按 uuid 回读落库结果
	return r.GetByUuid(ctx, note.Uuid)
}

func (r *noteRepository) Delete(ctx context.Context, uuid string) error {
	if err := r.db(ctx).Where("uuid = ?", uuid).Delete(&model.Note{}).Error; err != nil {
		return errors.Wrap(err, "note repository: delete")
	}
	return nil
}

func (r *noteRepository) Search(ctx context.Context, query string) ([]*domain.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.GetAll(ctx)
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var rows []*model.Note
	err := r.db(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "note repository: search")
	}
	return r.toDomainList(rows), nil
}

func (r *noteRepository) Filter(ctx context.Context, opts domain.FilterOptions) ([]*domain.Note, error) {
	tx := r.db(ctx)
	if opts.IsPinned != nil {
		tx = tx.Where("is_pinned = ?", *opts.IsPinned)
	}
	if opts.IsArchived != nil {
		tx = tx.Where("is_archived = ?", *opts.IsArchived)
	}
	if opts.Color != "" {
		tx = tx.Where("color = ?", string(opts.Color))
	}

	var rows []*model.Note
	if err := tx.Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "note repository: filter")
	}
	return r.toDomainList(rows), nil
}

// Clear 清空全部笔记，仅远端恢复时使用
func (r *noteRepository) Clear(ctx context.Context) error {
	if err := r.db(ctx).Where("1 = 1").Delete(&model.Note{}).Error; err != nil {
		return errors.Wrap(err, "note repository: clear")
	}
	return nil
}

func (r *noteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db(ctx).Model(&model.Note{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "note repository: count")
	}
	return count, nil
}
