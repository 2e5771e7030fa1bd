package service

import (
	"context"
	"strings"
	"sync"

	"github.com/keepnotes/keep-note-service/internal/domain"
	"github.com/keepnotes/keep-note-service/internal/dto"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInvalidColor 请求中的颜色不在调色板内
var ErrInvalidColor = errors.New("invalid note color")

// NoteService 笔记业务服务接口
// 所有修改操作成功后触发一次不等待结果的远端同步
type NoteService interface {
	// List 按视图条件返回排序后的笔记列表
	List(ctx context.Context, req *dto.NoteListRequest) ([]*dto.NoteDTO, error)
	// Get 按 Uuid 获取单条笔记
	Get(ctx context.Context, uuid string) (*dto.NoteDTO, error)
	// Create 创建并持久化一条新笔记
	Create(ctx context.Context, req *dto.NoteCreateRequest) (*dto.NoteDTO, error)
	// Update 部分更新笔记并刷新修改时间
	Update(ctx context.Context, uuid string, req *dto.NoteUpdateRequest) (*dto.NoteDTO, error)
	// Delete 按 Uuid 删除笔记
	Delete(ctx context.Context, uuid string) error
	// TogglePin 翻转置顶标志
	TogglePin(ctx context.Context, uuid string) (*dto.NoteDTO, error)
	// ToggleArchive 翻转归档标志
	ToggleArchive(ctx context.Context, uuid string) (*dto.NoteDTO, error)
	// ChangeColor 修改颜色标签
	ChangeColor(ctx context.Context, uuid string, color string) (*dto.NoteDTO, error)
	// Search 关键词搜索，空白查询返回全部缓存集合
	Search(ctx context.Context, term string) ([]*dto.NoteDTO, error)
}

type noteService struct {
	noteRepo domain.NoteRepository
	sync     SyncService
	logger   *zap.Logger

	// 排序后的全量快照缓存，任何修改操作都会使其失效
	// cacheGen 随每次失效递增，读取跨越失效时结果不得回填缓存
	cacheMu     sync.Mutex
	cachedNotes []*domain.Note
	cacheValid  bool
	cacheGen    uint64
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, syncService SyncService, logger *zap.Logger) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		sync:     syncService,
		logger:   logger,
	}
}

// snapshot 返回排序后的全量笔记，命中缓存时不访问存储
func (s *noteService) snapshot(ctx context.Context) ([]*domain.Note, error) {
	s.cacheMu.Lock()
	if s.cacheValid {
		notes := s.cachedNotes
		s.cacheMu.Unlock()
		return notes, nil
	}
	gen := s.cacheGen
	s.cacheMu.Unlock()

	notes, err := s.noteRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	sorted := domain.SortNotes(notes)

	s.cacheMu.Lock()
	// 读取期间发生过失效，本次结果已经过期，只返回不回填
	if gen == s.cacheGen {
		s.cachedNotes = sorted
		s.cacheValid = true
	}
	s.cacheMu.Unlock()
	return sorted, nil
}

func (s *noteService) invalidate() {
	s.cacheMu.Lock()
	s.cachedNotes = nil
	s.cacheValid = false
	s.cacheGen++
	s.cacheMu.Unlock()
}

// triggerSync 修改成功后发起一次后台同步
// 结果只进状态广播，不影响本次修改的返回值
func (s *noteService) triggerSync() {
	if s.sync == nil || !s.sync.IsEnabled() {
		return
	}
	go func() {
		if !s.sync.SyncToRemote(context.Background()) {
			s.logger.Debug("background sync skipped or failed")
		}
	}()
}

func (s *noteService) List(ctx context.Context, req *dto.NoteListRequest) ([]*dto.NoteDTO, error) {
	notes, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	opts := domain.DefaultViewOptions()
	if req != nil {
		opts.IsPinned = req.IsPinned
		opts.IsArchived = req.IsArchived
		opts.ExcludeArchived = !req.IncludeArchived
		opts.SearchTerm = req.Search
	}
	return dto.NoteListFromDomain(domain.FilteredView(notes, opts)), nil
}

func (s *noteService) Get(ctx context.Context, uuid string) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return dto.NoteFromDomain(note), nil
}

func (s *noteService) Create(ctx context.Context, req *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	note := domain.NewNote()
	if req.Uuid != "" {
		note.Uuid = req.Uuid
	}
	note.Title = req.Title
	if len(req.Content) > 0 {
		note.Content = req.Content
	}
	if req.Color != "" {
		if !domain.IsValidColor(domain.Color(req.Color)) {
			return nil, ErrInvalidColor
		}
		note.Color = domain.Color(req.Color)
	}
	note.IsPinned = req.IsPinned
	note.IsArchived = req.IsArchived
	if req.Labels != nil {
		note.Labels = req.Labels
	}

	saved, err := s.noteRepo.Put(ctx, note)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	s.triggerSync()
	return dto.NoteFromDomain(saved), nil
}

func (s *noteService) Update(ctx context.Context, uuid string, req *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if len(req.Content) > 0 {
		note.Content = req.Content
	}
	if req.Color != nil {
		if !domain.IsValidColor(domain.Color(*req.Color)) {
			return nil, ErrInvalidColor
		}
		note.Color = domain.Color(*req.Color)
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}
	if req.Labels != nil {
		note.Labels = req.Labels
	}

	return s.save(ctx, note)
}

// save 刷新修改时间并整体覆盖持久化
func (s *noteService) save(ctx context.Context, note *domain.Note) (*dto.NoteDTO, error) {
	note.Touch()
	saved, err := s.noteRepo.Put(ctx, note)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	s.triggerSync()
	return dto.NoteFromDomain(saved), nil
}

func (s *noteService) Delete(ctx context.Context, uuid string) error {
	// 先确认存在，调用方据此返回 404
	if _, err := s.noteRepo.GetByUuid(ctx, uuid); err != nil {
		return err
	}
	if err := s.noteRepo.Delete(ctx, uuid); err != nil {
		return err
	}
	s.invalidate()
	s.triggerSync()
	return nil
}

func (s *noteService) TogglePin(ctx context.Context, uuid string) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	note.IsPinned = !note.IsPinned
	return s.save(ctx, note)
}

func (s *noteService) ToggleArchive(ctx context.Context, uuid string) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	note.IsArchived = !note.IsArchived
	return s.save(ctx, note)
}

func (s *noteService) ChangeColor(ctx context.Context, uuid string, color string) (*dto.NoteDTO, error) {
	if !domain.IsValidColor(domain.Color(color)) {
		return nil, ErrInvalidColor
	}
	note, err := s.noteRepo.GetByUuid(ctx, uuid)
	if err != nil {
		return nil, err
	}
	note.Color = domain.Color(color)
	return s.save(ctx, note)
}

func (s *noteService) Search(ctx context.Context, term string) ([]*dto.NoteDTO, error) {
	// 空白查询等价于全量列表，直接走快照缓存
	if strings.TrimSpace(term) == "" {
		notes, err := s.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return dto.NoteListFromDomain(notes), nil
	}

	notes, err := s.noteRepo.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return dto.NoteListFromDomain(domain.SortNotes(notes)), nil
}
