package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keepnotes/keep-note-service/internal/domain"
	"github.com/keepnotes/keep-note-service/pkg/storage"
	"github.com/keepnotes/keep-note-service/pkg/syncstatus"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RemoteFileName 远端备份文件的固定名称
const RemoteFileName = "notes_data.json"

// DefaultStatusRevertDelay success / error 状态自动回落到 idle 的延迟
const DefaultStatusRevertDelay = 3 * time.Second

// DefaultAutoSyncInterval 自动同步缺省间隔
const DefaultAutoSyncInterval = 5 * time.Minute

// SyncService 将整个笔记集合镜像到远端文件存储
// 同一时刻最多只有一个同步操作在途，后到的请求被直接丢弃
type SyncService interface {
	// IsEnabled 远端存储是否已配置，未配置时所有操作降级为返回 false 的空操作
	IsEnabled() bool
	// IsSignedIn 是否已登录远端账户
	IsSignedIn() bool
	// SignIn 登录远端账户，未配置时返回 false 且不报错
	SignIn(ctx context.Context) (bool, error)
	// SignOut 退出登录，未配置时返回 false 且不报错
	SignOut() (bool, error)
	// SyncToRemote 将本地全量笔记上传覆盖远端备份
	SyncToRemote(ctx context.Context) bool
	// RestoreFromRemote 清空本地后用远端备份整体替换，远端无备份时本地保持不变并返回 false
	RestoreFromRemote(ctx context.Context) bool
	// InitAutoSync 启动周期同步，返回停止句柄；未配置时返回空操作句柄
	InitAutoSync(interval time.Duration) func()
	// Status 当前同步状态
	Status() syncstatus.Status
	// Subscribe 订阅状态变更
	Subscribe(cb func(syncstatus.Status)) func()
}

type syncService struct {
	noteRepo    domain.NoteRepository
	store       storage.Storager
	auth        storage.Authorizer
	cipher      Cipher
	broadcaster *syncstatus.Broadcaster
	logger      *zap.Logger

	// busy 是跨 SyncToRemote / RestoreFromRemote 共享的单飞标志
	busy        atomic.Bool
	revertDelay time.Duration
}

// NewSyncService 创建 SyncService 实例
// store 为 nil 表示远端存储未配置，同步功能整体停用
// 当 store 同时实现 storage.Authorizer 时启用交互式登录门槛
func NewSyncService(
	noteRepo domain.NoteRepository,
	store storage.Storager,
	cipher Cipher,
	logger *zap.Logger,
) SyncService {
	if cipher == nil {
		cipher = NopCipher{}
	}
	s := &syncService{
		noteRepo:    noteRepo,
		store:       store,
		cipher:      cipher,
		broadcaster: syncstatus.NewBroadcaster(),
		logger:      logger,
		revertDelay: DefaultStatusRevertDelay,
	}
	if auth, ok := store.(storage.Authorizer); ok {
		s.auth = auth
	}
	return s
}

func (s *syncService) IsEnabled() bool {
	return s.store != nil
}

func (s *syncService) IsSignedIn() bool {
	if !s.IsEnabled() {
		return false
	}
	if s.auth == nil {
		// 静态凭证后端配置即视为已登录
		return true
	}
	return s.auth.IsSignedIn()
}

func (s *syncService) SignIn(ctx context.Context) (bool, error) {
	if !s.IsEnabled() {
		return false, nil
	}
	if s.auth == nil || s.auth.IsSignedIn() {
		return true, nil
	}
	if err := s.auth.SignIn(ctx); err != nil {
		return false, errors.Wrap(err, "sync: sign in")
	}
	return true, nil
}

func (s *syncService) SignOut() (bool, error) {
	if !s.IsEnabled() || s.auth == nil {
		return false, nil
	}
	if err := s.auth.SignOut(); err != nil {
		return false, errors.Wrap(err, "sync: sign out")
	}
	return true, nil
}

func (s *syncService) Status() syncstatus.Status {
	return s.broadcaster.Current()
}

func (s *syncService) Subscribe(cb func(syncstatus.Status)) func() {
	return s.broadcaster.Subscribe(cb)
}

// publishTransient 发布 success / error 状态并安排延迟回落
func (s *syncService) publishTransient(state syncstatus.State, message string) {
	gen := s.broadcaster.Publish(state, message)
	time.AfterFunc(s.revertDelay, func() {
		s.broadcaster.CompareAndRevert(gen)
	})
}

func (s *syncService) ensureSignedIn(ctx context.Context) error {
	if s.auth == nil || s.auth.IsSignedIn() {
		return nil
	}
	return s.auth.SignIn(ctx)
}

func (s *syncService) SyncToRemote(ctx context.Context) bool {
	if !s.IsEnabled() {
		return false
	}
	if !s.busy.CompareAndSwap(false, true) {
		// 在途同步未结束，丢弃本次请求
		return false
	}
	defer s.busy.Store(false)

	s.broadcaster.Publish(syncstatus.StateSyncing, "syncing notes to remote")

	if err := s.ensureSignedIn(ctx); err != nil {
		s.logger.Error("sync sign-in failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "sign-in failed")
		return false
	}

	notes, err := s.noteRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("sync read local notes failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "failed to read local notes")
		return false
	}

	payload, err := json.Marshal(notes)
	if err != nil {
		s.logger.Error("sync serialize failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "failed to serialize notes")
		return false
	}

	payload, err = s.cipher.Encrypt(payload)
	if err != nil {
		s.logger.Error("sync encrypt failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "failed to encrypt backup")
		return false
	}

	// 单次整体覆盖上传，无部分写入
	if _, err := s.store.SendContent(RemoteFileName, payload, time.Now()); err != nil {
		s.logger.Error("sync upload failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "failed to upload backup")
		return false
	}

	s.logger.Info("notes synced to remote", zap.Int("count", len(notes)))
	s.publishTransient(syncstatus.StateSuccess, "notes synced")
	return true
}

func (s *syncService) RestoreFromRemote(ctx context.Context) bool {
	if !s.IsEnabled() {
		return false
	}
	if !s.busy.CompareAndSwap(false, true) {
		return false
	}
	defer s.busy.Store(false)

	s.broadcaster.Publish(syncstatus.StateSyncing, "restoring notes from remote")

	if err := s.ensureSignedIn(ctx); err != nil {
		s.logger.Error("restore sign-in failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "sign-in failed")
		return false
	}

	payload, err := s.store.GetContent(RemoteFileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			// 远端没有备份不算错误，本地集合保持不变
			s.broadcaster.Publish(syncstatus.StateIdle, "no backup found")
			return false
		}
		s.logger.Error("restore download failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "failed to download backup")
		return false
	}

	payload, err = s.cipher.Decrypt(payload)
	if err != nil {
		s.logger.Error("restore decrypt failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "failed to decrypt backup")
		return false
	}

	var notes []*domain.Note
	if err := json.Unmarshal(payload, &notes); err != nil {
		s.logger.Error("restore parse failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "backup file is corrupted")
		return false
	}

	// 全量替换，不与本地合并
	if err := s.noteRepo.Clear(ctx); err != nil {
		s.logger.Error("restore clear local failed", zap.Error(err))
		s.publishTransient(syncstatus.StateError, "failed to clear local notes")
		return false
	}
	for _, note := range notes {
		note.Normalize()
		if _, err := s.noteRepo.Put(ctx, note); err != nil {
			s.logger.Error("restore insert failed", zap.String("uuid", note.Uuid), zap.Error(err))
			s.publishTransient(syncstatus.StateError, "failed to restore notes")
			return false
		}
	}

	s.logger.Info("notes restored from remote", zap.Int("count", len(notes)))
	s.publishTransient(syncstatus.StateSuccess, "notes restored")
	return true
}

func (s *syncService) InitAutoSync(interval time.Duration) func() {
	if !s.IsEnabled() {
		return func() {}
	}
	if interval <= 0 {
		interval = DefaultAutoSyncInterval
	}

	done := make(chan struct{})
	var once sync.Once

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if s.auth != nil && !s.auth.IsSignedIn() {
					continue
				}
				// 周期同步的失败只记录日志，不向外传播
				s.SyncToRemote(context.Background())
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
	}
}
