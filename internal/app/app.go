package app

import (
	"context"
	"time"

	"github.com/keepnotes/keep-note-service/internal/dao"
	"github.com/keepnotes/keep-note-service/internal/domain"
	"github.com/keepnotes/keep-note-service/internal/service"
	"github.com/keepnotes/keep-note-service/pkg/storage"
	"github.com/keepnotes/keep-note-service/pkg/util"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	NoteRepo domain.NoteRepository

	// Service 层
	NoteService service.NoteService
	SyncService service.SyncService

	StartTime time.Time
}

// NewApp 创建应用容器实例，初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if db == nil {
		return nil, errors.New("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		Dao:       dao.New(db),
		StartTime: time.Now(),
	}

	a.NoteRepo = dao.NewNoteRepository(a.Dao)

	store, err := a.newRemoteStore()
	if err != nil {
		// 远端存储配置错误不阻止启动，同步功能降级停用
		logger.Warn("remote storage unavailable, sync disabled", zap.Error(err))
		store = nil
	}

	a.SyncService = service.NewSyncService(a.NoteRepo, store, service.NopCipher{}, logger)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.SyncService, logger)

	return a, nil
}

// newRemoteStore 根据配置创建远端存储客户端
// 未启用时返回 nil，同步功能视为凭证缺失
func (a *App) newRemoteStore() (storage.Storager, error) {
	sc := a.config.Sync.Storage
	if !sc.IsEnabled || sc.Type == "" {
		return nil, nil
	}
	return storage.NewClient(&sc)
}

// Shutdown 优雅关闭容器持有的资源
func (a *App) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		sqlDB, err := a.DB.DB()
		if err != nil {
			done <- err
			return
		}
		done <- sqlDB.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return errors.Wrap(err, "app: close database")
		}
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "app: shutdown")
	}
}

func (a *App) Config() *AppConfig {
	return a.config
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}

// AutoSyncInterval 解析配置的周期同步间隔
func (a *App) AutoSyncInterval() time.Duration {
	d, err := util.ParseDuration(a.config.Sync.AutoSyncInterval)
	if err != nil || d <= 0 {
		return service.DefaultAutoSyncInterval
	}
	return d
}
