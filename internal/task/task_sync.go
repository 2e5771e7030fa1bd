package task

import (
	"context"
	"time"

	"github.com/keepnotes/keep-note-service/internal/service"
)

// SyncTask 周期性地将本地笔记集合镜像到远端备份
// 失败只反映到同步状态广播，不会中断调度
type SyncTask struct {
	sync     service.SyncService
	interval time.Duration
}

// NewSyncTask 创建周期同步任务
// 同步未启用时返回 nil，调度器不注册该任务
func NewSyncTask(syncService service.SyncService, interval time.Duration) *SyncTask {
	if syncService == nil || !syncService.IsEnabled() {
		return nil
	}
	if interval <= 0 {
		interval = service.DefaultAutoSyncInterval
	}
	return &SyncTask{sync: syncService, interval: interval}
}

func (t *SyncTask) Name() string {
	return "remote_sync"
}

func (t *SyncTask) LoopInterval() time.Duration {
	return t.interval
}

func (t *SyncTask) IsStartupRun() bool {
	return false
}

func (t *SyncTask) Run(ctx context.Context) error {
	// 未登录时跳过本轮，等待用户完成授权
	if !t.sync.IsSignedIn() {
		return nil
	}
	t.sync.SyncToRemote(ctx)
	return nil
}
