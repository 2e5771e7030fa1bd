package dto

import (
	"github.com/keepnotes/keep-note-service/pkg/syncstatus"
	"github.com/keepnotes/keep-note-service/pkg/timex"
)

// SyncResultDTO 同步触发结果
// Started 为 false 表示请求被忙碌保护丢弃或同步功能未启用
type SyncResultDTO struct {
	Started bool `json:"started"`
}

// SyncStatusDTO 当前同步状态
type SyncStatusDTO struct {
	Status    string     `json:"status"`
	Message   string     `json:"message,omitempty"`
	Timestamp timex.Time `json:"timestamp"`
}

// SyncStatusFromBroadcast 转换广播状态
func SyncStatusFromBroadcast(s syncstatus.Status) *SyncStatusDTO {
	return &SyncStatusDTO{
		Status:    string(s.State),
		Message:   s.Message,
		Timestamp: timex.Time(s.Timestamp),
	}
}
