package app

import (
	pkgapp "github.com/keepnotes/keep-note-service/pkg/app"
)

// 构建期通过 ldflags 注入
var (
	Version   = "dev"
	GitTag    = ""
	BuildTime = ""
)

// Version 返回构建版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}
