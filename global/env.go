package global

import (
	"github.com/keepnotes/keep-note-service/pkg/fileurl"
)

var (
	// 程序执行目录
	ROOT    string
	Name    string = "Keep Note Service"
	Version string = "dev"
)

func init() {
	ROOT = fileurl.GetExePath() + "/"
}
