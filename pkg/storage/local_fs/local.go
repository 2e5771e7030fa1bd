// Package local_fs stores objects on the local filesystem, mainly for
// development and tests.
package local_fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/keepnotes/keep-note-service/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	IsEnabled bool   `yaml:"is-enable"`
	SavePath  string `yaml:"save-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		return nil, errors.New("local_fs: save-path is required")
	}
	if err := os.MkdirAll(conf.SavePath, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return &LocalFS{Config: conf}, nil
}

func (l *LocalFS) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	target := filepath.Join(l.Config.SavePath, pathKey)
	if err := fileurl.CreatePath(target, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	// Write-then-rename so readers never observe a partial object.
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrap(err, "local_fs")
	}
	if !modTime.IsZero() {
		_ = os.Chtimes(target, modTime, modTime)
	}
	return pathKey, nil
}

func (l *LocalFS) GetContent(pathKey string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(l.Config.SavePath, pathKey))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(fs.ErrNotExist, "local_fs")
		}
		return nil, errors.Wrap(err, "local_fs")
	}
	return content, nil
}

func (l *LocalFS) Delete(pathKey string) error {
	err := os.Remove(filepath.Join(l.Config.SavePath, pathKey))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}
