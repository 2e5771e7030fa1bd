// Package webdav mirrors note backups to a WebDAV server.
package webdav

import (
	"io/fs"
	"os"
	"time"

	"github.com/keepnotes/keep-note-service/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

type Config struct {
	IsEnabled  bool   `yaml:"is-enable"`
	Endpoint   string `yaml:"endpoint"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

func NewClient(conf *Config) (*WebDAV, error) {
	if conf.Endpoint == "" {
		return nil, errors.New("webdav: endpoint is required")
	}

	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	if err := c.Connect(); err != nil {
		return nil, errors.Wrap(err, "webdav")
	}

	return &WebDAV{Client: c, Config: conf}, nil
}

func (w *WebDAV) remoteKey(pathKey string) string {
	return fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + pathKey
}

func (w *WebDAV) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	fileKey := w.remoteKey(pathKey)

	if w.Config.CustomPath != "" {
		if err := w.Client.MkdirAll(w.Config.CustomPath, 0644); err != nil {
			return "", errors.Wrap(err, "webdav")
		}
	}

	if err := w.Client.Write(fileKey, content, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return fileKey, nil
}

func (w *WebDAV) GetContent(pathKey string) ([]byte, error) {
	content, err := w.Client.Read(w.remoteKey(pathKey))
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, errors.Wrap(fs.ErrNotExist, "webdav")
		}
		return nil, errors.Wrap(err, "webdav")
	}
	return content, nil
}

func (w *WebDAV) Delete(pathKey string) error {
	err := w.Client.Remove(w.remoteKey(pathKey))
	if err != nil && !gowebdav.IsErrNotFound(err) {
		return errors.Wrap(err, "webdav")
	}
	return nil
}
