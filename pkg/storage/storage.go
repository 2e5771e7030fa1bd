// Package storage abstracts the remote file stores the sync layer can mirror
// the note collection to.
package storage

import (
	"context"
	"io/fs"
	"time"

	"github.com/keepnotes/keep-note-service/pkg/code"
	"github.com/keepnotes/keep-note-service/pkg/storage/aws_s3"
	"github.com/keepnotes/keep-note-service/pkg/storage/gdrive"
	"github.com/keepnotes/keep-note-service/pkg/storage/local_fs"
	"github.com/keepnotes/keep-note-service/pkg/storage/webdav"
)

type Type = string

const GDrive Type = "gdrive"
const S3 Type = "s3"
const WebDAV Type = "webdav"
const LOCAL Type = "localfs"

var StorageTypeMap = map[Type]bool{
	GDrive: true,
	S3:     true,
	WebDAV: true,
	LOCAL:  true,
}

// ErrNotExist is matched (via errors.Is) when GetContent finds no remote
// object. Callers treat this as "no backup found", not as a failure.
// Every backend wraps fs.ErrNotExist for the absent case.
var ErrNotExist = fs.ErrNotExist

// Config is the unified storage configuration.
type Config struct {
	Type Type `yaml:"type"`

	// Common settings
	IsEnabled  bool   `yaml:"is-enable"`
	CustomPath string `yaml:"custom-path"`

	// Google Drive
	CredentialsFile string `yaml:"credentials-file"`
	TokenFile       string `yaml:"token-file"`

	// Cloud storage (S3)
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`

	// WebDAV
	Endpoint string `yaml:"endpoint"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath string `yaml:"save-path"`
}

// Storager is a remote file store holding whole objects by key.
type Storager interface {
	// SendContent uploads content under pathKey, overwriting any previous
	// object in a single call.
	SendContent(pathKey string, content []byte, modTime time.Time) (string, error)
	// GetContent downloads the object stored under pathKey, or ErrNotExist.
	GetContent(pathKey string) ([]byte, error)
	Delete(pathKey string) error
}

// Authorizer is implemented by backends with an interactive sign-in gate.
// Static-credential backends are always signed in once configured.
type Authorizer interface {
	IsSignedIn() bool
	SignIn(ctx context.Context) error
	SignOut() error
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			IsEnabled: config.IsEnabled,
			SavePath:  config.SavePath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			IsEnabled:  config.IsEnabled,
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			IsEnabled:       config.IsEnabled,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case GDrive:
		return gdrive.NewClient(&gdrive.Config{
			IsEnabled:       config.IsEnabled,
			CredentialsFile: config.CredentialsFile,
			TokenFile:       config.TokenFile,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
